package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"school-site-backend/internal/database"
	"school-site-backend/internal/repository"
	"school-site-backend/internal/utils"
)

// DataStore is the slice of the data repository the introspection and
// migration endpoints use. repository.DataRepo implements it.
type DataStore interface {
	Collections(ctx context.Context) ([]repository.CollectionInfo, error)
	Import(ctx context.Context, name string, docs []bson.M) (int, error)
	Export(ctx context.Context, name string) ([]bson.M, error)
}

// DataHandler exposes the dashboard's introspection and migration
// endpoints: collection counts, database stats, raw import/export.
type DataHandler struct {
	repo DataStore
	db   *mongo.Database
}

func NewDataHandler(repo DataStore, db *mongo.Database) *DataHandler {
	return &DataHandler{repo: repo, db: db}
}

func (h *DataHandler) Collections(c *fiber.Ctx) error {
	ctx, cancel := opCtx(c)
	defer cancel()
	infos, err := h.repo.Collections(ctx)
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, infos)
}

func (h *DataHandler) Stats(c *fiber.Ctx) error {
	ctx, cancel := opCtx(c)
	defer cancel()
	st, err := database.DBStats(ctx, h.db)
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, st)
}

// Import inserts raw documents into a named collection, bypassing create
// defaults. Migration escape hatch. An aborted insert reports how many
// documents landed before it failed; there is no rollback.
func (h *DataHandler) Import(c *fiber.Ctx) error {
	var body struct {
		Documents []bson.M `json:"documents"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	ctx, cancel := opCtx(c)
	defer cancel()
	n, err := h.repo.Import(ctx, c.Params("name"), body.Documents)
	if errors.Is(err, repository.ErrUnknownCollection) {
		return storeErr(c, err)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":   "error",
			"message":  "import aborted",
			"inserted": n,
		})
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"inserted": n})
}

func (h *DataHandler) Export(c *fiber.Ctx) error {
	ctx, cancel := opCtx(c)
	defer cancel()
	docs, err := h.repo.Export(ctx, c.Params("name"))
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, docs)
}
