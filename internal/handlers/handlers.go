// Package handlers contains the fiber handlers for both the public site
// API and the admin dashboard API. Handlers depend on small store
// interfaces rather than the concrete Mongo repositories so the request
// paths can be exercised against in-memory fakes.
package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"school-site-backend/internal/repository"
	"school-site-backend/internal/services"
	"school-site-backend/internal/utils"
)

var validate = validator.New()

// Store is the uniform CRUD surface a content collection exposes.
// repository.Collection implements it for every document type.
type Store[T any] interface {
	List(ctx context.Context, q repository.ListQuery) ([]T, error)
	Get(ctx context.Context, id primitive.ObjectID) (*T, error)
	Insert(ctx context.Context, doc *T) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*T, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MediaIngestor is the slice of the media service handlers use.
type MediaIngestor interface {
	IngestImage(ctx context.Context, payload string) (*services.StoredMedia, error)
	IngestVideo(ctx context.Context, payload string) (*services.StoredMedia, error)
}

func opCtx(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Context(), 10*time.Second)
}

func parseID(c *fiber.Ctx) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(c.Params("id"))
}

// storeErr maps persistence and ingestion failures onto the API error
// taxonomy.
func storeErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return utils.JSONError(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, repository.ErrUnknownCollection):
		return utils.JSONError(c, fiber.StatusNotFound, "unknown collection")
	case errors.Is(err, repository.ErrDuplicateKey):
		return utils.JSONError(c, fiber.StatusConflict, "key already exists")
	case errors.Is(err, services.ErrPayloadTooLarge):
		return utils.JSONError(c, fiber.StatusRequestEntityTooLarge, "media payload too large")
	case errors.Is(err, services.ErrBadEncoding):
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid base64 media payload")
	default:
		return utils.JSONError(c, fiber.StatusInternalServerError, "internal error")
	}
}

// batchResult aggregates per-item outcomes of a batch upload. Items fail
// independently; one bad item never blocks the rest.
type batchResult struct {
	Successful []interface{}  `json:"successful"`
	Failed     []batchFailure `json:"failed"`
}

type batchFailure struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

func newBatchResult() *batchResult {
	return &batchResult{Successful: []interface{}{}, Failed: []batchFailure{}}
}

func (b *batchResult) ok(doc interface{}) { b.Successful = append(b.Successful, doc) }

func (b *batchResult) fail(i int, err error) {
	b.Failed = append(b.Failed, batchFailure{Index: i, Error: err.Error()})
}

var errMissingSource = errors.New("either src or inline media data is required")

func strOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func intOrDefault(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
