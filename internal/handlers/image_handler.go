package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"school-site-backend/internal/models"
	"school-site-backend/internal/repository"
	"school-site-backend/internal/utils"
)

type ImageHandler struct {
	store Store[models.Image]
	media MediaIngestor
}

func NewImageHandler(store Store[models.Image], media MediaIngestor) *ImageHandler {
	return &ImageHandler{store: store, media: media}
}

type imageInput struct {
	Src       *string `json:"src"`
	ImageData *string `json:"imageData"`
	Alt       *string `json:"alt"`
	Category  *string `json:"category"`
	Order     *int    `json:"order"`
	IsActive  *bool   `json:"isActive"`
}

// List is the public endpoint: active images only, optional category
// filter, exact match.
func (h *ImageHandler) List(c *fiber.Ctx) error {
	ctx, cancel := opCtx(c)
	defer cancel()
	docs, err := h.store.List(ctx, repository.ListQuery{
		ActiveOnly: true,
		Category:   c.Query("category"),
	})
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, docs)
}

func (h *ImageHandler) AdminList(c *fiber.Ctx) error {
	ctx, cancel := opCtx(c)
	defer cancel()
	docs, err := h.store.List(ctx, repository.ListQuery{Category: c.Query("category")})
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, docs)
}

func (h *ImageHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.JSONError(c, fiber.StatusNotFound, "not found")
	}
	ctx, cancel := opCtx(c)
	defer cancel()
	doc, err := h.store.Get(ctx, id)
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, doc)
}

func (h *ImageHandler) Create(c *fiber.Ctx) error {
	var in imageInput
	if err := c.BodyParser(&in); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	ctx, cancel := opCtx(c)
	defer cancel()
	doc, err := h.buildImage(c, &in)
	if err != nil {
		return storeErr(c, err)
	}
	if doc.Src == "" {
		return utils.JSONError(c, fiber.StatusBadRequest, "either src or imageData is required")
	}
	id, err := h.store.Insert(ctx, doc)
	if err != nil {
		return storeErr(c, err)
	}
	doc.ID = id
	return utils.JSONSuccess(c, fiber.StatusCreated, doc)
}

func (h *ImageHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.JSONError(c, fiber.StatusNotFound, "not found")
	}
	var in imageInput
	if err := c.BodyParser(&in); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	ctx, cancel := opCtx(c)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if in.ImageData != nil && *in.ImageData != "" {
		stored, err := h.media.IngestImage(ctx, *in.ImageData)
		if err != nil {
			return storeErr(c, err)
		}
		set["src"] = stored.Src
		set["is_uploaded"] = true
	} else if in.Src != nil {
		set["src"] = *in.Src
		set["is_uploaded"] = false
	}
	if in.Alt != nil {
		set["alt"] = *in.Alt
	}
	if in.Category != nil {
		set["category"] = *in.Category
	}
	if in.Order != nil {
		set["order"] = *in.Order
	}
	if in.IsActive != nil {
		set["is_active"] = *in.IsActive
	}
	doc, err := h.store.Update(ctx, id, set)
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, doc)
}

func (h *ImageHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.JSONError(c, fiber.StatusNotFound, "not found")
	}
	ctx, cancel := opCtx(c)
	defer cancel()
	if err := h.store.Delete(ctx, id); err != nil {
		return storeErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// BatchUpload processes each item independently and reports per-item
// outcomes; there is no rollback.
func (h *ImageHandler) BatchUpload(c *fiber.Ctx) error {
	var body struct {
		Items []imageInput `json:"items"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	ctx, cancel := opCtx(c)
	defer cancel()

	result := newBatchResult()
	for i := range body.Items {
		doc, err := h.buildImage(c, &body.Items[i])
		if err == nil && doc.Src == "" {
			err = errMissingSource
		}
		if err == nil {
			var id primitive.ObjectID
			if id, err = h.store.Insert(ctx, doc); err == nil {
				doc.ID = id
			}
		}
		if err != nil {
			result.fail(i, err)
			continue
		}
		result.ok(doc)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, result)
}

// buildImage resolves the media source (inline payload or URL) and
// applies the server-side create defaults.
func (h *ImageHandler) buildImage(c *fiber.Ctx, in *imageInput) (*models.Image, error) {
	now := time.Now().UTC()
	doc := &models.Image{
		Alt:       strOrEmpty(in.Alt),
		Category:  strOrEmpty(in.Category),
		Order:     intOrDefault(in.Order, 0),
		IsActive:  boolOrDefault(in.IsActive, true),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.ImageData != nil && *in.ImageData != "" {
		ctx, cancel := opCtx(c)
		defer cancel()
		stored, err := h.media.IngestImage(ctx, *in.ImageData)
		if err != nil {
			return nil, err
		}
		doc.Src = stored.Src
		doc.IsUploaded = true
	} else if in.Src != nil {
		doc.Src = *in.Src
	}
	return doc, nil
}
