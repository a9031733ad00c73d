package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"school-site-backend/internal/models"
	"school-site-backend/internal/repository"
	"school-site-backend/internal/utils"
	"school-site-backend/internal/videolink"
)

type VideoHandler struct {
	store Store[models.Video]
	media MediaIngestor
}

func NewVideoHandler(store Store[models.Video], media MediaIngestor) *VideoHandler {
	return &VideoHandler{store: store, media: media}
}

type videoInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Src         *string `json:"src"`
	VideoData   *string `json:"videoData"`
	Type        *string `json:"type"`
	Thumbnail   *string `json:"thumbnail"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"isActive"`
}

func (h *VideoHandler) List(c *fiber.Ctx) error {
	ctx, cancel := opCtx(c)
	defer cancel()
	docs, err := h.store.List(ctx, repository.ListQuery{ActiveOnly: true})
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, docs)
}

func (h *VideoHandler) AdminList(c *fiber.Ctx) error {
	ctx, cancel := opCtx(c)
	defer cancel()
	docs, err := h.store.List(ctx, repository.ListQuery{})
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, docs)
}

func (h *VideoHandler) Get(c *fiber.Ctx) error {
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

func (h *VideoHandler) Create(c *fiber.Ctx) error {
	var in videoInput
	if err := c.BodyParser(&in); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	if in.Type != nil && !models.ValidVideoType(*in.Type) {
		return utils.JSONError(c, fiber.StatusBadRequest, "unknown video type")
	}
	ctx, cancel := opCtx(c)
	defer cancel()
	doc, err := h.buildVideo(c, &in)
	if err != nil {
		return storeErr(c, err)
	}
	if doc.Src == "" {
		return utils.JSONError(c, fiber.StatusBadRequest, "either src or videoData is required")
	}
	id, err := h.store.Insert(ctx, doc)
	if err != nil {
		return storeErr(c, err)
	}
	doc.ID = id
	return utils.JSONSuccess(c, fiber.StatusCreated, doc)
}

func (h *VideoHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.JSONError(c, fiber.StatusNotFound, "not found")
	}
	var in videoInput
	if err := c.BodyParser(&in); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	if in.Type != nil && !models.ValidVideoType(*in.Type) {
		return utils.JSONError(c, fiber.StatusBadRequest, "unknown video type")
	}
	ctx, cancel := opCtx(c)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if in.VideoData != nil && *in.VideoData != "" {
		stored, err := h.media.IngestVideo(ctx, *in.VideoData)
		if err != nil {
			return storeErr(c, err)
		}
		set["src"] = stored.Src
		set["type"] = models.VideoTypeUploaded
	} else if in.Src != nil {
		set["src"] = *in.Src
		set["type"] = videolink.Detect(*in.Src).String()
		if in.Thumbnail == nil {
			set["thumbnail"] = videolink.ThumbnailURL(*in.Src)
		}
	}
	if in.Type != nil {
		set["type"] = *in.Type
	}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}
	if in.Thumbnail != nil {
		set["thumbnail"] = *in.Thumbnail
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

func (h *VideoHandler) Delete(c *fiber.Ctx) error {
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

func (h *VideoHandler) BatchUpload(c *fiber.Ctx) error {
	var body struct {
		Items []videoInput `json:"items"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	ctx, cancel := opCtx(c)
	defer cancel()

	result := newBatchResult()
	for i := range body.Items {
		doc, err := h.buildVideo(c, &body.Items[i])
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

// buildVideo resolves the source, classifies the platform and fills a
// missing thumbnail from the pure URL mapping.
func (h *VideoHandler) buildVideo(c *fiber.Ctx, in *videoInput) (*models.Video, error) {
	now := time.Now().UTC()
	doc := &models.Video{
		Title:       strOrEmpty(in.Title),
		Description: strOrEmpty(in.Description),
		Thumbnail:   strOrEmpty(in.Thumbnail),
		Order:       intOrDefault(in.Order, 0),
		IsActive:    boolOrDefault(in.IsActive, true),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.VideoData != nil && *in.VideoData != "" {
		ctx, cancel := opCtx(c)
		defer cancel()
		stored, err := h.media.IngestVideo(ctx, *in.VideoData)
		if err != nil {
			return nil, err
		}
		doc.Src = stored.Src
		doc.Type = models.VideoTypeUploaded
	} else if in.Src != nil {
		doc.Src = *in.Src
		doc.Type = videolink.Detect(*in.Src).String()
		if doc.Thumbnail == "" {
			doc.Thumbnail = videolink.ThumbnailURL(*in.Src)
		}
	}
	if in.Type != nil {
		doc.Type = *in.Type
	}
	return doc, nil
}
