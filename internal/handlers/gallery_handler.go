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

// GalleryPhotoHandler serves the photo gallery: images grouped by
// category and academic year.
type GalleryPhotoHandler struct {
	store Store[models.GalleryPhoto]
	media MediaIngestor
}

func NewGalleryPhotoHandler(store Store[models.GalleryPhoto], media MediaIngestor) *GalleryPhotoHandler {
	return &GalleryPhotoHandler{store: store, media: media}
}

type galleryPhotoInput struct {
	Src         *string `json:"src"`
	ImageData   *string `json:"imageData"`
	Alt         *string `json:"alt"`
	Category    *string `json:"category"`
	Year        *string `json:"year"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"isActive"`
}

func (h *GalleryPhotoHandler) List(c *fiber.Ctx) error {
	ctx, cancel := opCtx(c)
	defer cancel()
	docs, err := h.store.List(ctx, repository.ListQuery{
		ActiveOnly: true,
		Category:   c.Query("category"),
		Year:       c.Query("year"),
	})
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, docs)
}

func (h *GalleryPhotoHandler) AdminList(c *fiber.Ctx) error {
	ctx, cancel := opCtx(c)
	defer cancel()
	docs, err := h.store.List(ctx, repository.ListQuery{
		Category: c.Query("category"),
		Year:     c.Query("year"),
	})
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, docs)
}

func (h *GalleryPhotoHandler) Get(c *fiber.Ctx) error {
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

func (h *GalleryPhotoHandler) Create(c *fiber.Ctx) error {
	var in galleryPhotoInput
	if err := c.BodyParser(&in); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	ctx, cancel := opCtx(c)
	defer cancel()
	doc, err := h.buildPhoto(c, &in)
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

func (h *GalleryPhotoHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.JSONError(c, fiber.StatusNotFound, "not found")
	}
	var in galleryPhotoInput
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
	if in.Year != nil {
		set["year"] = *in.Year
	}
	if in.Description != nil {
		set["description"] = *in.Description
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

func (h *GalleryPhotoHandler) Delete(c *fiber.Ctx) error {
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

func (h *GalleryPhotoHandler) BatchUpload(c *fiber.Ctx) error {
	var body struct {
		Items []galleryPhotoInput `json:"items"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	ctx, cancel := opCtx(c)
	defer cancel()

	result := newBatchResult()
	for i := range body.Items {
		doc, err := h.buildPhoto(c, &body.Items[i])
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

func (h *GalleryPhotoHandler) buildPhoto(c *fiber.Ctx, in *galleryPhotoInput) (*models.GalleryPhoto, error) {
	now := time.Now().UTC()
	doc := &models.GalleryPhoto{
		Alt:         strOrEmpty(in.Alt),
		Category:    strOrEmpty(in.Category),
		Year:        strOrEmpty(in.Year),
		Description: strOrEmpty(in.Description),
		Order:       intOrDefault(in.Order, 0),
		IsActive:    boolOrDefault(in.IsActive, true),
		CreatedAt:   now,
		UpdatedAt:   now,
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

// GalleryVideoHandler mirrors the photo gallery for video entries.
type GalleryVideoHandler struct {
	store Store[models.GalleryVideo]
	media MediaIngestor
}

func NewGalleryVideoHandler(store Store[models.GalleryVideo], media MediaIngestor) *GalleryVideoHandler {
	return &GalleryVideoHandler{store: store, media: media}
}

type galleryVideoInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Src         *string `json:"src"`
	VideoData   *string `json:"videoData"`
	Type        *string `json:"type"`
	Thumbnail   *string `json:"thumbnail"`
	Category    *string `json:"category"`
	Year        *string `json:"year"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"isActive"`
}

func (h *GalleryVideoHandler) List(c *fiber.Ctx) error {
	ctx, cancel := opCtx(c)
	defer cancel()
	docs, err := h.store.List(ctx, repository.ListQuery{
		ActiveOnly: true,
		Category:   c.Query("category"),
		Year:       c.Query("year"),
	})
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, docs)
}

func (h *GalleryVideoHandler) AdminList(c *fiber.Ctx) error {
	ctx, cancel := opCtx(c)
	defer cancel()
	docs, err := h.store.List(ctx, repository.ListQuery{
		Category: c.Query("category"),
		Year:     c.Query("year"),
	})
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, docs)
}

func (h *GalleryVideoHandler) Get(c *fiber.Ctx) error {
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

func (h *GalleryVideoHandler) Create(c *fiber.Ctx) error {
	var in galleryVideoInput
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

func (h *GalleryVideoHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.JSONError(c, fiber.StatusNotFound, "not found")
	}
	var in galleryVideoInput
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
	if in.Category != nil {
		set["category"] = *in.Category
	}
	if in.Year != nil {
		set["year"] = *in.Year
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

func (h *GalleryVideoHandler) Delete(c *fiber.Ctx) error {
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

func (h *GalleryVideoHandler) BatchUpload(c *fiber.Ctx) error {
	var body struct {
		Items []galleryVideoInput `json:"items"`
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

func (h *GalleryVideoHandler) buildVideo(c *fiber.Ctx, in *galleryVideoInput) (*models.GalleryVideo, error) {
	now := time.Now().UTC()
	doc := &models.GalleryVideo{
		Title:       strOrEmpty(in.Title),
		Description: strOrEmpty(in.Description),
		Thumbnail:   strOrEmpty(in.Thumbnail),
		Category:    strOrEmpty(in.Category),
		Year:        strOrEmpty(in.Year),
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
