package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"

	"school-site-backend/internal/models"
	"school-site-backend/internal/utils"
)

// SiteContentStore is key-addressed, unlike the id-addressed Store: pages
// reference blocks by key, so the key is the stable handle.
type SiteContentStore interface {
	List(ctx context.Context, activeOnly bool) ([]models.SiteContent, error)
	GetByKey(ctx context.Context, key string, activeOnly bool) (*models.SiteContent, error)
	Insert(ctx context.Context, doc *models.SiteContent) error
	UpdateByKey(ctx context.Context, key string, set bson.M) (*models.SiteContent, error)
	DeleteByKey(ctx context.Context, key string) error
}

type ContentHandler struct {
	store SiteContentStore
}

func NewContentHandler(store SiteContentStore) *ContentHandler {
	return &ContentHandler{store: store}
}

type contentInput struct {
	Key      *string  `json:"key"`
	Title    *string  `json:"title"`
	Content  *string  `json:"content"`
	Items    []string `json:"items"`
	IsActive *bool    `json:"isActive"`
}

// GetByKey serves the public CMS lookup. Missing or inactive keys are a
// 404; the page falls back to its hard-coded copy.
func (h *ContentHandler) GetByKey(c *fiber.Ctx) error {
	ctx, cancel := opCtx(c)
	defer cancel()
	doc, err := h.store.GetByKey(ctx, c.Params("key"), true)
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, doc)
}

func (h *ContentHandler) AdminList(c *fiber.Ctx) error {
	ctx, cancel := opCtx(c)
	defer cancel()
	docs, err := h.store.List(ctx, false)
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, docs)
}

func (h *ContentHandler) Create(c *fiber.Ctx) error {
	var in contentInput
	if err := c.BodyParser(&in); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	if in.Key == nil || *in.Key == "" {
		return utils.JSONError(c, fiber.StatusBadRequest, "key is required")
	}
	doc := &models.SiteContent{
		Key:      *in.Key,
		Title:    strOrEmpty(in.Title),
		Content:  strOrEmpty(in.Content),
		Items:    in.Items,
		IsActive: boolOrDefault(in.IsActive, true),
	}
	if doc.Items == nil {
		doc.Items = []string{}
	}
	ctx, cancel := opCtx(c)
	defer cancel()
	if err := h.store.Insert(ctx, doc); err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, doc)
}

// Update patches a block by key. The key field itself is immutable so
// existing page lookups never dangle.
func (h *ContentHandler) Update(c *fiber.Ctx) error {
	var in contentInput
	if err := c.BodyParser(&in); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	set := bson.M{}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Content != nil {
		set["content"] = *in.Content
	}
	if in.Items != nil {
		set["items"] = in.Items
	}
	if in.IsActive != nil {
		set["is_active"] = *in.IsActive
	}
	ctx, cancel := opCtx(c)
	defer cancel()
	doc, err := h.store.UpdateByKey(ctx, c.Params("key"), set)
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, doc)
}

func (h *ContentHandler) Delete(c *fiber.Ctx) error {
	ctx, cancel := opCtx(c)
	defer cancel()
	if err := h.store.DeleteByKey(ctx, c.Params("key")); err != nil {
		return storeErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
