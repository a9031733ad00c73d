package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"

	"school-site-backend/internal/models"
	"school-site-backend/internal/repository"
	"school-site-backend/internal/utils"
)

type CurriculumHandler struct {
	store Store[models.CurriculumLevel]
}

func NewCurriculumHandler(store Store[models.CurriculumLevel]) *CurriculumHandler {
	return &CurriculumHandler{store: store}
}

type curriculumInput struct {
	Level       *string          `json:"level"`
	Title       *string          `json:"title"`
	Age         *string          `json:"age"`
	Description *string          `json:"description"`
	Subjects    []models.Subject `json:"subjects"`
	Streams     []string         `json:"streams"`
	Highlights  []string         `json:"highlights"`
	Order       *int             `json:"order"`
	IsActive    *bool            `json:"isActive"`
}

func (h *CurriculumHandler) List(c *fiber.Ctx) error {
	ctx, cancel := opCtx(c)
	defer cancel()
	docs, err := h.store.List(ctx, repository.ListQuery{
		ActiveOnly: true,
		Level:      c.Query("level"),
	})
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, docs)
}

func (h *CurriculumHandler) AdminList(c *fiber.Ctx) error {
	ctx, cancel := opCtx(c)
	defer cancel()
	docs, err := h.store.List(ctx, repository.ListQuery{Level: c.Query("level")})
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, docs)
}

func (h *CurriculumHandler) Get(c *fiber.Ctx) error {
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

func (h *CurriculumHandler) Create(c *fiber.Ctx) error {
	var in curriculumInput
	if err := c.BodyParser(&in); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	if in.Level == nil || !models.ValidCurriculumLevel(*in.Level) {
		return utils.JSONError(c, fiber.StatusBadRequest, "unknown curriculum level")
	}
	if in.Title == nil || *in.Title == "" {
		return utils.JSONError(c, fiber.StatusBadRequest, "title is required")
	}
	now := time.Now().UTC()
	doc := &models.CurriculumLevel{
		Level:       *in.Level,
		Title:       *in.Title,
		Age:         strOrEmpty(in.Age),
		Description: strOrEmpty(in.Description),
		Subjects:    in.Subjects,
		Streams:     in.Streams,
		Highlights:  in.Highlights,
		Order:       intOrDefault(in.Order, 0),
		IsActive:    boolOrDefault(in.IsActive, true),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if doc.Subjects == nil {
		doc.Subjects = []models.Subject{}
	}
	if doc.Streams == nil {
		doc.Streams = []string{}
	}
	if doc.Highlights == nil {
		doc.Highlights = []string{}
	}
	ctx, cancel := opCtx(c)
	defer cancel()
	id, err := h.store.Insert(ctx, doc)
	if err != nil {
		return storeErr(c, err)
	}
	doc.ID = id
	return utils.JSONSuccess(c, fiber.StatusCreated, doc)
}

func (h *CurriculumHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.JSONError(c, fiber.StatusNotFound, "not found")
	}
	var in curriculumInput
	if err := c.BodyParser(&in); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	if in.Level != nil && !models.ValidCurriculumLevel(*in.Level) {
		return utils.JSONError(c, fiber.StatusBadRequest, "unknown curriculum level")
	}
	set := bson.M{"updated_at": time.Now().UTC()}
	if in.Level != nil {
		set["level"] = *in.Level
	}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Age != nil {
		set["age"] = *in.Age
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}
	if in.Subjects != nil {
		set["subjects"] = in.Subjects
	}
	if in.Streams != nil {
		set["streams"] = in.Streams
	}
	if in.Highlights != nil {
		set["highlights"] = in.Highlights
	}
	if in.Order != nil {
		set["order"] = *in.Order
	}
	if in.IsActive != nil {
		set["is_active"] = *in.IsActive
	}
	ctx, cancel := opCtx(c)
	defer cancel()
	doc, err := h.store.Update(ctx, id, set)
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, doc)
}

func (h *CurriculumHandler) Delete(c *fiber.Ctx) error {
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
