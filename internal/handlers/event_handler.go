package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"

	"school-site-backend/internal/models"
	"school-site-backend/internal/repository"
	"school-site-backend/internal/utils"
)

type EventHandler struct {
	store Store[models.AnnualEvent]
}

func NewEventHandler(store Store[models.AnnualEvent]) *EventHandler {
	return &EventHandler{store: store}
}

type eventInput struct {
	Month       *string `json:"month"`
	Date        *string `json:"date"`
	Title       *string `json:"title"`
	Type        *string `json:"type"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"isActive"`
}

func (h *EventHandler) List(c *fiber.Ctx) error {
	ctx, cancel := opCtx(c)
	defer cancel()
	docs, err := h.store.List(ctx, repository.ListQuery{
		ActiveOnly: true,
		Month:      c.Query("month"),
	})
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, docs)
}

func (h *EventHandler) AdminList(c *fiber.Ctx) error {
	ctx, cancel := opCtx(c)
	defer cancel()
	docs, err := h.store.List(ctx, repository.ListQuery{Month: c.Query("month")})
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, docs)
}

func (h *EventHandler) Get(c *fiber.Ctx) error {
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

func (h *EventHandler) Create(c *fiber.Ctx) error {
	var in eventInput
	if err := c.BodyParser(&in); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	if in.Month == nil || !models.ValidEventMonth(*in.Month) {
		return utils.JSONError(c, fiber.StatusBadRequest, "unknown month")
	}
	if in.Type != nil && !models.ValidEventType(*in.Type) {
		return utils.JSONError(c, fiber.StatusBadRequest, "unknown event type")
	}
	if in.Title == nil || *in.Title == "" {
		return utils.JSONError(c, fiber.StatusBadRequest, "title is required")
	}
	now := time.Now().UTC()
	doc := &models.AnnualEvent{
		Month:       *in.Month,
		Date:        strOrEmpty(in.Date),
		Title:       *in.Title,
		Type:        strOrEmpty(in.Type),
		Icon:        strOrEmpty(in.Icon),
		Description: strOrEmpty(in.Description),
		Order:       intOrDefault(in.Order, 0),
		IsActive:    boolOrDefault(in.IsActive, true),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if doc.Type == "" {
		doc.Type = "other"
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

func (h *EventHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.JSONError(c, fiber.StatusNotFound, "not found")
	}
	var in eventInput
	if err := c.BodyParser(&in); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	if in.Month != nil && !models.ValidEventMonth(*in.Month) {
		return utils.JSONError(c, fiber.StatusBadRequest, "unknown month")
	}
	if in.Type != nil && !models.ValidEventType(*in.Type) {
		return utils.JSONError(c, fiber.StatusBadRequest, "unknown event type")
	}
	set := bson.M{"updated_at": time.Now().UTC()}
	if in.Month != nil {
		set["month"] = *in.Month
	}
	if in.Date != nil {
		set["date"] = *in.Date
	}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Type != nil {
		set["type"] = *in.Type
	}
	if in.Icon != nil {
		set["icon"] = *in.Icon
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
	ctx, cancel := opCtx(c)
	defer cancel()
	doc, err := h.store.Update(ctx, id, set)
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, doc)
}

func (h *EventHandler) Delete(c *fiber.Ctx) error {
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
