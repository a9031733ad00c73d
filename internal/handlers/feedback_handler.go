package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"school-site-backend/internal/repository"
	"school-site-backend/internal/services"
	"school-site-backend/internal/utils"
)

type FeedbackHandler struct {
	svc  *services.FeedbackService
	repo services.FeedbackStore
}

func NewFeedbackHandler(svc *services.FeedbackService, repo services.FeedbackStore) *FeedbackHandler {
	return &FeedbackHandler{svc: svc, repo: repo}
}

type feedbackInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// Submit is the public contact form. The response depends only on
// persistence; the notification email happens off-path.
func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	var in feedbackInput
	if err := c.BodyParser(&in); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := validate.Struct(in); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
	}
	ctx, cancel := opCtx(c)
	defer cancel()
	fb, err := h.svc.Submit(ctx, services.FeedbackInput{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Subject: in.Subject,
		Message: in.Message,
	})
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, fb)
}

// MarkReadByToken handles the one-click link from the notification
// email. No auth; the per-feedback token is the capability.
func (h *FeedbackHandler) MarkReadByToken(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.JSONError(c, fiber.StatusNotFound, "not found")
	}
	ctx, cancel := opCtx(c)
	defer cancel()
	fb, err := h.svc.MarkReadByToken(ctx, id, c.Params("token"))
	if errors.Is(err, repository.ErrBadReadToken) {
		return utils.JSONError(c, fiber.StatusUnauthorized, "invalid token")
	}
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fb)
}

func (h *FeedbackHandler) AdminList(c *fiber.Ctx) error {
	ctx, cancel := opCtx(c)
	defer cancel()
	docs, err := h.repo.List(ctx)
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, docs)
}

func (h *FeedbackHandler) AdminMarkRead(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.JSONError(c, fiber.StatusNotFound, "not found")
	}
	ctx, cancel := opCtx(c)
	defer cancel()
	fb, err := h.repo.MarkRead(ctx, id)
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fb)
}

func (h *FeedbackHandler) AdminDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.JSONError(c, fiber.StatusNotFound, "not found")
	}
	ctx, cancel := opCtx(c)
	defer cancel()
	if err := h.repo.Delete(ctx, id); err != nil {
		return storeErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
