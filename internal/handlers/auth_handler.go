package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"school-site-backend/internal/services"
	"school-site-backend/internal/utils"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type credentialsInput struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
}

// Setup creates the admin account. Refused once one exists.
func (h *AuthHandler) Setup(c *fiber.Ctx) error {
	var in credentialsInput
	if err := c.BodyParser(&in); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := validate.Struct(in); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
	}
	ctx, cancel := opCtx(c)
	defer cancel()
	acc, err := h.auth.Setup(ctx, in.Username, in.Password)
	if errors.Is(err, services.ErrAdminExists) {
		return utils.JSONError(c, fiber.StatusConflict, "admin account already exists")
	}
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, acc)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in credentialsInput
	if err := c.BodyParser(&in); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	if in.Username == "" || in.Password == "" {
		return utils.JSONError(c, fiber.StatusBadRequest, "username and password are required")
	}
	ctx, cancel := opCtx(c)
	defer cancel()
	token, err := h.auth.Login(ctx, in.Username, in.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		return utils.JSONError(c, fiber.StatusUnauthorized, "invalid username or password")
	}
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"token": token})
}

// Verify runs behind the auth middleware; reaching it means the token is
// good.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{
		"valid":    true,
		"username": c.Locals("admin_username"),
	})
}

// Reset replaces the admin account. Runs behind the auth middleware.
func (h *AuthHandler) Reset(c *fiber.Ctx) error {
	var in credentialsInput
	if err := c.BodyParser(&in); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := validate.Struct(in); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
	}
	ctx, cancel := opCtx(c)
	defer cancel()
	acc, err := h.auth.Reset(ctx, in.Username, in.Password)
	if err != nil {
		return storeErr(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, acc)
}
