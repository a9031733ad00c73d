package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"school-site-backend/internal/services"
	"school-site-backend/internal/utils"
)

// JWTAuth gates the admin namespace. On failure the client is expected to
// clear its stored credentials and re-prompt login.
func JWTAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return utils.JSONError(c, fiber.StatusUnauthorized, "missing authorization")
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return utils.JSONError(c, fiber.StatusUnauthorized, "invalid authorization")
		}
		claims, err := auth.Verify(parts[1])
		if err != nil {
			return utils.JSONError(c, fiber.StatusUnauthorized, "invalid token")
		}
		c.Locals("admin_id", claims.AdminID)
		c.Locals("admin_username", claims.Username)
		return c.Next()
	}
}
