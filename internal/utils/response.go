package utils

import "github.com/gofiber/fiber/v2"

// Every API response wears the same envelope so the dashboard and the
// public pages share one response decoder: successes carry `data`,
// failures carry `message`.

func JSONSuccess(c *fiber.Ctx, status int, payload interface{}) error {
	return c.Status(status).JSON(fiber.Map{"status": "ok", "data": payload})
}

func JSONError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"status": "error", "message": msg})
}
