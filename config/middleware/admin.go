package middleware

import (
	"github.com/gofiber/fiber/v2"

	"hackathon-portal/models"
)

func AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("user").(*models.Claims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated or corrupted session data"})
		}

		if claims.Role != "admin" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not authorized to perform this action."})
		}

		return c.Next()
	}
}
