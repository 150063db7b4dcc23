package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"hackathon-portal/pkg/paseto"
)

func AuthMiddleware() fiber.Handler {
	maker, makerErr := paseto.NewPasetoMaker()

	return func(c *fiber.Ctx) error {
		if makerErr != nil || maker == nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Token verification is not configured"})
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authorization header is required"})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authorization header format must be Bearer <token>"})
		}

		tokenString := parts[1]

		claims, err := maker.ValidateToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token", "details": err.Error()})
		}

		c.Locals("user", claims)

		return c.Next()
	}
}
