package middleware

import (
	"github.com/gofiber/fiber/v2"

	"institute/backend/config"
	"institute/backend/utils"
)

// AuthMiddleware rejects requests without a valid session cookie.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, err := utils.ExtractAddressFromToken(c, cfg)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		return c.Next()
	}
}
