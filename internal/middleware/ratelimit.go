package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/diegousa/website-backend/internal/limiter"
	"github.com/diegousa/website-backend/internal/models"
)

// RateLimit rejects clients that exhausted their window with 429 and a
// machine-readable body. Keys by client IP.
func RateLimit(l limiter.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !l.Consume(c.IP()) {
			return c.Status(fiber.StatusTooManyRequests).
				JSON(models.ErrorResponse("Too many requests. Try again later."))
		}
		return c.Next()
	}
}
