// middleware/auth.go
package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// UserContextMiddleware extracts the authenticated user identity the
// Gateway forwards in headers and attaches it to the request context.
// Routes behind it can rely on a non-empty user id.
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-User-ID — request must come through gateway with auth context",
			})
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}
