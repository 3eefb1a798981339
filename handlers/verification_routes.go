// handlers/verification_routes.go
package handlers

import (
	"time"

	"litter-cleanup-system/config"
	"litter-cleanup-system/middleware"
	"litter-cleanup-system/models"
	"litter-cleanup-system/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func SetupVerificationRoutes(app *fiber.App, verifications *services.VerificationService, cfg *config.Config) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	submitLimiter := limiter.New(limiter.Config{
		Max:        cfg.RateLimit.VerificationsPerHour,
		Expiration: time.Hour,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "verifications:" + c.Get("X-User-ID")
		},
	})

	secured.Post("/reports/:id/verify", submitLimiter, func(c *fiber.Ctx) error {
		var req models.CreateVerificationRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		record, err := verifications.Submit(c.Params("id"), currentUserID(c), req)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(record)
	})

	secured.Get("/reports/:id/verifications", func(c *fiber.Ctx) error {
		records, err := verifications.List(c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(records)
	})
}
