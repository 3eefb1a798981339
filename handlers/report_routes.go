// handlers/report_routes.go
package handlers

import (
	"strconv"
	"time"

	"litter-cleanup-system/config"
	"litter-cleanup-system/middleware"
	"litter-cleanup-system/models"
	"litter-cleanup-system/services"
	"litter-cleanup-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

const defaultNearbyRadiusKm = 5.0

func SetupReportRoutes(app *fiber.App, reports *services.ReportService, photos *services.PhotoStore, cfg *config.Config) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	maxPhotoBytes := cfg.Photo.MaxSizeMB * 1024 * 1024

	// Report creation is the most abuse-prone write; it gets its own
	// hourly budget per user.
	createLimiter := limiter.New(limiter.Config{
		Max:        cfg.RateLimit.ReportsPerHour,
		Expiration: time.Hour,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "reports:" + c.Get("X-User-ID")
		},
	})

	secured.Post("/reports", createLimiter, func(c *fiber.Ctx) error {
		userID := currentUserID(c)

		var req models.CreateReportRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid coordinates"})
		}
		if req.PhotoBase64 == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A before photo is required"})
		}

		data, contentType, err := utils.DecodePhotoDataURI(req.PhotoBase64, maxPhotoBytes)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		photoRef, err := photos.Store(c.Context(), data, contentType)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store photo"})
		}

		report, err := reports.CreateReport(userID, req, photoRef)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(report)
	})

	secured.Get("/reports/nearby", func(c *fiber.Ctx) error {
		lat, errLat := strconv.ParseFloat(c.Query("latitude"), 64)
		lon, errLon := strconv.ParseFloat(c.Query("longitude"), 64)
		if errLat != nil || errLon != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid coordinates"})
		}
		radiusKm := defaultNearbyRadiusKm
		if v := c.Query("radius_km"); v != "" {
			r, err := strconv.ParseFloat(v, 64)
			if err != nil || r <= 0 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid radius_km"})
			}
			radiusKm = r
		}

		found, err := reports.GetNearby(lat, lon, radiusKm)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(found)
	})

	secured.Get("/reports/my-reports", func(c *fiber.Ctx) error {
		found, err := reports.GetUserReports(currentUserID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(found)
	})

	secured.Get("/reports/my-clears", func(c *fiber.Ctx) error {
		found, err := reports.GetUserClearedReports(currentUserID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(found)
	})

	secured.Get("/reports/:id", func(c *fiber.Ctx) error {
		report, err := reports.GetReport(c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(report)
	})

	secured.Post("/reports/:id/claim", func(c *fiber.Ctx) error {
		report, err := reports.ClaimReport(c.Params("id"), currentUserID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(report)
	})

	secured.Post("/reports/:id/clear", func(c *fiber.Ctx) error {
		userID := currentUserID(c)

		var req models.ClearReportRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.PhotoBase64 == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "An after photo is required"})
		}

		data, contentType, err := utils.DecodePhotoDataURI(req.PhotoBase64, maxPhotoBytes)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		photoRef, err := photos.Store(c.Context(), data, contentType)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store photo"})
		}

		report, err := reports.ClearReport(c.Params("id"), userID, photoRef)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(report)
	})
}
