// handlers/feed_routes.go
package handlers

import (
	"strconv"

	"litter-cleanup-system/middleware"
	"litter-cleanup-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupFeedRoutes(app *fiber.App, feed *services.FeedService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/feed", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "50"))
		items, err := feed.Recent(limit)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(items)
	})
}
