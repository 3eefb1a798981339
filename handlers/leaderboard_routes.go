// handlers/leaderboard_routes.go
package handlers

import (
	"strings"

	"litter-cleanup-system/middleware"
	"litter-cleanup-system/services"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var scopeTitler = cases.Title(language.Und)

func SetupLeaderboardRoutes(app *fiber.App, scoring *services.ScoringService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/leaderboards", func(c *fiber.Ctx) error {
		return serveLeaderboard(c, scoring, services.ScopeGlobal, "")
	})

	secured.Get("/leaderboards/city/:city", func(c *fiber.Ctx) error {
		return serveLeaderboard(c, scoring, services.ScopeCity, c.Params("city"))
	})

	secured.Get("/leaderboards/country/:country", func(c *fiber.Ctx) error {
		return serveLeaderboard(c, scoring, services.ScopeCountry, c.Params("country"))
	})

	secured.Get("/users/me/score", func(c *fiber.Ctx) error {
		score, err := scoring.GetUserScore(currentUserID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(score)
	})
}

func serveLeaderboard(c *fiber.Ctx, scoring *services.ScoringService, scope services.LeaderboardScope, scopeValue string) error {
	period := services.LeaderboardPeriod(c.Query("period", string(services.PeriodAllTime)))

	entries, err := scoring.Leaderboard(scope, scopeValue, period)
	if err != nil {
		return respondError(c, err)
	}

	resp := fiber.Map{
		"scope":   scope,
		"period":  period,
		"entries": entries,
	}
	if scopeValue != "" {
		resp["scope_label"] = scopeTitler.String(strings.ReplaceAll(scopeValue, "-", " "))
	}
	return c.JSON(resp)
}
