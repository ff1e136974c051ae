package handlers

import (
	"bingo-archive-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupStatsRoutes(app *fiber.App, statsService *services.StatsService) {
	// All read-only and recomputed from the snapshot on demand.
	app.Get("/stats", statsService.GetStats)
	app.Post("/stats/refresh", statsService.RefreshStats)
	app.Get("/achievements", statsService.GetCatalog)
	app.Get("/players/:id/achievements", statsService.GetPlayerAchievements)
	app.Get("/players/:id/head-to-head", statsService.GetPlayerHeadToHead)
}
