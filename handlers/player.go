package handlers

import (
	"bingo-archive-system/middleware"
	"bingo-archive-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupPlayerRoutes(app *fiber.App, playerService *services.PlayerService) {
	app.Get("/players", playerService.ListPlayers)
	app.Get("/players/:id", playerService.GetPlayerByID)

	secured := app.Group("/", middleware.UserContextMiddleware())
	secured.Post("/players", playerService.CreatePlayer)
	secured.Put("/players/:id", playerService.UpdatePlayer)
}
