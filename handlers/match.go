package handlers

import (
	"bingo-archive-system/middleware"
	"bingo-archive-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupMatchRoutes(app *fiber.App, matchService *services.MatchService) {
	// Public: the gallery and archive are readable by anyone behind the gateway.
	app.Get("/matches", matchService.ListMatches)
	app.Get("/matches/:id", matchService.GetMatchByID)
	app.Get("/matches/:id/comments", matchService.GetCommentsByMatch)

	// Submitting matches and comments requires a signed-in user.
	secured := app.Group("/", middleware.UserContextMiddleware())
	secured.Post("/matches", matchService.CreateMatch)
	secured.Post("/matches/:id/comments", matchService.CreateComment)

	// Editing the archive after the fact is for curators only.
	curated := secured.Group("/", middleware.RequireRoles("curator", "admin"))
	curated.Put("/matches/:id", matchService.UpdateMatch)
	curated.Patch("/matches/:id", matchService.UpdateMatch)
	curated.Delete("/matches/:id", matchService.DeleteMatch)
}
