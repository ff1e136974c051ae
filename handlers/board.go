package handlers

import (
	"bingo-archive-system/middleware"
	"bingo-archive-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupBoardRoutes(app *fiber.App, boardService *services.BoardService) {
	app.Get("/boards", boardService.ListBoards)
	app.Get("/boards/:id", boardService.GetBoardByID)

	// Boards are immutable once uploaded — no update or delete routes.
	secured := app.Group("/", middleware.UserContextMiddleware())
	secured.Post("/boards", boardService.UploadBoard)
}
