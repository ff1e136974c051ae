package services

import (
	"errors"
	"path/filepath"
	"strings"

	"bingo-archive-system/models"
	"bingo-archive-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const maxBoardImageSize = 10 * 1024 * 1024 // 10MB

type BoardService struct {
	DB *gorm.DB
}

func NewBoardService(db *gorm.DB) *BoardService {
	return &BoardService{DB: db}
}

// UploadBoard stores a board image in R2 and records it. Boards are
// immutable: there is no update or delete route.
func (s *BoardService) UploadBoard(c *fiber.Ctx) error {
	imageFile, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image is required"})
	}
	if imageFile.Size > maxBoardImageSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image too large (max 10MB)"})
	}

	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		title = strings.TrimSuffix(imageFile.Filename, filepath.Ext(imageFile.Filename))
	}

	ext := filepath.Ext(imageFile.Filename)
	if ext == "" {
		ext = ".png"
	}
	key := "boards/" + slug.Make(title) + "-" + uuid.NewString()[:8] + ext

	imageURL, err := utils.UploadFileToR2(imageFile, key)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload board image"})
	}

	board := models.Board{
		ID:       uuid.NewString(),
		Title:    title,
		ImageURL: imageURL,
		Source:   c.FormValue("source"),
	}
	if err := s.DB.Create(&board).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save board"})
	}

	return c.Status(fiber.StatusCreated).JSON(board)
}

// ListBoards returns the gallery, newest first.
func (s *BoardService) ListBoards(c *fiber.Ctx) error {
	var boards []models.Board
	if err := s.DB.Order("created_at DESC").Find(&boards).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch boards"})
	}
	return c.JSON(boards)
}

func (s *BoardService) GetBoardByID(c *fiber.Ctx) error {
	id := c.Params("id")

	var board models.Board
	if err := s.DB.First(&board, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "board not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}
	return c.JSON(board)
}
