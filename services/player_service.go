package services

import (
	"errors"
	"strings"

	"bingo-archive-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlayerService struct {
	DB *gorm.DB
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{DB: db}
}

type CreatePlayerRequest struct {
	Name      string  `json:"name"`
	Color     string  `json:"color"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// CreatePlayer registers a player. Name uniqueness is case-insensitive:
// "Alice" and "ALICE" are the same person.
func (s *PlayerService) CreatePlayer(c *fiber.Ctx) error {
	var req CreatePlayerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	var count int64
	if err := s.DB.Model(&models.Player{}).
		Where("LOWER(name) = LOWER(?)", req.Name).
		Count(&count).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "a player with that name already exists"})
	}

	player := models.Player{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Color:     req.Color,
		AvatarURL: req.AvatarURL,
	}
	if player.Color == "" {
		player.Color = "#888888"
	}
	if err := s.DB.Create(&player).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save player"})
	}
	return c.Status(fiber.StatusCreated).JSON(player)
}

type UpdatePlayerRequest struct {
	Name      *string `json:"name,omitempty"`
	Color     *string `json:"color,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

func (s *PlayerService) UpdatePlayer(c *fiber.Ctx) error {
	id := c.Params("id")

	var player models.Player
	if err := s.DB.First(&player, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "player not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}

	var req UpdatePlayerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name cannot be empty"})
		}
		var count int64
		if err := s.DB.Model(&models.Player{}).
			Where("LOWER(name) = LOWER(?) AND id <> ?", name, id).
			Count(&count).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
		}
		if count > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "a player with that name already exists"})
		}
		player.Name = name
	}
	if req.Color != nil {
		player.Color = *req.Color
	}
	if req.AvatarURL != nil {
		player.AvatarURL = req.AvatarURL
	}

	if err := s.DB.Save(&player).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update player"})
	}
	return c.JSON(player)
}

func (s *PlayerService) GetPlayerByID(c *fiber.Ctx) error {
	id := c.Params("id")

	var player models.Player
	if err := s.DB.First(&player, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "player not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}
	return c.JSON(player)
}

// ListPlayers returns all players; ?q= narrows by name substring,
// case-insensitive.
func (s *PlayerService) ListPlayers(c *fiber.Ctx) error {
	db := s.DB.Model(&models.Player{}).Order("name ASC")

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var players []models.Player
	if err := db.Find(&players).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "search failed"})
	}
	return c.JSON(players)
}
