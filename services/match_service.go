package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bingo-archive-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var validOutcomes = map[string]bool{
	models.OutcomeBingo:     true,
	models.OutcomeBlackout:  true,
	models.OutcomeAbandoned: true,
	models.OutcomeDraw:      true,
}

type MatchService struct {
	DB    *gorm.DB
	Cache *SnapshotCache
}

func NewMatchService(db *gorm.DB, cache *SnapshotCache) *MatchService {
	return &MatchService{DB: db, Cache: cache}
}

// ParticipantInput is one player entry of a match submission.
type ParticipantInput struct {
	PlayerID string `json:"player_id"`
	Color    string `json:"color"`
	IsWinner *bool  `json:"is_winner,omitempty"`
}

type CreateMatchRequest struct {
	Title     string             `json:"title"`
	PlayedAt  time.Time          `json:"played_at"`
	Outcome   string             `json:"outcome"`
	BoardID   string             `json:"board_id"`
	Duration  string             `json:"duration"` // free text, parsed by the stats engine
	Notes     string             `json:"notes"`
	Accolades []string           `json:"accolades"`
	Players   []ParticipantInput `json:"players"`
}

// validateParticipants mirrors what the submission form enforces: no
// duplicate players, at most one winner, and a winner only on outcomes
// that can have one.
func validateParticipants(players []ParticipantInput, outcome string) error {
	seen := map[string]bool{}
	var winners int
	for _, p := range players {
		if p.PlayerID == "" {
			return errors.New("participant missing player_id")
		}
		if seen[p.PlayerID] {
			return fmt.Errorf("player %s listed twice", p.PlayerID)
		}
		seen[p.PlayerID] = true
		if p.IsWinner != nil && *p.IsWinner {
			winners++
		}
	}
	if winners > 1 {
		return errors.New("a match can have at most one winner")
	}
	if winners > 0 && outcome != models.OutcomeBingo && outcome != models.OutcomeBlackout {
		return fmt.Errorf("outcome %q cannot have a winner", outcome)
	}
	return nil
}

// CreateMatch records a played session with its participants in one
// transaction.
func (s *MatchService) CreateMatch(c *fiber.Ctx) error {
	var req CreateMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}
	if !validOutcomes[req.Outcome] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid outcome"})
	}
	if req.BoardID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "board_id is required"})
	}
	if req.PlayedAt.IsZero() {
		req.PlayedAt = time.Now()
	}
	if err := validateParticipants(req.Players, req.Outcome); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var board models.Board
	if err := s.DB.First(&board, "id = ?", req.BoardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "board not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}

	match := &models.Match{
		ID:       uuid.NewString(),
		Title:    req.Title,
		PlayedAt: req.PlayedAt,
		Outcome:  req.Outcome,
		BoardID:  req.BoardID,
		Metadata: models.MatchMetadata{
			Duration: strings.TrimSpace(req.Duration),
			Notes:    req.Notes,
		},
		Accolades: req.Accolades,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(match).Error; err != nil {
			return err
		}

		var participants []models.MatchPlayer
		for i, p := range req.Players {
			participants = append(participants, models.MatchPlayer{
				ID:       uuid.NewString(),
				MatchID:  match.ID,
				PlayerID: p.PlayerID,
				Color:    p.Color,
				Position: i,
				IsWinner: p.IsWinner,
			})
		}
		if len(participants) > 0 {
			if err := tx.Create(&participants).Error; err != nil {
				return fmt.Errorf("failed to save participants: %w", err)
			}
		}

		return tx.Preload("Players.Player").Preload("Board").
			First(match, "id = ?", match.ID).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	s.Cache.Invalidate()
	return c.Status(fiber.StatusCreated).JSON(match)
}

// ListMatches returns matches ordered by play date, newest first.
// ?player_id= filters to matches that player participated in.
func (s *MatchService) ListMatches(c *fiber.Ctx) error {
	db := s.DB.Preload("Players.Player").Preload("Board").
		Order("played_at DESC")

	if playerID := c.Query("player_id"); playerID != "" {
		db = db.Joins("JOIN match_players ON match_players.match_id = matches.id").
			Where("match_players.player_id = ?", playerID)
	}

	var matches []models.Match
	if err := db.Find(&matches).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch matches"})
	}
	return c.JSON(matches)
}

func (s *MatchService) GetMatchByID(c *fiber.Ctx) error {
	id := c.Params("id")

	var match models.Match
	err := s.DB.Preload("Players.Player").Preload("Board").Preload("Comments").
		First(&match, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "match not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}
	return c.JSON(match)
}

type UpdateMatchRequest struct {
	Title     *string             `json:"title,omitempty"`
	PlayedAt  *time.Time          `json:"played_at,omitempty"`
	Outcome   *string             `json:"outcome,omitempty"`
	Duration  *string             `json:"duration,omitempty"`
	Notes     *string             `json:"notes,omitempty"`
	Accolades *[]string           `json:"accolades,omitempty"`
	Players   *[]ParticipantInput `json:"players,omitempty"` // full replacement when present
}

// UpdateMatch edits an existing record. Routes gate this behind curator
// roles; the handler trusts the middleware.
func (s *MatchService) UpdateMatch(c *fiber.Ctx) error {
	id := c.Params("id")

	var match models.Match
	if err := s.DB.First(&match, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "match not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}

	var req UpdateMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}

	if req.Title != nil {
		match.Title = strings.TrimSpace(*req.Title)
	}
	if req.PlayedAt != nil {
		match.PlayedAt = *req.PlayedAt
	}
	if req.Outcome != nil {
		if !validOutcomes[*req.Outcome] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid outcome"})
		}
		match.Outcome = *req.Outcome
	}
	if req.Duration != nil {
		match.Metadata.Duration = strings.TrimSpace(*req.Duration)
	}
	if req.Notes != nil {
		match.Metadata.Notes = *req.Notes
	}
	if req.Accolades != nil {
		match.Accolades = *req.Accolades
	}
	if req.Players != nil {
		if err := validateParticipants(*req.Players, match.Outcome); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&match).Error; err != nil {
			return err
		}
		if req.Players == nil {
			return nil
		}
		if err := tx.Where("match_id = ?", match.ID).Delete(&models.MatchPlayer{}).Error; err != nil {
			return err
		}
		var participants []models.MatchPlayer
		for i, p := range *req.Players {
			participants = append(participants, models.MatchPlayer{
				ID:       uuid.NewString(),
				MatchID:  match.ID,
				PlayerID: p.PlayerID,
				Color:    p.Color,
				Position: i,
				IsWinner: p.IsWinner,
			})
		}
		if len(participants) > 0 {
			return tx.Create(&participants).Error
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	s.Cache.Invalidate()

	if err := s.DB.Preload("Players.Player").Preload("Board").First(&match, "id = ?", match.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to reload match"})
	}
	return c.JSON(match)
}

// DeleteMatch removes a match with its participants and comments.
func (s *MatchService) DeleteMatch(c *fiber.Ctx) error {
	id := c.Params("id")

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("match_id = ?", id).Delete(&models.MatchPlayer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("match_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Match{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "match not found")
		}
		return nil
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	s.Cache.Invalidate()
	return c.SendStatus(fiber.StatusNoContent)
}

type CreateCommentRequest struct {
	AuthorName string `json:"author_name"`
	Body       string `json:"body"`
}

// CreateComment attaches a note to a match. Author is a free string, no
// identity binding.
func (s *MatchService) CreateComment(c *fiber.Ctx) error {
	matchID := c.Params("id")

	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}
	req.AuthorName = strings.TrimSpace(req.AuthorName)
	req.Body = strings.TrimSpace(req.Body)
	if req.AuthorName == "" || req.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "author_name and body are required"})
	}

	var match models.Match
	if err := s.DB.First(&match, "id = ?", matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "match not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}

	comment := models.Comment{
		ID:         uuid.NewString(),
		MatchID:    matchID,
		AuthorName: req.AuthorName,
		Body:       req.Body,
	}
	if err := s.DB.Create(&comment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save comment"})
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (s *MatchService) GetCommentsByMatch(c *fiber.Ctx) error {
	matchID := c.Params("id")

	var comments []models.Comment
	err := s.DB.Where("match_id = ?", matchID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch comments"})
	}
	return c.JSON(comments)
}
