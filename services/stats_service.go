package services

import (
	"errors"
	"sort"

	"bingo-archive-system/models"
	"bingo-archive-system/stats"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type StatsService struct {
	DB    *gorm.DB
	Cache *SnapshotCache
}

func NewStatsService(db *gorm.DB, cache *SnapshotCache) *StatsService {
	return &StatsService{DB: db, Cache: cache}
}

// snapshot returns the cached match list, fetching on miss.
func (s *StatsService) snapshot() ([]models.Match, error) {
	if matches, ok := s.Cache.Get(); ok {
		return matches, nil
	}
	return s.refreshSnapshot()
}

func (s *StatsService) refreshSnapshot() ([]models.Match, error) {
	gen := s.Cache.Begin()
	var matches []models.Match
	err := s.DB.Preload("Players.Player").Preload("Board").
		Order("played_at ASC").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	s.Cache.Complete(gen, matches)
	return matches, nil
}

// GetStats computes the full aggregate over the current snapshot.
func (s *StatsService) GetStats(c *fiber.Ctx) error {
	matches, err := s.snapshot()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load matches"})
	}
	return c.JSON(stats.ComputeStats(matches))
}

// RefreshStats forces a fresh fetch before computing. This is the explicit
// refresh operation — nothing refetches in the background.
func (s *StatsService) RefreshStats(c *fiber.Ctx) error {
	matches, err := s.refreshSnapshot()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load matches"})
	}
	return c.JSON(stats.ComputeStats(matches))
}

// GetCatalog returns the full badge catalog, locked entries included.
func (s *StatsService) GetCatalog(c *fiber.Ctx) error {
	return c.JSON(stats.Catalog())
}

// GetPlayerAchievements returns the badges one player has unlocked.
func (s *StatsService) GetPlayerAchievements(c *fiber.Ctx) error {
	id := c.Params("id")

	var player models.Player
	if err := s.DB.First(&player, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "player not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}

	matches, err := s.snapshot()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load matches"})
	}

	history, summary := playerHistory(id, matches)
	return c.JSON(fiber.Map{
		"player":       player,
		"achievements": stats.ComputePlayerAchievements(history, summary),
	})
}

// GetPlayerHeadToHead returns the player's rivalry tallies.
func (s *StatsService) GetPlayerHeadToHead(c *fiber.Ctx) error {
	id := c.Params("id")

	var player models.Player
	if err := s.DB.First(&player, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "player not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}

	matches, err := s.snapshot()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load matches"})
	}

	return c.JSON(fiber.Map{
		"player":    player,
		"rivalries": stats.ComputeHeadToHead(id, matches),
	})
}

// playerHistory extracts one player's chronological participation history
// and the summary counts the achievement predicates gate on.
func playerHistory(playerID string, matches []models.Match) ([]stats.Participation, stats.PlayerSummary) {
	history := []stats.Participation{}
	for i := range matches {
		m := &matches[i]
		for j := range m.Players {
			if m.Players[j].PlayerID != playerID {
				continue
			}
			history = append(history, stats.Participation{
				MatchID:  m.ID,
				PlayedAt: m.PlayedAt,
				Won:      m.Players[j].Won(),
				Outcome:  m.Outcome,
				Minutes:  stats.ParseDuration(m.Metadata.Duration),
			})
			break // a player appears at most once per match
		}
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].PlayedAt.Before(history[j].PlayedAt)
	})

	var summary stats.PlayerSummary
	summary.TotalMatches = len(history)
	var run int
	for _, p := range history {
		if !p.Won {
			run = 0
			continue
		}
		summary.Wins++
		run++
		if run > summary.LongestStreak {
			summary.LongestStreak = run
		}
		if p.Outcome == models.OutcomeBlackout {
			summary.BlackoutWins++
		}
	}
	return history, summary
}
