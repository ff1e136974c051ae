package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bingo-archive-system/models"
)

func histMatch(id string, playedAt time.Time, outcome, duration string, playerID string, won bool) models.Match {
	return models.Match{
		ID:       id,
		PlayedAt: playedAt,
		Outcome:  outcome,
		Metadata: models.MatchMetadata{Duration: duration},
		Players: []models.MatchPlayer{
			{MatchID: id, PlayerID: playerID, IsWinner: &won},
		},
	}
}

func TestPlayerHistorySummary(t *testing.T) {
	base := time.Date(2025, time.June, 1, 19, 0, 0, 0, time.UTC)
	matches := []models.Match{
		histMatch("m1", base, models.OutcomeBingo, "50m", "p1", true),
		histMatch("m2", base.AddDate(0, 0, 1), models.OutcomeBlackout, "", "p1", true),
		histMatch("m3", base.AddDate(0, 0, 2), models.OutcomeBingo, "", "p1", false),
		histMatch("m4", base.AddDate(0, 0, 3), models.OutcomeBingo, "", "p2", true), // someone else's match
	}

	history, summary := playerHistory("p1", matches)

	require.Len(t, history, 3)
	assert.Equal(t, float64(50), history[0].Minutes)
	assert.Equal(t, models.OutcomeBlackout, history[1].Outcome)

	assert.Equal(t, 3, summary.TotalMatches)
	assert.Equal(t, 2, summary.Wins)
	assert.Equal(t, 2, summary.LongestStreak)
	assert.Equal(t, 1, summary.BlackoutWins)
}

func TestPlayerHistorySortsByPlayDate(t *testing.T) {
	base := time.Date(2025, time.June, 1, 19, 0, 0, 0, time.UTC)
	matches := []models.Match{
		histMatch("m2", base.AddDate(0, 0, 1), models.OutcomeBingo, "", "p1", false),
		histMatch("m1", base, models.OutcomeBingo, "", "p1", true),
	}

	history, summary := playerHistory("p1", matches)
	require.Len(t, history, 2)
	assert.Equal(t, "m1", history[0].MatchID)
	assert.Equal(t, 1, summary.LongestStreak)
}

func TestPlayerHistoryEmpty(t *testing.T) {
	history, summary := playerHistory("p1", nil)
	assert.Empty(t, history)
	assert.Zero(t, summary.TotalMatches)
	assert.Zero(t, summary.Wins)
}
