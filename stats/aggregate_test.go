package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bingo-archive-system/models"
)

var (
	alice = &models.Player{ID: "p-alice", Name: "Alice", Color: "#e74c3c"}
	bob   = &models.Player{ID: "p-bob", Name: "Bob", Color: "#3498db"}
	cora  = &models.Player{ID: "p-cora", Name: "Cora", Color: "#2ecc71"}
)

// day returns an evening timestamp on the nth of March 2025.
func day(n int) time.Time {
	return time.Date(2025, time.March, n, 20, 0, 0, 0, time.UTC)
}

type part struct {
	player *models.Player
	won    bool
}

func mkMatch(id string, playedAt time.Time, duration, outcome string, parts ...part) models.Match {
	m := models.Match{
		ID:       id,
		Title:    "Match " + id,
		PlayedAt: playedAt,
		Outcome:  outcome,
		BoardID:  "b-" + id,
		Metadata: models.MatchMetadata{Duration: duration},
	}
	for i, p := range parts {
		won := p.won
		m.Players = append(m.Players, models.MatchPlayer{
			ID:       id + "-" + p.player.ID,
			MatchID:  id,
			PlayerID: p.player.ID,
			Player:   p.player,
			Position: i,
			IsWinner: &won,
		})
	}
	return m
}

func TestComputeStatsEmptyInput(t *testing.T) {
	res := ComputeStats(nil)

	assert.Equal(t, 0, res.TotalMatches)
	assert.Equal(t, float64(0), res.TotalMinutesPlayed)
	assert.Equal(t, "0m", res.TotalPlayedDisplay)
	assert.Nil(t, res.Durations.Longest)
	assert.Nil(t, res.Durations.Shortest)
	assert.Empty(t, res.Players)
	assert.Empty(t, res.Chart.WinSeries)
	assert.Empty(t, res.Chart.Monthly)
}

func TestComputeStatsDurations(t *testing.T) {
	matches := []models.Match{
		mkMatch("m1", day(1), "1h", models.OutcomeBingo, part{alice, true}),
		mkMatch("m2", day(2), "", models.OutcomeBingo, part{alice, true}), // untimed: skipped everywhere
		mkMatch("m3", day(3), "2h", models.OutcomeBingo, part{alice, false}),
		mkMatch("m4", day(4), "120m", models.OutcomeBingo, part{alice, false}), // ties m3, first stays
	}
	res := ComputeStats(matches)

	assert.Equal(t, 4, res.TotalMatches)
	assert.Equal(t, float64(300), res.TotalMinutesPlayed) // counted once per match

	require.NotNil(t, res.Durations.Longest)
	require.NotNil(t, res.Durations.Shortest)
	assert.Equal(t, "m3", res.Durations.Longest.MatchID) // tie kept first encountered
	assert.Equal(t, "m1", res.Durations.Shortest.MatchID)

	// Average over the three timed matches only.
	assert.InDelta(t, 100.0, res.Durations.AverageMinutes, 1e-9)
}

func TestComputeStatsStreaks(t *testing.T) {
	// Alice: W W W L W W → longest 3, current 2.
	matches := []models.Match{
		mkMatch("m1", day(1), "", models.OutcomeBingo, part{alice, true}),
		mkMatch("m2", day(2), "", models.OutcomeBingo, part{alice, true}),
		mkMatch("m3", day(3), "", models.OutcomeBingo, part{alice, true}),
		mkMatch("m4", day(4), "", models.OutcomeBingo, part{alice, false}),
		mkMatch("m5", day(5), "", models.OutcomeBingo, part{alice, true}),
		mkMatch("m6", day(6), "", models.OutcomeBingo, part{alice, true}),
	}
	res := ComputeStats(matches)

	require.Len(t, res.Players, 1)
	row := res.Players[0]
	assert.Equal(t, 3, row.LongestStreak)
	assert.Equal(t, 2, row.CurrentStreak)
	assert.GreaterOrEqual(t, row.LongestStreak, row.CurrentStreak)
}

func TestComputeStatsStreakUsesPlayDateNotInputOrder(t *testing.T) {
	// Fed out of order: the scan must sort by played_at first.
	matches := []models.Match{
		mkMatch("m3", day(3), "", models.OutcomeBingo, part{alice, false}),
		mkMatch("m1", day(1), "", models.OutcomeBingo, part{alice, true}),
		mkMatch("m2", day(2), "", models.OutcomeBingo, part{alice, true}),
	}
	res := ComputeStats(matches)

	require.Len(t, res.Players, 1)
	assert.Equal(t, 2, res.Players[0].LongestStreak)
	assert.Equal(t, 0, res.Players[0].CurrentStreak) // most recent match was a loss
}

func TestComputeStatsLeaderboardOrder(t *testing.T) {
	// Alice 2 wins / 2 matches, Bob 1 win / 4 matches, Cora 1 win / 4 matches.
	matches := []models.Match{
		mkMatch("m1", day(1), "", models.OutcomeBingo, part{alice, true}, part{bob, false}, part{cora, false}),
		mkMatch("m2", day(2), "", models.OutcomeBingo, part{alice, true}, part{bob, false}, part{cora, false}),
		mkMatch("m3", day(3), "", models.OutcomeBingo, part{bob, true}, part{cora, false}),
		mkMatch("m4", day(4), "", models.OutcomeBingo, part{cora, true}, part{bob, false}),
	}
	res := ComputeStats(matches)

	require.Len(t, res.Players, 3)
	assert.Equal(t, "Alice", res.Players[0].Name) // most wins
	assert.Equal(t, "Bob", res.Players[1].Name)   // tied with Cora on wins and matches: name breaks it
	assert.Equal(t, "Cora", res.Players[2].Name)
}

func TestComputeStatsPlayerRows(t *testing.T) {
	matches := []models.Match{
		mkMatch("m1", day(1), "1h", models.OutcomeBingo, part{alice, true}, part{bob, false}),
		mkMatch("m2", day(2), "", models.OutcomeBingo, part{alice, false}, part{bob, true}),
		mkMatch("m3", day(3), "30m", models.OutcomeDraw, part{alice, false}),
	}
	res := ComputeStats(matches)
	require.Len(t, res.Players, 2)

	var aliceRow *PlayerRow
	for i := range res.Players {
		if res.Players[i].PlayerID == alice.ID {
			aliceRow = &res.Players[i]
		}
	}
	require.NotNil(t, aliceRow)

	assert.Equal(t, 3, aliceRow.Matches)
	assert.Equal(t, 1, aliceRow.Wins)
	assert.InDelta(t, 100.0/3.0, aliceRow.WinRate, 1e-9)
	assert.Equal(t, float64(90), aliceRow.TotalMinutes)
	assert.InDelta(t, 45, aliceRow.AvgMinutes, 1e-9) // two timed matches of her three
	assert.Equal(t, alice.Color, res.Chart.Colors["Alice"])
}

func TestComputeStatsMatchWithoutParticipants(t *testing.T) {
	matches := []models.Match{
		mkMatch("m1", day(1), "45m", models.OutcomeAbandoned),
	}
	res := ComputeStats(matches)

	assert.Equal(t, 1, res.TotalMatches)
	assert.Equal(t, float64(45), res.TotalMinutesPlayed)
	require.NotNil(t, res.Durations.Longest)
	assert.Empty(t, res.Players)
}

func TestComputeStatsWinSeriesFoldsSameDate(t *testing.T) {
	sameDay := day(1)
	matches := []models.Match{
		mkMatch("m1", sameDay, "", models.OutcomeBingo, part{alice, true}),
		mkMatch("m2", sameDay.Add(2*time.Hour), "", models.OutcomeBingo, part{alice, true}),
		mkMatch("m3", day(2), "", models.OutcomeBingo, part{bob, true}, part{alice, false}),
	}
	res := ComputeStats(matches)

	require.Len(t, res.Chart.WinSeries, 2) // one point per distinct date

	first := res.Chart.WinSeries[0]
	assert.Equal(t, "2025-03-01", first.Date)
	assert.Equal(t, 2, first.CumulativeWins["Alice"]) // totals after both of the day's matches

	second := res.Chart.WinSeries[1]
	assert.Equal(t, "2025-03-02", second.Date)
	assert.Equal(t, 2, second.CumulativeWins["Alice"]) // cumulative, carried forward
	assert.Equal(t, 1, second.CumulativeWins["Bob"])
}

func TestComputeStatsMonthlyHistogram(t *testing.T) {
	matches := []models.Match{
		mkMatch("m1", time.Date(2025, time.January, 5, 19, 0, 0, 0, time.UTC), "", models.OutcomeBingo, part{alice, true}),
		mkMatch("m2", time.Date(2025, time.January, 20, 19, 0, 0, 0, time.UTC), "", models.OutcomeBingo, part{alice, true}),
		mkMatch("m3", time.Date(2025, time.March, 2, 19, 0, 0, 0, time.UTC), "", models.OutcomeBingo, part{alice, true}),
	}
	res := ComputeStats(matches)

	require.Len(t, res.Chart.Monthly, 2)
	assert.Equal(t, MonthlyCount{Month: "2025-01", Label: "Jan 2025", Matches: 2}, res.Chart.Monthly[0])
	assert.Equal(t, MonthlyCount{Month: "2025-03", Label: "Mar 2025", Matches: 1}, res.Chart.Monthly[1])
}

func TestComputeStatsNilWinnerFlagIsALoss(t *testing.T) {
	m := mkMatch("m1", day(1), "", models.OutcomeBingo, part{bob, true})
	m.Players = append(m.Players, models.MatchPlayer{
		ID: "m1-p-alice", MatchID: "m1", PlayerID: alice.ID, Player: alice, Position: 1, IsWinner: nil,
	})
	res := ComputeStats([]models.Match{m})

	for _, row := range res.Players {
		if row.PlayerID == alice.ID {
			assert.Equal(t, 0, row.Wins)
			assert.Equal(t, 1, row.Matches)
		}
	}
}
