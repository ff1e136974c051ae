package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bingo-archive-system/models"
)

// hist builds a chronological history from a compact spec string:
// 'W' win, 'L' loss, one match per day starting March 1st 2025.
func hist(results string) []Participation {
	out := make([]Participation, 0, len(results))
	for i, r := range results {
		out = append(out, Participation{
			MatchID:  "m" + string(rune('a'+i)),
			PlayedAt: day(i + 1),
			Won:      r == 'W',
			Outcome:  models.OutcomeBingo,
		})
	}
	return out
}

func summarize(history []Participation) PlayerSummary {
	var s PlayerSummary
	s.TotalMatches = len(history)
	var run int
	for _, p := range history {
		if p.Won {
			s.Wins++
			run++
			if run > s.LongestStreak {
				s.LongestStreak = run
			}
			if p.Outcome == models.OutcomeBlackout {
				s.BlackoutWins++
			}
		} else {
			run = 0
		}
	}
	return s
}

func unlockedCodes(unlocked []UnlockedAchievement) map[string]time.Time {
	out := map[string]time.Time{}
	for _, u := range unlocked {
		out[u.Code] = u.UnlockedAt
	}
	return out
}

func TestFirstWinUnlock(t *testing.T) {
	h := hist("LLW")
	got := unlockedCodes(ComputePlayerAchievements(h, summarize(h)))

	require.Contains(t, got, "FIRST_WIN")
	assert.Equal(t, day(3), got["FIRST_WIN"])
}

func TestWinTierBoundary(t *testing.T) {
	// Exactly 10 wins: Veteran unlocks, Champion (25) does not.
	h := hist("WLWWLWWWLWWWWL") // 10 wins across 14 matches
	s := summarize(h)
	require.Equal(t, 10, s.Wins)

	got := unlockedCodes(ComputePlayerAchievements(h, s))
	require.Contains(t, got, "WINS_10")
	assert.NotContains(t, got, "WINS_25")

	// Unlock date is the 10th chronological win, the 13th match (day 13).
	assert.Equal(t, day(13), got["WINS_10"])
}

func TestStreakUnlockDate(t *testing.T) {
	h := hist("WLWWWLW") // streak reaches 3 on day 5
	got := unlockedCodes(ComputePlayerAchievements(h, summarize(h)))

	require.Contains(t, got, "STREAK_3")
	assert.Equal(t, day(5), got["STREAK_3"])
	assert.NotContains(t, got, "STREAK_5")
}

func TestParticipationTier(t *testing.T) {
	h := hist("LLLLLLLLLL") // 10 matches, no wins
	got := unlockedCodes(ComputePlayerAchievements(h, summarize(h)))

	require.Contains(t, got, "MATCHES_10")
	assert.Equal(t, day(10), got["MATCHES_10"])
	assert.NotContains(t, got, "FIRST_WIN")
}

func TestSpeedWinNeedsRecordedDuration(t *testing.T) {
	h := []Participation{
		{MatchID: "m1", PlayedAt: day(1), Won: true, Outcome: models.OutcomeBingo, Minutes: 0},  // untimed
		{MatchID: "m2", PlayedAt: day(2), Won: true, Outcome: models.OutcomeBingo, Minutes: 50}, // under an hour
		{MatchID: "m3", PlayedAt: day(3), Won: true, Outcome: models.OutcomeBingo, Minutes: 40},
	}
	got := unlockedCodes(ComputePlayerAchievements(h, summarize(h)))

	require.Contains(t, got, "SPEED_WIN")
	assert.Equal(t, day(2), got["SPEED_WIN"]) // m1 has no duration, m2 is the first qualifying win

	require.Contains(t, got, "FASTER_WIN")
	assert.Equal(t, day(3), got["FASTER_WIN"])
}

func TestBlackoutTiers(t *testing.T) {
	h := hist("WWWWWW")
	for i := range h {
		if i < 5 {
			h[i].Outcome = models.OutcomeBlackout
		}
	}
	got := unlockedCodes(ComputePlayerAchievements(h, summarize(h)))

	require.Contains(t, got, "BLACKOUT_WIN")
	assert.Equal(t, day(1), got["BLACKOUT_WIN"])
	require.Contains(t, got, "BLACKOUT_5")
	assert.Equal(t, day(5), got["BLACKOUT_5"])
}

func TestEnduranceCountsLosses(t *testing.T) {
	h := []Participation{
		{MatchID: "m1", PlayedAt: day(1), Won: false, Outcome: models.OutcomeBingo, Minutes: 200},
	}
	got := unlockedCodes(ComputePlayerAchievements(h, summarize(h)))

	require.Contains(t, got, "ENDURANCE")
	assert.Equal(t, day(1), got["ENDURANCE"])
}

func TestDroppedWhenDateLookupFails(t *testing.T) {
	// Summary claims a win but the history has none: the badge is dropped
	// rather than emitted with a zero date.
	h := hist("LL")
	s := PlayerSummary{Wins: 1, TotalMatches: 2}

	got := unlockedCodes(ComputePlayerAchievements(h, s))
	assert.NotContains(t, got, "FIRST_WIN")
}

func TestHistoryOrderDoesNotMatter(t *testing.T) {
	h := hist("WWWL")
	// Shuffle: evaluator must sort by PlayedAt before scanning.
	h[0], h[3] = h[3], h[0]
	got := unlockedCodes(ComputePlayerAchievements(h, summarize(hist("WWWL"))))

	require.Contains(t, got, "STREAK_3")
	assert.Equal(t, day(3), got["STREAK_3"])
}

func TestCatalogIsComplete(t *testing.T) {
	codes := map[string]bool{}
	for _, a := range Catalog() {
		assert.NotEmpty(t, a.Code)
		assert.NotEmpty(t, a.Name)
		assert.Contains(t, []string{RarityCommon, RarityRare, RarityEpic, RarityLegendary}, a.Rarity)
		assert.False(t, codes[a.Code], "duplicate code %s", a.Code)
		codes[a.Code] = true
	}
	assert.Len(t, codes, 15)
}
