package stats

import (
	"sort"
	"time"

	"bingo-archive-system/models"
)

// Badge rarity tiers.
const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// Achievement is one badge in the static catalog. Nothing here is
// persisted — unlocks are recomputed from history on every request.
type Achievement struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rarity      string `json:"rarity"`
}

// UnlockedAchievement pairs a badge with the date its threshold was first
// crossed.
type UnlockedAchievement struct {
	Achievement
	UnlockedAt time.Time `json:"unlocked_at"`
}

// Participation is one entry of a player's match history, in play order.
type Participation struct {
	MatchID  string
	PlayedAt time.Time
	Won      bool
	Outcome  string
	Minutes  float64 // 0 = no recorded duration
}

// PlayerSummary carries the precomputed counts the unlock predicates gate
// on before doing the (linear) date search.
type PlayerSummary struct {
	Wins          int
	LongestStreak int
	TotalMatches  int
	BlackoutWins  int
}

type catalogEntry struct {
	Achievement
	satisfied  func(PlayerSummary) bool
	unlockedAt func([]Participation) (time.Time, bool)
}

// Catalog is the full badge set. Every rule is monotonic: once the
// cumulative counts cross the threshold the badge stays unlocked, so each
// unlock date is simply the first historical point the rule held.
var catalog = []catalogEntry{
	{
		Achievement: Achievement{Code: "FIRST_WIN", Name: "First Bingo", Description: "Win your first match", Rarity: RarityCommon},
		satisfied:   func(s PlayerSummary) bool { return s.Wins >= 1 },
		unlockedAt:  func(h []Participation) (time.Time, bool) { return nthWinDate(h, 1) },
	},
	{
		Achievement: Achievement{Code: "WINS_10", Name: "Veteran", Description: "Win 10 matches", Rarity: RarityRare},
		satisfied:   func(s PlayerSummary) bool { return s.Wins >= 10 },
		unlockedAt:  func(h []Participation) (time.Time, bool) { return nthWinDate(h, 10) },
	},
	{
		Achievement: Achievement{Code: "WINS_25", Name: "Champion", Description: "Win 25 matches", Rarity: RarityEpic},
		satisfied:   func(s PlayerSummary) bool { return s.Wins >= 25 },
		unlockedAt:  func(h []Participation) (time.Time, bool) { return nthWinDate(h, 25) },
	},
	{
		Achievement: Achievement{Code: "WINS_50", Name: "Bingo Legend", Description: "Win 50 matches", Rarity: RarityLegendary},
		satisfied:   func(s PlayerSummary) bool { return s.Wins >= 50 },
		unlockedAt:  func(h []Participation) (time.Time, bool) { return nthWinDate(h, 50) },
	},
	{
		Achievement: Achievement{Code: "STREAK_3", Name: "On a Roll", Description: "Win 3 matches in a row", Rarity: RarityRare},
		satisfied:   func(s PlayerSummary) bool { return s.LongestStreak >= 3 },
		unlockedAt:  func(h []Participation) (time.Time, bool) { return streakDate(h, 3) },
	},
	{
		Achievement: Achievement{Code: "STREAK_5", Name: "Unstoppable", Description: "Win 5 matches in a row", Rarity: RarityEpic},
		satisfied:   func(s PlayerSummary) bool { return s.LongestStreak >= 5 },
		unlockedAt:  func(h []Participation) (time.Time, bool) { return streakDate(h, 5) },
	},
	{
		Achievement: Achievement{Code: "STREAK_10", Name: "Dynasty", Description: "Win 10 matches in a row", Rarity: RarityLegendary},
		satisfied:   func(s PlayerSummary) bool { return s.LongestStreak >= 10 },
		unlockedAt:  func(h []Participation) (time.Time, bool) { return streakDate(h, 10) },
	},
	{
		Achievement: Achievement{Code: "SPEED_WIN", Name: "Quick Draw", Description: "Win a match in under an hour", Rarity: RarityRare},
		satisfied:   func(PlayerSummary) bool { return true }, // gated by the date search itself
		unlockedAt:  func(h []Participation) (time.Time, bool) { return firstWinUnder(h, 60) },
	},
	{
		Achievement: Achievement{Code: "FASTER_WIN", Name: "Lightning Round", Description: "Win a match in under 45 minutes", Rarity: RarityEpic},
		satisfied:   func(PlayerSummary) bool { return true },
		unlockedAt:  func(h []Participation) (time.Time, bool) { return firstWinUnder(h, 45) },
	},
	{
		Achievement: Achievement{Code: "MATCHES_10", Name: "Regular", Description: "Play 10 matches", Rarity: RarityCommon},
		satisfied:   func(s PlayerSummary) bool { return s.TotalMatches >= 10 },
		unlockedAt:  func(h []Participation) (time.Time, bool) { return nthMatchDate(h, 10) },
	},
	{
		Achievement: Achievement{Code: "MATCHES_25", Name: "Devoted", Description: "Play 25 matches", Rarity: RarityRare},
		satisfied:   func(s PlayerSummary) bool { return s.TotalMatches >= 25 },
		unlockedAt:  func(h []Participation) (time.Time, bool) { return nthMatchDate(h, 25) },
	},
	{
		Achievement: Achievement{Code: "MATCHES_50", Name: "Hall of Famer", Description: "Play 50 matches", Rarity: RarityEpic},
		satisfied:   func(s PlayerSummary) bool { return s.TotalMatches >= 50 },
		unlockedAt:  func(h []Participation) (time.Time, bool) { return nthMatchDate(h, 50) },
	},
	{
		Achievement: Achievement{Code: "BLACKOUT_WIN", Name: "Lights Out", Description: "Win a blackout match", Rarity: RarityRare},
		satisfied:   func(s PlayerSummary) bool { return s.BlackoutWins >= 1 },
		unlockedAt:  func(h []Participation) (time.Time, bool) { return nthBlackoutWinDate(h, 1) },
	},
	{
		Achievement: Achievement{Code: "BLACKOUT_5", Name: "Blackout Master", Description: "Win 5 blackout matches", Rarity: RarityLegendary},
		satisfied:   func(s PlayerSummary) bool { return s.BlackoutWins >= 5 },
		unlockedAt:  func(h []Participation) (time.Time, bool) { return nthBlackoutWinDate(h, 5) },
	},
	{
		Achievement: Achievement{Code: "ENDURANCE", Name: "Marathon Session", Description: "Play a match of 3 hours or more", Rarity: RarityRare},
		satisfied:   func(PlayerSummary) bool { return true },
		unlockedAt:  func(h []Participation) (time.Time, bool) { return firstMatchAtLeast(h, 180) },
	},
}

// Catalog returns the full badge catalog for display (locked and unlocked
// alike).
func Catalog() []Achievement {
	out := make([]Achievement, len(catalog))
	for i, e := range catalog {
		out[i] = e.Achievement
	}
	return out
}

// ComputePlayerAchievements evaluates the catalog against one player's
// history. Entries whose threshold holds but whose unlock date cannot be
// located are dropped rather than emitted with a blank date.
func ComputePlayerAchievements(history []Participation, summary PlayerSummary) []UnlockedAchievement {
	ordered := make([]Participation, len(history))
	copy(ordered, history)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PlayedAt.Before(ordered[j].PlayedAt)
	})

	unlocked := []UnlockedAchievement{}
	for _, entry := range catalog {
		if !entry.satisfied(summary) {
			continue
		}
		at, ok := entry.unlockedAt(ordered)
		if !ok {
			continue
		}
		unlocked = append(unlocked, UnlockedAchievement{Achievement: entry.Achievement, UnlockedAt: at})
	}
	return unlocked
}

func nthWinDate(history []Participation, n int) (time.Time, bool) {
	var wins int
	for _, p := range history {
		if !p.Won {
			continue
		}
		wins++
		if wins == n {
			return p.PlayedAt, true
		}
	}
	return time.Time{}, false
}

func nthMatchDate(history []Participation, n int) (time.Time, bool) {
	if n <= 0 || len(history) < n {
		return time.Time{}, false
	}
	return history[n-1].PlayedAt, true
}

func nthBlackoutWinDate(history []Participation, n int) (time.Time, bool) {
	var wins int
	for _, p := range history {
		if !p.Won || p.Outcome != models.OutcomeBlackout {
			continue
		}
		wins++
		if wins == n {
			return p.PlayedAt, true
		}
	}
	return time.Time{}, false
}

// streakDate finds when a win streak first reached the given length.
func streakDate(history []Participation, length int) (time.Time, bool) {
	var run int
	for _, p := range history {
		if !p.Won {
			run = 0
			continue
		}
		run++
		if run == length {
			return p.PlayedAt, true
		}
	}
	return time.Time{}, false
}

// firstWinUnder needs a recorded duration: Minutes==0 means "not tracked",
// not an instant win.
func firstWinUnder(history []Participation, minutes float64) (time.Time, bool) {
	for _, p := range history {
		if p.Won && p.Minutes > 0 && p.Minutes < minutes {
			return p.PlayedAt, true
		}
	}
	return time.Time{}, false
}

func firstMatchAtLeast(history []Participation, minutes float64) (time.Time, bool) {
	for _, p := range history {
		if p.Minutes >= minutes && p.Minutes > 0 {
			return p.PlayedAt, true
		}
	}
	return time.Time{}, false
}
