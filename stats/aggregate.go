package stats

import (
	"sort"
	"time"

	"bingo-archive-system/models"
)

// MatchDuration identifies one match by its parsed duration, used for the
// longest/shortest extremes.
type MatchDuration struct {
	MatchID  string    `json:"match_id"`
	Title    string    `json:"title"`
	PlayedAt time.Time `json:"played_at"`
	Minutes  float64   `json:"minutes"`
	Display  string    `json:"display"`
}

// DurationStats covers only matches with a nonzero parsed duration —
// matches without a recorded time are excluded, not treated as zero.
type DurationStats struct {
	Longest        *MatchDuration `json:"longest"`
	Shortest       *MatchDuration `json:"shortest"`
	AverageMinutes float64        `json:"average_minutes"`
	AverageDisplay string         `json:"average_display"`
}

// PlayerRow is one leaderboard entry.
type PlayerRow struct {
	PlayerID      string  `json:"player_id"`
	Name          string  `json:"name"`
	Color         string  `json:"color"`
	Matches       int     `json:"matches"`
	Wins          int     `json:"wins"`
	WinRate       float64 `json:"win_rate"` // percent
	TotalMinutes  float64 `json:"total_minutes"`
	AvgMinutes    float64 `json:"avg_minutes"` // over timed matches only
	CurrentStreak int     `json:"current_streak"`
	LongestStreak int     `json:"longest_streak"`
}

// SeriesPoint is one point of the cumulative-wins chart: the totals per
// player name after all matches of that calendar date.
type SeriesPoint struct {
	Date           string         `json:"date"` // YYYY-MM-DD
	CumulativeWins map[string]int `json:"cumulative_wins"`
}

// MonthlyCount is one bar of the matches-per-month histogram.
type MonthlyCount struct {
	Month   string `json:"month"` // YYYY-MM
	Label   string `json:"label"` // e.g. "Mar 2025"
	Matches int    `json:"matches"`
}

// ChartData is the display-ready chart payload. Colors maps player name to
// the player's own color so series styling is stable across refreshes.
type ChartData struct {
	WinSeries []SeriesPoint     `json:"win_series"`
	Monthly   []MonthlyCount    `json:"monthly"`
	Colors    map[string]string `json:"colors"`
}

// Result is the full aggregate over one snapshot of matches.
type Result struct {
	TotalMatches       int           `json:"total_matches"`
	TotalMinutesPlayed float64       `json:"total_minutes_played"` // once per match, not per player
	TotalPlayedDisplay string        `json:"total_played_display"`
	Durations          DurationStats `json:"durations"`
	Players            []PlayerRow   `json:"players"`
	Chart              ChartData     `json:"chart"`
}

type playerAccum struct {
	id           string
	name         string
	color        string
	matches      int
	wins         int
	totalMinutes float64
	timedMatches int
	history      []histEntry
}

type histEntry struct {
	playedAt time.Time
	won      bool
}

// ComputeStats derives the leaderboard, duration extremes and chart series
// from a snapshot of matches. Pure: the input is never mutated, every call
// allocates fresh result structures. Empty input yields zero values.
func ComputeStats(matches []models.Match) *Result {
	res := &Result{
		TotalMatches: len(matches),
		Players:      []PlayerRow{},
		Chart: ChartData{
			WinSeries: []SeriesPoint{},
			Monthly:   []MonthlyCount{},
			Colors:    map[string]string{},
		},
	}

	// ---- Pass 1: match durations. ----

	var timedCount int
	for i := range matches {
		m := &matches[i]
		minutes := ParseDuration(m.Metadata.Duration)
		if minutes <= 0 {
			continue
		}
		res.TotalMinutesPlayed += minutes
		timedCount++

		// Strict comparisons so ties keep the first match in input order.
		if res.Durations.Longest == nil || minutes > res.Durations.Longest.Minutes {
			res.Durations.Longest = matchDuration(m, minutes)
		}
		if res.Durations.Shortest == nil || minutes < res.Durations.Shortest.Minutes {
			res.Durations.Shortest = matchDuration(m, minutes)
		}
	}
	if timedCount > 0 {
		res.Durations.AverageMinutes = res.TotalMinutesPlayed / float64(timedCount)
	}
	res.Durations.AverageDisplay = FormatTotal(res.Durations.AverageMinutes)
	res.TotalPlayedDisplay = FormatTotal(res.TotalMinutesPlayed)

	// ---- Pass 2: per-player tallies and win histories. ----

	accums := make(map[string]*playerAccum)
	var order []string // first-encounter order, so map iteration stays deterministic
	for i := range matches {
		m := &matches[i]
		minutes := ParseDuration(m.Metadata.Duration)
		for j := range m.Players {
			mp := &m.Players[j]
			if mp.Player == nil {
				continue // participation row without its player loaded
			}
			acc, ok := accums[mp.PlayerID]
			if !ok {
				acc = &playerAccum{id: mp.PlayerID, name: mp.Player.Name, color: mp.Player.Color}
				accums[mp.PlayerID] = acc
				order = append(order, mp.PlayerID)
			}
			acc.matches++
			if mp.Won() {
				acc.wins++
			}
			if minutes > 0 {
				acc.totalMinutes += minutes
				acc.timedMatches++
			}
			acc.history = append(acc.history, histEntry{playedAt: m.PlayedAt, won: mp.Won()})
		}
	}

	for _, id := range order {
		acc := accums[id]
		row := PlayerRow{
			PlayerID:     acc.id,
			Name:         acc.name,
			Color:        acc.color,
			Matches:      acc.matches,
			Wins:         acc.wins,
			TotalMinutes: acc.totalMinutes,
		}
		if acc.matches > 0 {
			row.WinRate = float64(acc.wins) / float64(acc.matches) * 100
		}
		if acc.timedMatches > 0 {
			row.AvgMinutes = acc.totalMinutes / float64(acc.timedMatches)
		}
		row.CurrentStreak, row.LongestStreak = streaks(acc.history)
		res.Players = append(res.Players, row)
		res.Chart.Colors[acc.name] = acc.color
	}

	// Wins desc, then matches desc, then name asc — a total order.
	sort.Slice(res.Players, func(i, j int) bool {
		a, b := res.Players[i], res.Players[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.Matches != b.Matches {
			return a.Matches > b.Matches
		}
		return a.Name < b.Name
	})

	// ---- Pass 3: chart series. ----

	res.Chart.WinSeries = winSeries(matches)
	res.Chart.Monthly = monthlyCounts(matches)

	return res
}

func matchDuration(m *models.Match, minutes float64) *MatchDuration {
	return &MatchDuration{
		MatchID:  m.ID,
		Title:    m.Title,
		PlayedAt: m.PlayedAt,
		Minutes:  minutes,
		Display:  FormatMinutes(minutes),
	}
}

// streaks scans a player's history in played_at order and returns the
// trailing run of wins and the longest run anywhere.
func streaks(history []histEntry) (current, longest int) {
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].playedAt.Before(history[j].playedAt)
	})
	var run int
	for _, h := range history {
		if h.won {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return run, longest
}

// winSeries folds matches into one point per calendar date, carrying the
// cumulative win totals per player name after that date's matches.
func winSeries(matches []models.Match) []SeriesPoint {
	if len(matches) == 0 {
		return []SeriesPoint{}
	}

	ordered := make([]*models.Match, len(matches))
	for i := range matches {
		ordered[i] = &matches[i]
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PlayedAt.Before(ordered[j].PlayedAt)
	})

	series := []SeriesPoint{}
	totals := map[string]int{}
	flush := func(date string) {
		snapshot := make(map[string]int, len(totals))
		for name, wins := range totals {
			snapshot[name] = wins
		}
		series = append(series, SeriesPoint{Date: date, CumulativeWins: snapshot})
	}

	current := ordered[0].PlayedAt.Format("2006-01-02")
	for _, m := range ordered {
		date := m.PlayedAt.Format("2006-01-02")
		if date != current {
			flush(current)
			current = date
		}
		for j := range m.Players {
			mp := &m.Players[j]
			if mp.Player == nil || !mp.Won() {
				continue
			}
			totals[mp.Player.Name]++
		}
	}
	flush(current)
	return series
}

func monthlyCounts(matches []models.Match) []MonthlyCount {
	byMonth := map[string]*MonthlyCount{}
	for i := range matches {
		key := matches[i].PlayedAt.Format("2006-01")
		mc, ok := byMonth[key]
		if !ok {
			mc = &MonthlyCount{Month: key, Label: matches[i].PlayedAt.Format("Jan 2006")}
			byMonth[key] = mc
		}
		mc.Matches++
	}

	out := make([]MonthlyCount, 0, len(byMonth))
	for _, mc := range byMonth {
		out = append(out, *mc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
