package stats

import (
	"sort"

	"bingo-archive-system/models"
)

// HeadToHeadRecord tallies one rivalry from the subject player's side.
// Wins+Losses can be less than Total: shared matches with a draw, an
// abandoned outcome or a third winner still count toward the relationship.
type HeadToHeadRecord struct {
	OpponentID   string `json:"opponent_id"`
	OpponentName string `json:"opponent_name"`
	Color        string `json:"color"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	Total        int    `json:"total"`
}

// ComputeHeadToHead tallies the subject player's record against every
// co-participant across the given matches. Matches the subject did not
// play are skipped. Sorted by shared-match count descending.
func ComputeHeadToHead(playerID string, matches []models.Match) []HeadToHeadRecord {
	tally := map[string]*HeadToHeadRecord{}
	var order []string

	for i := range matches {
		m := &matches[i]

		var subject *models.MatchPlayer
		for j := range m.Players {
			if m.Players[j].PlayerID == playerID {
				subject = &m.Players[j]
				break
			}
		}
		if subject == nil {
			continue
		}

		for j := range m.Players {
			mp := &m.Players[j]
			if mp.PlayerID == playerID || mp.Player == nil {
				continue
			}
			rec, ok := tally[mp.PlayerID]
			if !ok {
				rec = &HeadToHeadRecord{
					OpponentID:   mp.PlayerID,
					OpponentName: mp.Player.Name,
					Color:        mp.Player.Color,
				}
				tally[mp.PlayerID] = rec
				order = append(order, mp.PlayerID)
			}
			rec.Total++
			switch {
			case subject.Won():
				rec.Wins++
			case mp.Won():
				rec.Losses++
			}
		}
	}

	out := make([]HeadToHeadRecord, 0, len(order))
	for _, id := range order {
		out = append(out, *tally[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].OpponentName < out[j].OpponentName
	})
	return out
}
