package models

import "time"

// Match outcomes. A winner flag on a participant is only meaningful for
// OutcomeBingo and OutcomeBlackout.
const (
	OutcomeBingo     = "bingo"
	OutcomeBlackout  = "blackout"
	OutcomeAbandoned = "abandoned"
	OutcomeDraw      = "draw"
)

// MatchMetadata is the free-form bag attached to a match. Duration is a
// human-entered string like "3h 42m" — parsed lazily by the stats engine,
// never validated on write.
type MatchMetadata struct {
	Duration string `json:"duration,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Match records a single played bingo session.
type Match struct {
	ID       string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Title    string    `gorm:"not null" json:"title"`
	PlayedAt time.Time `gorm:"index;not null" json:"played_at"`
	Outcome  string    `gorm:"type:varchar(16);not null;check:outcome IN ('bingo','blackout','abandoned','draw')" json:"outcome"`

	BoardID string `gorm:"index;not null" json:"board_id"`
	Board   *Board `gorm:"foreignKey:BoardID" json:"board,omitempty"`

	Metadata  MatchMetadata `gorm:"type:jsonb;serializer:json" json:"metadata"`
	Accolades []string      `gorm:"type:jsonb;serializer:json" json:"accolades,omitempty"`

	Players  []MatchPlayer `gorm:"foreignKey:MatchID" json:"players,omitempty"`
	Comments []Comment     `gorm:"foreignKey:MatchID" json:"comments,omitempty"`

	Timestamps
}

// MatchPlayer binds a Player to a Match. A player appears at most once per
// match (unique index), and at most one participant carries IsWinner=true —
// enforced by MatchService on write, not as a DB constraint.
type MatchPlayer struct {
	ID       string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	MatchID  string  `gorm:"uniqueIndex:idx_match_player;not null" json:"match_id"`
	PlayerID string  `gorm:"uniqueIndex:idx_match_player;not null" json:"player_id"`
	Player   *Player `gorm:"foreignKey:PlayerID" json:"player,omitempty"`

	Color    string `gorm:"type:varchar(16)" json:"color"` // match-specific dauber color
	Position int    `gorm:"default:0" json:"position"`
	IsWinner *bool  `json:"is_winner,omitempty"` // nil and false mean the same thing downstream
}

// Won reports whether this participant is flagged as the match winner.
// A nil IsWinner is treated as false.
func (mp *MatchPlayer) Won() bool {
	return mp.IsWinner != nil && *mp.IsWinner
}
