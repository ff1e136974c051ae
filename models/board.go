package models

import "time"

// Board is an uploaded bingo board image. Immutable once created —
// there is no update path, matches only reference it.
type Board struct {
	ID       string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	ImageURL string `gorm:"type:text;not null" json:"image_url"` // public R2 URL
	Source   string `gorm:"type:varchar(64)" json:"source"`      // e.g., "generator", "hand-drawn", "community"

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
