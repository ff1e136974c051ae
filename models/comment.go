package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a free-text note on a match. AuthorName is just a string —
// comments are not bound to a player identity.
type Comment struct {
	ID         string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	MatchID    string `gorm:"index;not null" json:"match_id"`
	AuthorName string `gorm:"not null" json:"author_name"`
	Body       string `gorm:"type:text;not null" json:"body"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// Timestamps adds GORM auto-times plus soft delete.
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
