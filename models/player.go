package models

import (
	"time"

	"gorm.io/gorm"
)

// Player is a community member who appears on match records.
// Rows are created on first match submission or mirrored from the
// profile service on account setup (see workers.PlayerSyncWorker).
type Player struct {
	ID             string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID *string `gorm:"uniqueIndex" json:"external_user_id,omitempty"` // nil = submitted manually, no account
	Name           string  `gorm:"uniqueIndex;not null" json:"name"`              // uniqueness is case-insensitive, enforced in PlayerService
	Color          string  `gorm:"type:varchar(16);default:'#888888'" json:"color"`
	AvatarURL      *string `json:"avatar_url,omitempty"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// RemotePlayer matches the JSON shape of the profile service's account feed,
// consumed by the player sync worker.
type RemotePlayer struct {
	ExternalID string    `json:"external_id"`
	Username   string    `json:"username"`
	AvatarURL  *string   `json:"profile_picture_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
