package models

import "time"

// APIKey is an upstream-model credential owned by a user. ProjectID empty
// means the user's default key; a non-empty ProjectID scopes the key to one
// project and wins over the default during resolution.
type APIKey struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	User      string `gorm:"size:255;index;not null" json:"user"`
	ProjectID string `gorm:"size:36;index" json:"project_id,omitempty"`
	Key       string `gorm:"size:512;not null" json:"-"`
}
