package models

import "time"

type Project struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// User is the owning account's username. Collaborator membership lives
	// in the collaborators table.
	User    string `gorm:"size:255;index;not null" json:"user"`
	Name    string `gorm:"size:255;not null" json:"name"`
	Context string `gorm:"type:text" json:"context"`

	IsOwner bool `gorm:"-" json:"is_owner"`
}

type Collaborator struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	ProjectID string    `gorm:"size:36;index;not null" json:"project_id"`
	Username  string    `gorm:"size:255;index;not null" json:"username"`
	Email     string    `gorm:"size:255" json:"email"`
	AddedBy   string    `gorm:"size:255" json:"added_by"`
	AddedAt   time.Time `json:"added_at"`
}
