package models

import "time"

// Priority levels a requirement can carry. PriorityAutoGenerated is true only
// while the stored value still equals the keyword heuristic's output; any
// explicitly supplied priority clears it.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

type Requirement struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User        string `gorm:"size:255;index;not null" json:"user"`
	ProjectID   string `gorm:"size:36;index;not null" json:"project_id"`
	Title       string `gorm:"size:255" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"size:64;default:functionality" json:"category"`
	Status      string `gorm:"size:32;default:draft" json:"status"`

	Priority              string `gorm:"size:16" json:"priority"`
	PriorityAutoGenerated bool   `json:"priority_auto_generated"`
}
