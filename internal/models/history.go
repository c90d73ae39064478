package models

import "time"

// History record kinds. The kind is fixed at construction: an artifact
// record is a test-case document version, a chat record is one raw
// message/response exchange. Both share the history table.
const (
	HistoryKindArtifact = "artifact"
	HistoryKindChat     = "chat"
)

// Update types for artifact records, plus ai_chat for raw exchanges.
const (
	UpdateTypeGenerated   = "generated"
	UpdateTypeManualEdit  = "manual_edit"
	UpdateTypeAIChat      = "ai_chat"
	UpdateTypeAIAssistant = "ai_assistant"
)

type HistoryRecord struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`

	User       string `gorm:"size:255;index;not null" json:"user"`
	Kind       string `gorm:"size:16;index;not null" json:"-"`
	UpdateType string `gorm:"size:32" json:"update_type,omitempty"`

	TestCases    string `gorm:"type:text" json:"test_cases,omitempty"`
	Requirements string `gorm:"type:text" json:"requirements,omitempty"`
	Context      string `gorm:"type:text" json:"context,omitempty"`

	ProjectID        string `gorm:"size:36;index" json:"project_id,omitempty"`
	RequirementID    string `gorm:"size:36;index" json:"requirement_id,omitempty"`
	RequirementTitle string `gorm:"size:255" json:"requirement_title,omitempty"`

	// SourceMessage is set only for ai_assistant updates: the chat message
	// that triggered the artifact change.
	SourceMessage string `gorm:"type:text" json:"source_message,omitempty"`

	// Message and Response are set only on chat-kind records.
	Message  string `gorm:"type:text" json:"message,omitempty"`
	Response string `gorm:"type:text" json:"response,omitempty"`

	// UpdateSource is a display label derived from UpdateType on reads.
	UpdateSource string `gorm:"-" json:"update_source,omitempty"`
}

// Label fills UpdateSource the way the history listing presents it.
func (h *HistoryRecord) Label() {
	switch h.UpdateType {
	case UpdateTypeAIAssistant:
		h.UpdateSource = "AI Assistant"
	case UpdateTypeManualEdit:
		h.UpdateSource = "Manual Edit"
	default:
		h.UpdateSource = "Generated"
	}
}
