package services

import (
	"errors"
	"time"

	"caseforge/internal/logger"
	"caseforge/internal/models"
	"caseforge/internal/repositories"
)

// ManualSave is a client-supplied artifact version: either a fresh save or an
// in-place update of an existing history record.
type ManualSave struct {
	TestCases        string
	Requirements     string
	ProjectID        string
	RequirementID    string
	RequirementTitle string
	UpdateType       string
}

// HistoryService owns create-vs-update reconciliation of history records.
type HistoryService interface {
	// SaveGenerated stores the artifact produced by a fresh generation call.
	SaveGenerated(user string, req GenerationRequest, testCases string) (*models.HistoryRecord, error)

	// ApplyArtifact persists an assistant-produced replacement document.
	// With an active history id it attempts an ownership-scoped in-place
	// update and falls back to creating a new record when that update does
	// not apply; without an id it creates directly. The returned error is
	// non-nil only when the final attempted write failed, in which case the
	// caller still delivers the artifact to the client.
	ApplyArtifact(user string, turn ChatTurn, testCases string) error

	// RecordExchange stores the raw chat message/response pair. Failures are
	// logged and swallowed: this write must never interrupt delivery.
	RecordExchange(user string, turn ChatTurn, response string)

	SaveManual(user string, input ManualSave) (*models.HistoryRecord, error)
	UpdateManual(user, id string, input ManualSave) (*models.HistoryRecord, error)
	List(user string, filter repositories.HistoryFilter) ([]models.HistoryRecord, error)
	Get(user, id string) (*models.HistoryRecord, error)
	Delete(user, id string) error
}

type historyService struct {
	history repositories.HistoryRepository
	log     *logger.Logger
}

func NewHistoryService(history repositories.HistoryRepository, log *logger.Logger) HistoryService {
	return &historyService{history: history, log: log.With("service", "history")}
}

func (s *historyService) SaveGenerated(user string, req GenerationRequest, testCases string) (*models.HistoryRecord, error) {
	record := &models.HistoryRecord{
		User:             user,
		Kind:             models.HistoryKindArtifact,
		UpdateType:       models.UpdateTypeGenerated,
		TestCases:        testCases,
		Requirements:     req.Requirements,
		Context:          req.Context,
		ProjectID:        req.ProjectID,
		RequirementID:    req.RequirementID,
		RequirementTitle: req.RequirementTitle,
		Timestamp:        time.Now().UTC(),
	}
	if err := s.history.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *historyService) ApplyArtifact(user string, turn ChatTurn, testCases string) error {
	now := time.Now().UTC()

	if turn.ActiveHistoryID != "" {
		updates := map[string]interface{}{
			"test_cases":     testCases,
			"timestamp":      now,
			"update_type":    models.UpdateTypeAIAssistant,
			"source_message": turn.Message,
		}
		err := s.history.UpdateArtifactOwned(turn.ActiveHistoryID, user, updates)
		if err == nil {
			return nil
		}
		if errors.Is(err, repositories.ErrNotFound) {
			s.log.Info("active history record not updatable, creating new version",
				"history_id", turn.ActiveHistoryID, "user", user)
		} else {
			s.log.Warn("history update failed, creating new version",
				"history_id", turn.ActiveHistoryID, "error", err)
		}
	}

	record := &models.HistoryRecord{
		User:             user,
		Kind:             models.HistoryKindArtifact,
		UpdateType:       models.UpdateTypeAIAssistant,
		TestCases:        testCases,
		Requirements:     turn.Requirements,
		ProjectID:        turn.ProjectID,
		RequirementID:    turn.RequirementID,
		RequirementTitle: turn.RequirementTitle,
		SourceMessage:    turn.Message,
		Timestamp:        now,
	}
	return s.history.Create(record)
}

func (s *historyService) RecordExchange(user string, turn ChatTurn, response string) {
	record := &models.HistoryRecord{
		User:          user,
		Kind:          models.HistoryKindChat,
		UpdateType:    models.UpdateTypeAIChat,
		Message:       turn.Message,
		Response:      response,
		ProjectID:     turn.ProjectID,
		RequirementID: turn.RequirementID,
		Timestamp:     time.Now().UTC(),
	}
	if err := s.history.Create(record); err != nil {
		s.log.Warn("failed to save chat exchange", "user", user, "error", err)
	}
}

func (s *historyService) SaveManual(user string, input ManualSave) (*models.HistoryRecord, error) {
	record := &models.HistoryRecord{
		User:             user,
		Kind:             models.HistoryKindArtifact,
		UpdateType:       models.UpdateTypeManualEdit,
		TestCases:        input.TestCases,
		Requirements:     input.Requirements,
		ProjectID:        input.ProjectID,
		RequirementID:    input.RequirementID,
		RequirementTitle: input.RequirementTitle,
		Timestamp:        time.Now().UTC(),
	}
	if err := s.history.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *historyService) UpdateManual(user, id string, input ManualSave) (*models.HistoryRecord, error) {
	existing, err := s.history.FindOwned(id, user)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	updates := map[string]interface{}{
		"test_cases":  input.TestCases,
		"timestamp":   time.Now().UTC(),
		"update_type": valueOr(input.UpdateType, models.UpdateTypeManualEdit),
	}
	if input.Requirements != "" {
		updates["requirements"] = input.Requirements
	}
	if input.ProjectID != "" {
		updates["project_id"] = input.ProjectID
	}
	if input.RequirementID != "" {
		updates["requirement_id"] = input.RequirementID
	}
	if input.RequirementTitle != "" {
		updates["requirement_title"] = input.RequirementTitle
	}
	if err := s.history.UpdateArtifactOwned(id, user, updates); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.history.FindOwned(id, user)
}

func (s *historyService) List(user string, filter repositories.HistoryFilter) ([]models.HistoryRecord, error) {
	records, err := s.history.ListArtifacts(user, filter)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].Label()
	}
	return records, nil
}

func (s *historyService) Get(user, id string) (*models.HistoryRecord, error) {
	record, err := s.history.FindOwned(id, user)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotFound
	}
	record.Label()
	return record, nil
}

func (s *historyService) Delete(user, id string) error {
	err := s.history.DeleteOwned(id, user)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
