package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"caseforge/internal/models"
)

// HistoryFilter narrows artifact-history listings.
type HistoryFilter struct {
	ProjectID     string
	RequirementID string
	Limit         int
	Skip          int
}

type HistoryRepository interface {
	Create(record *models.HistoryRecord) error
	// UpdateArtifactOwned applies updates to the record with the given id
	// only when user owns it. ErrNotFound when the predicate matched no row;
	// any other error is a persistence fault.
	UpdateArtifactOwned(id, user string, updates map[string]interface{}) error
	FindOwned(id, user string) (*models.HistoryRecord, error)
	// ListArtifacts returns artifact-kind records only, newest first.
	ListArtifacts(user string, filter HistoryFilter) ([]models.HistoryRecord, error)
	DeleteOwned(id, user string) error
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Create(record *models.HistoryRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	return r.db.Create(record).Error
}

func (r *historyRepository) UpdateArtifactOwned(id, user string, updates map[string]interface{}) error {
	res := r.db.Model(&models.HistoryRecord{}).
		Where("id = ? AND user = ?", id, user).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *historyRepository) FindOwned(id, user string) (*models.HistoryRecord, error) {
	var rec models.HistoryRecord
	res := r.db.Where("id = ? AND user = ?", id, user).Take(&rec)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, res.Error
	}
	return &rec, nil
}

func (r *historyRepository) ListArtifacts(user string, filter HistoryFilter) ([]models.HistoryRecord, error) {
	q := r.db.Where("user = ? AND kind = ?", user, models.HistoryKindArtifact)
	if filter.ProjectID != "" {
		q = q.Where("project_id = ?", filter.ProjectID)
	}
	if filter.RequirementID != "" {
		q = q.Where("requirement_id = ?", filter.RequirementID)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	var records []models.HistoryRecord
	res := q.Order("timestamp desc").Offset(filter.Skip).Limit(limit).Find(&records)
	if res.Error != nil {
		return nil, res.Error
	}
	return records, nil
}

func (r *historyRepository) DeleteOwned(id, user string) error {
	res := r.db.Where("id = ? AND user = ?", id, user).Delete(&models.HistoryRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
