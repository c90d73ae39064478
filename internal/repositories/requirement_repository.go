package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"caseforge/internal/models"
)

type RequirementRepository interface {
	Create(req *models.Requirement) error
	FindByID(id string) (*models.Requirement, error)
	ListByProject(projectID string) ([]models.Requirement, error)
	Update(id string, updates map[string]interface{}) error
	Delete(id string) error
	DeleteByProject(projectID string) error
}

type requirementRepository struct {
	db *gorm.DB
}

func NewRequirementRepository(db *gorm.DB) RequirementRepository {
	return &requirementRepository{db: db}
}

func (r *requirementRepository) Create(req *models.Requirement) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	return r.db.Create(req).Error
}

func (r *requirementRepository) FindByID(id string) (*models.Requirement, error) {
	var req models.Requirement
	res := r.db.Where("id = ?", id).Take(&req)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, res.Error
	}
	return &req, nil
}

func (r *requirementRepository) ListByProject(projectID string) ([]models.Requirement, error) {
	var reqs []models.Requirement
	res := r.db.Where("project_id = ?", projectID).Order("created_at").Find(&reqs)
	if res.Error != nil {
		return nil, res.Error
	}
	return reqs, nil
}

func (r *requirementRepository) Update(id string, updates map[string]interface{}) error {
	return r.db.Model(&models.Requirement{}).Where("id = ?", id).Updates(updates).Error
}

func (r *requirementRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Requirement{}).Error
}

func (r *requirementRepository) DeleteByProject(projectID string) error {
	return r.db.Where("project_id = ?", projectID).Delete(&models.Requirement{}).Error
}
