package repositories

import (
	"errors"

	"gorm.io/gorm"

	"caseforge/internal/models"
)

type CollaboratorRepository interface {
	ListByProject(projectID string) ([]models.Collaborator, error)
	Find(projectID, username string) (*models.Collaborator, error)
	Add(collab *models.Collaborator) error
	Remove(projectID, username string) error
	RemoveByProject(projectID string) error
}

type collaboratorRepository struct {
	db *gorm.DB
}

func NewCollaboratorRepository(db *gorm.DB) CollaboratorRepository {
	return &collaboratorRepository{db: db}
}

func (r *collaboratorRepository) ListByProject(projectID string) ([]models.Collaborator, error) {
	var collabs []models.Collaborator
	res := r.db.Where("project_id = ?", projectID).Order("added_at").Find(&collabs)
	if res.Error != nil {
		return nil, res.Error
	}
	return collabs, nil
}

func (r *collaboratorRepository) Find(projectID, username string) (*models.Collaborator, error) {
	var c models.Collaborator
	res := r.db.Where("project_id = ? AND username = ?", projectID, username).Take(&c)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, res.Error
	}
	return &c, nil
}

func (r *collaboratorRepository) Add(collab *models.Collaborator) error {
	return r.db.Create(collab).Error
}

func (r *collaboratorRepository) Remove(projectID, username string) error {
	return r.db.Where("project_id = ? AND username = ?", projectID, username).
		Delete(&models.Collaborator{}).Error
}

func (r *collaboratorRepository) RemoveByProject(projectID string) error {
	return r.db.Where("project_id = ?", projectID).Delete(&models.Collaborator{}).Error
}
