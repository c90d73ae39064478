package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"caseforge/internal/models"
)

type ProjectRepository interface {
	Create(project *models.Project) error
	// FindAccessible returns the project when username owns it or
	// collaborates on it; nil when neither.
	FindAccessible(id, username string) (*models.Project, error)
	// FindOwned returns the project only when username is the owner.
	FindOwned(id, username string) (*models.Project, error)
	ListForUser(username string) ([]models.Project, error)
	Update(id string, updates map[string]interface{}) error
	Delete(id string) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(project *models.Project) error {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	return r.db.Create(project).Error
}

func (r *projectRepository) FindAccessible(id, username string) (*models.Project, error) {
	var p models.Project
	res := r.db.
		Where("id = ?", id).
		Where("user = ? OR id IN (?)", username,
			r.db.Model(&models.Collaborator{}).Select("project_id").Where("username = ?", username)).
		Take(&p)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, res.Error
	}
	return &p, nil
}

func (r *projectRepository) FindOwned(id, username string) (*models.Project, error) {
	var p models.Project
	res := r.db.Where("id = ? AND user = ?", id, username).Take(&p)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, res.Error
	}
	return &p, nil
}

func (r *projectRepository) ListForUser(username string) ([]models.Project, error) {
	var projects []models.Project
	res := r.db.
		Where("user = ? OR id IN (?)", username,
			r.db.Model(&models.Collaborator{}).Select("project_id").Where("username = ?", username)).
		Order("created_at desc").
		Find(&projects)
	if res.Error != nil {
		return nil, res.Error
	}
	return projects, nil
}

func (r *projectRepository) Update(id string, updates map[string]interface{}) error {
	return r.db.Model(&models.Project{}).Where("id = ?", id).Updates(updates).Error
}

func (r *projectRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Project{}).Error
}
