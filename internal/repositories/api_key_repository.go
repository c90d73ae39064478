package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"caseforge/internal/models"
)

type APIKeyRepository interface {
	// FindScoped returns the key bound to (user, projectID); projectID ""
	// addresses the user's default key. nil when absent.
	FindScoped(user, projectID string) (*models.APIKey, error)
	// Save creates or replaces the key for its (user, projectID) scope.
	Save(key *models.APIKey) error
	ListByUser(user string) ([]models.APIKey, error)
	// DeleteOwned removes a key by id, scoped to its owner. ErrNotFound when
	// no row matched.
	DeleteOwned(id, user string) error
}

type apiKeyRepository struct {
	db *gorm.DB
}

func NewAPIKeyRepository(db *gorm.DB) APIKeyRepository {
	return &apiKeyRepository{db: db}
}

func (r *apiKeyRepository) FindScoped(user, projectID string) (*models.APIKey, error) {
	var key models.APIKey
	res := r.db.Where("user = ? AND project_id = ?", user, projectID).Take(&key)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, res.Error
	}
	return &key, nil
}

func (r *apiKeyRepository) Save(key *models.APIKey) error {
	existing, err := r.FindScoped(key.User, key.ProjectID)
	if err != nil {
		return err
	}
	if existing != nil {
		return r.db.Model(&models.APIKey{}).
			Where("id = ?", existing.ID).
			Update("key", key.Key).Error
	}
	if key.ID == "" {
		key.ID = uuid.NewString()
	}
	return r.db.Create(key).Error
}

func (r *apiKeyRepository) ListByUser(user string) ([]models.APIKey, error) {
	var keys []models.APIKey
	res := r.db.Where("user = ?", user).Order("created_at").Find(&keys)
	if res.Error != nil {
		return nil, res.Error
	}
	return keys, nil
}

func (r *apiKeyRepository) DeleteOwned(id, user string) error {
	res := r.db.Where("id = ? AND user = ?", id, user).Delete(&models.APIKey{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
