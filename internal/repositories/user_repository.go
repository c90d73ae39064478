package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"caseforge/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	FindByUsername(username string) (*models.User, error)
	List(limit, offset int) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	return r.db.Create(user).Error
}

func (r *userRepository) FindByUsername(username string) (*models.User, error) {
	var u models.User
	res := r.db.Where("username = ?", username).Take(&u)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, res.Error
	}
	return &u, nil
}

func (r *userRepository) List(limit, offset int) ([]models.User, error) {
	var users []models.User
	res := r.db.Order("username").Limit(limit).Offset(offset).Find(&users)
	if res.Error != nil {
		return nil, res.Error
	}
	return users, nil
}
