package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/penfold-app/backend/models"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// FindByID returns a user by ID, or nil if no such user exists
func (r *UserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername returns a user by username, or nil if no such user exists
func (r *UserRepo) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDs returns the users matching the given IDs. Missing IDs are simply
// absent from the result; the caller decides whether that is an error.
func (r *UserRepo) FindByIDs(ids []uuid.UUID) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN ?", ids).Find(&users).Error
	return users, err
}

// Add inserts a new user. Username uniqueness is enforced by the storage
// layer's unique index, so a concurrent duplicate fails exactly one insert.
func (r *UserRepo) Add(user *models.User) error {
	return r.db.Create(user).Error
}

// Deactivate flips is_active off. Users are never hard-deleted.
func (r *UserRepo) Deactivate(id uuid.UUID) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("is_active", false).Error
}
