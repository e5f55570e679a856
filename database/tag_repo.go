package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/penfold-app/backend/models"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// FindAll returns all tags ordered by title
func (r *TagRepo) FindAll() ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.Order("title ASC").Find(&tags).Error
	return tags, err
}

// FindByID returns a tag by ID, or nil if no such tag exists
func (r *TagRepo) FindByID(id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.First(&tag, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindByIDs returns the tags matching the given IDs. Missing IDs are simply
// absent from the result; the caller decides whether that is an error.
func (r *TagRepo) FindByIDs(ids []uuid.UUID) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

// FindByTitles returns the tags whose titles match any of the given values
func (r *TagRepo) FindByTitles(titles []string) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Where("title IN ?", titles).Find(&tags).Error
	return tags, err
}

// Add inserts a new tag. Title uniqueness is enforced by the unique index.
func (r *TagRepo) Add(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

// Update updates an existing tag
func (r *TagRepo) Update(tag *models.Tag) error {
	return r.db.Model(tag).Select("title").Updates(tag).Error
}

// Delete removes a tag. Rows in post_tags go with it via the cascading
// foreign key.
func (r *TagRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Tag{ID: id}).Error
}
