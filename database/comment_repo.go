package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/penfold-app/backend/models"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// CommentFilter narrows the comment listing. It also provides Limit and
// Offset, for pagination.
type CommentFilter struct {
	PostID *uuid.UUID

	Limit  int
	Offset int
}

// FindAll returns comments matching the filter, oldest first
func (r *CommentRepo) FindAll(filter CommentFilter) ([]*models.Comment, error) {
	tx := r.db.Model(&models.Comment{}).Preload("Author").Order("created_at ASC")

	if filter.PostID != nil {
		tx = tx.Where("post_id = ?", *filter.PostID)
	}
	tx = applyPagination(tx, filter.Limit, filter.Offset)

	var comments []*models.Comment
	err := tx.Find(&comments).Error
	return comments, err
}

// FindByID returns a comment by ID, or nil if no such comment exists
func (r *CommentRepo) FindByID(id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("Author").First(&comment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Add inserts a new comment into the database
func (r *CommentRepo) Add(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// Update rewrites the comment body. created_at is immutable.
func (r *CommentRepo) Update(comment *models.Comment) error {
	return r.db.Model(comment).Select("body").Updates(comment).Error
}

// Delete removes a comment from the database by id
func (r *CommentRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Comment{}, "id = ?", id).Error
}
