package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/penfold-app/backend/models"
)

type BlogRepo struct {
	db *gorm.DB
}

func NewBlogRepo(db *gorm.DB) *BlogRepo {
	return &BlogRepo{db}
}

// BlogFilter is the struct with all filterable fields on the blog listing.
// It also provides Limit and Offset, for pagination.
type BlogFilter struct {
	CreatedAt RangeFilter
	Search    string
	Ordering  string

	Limit  int
	Offset int
}

var blogOrderings = map[string]string{
	"title":      "blogs.title",
	"created_at": "blogs.created_at",
	"updated_at": "blogs.updated_at",
}

// FindAll returns blogs matching the filter, most recently updated first by default
func (r *BlogRepo) FindAll(filter BlogFilter) ([]*models.Blog, error) {
	tx := r.db.Model(&models.Blog{}).Preload("Owner").Preload("Authors")

	tx = filter.CreatedAt.apply(tx, "blogs.created_at")
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		tx = tx.Joins("JOIN users ON users.id = blogs.owner_id").
			Where("blogs.title LIKE ? OR users.username LIKE ?", pattern, pattern)
	}
	tx = applyOrdering(tx, filter.Ordering, "blogs.updated_at DESC", blogOrderings)
	tx = applyPagination(tx, filter.Limit, filter.Offset)

	var blogs []*models.Blog
	err := tx.Find(&blogs).Error
	return blogs, err
}

// FindByID returns a blog with its owner, authors and subscribers loaded,
// or nil if no such blog exists
func (r *BlogRepo) FindByID(id uuid.UUID) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.Preload("Owner").Preload("Authors").Preload("Subscribers").
		First(&blog, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// FindSubscribed returns the blogs the given user is subscribed to
func (r *BlogRepo) FindSubscribed(userID uuid.UUID, filter BlogFilter) ([]*models.Blog, error) {
	tx := r.db.Model(&models.Blog{}).Preload("Owner").Preload("Authors").
		Joins("JOIN blog_subscribers ON blog_subscribers.blog_id = blogs.id").
		Where("blog_subscribers.user_id = ?", userID)

	tx = filter.CreatedAt.apply(tx, "blogs.created_at")
	tx = applyOrdering(tx, filter.Ordering, "blogs.updated_at DESC", blogOrderings)
	tx = applyPagination(tx, filter.Limit, filter.Offset)

	var blogs []*models.Blog
	err := tx.Find(&blogs).Error
	return blogs, err
}

// Add inserts a new blog into the database
func (r *BlogRepo) Add(blog *models.Blog) error {
	return r.db.Create(blog).Error
}

// Update persists changed columns and bumps updated_at
func (r *BlogRepo) Update(blog *models.Blog) error {
	blog.UpdatedAt = time.Now()
	return r.db.Model(blog).Select("title", "description", "updated_at").Updates(blog).Error
}

// Delete removes a blog. Posts and their comments go with it via the
// cascading foreign keys.
func (r *BlogRepo) Delete(id uuid.UUID) error {
	return r.db.Select(clause.Associations).Delete(&models.Blog{ID: id}).Error
}

// AddAuthor adds a user to the blog's author set. Inserting an existing
// member is a no-op at the storage layer, so the operation is idempotent
// and safe under concurrent calls.
func (r *BlogRepo) AddAuthor(blogID, userID uuid.UUID) error {
	return r.db.Table("blog_authors").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(map[string]interface{}{"blog_id": blogID, "user_id": userID}).Error
}

// AddSubscriber adds a user to the blog's subscriber set, insert-if-absent
func (r *BlogRepo) AddSubscriber(blogID, userID uuid.UUID) error {
	return r.db.Table("blog_subscribers").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(map[string]interface{}{"blog_id": blogID, "user_id": userID}).Error
}
