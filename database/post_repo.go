package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/penfold-app/backend/models"
)

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

// PostFilter is the struct with all filterable fields on the post listing.
// Tags matches posts carrying any of the given tag titles. It also provides
// Limit and Offset, for pagination.
type PostFilter struct {
	BlogID    *uuid.UUID
	AuthorID  *uuid.UUID
	Published *bool
	Tags      []string
	CreatedAt RangeFilter
	Search    string
	Ordering  string

	Limit  int
	Offset int
}

var postOrderings = map[string]string{
	"title":      "posts.title",
	"created_at": "posts.created_at",
	"likes":      "posts.likes",
}

// FindAll returns posts matching the filter, newest created first by default
func (r *PostRepo) FindAll(filter PostFilter) ([]*models.Post, error) {
	tx := r.db.Model(&models.Post{}).Preload("Author").Preload("Tags")

	if filter.BlogID != nil {
		tx = tx.Where("posts.blog_id = ?", *filter.BlogID)
	}
	if filter.AuthorID != nil {
		tx = tx.Where("posts.author_id = ?", *filter.AuthorID)
	}
	if filter.Published != nil {
		tx = tx.Where("posts.is_published = ?", *filter.Published)
	}
	if len(filter.Tags) > 0 {
		tx = tx.Where("posts.id IN (?)",
			r.db.Table("post_tags").
				Select("post_tags.post_id").
				Joins("JOIN tags ON tags.id = post_tags.tag_id").
				Where("tags.title IN ?", filter.Tags))
	}
	tx = filter.CreatedAt.apply(tx, "posts.created_at")
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		tx = tx.Joins("JOIN users ON users.id = posts.author_id").
			Where("posts.title LIKE ? OR users.username LIKE ?", pattern, pattern)
	}
	tx = applyOrdering(tx, filter.Ordering, "posts.created_at DESC", postOrderings)
	tx = applyPagination(tx, filter.Limit, filter.Offset)

	var posts []*models.Post
	err := tx.Find(&posts).Error
	return posts, err
}

// FindByID returns a post with its author, blog (including the blog's owner
// and authors, needed for permission checks) and tags loaded, or nil if no
// such post exists
func (r *PostRepo) FindByID(id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Author").Preload("Tags").
		Preload("Blog").Preload("Blog.Owner").Preload("Blog.Authors").
		First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Add inserts a new post into the database
func (r *PostRepo) Add(post *models.Post) error {
	return r.db.Create(post).Error
}

// Update persists the editable columns. Likes, views and created_at never
// move through here; counters use the increment operations below and
// created_at is stamped at most once by the service layer via Publish.
func (r *PostRepo) Update(post *models.Post) error {
	return r.db.Model(post).Select("title", "body", "is_published").Updates(map[string]interface{}{
		"title":        post.Title,
		"body":         post.Body,
		"is_published": post.IsPublished,
	}).Error
}

// Publish stamps created_at, but only when it is still unset. The WHERE
// guard makes re-publishing a no-op so the timestamp is written exactly once.
func (r *PostRepo) Publish(post *models.Post) error {
	return r.db.Model(&models.Post{}).
		Where("id = ? AND created_at IS NULL", post.ID).
		Updates(map[string]interface{}{
			"is_published": true,
			"created_at":   post.CreatedAt,
		}).Error
}

// ReplaceTags sets the post's tag associations to exactly the given set
func (r *PostRepo) ReplaceTags(post *models.Post, tags []models.Tag) error {
	return r.db.Model(post).Association("Tags").Replace(tags)
}

// Delete removes a post and, through the cascading foreign keys, its
// comments and tag associations.
func (r *PostRepo) Delete(id uuid.UUID) error {
	return r.db.Select(clause.Associations).Delete(&models.Post{ID: id}).Error
}

// IncrementLikes adds one to the post's like counter as a relative update
// applied by the storage layer, so concurrent increments all land.
func (r *PostRepo) IncrementLikes(id uuid.UUID) error {
	return r.db.Model(&models.Post{}).Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + ?", 1)).Error
}

// IncrementViews adds one to the post's view counter, same discipline as
// IncrementLikes. The owner no-op lives in the service layer.
func (r *PostRepo) IncrementViews(id uuid.UUID) error {
	return r.db.Model(&models.Post{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}
