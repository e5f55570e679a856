package models

import (
	"time"

	"github.com/google/uuid"
)

// Post belongs to exactly one blog. CreatedAt stays nil until the post is
// published and is stamped exactly once at that transition; later edits must
// not touch it. Likes and Views only ever move through the repo's atomic
// increment operations.
type Post struct {
	ID          uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title       string     `json:"title" db:"title" gorm:"type:varchar(150);not null;index:idx_posts_title"`
	Body        string     `json:"body" db:"body" gorm:"type:text;not null"`
	IsPublished bool       `json:"isPublished" db:"is_published" gorm:"not null;default:false"`
	CreatedAt   *time.Time `json:"createdAt,omitempty" db:"created_at" gorm:"autoCreateTime:false;index:idx_posts_created_at"`
	Likes       uint       `json:"likes" db:"likes" gorm:"not null;default:0"`
	Views       uint       `json:"views" db:"views" gorm:"not null;default:0"`

	AuthorID uuid.UUID `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index:idx_posts_author_id"`
	Author   User      `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`

	BlogID uuid.UUID `json:"blogId" db:"blog_id" gorm:"type:uuid;not null;index:idx_posts_blog_id"`
	Blog   Blog      `json:"-" gorm:"foreignKey:BlogID;references:ID;constraint:OnDelete:CASCADE"`

	Tags []Tag `json:"tags,omitempty" gorm:"many2many:post_tags;constraint:OnDelete:CASCADE"`

	Comments []Comment `json:"-" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
}
