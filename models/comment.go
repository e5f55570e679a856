package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment hangs off a post. The author reference is weak: deleting the user
// nulls AuthorID but keeps the comment.
type Comment struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Body      string    `json:"body" db:"body" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	AuthorID *uuid.UUID `json:"authorId,omitempty" db:"author_id" gorm:"type:uuid;index:idx_comments_author_id"`
	Author   *User      `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:SET NULL"`

	PostID uuid.UUID `json:"postId" db:"post_id" gorm:"type:uuid;not null;index:idx_comments_post_id"`
	Post   *Post     `json:"-" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
}
