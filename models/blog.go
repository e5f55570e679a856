package models

import (
	"time"

	"github.com/google/uuid"
)

// Blog is a content container with exactly one owner, co-authors invited by the
// owner and subscribers who follow it. The owner holds all author rights without
// being listed in Authors.
type Blog struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title       string    `json:"title" db:"title" gorm:"type:varchar(150);not null;index:idx_blogs_title"`
	Description *string   `json:"description,omitempty" db:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_blogs_created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	OwnerID uuid.UUID `json:"ownerId" db:"owner_id" gorm:"type:uuid;not null;index:idx_blogs_owner_id"`
	Owner   User      `json:"owner,omitempty" gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE"`

	Authors     []User `json:"authors,omitempty" gorm:"many2many:blog_authors;constraint:OnDelete:CASCADE"`
	Subscribers []User `json:"subscribers,omitempty" gorm:"many2many:blog_subscribers;constraint:OnDelete:CASCADE"`

	Posts []Post `json:"-" gorm:"foreignKey:BlogID;references:ID;constraint:OnDelete:CASCADE"`
}

// HasAuthor reports whether the user is listed in the blog's author set.
// Authors must be loaded by the caller.
func (b *Blog) HasAuthor(userID uuid.UUID) bool {
	for _, a := range b.Authors {
		if a.ID == userID {
			return true
		}
	}
	return false
}
