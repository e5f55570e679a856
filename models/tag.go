package models

import "github.com/google/uuid"

// Tag labels posts. Titles are unique; only admins create or change tags.
type Tag struct {
	ID    uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title string    `json:"title" db:"title" gorm:"type:varchar(150);not null;uniqueIndex:idx_tags_title"`
}
