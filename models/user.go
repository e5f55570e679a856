package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that can own blogs, author posts and leave comments.
// The password hash never leaves the server.
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Username     string    `json:"username" db:"username" gorm:"type:varchar(150);not null;uniqueIndex:idx_users_username"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	IsAdmin      bool      `json:"isAdmin" db:"is_admin" gorm:"not null;default:false"`
	IsActive     bool      `json:"isActive" db:"is_active" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}
