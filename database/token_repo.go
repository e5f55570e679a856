package database

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RevokedToken is a blacklisted refresh token, kept until it would have
// expired anyway.
type RevokedToken struct {
	JTI       string    `db:"jti" gorm:"type:varchar(64);primaryKey"`
	ExpiresAt time.Time `db:"expires_at" gorm:"not null;index:idx_revoked_tokens_expires_at"`
}

func (RevokedToken) TableName() string { return "revoked_tokens" }

type TokenRepo struct {
	db *gorm.DB
}

func NewTokenRepo(db *gorm.DB) *TokenRepo {
	return &TokenRepo{db}
}

// Revoke blacklists a refresh token so it can no longer be exchanged.
// Revoking twice is a no-op.
func (r *TokenRepo) Revoke(jti string, expiresAt time.Time) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&RevokedToken{JTI: jti, ExpiresAt: expiresAt}).Error
}

// IsRevoked reports whether the refresh token has been blacklisted
func (r *TokenRepo) IsRevoked(jti string) (bool, error) {
	var count int64
	err := r.db.Model(&RevokedToken{}).Where("jti = ?", jti).Count(&count).Error
	return count > 0, err
}

// PurgeExpired drops blacklist entries whose tokens are past their lifetime
func (r *TokenRepo) PurgeExpired(now time.Time) error {
	return r.db.Where("expires_at < ?", now).Delete(&RevokedToken{}).Error
}
