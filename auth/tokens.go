// Package auth issues and verifies the access/refresh token pair. The rest
// of the system only sees its contract: credentials in, tokens out; a
// refresh token can be exchanged for a new access token until it is
// blacklisted by logout.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/penfold-app/backend/database"
	"github.com/penfold-app/backend/errs"
	"github.com/penfold-app/backend/models"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type Claims struct {
	TokenType string `json:"type"`
	IsAdmin   bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// TokenPair is what a successful login returns.
type TokenPair struct {
	Access  string    `json:"access"`
	Refresh string    `json:"refresh"`
	UserID  uuid.UUID `json:"id"`
	IsAdmin bool      `json:"isAdmin"`
}

type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	tokens     *database.TokenRepo
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration, tokens *database.TokenRepo) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		tokens:     tokens,
	}
}

// Issue mints an access/refresh pair for an already-verified user.
// Credential verification belongs to the identity store, not here.
func (s *TokenService) Issue(user *models.User) (*TokenPair, error) {
	access, err := s.sign(user, tokenTypeAccess, s.accessTTL)
	if err != nil {
		return nil, errs.NewInternalError("could not sign access token")
	}
	refresh, err := s.sign(user, tokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return nil, errs.NewInternalError("could not sign refresh token")
	}
	return &TokenPair{
		Access:  access,
		Refresh: refresh,
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
	}, nil
}

// Refresh exchanges a live refresh token for a new access token.
// Blacklisted, expired or otherwise invalid tokens are rejected as
// unauthorized.
func (s *TokenService) Refresh(refreshToken string) (string, error) {
	claims, err := s.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return "", err
	}

	revoked, err := s.tokens.IsRevoked(claims.ID)
	if err != nil {
		return "", errs.NewDatabaseError("check", "refresh token", err)
	}
	if revoked {
		return "", errs.NewUnauthorizedError("refresh token has been revoked")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return "", errs.NewUnauthorizedError("invalid token subject")
	}
	user := &models.User{ID: userID, IsAdmin: claims.IsAdmin}
	access, err := s.sign(user, tokenTypeAccess, s.accessTTL)
	if err != nil {
		return "", errs.NewInternalError("could not sign access token")
	}
	return access, nil
}

// Revoke blacklists a refresh token so it can no longer be exchanged.
// Logout calls this; revoking twice is harmless.
func (s *TokenService) Revoke(refreshToken string) error {
	claims, err := s.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return errs.NewBadRequestError("token is expired or invalid")
	}
	expiresAt := time.Now().Add(s.refreshTTL)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := s.tokens.Revoke(claims.ID, expiresAt); err != nil {
		return errs.NewDatabaseError("revoke", "refresh token", err)
	}
	return nil
}

// Subject verifies an access token and returns the user id it was minted
// for. Loading and liveness-checking the user is the caller's business.
func (s *TokenService) Subject(accessToken string) (uuid.UUID, error) {
	claims, err := s.parse(accessToken, tokenTypeAccess)
	if err != nil {
		return uuid.Nil, err
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errs.NewUnauthorizedError("invalid token subject")
	}
	return userID, nil
}

func (s *TokenService) sign(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		TokenType: tokenType,
		IsAdmin:   user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *TokenService) parse(raw, wantType string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errs.NewUnauthorizedError("invalid or expired token")
	}
	if claims.TokenType != wantType {
		return nil, errs.NewUnauthorizedError("wrong token type")
	}
	return &claims, nil
}
