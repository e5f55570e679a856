package auth

import (
	"github.com/penfold-app/backend/database"
	"github.com/penfold-app/backend/errs"
	"github.com/penfold-app/backend/models"
	"github.com/penfold-app/backend/services"
)

// Service ties the identity store to token issuance: login, logout and
// refresh as the API consumes them.
type Service struct {
	users    *database.UserRepo
	identity *services.UserService
	tokens   *TokenService
}

func NewService(users *database.UserRepo, identity *services.UserService, tokens *TokenService) *Service {
	return &Service{users: users, identity: identity, tokens: tokens}
}

// Login exchanges valid credentials for a token pair. Unknown usernames and
// wrong passwords fail identically so the response does not reveal which
// half was wrong.
func (s *Service) Login(username, password string) (*TokenPair, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "user", err)
	}
	if user == nil || !s.identity.VerifyPassword(user, password) {
		return nil, errs.NewUnauthorizedError("invalid credentials, try again")
	}
	if !user.IsActive {
		return nil, errs.NewUnauthorizedError("user is blocked, contact admin")
	}
	return s.tokens.Issue(user)
}

// Logout blacklists the refresh token
func (s *Service) Logout(refreshToken string) error {
	return s.tokens.Revoke(refreshToken)
}

// Refresh exchanges a refresh token for a new access token
func (s *Service) Refresh(refreshToken string) (string, error) {
	return s.tokens.Refresh(refreshToken)
}

// Authenticate resolves an access token to a live user. Deactivated
// accounts fail even while their tokens are formally valid.
func (s *Service) Authenticate(accessToken string) (*models.User, error) {
	userID, err := s.tokens.Subject(accessToken)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "user", err)
	}
	if user == nil || !user.IsActive {
		return nil, errs.NewUnauthorizedError("account is not active")
	}
	return user, nil
}
