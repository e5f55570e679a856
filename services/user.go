package services

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/penfold-app/backend/database"
	"github.com/penfold-app/backend/errs"
	"github.com/penfold-app/backend/models"
)

var usernameRules = []validation.Rule{
	validation.Required,
	validation.Length(3, 150),
	is.PrintableASCII,
}

// UserService creates accounts and verifies credentials. Token issuance
// lives in the auth package; this is only the identity store.
type UserService struct {
	users  *database.UserRepo
	policy PasswordPolicy
}

func NewUserService(users *database.UserRepo, policy PasswordPolicy) *UserService {
	return &UserService{users: users, policy: policy}
}

// Register creates a regular (non-admin) account. Validation failures come
// back field-scoped; a taken username fails with a validation error naming
// "username" and leaves the existing account untouched.
func (s *UserService) Register(username, password string) (*models.User, error) {
	if err := validation.Validate(username, usernameRules...); err != nil {
		return nil, errs.NewInvalidFieldError("username", err.Error())
	}
	if err := s.policy.Validate(username, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.NewInternalError("could not hash password")
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		IsAdmin:      false,
		IsActive:     true,
	}
	if err := s.users.Add(user); err != nil {
		dbErr := errs.NewDatabaseError("create", "user", err)
		if errs.IsAlreadyExists(dbErr) {
			return nil, errs.NewDuplicateError("user", "username", err)
		}
		return nil, dbErr
	}
	return user, nil
}

// VerifyPassword is the only password-verification primitive exposed by the
// identity store.
func (s *UserService) VerifyPassword(user *models.User, password string) bool {
	if user == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
