package services

import (
	"strings"

	"github.com/penfold-app/backend/errs"
)

// PasswordPolicy decides whether a raw password is acceptable before it is
// ever hashed. Failures are field-scoped so clients can surface them on the
// password input.
type PasswordPolicy interface {
	Validate(username, password string) error
}

// commonPasswords are rejected outright regardless of length.
var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "12345678": {},
	"123456789": {}, "1234567890": {}, "qwerty123": {}, "qwertyuiop": {},
	"iloveyou": {}, "letmein1": {}, "admin123": {}, "welcome1": {},
	"sunshine": {}, "princess": {}, "football": {}, "baseball": {},
	"dragon123": {}, "monkey123": {}, "shadow123": {}, "superman": {},
}

type lengthAndCommonPolicy struct {
	minLength int
}

// DefaultPasswordPolicy rejects short passwords, well-known passwords and
// passwords too similar to the username.
func DefaultPasswordPolicy() PasswordPolicy {
	return lengthAndCommonPolicy{minLength: 8}
}

func (p lengthAndCommonPolicy) Validate(username, password string) error {
	if len(password) < p.minLength {
		return errs.NewInvalidFieldError("password", "must be at least 8 characters")
	}
	lowered := strings.ToLower(password)
	if _, ok := commonPasswords[lowered]; ok {
		return errs.NewInvalidFieldError("password", "this password is too common")
	}
	if username != "" && strings.Contains(lowered, strings.ToLower(username)) {
		return errs.NewInvalidFieldError("password", "must not contain the username")
	}
	return nil
}
