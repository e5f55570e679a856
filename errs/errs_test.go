package errs_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/penfold-app/backend/errs"
)

func TestStatusPredicates(t *testing.T) {
	assert.True(t, errs.IsNotFound(errs.NewNotFound("blog")))
	assert.True(t, errs.IsForbidden(errs.NewForbiddenError("nope")))
	assert.True(t, errs.IsUnauthorized(errs.NewUnauthorizedError("who are you")))

	assert.False(t, errs.IsNotFound(errs.NewForbiddenError("nope")))
	assert.False(t, errs.IsForbidden(errors.New("some other error")))
}

func TestNewDatabaseError_Classification(t *testing.T) {
	cases := []struct {
		name       string
		cause      error
		wantStatus int
	}{
		{"postgres duplicate", errors.New(`duplicate key value violates unique constraint "idx_users_username"`), http.StatusBadRequest},
		{"sqlite duplicate", errors.New("UNIQUE constraint failed: users.username"), http.StatusBadRequest},
		{"postgres fk", errors.New(`insert or update on table "posts" violates foreign key constraint`), http.StatusBadRequest},
		{"sqlite fk", errors.New("FOREIGN KEY constraint failed"), http.StatusBadRequest},
		{"not found", errors.New("record not found"), http.StatusNotFound},
		{"connection", errors.New("connection refused"), http.StatusServiceUnavailable},
		{"anything else", errors.New("syntax error"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := errs.NewDatabaseError("create", "user", tc.cause)
			assert.Equal(t, tc.wantStatus, err.StatusCode)
		})
	}
}

func TestIsAlreadyExists(t *testing.T) {
	dup := errors.New("UNIQUE constraint failed: tags.title")
	assert.True(t, errs.IsAlreadyExists(errs.NewDatabaseError("create", "tag", dup)))
	assert.True(t, errs.IsAlreadyExists(errs.NewDuplicateError("tag", "title", dup)))
	assert.False(t, errs.IsAlreadyExists(errs.NewDatabaseError("create", "tag", errors.New("boom"))))
}

func TestDuplicateError_FieldScoped(t *testing.T) {
	err := errs.NewDuplicateError("user", "username", errors.New("UNIQUE constraint failed"))
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "username", err.Field)
	assert.Contains(t, err.Error(), "user with this username already exists")
}

func TestGetFullError_Chains(t *testing.T) {
	cause := errors.New("disk on fire")
	err := errs.NewDatabaseError("create", "blog", cause)
	assert.Contains(t, err.GetFullError(), "disk on fire")
}
