package api

import (
	"context"
	"net/http"

	"github.com/penfold-app/backend/models"
)

type keyType string

const userKey keyType = "user"

// ctxWithUser attaches the authenticated user to the context
func ctxWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// currentUser returns the authenticated user for this request, or nil for
// an anonymous request. Handlers pass the result explicitly into services
// and permission checks; nothing below the API layer reads the context.
func currentUser(r *http.Request) *models.User {
	if user, ok := r.Context().Value(userKey).(*models.User); ok {
		return user
	}
	return nil
}
