package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/penfold-app/backend/auth"
	"github.com/penfold-app/backend/services"
)

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	users     *services.UserService
	auth      *auth.Service
}

func newUserHandler(users *services.UserService, authService *auth.Service) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger),
		logger:    logger,
		users:     users,
		auth:      authService,
	}
}

// register creates a regular user account
func (h userHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.Validate(); err != nil {
			h.responder.WriteError(w, validationError(err))
			return
		}

		user, err := h.users.Register(req.Username, req.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("username", user.Username).Msg("user registered")
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, newUserResponse(*user))
	}
}

// login exchanges credentials for an access/refresh token pair
func (h userHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.Validate(); err != nil {
			h.responder.WriteError(w, validationError(err))
			return
		}

		pair, err := h.auth.Login(req.Username, req.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, pair)
	}
}

// logout blacklists the refresh token
func (h userHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.Validate(); err != nil {
			h.responder.WriteError(w, validationError(err))
			return
		}

		if err := h.auth.Logout(req.Refresh); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// refresh exchanges a refresh token for a new access token
func (h userHandler) refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.Validate(); err != nil {
			h.responder.WriteError(w, validationError(err))
			return
		}

		access, err := h.auth.Refresh(req.Refresh)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{"access": access})
	}
}
