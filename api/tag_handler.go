package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/penfold-app/backend/database"
	"github.com/penfold-app/backend/errs"
	"github.com/penfold-app/backend/models"
	"github.com/penfold-app/backend/permissions"
)

// Tags are world-readable; every write is admin-only.
type tagHandler struct {
	responder Responder
	logger    zerolog.Logger
	tagRepo   *database.TagRepo
}

func newTagHandler(tagRepo *database.TagRepo) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()

	return tagHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tagRepo:   tagRepo,
	}
}

func (h tagHandler) resolveTag(w http.ResponseWriter, r *http.Request) *models.Tag {
	tagID, err := uuid.Parse(chi.URLParam(r, "tagID"))
	if err != nil {
		h.responder.WriteError(w, errs.NewInvalidFieldError("tagID", "must be a valid UUID"))
		return nil
	}

	tag, err := h.tagRepo.FindByID(tagID)
	if err != nil {
		h.responder.WriteError(w, errs.NewDatabaseError("find", "tag", err))
		return nil
	}
	if tag == nil {
		h.responder.WriteError(w, errs.NewNotFound("tag"))
		return nil
	}
	return tag
}

func (h tagHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if !permissions.IsAdmin(currentUser(r)) {
		h.responder.WriteError(w, errs.NewForbiddenError("only admins may modify tags"))
		return false
	}
	return true
}

func (h tagHandler) getAllTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.tagRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "tags", err))
			return
		}

		h.responder.WriteJSON(w, newTagCollectionResponse(tags))
	}
}

func (h tagHandler) getTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag := h.resolveTag(w, r)
		if tag == nil {
			return
		}

		h.responder.WriteJSON(w, newTagResponse(tag))
	}
}

func (h tagHandler) createTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.requireAdmin(w, r) {
			return
		}

		var req tagRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.Validate(); err != nil {
			h.responder.WriteError(w, validationError(err))
			return
		}

		tag := &models.Tag{ID: uuid.New(), Title: req.Title}
		if err := h.tagRepo.Add(tag); err != nil {
			dbErr := errs.NewDatabaseError("create", "tag", err)
			if errs.IsAlreadyExists(dbErr) {
				h.responder.WriteError(w, errs.NewDuplicateError("tag", "title", err))
				return
			}
			h.responder.WriteError(w, dbErr)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, newTagResponse(tag))
	}
}

func (h tagHandler) updateTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag := h.resolveTag(w, r)
		if tag == nil {
			return
		}
		if !h.requireAdmin(w, r) {
			return
		}

		var req tagRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.Validate(); err != nil {
			h.responder.WriteError(w, validationError(err))
			return
		}

		tag.Title = req.Title
		if err := h.tagRepo.Update(tag); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update", "tag", err))
			return
		}

		h.responder.WriteJSON(w, newTagResponse(tag))
	}
}

func (h tagHandler) deleteTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag := h.resolveTag(w, r)
		if tag == nil {
			return
		}
		if !h.requireAdmin(w, r) {
			return
		}

		if err := h.tagRepo.Delete(tag.ID); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("delete", "tag", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
