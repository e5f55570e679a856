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

// Comments are world-readable; editing and deleting them is admin-only.
// Creation goes through POST /posts/{postID}/add-comment.
type commentHandler struct {
	responder   Responder
	logger      zerolog.Logger
	commentRepo *database.CommentRepo
}

func newCommentHandler(commentRepo *database.CommentRepo) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		commentRepo: commentRepo,
	}
}

func (h commentHandler) resolveComment(w http.ResponseWriter, r *http.Request) *models.Comment {
	commentID, err := uuid.Parse(chi.URLParam(r, "commentID"))
	if err != nil {
		h.responder.WriteError(w, errs.NewInvalidFieldError("commentID", "must be a valid UUID"))
		return nil
	}

	comment, err := h.commentRepo.FindByID(commentID)
	if err != nil {
		h.responder.WriteError(w, errs.NewDatabaseError("find", "comment", err))
		return nil
	}
	if comment == nil {
		h.responder.WriteError(w, errs.NewNotFound("comment"))
		return nil
	}
	return comment
}

func (h commentHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if !permissions.IsAdmin(currentUser(r)) {
		h.responder.WriteError(w, errs.NewForbiddenError("only admins may modify comments"))
		return false
	}
	return true
}

func (h commentHandler) getAllComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		limit, offset := parsePagination(q)
		filter := database.CommentFilter{Limit: limit, Offset: offset}

		if raw := q.Get("post"); raw != "" {
			postID, err := uuid.Parse(raw)
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("post", "must be a valid UUID"))
				return
			}
			filter.PostID = &postID
		}

		comments, err := h.commentRepo.FindAll(filter)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "comments", err))
			return
		}

		h.responder.WriteJSON(w, newCommentCollectionResponse(comments))
	}
}

func (h commentHandler) getComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comment := h.resolveComment(w, r)
		if comment == nil {
			return
		}

		h.responder.WriteJSON(w, newCommentResponse(comment))
	}
}

func (h commentHandler) updateComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comment := h.resolveComment(w, r)
		if comment == nil {
			return
		}
		if !h.requireAdmin(w, r) {
			return
		}

		var req commentRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.Validate(); err != nil {
			h.responder.WriteError(w, validationError(err))
			return
		}

		comment.Body = req.Body
		if err := h.commentRepo.Update(comment); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update", "comment", err))
			return
		}

		h.responder.WriteJSON(w, newCommentResponse(comment))
	}
}

func (h commentHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comment := h.resolveComment(w, r)
		if comment == nil {
			return
		}
		if !h.requireAdmin(w, r) {
			return
		}

		if err := h.commentRepo.Delete(comment.ID); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("delete", "comment", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
