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
	"github.com/penfold-app/backend/services"
)

type postHandler struct {
	responder         Responder
	logger            zerolog.Logger
	postRepo          *database.PostRepo
	commentRepo       *database.CommentRepo
	content           *services.ContentService
	commentsAdminOnly bool
}

func newPostHandler(postRepo *database.PostRepo, commentRepo *database.CommentRepo, content *services.ContentService, commentsAdminOnly bool) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder:         NewResponder(logger),
		logger:            logger,
		postRepo:          postRepo,
		commentRepo:       commentRepo,
		content:           content,
		commentsAdminOnly: commentsAdminOnly,
	}
}

func (h postHandler) resolvePost(w http.ResponseWriter, r *http.Request) *models.Post {
	postID, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		h.responder.WriteError(w, errs.NewInvalidFieldError("postID", "must be a valid UUID"))
		return nil
	}

	post, err := h.postRepo.FindByID(postID)
	if err != nil {
		h.responder.WriteError(w, errs.NewDatabaseError("find", "post", err))
		return nil
	}
	if post == nil {
		h.responder.WriteError(w, errs.NewNotFound("post"))
		return nil
	}
	return post
}

// getAllPosts lists published posts across all blogs, newest first; open to
// anonymous readers
func (h postHandler) getAllPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := parsePostFilter(r)
		published := true
		filter.Published = &published

		posts, err := h.postRepo.FindAll(filter)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "posts", err))
			return
		}

		h.responder.WriteJSON(w, newPostCollectionResponse(posts))
	}
}

// getMyPosts lists the requester's own posts, drafts included
func (h postHandler) getMyPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)

		filter := parsePostFilter(r)
		filter.AuthorID = &user.ID

		posts, err := h.postRepo.FindAll(filter)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "posts", err))
			return
		}

		h.responder.WriteJSON(w, newPostCollectionResponse(posts))
	}
}

// canReadDraft limits unpublished posts to the same circle that sees them in
// the blog's listing: the post's author, the blog's owner and authors, and
// admins. Everyone else gets the 404 a missing post would, so drafts do not
// leak through guessed IDs.
func canReadDraft(user *models.User, post *models.Post) bool {
	return permissions.IsPostAuthor(user, post) ||
		permissions.IsAuthorOrBlogOwner(user, &post.Blog) ||
		permissions.IsAdmin(user)
}

// getPost returns one post and counts the view, except when the blog owner
// is looking at their own blog's post
func (h postHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post := h.resolvePost(w, r)
		if post == nil {
			return
		}

		user := currentUser(r)
		if !post.IsPublished && !canReadDraft(user, post) {
			h.responder.WriteError(w, errs.NewNotFound("post"))
			return
		}

		if err := h.content.IncrementViews(post, user); err != nil {
			// A failed view count should not hide the post.
			h.logger.Error().Err(err).Str("postID", post.ID.String()).Msg("failed to count view")
		} else if user == nil || post.Blog.OwnerID != user.ID {
			post.Views++
		}

		h.responder.WriteJSON(w, newPostResponse(post))
	}
}

// updatePost edits a post; the post's author or an admin only. PUT requires
// the full payload, PATCH accepts a partial one.
func (h postHandler) updatePost(partial bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post := h.resolvePost(w, r)
		if post == nil {
			return
		}

		user := currentUser(r)
		policy := permissions.Policy{permissions.PostAuthor(post), permissions.Admin()}
		if _, allowed := policy.Check(user); !allowed {
			h.responder.WriteError(w, errs.NewForbiddenError("only the post's author or an admin may modify this post"))
			return
		}

		var req postRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.Validate(partial); err != nil {
			h.responder.WriteError(w, validationError(err))
			return
		}

		updated, err := h.content.UpdatePost(post, services.PostUpdate{
			Title:       req.Title,
			Body:        req.Body,
			IsPublished: req.IsPublished,
			TagIDs:      req.Tags,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, newPostResponse(updated))
	}
}

// deletePost removes a post; the post's author or an admin only
func (h postHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post := h.resolvePost(w, r)
		if post == nil {
			return
		}

		user := currentUser(r)
		policy := permissions.Policy{permissions.PostAuthor(post), permissions.Admin()}
		if _, allowed := policy.Check(user); !allowed {
			h.responder.WriteError(w, errs.NewForbiddenError("only the post's author or an admin may delete this post"))
			return
		}

		if err := h.postRepo.Delete(post.ID); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("delete", "post", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// addLike counts a like; any authenticated user
func (h postHandler) addLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post := h.resolvePost(w, r)
		if post == nil {
			return
		}

		if err := h.content.IncrementLikes(post); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("like", "post", err))
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

// addComment attaches a comment to the post. Open to any authenticated user
// unless the admin-only comment policy is switched on.
func (h postHandler) addComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post := h.resolvePost(w, r)
		if post == nil {
			return
		}

		user := currentUser(r)
		if h.commentsAdminOnly && !permissions.IsAdmin(user) {
			h.responder.WriteError(w, errs.NewForbiddenError("comments are restricted to admins"))
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

		comment := &models.Comment{
			ID:       uuid.New(),
			Body:     req.Body,
			AuthorID: &user.ID,
			PostID:   post.ID,
		}
		if err := h.commentRepo.Add(comment); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("create", "comment", err))
			return
		}

		created, err := h.commentRepo.FindByID(comment.ID)
		if err != nil || created == nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find created", "comment", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, newCommentResponse(created))
	}
}
