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

type blogHandler struct {
	responder Responder
	logger    zerolog.Logger
	blogRepo  *database.BlogRepo
	postRepo  *database.PostRepo
	content   *services.ContentService
}

func newBlogHandler(blogRepo *database.BlogRepo, postRepo *database.PostRepo, content *services.ContentService) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()

	return blogHandler{
		responder: NewResponder(logger),
		logger:    logger,
		blogRepo:  blogRepo,
		postRepo:  postRepo,
		content:   content,
	}
}

// resolveBlog parses the blogID route parameter and loads the blog.
// Existence is checked before any permission decision, so a missing blog is
// always a plain 404.
func (h blogHandler) resolveBlog(w http.ResponseWriter, r *http.Request) *models.Blog {
	blogID, err := uuid.Parse(chi.URLParam(r, "blogID"))
	if err != nil {
		h.responder.WriteError(w, errs.NewInvalidFieldError("blogID", "must be a valid UUID"))
		return nil
	}

	blog, err := h.blogRepo.FindByID(blogID)
	if err != nil {
		h.responder.WriteError(w, errs.NewDatabaseError("find", "blog", err))
		return nil
	}
	if blog == nil {
		h.responder.WriteError(w, errs.NewNotFound("blog"))
		return nil
	}
	return blog
}

// getAllBlogs lists blogs; open to anonymous readers
func (h blogHandler) getAllBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogs, err := h.blogRepo.FindAll(parseBlogFilter(r))
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "blogs", err))
			return
		}

		h.responder.WriteJSON(w, newBlogCollectionResponse(blogs))
	}
}

// createBlog creates a blog owned by the requester
func (h blogHandler) createBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)

		var req blogRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.Validate(false); err != nil {
			h.responder.WriteError(w, validationError(err))
			return
		}

		blog := &models.Blog{
			ID:          uuid.New(),
			Title:       *req.Title,
			Description: req.Description,
			OwnerID:     user.ID,
		}
		if err := h.blogRepo.Add(blog); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("create", "blog", err))
			return
		}

		created, err := h.blogRepo.FindByID(blog.ID)
		if err != nil || created == nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find created", "blog", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, newBlogResponse(created))
	}
}

// getBlog returns one blog; open to anonymous readers
func (h blogHandler) getBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog := h.resolveBlog(w, r)
		if blog == nil {
			return
		}

		h.responder.WriteJSON(w, newBlogResponse(blog))
	}
}

// updateBlog rewrites title/description; owner or admin only. PUT requires
// the full payload, PATCH accepts a partial one.
func (h blogHandler) updateBlog(partial bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog := h.resolveBlog(w, r)
		if blog == nil {
			return
		}

		user := currentUser(r)
		policy := permissions.Policy{permissions.BlogOwner(blog), permissions.Admin()}
		if _, allowed := policy.Check(user); !allowed {
			h.responder.WriteError(w, errs.NewForbiddenError("only the blog owner or an admin may modify this blog"))
			return
		}

		var req blogRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.Validate(partial); err != nil {
			h.responder.WriteError(w, validationError(err))
			return
		}

		if req.Title != nil {
			blog.Title = *req.Title
		}
		if req.Description != nil {
			blog.Description = req.Description
		}
		if err := h.blogRepo.Update(blog); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update", "blog", err))
			return
		}

		updated, err := h.blogRepo.FindByID(blog.ID)
		if err != nil || updated == nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find updated", "blog", err))
			return
		}

		h.responder.WriteJSON(w, newBlogResponse(updated))
	}
}

// deleteBlog removes a blog and everything under it; owner or admin only
func (h blogHandler) deleteBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog := h.resolveBlog(w, r)
		if blog == nil {
			return
		}

		user := currentUser(r)
		policy := permissions.Policy{permissions.BlogOwner(blog), permissions.Admin()}
		if _, allowed := policy.Check(user); !allowed {
			h.responder.WriteError(w, errs.NewForbiddenError("only the blog owner or an admin may delete this blog"))
			return
		}

		if err := h.blogRepo.Delete(blog.ID); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("delete", "blog", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// addAuthors invites users into the blog's author set; owner or admin only
func (h blogHandler) addAuthors() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog := h.resolveBlog(w, r)
		if blog == nil {
			return
		}

		user := currentUser(r)
		policy := permissions.Policy{permissions.BlogOwner(blog), permissions.Admin()}
		rule, allowed := policy.Check(user)
		if !allowed {
			h.responder.WriteError(w, errs.NewForbiddenError("only the blog owner or an admin may add authors"))
			return
		}

		var req addAuthorsRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.Validate(); err != nil {
			h.responder.WriteError(w, validationError(err))
			return
		}

		if err := h.content.AddAuthors(blog, req.Authors, user); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().
			Str("blogID", blog.ID.String()).
			Str("allowedBy", rule).
			Int("candidates", len(req.Authors)).
			Msg("authors added to blog")

		updated, err := h.blogRepo.FindByID(blog.ID)
		if err != nil || updated == nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find updated", "blog", err))
			return
		}

		h.responder.WriteJSON(w, newBlogResponse(updated))
	}
}

// subscribe adds the requester to the blog's subscribers
func (h blogHandler) subscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog := h.resolveBlog(w, r)
		if blog == nil {
			return
		}

		user := currentUser(r)
		if err := h.content.Subscribe(blog, user); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

// getFavoriteBlogs lists the blogs the requester is subscribed to
func (h blogHandler) getFavoriteBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)

		blogs, err := h.blogRepo.FindSubscribed(user.ID, parseBlogFilter(r))
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "subscribed blogs", err))
			return
		}

		h.responder.WriteJSON(w, newBlogCollectionResponse(blogs))
	}
}

// getBlogPosts lists the posts of one blog. Anonymous readers and outsiders
// only see published posts; the blog's owner, its authors and admins also
// see drafts.
func (h blogHandler) getBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog := h.resolveBlog(w, r)
		if blog == nil {
			return
		}

		user := currentUser(r)
		filter := parsePostFilter(r)
		filter.BlogID = &blog.ID
		if !permissions.IsAuthorOrBlogOwner(user, blog) && !permissions.IsAdmin(user) {
			published := true
			filter.Published = &published
		}

		posts, err := h.postRepo.FindAll(filter)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "posts", err))
			return
		}

		h.responder.WriteJSON(w, newPostCollectionResponse(posts))
	}
}

// getBlogPost returns one post addressed through its blog, with the same
// draft shielding and view counting as the flat retrieve. A post that exists
// under a different blog is a forbidden probe, not a 404.
func (h blogHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog := h.resolveBlog(w, r)
		if blog == nil {
			return
		}

		postID, err := uuid.Parse(chi.URLParam(r, "postID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("postID", "must be a valid UUID"))
			return
		}

		post, err := h.content.ResolvePostInBlog(postID, blog.ID)
		if err != nil {
			h.responder.WriteError(w, err)
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

// createPost publishes a post into the blog; listed authors, the owner and
// admins only
func (h blogHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog := h.resolveBlog(w, r)
		if blog == nil {
			return
		}

		user := currentUser(r)
		policy := permissions.Policy{permissions.BlogAuthorOrOwner(blog), permissions.Admin()}
		if _, allowed := policy.Check(user); !allowed {
			h.responder.WriteError(w, errs.NewForbiddenError("only the blog's authors or owner may create posts"))
			return
		}

		var req postRequest
		if err := decodeJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.Validate(false); err != nil {
			h.responder.WriteError(w, validationError(err))
			return
		}

		post := &models.Post{
			Title: *req.Title,
			Body:  *req.Body,
		}
		if req.IsPublished != nil {
			post.IsPublished = *req.IsPublished
		}

		created, err := h.content.CreatePost(blog, user, post, req.Tags)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, newPostResponse(created))
	}
}
