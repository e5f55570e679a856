package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires every endpoint. Read endpoints run behind identify so an
// optional Bearer token still resolves to a user (draft visibility, view
// counting); mutating endpoints run behind authenticate. Existence checks
// happen in the handlers, before any permission decision.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Account and token endpoints
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/users", handlers.userHandler.register())
		r.Post("/login", handlers.userHandler.login())
		r.Post("/logout", handlers.userHandler.logout())
		r.Post("/token/refresh", handlers.userHandler.refresh())
	})

	// Open read endpoints; a Bearer token is honored but not required
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.identify)

		r.Get("/blogs", handlers.blogHandler.getAllBlogs())
		r.Get("/blogs/{blogID}", handlers.blogHandler.getBlog())
		r.Get("/blogs/{blogID}/posts", handlers.blogHandler.getBlogPosts())
		r.Get("/blogs/{blogID}/posts/{postID}", handlers.blogHandler.getBlogPost())

		r.Get("/posts", handlers.postHandler.getAllPosts())
		r.Get("/posts/{postID}", handlers.postHandler.getPost())

		r.Get("/tags", handlers.tagHandler.getAllTags())
		r.Get("/tags/{tagID}", handlers.tagHandler.getTag())

		r.Get("/comments", handlers.commentHandler.getAllComments())
		r.Get("/comments/{commentID}", handlers.commentHandler.getComment())
	})

	// Authenticated endpoints
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.authenticate)

		r.Get("/blogs/favorites", handlers.blogHandler.getFavoriteBlogs())
		r.Post("/blogs", handlers.blogHandler.createBlog())
		r.Put("/blogs/{blogID}", handlers.blogHandler.updateBlog(false))
		r.Patch("/blogs/{blogID}", handlers.blogHandler.updateBlog(true))
		r.Delete("/blogs/{blogID}", handlers.blogHandler.deleteBlog())
		r.Patch("/blogs/{blogID}/add-authors", handlers.blogHandler.addAuthors())
		r.Patch("/blogs/{blogID}/subscribe", handlers.blogHandler.subscribe())
		r.Post("/blogs/{blogID}/posts", handlers.blogHandler.createPost())

		r.Get("/posts/my", handlers.postHandler.getMyPosts())
		r.Put("/posts/{postID}", handlers.postHandler.updatePost(false))
		r.Patch("/posts/{postID}", handlers.postHandler.updatePost(true))
		r.Delete("/posts/{postID}", handlers.postHandler.deletePost())
		r.Patch("/posts/{postID}/add-like", handlers.postHandler.addLike())
		r.Post("/posts/{postID}/add-comment", handlers.postHandler.addComment())

		r.Post("/tags", handlers.tagHandler.createTag())
		r.Put("/tags/{tagID}", handlers.tagHandler.updateTag())
		r.Patch("/tags/{tagID}", handlers.tagHandler.updateTag())
		r.Delete("/tags/{tagID}", handlers.tagHandler.deleteTag())

		r.Put("/comments/{commentID}", handlers.commentHandler.updateComment())
		r.Patch("/comments/{commentID}", handlers.commentHandler.updateComment())
		r.Delete("/comments/{commentID}", handlers.commentHandler.deleteComment())
	})
}
