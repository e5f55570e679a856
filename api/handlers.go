package api

import (
	"github.com/penfold-app/backend/auth"
	"github.com/penfold-app/backend/database"
	"github.com/penfold-app/backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, authService *auth.Service, identity *services.UserService, commentsAdminOnly bool) *routeHandlers {
	content := services.NewContentService(db.BlogRepo(), db.PostRepo(), db.UserRepo(), db.TagRepo())

	return &routeHandlers{
		userHandler:    newUserHandler(identity, authService),
		blogHandler:    newBlogHandler(db.BlogRepo(), db.PostRepo(), content),
		postHandler:    newPostHandler(db.PostRepo(), db.CommentRepo(), content, commentsAdminOnly),
		tagHandler:     newTagHandler(db.TagRepo()),
		commentHandler: newCommentHandler(db.CommentRepo()),
	}
}
