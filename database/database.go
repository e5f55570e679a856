package database

import (
	"gorm.io/gorm"
)

type Database struct {
	userRepo    *UserRepo
	blogRepo    *BlogRepo
	tagRepo     *TagRepo
	postRepo    *PostRepo
	commentRepo *CommentRepo
	tokenRepo   *TokenRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:    NewUserRepo(db),
		blogRepo:    NewBlogRepo(db),
		tagRepo:     NewTagRepo(db),
		postRepo:    NewPostRepo(db),
		commentRepo: NewCommentRepo(db),
		tokenRepo:   NewTokenRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) BlogRepo() *BlogRepo {
	return d.blogRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) TokenRepo() *TokenRepo {
	return d.tokenRepo
}
