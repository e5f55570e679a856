package database_test

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/penfold-app/backend/database"
	"github.com/penfold-app/backend/models"
)

func newTestDB(t *testing.T) database.Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Blog{},
		&models.Tag{},
		&models.Post{},
		&models.Comment{},
		&database.RevokedToken{},
	))

	return database.New(db)
}

func seedUser(t *testing.T, d database.Database, username string) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: "not-a-real-hash",
		IsActive:     true,
	}
	require.NoError(t, d.UserRepo().Add(user))
	return user
}

func seedBlog(t *testing.T, d database.Database, owner *models.User, title string) *models.Blog {
	t.Helper()
	blog := &models.Blog{
		ID:      uuid.New(),
		Title:   title,
		OwnerID: owner.ID,
	}
	require.NoError(t, d.BlogRepo().Add(blog))
	return blog
}

func seedPost(t *testing.T, d database.Database, blog *models.Blog, author *models.User, title string, published bool) *models.Post {
	t.Helper()
	post := &models.Post{
		ID:          uuid.New(),
		Title:       title,
		Body:        "body of " + title,
		IsPublished: published,
		AuthorID:    author.ID,
		BlogID:      blog.ID,
	}
	if published {
		now := time.Now()
		post.CreatedAt = &now
	}
	require.NoError(t, d.PostRepo().Add(post))
	return post
}

func seedTag(t *testing.T, d database.Database, title string) *models.Tag {
	t.Helper()
	tag := &models.Tag{ID: uuid.New(), Title: title}
	require.NoError(t, d.TagRepo().Add(tag))
	return tag
}
