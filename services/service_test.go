package services_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/penfold-app/backend/database"
	"github.com/penfold-app/backend/models"
	"github.com/penfold-app/backend/services"
)

func newTestDB(t *testing.T) database.Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Blog{},
		&models.Tag{},
		&models.Post{},
		&models.Comment{},
	))

	return database.New(db)
}

func newContentService(d database.Database) *services.ContentService {
	return services.NewContentService(d.BlogRepo(), d.PostRepo(), d.UserRepo(), d.TagRepo())
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
