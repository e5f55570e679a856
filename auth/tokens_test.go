package auth_test

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/penfold-app/backend/auth"
	"github.com/penfold-app/backend/database"
	"github.com/penfold-app/backend/errs"
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

	require.NoError(t, db.AutoMigrate(&models.User{}, &database.RevokedToken{}))

	return database.New(db)
}

func newTokenService(d database.Database) *auth.TokenService {
	return auth.NewTokenService("test-secret", time.Hour, 24*time.Hour, d.TokenRepo())
}

func TestTokenService_IssueAndSubject(t *testing.T) {
	d := newTestDB(t)
	svc := newTokenService(d)
	user := &models.User{ID: uuid.New(), Username: "alice"}

	pair, err := svc.Issue(user)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
	assert.Equal(t, user.ID, pair.UserID)

	subject, err := svc.Subject(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, subject)

	// A refresh token is not an access token
	_, err = svc.Subject(pair.Refresh)
	assert.True(t, errs.IsUnauthorized(err))

	_, err = svc.Subject("not-a-token")
	assert.True(t, errs.IsUnauthorized(err))
}

func TestTokenService_Refresh(t *testing.T) {
	d := newTestDB(t)
	svc := newTokenService(d)
	user := &models.User{ID: uuid.New(), Username: "alice"}

	pair, err := svc.Issue(user)
	require.NoError(t, err)

	access, err := svc.Refresh(pair.Refresh)
	require.NoError(t, err)

	subject, err := svc.Subject(access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, subject)

	// An access token cannot be exchanged
	_, err = svc.Refresh(pair.Access)
	assert.True(t, errs.IsUnauthorized(err))
}

func TestTokenService_RevokedRefreshRejected(t *testing.T) {
	d := newTestDB(t)
	svc := newTokenService(d)
	user := &models.User{ID: uuid.New(), Username: "alice"}

	pair, err := svc.Issue(user)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(pair.Refresh))
	// Revoking twice is harmless
	require.NoError(t, svc.Revoke(pair.Refresh))

	_, err = svc.Refresh(pair.Refresh)
	assert.True(t, errs.IsUnauthorized(err))

	// The access token keeps working until it expires on its own
	_, err = svc.Subject(pair.Access)
	assert.NoError(t, err)
}

func TestTokenService_ExpiredAccessRejected(t *testing.T) {
	d := newTestDB(t)
	svc := auth.NewTokenService("test-secret", -time.Minute, 24*time.Hour, d.TokenRepo())
	user := &models.User{ID: uuid.New(), Username: "alice"}

	pair, err := svc.Issue(user)
	require.NoError(t, err)

	_, err = svc.Subject(pair.Access)
	assert.True(t, errs.IsUnauthorized(err))
}

func TestTokenService_WrongSecretRejected(t *testing.T) {
	d := newTestDB(t)
	user := &models.User{ID: uuid.New(), Username: "alice"}

	pair, err := newTokenService(d).Issue(user)
	require.NoError(t, err)

	other := auth.NewTokenService("different-secret", time.Hour, 24*time.Hour, d.TokenRepo())
	_, err = other.Subject(pair.Access)
	assert.True(t, errs.IsUnauthorized(err))
}

func seedAccount(t *testing.T, d database.Database, svc *services.UserService, username, password string) *models.User {
	t.Helper()
	user, err := svc.Register(username, password)
	require.NoError(t, err)
	return user
}

func TestService_Login(t *testing.T) {
	d := newTestDB(t)
	identity := services.NewUserService(d.UserRepo(), services.DefaultPasswordPolicy())
	svc := auth.NewService(d.UserRepo(), identity, newTokenService(d))
	seedAccount(t, d, identity, "alice", "correct-horse-battery")

	pair, err := svc.Login("alice", "correct-horse-battery")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access)

	// Unknown usernames and wrong passwords fail with the same message
	_, badUser := svc.Login("nobody", "correct-horse-battery")
	_, badPass := svc.Login("alice", "wrong-password")
	require.Error(t, badUser)
	require.Error(t, badPass)
	assert.Equal(t, badUser.Error(), badPass.Error())
	assert.True(t, errs.IsUnauthorized(badUser))
}

func TestService_Login_InactiveUser(t *testing.T) {
	d := newTestDB(t)
	identity := services.NewUserService(d.UserRepo(), services.DefaultPasswordPolicy())
	svc := auth.NewService(d.UserRepo(), identity, newTokenService(d))
	user := seedAccount(t, d, identity, "alice", "correct-horse-battery")

	require.NoError(t, d.UserRepo().Deactivate(user.ID))

	_, err := svc.Login("alice", "correct-horse-battery")
	assert.True(t, errs.IsUnauthorized(err))
}

func TestService_Authenticate(t *testing.T) {
	d := newTestDB(t)
	identity := services.NewUserService(d.UserRepo(), services.DefaultPasswordPolicy())
	svc := auth.NewService(d.UserRepo(), identity, newTokenService(d))
	user := seedAccount(t, d, identity, "alice", "correct-horse-battery")

	pair, err := svc.Login("alice", "correct-horse-battery")
	require.NoError(t, err)

	authenticated, err := svc.Authenticate(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, authenticated.ID)

	// Deactivating the account invalidates otherwise-valid tokens
	require.NoError(t, d.UserRepo().Deactivate(user.ID))
	_, err = svc.Authenticate(pair.Access)
	assert.True(t, errs.IsUnauthorized(err))
}

func TestService_LogoutCutsRefresh(t *testing.T) {
	d := newTestDB(t)
	identity := services.NewUserService(d.UserRepo(), services.DefaultPasswordPolicy())
	svc := auth.NewService(d.UserRepo(), identity, newTokenService(d))
	seedAccount(t, d, identity, "alice", "correct-horse-battery")

	pair, err := svc.Login("alice", "correct-horse-battery")
	require.NoError(t, err)

	access, err := svc.Refresh(pair.Refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access)

	require.NoError(t, svc.Logout(pair.Refresh))

	_, err = svc.Refresh(pair.Refresh)
	assert.True(t, errs.IsUnauthorized(err))
}
