package database_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penfold-app/backend/models"
)

func TestUserRepo_FindByID(t *testing.T) {
	d := newTestDB(t)
	user := seedUser(t, d, "alice")

	found, err := d.UserRepo().FindByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "alice", found.Username)

	// Missing users come back as nil, not as an error
	missing, err := d.UserRepo().FindByID(uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepo_FindByUsername(t *testing.T) {
	d := newTestDB(t)
	seedUser(t, d, "alice")

	found, err := d.UserRepo().FindByUsername("alice")
	require.NoError(t, err)
	require.NotNil(t, found)

	missing, err := d.UserRepo().FindByUsername("nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepo_Add_DuplicateUsername(t *testing.T) {
	d := newTestDB(t)
	seedUser(t, d, "alice")

	dup := &models.User{ID: uuid.New(), Username: "alice", PasswordHash: "x", IsActive: true}
	err := d.UserRepo().Add(dup)
	assert.Error(t, err)

	// The original account is untouched
	found, findErr := d.UserRepo().FindByUsername("alice")
	require.NoError(t, findErr)
	require.NotNil(t, found)
	assert.NotEqual(t, dup.ID, found.ID)
}

func TestUserRepo_FindByIDs(t *testing.T) {
	d := newTestDB(t)
	alice := seedUser(t, d, "alice")
	bob := seedUser(t, d, "bob")

	users, err := d.UserRepo().FindByIDs([]uuid.UUID{alice.ID, bob.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserRepo_Deactivate(t *testing.T) {
	d := newTestDB(t)
	user := seedUser(t, d, "alice")

	require.NoError(t, d.UserRepo().Deactivate(user.ID))

	found, err := d.UserRepo().FindByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.False(t, found.IsActive)
}
