package database_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRepo_Revoke(t *testing.T) {
	d := newTestDB(t)
	expires := time.Now().Add(time.Hour)

	revoked, err := d.TokenRepo().IsRevoked("jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, d.TokenRepo().Revoke("jti-1", expires))
	// Revoking twice is a no-op
	require.NoError(t, d.TokenRepo().Revoke("jti-1", expires))

	revoked, err = d.TokenRepo().IsRevoked("jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestTokenRepo_PurgeExpired(t *testing.T) {
	d := newTestDB(t)
	now := time.Now()

	require.NoError(t, d.TokenRepo().Revoke("stale", now.Add(-time.Minute)))
	require.NoError(t, d.TokenRepo().Revoke("fresh", now.Add(time.Hour)))

	require.NoError(t, d.TokenRepo().PurgeExpired(now))

	revoked, err := d.TokenRepo().IsRevoked("stale")
	require.NoError(t, err)
	assert.False(t, revoked)

	revoked, err = d.TokenRepo().IsRevoked("fresh")
	require.NoError(t, err)
	assert.True(t, revoked)
}
