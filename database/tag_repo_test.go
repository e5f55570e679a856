package database_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penfold-app/backend/models"
)

func TestTagRepo_FindAll_OrderedByTitle(t *testing.T) {
	d := newTestDB(t)
	seedTag(t, d, "woodworking")
	seedTag(t, d, "cooking")
	seedTag(t, d, "golang")

	tags, err := d.TagRepo().FindAll()
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, "cooking", tags[0].Title)
	assert.Equal(t, "woodworking", tags[2].Title)
}

func TestTagRepo_Add_DuplicateTitle(t *testing.T) {
	d := newTestDB(t)
	seedTag(t, d, "golang")

	err := d.TagRepo().Add(&models.Tag{ID: uuid.New(), Title: "golang"})
	assert.Error(t, err)
}

func TestTagRepo_FindByTitles(t *testing.T) {
	d := newTestDB(t)
	seedTag(t, d, "golang")
	seedTag(t, d, "cooking")

	tags, err := d.TagRepo().FindByTitles([]string{"golang", "missing"})
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "golang", tags[0].Title)
}

func TestTagRepo_Update(t *testing.T) {
	d := newTestDB(t)
	tag := seedTag(t, d, "golnag")

	tag.Title = "golang"
	require.NoError(t, d.TagRepo().Update(tag))

	found, err := d.TagRepo().FindByID(tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "golang", found.Title)
}

func TestTagRepo_Delete_DetachesFromPosts(t *testing.T) {
	d := newTestDB(t)
	alice := seedUser(t, d, "alice")
	blog := seedBlog(t, d, alice, "Alice's Blog")
	post := seedPost(t, d, blog, alice, "Tagged", true)
	tag := seedTag(t, d, "golang")
	require.NoError(t, d.PostRepo().ReplaceTags(post, []models.Tag{*tag}))

	require.NoError(t, d.TagRepo().Delete(tag.ID))

	found, err := d.PostRepo().FindByID(post.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Empty(t, found.Tags)
}
