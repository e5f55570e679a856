package database_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penfold-app/backend/database"
)

func TestBlogRepo_FindByID(t *testing.T) {
	d := newTestDB(t)
	owner := seedUser(t, d, "alice")
	blog := seedBlog(t, d, owner, "Alice's Blog")

	found, err := d.BlogRepo().FindByID(blog.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Alice's Blog", found.Title)
	assert.Equal(t, "alice", found.Owner.Username)

	missing, err := d.BlogRepo().FindByID(uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBlogRepo_FindAll_Search(t *testing.T) {
	d := newTestDB(t)
	alice := seedUser(t, d, "alice")
	bob := seedUser(t, d, "bob")
	seedBlog(t, d, alice, "Cooking at Home")
	seedBlog(t, d, bob, "Woodworking")

	// Search matches blog titles
	blogs, err := d.BlogRepo().FindAll(database.BlogFilter{Search: "Cooking"})
	require.NoError(t, err)
	require.Len(t, blogs, 1)
	assert.Equal(t, "Cooking at Home", blogs[0].Title)

	// Search also matches the owner's username
	blogs, err = d.BlogRepo().FindAll(database.BlogFilter{Search: "bob"})
	require.NoError(t, err)
	require.Len(t, blogs, 1)
	assert.Equal(t, "Woodworking", blogs[0].Title)

	blogs, err = d.BlogRepo().FindAll(database.BlogFilter{})
	require.NoError(t, err)
	assert.Len(t, blogs, 2)
}

func TestBlogRepo_FindAll_Ordering(t *testing.T) {
	d := newTestDB(t)
	alice := seedUser(t, d, "alice")
	seedBlog(t, d, alice, "Bravo")
	seedBlog(t, d, alice, "Alpha")

	blogs, err := d.BlogRepo().FindAll(database.BlogFilter{Ordering: "title"})
	require.NoError(t, err)
	require.Len(t, blogs, 2)
	assert.Equal(t, "Alpha", blogs[0].Title)

	blogs, err = d.BlogRepo().FindAll(database.BlogFilter{Ordering: "-title"})
	require.NoError(t, err)
	require.Len(t, blogs, 2)
	assert.Equal(t, "Bravo", blogs[0].Title)

	// Unknown ordering keys fall back to the default instead of erroring
	blogs, err = d.BlogRepo().FindAll(database.BlogFilter{Ordering: "password_hash"})
	require.NoError(t, err)
	assert.Len(t, blogs, 2)
}

func TestBlogRepo_AddAuthor_Idempotent(t *testing.T) {
	d := newTestDB(t)
	owner := seedUser(t, d, "alice")
	coauthor := seedUser(t, d, "bob")
	blog := seedBlog(t, d, owner, "Shared Blog")

	require.NoError(t, d.BlogRepo().AddAuthor(blog.ID, coauthor.ID))
	require.NoError(t, d.BlogRepo().AddAuthor(blog.ID, coauthor.ID))

	found, err := d.BlogRepo().FindByID(blog.ID)
	require.NoError(t, err)
	require.Len(t, found.Authors, 1)
	assert.Equal(t, coauthor.ID, found.Authors[0].ID)
}

func TestBlogRepo_Subscribers(t *testing.T) {
	d := newTestDB(t)
	owner := seedUser(t, d, "alice")
	reader := seedUser(t, d, "bob")
	blog := seedBlog(t, d, owner, "Alice's Blog")
	other := seedBlog(t, d, owner, "Alice's Other Blog")

	require.NoError(t, d.BlogRepo().AddSubscriber(blog.ID, reader.ID))
	require.NoError(t, d.BlogRepo().AddSubscriber(blog.ID, reader.ID))

	found, err := d.BlogRepo().FindByID(blog.ID)
	require.NoError(t, err)
	assert.Len(t, found.Subscribers, 1)

	subscribed, err := d.BlogRepo().FindSubscribed(reader.ID, database.BlogFilter{})
	require.NoError(t, err)
	require.Len(t, subscribed, 1)
	assert.Equal(t, blog.ID, subscribed[0].ID)
	assert.NotEqual(t, other.ID, subscribed[0].ID)
}

func TestBlogRepo_Update(t *testing.T) {
	d := newTestDB(t)
	owner := seedUser(t, d, "alice")
	blog := seedBlog(t, d, owner, "Old Title")

	desc := "now with a description"
	blog.Title = "New Title"
	blog.Description = &desc
	require.NoError(t, d.BlogRepo().Update(blog))

	found, err := d.BlogRepo().FindByID(blog.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Title", found.Title)
	require.NotNil(t, found.Description)
	assert.Equal(t, desc, *found.Description)
}

func TestBlogRepo_Delete_CascadesToPosts(t *testing.T) {
	d := newTestDB(t)
	owner := seedUser(t, d, "alice")
	blog := seedBlog(t, d, owner, "Doomed Blog")
	post := seedPost(t, d, blog, owner, "Doomed Post", true)

	require.NoError(t, d.BlogRepo().Delete(blog.ID))

	gone, err := d.BlogRepo().FindByID(blog.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	orphan, err := d.PostRepo().FindByID(post.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan)
}
