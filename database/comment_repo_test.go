package database_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penfold-app/backend/database"
	"github.com/penfold-app/backend/models"
)

func seedComment(t *testing.T, d database.Database, post *models.Post, author *models.User, body string) *models.Comment {
	t.Helper()
	comment := &models.Comment{ID: uuid.New(), Body: body, PostID: post.ID}
	if author != nil {
		comment.AuthorID = &author.ID
	}
	require.NoError(t, d.CommentRepo().Add(comment))
	return comment
}

func TestCommentRepo_FindAll_FilterByPost(t *testing.T) {
	d := newTestDB(t)
	alice := seedUser(t, d, "alice")
	blog := seedBlog(t, d, alice, "Alice's Blog")
	postA := seedPost(t, d, blog, alice, "First", true)
	postB := seedPost(t, d, blog, alice, "Second", true)
	seedComment(t, d, postA, alice, "on first")
	seedComment(t, d, postB, alice, "on second")

	comments, err := d.CommentRepo().FindAll(database.CommentFilter{PostID: &postA.ID})
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "on first", comments[0].Body)

	comments, err = d.CommentRepo().FindAll(database.CommentFilter{})
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}

func TestCommentRepo_AnonymousAuthor(t *testing.T) {
	d := newTestDB(t)
	alice := seedUser(t, d, "alice")
	blog := seedBlog(t, d, alice, "Alice's Blog")
	post := seedPost(t, d, blog, alice, "Post", true)
	comment := seedComment(t, d, post, nil, "ghost comment")

	found, err := d.CommentRepo().FindByID(comment.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Nil(t, found.AuthorID)
	assert.Nil(t, found.Author)
}

func TestCommentRepo_Update_BodyOnly(t *testing.T) {
	d := newTestDB(t)
	alice := seedUser(t, d, "alice")
	blog := seedBlog(t, d, alice, "Alice's Blog")
	post := seedPost(t, d, blog, alice, "Post", true)
	comment := seedComment(t, d, post, alice, "tpyo")

	comment.Body = "typo fixed"
	require.NoError(t, d.CommentRepo().Update(comment))

	found, err := d.CommentRepo().FindByID(comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "typo fixed", found.Body)
	assert.Equal(t, comment.PostID, found.PostID)
}

func TestCommentRepo_Delete(t *testing.T) {
	d := newTestDB(t)
	alice := seedUser(t, d, "alice")
	blog := seedBlog(t, d, alice, "Alice's Blog")
	post := seedPost(t, d, blog, alice, "Post", true)
	comment := seedComment(t, d, post, alice, "bye")

	require.NoError(t, d.CommentRepo().Delete(comment.ID))

	gone, err := d.CommentRepo().FindByID(comment.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
