package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/penfold-app/backend/database"
	"github.com/penfold-app/backend/errs"
	"github.com/penfold-app/backend/models"
)

// ContentService holds the named domain operations that mutate blogs and
// posts beyond plain CRUD. Handlers resolve targets and check permissions
// first; these operations assume the target exists.
type ContentService struct {
	blogs *database.BlogRepo
	posts *database.PostRepo
	users *database.UserRepo
	tags  *database.TagRepo
}

func NewContentService(blogs *database.BlogRepo, posts *database.PostRepo, users *database.UserRepo, tags *database.TagRepo) *ContentService {
	return &ContentService{blogs: blogs, posts: posts, users: users, tags: tags}
}

// IncrementLikes adds one like to the post. The repo applies the increment
// as a relative update, so concurrent likes all count.
func (s *ContentService) IncrementLikes(post *models.Post) error {
	return s.posts.IncrementLikes(post.ID)
}

// IncrementViews counts a view unless the requester owns the post's blog;
// owners never inflate their own view count. Views by the post's author and
// by anonymous readers count. The post's Blog must be loaded.
func (s *ContentService) IncrementViews(post *models.Post, requester *models.User) error {
	if requester != nil && post.Blog.OwnerID == requester.ID {
		return nil
	}
	return s.posts.IncrementViews(post.ID)
}

// AddAuthors adds each candidate to the blog's author set, skipping the
// requester themselves and anyone already a member. Every candidate must
// exist; dangling references are rejected, not silently created.
func (s *ContentService) AddAuthors(blog *models.Blog, candidateIDs []uuid.UUID, requester *models.User) error {
	if len(candidateIDs) == 0 {
		return errs.NewMissingRequiredFieldError("authors")
	}

	candidates, err := s.users.FindByIDs(candidateIDs)
	if err != nil {
		return errs.NewDatabaseError("find", "users", err)
	}
	if len(candidates) != len(uniqueIDs(candidateIDs)) {
		return errs.NewInvalidFieldError("authors", "one or more users do not exist")
	}

	for _, candidate := range candidates {
		if requester != nil && candidate.ID == requester.ID {
			continue
		}
		if blog.HasAuthor(candidate.ID) {
			continue
		}
		if err := s.blogs.AddAuthor(blog.ID, candidate.ID); err != nil {
			return errs.NewDatabaseError("add author to", "blog", err)
		}
	}
	return nil
}

// Subscribe adds the requester to the blog's subscriber set; resubscribing
// is a no-op.
func (s *ContentService) Subscribe(blog *models.Blog, requester *models.User) error {
	if err := s.blogs.AddSubscriber(blog.ID, requester.ID); err != nil {
		return errs.NewDatabaseError("subscribe to", "blog", err)
	}
	return nil
}

// ResolvePostInBlog fetches a post claimed to live in the given blog.
// An absent post is NotFound; a post that exists but belongs to another
// blog is Forbidden, because the caller is probing a resource through the
// wrong parent.
func (s *ContentService) ResolvePostInBlog(postID, blogID uuid.UUID) (*models.Post, error) {
	post, err := s.posts.FindByID(postID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "post", err)
	}
	if post == nil {
		return nil, errs.NewNotFound("post")
	}
	if post.BlogID != blogID {
		return nil, errs.NewForbiddenError("post does not belong to this blog")
	}
	return post, nil
}

// CreatePost creates a post in the blog on behalf of the author. When the
// post arrives already published, created_at is stamped now; the stamp
// never re-fires on later updates.
func (s *ContentService) CreatePost(blog *models.Blog, author *models.User, post *models.Post, tagIDs []uuid.UUID) (*models.Post, error) {
	post.ID = uuid.New()
	post.BlogID = blog.ID
	post.AuthorID = author.ID
	post.Likes = 0
	post.Views = 0
	post.CreatedAt = nil

	if post.IsPublished {
		now := time.Now()
		post.CreatedAt = &now
	}

	tags, err := s.resolveTags(tagIDs)
	if err != nil {
		return nil, err
	}
	post.Tags = tags

	if err := s.posts.Add(post); err != nil {
		return nil, errs.NewDatabaseError("create", "post", err)
	}
	return s.posts.FindByID(post.ID)
}

// PostUpdate is the struct with all updatable fields on the post
type PostUpdate struct {
	Title       *string
	Body        *string
	IsPublished *bool
	TagIDs      []uuid.UUID
}

// UpdatePost applies the update. A transition to published stamps
// created_at exactly once; edits to an already-published post leave the
// timestamp alone.
func (s *ContentService) UpdatePost(post *models.Post, upd PostUpdate) (*models.Post, error) {
	if upd.Title != nil {
		post.Title = *upd.Title
	}
	if upd.Body != nil {
		post.Body = *upd.Body
	}
	if upd.IsPublished != nil {
		post.IsPublished = *upd.IsPublished
	}

	if err := s.posts.Update(post); err != nil {
		return nil, errs.NewDatabaseError("update", "post", err)
	}

	if post.IsPublished && post.CreatedAt == nil {
		now := time.Now()
		post.CreatedAt = &now
		if err := s.posts.Publish(post); err != nil {
			return nil, errs.NewDatabaseError("publish", "post", err)
		}
	}

	if upd.TagIDs != nil {
		tags, err := s.resolveTags(upd.TagIDs)
		if err != nil {
			return nil, err
		}
		if err := s.posts.ReplaceTags(post, tags); err != nil {
			return nil, errs.NewDatabaseError("retag", "post", err)
		}
	}

	return s.posts.FindByID(post.ID)
}

func (s *ContentService) resolveTags(tagIDs []uuid.UUID) ([]models.Tag, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	tags, err := s.tags.FindByIDs(tagIDs)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "tags", err)
	}
	if len(tags) != len(uniqueIDs(tagIDs)) {
		return nil, errs.NewInvalidFieldError("tags", "one or more tags do not exist")
	}
	return tags, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
