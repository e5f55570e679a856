// Package permissions holds the stateless authorization predicates. Every
// predicate takes the requesting user explicitly; a nil user means the
// request is unauthenticated. Callers must check resource existence first so
// a missing resource never leaks a permission decision.
package permissions

import (
	"github.com/penfold-app/backend/models"
)

// IsAdmin reports whether the user carries the admin flag
func IsAdmin(user *models.User) bool {
	return user != nil && user.IsAdmin
}

// IsOwner reports whether the user owns the blog
func IsOwner(user *models.User, blog *models.Blog) bool {
	return user != nil && blog != nil && blog.OwnerID == user.ID
}

// IsAuthor reports whether the user is in the blog's author set.
// The blog's Authors must be loaded.
func IsAuthor(user *models.User, blog *models.Blog) bool {
	return user != nil && blog != nil && blog.HasAuthor(user.ID)
}

// IsAuthorOrBlogOwner reports whether the user may write posts in the blog:
// either a listed author or the owner, who holds author rights implicitly.
func IsAuthorOrBlogOwner(user *models.User, blog *models.Blog) bool {
	return IsOwner(user, blog) || IsAuthor(user, blog)
}

// IsPostAuthor reports whether the user wrote the post
func IsPostAuthor(user *models.User, post *models.Post) bool {
	return user != nil && post != nil && post.AuthorID == user.ID
}

// Rule is a named predicate over a request's user. Naming rules keeps the
// denial diagnostics concrete instead of an anonymous boolean soup.
type Rule struct {
	Name  string
	Allow func(user *models.User) bool
}

// Policy is an ordered set of rules combined with short-circuit OR.
type Policy []Rule

// Check returns the name of the first rule that allows the user, or
// ("", false) when every rule denies.
func (p Policy) Check(user *models.User) (string, bool) {
	for _, rule := range p {
		if rule.Allow(user) {
			return rule.Name, true
		}
	}
	return "", false
}

// Admin allows users carrying the admin flag
func Admin() Rule {
	return Rule{Name: "admin", Allow: IsAdmin}
}

// Authenticated allows any logged-in user
func Authenticated() Rule {
	return Rule{
		Name:  "authenticated",
		Allow: func(user *models.User) bool { return user != nil },
	}
}

// BlogOwner allows the authenticated owner of the blog
func BlogOwner(blog *models.Blog) Rule {
	return Rule{
		Name:  "blog-owner",
		Allow: func(user *models.User) bool { return IsOwner(user, blog) },
	}
}

// BlogAuthorOrOwner allows a listed author of the blog or its owner
func BlogAuthorOrOwner(blog *models.Blog) Rule {
	return Rule{
		Name:  "blog-author-or-owner",
		Allow: func(user *models.User) bool { return IsAuthorOrBlogOwner(user, blog) },
	}
}

// PostAuthor allows the user who wrote the post
func PostAuthor(post *models.Post) Rule {
	return Rule{
		Name:  "post-author",
		Allow: func(user *models.User) bool { return IsPostAuthor(user, post) },
	}
}
