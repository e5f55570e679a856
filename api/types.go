package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/penfold-app/backend/errs"
	"github.com/penfold-app/backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	userHandler    userHandler
	blogHandler    blogHandler
	postHandler    postHandler
	tagHandler     tagHandler
	commentHandler commentHandler
}

// Each endpoint carries one explicit request/response schema; nothing is
// derived from the models by reflection.

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (req registerRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Username, validation.Required),
		validation.Field(&req.Password, validation.Required),
	)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (req loginRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Username, validation.Required),
		validation.Field(&req.Password, validation.Required),
	)
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

func (req refreshRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Refresh, validation.Required),
	)
}

type blogRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// Validate checks the payload; partial updates only validate the fields
// that are present.
func (req blogRequest) Validate(partial bool) error {
	titleRules := []validation.Rule{validation.Length(1, 150)}
	if !partial {
		titleRules = append([]validation.Rule{validation.NotNil}, titleRules...)
	}
	return validation.ValidateStruct(&req,
		validation.Field(&req.Title, titleRules...),
	)
}

type addAuthorsRequest struct {
	Authors []uuid.UUID `json:"authors"`
}

func (req addAuthorsRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Authors, validation.Required),
	)
}

type postRequest struct {
	Title       *string     `json:"title"`
	Body        *string     `json:"body"`
	IsPublished *bool       `json:"isPublished"`
	Tags        []uuid.UUID `json:"tags"`
}

func (req postRequest) Validate(partial bool) error {
	titleRules := []validation.Rule{validation.Length(1, 150)}
	bodyRules := []validation.Rule{validation.Length(1, 0)}
	if !partial {
		titleRules = append([]validation.Rule{validation.NotNil}, titleRules...)
		bodyRules = append([]validation.Rule{validation.NotNil}, bodyRules...)
	}
	return validation.ValidateStruct(&req,
		validation.Field(&req.Title, titleRules...),
		validation.Field(&req.Body, bodyRules...),
	)
}

type commentRequest struct {
	Body string `json:"body"`
}

func (req commentRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Body, validation.Required),
	)
}

type tagRequest struct {
	Title string `json:"title"`
}

func (req tagRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 150)),
	)
}

// Response schemas

type userResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

func newUserResponse(u models.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username}
}

type blogResponse struct {
	ID              uuid.UUID      `json:"id"`
	Title           string         `json:"title"`
	Description     *string        `json:"description,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	Owner           userResponse   `json:"owner"`
	Authors         []userResponse `json:"authors"`
	SubscriberCount int            `json:"subscriberCount"`
}

func newBlogResponse(b *models.Blog) blogResponse {
	authors := make([]userResponse, 0, len(b.Authors))
	for _, a := range b.Authors {
		authors = append(authors, newUserResponse(a))
	}
	return blogResponse{
		ID:              b.ID,
		Title:           b.Title,
		Description:     b.Description,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
		Owner:           newUserResponse(b.Owner),
		Authors:         authors,
		SubscriberCount: len(b.Subscribers),
	}
}

type blogCollectionResponse struct {
	Blogs []blogResponse `json:"blogs"`
	Total int            `json:"total"`
}

func newBlogCollectionResponse(blogs []*models.Blog) blogCollectionResponse {
	out := make([]blogResponse, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, newBlogResponse(b))
	}
	return blogCollectionResponse{Blogs: out, Total: len(out)}
}

type tagResponse struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

func newTagResponse(t *models.Tag) tagResponse {
	return tagResponse{ID: t.ID, Title: t.Title}
}

type tagCollectionResponse struct {
	Tags  []tagResponse `json:"tags"`
	Total int           `json:"total"`
}

func newTagCollectionResponse(tags []*models.Tag) tagCollectionResponse {
	out := make([]tagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, newTagResponse(t))
	}
	return tagCollectionResponse{Tags: out, Total: len(out)}
}

type postResponse struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Body        string        `json:"body"`
	IsPublished bool          `json:"isPublished"`
	CreatedAt   *time.Time    `json:"createdAt,omitempty"`
	Likes       uint          `json:"likes"`
	Views       uint          `json:"views"`
	Author      userResponse  `json:"author"`
	BlogID      uuid.UUID     `json:"blogId"`
	Tags        []tagResponse `json:"tags"`
}

func newPostResponse(p *models.Post) postResponse {
	tags := make([]tagResponse, 0, len(p.Tags))
	for i := range p.Tags {
		tags = append(tags, newTagResponse(&p.Tags[i]))
	}
	return postResponse{
		ID:          p.ID,
		Title:       p.Title,
		Body:        p.Body,
		IsPublished: p.IsPublished,
		CreatedAt:   p.CreatedAt,
		Likes:       p.Likes,
		Views:       p.Views,
		Author:      newUserResponse(p.Author),
		BlogID:      p.BlogID,
		Tags:        tags,
	}
}

type postCollectionResponse struct {
	Posts []postResponse `json:"posts"`
	Total int            `json:"total"`
}

func newPostCollectionResponse(posts []*models.Post) postCollectionResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, newPostResponse(p))
	}
	return postCollectionResponse{Posts: out, Total: len(out)}
}

type commentResponse struct {
	ID        uuid.UUID     `json:"id"`
	Body      string        `json:"body"`
	CreatedAt time.Time     `json:"createdAt"`
	Author    *userResponse `json:"author,omitempty"`
	PostID    uuid.UUID     `json:"postId"`
}

func newCommentResponse(c *models.Comment) commentResponse {
	resp := commentResponse{
		ID:        c.ID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
		PostID:    c.PostID,
	}
	if c.Author != nil {
		author := newUserResponse(*c.Author)
		resp.Author = &author
	}
	return resp
}

type commentCollectionResponse struct {
	Comments []commentResponse `json:"comments"`
	Total    int               `json:"total"`
}

func newCommentCollectionResponse(comments []*models.Comment) commentCollectionResponse {
	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, newCommentResponse(c))
	}
	return commentCollectionResponse{Comments: out, Total: len(out)}
}

// decodeJSON unmarshals the request body into dst
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.NewMalformedPayloadError("json", err)
	}
	return nil
}

// validationError converts ozzo's per-field errors into the API's
// field-enumerating 400 payload.
func validationError(err error) error {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for field, ferr := range fieldErrs {
			fields[field] = ferr.Error()
		}
		return errs.NewValidationError(fields)
	}
	return errs.NewBadRequestError(err.Error())
}
