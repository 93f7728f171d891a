package blog

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type CreateBlogRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	Status  string `json:"status"`
}

func (r CreateBlogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
		),
		validation.Field(&r.Status,
			validation.In(string(StatusDraft), string(StatusPublished)).
				Error("status must be draft or published"),
		),
	)
}

// UpdateBlogRequest uses pointers to distinguish "not sent" from zero values.
type UpdateBlogRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Status  *string `json:"status"`
}

func (r UpdateBlogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Content, validation.NilOrNotEmpty),
		validation.Field(&r.Status,
			validation.In(string(StatusDraft), string(StatusPublished)).
				Error("status must be draft or published"),
		),
	)
}

// ListBlogsQuery captures scope and pagination for the blog list endpoint.
type ListBlogsQuery struct {
	Scope    string `form:"scope"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// Normalize clamps pagination to sane bounds.
func (q *ListBlogsQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}
}

type BlogDTO struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Status       Status     `json:"status"`
	ViewCount    int64      `json:"view_count"`
	AuthorID     uuid.UUID  `json:"author_id"`
	AuthorName   string     `json:"author_name"`
	CommentCount int64      `json:"comment_count"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ToDTO converts a Blog entity to its API shape.
func (b *Blog) ToDTO() BlogDTO {
	return BlogDTO{
		ID:          b.ID,
		Title:       b.Title,
		Content:     b.Content,
		Status:      b.Status,
		ViewCount:   b.ViewCount,
		AuthorID:    b.AuthorID,
		AuthorName:  b.AuthorName,
		PublishedAt: b.PublishedAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// ListBlogsResponse is a paginated list of blogs.
type ListBlogsResponse struct {
	Blogs      []BlogDTO `json:"blogs"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalCount int64     `json:"total_count"`
}
