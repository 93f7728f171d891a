package blog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the blog data access contract.
type Repository interface {
	// Create inserts a new blog.
	Create(ctx context.Context, b *Blog) error

	// FindByID returns the blog with author fields joined.
	// Returns ErrBlogNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*Blog, error)

	// FindByIDAndAuthor returns the blog only when authorID owns it.
	// Returns ErrBlogNotFound otherwise, so drafts stay hidden.
	FindByIDAndAuthor(ctx context.Context, id, authorID uuid.UUID) (*Blog, error)

	// List returns blogs matching a resolved scope, newest first.
	// viewerID may be uuid.Nil for anonymous viewers.
	List(ctx context.Context, viewerID uuid.UUID, scope ListScope, limit, offset int) ([]Blog, int64, error)

	// Update persists title, content, status and published_at.
	Update(ctx context.Context, b *Blog) error

	// Delete removes the blog when authorID owns it.
	// Returns ErrBlogNotFound otherwise.
	Delete(ctx context.Context, id, authorID uuid.UUID) error

	// IncrementViewCount bumps the counter atomically in the database so
	// concurrent reads never lose updates.
	IncrementViewCount(ctx context.Context, id uuid.UUID) error

	// ListPublishedSince returns blogs whose published_at falls in
	// (since, now], with author fields joined. Used by the digest job.
	ListPublishedSince(ctx context.Context, since time.Time) ([]Blog, error)
}
