package blog

import (
	"context"

	"github.com/google/uuid"
)

// Service is the blog business logic contract.
type Service interface {
	// Create makes a new post owned by authorID. Status defaults to draft.
	Create(ctx context.Context, authorID uuid.UUID, req CreateBlogRequest) (*BlogDTO, error)

	// List returns the posts visible to viewerID (uuid.Nil for anonymous).
	List(ctx context.Context, viewerID uuid.UUID, query ListBlogsQuery) (*ListBlogsResponse, error)

	// Get returns one post and, when the viewer is not the author,
	// increments its view counter. Drafts return ErrDraftForbidden for
	// everyone but the author.
	Get(ctx context.Context, id, viewerID uuid.UUID) (*BlogDTO, error)

	// Update edits an owned post. Status changes go through the transition
	// guard; published posts cannot return to draft.
	Update(ctx context.Context, id, authorID uuid.UUID, req UpdateBlogRequest) (*BlogDTO, error)

	// Delete removes an owned post. Non-authors get ErrBlogNotFound.
	Delete(ctx context.Context, id, authorID uuid.UUID) error
}
