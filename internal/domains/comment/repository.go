package comment

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the comment data access contract.
type Repository interface {
	// Create inserts a new comment or reply.
	Create(ctx context.Context, c *Comment) error

	// FindByID returns ErrCommentNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*Comment, error)

	// ListForBlog returns every comment on a blog, oldest first, with the
	// commenter's username joined. Threading happens in the service.
	ListForBlog(ctx context.Context, blogID uuid.UUID) ([]Comment, error)

	// CountByBlogIDs returns per-blog comment totals. Blogs with no
	// comments are absent from the map.
	CountByBlogIDs(ctx context.Context, blogIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}
