package comment

import (
	"context"

	"github.com/google/uuid"
)

// Service is the comment business logic contract.
type Service interface {
	// Create adds a top-level comment. The blog must exist. The blog owner
	// is notified asynchronously; a queue outage never fails the write.
	Create(ctx context.Context, blogID, authorID uuid.UUID, authorUsername string, req CreateCommentRequest) (*CommentDTO, error)

	// Reply adds a reply to a top-level comment. The blog is inherited from
	// the parent. Replies send no notification.
	Reply(ctx context.Context, parentID, authorID uuid.UUID, authorUsername string, req CreateCommentRequest) (*CommentDTO, error)

	// ListForBlog returns the blog's thread: top-level comments newest
	// first, each with its replies oldest first.
	ListForBlog(ctx context.Context, blogID uuid.UUID) ([]CommentDTO, error)
}
