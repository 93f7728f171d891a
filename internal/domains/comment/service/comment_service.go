package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"blogify-backend/internal/domains/blog"
	"blogify-backend/internal/domains/comment"
	"blogify-backend/internal/shared"
	"blogify-backend/internal/shared/utils"
	"blogify-backend/pkg/logger"
)

type commentService struct {
	repo     comment.Repository
	blogRepo blog.Repository
	enqueuer shared.Enqueuer
}

// NewCommentService creates the comment business logic layer.
func NewCommentService(repo comment.Repository, blogRepo blog.Repository, enqueuer shared.Enqueuer) comment.Service {
	return &commentService{
		repo:     repo,
		blogRepo: blogRepo,
		enqueuer: enqueuer,
	}
}

func (s *commentService) Create(ctx context.Context, blogID, authorID uuid.UUID, authorUsername string, req comment.CreateCommentRequest) (*comment.CommentDTO, error) {
	if _, err := s.blogRepo.FindByID(ctx, blogID); err != nil {
		return nil, err
	}

	c := &comment.Comment{
		BlogID:   blogID,
		UserID:   authorID,
		Content:  req.Content,
		Username: authorUsername,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	// The comment is already committed; notification delivery is best
	// effort and must not surface a queue outage to the commenter.
	s.enqueueNotification(blogID, authorUsername, req.Content)

	dto := c.ToDTO()
	return &dto, nil
}

func (s *commentService) Reply(ctx context.Context, parentID, authorID uuid.UUID, authorUsername string, req comment.CreateCommentRequest) (*comment.CommentDTO, error) {
	parent, err := s.repo.FindByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if !parent.IsTopLevel() {
		return nil, comment.ErrParentIsReply
	}

	c := &comment.Comment{
		BlogID:   parent.BlogID,
		UserID:   authorID,
		ParentID: &parent.ID,
		Content:  req.Content,
		Username: authorUsername,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	dto := c.ToDTO()
	return &dto, nil
}

func (s *commentService) ListForBlog(ctx context.Context, blogID uuid.UUID) ([]comment.CommentDTO, error) {
	comments, err := s.repo.ListForBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}
	return threadComments(comments), nil
}

// threadComments builds the two-level thread from a flat oldest-first list:
// top-level comments newest first, replies under each parent oldest first.
func threadComments(comments []comment.Comment) []comment.CommentDTO {
	topLevel := make([]comment.CommentDTO, 0)
	index := make(map[uuid.UUID]int)

	for i := range comments {
		if comments[i].IsTopLevel() {
			// Prepend so the oldest-first input comes out newest first.
			topLevel = append([]comment.CommentDTO{comments[i].ToDTO()}, topLevel...)
		}
	}
	for i := range topLevel {
		index[topLevel[i].ID] = i
	}

	for i := range comments {
		c := &comments[i]
		if c.IsTopLevel() {
			continue
		}
		if pos, ok := index[*c.ParentID]; ok {
			topLevel[pos].Replies = append(topLevel[pos].Replies, c.ToDTO())
		}
	}
	return topLevel
}

func (s *commentService) enqueueNotification(blogID uuid.UUID, commenterUsername, content string) {
	payload := shared.CommentNotificationPayload{
		BlogID:            blogID,
		CommenterUsername: commenterUsername,
		CommentContent:    content,
	}
	task, err := utils.MarshalTask(shared.TypeNotifyCommentOnBlog, payload)
	if err != nil {
		logger.Error("Failed to marshal comment notification task", err)
		return
	}
	if _, err := s.enqueuer.Enqueue(task, asynq.Queue(shared.QueueDefault)); err != nil {
		logger.Error("Failed to enqueue comment notification task", err)
	}
}
