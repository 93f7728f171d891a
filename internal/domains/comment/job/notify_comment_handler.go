package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"blogify-backend/internal/domains/blog"
	"blogify-backend/internal/infrastructure/email"
	"blogify-backend/internal/shared"
	"blogify-backend/internal/shared/utils"
	"blogify-backend/pkg/logger"
)

// NotifyCommentHandler emails a blog owner about a new top-level comment.
type NotifyCommentHandler struct {
	blogRepo     blog.Repository
	emailService email.EmailService
}

func NewNotifyCommentHandler(blogRepo blog.Repository, emailService email.EmailService) *NotifyCommentHandler {
	return &NotifyCommentHandler{
		blogRepo:     blogRepo,
		emailService: emailService,
	}
}

// HandleNotifyComment re-fetches the blog at processing time, so a blog
// deleted between enqueue and processing simply drops the notification.
// Delivery failures are logged and swallowed, never retried.
func (h *NotifyCommentHandler) HandleNotifyComment(ctx context.Context, t *asynq.Task) error {
	var payload shared.CommentNotificationPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal comment notification payload: %w", err)
	}

	b, err := h.blogRepo.FindByID(ctx, payload.BlogID)
	if err != nil {
		logger.Warn("Comment notification dropped, blog unavailable", map[string]interface{}{
			"blog_id": payload.BlogID.String(),
			"error":   err.Error(),
		})
		return nil
	}

	err = h.emailService.SendCommentNotification(ctx, email.CommentNotificationData{
		OwnerEmail:        b.AuthorEmail,
		OwnerUsername:     b.AuthorName,
		BlogTitle:         b.Title,
		CommenterUsername: payload.CommenterUsername,
		CommentContent:    payload.CommentContent,
	})
	if err != nil {
		logger.Error("Failed to send comment notification", err)
		return nil
	}

	logger.Info("Comment notification sent", map[string]interface{}{
		"blog_id": b.ID.String(),
		"owner":   b.AuthorName,
	})
	return nil
}
