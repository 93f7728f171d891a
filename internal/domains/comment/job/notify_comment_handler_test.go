package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogify-backend/internal/domains/blog"
	"blogify-backend/internal/infrastructure/email"
	"blogify-backend/internal/shared"
)

type stubBlogRepo struct {
	blog *blog.Blog
}

func (r *stubBlogRepo) FindByID(ctx context.Context, id uuid.UUID) (*blog.Blog, error) {
	if r.blog == nil || r.blog.ID != id {
		return nil, blog.ErrBlogNotFound
	}
	return r.blog, nil
}

func (r *stubBlogRepo) Create(ctx context.Context, b *blog.Blog) error { return nil }
func (r *stubBlogRepo) FindByIDAndAuthor(ctx context.Context, id, authorID uuid.UUID) (*blog.Blog, error) {
	return nil, blog.ErrBlogNotFound
}
func (r *stubBlogRepo) List(ctx context.Context, viewerID uuid.UUID, scope blog.ListScope, limit, offset int) ([]blog.Blog, int64, error) {
	return nil, 0, nil
}
func (r *stubBlogRepo) Update(ctx context.Context, b *blog.Blog) error             { return nil }
func (r *stubBlogRepo) Delete(ctx context.Context, id, authorID uuid.UUID) error   { return nil }
func (r *stubBlogRepo) IncrementViewCount(ctx context.Context, id uuid.UUID) error { return nil }
func (r *stubBlogRepo) ListPublishedSince(ctx context.Context, since time.Time) ([]blog.Blog, error) {
	return nil, nil
}

type recordingEmailService struct {
	notifications []email.CommentNotificationData
	err           error
}

func (f *recordingEmailService) SendCommentNotification(ctx context.Context, data email.CommentNotificationData) error {
	if f.err != nil {
		return f.err
	}
	f.notifications = append(f.notifications, data)
	return nil
}

func (f *recordingEmailService) SendActivationPin(ctx context.Context, data email.ActivationPinData) error {
	return nil
}
func (f *recordingEmailService) SendResetPin(ctx context.Context, data email.ResetPinData) error {
	return nil
}
func (f *recordingEmailService) SendNewBlogAnnouncement(ctx context.Context, data email.NewBlogAnnouncementData) error {
	return nil
}

func notificationTask(t *testing.T, blogID uuid.UUID) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(shared.CommentNotificationPayload{
		BlogID:            blogID,
		CommenterUsername: "carol",
		CommentContent:    "great post",
	})
	require.NoError(t, err)
	return asynq.NewTask(shared.TypeNotifyCommentOnBlog, payload)
}

func TestNotifyCommentEmailsOwner(t *testing.T) {
	b := &blog.Blog{
		ID:          uuid.New(),
		Title:       "Going Async",
		AuthorName:  "alice",
		AuthorEmail: "alice@blogify.dev",
	}
	emailSvc := &recordingEmailService{}
	h := NewNotifyCommentHandler(&stubBlogRepo{blog: b}, emailSvc)

	err := h.HandleNotifyComment(context.Background(), notificationTask(t, b.ID))

	require.NoError(t, err)
	require.Len(t, emailSvc.notifications, 1)
	sent := emailSvc.notifications[0]
	assert.Equal(t, "alice@blogify.dev", sent.OwnerEmail)
	assert.Equal(t, "Going Async", sent.BlogTitle)
	assert.Equal(t, "carol", sent.CommenterUsername)
	assert.Equal(t, "great post", sent.CommentContent)
}

func TestNotifyCommentDropsWhenBlogGone(t *testing.T) {
	emailSvc := &recordingEmailService{}
	h := NewNotifyCommentHandler(&stubBlogRepo{}, emailSvc)

	// Blog deleted between enqueue and processing: no email, no retry.
	err := h.HandleNotifyComment(context.Background(), notificationTask(t, uuid.New()))

	assert.NoError(t, err)
	assert.Empty(t, emailSvc.notifications)
}

func TestNotifyCommentSwallowsSendFailure(t *testing.T) {
	b := &blog.Blog{ID: uuid.New(), Title: "Going Async", AuthorEmail: "alice@blogify.dev"}
	emailSvc := &recordingEmailService{err: errors.New("smtp unavailable")}
	h := NewNotifyCommentHandler(&stubBlogRepo{blog: b}, emailSvc)

	err := h.HandleNotifyComment(context.Background(), notificationTask(t, b.ID))

	// Delivery is best effort; asynq must not retry.
	assert.NoError(t, err)
}
