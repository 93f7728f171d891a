package job

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"blogify-backend/internal/domains/blog"
	"blogify-backend/internal/domains/user"
	"blogify-backend/internal/infrastructure/email"
	"blogify-backend/pkg/cache"
	"blogify-backend/pkg/logger"
)

// digestLockKey guards against overlapping digest runs when multiple workers
// share the schedule. The lock TTL equals the digest interval, so a crashed
// run never blocks the next window.
const digestLockKey = "jobs:notify_new_blogs:lock"

// NotifyNewBlogsHandler announces recently published blogs to active users.
// The scheduler fires it every interval, and the lookback window equals the
// interval, so each publication is announced exactly once.
type NotifyNewBlogsHandler struct {
	blogRepo     blog.Repository
	userRepo     user.Repository
	logRepo      blog.NotificationLogRepository
	emailService email.EmailService
	cache        cache.Cache
	interval     time.Duration
}

func NewNotifyNewBlogsHandler(
	blogRepo blog.Repository,
	userRepo user.Repository,
	logRepo blog.NotificationLogRepository,
	emailService email.EmailService,
	c cache.Cache,
	interval time.Duration,
) *NotifyNewBlogsHandler {
	return &NotifyNewBlogsHandler{
		blogRepo:     blogRepo,
		userRepo:     userRepo,
		logRepo:      logRepo,
		emailService: emailService,
		cache:        c,
		interval:     interval,
	}
}

// HandleNotifyNewBlogs is the asynq entry point. The digest is best effort:
// per-blog email failures are logged and skipped so one bad send does not
// re-announce every other blog in the window on retry.
func (h *NotifyNewBlogsHandler) HandleNotifyNewBlogs(ctx context.Context, t *asynq.Task) error {
	notified, err := h.Run(ctx)
	if err != nil {
		logger.Error("New blog digest failed", err)
		return err
	}

	logger.Info("New blog digest completed", map[string]interface{}{
		"blogs_notified": notified,
	})
	return nil
}

// Run executes one digest pass and returns the number of distinct blogs that
// were announced.
func (h *NotifyNewBlogsHandler) Run(ctx context.Context) (int, error) {
	acquired, err := h.cache.SetNX(ctx, digestLockKey, time.Now().Unix(), h.interval)
	if err != nil {
		return 0, err
	}
	if !acquired {
		logger.Debug("New blog digest skipped, another run holds the lock")
		return 0, nil
	}

	since := time.Now().Add(-h.interval)
	blogs, err := h.blogRepo.ListPublishedSince(ctx, since)
	if err != nil {
		return 0, err
	}
	if len(blogs) == 0 {
		return 0, nil
	}

	users, err := h.userRepo.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	notified := 0
	for i := range blogs {
		b := &blogs[i]

		recipients := recipientsFor(users, b.AuthorEmail)
		if len(recipients) == 0 {
			continue
		}

		err := h.emailService.SendNewBlogAnnouncement(ctx, email.NewBlogAnnouncementData{
			Recipients:     recipients,
			BlogTitle:      b.Title,
			AuthorUsername: b.AuthorName,
		})
		if err != nil {
			logger.Error("Failed to announce blog "+b.ID.String(), err)
			continue
		}

		if err := h.logRepo.Create(ctx, &blog.NotificationLog{
			BlogID:     b.ID,
			Recipients: recipients,
		}); err != nil {
			logger.Error("Failed to record notification log", err)
		}
		notified++
	}

	return notified, nil
}

// recipientsFor returns every active user's email except the author's.
func recipientsFor(users []user.User, authorEmail string) []string {
	recipients := make([]string, 0, len(users))
	for i := range users {
		if users[i].Email == authorEmail {
			continue
		}
		recipients = append(recipients, users[i].Email)
	}
	return recipients
}
