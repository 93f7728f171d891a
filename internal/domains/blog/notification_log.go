package blog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// NotificationLog records one digest announcement: which blog was announced
// and who received it. Kept for auditing and support queries.
type NotificationLog struct {
	ID         uuid.UUID `json:"id" db:"id"`
	BlogID     uuid.UUID `json:"blog_id" db:"blog_id"`
	Recipients []string  `json:"recipients" db:"recipients"`
	SentAt     time.Time `json:"sent_at" db:"sent_at"`
}

// NotificationLogRepository persists digest send records.
type NotificationLogRepository interface {
	Create(ctx context.Context, log *NotificationLog) error

	// ListByBlog returns the send records for one blog, newest first.
	ListByBlog(ctx context.Context, blogID uuid.UUID) ([]NotificationLog, error)
}
