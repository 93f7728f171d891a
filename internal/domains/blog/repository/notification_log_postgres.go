package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"blogify-backend/internal/domains/blog"
)

type notificationLogRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationLogRepository creates a PostgreSQL-backed digest audit log.
func NewNotificationLogRepository(pool *pgxpool.Pool) blog.NotificationLogRepository {
	return &notificationLogRepository{pool: pool}
}

func (r *notificationLogRepository) Create(ctx context.Context, log *blog.NotificationLog) error {
	query := `
		INSERT INTO notification_log (blog_id, recipients)
		VALUES ($1, $2)
		RETURNING id, sent_at`

	err := r.pool.QueryRow(ctx, query,
		log.BlogID,
		pq.Array(log.Recipients),
	).Scan(&log.ID, &log.SentAt)
	if err != nil {
		return fmt.Errorf("failed to create notification log: %w", err)
	}
	return nil
}

func (r *notificationLogRepository) ListByBlog(ctx context.Context, blogID uuid.UUID) ([]blog.NotificationLog, error) {
	query := `
		SELECT id, blog_id, recipients, sent_at
		FROM notification_log
		WHERE blog_id = $1
		ORDER BY sent_at DESC`

	rows, err := r.pool.Query(ctx, query, blogID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notification logs: %w", err)
	}
	defer rows.Close()

	var logs []blog.NotificationLog
	for rows.Next() {
		var l blog.NotificationLog
		if err := rows.Scan(&l.ID, &l.BlogID, pq.Array(&l.Recipients), &l.SentAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
