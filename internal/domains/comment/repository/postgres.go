package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogify-backend/internal/domains/comment"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL-backed comment repository.
func NewPostgresRepository(pool *pgxpool.Pool) comment.Repository {
	return &postgresRepository{pool: pool}
}

const commentColumns = `
	c.id, c.blog_id, c.user_id, c.parent_id, c.content, c.created_at,
	u.username`

func scanComment(row pgx.Row) (*comment.Comment, error) {
	var c comment.Comment
	err := row.Scan(
		&c.ID,
		&c.BlogID,
		&c.UserID,
		&c.ParentID,
		&c.Content,
		&c.CreatedAt,
		&c.Username,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, comment.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to scan comment: %w", err)
	}
	return &c, nil
}

func (r *postgresRepository) Create(ctx context.Context, c *comment.Comment) error {
	query := `
		INSERT INTO comments (blog_id, user_id, parent_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		c.BlogID,
		c.UserID,
		c.ParentID,
		c.Content,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1`, commentColumns)

	return scanComment(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresRepository) ListForBlog(ctx context.Context, blogID uuid.UUID) ([]comment.Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.blog_id = $1
		ORDER BY c.created_at`, commentColumns)

	rows, err := r.pool.Query(ctx, query, blogID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []comment.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}

func (r *postgresRepository) CountByBlogIDs(ctx context.Context, blogIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	query := `
		SELECT blog_id, COUNT(*)
		FROM comments
		WHERE blog_id = ANY($1)
		GROUP BY blog_id`

	rows, err := r.pool.Query(ctx, query, blogIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int64, len(blogIDs))
	for rows.Next() {
		var blogID uuid.UUID
		var count int64
		if err := rows.Scan(&blogID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan comment count: %w", err)
		}
		counts[blogID] = count
	}
	return counts, rows.Err()
}
