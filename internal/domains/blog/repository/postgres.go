package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogify-backend/internal/domains/blog"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL-backed blog repository.
func NewPostgresRepository(pool *pgxpool.Pool) blog.Repository {
	return &postgresRepository{pool: pool}
}

// blogColumns joins users so every read carries the author's name and email.
const blogColumns = `
	b.id, b.author_id, b.title, b.content, b.status, b.view_count,
	b.published_at, b.created_at, b.updated_at,
	u.username AS author_name, u.email AS author_email`

func scanBlog(row pgx.Row) (*blog.Blog, error) {
	var b blog.Blog
	err := row.Scan(
		&b.ID,
		&b.AuthorID,
		&b.Title,
		&b.Content,
		&b.Status,
		&b.ViewCount,
		&b.PublishedAt,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.AuthorName,
		&b.AuthorEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, blog.ErrBlogNotFound
		}
		return nil, fmt.Errorf("failed to scan blog: %w", err)
	}
	return &b, nil
}

func (r *postgresRepository) Create(ctx context.Context, b *blog.Blog) error {
	query := `
		INSERT INTO blogs (author_id, title, content, status, published_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, view_count, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		b.AuthorID,
		b.Title,
		b.Content,
		b.Status,
		b.PublishedAt,
	).Scan(&b.ID, &b.ViewCount, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create blog: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*blog.Blog, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		WHERE b.id = $1`, blogColumns)

	return scanBlog(r.pool.QueryRow(ctx, query, id))
}

func (r *postgresRepository) FindByIDAndAuthor(ctx context.Context, id, authorID uuid.UUID) (*blog.Blog, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		WHERE b.id = $1 AND b.author_id = $2`, blogColumns)

	return scanBlog(r.pool.QueryRow(ctx, query, id, authorID))
}

// List applies the scope as a single WHERE predicate, never a UNION.
func (r *postgresRepository) List(ctx context.Context, viewerID uuid.UUID, scope blog.ListScope, limit, offset int) ([]blog.Blog, int64, error) {
	predicate := scope.SQLPredicate()

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM blogs b WHERE %s`, predicate)
	countArgs := pgx.NamedArgs{"viewer": viewerID}
	if err := r.pool.QueryRow(ctx, countQuery, countArgs).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count blogs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		WHERE %s
		ORDER BY b.created_at DESC
		LIMIT @limit OFFSET @offset`, blogColumns, predicate)

	rows, err := r.pool.Query(ctx, query, pgx.NamedArgs{
		"viewer": viewerID,
		"limit":  limit,
		"offset": offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list blogs: %w", err)
	}
	defer rows.Close()

	blogs, err := collectBlogs(rows)
	if err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *blog.Blog) error {
	query := `
		UPDATE blogs
		SET title = $2, content = $3, status = $4, published_at = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		b.ID,
		b.Title,
		b.Content,
		b.Status,
		b.PublishedAt,
	).Scan(&b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return blog.ErrBlogNotFound
		}
		return fmt.Errorf("failed to update blog: %w", err)
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id, authorID uuid.UUID) error {
	query := `DELETE FROM blogs WHERE id = $1 AND author_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, authorID)
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return blog.ErrBlogNotFound
	}
	return nil
}

// IncrementViewCount updates the counter in the database rather than
// read-modify-write in Go, so concurrent requests never lose increments.
func (r *postgresRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE blogs SET view_count = view_count + 1 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return blog.ErrBlogNotFound
	}
	return nil
}

func (r *postgresRepository) ListPublishedSince(ctx context.Context, since time.Time) ([]blog.Blog, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		WHERE b.status = 'published' AND b.published_at > $1
		ORDER BY b.published_at`, blogColumns)

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list published blogs: %w", err)
	}
	defer rows.Close()

	return collectBlogs(rows)
}

func collectBlogs(rows pgx.Rows) ([]blog.Blog, error) {
	var blogs []blog.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, *b)
	}
	return blogs, rows.Err()
}
