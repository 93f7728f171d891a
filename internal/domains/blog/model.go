package blog

import (
	"time"

	"github.com/google/uuid"
)

// Status is the publication state of a blog post.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Blog is a post with a two-state publication workflow. Publishing is a
// one-way door: ValidateTransition rejects published -> draft.
type Blog struct {
	ID        uuid.UUID `json:"id" db:"id"`
	AuthorID  uuid.UUID `json:"author_id" db:"author_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Status    Status    `json:"status" db:"status"`
	ViewCount int64     `json:"view_count" db:"view_count"`

	// PublishedAt is set once, on the first transition to published. It
	// anchors the new-publication digest window.
	PublishedAt *time.Time `json:"published_at,omitempty" db:"published_at"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Joined from users on read.
	AuthorName  string `json:"author_name,omitempty" db:"author_name"`
	AuthorEmail string `json:"-" db:"author_email"`
}

// ValidateTransition enforces the publication workflow: any state may stay
// where it is, drafts may publish, published posts may never go back.
func (b *Blog) ValidateTransition(next Status) error {
	if !next.Valid() {
		return ErrInvalidStatus
	}
	if b.Status == StatusPublished && next == StatusDraft {
		return ErrPublishedToDraft
	}
	return nil
}

// IsPublished reports whether the post is visible to everyone.
func (b *Blog) IsPublished() bool {
	return b.Status == StatusPublished
}

// CanView reports whether viewerID may read this post. Published posts are
// public; drafts are visible only to their author.
func (b *Blog) CanView(viewerID uuid.UUID) bool {
	return b.IsPublished() || b.AuthorID == viewerID
}

// IsAuthor reports whether userID owns this post. Mutations (update, delete)
// are author-only; callers treat a failed check as not-found so drafts stay
// hidden from other users.
func (b *Blog) IsAuthor(userID uuid.UUID) bool {
	return userID != uuid.Nil && b.AuthorID == userID
}

// CountsView reports whether a read by viewerID increments the view counter.
// Author self-views never count.
func (b *Blog) CountsView(viewerID uuid.UUID) bool {
	return b.AuthorID != viewerID
}
