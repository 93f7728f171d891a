package comment

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a message on a blog post. Threading is two levels deep: a
// top-level comment has a nil ParentID, a reply carries the ID of a
// top-level comment. Replies to replies are rejected at the service layer.
type Comment struct {
	ID       uuid.UUID  `json:"id" db:"id"`
	BlogID   uuid.UUID  `json:"blog_id" db:"blog_id"`
	UserID   uuid.UUID  `json:"user_id" db:"user_id"`
	ParentID *uuid.UUID `json:"parent_id,omitempty" db:"parent_id"`
	Content  string     `json:"content" db:"content"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Joined from users on read.
	Username string `json:"username,omitempty" db:"username"`
}

// IsTopLevel reports whether this comment can receive replies.
func (c *Comment) IsTopLevel() bool {
	return c.ParentID == nil
}
