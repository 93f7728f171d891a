package comment

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (r CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Length(1, 2000),
		),
	)
}

// CommentDTO is the API shape. Top-level comments carry their replies.
type CommentDTO struct {
	ID        uuid.UUID    `json:"id"`
	BlogID    uuid.UUID    `json:"blog_id"`
	UserID    uuid.UUID    `json:"user_id"`
	Username  string       `json:"username"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
	Replies   []CommentDTO `json:"replies,omitempty"`
}

// ToDTO converts a Comment entity, without replies attached.
func (c *Comment) ToDTO() CommentDTO {
	return CommentDTO{
		ID:        c.ID,
		BlogID:    c.BlogID,
		UserID:    c.UserID,
		Username:  c.Username,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}
