package shared

import (
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Enqueuer is the subset of asynq.Client that services use to hand work to
// the background worker. Interface so tests can capture enqueued tasks.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Task types routed through the asynq mux.
const (
	TypeSendActivationPin   = "email:activation_pin"
	TypeSendResetPin        = "email:reset_pin"
	TypeNotifyCommentOnBlog = "comment:notify_author"
	TypeNotifyNewBlogs      = "blog:notify_new_blogs"
)

// Queue names with worker priorities (see cmd/worker/server.go).
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// ActivationPinPayload carries data for the activation PIN email task.
type ActivationPinPayload struct {
	Email string `json:"email"`
	Pin   string `json:"pin"`
}

// ResetPinPayload carries data for the password reset PIN email task.
type ResetPinPayload struct {
	Email string `json:"email"`
	Pin   string `json:"pin"`
}

// CommentNotificationPayload tells the worker to email a blog owner about a
// new top-level comment. The blog is re-fetched at processing time, so only
// the ID travels in the payload.
type CommentNotificationPayload struct {
	BlogID            uuid.UUID `json:"blog_id"`
	CommenterUsername string    `json:"commenter_username"`
	CommentContent    string    `json:"comment_content"`
}
