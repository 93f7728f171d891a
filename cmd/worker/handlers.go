package main

import (
	"github.com/hibiken/asynq"

	blogJob "blogify-backend/internal/domains/blog/job"
	commentJob "blogify-backend/internal/domains/comment/job"
	userJob "blogify-backend/internal/domains/user/job"
	"blogify-backend/internal/shared"
	"blogify-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// PIN emails (activation + password reset)
	pinEmail *userJob.PinEmailHandler

	// Comment notification to blog owners
	notifyComment *commentJob.NotifyCommentHandler

	// Recurring new-publication digest
	notifyNewBlogs *blogJob.NotifyNewBlogsHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container, cfg *Config) *HandlerRegistry {
	return &HandlerRegistry{
		pinEmail:      userJob.NewPinEmailHandler(c.EmailService),
		notifyComment: commentJob.NewNotifyCommentHandler(c.BlogRepo, c.EmailService),
		notifyNewBlogs: blogJob.NewNotifyNewBlogsHandler(
			c.BlogRepo,
			c.UserRepo,
			c.NotificationLogRepo,
			c.EmailService,
			c.Cache,
			cfg.DigestInterval,
		),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Email tasks
	mux.HandleFunc(shared.TypeSendActivationPin, h.pinEmail.HandleSendActivationPin)
	mux.HandleFunc(shared.TypeSendResetPin, h.pinEmail.HandleSendResetPin)

	// Notification tasks
	mux.HandleFunc(shared.TypeNotifyCommentOnBlog, h.notifyComment.HandleNotifyComment)
	mux.HandleFunc(shared.TypeNotifyNewBlogs, h.notifyNewBlogs.HandleNotifyNewBlogs)
}
