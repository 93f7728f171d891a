package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"blogify-backend/pkg/logger"
)

// ActivationPinData carries the fields for the activation PIN email.
type ActivationPinData struct {
	Email string
	Pin   string
}

// ResetPinData carries the fields for the password reset PIN email.
type ResetPinData struct {
	Email string
	Pin   string
}

// CommentNotificationData notifies a blog owner about a new comment.
type CommentNotificationData struct {
	OwnerEmail        string
	OwnerUsername     string
	BlogTitle         string
	CommenterUsername string
	CommentContent    string
}

// NewBlogAnnouncementData announces a freshly published blog to readers.
// Recipients is the full fan-out list; a single message is sent.
type NewBlogAnnouncementData struct {
	Recipients     []string
	BlogTitle      string
	AuthorUsername string
}

type EmailService interface {
	SendActivationPin(ctx context.Context, data ActivationPinData) error
	SendResetPin(ctx context.Context, data ResetPinData) error
	SendCommentNotification(ctx context.Context, data CommentNotificationData) error
	SendNewBlogAnnouncement(ctx context.Context, data NewBlogAnnouncementData) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

// NewSMTPEmailService talks to a plain SMTP endpoint (mailpit/mailhog in
// development, a relay in production).
func NewSMTPEmailService(smtpHost, smtpPort, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: smtpHost + ":" + smtpPort,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) SendActivationPin(ctx context.Context, data ActivationPinData) error {
	subject := "Your PIN number to activate your account"
	body := fmt.Sprintf("Your activation PIN is %s. Do not share it with anyone.", data.Pin)

	return s.send([]string{data.Email}, subject, body)
}

func (s *smtpEmailService) SendResetPin(ctx context.Context, data ResetPinData) error {
	subject := "Your PIN number to reset your password"
	body := fmt.Sprintf("Your password reset PIN is %s. Do not share it with anyone.", data.Pin)

	return s.send([]string{data.Email}, subject, body)
}

func (s *smtpEmailService) SendCommentNotification(ctx context.Context, data CommentNotificationData) error {
	subject := fmt.Sprintf("New comment on your blog %q", data.BlogTitle)
	body := fmt.Sprintf(`Hello %s,

%s has commented on your blog post %q:

%q

Visit your blog to respond.

Regards,
Blogify`, data.OwnerUsername, data.CommenterUsername, data.BlogTitle, data.CommentContent)

	return s.send([]string{data.OwnerEmail}, subject, body)
}

func (s *smtpEmailService) SendNewBlogAnnouncement(ctx context.Context, data NewBlogAnnouncementData) error {
	subject := fmt.Sprintf("New Blog Post: %s", data.BlogTitle)
	body := fmt.Sprintf(`Hello Blogify User,

A new blog post has been published:

Title: %s
Author: %s

Check it out on Blogify!

Regards,
Blogify`, data.BlogTitle, data.AuthorUsername)

	return s.send(data.Recipients, subject, body)
}

func (s *smtpEmailService) send(to []string, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, strings.Join(to, ", "), subject, body))

	if err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, to, msg); err != nil {
		logger.Info("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        to,
			"subject":   subject,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
