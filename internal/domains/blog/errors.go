package blog

import "errors"

var (
	ErrBlogNotFound = errors.New("blog not found")

	// ErrDraftForbidden is returned when a non-author requests a draft by ID.
	ErrDraftForbidden = errors.New("draft blogs are only visible to their author")

	ErrInvalidStatus = errors.New("invalid status")

	// ErrPublishedToDraft guards the one-way publication workflow.
	ErrPublishedToDraft = errors.New("Published posts cannot be changed to draft.")
)
