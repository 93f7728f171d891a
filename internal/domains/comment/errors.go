package comment

import "errors"

var (
	ErrCommentNotFound = errors.New("comment not found")

	// ErrParentIsReply enforces the two-level threading contract.
	ErrParentIsReply = errors.New("replies can only target top-level comments")
)
