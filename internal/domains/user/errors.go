package user

import "errors"

// Repository-level errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Service-level (business logic) errors
var (
	ErrInvalidCredentials = errors.New("invalid or inactive user")
	ErrInvalidPin         = errors.New("invalid pin")
	ErrUserInactive       = errors.New("user account is not activated")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
