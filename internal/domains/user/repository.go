package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the user data access contract.
type Repository interface {
	// Create inserts a new user.
	// Returns ErrEmailAlreadyExists on a duplicate email.
	Create(ctx context.Context, user *User) error

	// FindByID returns ErrUserNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail returns ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail checks whether an email is already registered.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// SetPin stores a fresh one-time PIN on the user.
	SetPin(ctx context.Context, userID uuid.UUID, pin string) error

	// Activate marks the user active and clears the PIN.
	Activate(ctx context.Context, userID uuid.UUID) error

	// UpdatePassword replaces the password hash and clears the PIN.
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error

	// ListActive returns all active users (digest fan-out).
	ListActive(ctx context.Context) ([]User, error)
}
