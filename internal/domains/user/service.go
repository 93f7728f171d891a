package user

import (
	"context"

	"github.com/google/uuid"
)

// Service is the user business logic contract.
type Service interface {
	// Register creates an inactive account and emails an activation PIN.
	Register(ctx context.Context, req RegisterRequest) (*UserDTO, error)

	// Activate exchanges the emailed PIN for an active account.
	Activate(ctx context.Context, req ActivateRequest) error

	// Login authenticates an active user and returns a JWT pair.
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	// RefreshToken rotates the JWT pair.
	RefreshToken(ctx context.Context, refreshToken string) (*LoginResponse, error)

	// ForgotPassword emails a reset PIN. Always succeeds from the caller's
	// point of view so emails cannot be enumerated.
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error

	// ResetPassword exchanges a reset PIN for a new password.
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error

	// GetProfile returns the caller's own profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
}
