package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"golang.org/x/crypto/bcrypt"

	"blogify-backend/internal/domains/user"
	"blogify-backend/internal/shared"
	"blogify-backend/internal/shared/utils"
	"blogify-backend/pkg/jwt"
	"blogify-backend/pkg/logger"
)

const bcryptCost = 12

type userService struct {
	repo       user.Repository
	jwtManager *jwt.Manager
	enqueuer   shared.Enqueuer
}

// NewUserService creates the user business logic layer.
func NewUserService(repo user.Repository, jwtManager *jwt.Manager, enqueuer shared.Enqueuer) user.Service {
	return &userService{
		repo:       repo,
		jwtManager: jwtManager,
		enqueuer:   enqueuer,
	}
}

// generatePin returns a 6-digit numeric one-time PIN.
func generatePin() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate pin: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, error) {
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, user.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	pin, err := generatePin()
	if err != nil {
		return nil, err
	}

	u := &user.User{
		Email:         req.Email,
		Username:      req.Username,
		PasswordHash:  string(hash),
		IsActive:      false,
		ActivationPin: &pin,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.enqueuePinEmail(shared.TypeSendActivationPin, u.Email, pin)

	logger.Info("User registered", map[string]interface{}{
		"user_id": u.ID.String(),
		"email":   u.Email,
	})

	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) Activate(ctx context.Context, req user.ActivateRequest) error {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if u.IsActive {
		return nil
	}
	if u.ActivationPin == nil || *u.ActivationPin != req.Pin {
		return user.ErrInvalidPin
	}

	if err := s.repo.Activate(ctx, u.ID); err != nil {
		return err
	}

	logger.Info("User activated", map[string]interface{}{
		"user_id": u.ID.String(),
	})
	return nil
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	// Every failure is the same error so callers cannot probe whether an
	// email is registered or activated.
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, user.ErrInvalidCredentials
	}

	return s.issueTokens(u)
}

func (s *userService) RefreshToken(ctx context.Context, refreshToken string) (*user.LoginResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, user.ErrInvalidToken
	}
	if !u.IsActive {
		return nil, user.ErrUserInactive
	}

	return s.issueTokens(u)
}

func (s *userService) ForgotPassword(ctx context.Context, req user.ForgotPasswordRequest) error {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		// Silently succeed so emails cannot be enumerated.
		return nil
	}

	pin, err := generatePin()
	if err != nil {
		return err
	}
	if err := s.repo.SetPin(ctx, u.ID, pin); err != nil {
		return err
	}

	s.enqueuePinEmail(shared.TypeSendResetPin, u.Email, pin)
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, req user.ResetPasswordRequest) error {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return user.ErrInvalidPin
	}
	if u.ActivationPin == nil || *u.ActivationPin != req.Pin {
		return user.ErrInvalidPin
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, u.ID, string(hash)); err != nil {
		return err
	}

	logger.Info("Password reset", map[string]interface{}{
		"user_id": u.ID.String(),
	})
	return nil
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) issueTokens(u *user.User) (*user.LoginResponse, error) {
	accessToken, expiresAt, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Email, u.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &user.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		User:         u.ToDTO(),
	}, nil
}

// enqueuePinEmail queues a PIN email on the critical queue. A queue outage
// must not fail the originating request, so failures are only logged.
func (s *userService) enqueuePinEmail(taskType, email, pin string) {
	payload := shared.ActivationPinPayload{Email: email, Pin: pin}
	task, err := utils.MarshalTask(taskType, payload)
	if err != nil {
		logger.Error("Failed to marshal pin email task", err)
		return
	}
	if _, err := s.enqueuer.Enqueue(task, asynq.Queue(shared.QueueCritical), asynq.MaxRetry(5)); err != nil {
		logger.Error("Failed to enqueue pin email task", err)
	}
}
