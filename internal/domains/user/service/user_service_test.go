package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogify-backend/internal/domains/user"
	"blogify-backend/internal/shared"
	"blogify-backend/pkg/jwt"
)

// fakeUserRepo is an in-memory user.Repository.
type fakeUserRepo struct {
	byID    map[uuid.UUID]*user.User
	byEmail map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]*user.User),
		byEmail: make(map[string]*user.User),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return user.ErrEmailAlreadyExists
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	copied := *u
	r.byID[u.ID] = &copied
	r.byEmail[u.Email] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *fakeUserRepo) SetPin(ctx context.Context, userID uuid.UUID, pin string) error {
	u, ok := r.byID[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	u.ActivationPin = &pin
	return nil
}

func (r *fakeUserRepo) Activate(ctx context.Context, userID uuid.UUID) error {
	u, ok := r.byID[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	u.IsActive = true
	u.ActivationPin = nil
	return nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	u, ok := r.byID[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.ActivationPin = nil
	return nil
}

func (r *fakeUserRepo) ListActive(ctx context.Context) ([]user.User, error) {
	var out []user.User
	for _, u := range r.byID {
		if u.IsActive {
			out = append(out, *u)
		}
	}
	return out, nil
}

// pin returns the stored one-time PIN for an email.
func (r *fakeUserRepo) pin(email string) string {
	u, ok := r.byEmail[email]
	if !ok || u.ActivationPin == nil {
		return ""
	}
	return *u.ActivationPin
}

// fakeEnqueuer captures enqueued tasks.
type fakeEnqueuer struct {
	tasks []*asynq.Task
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func newService() (user.Service, *fakeUserRepo, *fakeEnqueuer) {
	repo := newFakeUserRepo()
	enqueuer := &fakeEnqueuer{}
	manager := jwt.NewManager("test-secret", 15*time.Minute, 72*time.Hour)
	return NewUserService(repo, manager, enqueuer), repo, enqueuer
}

func register(t *testing.T, svc user.Service) *user.UserDTO {
	t.Helper()
	dto, err := svc.Register(context.Background(), user.RegisterRequest{
		Email:    "alice@blogify.dev",
		Username: "alice",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return dto
}

func TestRegisterActivateLogin(t *testing.T) {
	svc, repo, enqueuer := newService()
	ctx := context.Background()

	dto := register(t, svc)
	assert.False(t, dto.IsActive)

	// Registration queues the activation PIN email.
	require.Len(t, enqueuer.tasks, 1)
	assert.Equal(t, shared.TypeSendActivationPin, enqueuer.tasks[0].Type())

	var payload shared.ActivationPinPayload
	require.NoError(t, json.Unmarshal(enqueuer.tasks[0].Payload(), &payload))
	assert.Equal(t, "alice@blogify.dev", payload.Email)
	assert.Equal(t, repo.pin("alice@blogify.dev"), payload.Pin)
	assert.Len(t, payload.Pin, 6)

	// Inactive accounts cannot log in, even with the right password.
	_, err := svc.Login(ctx, user.LoginRequest{Email: "alice@blogify.dev", Password: "correct-horse"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	// Activate with the emailed PIN.
	err = svc.Activate(ctx, user.ActivateRequest{Email: "alice@blogify.dev", Pin: payload.Pin})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, user.LoginRequest{Email: "alice@blogify.dev", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "alice", resp.User.Username)
	assert.True(t, resp.ExpiresAt.After(time.Now()))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newService()
	register(t, svc)

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Email:    "alice@blogify.dev",
		Username: "alice2",
		Password: "another-pass",
	})
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
}

func TestActivateWrongPin(t *testing.T) {
	svc, repo, _ := newService()
	register(t, svc)

	wrong := "000000"
	if repo.pin("alice@blogify.dev") == wrong {
		wrong = "000001"
	}

	err := svc.Activate(context.Background(), user.ActivateRequest{
		Email: "alice@blogify.dev",
		Pin:   wrong,
	})
	assert.ErrorIs(t, err, user.ErrInvalidPin)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, repo, _ := newService()
	register(t, svc)
	require.NoError(t, svc.Activate(context.Background(), user.ActivateRequest{
		Email: "alice@blogify.dev",
		Pin:   repo.pin("alice@blogify.dev"),
	}))

	_, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "alice@blogify.dev",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "nobody@blogify.dev",
		Password: "whatever",
	})
	// Same answer as a bad password so emails cannot be probed.
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	register(t, svc)

	// An inactive account probed with a garbage password must look exactly
	// like an unknown email.
	_, inactiveErr := svc.Login(ctx, user.LoginRequest{
		Email:    "alice@blogify.dev",
		Password: "garbage",
	})
	_, unknownErr := svc.Login(ctx, user.LoginRequest{
		Email:    "nobody@blogify.dev",
		Password: "garbage",
	})

	assert.ErrorIs(t, inactiveErr, user.ErrInvalidCredentials)
	assert.Equal(t, unknownErr, inactiveErr)
}

func TestRefreshTokenRotation(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()
	register(t, svc)
	require.NoError(t, svc.Activate(ctx, user.ActivateRequest{
		Email: "alice@blogify.dev",
		Pin:   repo.pin("alice@blogify.dev"),
	}))

	resp, err := svc.Login(ctx, user.LoginRequest{Email: "alice@blogify.dev", Password: "correct-horse"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, resp.User.ID, refreshed.User.ID)

	// An access token is not accepted as a refresh token.
	_, err = svc.RefreshToken(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, user.ErrInvalidToken)
}

func TestForgotAndResetPassword(t *testing.T) {
	svc, repo, enqueuer := newService()
	ctx := context.Background()
	register(t, svc)
	require.NoError(t, svc.Activate(ctx, user.ActivateRequest{
		Email: "alice@blogify.dev",
		Pin:   repo.pin("alice@blogify.dev"),
	}))
	enqueuer.tasks = nil

	// Unknown email succeeds silently and enqueues nothing.
	require.NoError(t, svc.ForgotPassword(ctx, user.ForgotPasswordRequest{Email: "nobody@blogify.dev"}))
	assert.Empty(t, enqueuer.tasks)

	require.NoError(t, svc.ForgotPassword(ctx, user.ForgotPasswordRequest{Email: "alice@blogify.dev"}))
	require.Len(t, enqueuer.tasks, 1)
	assert.Equal(t, shared.TypeSendResetPin, enqueuer.tasks[0].Type())

	err := svc.ResetPassword(ctx, user.ResetPasswordRequest{
		Email:       "alice@blogify.dev",
		Pin:         repo.pin("alice@blogify.dev"),
		NewPassword: "brand-new-pass",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, user.LoginRequest{Email: "alice@blogify.dev", Password: "correct-horse"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, err = svc.Login(ctx, user.LoginRequest{Email: "alice@blogify.dev", Password: "brand-new-pass"})
	assert.NoError(t, err)
}
