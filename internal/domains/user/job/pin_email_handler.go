package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"blogify-backend/internal/infrastructure/email"
	"blogify-backend/internal/shared"
	"blogify-backend/internal/shared/utils"
	"blogify-backend/pkg/logger"
)

// PinEmailHandler processes the activation and reset PIN email tasks. PIN
// emails gate account access, so failures are returned to asynq for retry.
type PinEmailHandler struct {
	emailService email.EmailService
}

func NewPinEmailHandler(emailService email.EmailService) *PinEmailHandler {
	return &PinEmailHandler{emailService: emailService}
}

func (h *PinEmailHandler) HandleSendActivationPin(ctx context.Context, t *asynq.Task) error {
	var payload shared.ActivationPinPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal activation pin payload: %w", err)
	}

	if err := h.emailService.SendActivationPin(ctx, email.ActivationPinData{
		Email: payload.Email,
		Pin:   payload.Pin,
	}); err != nil {
		return err
	}

	logger.Info("Activation PIN email sent", map[string]interface{}{
		"email": payload.Email,
	})
	return nil
}

func (h *PinEmailHandler) HandleSendResetPin(ctx context.Context, t *asynq.Task) error {
	var payload shared.ResetPinPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal reset pin payload: %w", err)
	}

	if err := h.emailService.SendResetPin(ctx, email.ResetPinData{
		Email: payload.Email,
		Pin:   payload.Pin,
	}); err != nil {
		return err
	}

	logger.Info("Reset PIN email sent", map[string]interface{}{
		"email": payload.Email,
	})
	return nil
}
