package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blogify-backend/internal/domains/user"
	"blogify-backend/internal/shared/middleware"
	"blogify-backend/internal/shared/response"
)

type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// Register handles POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	dto, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, user.ErrEmailAlreadyExists) {
			response.Conflict(c, "email already registered")
			return
		}
		response.InternalServerError(c, "failed to register user")
		return
	}

	response.Success(c, http.StatusCreated, "Registration successful. Check your email for the activation PIN.", dto)
}

// Activate handles POST /api/v1/auth/activate
func (h *UserHandler) Activate(c *gin.Context) {
	var req user.ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	if err := h.service.Activate(c.Request.Context(), req); err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound), errors.Is(err, user.ErrInvalidPin):
			response.BadRequest(c, "invalid email or PIN")
		default:
			response.InternalServerError(c, "failed to activate account")
		}
		return
	}

	response.Success(c, http.StatusOK, "Account activated", nil)
}

// Login handles POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			response.Unauthorized(c, "invalid credentials or inactive account")
			return
		}
		response.InternalServerError(c, "failed to log in")
		return
	}

	response.Success(c, http.StatusOK, "Login successful", resp)
}

// RefreshToken handles POST /api/v1/auth/refresh
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req user.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidToken), errors.Is(err, user.ErrUserInactive):
			response.Unauthorized(c, "invalid or expired refresh token")
		default:
			response.InternalServerError(c, "failed to refresh token")
		}
		return
	}

	response.Success(c, http.StatusOK, "Token refreshed", resp)
}

// ForgotPassword handles POST /api/v1/auth/forgot-password
func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req user.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req); err != nil {
		response.InternalServerError(c, "failed to process request")
		return
	}

	response.Success(c, http.StatusOK, "If the email exists, a reset PIN has been sent", nil)
}

// ResetPassword handles POST /api/v1/auth/reset-password
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req user.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req); err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidPin):
			response.BadRequest(c, "invalid email or PIN")
		default:
			response.InternalServerError(c, "failed to reset password")
		}
		return
	}

	response.Success(c, http.StatusOK, "Password reset successful", nil)
}

// GetProfile handles GET /api/v1/users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)

	dto, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.InternalServerError(c, "failed to load profile")
		return
	}

	response.Success(c, http.StatusOK, "", dto)
}
