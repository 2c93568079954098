package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/schoolsite/internal/auth/http/dto"
	authUseCase "github.com/allisson/schoolsite/internal/auth/usecase"
	"github.com/allisson/schoolsite/internal/httputil"
	customValidation "github.com/allisson/schoolsite/internal/validation"
)

// MsgResetRequested is returned for every reset request regardless of whether the email exists.
const MsgResetRequested = "If the email belongs to an active admin, a reset link has been sent."

// PasswordResetHandler handles the two steps of the password reset flow.
type PasswordResetHandler struct {
	passwordResetUseCase authUseCase.PasswordResetUseCase
	logger               *slog.Logger
}

// NewPasswordResetHandler creates a new password reset handler with required dependencies.
func NewPasswordResetHandler(
	passwordResetUseCase authUseCase.PasswordResetUseCase,
	logger *slog.Logger,
) *PasswordResetHandler {
	return &PasswordResetHandler{
		passwordResetUseCase: passwordResetUseCase,
		logger:               logger,
	}
}

// RequestHandler starts a password reset.
// POST /v1/admin/password-reset - rate limited per IP. Always returns 202 Accepted.
func (h *PasswordResetHandler) RequestHandler(c *gin.Context) {
	var req dto.PasswordResetRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.passwordResetUseCase.RequestReset(c.Request.Context(), req.Email, RequestMeta(c)); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusAccepted, httputil.MessageResponse{Message: MsgResetRequested})
}

// ConfirmHandler sets a new password using a reset token.
// POST /v1/admin/password-reset/confirm - rate limited per IP. Returns 204 No Content.
func (h *PasswordResetHandler) ConfirmHandler(c *gin.Context) {
	var req dto.PasswordResetConfirmRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	err := h.passwordResetUseCase.ConfirmReset(c.Request.Context(), req.Token, req.Password, RequestMeta(c))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
