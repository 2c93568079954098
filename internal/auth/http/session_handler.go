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

// SessionHandler handles admin login, logout and identity lookup.
type SessionHandler struct {
	sessionUseCase authUseCase.SessionUseCase
	logger         *slog.Logger
}

// NewSessionHandler creates a new session handler with required dependencies.
func NewSessionHandler(sessionUseCase authUseCase.SessionUseCase, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
		logger:         logger,
	}
}

// LoginHandler exchanges admin credentials for a session token.
// POST /v1/admin/login - rate limited per IP. Returns 200 OK with the token.
func (h *SessionHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.sessionUseCase.Login(c.Request.Context(), req.Email, req.Password, RequestMeta(c))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapLoginOutputToResponse(output))
}

// LogoutHandler revokes the presented session token when a denylist is configured.
// POST /v1/admin/logout - requires AdminAuthMiddleware. Returns 204 No Content.
func (h *SessionHandler) LogoutHandler(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		httputil.AbortWithMessage(c, http.StatusUnauthorized, MsgAuthRequired)
		return
	}

	if err := h.sessionUseCase.Logout(c.Request.Context(), token, RequestMeta(c)); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// MeHandler returns the admin resolved by the gate.
// GET /v1/admin/me - requires AdminAuthMiddleware.
func (h *SessionHandler) MeHandler(c *gin.Context) {
	admin, ok := GetAdmin(c.Request.Context())
	if !ok {
		httputil.AbortWithMessage(c, http.StatusUnauthorized, MsgAuthRequired)
		return
	}

	c.JSON(http.StatusOK, dto.MapAdminToResponse(admin))
}
