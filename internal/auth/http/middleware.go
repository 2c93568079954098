package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	authUseCase "github.com/allisson/schoolsite/internal/auth/usecase"
	apperrors "github.com/allisson/schoolsite/internal/errors"
	"github.com/allisson/schoolsite/internal/httputil"
)

// Auth gate response messages.
const (
	MsgAuthRequired       = "Admin authentication required."
	MsgInvalidToken       = "Invalid admin token."
	MsgAccountUnavailable = "Admin account not found or inactive"
	MsgAuthError          = "Admin authentication error."
	MsgForbidden          = "Insufficient admin permissions."
)

const bearerPrefix = "bearer "

// bearerToken extracts the token from a "Bearer <token>" Authorization header.
// The scheme is matched case-insensitively.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}

// AdminAuthMiddleware gates admin routes.
//
// Stages run in order and the first failure ends the request:
//  1. Missing or malformed Authorization header: 401 "Admin authentication required."
//  2. Token fails signature, expiry or revocation checks: 401 "Invalid admin token."
//  3. Admin no longer exists or is inactive: 401 "Admin account not found or inactive"
//  4. The admin is stored in the request context and the chain continues.
//
// Datastore or denylist failures are logged and answered with
// 500 "Admin authentication error." without detail.
func AdminAuthMiddleware(sessionUseCase authUseCase.SessionUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			logger.Debug("admin authentication failed: missing or malformed authorization header")
			httputil.AbortWithMessage(c, http.StatusUnauthorized, MsgAuthRequired)
			return
		}

		admin, err := sessionUseCase.Authenticate(c.Request.Context(), token)
		switch {
		case err == nil:
		case apperrors.Is(err, authDomain.ErrInvalidToken):
			logger.Debug("admin authentication failed: invalid token")
			httputil.AbortWithMessage(c, http.StatusUnauthorized, MsgInvalidToken)
			return
		case apperrors.Is(err, authDomain.ErrAccountUnavailable):
			logger.Debug("admin authentication failed: account not found or inactive")
			httputil.AbortWithMessage(c, http.StatusUnauthorized, MsgAccountUnavailable)
			return
		default:
			logger.ErrorContext(c.Request.Context(), "admin authentication error", slog.Any("error", err))
			httputil.AbortWithMessage(c, http.StatusInternalServerError, MsgAuthError)
			return
		}

		c.Request = c.Request.WithContext(WithAdmin(c.Request.Context(), admin))

		logger.Debug("admin authentication successful",
			slog.String("admin_id", admin.ID),
			slog.String("role", string(admin.Role)))

		c.Next()
	}
}

// RequireRole allows the request only when the gated admin holds one of roles.
// It must run after AdminAuthMiddleware.
func RequireRole(logger *slog.Logger, roles ...authDomain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, ok := GetAdmin(c.Request.Context())
		if !ok {
			httputil.AbortWithMessage(c, http.StatusUnauthorized, MsgAuthRequired)
			return
		}

		if !admin.HasRole(roles...) {
			logger.Debug("admin authorization failed",
				slog.String("admin_id", admin.ID),
				slog.String("role", string(admin.Role)),
				slog.String("path", c.FullPath()))
			httputil.AbortWithMessage(c, http.StatusForbidden, MsgForbidden)
			return
		}

		c.Next()
	}
}
