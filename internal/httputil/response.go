// Package httputil holds the gin helpers shared by every HTTP handler:
// error mapping, pagination and rate limiting.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/schoolsite/internal/errors"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// MessageResponse is the single-field body returned by the admin auth gate.
type MessageResponse struct {
	Message string `json:"message"`
}

// AbortWithMessage writes {"message": msg} with the given status and stops the handler chain.
func AbortWithMessage(c *gin.Context, statusCode int, msg string) {
	c.AbortWithStatusJSON(statusCode, MessageResponse{Message: msg})
}

// errorMapping ties a sentinel error to its status code and default body.
// An empty message means err.Error() is safe to show.
type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

var errorMappings = []errorMapping{
	{apperrors.ErrNotFound, http.StatusNotFound, "not_found", "The requested resource was not found"},
	{apperrors.ErrConflict, http.StatusConflict, "conflict", "A conflict occurred with existing data"},
	{apperrors.ErrInvalidInput, http.StatusUnprocessableEntity, "invalid_input", ""},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "Authentication is required"},
	{apperrors.ErrLocked, http.StatusLocked, "account_locked", "Account is locked due to too many failed login attempts"},
	{apperrors.ErrForbidden, http.StatusForbidden, "forbidden", "You don't have permission to access this resource"},
	{apperrors.ErrTooManyRequests, http.StatusTooManyRequests, "rate_limit_exceeded", "Too many requests, please try again later"},
}

var internalErrorMapping = errorMapping{
	status:  http.StatusInternalServerError,
	code:    "internal_error",
	message: "An internal error occurred",
}

func mapError(err error) (int, ErrorResponse) {
	m := internalErrorMapping
	for _, candidate := range errorMappings {
		if apperrors.Is(err, candidate.target) {
			m = candidate
			break
		}
	}

	resp := ErrorResponse{Error: m.code, Message: m.message}
	switch {
	case m.status == http.StatusInternalServerError:
	case resp.Message == "":
		resp.Message = err.Error()
	default:
		// Credential failures carry one generic public text so callers cannot
		// tell an unknown email from a wrong password.
		if msg, ok := apperrors.PublicMessage(err); ok {
			resp.Message = msg
		}
	}
	return m.status, resp
}

// HandleErrorGin maps domain errors to HTTP status codes and writes a JSON
// response. Unmapped errors become a 500 whose detail is only logged.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	status, resp := mapError(err)

	if logger != nil {
		level := slog.LevelWarn
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			slog.Int("status_code", status),
			slog.String("error_code", resp.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(status, resp)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	})
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for validation errors.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}
