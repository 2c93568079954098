package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	"github.com/allisson/schoolsite/internal/auth/http/dto"
	authUseCase "github.com/allisson/schoolsite/internal/auth/usecase"
	"github.com/allisson/schoolsite/internal/httputil"
)

// AuditLogHandler handles HTTP requests for audit log operations.
type AuditLogHandler struct {
	auditLogUseCase authUseCase.AuditLogUseCase
	logger          *slog.Logger
}

// NewAuditLogHandler creates a new audit log handler with required dependencies.
func NewAuditLogHandler(
	auditLogUseCase authUseCase.AuditLogUseCase,
	logger *slog.Logger,
) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUseCase: auditLogUseCase,
		logger:          logger,
	}
}

// parseTimeQuery parses an optional RFC3339 query parameter as UTC.
func parseTimeQuery(c *gin.Context, name string) (*time.Time, error) {
	value := c.Query(name)
	if value == "" {
		return nil, nil
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s format: must be RFC3339 (e.g., 2026-02-01T00:00:00Z)", name)
	}
	utc := parsed.UTC()
	return &utc, nil
}

// ListHandler retrieves audit logs newest first.
// GET /v1/admin/audit-logs?offset=0&limit=25&event=login_failed&subject_id=...&created_at_from=...&created_at_to=...
// Superadmin only. Both time boundaries are inclusive.
func (h *AuditLogHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	since, err := parseTimeQuery(c, "created_at_from")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	until, err := parseTimeQuery(c, "created_at_to")
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if since != nil && until != nil && since.After(*until) {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("created_at_from must be before or equal to created_at_to"),
			h.logger)
		return
	}

	filter := authDomain.AuditLogFilter{
		Event:     authDomain.AuditEvent(c.Query("event")),
		SubjectID: c.Query("subject_id"),
		Since:     since,
		Until:     until,
	}

	auditLogs, err := h.auditLogUseCase.List(c.Request.Context(), offset, limit, filter)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, httputil.NewPageResponse(dto.MapAuditLogsToResponse(auditLogs), offset, limit))
}
