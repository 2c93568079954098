package dto

import (
	"time"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
)

// AdminResponse represents an admin in API responses. The password hash is never included.
type AdminResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// MapAdminToResponse converts a domain admin to an API response.
func MapAdminToResponse(admin *authDomain.Admin) AdminResponse {
	return AdminResponse{
		ID:          admin.ID,
		Email:       admin.Email,
		Name:        admin.Name,
		Role:        string(admin.Role),
		IsActive:    admin.IsActive,
		LastLoginAt: admin.LastLoginAt,
		CreatedAt:   admin.CreatedAt,
		UpdatedAt:   admin.UpdatedAt,
	}
}

// MapAdminsToResponse converts a slice of domain admins.
func MapAdminsToResponse(admins []*authDomain.Admin) []AdminResponse {
	responses := make([]AdminResponse, 0, len(admins))
	for _, admin := range admins {
		responses = append(responses, MapAdminToResponse(admin))
	}
	return responses
}

// LoginResponse contains the session token issued by a successful login.
type LoginResponse struct {
	Token     string        `json:"token"` //nolint:gosec // returned once on login
	TokenType string        `json:"token_type"`
	ExpiresAt time.Time     `json:"expires_at"`
	Admin     AdminResponse `json:"admin"`
}

// MapLoginOutputToResponse converts a login result to an API response.
func MapLoginOutputToResponse(output *authDomain.LoginOutput) LoginResponse {
	return LoginResponse{
		Token:     output.Token,
		TokenType: "Bearer",
		ExpiresAt: output.ExpiresAt,
		Admin:     MapAdminToResponse(output.Admin),
	}
}

// AuditLogResponse represents an audit log entry in API responses.
type AuditLogResponse struct {
	ID        string         `json:"id"`
	RequestID string         `json:"request_id"`
	Event     string         `json:"event"`
	ActorID   string         `json:"actor_id,omitempty"`
	SubjectID string         `json:"subject_id,omitempty"`
	Email     string         `json:"email,omitempty"`
	IPAddress string         `json:"ip_address"`
	UserAgent string         `json:"user_agent"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	IsSigned  bool           `json:"is_signed"`
	CreatedAt time.Time      `json:"created_at"`
}

// MapAuditLogToResponse converts a domain audit log to an API response.
func MapAuditLogToResponse(auditLog *authDomain.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:        auditLog.ID.String(),
		RequestID: auditLog.RequestID,
		Event:     string(auditLog.Event),
		ActorID:   auditLog.ActorID,
		SubjectID: auditLog.SubjectID,
		Email:     auditLog.Email,
		IPAddress: auditLog.IPAddress,
		UserAgent: auditLog.UserAgent,
		Metadata:  auditLog.Metadata,
		IsSigned:  auditLog.IsSigned,
		CreatedAt: auditLog.CreatedAt,
	}
}

// MapAuditLogsToResponse converts a slice of domain audit logs.
func MapAuditLogsToResponse(auditLogs []*authDomain.AuditLog) []AuditLogResponse {
	responses := make([]AuditLogResponse, 0, len(auditLogs))
	for _, auditLog := range auditLogs {
		responses = append(responses, MapAuditLogToResponse(auditLog))
	}
	return responses
}
