package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditEvent names an authentication or admin management event.
type AuditEvent string

const (
	AuditLoginSucceeded         AuditEvent = "login_succeeded"
	AuditLoginFailed            AuditEvent = "login_failed"
	AuditLogout                 AuditEvent = "logout"
	AuditPasswordResetRequested AuditEvent = "password_reset_requested"
	AuditPasswordResetCompleted AuditEvent = "password_reset_completed"
	AuditAdminCreated           AuditEvent = "admin_created"
	AuditAdminUpdated           AuditEvent = "admin_updated"
	AuditAdminDeleted           AuditEvent = "admin_deleted"
	AuditSettingUpdated         AuditEvent = "setting_updated"
)

// AuditSignatureKeyID identifies the signing key derivation in use.
const AuditSignatureKeyID = "audit-log-signing-v1"

// AuditLog is an append-only record of an authentication event. ActorID is
// the admin performing the action and may be empty (failed login for an
// unknown email). SubjectID is the admin the event is about.
type AuditLog struct {
	ID        uuid.UUID
	RequestID string
	Event     AuditEvent
	ActorID   string
	SubjectID string
	Email     string
	IPAddress string
	UserAgent string
	Metadata  map[string]any
	Signature []byte
	KeyID     string
	IsSigned  bool
	CreatedAt time.Time
}

// HasValidSignature reports whether the log carries a well-formed HMAC-SHA256 signature.
func (a *AuditLog) HasValidSignature() bool {
	return a.IsSigned && a.KeyID != "" && len(a.Signature) == 32
}

// AuditLogFilter narrows audit log listings.
type AuditLogFilter struct {
	Event     AuditEvent
	SubjectID string
	Since     *time.Time
	Until     *time.Time
}
