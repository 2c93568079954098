// Package usecase implements the business rules of admin authentication:
// login and session validation, password reset, admin management and the
// signed audit trail.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	outboxDomain "github.com/allisson/schoolsite/internal/outbox/domain"
)

// AdminRepository defines persistence operations for admin accounts.
// Implementations must support transaction-aware operations via context propagation.
type AdminRepository interface {
	// Create stores a new admin. Returns ErrAdminAlreadyExists on a duplicate email.
	Create(ctx context.Context, admin *authDomain.Admin) error

	// Update modifies an existing admin. Returns ErrAdminNotFound if it does not exist.
	Update(ctx context.Context, admin *authDomain.Admin) error

	// Get retrieves an admin by ID. Returns ErrAdminNotFound if not found.
	Get(ctx context.Context, id string) (*authDomain.Admin, error)

	// GetByEmail retrieves an admin by normalized email. Returns ErrAdminNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*authDomain.Admin, error)

	List(ctx context.Context, offset, limit int) ([]*authDomain.Admin, error)
}

// AuditLogRepository defines persistence operations for the auth audit log.
type AuditLogRepository interface {
	Create(ctx context.Context, auditLog *authDomain.AuditLog) error

	List(
		ctx context.Context,
		offset, limit int,
		filter authDomain.AuditLogFilter,
	) ([]*authDomain.AuditLog, error)

	DeleteOlderThan(ctx context.Context, cutoff time.Time, dryRun bool) (int64, error)
}

// OutboxEventRepository is the write side of the transactional outbox.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// SessionUseCase handles admin login, logout and bearer token validation.
type SessionUseCase interface {
	// Login verifies email and password and issues a session token.
	//
	// An unknown email and a wrong password both return ErrInvalidCredentials.
	// A wrong password counts towards the lockout threshold. Returns
	// ErrAdminLocked while a lockout window is open and ErrAdminInactive for a
	// disabled account with a correct password.
	Login(
		ctx context.Context,
		email, password string,
		meta authDomain.RequestMeta,
	) (*authDomain.LoginOutput, error)

	// Authenticate verifies a session token and re-reads the admin it names.
	//
	// Returns ErrInvalidToken for a token that fails verification or was revoked,
	// ErrAccountUnavailable when the admin no longer exists or is inactive, and a
	// wrapped error for datastore or denylist failures.
	Authenticate(ctx context.Context, token string) (*authDomain.Admin, error)

	// Logout revokes the token when a denylist is configured and records the event.
	Logout(ctx context.Context, token string, meta authDomain.RequestMeta) error
}

// PasswordResetUseCase implements the reset-token flow.
type PasswordResetUseCase interface {
	// RequestReset mails a reset link to an active admin. It never reveals
	// whether the email is registered.
	RequestReset(ctx context.Context, email string, meta authDomain.RequestMeta) error

	// ConfirmReset replaces the password of the admin the reset token is bound to.
	// Any token problem returns ErrInvalidToken.
	ConfirmReset(ctx context.Context, token, newPassword string, meta authDomain.RequestMeta) error
}

// AdminUseCase manages admin accounts. actorID is the admin performing the
// change and is empty for CLI calls.
type AdminUseCase interface {
	Create(
		ctx context.Context,
		actorID string,
		input *authDomain.CreateAdminInput,
		meta authDomain.RequestMeta,
	) (*authDomain.Admin, error)

	Update(
		ctx context.Context,
		actorID, id string,
		input *authDomain.UpdateAdminInput,
		meta authDomain.RequestMeta,
	) (*authDomain.Admin, error)

	Get(ctx context.Context, id string) (*authDomain.Admin, error)

	List(ctx context.Context, offset, limit int) ([]*authDomain.Admin, error)

	// Delete deactivates the admin. The record is kept for the audit trail.
	Delete(ctx context.Context, actorID, id string, meta authDomain.RequestMeta) error
}

// VerificationReport summarizes a batch audit log signature check.
type VerificationReport struct {
	TotalChecked  int64
	SignedCount   int64
	UnsignedCount int64
	ValidCount    int64
	InvalidCount  int64
	InvalidLogs   []uuid.UUID
}

// AuditLogUseCase records, lists, verifies and prunes audit logs.
type AuditLogUseCase interface {
	// Record assigns an ID and timestamp, signs and persists auditLog.
	Record(ctx context.Context, auditLog *authDomain.AuditLog) error

	List(
		ctx context.Context,
		offset, limit int,
		filter authDomain.AuditLogFilter,
	) ([]*authDomain.AuditLog, error)

	// VerifyBatch checks the signature of every log created in [start, end].
	VerifyBatch(ctx context.Context, start, end time.Time) (*VerificationReport, error)

	// DeleteOlderThan removes logs older than days, or counts them when dryRun is set.
	DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error)
}
