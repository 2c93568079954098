package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
)

var adminColumnNames = []string{
	"id", "email", "password_hash", "name", "role", "is_active", "failed_attempts",
	"locked_until", "last_login_at", "created_at", "updated_at",
}

var auditLogColumnNames = []string{
	"id", "request_id", "event", "actor_id", "subject_id", "email", "ip_address",
	"user_agent", "metadata", "signature", "key_id", "is_signed", "created_at",
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func newTestAdmin() *authDomain.Admin {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	return &authDomain.Admin{
		ID:           "a1",
		Email:        "x@y.com",
		PasswordHash: "$2a$12$hash",
		Name:         "Ada",
		Role:         authDomain.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func adminRow(a *authDomain.Admin) *sqlmock.Rows {
	var lockedUntil, lastLoginAt any
	if a.LockedUntil != nil {
		lockedUntil = *a.LockedUntil
	}
	if a.LastLoginAt != nil {
		lastLoginAt = *a.LastLoginAt
	}
	return sqlmock.NewRows(adminColumnNames).AddRow(
		a.ID, a.Email, a.PasswordHash, a.Name, string(a.Role), a.IsActive, a.FailedAttempts,
		lockedUntil, lastLoginAt, a.CreatedAt, a.UpdatedAt,
	)
}
