// Package repository implements persistence for admins and the auth audit log.
//
// PostgreSQL and MySQL implementations share column layouts and differ only in
// placeholders and id encoding. All queries run through database.GetTx so they
// join a transaction carried in the context.
package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	apperrors "github.com/allisson/schoolsite/internal/errors"
)

const adminColumns = `id, email, password_hash, name, role, is_active, failed_attempts,
	locked_until, last_login_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAdmin(row rowScanner) (*authDomain.Admin, error) {
	var admin authDomain.Admin
	var role string
	var lockedUntil, lastLoginAt sql.NullTime

	err := row.Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.Name,
		&role,
		&admin.IsActive,
		&admin.FailedAttempts,
		&lockedUntil,
		&lastLoginAt,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	admin.Role = authDomain.Role(role)
	admin.LockedUntil = nullTimePtr(lockedUntil)
	admin.LastLoginAt = nullTimePtr(lastLoginAt)
	return &admin, nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func marshalMetadata(metadata map[string]any) ([]byte, error) {
	if metadata == nil {
		return nil, nil
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal audit log metadata")
	}
	return data, nil
}

func unmarshalMetadata(data []byte) (map[string]any, error) {
	if data == nil {
		return nil, nil
	}
	var metadata map[string]any
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal audit log metadata")
	}
	return metadata, nil
}

// auditFilterClause renders filter as a WHERE clause using placeholder(n)
// for the n-th bound argument, starting at 1.
func auditFilterClause(filter authDomain.AuditLogFilter, placeholder func(int) string) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, placeholder(len(args))))
	}

	if filter.Event != "" {
		add("event = %s", string(filter.Event))
	}
	if filter.SubjectID != "" {
		add("subject_id = %s", filter.SubjectID)
	}
	if filter.Since != nil {
		add("created_at >= %s", filter.Since.UTC())
	}
	if filter.Until != nil {
		add("created_at <= %s", filter.Until.UTC())
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func postgresPlaceholder(n int) string { return fmt.Sprintf("$%d", n) }

func mysqlPlaceholder(int) string { return "?" }
