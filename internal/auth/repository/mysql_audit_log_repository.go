package repository

import (
	"context"
	"database/sql"
	"time"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
)

// MySQLAuditLogRepository implements AuditLog persistence for MySQL.
// The id column is BINARY(16).
type MySQLAuditLogRepository struct {
	store auditLogStore
}

// NewMySQLAuditLogRepository creates a new MySQL AuditLog repository.
func NewMySQLAuditLogRepository(db *sql.DB) *MySQLAuditLogRepository {
	return &MySQLAuditLogRepository{store: auditLogStore{db: db, dialect: mysqlDialect}}
}

// Create inserts an AuditLog. Nil metadata is stored as NULL.
func (m *MySQLAuditLogRepository) Create(ctx context.Context, auditLog *authDomain.AuditLog) error {
	return m.store.create(ctx, auditLog)
}

// List returns audit logs matching filter, newest first.
func (m *MySQLAuditLogRepository) List(
	ctx context.Context,
	offset, limit int,
	filter authDomain.AuditLogFilter,
) ([]*authDomain.AuditLog, error) {
	return m.store.list(ctx, offset, limit, filter)
}

// DeleteOlderThan removes audit logs created before cutoff, or only counts
// them when dryRun is set.
func (m *MySQLAuditLogRepository) DeleteOlderThan(
	ctx context.Context,
	cutoff time.Time,
	dryRun bool,
) (int64, error) {
	return m.store.deleteOlderThan(ctx, cutoff, dryRun)
}
