package repository

import (
	"context"
	"database/sql"
	"time"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
)

// PostgreSQLAuditLogRepository implements AuditLog persistence for PostgreSQL.
type PostgreSQLAuditLogRepository struct {
	store auditLogStore
}

// NewPostgreSQLAuditLogRepository creates a new PostgreSQL AuditLog repository.
func NewPostgreSQLAuditLogRepository(db *sql.DB) *PostgreSQLAuditLogRepository {
	return &PostgreSQLAuditLogRepository{store: auditLogStore{db: db, dialect: postgresDialect}}
}

// Create inserts an AuditLog. Nil metadata is stored as NULL.
func (p *PostgreSQLAuditLogRepository) Create(ctx context.Context, auditLog *authDomain.AuditLog) error {
	return p.store.create(ctx, auditLog)
}

// List returns audit logs matching filter, newest first.
func (p *PostgreSQLAuditLogRepository) List(
	ctx context.Context,
	offset, limit int,
	filter authDomain.AuditLogFilter,
) ([]*authDomain.AuditLog, error) {
	return p.store.list(ctx, offset, limit, filter)
}

// DeleteOlderThan removes audit logs created before cutoff, or only counts
// them when dryRun is set.
func (p *PostgreSQLAuditLogRepository) DeleteOlderThan(
	ctx context.Context,
	cutoff time.Time,
	dryRun bool,
) (int64, error) {
	return p.store.deleteOlderThan(ctx, cutoff, dryRun)
}
