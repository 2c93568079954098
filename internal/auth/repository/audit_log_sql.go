package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	"github.com/allisson/schoolsite/internal/database"
	apperrors "github.com/allisson/schoolsite/internal/errors"
)

const auditLogColumns = `id, request_id, event, actor_id, subject_id, email, ip_address,
	user_agent, metadata, signature, key_id, is_signed, created_at`

// sqlDialect captures what differs between the PostgreSQL and MySQL audit
// tables: placeholders and the storage type of the id column.
type sqlDialect struct {
	placeholder func(n int) string
	encodeID    func(id uuid.UUID) (any, error)
	// idTarget returns a Scan destination and a func decoding it afterwards.
	idTarget func() (any, func() (uuid.UUID, error))
}

var postgresDialect = sqlDialect{
	placeholder: postgresPlaceholder,
	encodeID:    func(id uuid.UUID) (any, error) { return id, nil },
	idTarget: func() (any, func() (uuid.UUID, error)) {
		var id uuid.UUID
		return &id, func() (uuid.UUID, error) { return id, nil }
	},
}

var mysqlDialect = sqlDialect{
	placeholder: mysqlPlaceholder,
	encodeID:    func(id uuid.UUID) (any, error) { return id.MarshalBinary() },
	idTarget: func() (any, func() (uuid.UUID, error)) {
		var raw []byte
		return &raw, func() (uuid.UUID, error) { return uuid.FromBytes(raw) }
	},
}

func (d sqlDialect) placeholders(from, count int) string {
	out := ""
	for i := range count {
		if i > 0 {
			out += ", "
		}
		out += d.placeholder(from + i)
	}
	return out
}

// auditLogStore holds the audit log queries shared by both drivers.
type auditLogStore struct {
	db      *sql.DB
	dialect sqlDialect
}

func (s auditLogStore) create(ctx context.Context, auditLog *authDomain.AuditLog) error {
	metadata, err := marshalMetadata(auditLog.Metadata)
	if err != nil {
		return err
	}

	id, err := s.dialect.encodeID(auditLog.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit log id")
	}

	query := `INSERT INTO audit_logs (` + auditLogColumns + `) VALUES (` + s.dialect.placeholders(1, 13) + `)`
	_, err = database.GetTx(ctx, s.db).ExecContext(ctx, query,
		id,
		auditLog.RequestID,
		string(auditLog.Event),
		auditLog.ActorID,
		auditLog.SubjectID,
		auditLog.Email,
		auditLog.IPAddress,
		auditLog.UserAgent,
		metadata,
		auditLog.Signature,
		auditLog.KeyID,
		auditLog.IsSigned,
		auditLog.CreatedAt,
	)
	return apperrors.Wrap(err, "failed to create audit log")
}

func (s auditLogStore) list(
	ctx context.Context,
	offset, limit int,
	filter authDomain.AuditLogFilter,
) ([]*authDomain.AuditLog, error) {
	where, args := auditFilterClause(filter, s.dialect.placeholder)
	query := `SELECT ` + auditLogColumns + ` FROM audit_logs` + where +
		` ORDER BY created_at DESC, id DESC LIMIT ` + s.dialect.placeholder(len(args)+1) +
		` OFFSET ` + s.dialect.placeholder(len(args)+2)
	args = append(args, limit, offset)

	rows, err := database.GetTx(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit logs")
	}
	defer rows.Close() //nolint:errcheck

	auditLogs := make([]*authDomain.AuditLog, 0)
	for rows.Next() {
		auditLog, err := s.scan(rows)
		if err != nil {
			return nil, err
		}
		auditLogs = append(auditLogs, auditLog)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit logs")
	}
	return auditLogs, nil
}

func (s auditLogStore) scan(row rowScanner) (*authDomain.AuditLog, error) {
	var auditLog authDomain.AuditLog
	var event string
	var metadata []byte
	idDest, decodeID := s.dialect.idTarget()

	err := row.Scan(
		idDest,
		&auditLog.RequestID,
		&event,
		&auditLog.ActorID,
		&auditLog.SubjectID,
		&auditLog.Email,
		&auditLog.IPAddress,
		&auditLog.UserAgent,
		&metadata,
		&auditLog.Signature,
		&auditLog.KeyID,
		&auditLog.IsSigned,
		&auditLog.CreatedAt,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to scan audit log")
	}

	if auditLog.ID, err = decodeID(); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal audit log id")
	}
	auditLog.Event = authDomain.AuditEvent(event)
	if auditLog.Metadata, err = unmarshalMetadata(metadata); err != nil {
		return nil, err
	}
	return &auditLog, nil
}

func (s auditLogStore) deleteOlderThan(ctx context.Context, cutoff time.Time, dryRun bool) (int64, error) {
	querier := database.GetTx(ctx, s.db)
	where := ` FROM audit_logs WHERE created_at < ` + s.dialect.placeholder(1)

	if dryRun {
		var count int64
		if err := querier.QueryRowContext(ctx, `SELECT COUNT(*)`+where, cutoff.UTC()).Scan(&count); err != nil {
			return 0, apperrors.Wrap(err, "failed to count audit logs")
		}
		return count, nil
	}

	result, err := querier.ExecContext(ctx, `DELETE`+where, cutoff.UTC())
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete audit logs")
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read affected rows")
	}
	return count, nil
}
