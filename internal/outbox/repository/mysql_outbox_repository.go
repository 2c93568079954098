package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/schoolsite/internal/database"
	apperrors "github.com/allisson/schoolsite/internal/errors"
	"github.com/allisson/schoolsite/internal/outbox/domain"
)

// MySQLOutboxEventRepository stores outbox events in MySQL, with ids as BINARY(16).
type MySQLOutboxEventRepository struct {
	db *sql.DB
}

// NewMySQLOutboxEventRepository returns a repository bound to db.
func NewMySQLOutboxEventRepository(db *sql.DB) *MySQLOutboxEventRepository {
	return &MySQLOutboxEventRepository{db: db}
}

// Create enqueues event. Callers run it inside the transaction that produced the event.
func (r *MySQLOutboxEventRepository) Create(ctx context.Context, event *domain.OutboxEvent) error {
	id, err := event.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to encode outbox event id")
	}

	_, err = database.GetTx(ctx, r.db).ExecContext(ctx,
		`INSERT INTO outbox_events (`+outboxColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, event.EventType, event.Payload, string(event.Status), event.Retries,
		event.LastError, event.ProcessedAt, event.CreatedAt, event.UpdatedAt,
	)
	return apperrors.Wrap(err, "failed to create outbox event")
}

// GetPendingEvents locks up to limit pending events, oldest first.
func (r *MySQLOutboxEventRepository) GetPendingEvents(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	rows, err := database.GetTx(ctx, r.db).QueryContext(ctx,
		`SELECT `+outboxColumns+` FROM outbox_events
		WHERE status = ? ORDER BY created_at ASC LIMIT ?
		FOR UPDATE SKIP LOCKED`,
		string(domain.OutboxEventStatusPending), limit,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get pending outbox events")
	}

	events, err := collectOutboxEvents(rows, limit, func(rows *sql.Rows) (*domain.OutboxEvent, error) {
		var raw []byte
		return scanOutboxEvent(rows, &raw, func() (uuid.UUID, error) { return uuid.FromBytes(raw) })
	})
	return events, apperrors.Wrap(err, "failed to scan outbox events")
}

// Update records the delivery state of event.
func (r *MySQLOutboxEventRepository) Update(ctx context.Context, event *domain.OutboxEvent) error {
	id, err := event.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to encode outbox event id")
	}

	_, err = database.GetTx(ctx, r.db).ExecContext(ctx,
		`UPDATE outbox_events
		SET status = ?, retries = ?, last_error = ?, processed_at = ?, updated_at = ?
		WHERE id = ?`,
		string(event.Status), event.Retries, event.LastError, event.ProcessedAt, event.UpdatedAt, id,
	)
	return apperrors.Wrap(err, "failed to update outbox event")
}
