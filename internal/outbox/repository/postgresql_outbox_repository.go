package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/schoolsite/internal/database"
	apperrors "github.com/allisson/schoolsite/internal/errors"
	"github.com/allisson/schoolsite/internal/outbox/domain"
)

// PostgreSQLOutboxEventRepository stores outbox events in PostgreSQL.
type PostgreSQLOutboxEventRepository struct {
	db *sql.DB
}

// NewPostgreSQLOutboxEventRepository returns a repository bound to db.
func NewPostgreSQLOutboxEventRepository(db *sql.DB) *PostgreSQLOutboxEventRepository {
	return &PostgreSQLOutboxEventRepository{db: db}
}

// Create enqueues event. Callers run it inside the transaction that produced the event.
func (r *PostgreSQLOutboxEventRepository) Create(ctx context.Context, event *domain.OutboxEvent) error {
	_, err := database.GetTx(ctx, r.db).ExecContext(ctx,
		`INSERT INTO outbox_events (`+outboxColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		event.ID.String(), event.EventType, event.Payload, string(event.Status), event.Retries,
		event.LastError, event.ProcessedAt, event.CreatedAt, event.UpdatedAt,
	)
	return apperrors.Wrap(err, "failed to create outbox event")
}

// GetPendingEvents locks up to limit pending events, oldest first.
func (r *PostgreSQLOutboxEventRepository) GetPendingEvents(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	rows, err := database.GetTx(ctx, r.db).QueryContext(ctx,
		`SELECT `+outboxColumns+` FROM outbox_events
		WHERE status = $1 ORDER BY created_at ASC LIMIT $2
		FOR UPDATE SKIP LOCKED`,
		string(domain.OutboxEventStatusPending), limit,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get pending outbox events")
	}

	events, err := collectOutboxEvents(rows, limit, func(rows *sql.Rows) (*domain.OutboxEvent, error) {
		var id string
		return scanOutboxEvent(rows, &id, func() (uuid.UUID, error) { return uuid.Parse(id) })
	})
	return events, apperrors.Wrap(err, "failed to scan outbox events")
}

// Update records the delivery state of event.
func (r *PostgreSQLOutboxEventRepository) Update(ctx context.Context, event *domain.OutboxEvent) error {
	_, err := database.GetTx(ctx, r.db).ExecContext(ctx,
		`UPDATE outbox_events
		SET status = $1, retries = $2, last_error = $3, processed_at = $4, updated_at = $5
		WHERE id = $6`,
		string(event.Status), event.Retries, event.LastError, event.ProcessedAt, event.UpdatedAt,
		event.ID.String(),
	)
	return apperrors.Wrap(err, "failed to update outbox event")
}
