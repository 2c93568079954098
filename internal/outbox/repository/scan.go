// Package repository persists outbox events for PostgreSQL and MySQL.
//
// Pending events are claimed with FOR UPDATE SKIP LOCKED so several workers
// can drain the table without handing the same mail to two relays.
package repository

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/schoolsite/internal/outbox/domain"
)

const outboxColumns = `id, event_type, payload, status, retries, last_error, processed_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanOutboxEvent reads one row; decodeID converts the driver's id value.
func scanOutboxEvent(row rowScanner, rawID any, decodeID func() (uuid.UUID, error)) (*domain.OutboxEvent, error) {
	var event domain.OutboxEvent
	var status string
	var lastError sql.NullString
	var processedAt sql.NullTime

	err := row.Scan(rawID, &event.EventType, &event.Payload, &status, &event.Retries,
		&lastError, &processedAt, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if event.ID, err = decodeID(); err != nil {
		return nil, err
	}
	event.Status = domain.OutboxEventStatus(status)
	if lastError.Valid {
		event.LastError = &lastError.String
	}
	if processedAt.Valid {
		t := processedAt.Time
		event.ProcessedAt = &t
	}
	return &event, nil
}

func collectOutboxEvents(rows *sql.Rows, limit int, scan func(*sql.Rows) (*domain.OutboxEvent, error)) ([]*domain.OutboxEvent, error) {
	defer rows.Close() //nolint:errcheck

	events := make([]*domain.OutboxEvent, 0, limit)
	for rows.Next() {
		event, err := scan(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
