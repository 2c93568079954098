// Package domain defines the core outbox domain entities and types.
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OutboxEventStatus represents the status of an outbox event
type OutboxEventStatus string

const (
	OutboxEventStatusPending   OutboxEventStatus = "pending"
	OutboxEventStatusProcessed OutboxEventStatus = "processed"
	OutboxEventStatusFailed    OutboxEventStatus = "failed"
)

// Event types relayed by the outbox worker.
const (
	EventTypePasswordResetRequested = "password_reset.requested"
	EventTypeContactSubmitted       = "contact.submitted"
)

// OutboxEvent represents an event in the transactional outbox pattern
type OutboxEvent struct {
	ID          uuid.UUID
	EventType   string
	Payload     string
	Status      OutboxEventStatus
	Retries     int
	LastError   *string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PasswordResetRequestedPayload is the payload of a password_reset.requested event.
type PasswordResetRequestedPayload struct {
	AdminID   string    `json:"admin_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	ResetURL  string    `json:"reset_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ContactSubmittedPayload is the payload of a contact.submitted event.
type ContactSubmittedPayload struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	IPAddress   string    `json:"ip_address"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// NewOutboxEvent builds a pending event with payload encoded as JSON.
func NewOutboxEvent(eventType string, payload any) (*OutboxEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &OutboxEvent{
		ID:        uuid.Must(uuid.NewV7()),
		EventType: eventType,
		Payload:   string(data),
		Status:    OutboxEventStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
