// Package usecase relays contact form submissions to the school mailbox
// through the transactional outbox.
package usecase

import (
	"context"
	"time"

	contactDomain "github.com/allisson/schoolsite/internal/contact/domain"
	apperrors "github.com/allisson/schoolsite/internal/errors"
	outboxDomain "github.com/allisson/schoolsite/internal/outbox/domain"
)

// OutboxEventRepository is the write side of the transactional outbox.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// ContactUseCase accepts contact form submissions.
type ContactUseCase interface {
	// Submit enqueues a contact.submitted event. Delivery happens
	// asynchronously in the outbox worker.
	Submit(ctx context.Context, msg *contactDomain.Message) error
}

type contactUseCase struct {
	outboxRepo OutboxEventRepository
}

// NewContactUseCase creates a new ContactUseCase.
func NewContactUseCase(outboxRepo OutboxEventRepository) ContactUseCase {
	return &contactUseCase{outboxRepo: outboxRepo}
}

func (c *contactUseCase) Submit(ctx context.Context, msg *contactDomain.Message) error {
	msg.Normalize()
	if msg.SubmittedAt.IsZero() {
		msg.SubmittedAt = time.Now().UTC()
	}

	event, err := outboxDomain.NewOutboxEvent(outboxDomain.EventTypeContactSubmitted, outboxDomain.ContactSubmittedPayload{
		Name:        msg.Name,
		Email:       msg.Email,
		Subject:     msg.Subject,
		Message:     msg.Body,
		IPAddress:   msg.IPAddress,
		SubmittedAt: msg.SubmittedAt,
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to build contact event")
	}

	if err := c.outboxRepo.Create(ctx, event); err != nil {
		return apperrors.Wrap(err, "failed to enqueue contact event")
	}
	return nil
}
