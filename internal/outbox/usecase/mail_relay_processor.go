package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/allisson/schoolsite/internal/errors"
	"github.com/allisson/schoolsite/internal/mail"
	"github.com/allisson/schoolsite/internal/outbox/domain"
)

// ErrUnknownEventType is returned for events no handler is registered for.
// Such events are retried until they are marked failed.
var ErrUnknownEventType = apperrors.New("unknown outbox event type")

// MailRelayProcessor turns outbox events into emails.
type MailRelayProcessor struct {
	mailer           mail.Mailer
	contactRecipient string
	siteName         string
	logger           *slog.Logger
}

// NewMailRelayProcessor creates a MailRelayProcessor. Contact submissions are
// sent to contactRecipient; when it is empty they are logged and dropped.
func NewMailRelayProcessor(
	mailer mail.Mailer,
	contactRecipient, siteName string,
	logger *slog.Logger,
) *MailRelayProcessor {
	return &MailRelayProcessor{
		mailer:           mailer,
		contactRecipient: contactRecipient,
		siteName:         siteName,
		logger:           logger,
	}
}

// Process dispatches event by type.
func (p *MailRelayProcessor) Process(ctx context.Context, event *domain.OutboxEvent) error {
	switch event.EventType {
	case domain.EventTypePasswordResetRequested:
		var payload domain.PasswordResetRequestedPayload
		if err := json.Unmarshal([]byte(event.Payload), &payload); err != nil {
			return apperrors.Wrap(err, "failed to decode password reset payload")
		}
		return p.mailer.Send(ctx, p.passwordResetMessage(&payload))

	case domain.EventTypeContactSubmitted:
		var payload domain.ContactSubmittedPayload
		if err := json.Unmarshal([]byte(event.Payload), &payload); err != nil {
			return apperrors.Wrap(err, "failed to decode contact payload")
		}
		if p.contactRecipient == "" {
			p.logger.WarnContext(ctx, "contact recipient not configured, dropping message",
				slog.String("event_id", event.ID.String()))
			return nil
		}
		return p.mailer.Send(ctx, p.contactMessage(&payload))

	default:
		return apperrors.Wrapf(ErrUnknownEventType, "event type %q", event.EventType)
	}
}

func (p *MailRelayProcessor) passwordResetMessage(payload *domain.PasswordResetRequestedPayload) *mail.Message {
	name := payload.Name
	if name == "" {
		name = payload.Email
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Hello %s,\n\n", name)
	fmt.Fprintf(&body, "A password reset was requested for your %s admin account.\n", p.siteName)
	body.WriteString("Open the link below to choose a new password:\n\n")
	fmt.Fprintf(&body, "%s\n\n", payload.ResetURL)
	fmt.Fprintf(&body, "The link expires at %s. ", payload.ExpiresAt.UTC().Format(time.RFC1123))
	body.WriteString("If you did not request a reset you can ignore this email.\n")

	return &mail.Message{
		To:      payload.Email,
		Subject: p.siteName + " admin password reset",
		Body:    body.String(),
	}
}

func (p *MailRelayProcessor) contactMessage(payload *domain.ContactSubmittedPayload) *mail.Message {
	var body strings.Builder
	fmt.Fprintf(&body, "Name: %s\n", payload.Name)
	fmt.Fprintf(&body, "Email: %s\n", payload.Email)
	fmt.Fprintf(&body, "IP address: %s\n", payload.IPAddress)
	fmt.Fprintf(&body, "Submitted at: %s\n\n", payload.SubmittedAt.UTC().Format(time.RFC3339))
	body.WriteString(payload.Message)
	body.WriteString("\n")

	return &mail.Message{
		To:      p.contactRecipient,
		ReplyTo: payload.Email,
		Subject: "[" + p.siteName + " contact] " + payload.Subject,
		Body:    body.String(),
	}
}
