// Package mail delivers plain text notification emails.
package mail

import (
	"context"
	"log/slog"
	"strings"

	apperrors "github.com/allisson/schoolsite/internal/errors"
)

// ErrInvalidMessage is returned for a message without recipient or subject.
var ErrInvalidMessage = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid mail message")

// Message is a plain text email.
type Message struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// Validate reports ErrInvalidMessage when required fields are missing.
func (m *Message) Validate() error {
	if strings.TrimSpace(m.To) == "" || strings.TrimSpace(m.Subject) == "" {
		return ErrInvalidMessage
	}
	return nil
}

// Mailer sends email messages.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

// LogMailer writes messages to the logger instead of sending them.
// It is used when no SMTP server is configured.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a LogMailer.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs msg at Info level.
func (l *LogMailer) Send(ctx context.Context, msg *Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	l.logger.InfoContext(ctx, "email not sent, smtp disabled",
		slog.String("to", msg.To),
		slog.String("reply_to", msg.ReplyTo),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Body),
	)
	return nil
}
