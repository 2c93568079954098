package mail

import (
	"context"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"

	apperrors "github.com/allisson/schoolsite/internal/errors"
)

const smtpTimeout = 15 * time.Second

// SMTPConfig holds the SMTP relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string //nolint:gosec // relay credential
	From     string
}

type sendMailFunc func(ctx context.Context, msg *gomail.Msg) error

// SMTPMailer sends messages through an SMTP relay, upgrading to STARTTLS
// when the server offers it.
type SMTPMailer struct {
	config   SMTPConfig
	sendMail sendMailFunc
	now      func() time.Time
}

// NewSMTPMailer creates an SMTPMailer. PLAIN auth is used when a username is set.
func NewSMTPMailer(config SMTPConfig) *SMTPMailer {
	s := &SMTPMailer{config: config, now: time.Now}
	s.sendMail = s.dialAndSend
	return s
}

func (s *SMTPMailer) clientOptions() []gomail.Option {
	opts := []gomail.Option{
		gomail.WithPort(s.config.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(smtpTimeout),
	}
	if s.config.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.config.Username),
			gomail.WithPassword(s.config.Password),
		)
	}
	return opts
}

func (s *SMTPMailer) dialAndSend(ctx context.Context, msg *gomail.Msg) error {
	client, err := gomail.NewClient(s.config.Host, s.clientOptions()...)
	if err != nil {
		return apperrors.Wrap(err, "invalid smtp configuration")
	}
	return client.DialAndSendWithContext(ctx, msg)
}

// Send delivers msg. Cancelling ctx aborts an in-flight delivery.
func (s *SMTPMailer) Send(ctx context.Context, msg *Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	out, err := s.compose(msg)
	if err != nil {
		return err
	}

	if err := s.sendMail(ctx, out); err != nil {
		return apperrors.Wrapf(err, "failed to send email to %s", sanitizeHeader(msg.To))
	}
	return nil
}

// compose builds a plain text UTF-8 message. Non-ASCII headers are
// RFC 2047 encoded by go-mail.
func (s *SMTPMailer) compose(msg *Message) (*gomail.Msg, error) {
	out := gomail.NewMsg(gomail.WithCharset(gomail.CharsetUTF8))

	if err := out.From(sanitizeHeader(s.config.From)); err != nil {
		return nil, apperrors.Wrap(err, "invalid sender address")
	}
	if err := out.To(sanitizeHeader(msg.To)); err != nil {
		return nil, apperrors.Wrap(ErrInvalidMessage, err.Error())
	}
	if msg.ReplyTo != "" {
		if err := out.ReplyTo(sanitizeHeader(msg.ReplyTo)); err != nil {
			return nil, apperrors.Wrap(ErrInvalidMessage, err.Error())
		}
	}
	out.Subject(sanitizeHeader(msg.Subject))
	out.SetDateWithValue(s.now().UTC())
	out.SetBodyString(gomail.TypeTextPlain, strings.ReplaceAll(msg.Body, "\r\n", "\n"))
	return out, nil
}

// sanitizeHeader drops CR and LF so user input cannot inject headers.
func sanitizeHeader(value string) string {
	return strings.TrimSpace(strings.NewReplacer("\r", " ", "\n", " ").Replace(value))
}
