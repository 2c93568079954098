// Package domain defines messages submitted through the public contact form.
package domain

import (
	"strings"
	"time"

	"github.com/allisson/schoolsite/internal/validation"
)

// Field limits for contact submissions.
const (
	MaxNameLength    = 120
	MaxSubjectLength = 200
	MaxMessageLength = 5000
)

// Message is a contact form submission.
type Message struct {
	Name        string
	Email       string
	Subject     string
	Body        string
	IPAddress   string
	SubmittedAt time.Time
}

// Normalize trims every field and lowercases the email.
func (m *Message) Normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = validation.NormalizeEmail(m.Email)
	m.Subject = strings.TrimSpace(m.Subject)
	m.Body = strings.TrimSpace(m.Body)
}
