// Package domain defines the site settings toggled from the admin panel.
package domain

import (
	"time"

	"github.com/allisson/schoolsite/internal/errors"
)

// ErrSettingNotFound indicates no setting exists under the requested key.
var ErrSettingNotFound = errors.Wrap(errors.ErrNotFound, "setting not found")

// Setting is a named boolean toggle. UpdatedBy holds the ID of the admin who
// last changed it and is empty for rows seeded by migrations.
type Setting struct {
	Key         string
	Enabled     bool
	Description string
	UpdatedBy   string
	UpdatedAt   time.Time
}

// UpdateSettingInput is applied by an upsert. A nil Description keeps the
// stored one.
type UpdateSettingInput struct {
	Enabled     bool
	Description *string
}

// IsEnabled reports whether key is present and enabled in settings.
func IsEnabled(settings []*Setting, key string) bool {
	for _, s := range settings {
		if s.Key == key {
			return s.Enabled
		}
	}
	return false
}
