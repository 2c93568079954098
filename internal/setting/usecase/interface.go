// Package usecase implements reading and toggling site settings.
package usecase

import (
	"context"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	settingDomain "github.com/allisson/schoolsite/internal/setting/domain"
)

// SettingRepository defines persistence operations for site settings.
type SettingRepository interface {
	// Upsert inserts or replaces the setting stored under setting.Key.
	Upsert(ctx context.Context, setting *settingDomain.Setting) error

	// Get retrieves a setting by key. Returns ErrSettingNotFound if not found.
	Get(ctx context.Context, key string) (*settingDomain.Setting, error)

	List(ctx context.Context) ([]*settingDomain.Setting, error)
}

// AuditRecorder records signed audit entries for setting changes.
type AuditRecorder interface {
	Record(ctx context.Context, auditLog *authDomain.AuditLog) error
}

// SettingUseCase reads and updates site settings.
type SettingUseCase interface {
	// List returns every setting ordered by key.
	List(ctx context.Context) ([]*settingDomain.Setting, error)

	// Update upserts the setting under key on behalf of actorID and records
	// a setting_updated audit entry in the same transaction.
	Update(
		ctx context.Context,
		actorID, key string,
		input *settingDomain.UpdateSettingInput,
		meta authDomain.RequestMeta,
	) (*settingDomain.Setting, error)
}
