package usecase

import (
	"context"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	"github.com/allisson/schoolsite/internal/database"
	apperrors "github.com/allisson/schoolsite/internal/errors"
	settingDomain "github.com/allisson/schoolsite/internal/setting/domain"
	customValidation "github.com/allisson/schoolsite/internal/validation"
)

const maxDescriptionLength = 255

type settingUseCase struct {
	txManager   database.TxManager
	settingRepo SettingRepository
	audit       AuditRecorder
}

// NewSettingUseCase creates a new SettingUseCase.
func NewSettingUseCase(
	txManager database.TxManager,
	settingRepo SettingRepository,
	audit AuditRecorder,
) SettingUseCase {
	return &settingUseCase{
		txManager:   txManager,
		settingRepo: settingRepo,
		audit:       audit,
	}
}

func (s *settingUseCase) List(ctx context.Context) ([]*settingDomain.Setting, error) {
	return s.settingRepo.List(ctx)
}

func (s *settingUseCase) Update(
	ctx context.Context,
	actorID, key string,
	input *settingDomain.UpdateSettingInput,
	meta authDomain.RequestMeta,
) (*settingDomain.Setting, error) {
	key = strings.TrimSpace(key)
	err := validation.Errors{
		"key":         validation.Validate(key, validation.Required, customValidation.SettingKey),
		"description": validation.Validate(input.Description, validation.Length(0, maxDescriptionLength)),
	}.Filter()
	if err != nil {
		return nil, customValidation.WrapValidationError(err)
	}

	setting, err := s.settingRepo.Get(ctx, key)
	switch {
	case err == nil:
	case apperrors.Is(err, settingDomain.ErrSettingNotFound):
		setting = &settingDomain.Setting{Key: key}
	default:
		return nil, err
	}

	previous := setting.Enabled
	setting.Enabled = input.Enabled
	if input.Description != nil {
		setting.Description = strings.TrimSpace(*input.Description)
	}
	setting.UpdatedBy = actorID
	setting.UpdatedAt = time.Now().UTC()

	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.settingRepo.Upsert(ctx, setting); err != nil {
			return err
		}
		return s.audit.Record(ctx, &authDomain.AuditLog{
			RequestID: meta.RequestID,
			Event:     authDomain.AuditSettingUpdated,
			ActorID:   actorID,
			IPAddress: meta.IPAddress,
			UserAgent: meta.UserAgent,
			Metadata: map[string]any{
				"key":      key,
				"enabled":  setting.Enabled,
				"previous": previous,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	return setting, nil
}
