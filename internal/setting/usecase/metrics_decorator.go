package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	"github.com/allisson/schoolsite/internal/metrics"
	settingDomain "github.com/allisson/schoolsite/internal/setting/domain"
)

type settingUseCaseWithMetrics struct {
	next    SettingUseCase
	metrics metrics.BusinessMetrics
}

// NewSettingUseCaseWithMetrics wraps a SettingUseCase with metrics recording.
func NewSettingUseCaseWithMetrics(useCase SettingUseCase, m metrics.BusinessMetrics) SettingUseCase {
	return &settingUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *settingUseCaseWithMetrics) List(ctx context.Context) ([]*settingDomain.Setting, error) {
	start := time.Now()
	settings, err := s.next.List(ctx)
	metrics.Observe(ctx, s.metrics, "setting", "setting_list", start, err)
	return settings, err
}

func (s *settingUseCaseWithMetrics) Update(
	ctx context.Context,
	actorID, key string,
	input *settingDomain.UpdateSettingInput,
	meta authDomain.RequestMeta,
) (*settingDomain.Setting, error) {
	start := time.Now()
	setting, err := s.next.Update(ctx, actorID, key, input, meta)
	metrics.Observe(ctx, s.metrics, "setting", "setting_update", start, err)
	return setting, err
}
