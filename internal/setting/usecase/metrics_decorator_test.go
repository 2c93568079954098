package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	settingDomain "github.com/allisson/schoolsite/internal/setting/domain"
	"github.com/allisson/schoolsite/internal/setting/usecase"
	usecaseMocks "github.com/allisson/schoolsite/internal/setting/usecase/mocks"
)

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func expectMetrics(ctx context.Context, m *mockBusinessMetrics, operation, status string) {
	m.On("RecordOperation", ctx, "setting", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "setting", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestSettingUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("List success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockSettingUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewSettingUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("List", ctx).Return([]*settingDomain.Setting{}, nil).Once()
		expectMetrics(ctx, mockMetrics, "setting_list", "success")

		_, err := uc.List(ctx)

		assert.NoError(t, err)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Update error", func(t *testing.T) {
		mockNext := &usecaseMocks.MockSettingUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewSettingUseCaseWithMetrics(mockNext, mockMetrics)
		input := &settingDomain.UpdateSettingInput{Enabled: true}
		meta := authDomain.RequestMeta{RequestID: "r"}

		mockNext.On("Update", ctx, "a1", "show_events", input, meta).Return(nil, errors.New("boom")).Once()
		expectMetrics(ctx, mockMetrics, "setting_update", "error")

		_, err := uc.Update(ctx, "a1", "show_events", input, meta)

		assert.Error(t, err)
		mockMetrics.AssertExpectations(t)
	})
}
