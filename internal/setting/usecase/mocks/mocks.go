// Package mocks provides testify mocks of the setting use case.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	settingDomain "github.com/allisson/schoolsite/internal/setting/domain"
	settingUseCase "github.com/allisson/schoolsite/internal/setting/usecase"
)

var _ settingUseCase.SettingUseCase = (*MockSettingUseCase)(nil)

// MockSettingUseCase is a mock implementation of SettingUseCase.
type MockSettingUseCase struct {
	mock.Mock
}

func (m *MockSettingUseCase) List(ctx context.Context) ([]*settingDomain.Setting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*settingDomain.Setting), args.Error(1)
}

func (m *MockSettingUseCase) Update(
	ctx context.Context,
	actorID, key string,
	input *settingDomain.UpdateSettingInput,
	meta authDomain.RequestMeta,
) (*settingDomain.Setting, error) {
	args := m.Called(ctx, actorID, key, input, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settingDomain.Setting), args.Error(1)
}
