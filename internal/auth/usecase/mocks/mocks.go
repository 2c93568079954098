// Package mocks provides testify mocks of the auth use cases for handler and
// decorator tests.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	authUseCase "github.com/allisson/schoolsite/internal/auth/usecase"
)

var (
	_ authUseCase.SessionUseCase       = (*MockSessionUseCase)(nil)
	_ authUseCase.PasswordResetUseCase = (*MockPasswordResetUseCase)(nil)
	_ authUseCase.AdminUseCase         = (*MockAdminUseCase)(nil)
	_ authUseCase.AuditLogUseCase      = (*MockAuditLogUseCase)(nil)
)

// MockSessionUseCase is a mock implementation of SessionUseCase.
type MockSessionUseCase struct {
	mock.Mock
}

func (m *MockSessionUseCase) Login(
	ctx context.Context,
	email, password string,
	meta authDomain.RequestMeta,
) (*authDomain.LoginOutput, error) {
	args := m.Called(ctx, email, password, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.LoginOutput), args.Error(1)
}

func (m *MockSessionUseCase) Authenticate(ctx context.Context, token string) (*authDomain.Admin, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Admin), args.Error(1)
}

func (m *MockSessionUseCase) Logout(ctx context.Context, token string, meta authDomain.RequestMeta) error {
	args := m.Called(ctx, token, meta)
	return args.Error(0)
}

// MockPasswordResetUseCase is a mock implementation of PasswordResetUseCase.
type MockPasswordResetUseCase struct {
	mock.Mock
}

func (m *MockPasswordResetUseCase) RequestReset(
	ctx context.Context,
	email string,
	meta authDomain.RequestMeta,
) error {
	args := m.Called(ctx, email, meta)
	return args.Error(0)
}

func (m *MockPasswordResetUseCase) ConfirmReset(
	ctx context.Context,
	token, newPassword string,
	meta authDomain.RequestMeta,
) error {
	args := m.Called(ctx, token, newPassword, meta)
	return args.Error(0)
}

// MockAdminUseCase is a mock implementation of AdminUseCase.
type MockAdminUseCase struct {
	mock.Mock
}

func (m *MockAdminUseCase) Create(
	ctx context.Context,
	actorID string,
	input *authDomain.CreateAdminInput,
	meta authDomain.RequestMeta,
) (*authDomain.Admin, error) {
	args := m.Called(ctx, actorID, input, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Admin), args.Error(1)
}

func (m *MockAdminUseCase) Update(
	ctx context.Context,
	actorID, id string,
	input *authDomain.UpdateAdminInput,
	meta authDomain.RequestMeta,
) (*authDomain.Admin, error) {
	args := m.Called(ctx, actorID, id, input, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Admin), args.Error(1)
}

func (m *MockAdminUseCase) Get(ctx context.Context, id string) (*authDomain.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Admin), args.Error(1)
}

func (m *MockAdminUseCase) List(ctx context.Context, offset, limit int) ([]*authDomain.Admin, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.Admin), args.Error(1)
}

func (m *MockAdminUseCase) Delete(ctx context.Context, actorID, id string, meta authDomain.RequestMeta) error {
	args := m.Called(ctx, actorID, id, meta)
	return args.Error(0)
}

// MockAuditLogUseCase is a mock implementation of AuditLogUseCase.
type MockAuditLogUseCase struct {
	mock.Mock
}

func (m *MockAuditLogUseCase) Record(ctx context.Context, auditLog *authDomain.AuditLog) error {
	args := m.Called(ctx, auditLog)
	return args.Error(0)
}

func (m *MockAuditLogUseCase) List(
	ctx context.Context,
	offset, limit int,
	filter authDomain.AuditLogFilter,
) ([]*authDomain.AuditLog, error) {
	args := m.Called(ctx, offset, limit, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.AuditLog), args.Error(1)
}

func (m *MockAuditLogUseCase) VerifyBatch(
	ctx context.Context,
	start, end time.Time,
) (*authUseCase.VerificationReport, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authUseCase.VerificationReport), args.Error(1)
}

func (m *MockAuditLogUseCase) DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error) {
	args := m.Called(ctx, days, dryRun)
	return args.Get(0).(int64), args.Error(1)
}
