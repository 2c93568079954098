// Package mocks provides a testify mock of the contact use case.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	contactDomain "github.com/allisson/schoolsite/internal/contact/domain"
	contactUseCase "github.com/allisson/schoolsite/internal/contact/usecase"
)

var _ contactUseCase.ContactUseCase = (*MockContactUseCase)(nil)

// MockContactUseCase is a mock implementation of ContactUseCase.
type MockContactUseCase struct {
	mock.Mock
}

func (m *MockContactUseCase) Submit(ctx context.Context, msg *contactDomain.Message) error {
	return m.Called(ctx, msg).Error(0)
}
