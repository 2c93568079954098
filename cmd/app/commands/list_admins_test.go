package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	authMocks "github.com/allisson/schoolsite/internal/auth/usecase/mocks"
)

func TestRunListAdmins(t *testing.T) {
	ctx := context.Background()
	admins := []*authDomain.Admin{
		{ID: "a1", Email: "principal@school.example.com", Name: "Principal", Role: authDomain.RoleSuperAdmin, IsActive: true},
		{ID: "a2", Email: "office@school.example.com", Name: "Office", Role: authDomain.RoleEditor},
	}

	t.Run("table", func(t *testing.T) {
		mockUseCase := &authMocks.MockAdminUseCase{}
		mockUseCase.On("List", ctx, 0, 50).Return(admins, nil).Once()

		var out bytes.Buffer
		require.NoError(t, RunListAdmins(ctx, mockUseCase, &out, 0, 50, "text"))

		assert.Contains(t, out.String(), "EMAIL")
		assert.Contains(t, out.String(), "principal@school.example.com")
		assert.Contains(t, out.String(), "editor")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json", func(t *testing.T) {
		mockUseCase := &authMocks.MockAdminUseCase{}
		mockUseCase.On("List", ctx, 10, 5).Return(admins, nil).Once()

		var out bytes.Buffer
		require.NoError(t, RunListAdmins(ctx, mockUseCase, &out, 10, 5, "json"))

		var result []adminSummary
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		require.Len(t, result, 2)
		assert.False(t, result[1].IsActive)
	})

	t.Run("empty", func(t *testing.T) {
		mockUseCase := &authMocks.MockAdminUseCase{}
		mockUseCase.On("List", ctx, 0, 50).Return([]*authDomain.Admin{}, nil).Once()

		var out bytes.Buffer
		require.NoError(t, RunListAdmins(ctx, mockUseCase, &out, 0, 50, "text"))
		assert.Contains(t, out.String(), "No admins found")
	})

	t.Run("invalid-paging", func(t *testing.T) {
		err := RunListAdmins(ctx, &authMocks.MockAdminUseCase{}, &bytes.Buffer{}, -1, 50, "text")
		assert.Error(t, err)
	})

	t.Run("use-case-error", func(t *testing.T) {
		mockUseCase := &authMocks.MockAdminUseCase{}
		mockUseCase.On("List", ctx, 0, 50).Return(nil, errors.New("db down")).Once()

		err := RunListAdmins(ctx, mockUseCase, &bytes.Buffer{}, 0, 50, "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list admins")
	})
}
