package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	authMocks "github.com/allisson/schoolsite/internal/auth/usecase/mocks"
)

func TestRunUpdateAdmin(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	adminID := "0192f5c0-0000-7000-8000-000000000002"
	updated := &authDomain.Admin{
		ID:       adminID,
		Email:    "edna@school.example.com",
		Name:     "Edna Krabappel",
		Role:     authDomain.RoleAdmin,
		IsActive: true,
	}

	t.Run("reactivate-and-change-role", func(t *testing.T) {
		mockUseCase := &authMocks.MockAdminUseCase{}
		mockUseCase.On("Update", ctx, "", adminID, mock.MatchedBy(func(input *authDomain.UpdateAdminInput) bool {
			return input.Role != nil && *input.Role == authDomain.RoleAdmin &&
				input.IsActive != nil && *input.IsActive &&
				input.Name == nil && input.Password == nil
		}), authDomain.RequestMeta{UserAgent: "cli"}).Return(updated, nil)

		role := "admin"
		active := true
		var out bytes.Buffer
		err := RunUpdateAdmin(ctx, mockUseCase, logger, IOTuple{Writer: &out}, adminID,
			UpdateAdminOptions{Role: &role, IsActive: &active}, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Admin updated successfully!")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("reset-password", func(t *testing.T) {
		mockUseCase := &authMocks.MockAdminUseCase{}
		mockUseCase.On("Update", ctx, "", adminID, mock.MatchedBy(func(input *authDomain.UpdateAdminInput) bool {
			return input.Password != nil && *input.Password == "N3w!Passw0rd99"
		}), mock.Anything).Return(updated, nil)

		err := RunUpdateAdmin(ctx, mockUseCase, logger,
			IOTuple{Reader: strings.NewReader("N3w!Passw0rd99\nN3w!Passw0rd99\n"), Writer: &bytes.Buffer{}},
			adminID, UpdateAdminOptions{ResetPassword: true}, "json")

		require.NoError(t, err)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("nothing-to-update", func(t *testing.T) {
		mockUseCase := &authMocks.MockAdminUseCase{}

		err := RunUpdateAdmin(ctx, mockUseCase, logger, IOTuple{Writer: &bytes.Buffer{}}, adminID,
			UpdateAdminOptions{}, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "nothing to update")
		mockUseCase.AssertNotCalled(t, "Update")
	})

	t.Run("not-found", func(t *testing.T) {
		mockUseCase := &authMocks.MockAdminUseCase{}
		mockUseCase.On("Update", ctx, "", adminID, mock.Anything, mock.Anything).
			Return(nil, authDomain.ErrAdminNotFound)

		name := "Edna"
		err := RunUpdateAdmin(ctx, mockUseCase, logger, IOTuple{Writer: &bytes.Buffer{}}, adminID,
			UpdateAdminOptions{Name: &name}, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to update admin")
	})
}
