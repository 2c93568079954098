package commands

import (
	"context"
	"fmt"
	"log/slog"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	authUseCase "github.com/allisson/schoolsite/internal/auth/usecase"
)

// UpdateAdminOptions holds the fields set on the command line. Nil fields are
// left unchanged.
type UpdateAdminOptions struct {
	Name          *string
	Role          *string
	IsActive      *bool
	ResetPassword bool
}

// RunUpdateAdmin updates an existing admin. With ResetPassword the new
// password is read twice from io.Reader. Reactivating an account is the
// recovery path when every superadmin is locked out of the web panel.
//
// Requirements: Database must be migrated and the admin must exist.
func RunUpdateAdmin(
	ctx context.Context,
	adminUseCase authUseCase.AdminUseCase,
	logger *slog.Logger,
	io IOTuple,
	id string,
	opts UpdateAdminOptions,
	format string,
) error {
	input := &authDomain.UpdateAdminInput{
		Name:     opts.Name,
		IsActive: opts.IsActive,
	}

	if opts.Role != nil {
		role, err := parseRole(*opts.Role)
		if err != nil {
			return err
		}
		input.Role = &role
	}

	if opts.ResetPassword {
		password, err := promptPassword(io)
		if err != nil {
			return err
		}
		input.Password = &password
	}

	if input.Name == nil && input.Role == nil && input.IsActive == nil && input.Password == nil {
		return fmt.Errorf("nothing to update: set at least one of --name, --role, --active or --reset-password")
	}

	logger.Info("updating admin", slog.String("admin_id", id))

	admin, err := adminUseCase.Update(ctx, "", id, input, authDomain.RequestMeta{UserAgent: "cli"})
	if err != nil {
		return fmt.Errorf("failed to update admin: %w", err)
	}

	if err := outputAdmin(io.Writer, "Admin updated successfully!", admin, format); err != nil {
		return err
	}

	logger.Info("admin updated successfully", slog.String("admin_id", admin.ID))
	return nil
}
