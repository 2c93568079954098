package commands

import (
	"context"
	"fmt"
	"log/slog"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	authUseCase "github.com/allisson/schoolsite/internal/auth/usecase"
)

// RunCreateAdmin creates an admin account from the command line. It is the
// only way to create the first superadmin. When password is empty it is read
// twice from io.Reader.
//
// Requirements: Database must be migrated and accessible.
func RunCreateAdmin(
	ctx context.Context,
	adminUseCase authUseCase.AdminUseCase,
	logger *slog.Logger,
	io IOTuple,
	email, name, roleName, password string,
	format string,
) error {
	role, err := parseRole(roleName)
	if err != nil {
		return err
	}

	if password == "" {
		password, err = promptPassword(io)
		if err != nil {
			return err
		}
	}

	logger.Info("creating admin", slog.String("email", email), slog.String("role", string(role)))

	admin, err := adminUseCase.Create(ctx, "", &authDomain.CreateAdminInput{
		Email:    email,
		Password: password,
		Name:     name,
		Role:     role,
	}, authDomain.RequestMeta{UserAgent: "cli"})
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	if err := outputAdmin(io.Writer, "Admin created successfully!", admin, format); err != nil {
		return err
	}

	logger.Info("admin created successfully",
		slog.String("admin_id", admin.ID),
		slog.String("role", string(admin.Role)),
	)
	return nil
}
