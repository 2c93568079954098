package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	authService "github.com/allisson/schoolsite/internal/auth/service"
	"github.com/allisson/schoolsite/internal/database"
	apperrors "github.com/allisson/schoolsite/internal/errors"
	customValidation "github.com/allisson/schoolsite/internal/validation"
)

// adminUseCase implements AdminUseCase.
type adminUseCase struct {
	txManager database.TxManager
	adminRepo AdminRepository
	hasher    authService.PasswordHasher
	auditLog  AuditLogUseCase
}

func validateRole(role authDomain.Role) error {
	if !role.Valid() {
		return authDomain.ErrInvalidRole
	}
	return nil
}

func validatePassword(password string) error {
	err := validation.Validate(password, validation.Required, customValidation.AdminPassword)
	return customValidation.WrapValidationError(err)
}

// Create validates the input, hashes the password and stores a new active admin.
func (a *adminUseCase) Create(
	ctx context.Context,
	actorID string,
	input *authDomain.CreateAdminInput,
	meta authDomain.RequestMeta,
) (*authDomain.Admin, error) {
	email := customValidation.NormalizeEmail(input.Email)

	err := validation.Errors{
		"email": validation.Validate(email, validation.Required, customValidation.Email),
		"name":  validation.Validate(input.Name, validation.Required, customValidation.NotBlank),
	}.Filter()
	if err != nil {
		return nil, customValidation.WrapValidationError(err)
	}
	if err := validateRole(input.Role); err != nil {
		return nil, err
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := a.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	now := time.Now().UTC()
	admin := &authDomain.Admin{
		ID:           uuid.Must(uuid.NewV7()).String(),
		Email:        email,
		PasswordHash: hash,
		Name:         input.Name,
		Role:         input.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := a.adminRepo.Create(ctx, admin); err != nil {
			return err
		}
		return a.auditLog.Record(ctx, newAuditLog(
			authDomain.AuditAdminCreated, actorID, admin.ID, admin.Email, meta,
			map[string]any{"role": string(admin.Role)},
		))
	})
	if err != nil {
		return nil, err
	}

	return admin, nil
}

// Update applies the non-nil fields of input. An admin cannot deactivate
// or demote their own account.
func (a *adminUseCase) Update(
	ctx context.Context,
	actorID, id string,
	input *authDomain.UpdateAdminInput,
	meta authDomain.RequestMeta,
) (*authDomain.Admin, error) {
	admin, err := a.adminRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := make([]string, 0, 4)

	if input.Name != nil {
		if err := validation.Validate(*input.Name, validation.Required, customValidation.NotBlank); err != nil {
			return nil, customValidation.WrapValidationError(err)
		}
		admin.Name = *input.Name
		changed = append(changed, "name")
	}

	if input.Role != nil && *input.Role != admin.Role {
		if err := validateRole(*input.Role); err != nil {
			return nil, err
		}
		if actorID == admin.ID {
			return nil, authDomain.ErrCannotModifySelf
		}
		admin.Role = *input.Role
		changed = append(changed, "role")
	}

	if input.IsActive != nil && *input.IsActive != admin.IsActive {
		if actorID == admin.ID && !*input.IsActive {
			return nil, authDomain.ErrCannotModifySelf
		}
		admin.IsActive = *input.IsActive
		changed = append(changed, "is_active")
	}

	if input.Password != nil {
		if err := validatePassword(*input.Password); err != nil {
			return nil, err
		}
		hash, err := a.hasher.Hash(*input.Password)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to hash password")
		}
		admin.PasswordHash = hash
		admin.ClearLockout()
		changed = append(changed, "password")
	}

	if len(changed) == 0 {
		return admin, nil
	}
	admin.UpdatedAt = time.Now().UTC()

	err = a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := a.adminRepo.Update(ctx, admin); err != nil {
			return err
		}
		return a.auditLog.Record(ctx, newAuditLog(
			authDomain.AuditAdminUpdated, actorID, admin.ID, admin.Email, meta,
			map[string]any{"fields": changed},
		))
	})
	if err != nil {
		return nil, err
	}

	return admin, nil
}

// Get retrieves an admin by ID.
func (a *adminUseCase) Get(ctx context.Context, id string) (*authDomain.Admin, error) {
	return a.adminRepo.Get(ctx, id)
}

// List returns admins ordered by email.
func (a *adminUseCase) List(ctx context.Context, offset, limit int) ([]*authDomain.Admin, error) {
	admins, err := a.adminRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list admins")
	}
	return admins, nil
}

// Delete soft-deletes an admin by clearing IsActive. Tokens already issued
// to the account stop working at the next request.
func (a *adminUseCase) Delete(ctx context.Context, actorID, id string, meta authDomain.RequestMeta) error {
	if actorID == id {
		return authDomain.ErrCannotModifySelf
	}

	admin, err := a.adminRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	admin.IsActive = false
	admin.UpdatedAt = time.Now().UTC()

	return a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := a.adminRepo.Update(ctx, admin); err != nil {
			return err
		}
		return a.auditLog.Record(ctx, newAuditLog(
			authDomain.AuditAdminDeleted, actorID, admin.ID, admin.Email, meta, nil,
		))
	})
}

// NewAdminUseCase creates a new AdminUseCase with the provided dependencies.
func NewAdminUseCase(
	txManager database.TxManager,
	adminRepo AdminRepository,
	hasher authService.PasswordHasher,
	auditLog AuditLogUseCase,
) AdminUseCase {
	return &adminUseCase{
		txManager: txManager,
		adminRepo: adminRepo,
		hasher:    hasher,
		auditLog:  auditLog,
	}
}
