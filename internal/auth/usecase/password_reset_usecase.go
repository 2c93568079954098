package usecase

import (
	"context"
	"crypto/subtle"
	"net/url"
	"time"

	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	authService "github.com/allisson/schoolsite/internal/auth/service"
	"github.com/allisson/schoolsite/internal/database"
	apperrors "github.com/allisson/schoolsite/internal/errors"
	outboxDomain "github.com/allisson/schoolsite/internal/outbox/domain"
	customValidation "github.com/allisson/schoolsite/internal/validation"
)

// resetPath is appended to the public base URL to build reset links.
const resetPath = "/admin/reset-password"

// passwordResetUseCase implements PasswordResetUseCase.
type passwordResetUseCase struct {
	txManager   database.TxManager
	adminRepo   AdminRepository
	outboxRepo  OutboxEventRepository
	hasher      authService.PasswordHasher
	tokenIssuer authService.TokenIssuer
	auditLog    AuditLogUseCase
	baseURL     string
}

// RequestReset issues a reset token bound to the admin and the fingerprint of
// the current password hash, then enqueues the reset mail in the same
// transaction as the audit record. Unknown and inactive accounts return nil.
func (p *passwordResetUseCase) RequestReset(
	ctx context.Context,
	email string,
	meta authDomain.RequestMeta,
) error {
	email = customValidation.NormalizeEmail(email)

	admin, err := p.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, authDomain.ErrAdminNotFound) {
			return nil
		}
		return apperrors.Wrap(err, "failed to get admin")
	}
	if !admin.IsActive {
		return nil
	}

	token, expiresAt, err := p.tokenIssuer.IssueResetToken(
		admin.ID,
		authService.PasswordFingerprint(admin.PasswordHash),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to issue reset token")
	}

	event, err := outboxDomain.NewOutboxEvent(
		outboxDomain.EventTypePasswordResetRequested,
		outboxDomain.PasswordResetRequestedPayload{
			AdminID:   admin.ID,
			Email:     admin.Email,
			Name:      admin.Name,
			ResetURL:  p.resetURL(token),
			ExpiresAt: expiresAt,
		},
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to build reset event")
	}

	return p.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := p.outboxRepo.Create(ctx, event); err != nil {
			return apperrors.Wrap(err, "failed to enqueue reset event")
		}
		return p.auditLog.Record(ctx, newAuditLog(
			authDomain.AuditPasswordResetRequested, "", admin.ID, admin.Email, meta, nil,
		))
	})
}

func (p *passwordResetUseCase) resetURL(token string) string {
	return p.baseURL + resetPath + "?token=" + url.QueryEscape(token)
}

// ConfirmReset verifies the reset token, checks the bound admin is still
// active with an unchanged password, and stores the new hash. A completed
// reset also clears any lockout.
func (p *passwordResetUseCase) ConfirmReset(
	ctx context.Context,
	token, newPassword string,
	meta authDomain.RequestMeta,
) error {
	claims, ok := p.tokenIssuer.VerifyResetToken(token)
	if !ok {
		return authDomain.ErrInvalidToken
	}

	admin, err := p.adminRepo.Get(ctx, claims.SubjectID)
	if err != nil {
		if apperrors.Is(err, authDomain.ErrAdminNotFound) {
			return authDomain.ErrInvalidToken
		}
		return apperrors.Wrap(err, "failed to get admin")
	}
	if !admin.IsActive {
		return authDomain.ErrInvalidToken
	}

	fingerprint := authService.PasswordFingerprint(admin.PasswordHash)
	if subtle.ConstantTimeCompare([]byte(fingerprint), []byte(claims.Fingerprint)) != 1 {
		return authDomain.ErrInvalidToken
	}

	if err := validation.Validate(newPassword, validation.Required, customValidation.AdminPassword); err != nil {
		return customValidation.WrapValidationError(err)
	}

	hash, err := p.hasher.Hash(newPassword)
	if err != nil {
		return apperrors.Wrap(err, "failed to hash password")
	}

	admin.PasswordHash = hash
	admin.ClearLockout()
	admin.UpdatedAt = time.Now().UTC()

	return p.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := p.adminRepo.Update(ctx, admin); err != nil {
			return apperrors.Wrap(err, "failed to update admin")
		}
		return p.auditLog.Record(ctx, newAuditLog(
			authDomain.AuditPasswordResetCompleted, admin.ID, admin.ID, admin.Email, meta, nil,
		))
	})
}

// NewPasswordResetUseCase creates a new PasswordResetUseCase. baseURL is the
// public site origin used to build reset links.
func NewPasswordResetUseCase(
	txManager database.TxManager,
	adminRepo AdminRepository,
	outboxRepo OutboxEventRepository,
	hasher authService.PasswordHasher,
	tokenIssuer authService.TokenIssuer,
	auditLog AuditLogUseCase,
	baseURL string,
) PasswordResetUseCase {
	return &passwordResetUseCase{
		txManager:   txManager,
		adminRepo:   adminRepo,
		outboxRepo:  outboxRepo,
		hasher:      hasher,
		tokenIssuer: tokenIssuer,
		auditLog:    auditLog,
		baseURL:     baseURL,
	}
}
