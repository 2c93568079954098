package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	authService "github.com/allisson/schoolsite/internal/auth/service"
	"github.com/allisson/schoolsite/internal/database"
	apperrors "github.com/allisson/schoolsite/internal/errors"
	customValidation "github.com/allisson/schoolsite/internal/validation"
)

// LockoutConfig controls account lockout after repeated failed logins.
type LockoutConfig struct {
	MaxAttempts int
	Duration    time.Duration
}

// sessionUseCase implements SessionUseCase.
type sessionUseCase struct {
	txManager   database.TxManager
	adminRepo   AdminRepository
	hasher      authService.PasswordHasher
	tokenIssuer authService.TokenIssuer
	denylist    authService.Denylist
	auditLog    AuditLogUseCase
	lockout     LockoutConfig
	// decoyHash is compared against on unknown emails so both failure paths
	// pay for one bcrypt comparison.
	decoyHash string
}

// decoyPassword only seeds decoyHash; no admin can log in with it.
const decoyPassword = "schoolsite-login-timing-decoy"

// Login authenticates an admin by email and password.
//
// A lockout window that has already elapsed is cleared before the password is
// checked, so the counter starts over. The inactive check runs after password
// verification so a disabled account is only revealed to someone holding its
// password.
func (s *sessionUseCase) Login(
	ctx context.Context,
	email, password string,
	meta authDomain.RequestMeta,
) (*authDomain.LoginOutput, error) {
	email = customValidation.NormalizeEmail(email)

	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, authDomain.ErrAdminNotFound) {
			s.hasher.Verify(password, s.decoyHash)
			failed := newAuditLog(authDomain.AuditLoginFailed, "", "", email, meta,
				map[string]any{"reason": "unknown_email"})
			if err := s.auditLog.Record(ctx, failed); err != nil {
				return nil, err
			}
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(err, "failed to get admin")
	}

	now := time.Now().UTC()
	if admin.IsLocked(now) {
		return nil, authDomain.ErrAdminLocked
	}
	if admin.LockedUntil != nil {
		admin.ClearLockout()
	}

	if !s.hasher.Verify(password, admin.PasswordHash) {
		if err := s.recordFailedAttempt(ctx, admin, now, meta); err != nil {
			return nil, err
		}
		return nil, authDomain.ErrInvalidCredentials
	}

	if !admin.IsActive {
		return nil, authDomain.ErrAdminInactive
	}

	token, expiresAt, err := s.tokenIssuer.IssueSessionToken(authDomain.SessionClaims{
		SubjectID: admin.ID,
		Email:     admin.Email,
		Role:      admin.Role,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to issue session token")
	}

	admin.ClearLockout()
	admin.LastLoginAt = &now
	admin.UpdatedAt = now

	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.adminRepo.Update(ctx, admin); err != nil {
			return err
		}
		return s.auditLog.Record(ctx, newAuditLog(
			authDomain.AuditLoginSucceeded, admin.ID, admin.ID, admin.Email, meta, nil,
		))
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to record login")
	}

	return &authDomain.LoginOutput{
		Token:     token,
		ExpiresAt: expiresAt,
		Admin:     admin,
	}, nil
}

// recordFailedAttempt increments the failure counter and opens a lockout
// window once MaxAttempts is reached.
func (s *sessionUseCase) recordFailedAttempt(
	ctx context.Context,
	admin *authDomain.Admin,
	now time.Time,
	meta authDomain.RequestMeta,
) error {
	admin.FailedAttempts++
	admin.UpdatedAt = now

	metadata := map[string]any{
		"reason":          "wrong_password",
		"failed_attempts": admin.FailedAttempts,
	}
	if admin.FailedAttempts >= s.lockout.MaxAttempts {
		lockedUntil := now.Add(s.lockout.Duration)
		admin.LockedUntil = &lockedUntil
		metadata["locked"] = true
	}

	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.adminRepo.Update(ctx, admin); err != nil {
			return err
		}
		return s.auditLog.Record(ctx, newAuditLog(
			authDomain.AuditLoginFailed, "", admin.ID, admin.Email, meta, metadata,
		))
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to record failed login")
	}
	return nil
}

// Authenticate runs token verification, revocation and identity re-resolution
// in that order.
func (s *sessionUseCase) Authenticate(ctx context.Context, token string) (*authDomain.Admin, error) {
	claims, err := s.tokenIssuer.VerifySessionToken(token)
	if err != nil {
		return nil, authDomain.ErrInvalidToken
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to check token revocation")
	}
	if revoked {
		return nil, authDomain.ErrInvalidToken
	}

	admin, err := s.adminRepo.Get(ctx, claims.SubjectID)
	if err != nil {
		if apperrors.Is(err, authDomain.ErrAdminNotFound) {
			return nil, authDomain.ErrAccountUnavailable
		}
		return nil, apperrors.Wrap(err, "failed to get admin")
	}

	if !admin.IsActive {
		return nil, authDomain.ErrAccountUnavailable
	}

	return admin, nil
}

// Logout denylists the token until its natural expiry. With the no-op
// denylist the token stays valid and logout only discards the client copy.
func (s *sessionUseCase) Logout(ctx context.Context, token string, meta authDomain.RequestMeta) error {
	claims, err := s.tokenIssuer.VerifySessionToken(token)
	if err != nil {
		return authDomain.ErrInvalidToken
	}

	if err := s.denylist.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return apperrors.Wrap(err, "failed to revoke token")
	}

	return s.auditLog.Record(ctx, newAuditLog(
		authDomain.AuditLogout, claims.SubjectID, claims.SubjectID, claims.Email, meta,
		map[string]any{"token_id": claims.TokenID},
	))
}

// NewSessionUseCase creates a new SessionUseCase with the provided dependencies.
func NewSessionUseCase(
	txManager database.TxManager,
	adminRepo AdminRepository,
	hasher authService.PasswordHasher,
	tokenIssuer authService.TokenIssuer,
	denylist authService.Denylist,
	auditLog AuditLogUseCase,
	lockout LockoutConfig,
) SessionUseCase {
	if lockout.MaxAttempts < 1 {
		lockout.MaxAttempts = 1
	}
	// A fixed short input cannot exceed bcrypt's limit, so Hash does not fail here.
	decoyHash, _ := hasher.Hash(decoyPassword)
	return &sessionUseCase{
		txManager:   txManager,
		adminRepo:   adminRepo,
		hasher:      hasher,
		tokenIssuer: tokenIssuer,
		denylist:    denylist,
		auditLog:    auditLog,
		lockout:     lockout,
		decoyHash:   decoyHash,
	}
}
