// Package service provides the technical building blocks of admin
// authentication: password hashing, signed tokens, revocation and audit signing.
package service

import (
	"context"
	"time"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
)

// PasswordHasher hashes and verifies admin passwords.
type PasswordHasher interface {
	// Hash returns a salted one-way hash of plain. Each call uses a fresh salt.
	Hash(plain string) (string, error)

	// Verify reports whether plain matches hash. Malformed hashes verify as false.
	Verify(plain, hash string) bool
}

// TokenIssuer signs and verifies admin session and password reset tokens.
type TokenIssuer interface {
	// IssueSessionToken signs claims with a SessionTokenTTL expiry.
	IssueSessionToken(claims authDomain.SessionClaims) (token string, expiresAt time.Time, err error)

	// VerifySessionToken returns the decoded claims or ErrInvalidToken on any failure.
	VerifySessionToken(token string) (*authDomain.SessionClaims, error)

	// IssueResetToken signs a reset token bound to subjectID and the fingerprint
	// of the subject's current password hash, with a ResetTokenTTL expiry.
	IssueResetToken(subjectID, fingerprint string) (token string, expiresAt time.Time, err error)

	// VerifyResetToken reports whether token is a valid, unexpired reset token.
	VerifyResetToken(token string) (*authDomain.ResetClaims, bool)
}

// Denylist records revoked session token ids until they expire.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuditSigner signs audit log rows so tampering can be detected later.
type AuditSigner interface {
	Sign(log *authDomain.AuditLog) ([]byte, error)
	Verify(log *authDomain.AuditLog) error
}
