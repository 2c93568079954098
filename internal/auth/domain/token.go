package domain

import "time"

// Token lifetimes.
const (
	SessionTokenTTL = 7 * 24 * time.Hour
	ResetTokenTTL   = time.Hour
)

// TokenType is carried in the typ claim so a token minted for one purpose
// cannot be replayed for another.
type TokenType string

const (
	TokenTypeSession TokenType = "session"
	TokenTypeReset   TokenType = "reset"
)

// SessionClaims is the identity embedded in an admin session token.
type SessionClaims struct {
	SubjectID string
	Email     string
	Role      Role
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ResetClaims is the payload of a password reset token. Fingerprint binds the
// token to the password hash that was current when it was issued.
type ResetClaims struct {
	SubjectID   string
	Fingerprint string
	TokenID     string
	ExpiresAt   time.Time
}

// LoginOutput is returned by a successful login.
type LoginOutput struct {
	Token     string
	ExpiresAt time.Time
	Admin     *Admin
}

// RequestMeta carries request attributes recorded in the audit log.
type RequestMeta struct {
	RequestID string
	IPAddress string
	UserAgent string
}
