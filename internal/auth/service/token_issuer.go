package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
	apperrors "github.com/allisson/schoolsite/internal/errors"
)

type sessionTokenClaims struct {
	Email string               `json:"email"`
	Role  authDomain.Role      `json:"role"`
	Type  authDomain.TokenType `json:"typ"`
	jwt.RegisteredClaims
}

type resetTokenClaims struct {
	Fingerprint string               `json:"fpr"`
	Type        authDomain.TokenType `json:"typ"`
	jwt.RegisteredClaims
}

// TokenIssuerOption customizes a TokenIssuer.
type TokenIssuerOption func(*jwtTokenIssuer)

// WithClock replaces time.Now for issuing and validating tokens.
func WithClock(now func() time.Time) TokenIssuerOption {
	return func(i *jwtTokenIssuer) {
		i.now = now
	}
}

// WithTTLs overrides the session and reset token lifetimes.
func WithTTLs(session, reset time.Duration) TokenIssuerOption {
	return func(i *jwtTokenIssuer) {
		i.sessionTTL = session
		i.resetTTL = reset
	}
}

type jwtTokenIssuer struct {
	secret     []byte
	issuer     string
	now        func() time.Time
	sessionTTL time.Duration
	resetTTL   time.Duration
	parser     *jwt.Parser
}

// NewTokenIssuer creates an HS256 TokenIssuer. The secret is required.
func NewTokenIssuer(secret []byte, issuer string, opts ...TokenIssuerOption) (TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, apperrors.New("token signing secret is empty")
	}

	i := &jwtTokenIssuer{
		secret:     secret,
		issuer:     issuer,
		now:        time.Now,
		sessionTTL: authDomain.SessionTokenTTL,
		resetTTL:   authDomain.ResetTokenTTL,
	}
	for _, opt := range opts {
		opt(i)
	}

	i.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)

	return i, nil
}

func (i *jwtTokenIssuer) registered(subject string, ttl time.Duration) (jwt.RegisteredClaims, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return jwt.RegisteredClaims{}, apperrors.Wrap(err, "failed to generate token id")
	}

	now := i.now()
	return jwt.RegisteredClaims{
		Issuer:    i.issuer,
		Subject:   subject,
		ID:        id.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}, nil
}

func (i *jwtTokenIssuer) sign(claims jwt.Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

func (i *jwtTokenIssuer) keyFunc(*jwt.Token) (any, error) {
	return i.secret, nil
}

func (i *jwtTokenIssuer) IssueSessionToken(claims authDomain.SessionClaims) (string, time.Time, error) {
	if claims.SubjectID == "" {
		return "", time.Time{}, apperrors.New("session token requires a subject")
	}

	registered, err := i.registered(claims.SubjectID, i.sessionTTL)
	if err != nil {
		return "", time.Time{}, err
	}

	token, err := i.sign(sessionTokenClaims{
		Email:            claims.Email,
		Role:             claims.Role,
		Type:             authDomain.TokenTypeSession,
		RegisteredClaims: registered,
	})
	if err != nil {
		return "", time.Time{}, err
	}

	return token, registered.ExpiresAt.Time, nil
}

func (i *jwtTokenIssuer) VerifySessionToken(token string) (*authDomain.SessionClaims, error) {
	var claims sessionTokenClaims
	parsed, err := i.parser.ParseWithClaims(token, &claims, i.keyFunc)
	if err != nil || !parsed.Valid {
		return nil, authDomain.ErrInvalidToken
	}
	if claims.Type != authDomain.TokenTypeSession || claims.Subject == "" {
		return nil, authDomain.ErrInvalidToken
	}

	out := &authDomain.SessionClaims{
		SubjectID: claims.Subject,
		Email:     claims.Email,
		Role:      claims.Role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}

func (i *jwtTokenIssuer) IssueResetToken(subjectID, fingerprint string) (string, time.Time, error) {
	if subjectID == "" {
		return "", time.Time{}, apperrors.New("reset token requires a subject")
	}

	registered, err := i.registered(subjectID, i.resetTTL)
	if err != nil {
		return "", time.Time{}, err
	}

	token, err := i.sign(resetTokenClaims{
		Fingerprint:      fingerprint,
		Type:             authDomain.TokenTypeReset,
		RegisteredClaims: registered,
	})
	if err != nil {
		return "", time.Time{}, err
	}

	return token, registered.ExpiresAt.Time, nil
}

func (i *jwtTokenIssuer) VerifyResetToken(token string) (*authDomain.ResetClaims, bool) {
	var claims resetTokenClaims
	parsed, err := i.parser.ParseWithClaims(token, &claims, i.keyFunc)
	if err != nil || !parsed.Valid {
		return nil, false
	}
	if claims.Type != authDomain.TokenTypeReset || claims.Subject == "" {
		return nil, false
	}

	return &authDomain.ResetClaims{
		SubjectID:   claims.Subject,
		Fingerprint: claims.Fingerprint,
		TokenID:     claims.ID,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, true
}
