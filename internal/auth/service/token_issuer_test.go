package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestIssuer(t *testing.T, clock *fakeClock) TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer(testSecret, "schoolsite", WithClock(clock.Now))
	require.NoError(t, err)
	return issuer
}

func TestNewTokenIssuer_EmptySecret(t *testing.T) {
	issuer, err := NewTokenIssuer(nil, "schoolsite")
	assert.Error(t, err)
	assert.Nil(t, issuer)
}

func TestTokenIssuer_SessionRoundTrip(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)}
	issuer := newTestIssuer(t, clock)

	token, expiresAt, err := issuer.IssueSessionToken(authDomain.SessionClaims{
		SubjectID: "a1",
		Email:     "x@y.com",
		Role:      authDomain.RoleAdmin,
	})
	require.NoError(t, err)
	assert.WithinDuration(t, clock.now.Add(7*24*time.Hour), expiresAt, 0)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := issuer.VerifySessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a1", claims.SubjectID)
	assert.Equal(t, "x@y.com", claims.Email)
	assert.Equal(t, authDomain.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.TokenID)
	assert.WithinDuration(t, clock.now, claims.IssuedAt, 0)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt, 0)
}

func TestTokenIssuer_SessionTokenIDsAreUnique(t *testing.T) {
	issuer := newTestIssuer(t, &fakeClock{now: time.Now()})
	claims := authDomain.SessionClaims{SubjectID: "a1"}

	first, _, err := issuer.IssueSessionToken(claims)
	require.NoError(t, err)
	second, _, err := issuer.IssueSessionToken(claims)
	require.NoError(t, err)

	c1, err := issuer.VerifySessionToken(first)
	require.NoError(t, err)
	c2, err := issuer.VerifySessionToken(second)
	require.NoError(t, err)
	assert.NotEqual(t, c1.TokenID, c2.TokenID)
}

func TestTokenIssuer_SessionRequiresSubject(t *testing.T) {
	issuer := newTestIssuer(t, &fakeClock{now: time.Now()})

	_, _, err := issuer.IssueSessionToken(authDomain.SessionClaims{Email: "x@y.com"})
	assert.Error(t, err)
}

func TestTokenIssuer_SessionExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)}
	issuer := newTestIssuer(t, clock)

	token, _, err := issuer.IssueSessionToken(authDomain.SessionClaims{SubjectID: "a1"})
	require.NoError(t, err)

	clock.now = clock.now.Add(7*24*time.Hour - time.Second)
	_, err = issuer.VerifySessionToken(token)
	assert.NoError(t, err)

	clock.now = clock.now.Add(2 * time.Second)
	_, err = issuer.VerifySessionToken(token)
	assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
}

func TestTokenIssuer_VerifySessionTokenRejects(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	issuer := newTestIssuer(t, clock)
	valid, _, err := issuer.IssueSessionToken(authDomain.SessionClaims{SubjectID: "a1"})
	require.NoError(t, err)

	otherIssuer, err := NewTokenIssuer([]byte("another-secret-another-secret-xx"), "schoolsite", WithClock(clock.Now))
	require.NoError(t, err)
	foreign, _, err := otherIssuer.IssueSessionToken(authDomain.SessionClaims{SubjectID: "a1"})
	require.NoError(t, err)

	wrongIss, err := NewTokenIssuer(testSecret, "elsewhere", WithClock(clock.Now))
	require.NoError(t, err)
	wrongIssuerToken, _, err := wrongIss.IssueSessionToken(authDomain.SessionClaims{SubjectID: "a1"})
	require.NoError(t, err)

	resetToken, _, err := issuer.IssueResetToken("a1", "fp")
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, sessionTokenClaims{
		Type: authDomain.TokenTypeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "schoolsite",
			Subject:   "a1",
			ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
		},
	}).SignedString(testSecret)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, sessionTokenClaims{
		Type: authDomain.TokenTypeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "schoolsite",
			Subject:   "a1",
			ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionTokenClaims{
		Type:             authDomain.TokenTypeSession,
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "schoolsite", Subject: "a1"},
	}).SignedString(testSecret)
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"tampered payload", tampered},
		{"signed with another secret", foreign},
		{"wrong issuer", wrongIssuerToken},
		{"reset token used as session", resetToken},
		{"unexpected algorithm", hs512},
		{"alg none", unsigned},
		{"missing expiry", noExpiry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := issuer.VerifySessionToken(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
		})
	}
}

func TestTokenIssuer_ResetRoundTrip(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)}
	issuer := newTestIssuer(t, clock)

	token, expiresAt, err := issuer.IssueResetToken("a1", "fingerprint")
	require.NoError(t, err)
	assert.WithinDuration(t, clock.now.Add(time.Hour), expiresAt, 0)

	claims, ok := issuer.VerifyResetToken(token)
	require.True(t, ok)
	assert.Equal(t, "a1", claims.SubjectID)
	assert.Equal(t, "fingerprint", claims.Fingerprint)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt, 0)
}

func TestTokenIssuer_ResetExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)}
	issuer := newTestIssuer(t, clock)

	token, _, err := issuer.IssueResetToken("a1", "fp")
	require.NoError(t, err)

	clock.now = clock.now.Add(time.Hour + time.Second)
	claims, ok := issuer.VerifyResetToken(token)
	assert.False(t, ok)
	assert.Nil(t, claims)
}

func TestTokenIssuer_VerifyResetTokenRejects(t *testing.T) {
	issuer := newTestIssuer(t, &fakeClock{now: time.Now()})

	session, _, err := issuer.IssueSessionToken(authDomain.SessionClaims{SubjectID: "a1"})
	require.NoError(t, err)

	for _, token := range []string{"", "garbage", session} {
		_, ok := issuer.VerifyResetToken(token)
		assert.False(t, ok)
	}

	_, _, err = issuer.IssueResetToken("", "fp")
	assert.Error(t, err)
}
