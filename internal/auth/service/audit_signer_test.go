package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
)

func newTestAuditLog() *authDomain.AuditLog {
	return &authDomain.AuditLog{
		ID:        uuid.Must(uuid.NewV7()),
		RequestID: uuid.Must(uuid.NewV7()).String(),
		Event:     authDomain.AuditLoginSucceeded,
		ActorID:   "a1",
		SubjectID: "a1",
		Email:     "x@y.com",
		IPAddress: "203.0.113.7",
		UserAgent: "Mozilla/5.0",
		Metadata:  map[string]any{"role": "admin"},
		CreatedAt: time.Date(2026, 9, 1, 8, 0, 0, 123, time.UTC),
	}
}

func signLog(t *testing.T, signer AuditSigner, log *authDomain.AuditLog) {
	t.Helper()
	sig, err := signer.Sign(log)
	require.NoError(t, err)
	log.Signature = sig
	log.KeyID = authDomain.AuditSignatureKeyID
	log.IsSigned = true
}

func TestNewAuditSigner_EmptySecret(t *testing.T) {
	signer, err := NewAuditSigner(nil)
	assert.Error(t, err)
	assert.Nil(t, signer)
}

func TestAuditSigner_SignAndVerify(t *testing.T) {
	signer, err := NewAuditSigner(testSecret)
	require.NoError(t, err)

	log := newTestAuditLog()
	signLog(t, signer, log)

	assert.Len(t, log.Signature, 32)
	assert.NoError(t, signer.Verify(log))
}

func TestAuditSigner_VerifyDetectsTampering(t *testing.T) {
	signer, err := NewAuditSigner(testSecret)
	require.NoError(t, err)

	tests := []struct {
		name   string
		tamper func(log *authDomain.AuditLog)
	}{
		{"event", func(l *authDomain.AuditLog) { l.Event = authDomain.AuditLoginFailed }},
		{"actor", func(l *authDomain.AuditLog) { l.ActorID = "a2" }},
		{"subject", func(l *authDomain.AuditLog) { l.SubjectID = "a2" }},
		{"email", func(l *authDomain.AuditLog) { l.Email = "z@y.com" }},
		{"ip", func(l *authDomain.AuditLog) { l.IPAddress = "198.51.100.1" }},
		{"metadata", func(l *authDomain.AuditLog) { l.Metadata["role"] = "superadmin" }},
		{"created at", func(l *authDomain.AuditLog) { l.CreatedAt = l.CreatedAt.Add(time.Nanosecond) }},
		{"signature", func(l *authDomain.AuditLog) { l.Signature[0] ^= 0xff }},
		{"unsigned", func(l *authDomain.AuditLog) { l.IsSigned = false }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := newTestAuditLog()
			signLog(t, signer, log)

			tt.tamper(log)

			assert.ErrorIs(t, signer.Verify(log), authDomain.ErrSignatureInvalid)
		})
	}
}

func TestAuditSigner_FieldBoundariesAreUnambiguous(t *testing.T) {
	signer, err := NewAuditSigner(testSecret)
	require.NoError(t, err)

	a := newTestAuditLog()
	a.ActorID, a.SubjectID = "ab", "c"
	b := newTestAuditLog()
	b.ID = a.ID
	b.ActorID, b.SubjectID = "a", "bc"

	sigA, err := signer.Sign(a)
	require.NoError(t, err)
	sigB, err := signer.Sign(b)
	require.NoError(t, err)
	assert.NotEqual(t, sigA, sigB)
}

func TestAuditSigner_DifferentSecrets(t *testing.T) {
	first, err := NewAuditSigner(testSecret)
	require.NoError(t, err)
	second, err := NewAuditSigner([]byte("another-secret-another-secret-xx"))
	require.NoError(t, err)

	log := newTestAuditLog()
	signLog(t, first, log)

	assert.ErrorIs(t, second.Verify(log), authDomain.ErrSignatureInvalid)
}

func TestAuditSigner_NilAndEmptyMetadata(t *testing.T) {
	signer, err := NewAuditSigner(testSecret)
	require.NoError(t, err)

	log := newTestAuditLog()
	log.Metadata = nil
	signLog(t, signer, log)
	assert.NoError(t, signer.Verify(log))

	log.Metadata = map[string]any{}
	assert.ErrorIs(t, signer.Verify(log), authDomain.ErrSignatureInvalid)
}

func TestAuditSigner_ConsistentSignatures(t *testing.T) {
	signer, err := NewAuditSigner(testSecret)
	require.NoError(t, err)

	log := newTestAuditLog()
	first, err := signer.Sign(log)
	require.NoError(t, err)
	second, err := signer.Sign(log)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func BenchmarkAuditSigner_Sign(b *testing.B) {
	signer, err := NewAuditSigner(testSecret)
	if err != nil {
		b.Fatal(err)
	}
	log := newTestAuditLog()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := signer.Sign(log); err != nil {
			b.Fatal(err)
		}
	}
}
