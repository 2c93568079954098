package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	authDomain "github.com/allisson/schoolsite/internal/auth/domain"
)

type auditSigner struct {
	key []byte
}

// NewAuditSigner derives an HMAC-SHA256 signing key from the session secret
// with HKDF-SHA256. The derived key is never used to sign tokens.
func NewAuditSigner(secret []byte) (AuditSigner, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("audit signer requires a secret")
	}

	key := make([]byte, 32)
	reader := hkdf.New(sha256.New, secret, nil, []byte(authDomain.AuditSignatureKeyID))
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive signing key: %w", err)
	}

	return &auditSigner{key: key}, nil
}

// canonicalize encodes the signed fields as length-prefixed values in a
// fixed order followed by the creation time in nanoseconds.
func canonicalize(log *authDomain.AuditLog) ([]byte, error) {
	buf := make([]byte, 0, 512)

	buf = append(buf, log.ID[:]...)
	for _, field := range []string{
		log.RequestID,
		string(log.Event),
		log.ActorID,
		log.SubjectID,
		log.Email,
		log.IPAddress,
		log.UserAgent,
	} {
		buf = appendLengthPrefixed(buf, []byte(field))
	}

	var metadata []byte
	if log.Metadata != nil {
		var err error
		metadata, err = json.Marshal(log.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
	}
	buf = appendLengthPrefixed(buf, metadata)

	return binary.BigEndian.AppendUint64(buf, uint64(log.CreatedAt.UnixNano())), nil
}

func appendLengthPrefixed(buf, data []byte) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(data))) //nolint:gosec // audit fields are far below 4GB
	return append(buf, data...)
}

func (a *auditSigner) Sign(log *authDomain.AuditLog) ([]byte, error) {
	canonical, err := canonicalize(log)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize log: %w", err)
	}

	mac := hmac.New(sha256.New, a.key)
	mac.Write(canonical)
	return mac.Sum(nil), nil
}

func (a *auditSigner) Verify(log *authDomain.AuditLog) error {
	if !log.HasValidSignature() {
		return authDomain.ErrSignatureInvalid
	}

	expected, err := a.Sign(log)
	if err != nil {
		return fmt.Errorf("failed to compute expected signature: %w", err)
	}

	if !hmac.Equal(log.Signature, expected) {
		return authDomain.ErrSignatureInvalid
	}
	return nil
}
