package service

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/allisson/schoolsite/internal/errors"
)

// DefaultPasswordCost is the bcrypt work factor for admin passwords.
const DefaultPasswordCost = 12

type bcryptHasher struct {
	cost int
}

// NewPasswordHasher creates a bcrypt PasswordHasher. A cost outside bcrypt's
// accepted range falls back to DefaultPasswordCost.
func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultPasswordCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return string(hash), nil
}

func (h *bcryptHasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// PasswordFingerprint returns a short digest of a password hash. Reset tokens
// carry it so a token stops working once the password it was issued against changes.
func PasswordFingerprint(passwordHash string) string {
	sum := sha256.Sum256([]byte(passwordHash))
	return base64.RawURLEncoding.EncodeToString(sum[:16])
}
