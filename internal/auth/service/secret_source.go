package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
)

// MinSecretLength is the minimum signing secret size accepted in production.
const MinSecretLength = 32

// insecureDevSecret is only ever used outside production when SESSION_SECRET is unset.
const insecureDevSecret = "schoolsite-insecure-development-secret"

// SecretSourceConfig describes where the session signing secret comes from.
type SecretSourceConfig struct {
	// Secret is the raw secret, or base64 ciphertext when KMSKeyURI is set.
	Secret string
	// KMSKeyURI enables decrypting Secret through a KMS keeper.
	KMSKeyURI string
	// Production turns a missing or weak secret into a startup error.
	Production bool
}

// LoadSessionSecret resolves the token signing secret. In production a
// missing or short secret is an error; elsewhere a fixed development secret
// is used and a warning logged.
func LoadSessionSecret(
	ctx context.Context,
	cfg SecretSourceConfig,
	kms KMSService,
	logger *slog.Logger,
) ([]byte, error) {
	secret := []byte(cfg.Secret)

	if cfg.KMSKeyURI != "" && cfg.Secret != "" {
		plaintext, err := decryptSecret(ctx, kms, cfg.KMSKeyURI, cfg.Secret)
		if err != nil {
			return nil, err
		}
		secret = plaintext
		logger.Info("session secret decrypted with KMS")
	}

	if len(secret) == 0 {
		if cfg.Production {
			return nil, fmt.Errorf("session secret is not configured")
		}
		logger.Warn("SESSION_SECRET is not set, using insecure development secret")
		return []byte(insecureDevSecret), nil
	}

	if len(secret) < MinSecretLength {
		if cfg.Production {
			return nil, fmt.Errorf("session secret must be at least %d bytes", MinSecretLength)
		}
		logger.Warn("session secret is shorter than recommended", slog.Int("min_bytes", MinSecretLength))
	}

	return secret, nil
}

func decryptSecret(ctx context.Context, kms KMSService, keyURI, encoded string) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("session secret is not valid base64 ciphertext: %w", err)
	}

	keeper, err := kms.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = keeper.Close()
	}()

	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt session secret: %w", err)
	}
	return plaintext, nil
}
