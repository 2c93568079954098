package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/secrets"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// generateLocalSecretsURI generates a base64key:// URI for testing.
func generateLocalSecretsURI(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return "base64key://" + base64.URLEncoding.EncodeToString(key)
}

func encryptWith(t *testing.T, keyURI string, plaintext []byte) string {
	t.Helper()
	ctx := context.Background()
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, keeper.Close())
	}()

	ciphertext, err := keeper.Encrypt(ctx, plaintext)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(ciphertext)
}

func TestLoadSessionSecret(t *testing.T) {
	ctx := context.Background()
	strong := strings.Repeat("k", MinSecretLength)

	t.Run("Success_PlainSecret", func(t *testing.T) {
		secret, err := LoadSessionSecret(ctx, SecretSourceConfig{Secret: strong, Production: true}, NewKMSService(), discardLogger())
		require.NoError(t, err)
		assert.Equal(t, []byte(strong), secret)
	})

	t.Run("Error_ProductionMissingSecret", func(t *testing.T) {
		secret, err := LoadSessionSecret(ctx, SecretSourceConfig{Production: true}, NewKMSService(), discardLogger())
		assert.Error(t, err)
		assert.Nil(t, secret)
	})

	t.Run("Error_ProductionShortSecret", func(t *testing.T) {
		_, err := LoadSessionSecret(ctx, SecretSourceConfig{Secret: "short", Production: true}, NewKMSService(), discardLogger())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 bytes")
	})

	t.Run("Success_DevelopmentFallback", func(t *testing.T) {
		secret, err := LoadSessionSecret(ctx, SecretSourceConfig{}, NewKMSService(), discardLogger())
		require.NoError(t, err)
		assert.Equal(t, []byte(insecureDevSecret), secret)
	})

	t.Run("Success_DevelopmentShortSecretWarns", func(t *testing.T) {
		secret, err := LoadSessionSecret(ctx, SecretSourceConfig{Secret: "short"}, NewKMSService(), discardLogger())
		require.NoError(t, err)
		assert.Equal(t, []byte("short"), secret)
	})

	t.Run("Success_KMSDecrypt", func(t *testing.T) {
		keyURI := generateLocalSecretsURI(t)
		encoded := encryptWith(t, keyURI, []byte(strong))

		secret, err := LoadSessionSecret(ctx, SecretSourceConfig{
			Secret:     encoded,
			KMSKeyURI:  keyURI,
			Production: true,
		}, NewKMSService(), discardLogger())
		require.NoError(t, err)
		assert.Equal(t, []byte(strong), secret)
	})

	t.Run("Error_KMSInvalidBase64", func(t *testing.T) {
		_, err := LoadSessionSecret(ctx, SecretSourceConfig{
			Secret:    "%%%not-base64",
			KMSKeyURI: generateLocalSecretsURI(t),
		}, NewKMSService(), discardLogger())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not valid base64")
	})

	t.Run("Error_KMSWrongKey", func(t *testing.T) {
		encoded := encryptWith(t, generateLocalSecretsURI(t), []byte(strong))

		_, err := LoadSessionSecret(ctx, SecretSourceConfig{
			Secret:    encoded,
			KMSKeyURI: generateLocalSecretsURI(t),
		}, NewKMSService(), discardLogger())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decrypt session secret")
	})

	t.Run("Error_KMSInvalidURI", func(t *testing.T) {
		_, err := LoadSessionSecret(ctx, SecretSourceConfig{
			Secret:    base64.StdEncoding.EncodeToString([]byte("x")),
			KMSKeyURI: "invalid://uri",
		}, NewKMSService(), discardLogger())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open KMS keeper")
	})
}

func TestKMSService_OpenKeeper(t *testing.T) {
	ctx := context.Background()
	kms := NewKMSService()

	keeper, err := kms.OpenKeeper(ctx, generateLocalSecretsURI(t))
	require.NoError(t, err)
	_, ok := keeper.(*secrets.Keeper)
	assert.True(t, ok)
	assert.NoError(t, keeper.Close())

	keeper, err = kms.OpenKeeper(ctx, "")
	assert.Error(t, err)
	assert.Nil(t, keeper)
}
