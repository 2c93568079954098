package service

import (
	"context"
	"fmt"

	"gocloud.dev/secrets"

	// Register the KMS provider drivers accepted in KMS_KEY_URI.
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// Keeper decrypts data with a KMS-held key. *secrets.Keeper implements it.
type Keeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KMSService opens keepers for gocloud.dev secrets URIs.
type KMSService interface {
	// OpenKeeper supports gcpkms://, awskms://, azurekeyvault://, hashivault:// and base64key://.
	OpenKeeper(ctx context.Context, keyURI string) (Keeper, error)
}

type kmsService struct{}

// NewKMSService creates a KMSService backed by gocloud.dev/secrets.
func NewKMSService() KMSService {
	return &kmsService{}
}

func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (Keeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}
