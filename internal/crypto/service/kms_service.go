package service

import (
	"context"
	"fmt"
	"strings"

	"gocloud.dev/secrets"

	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"

	cryptoDomain "github.com/radarone/vault/internal/crypto/domain"
)

type kmsService struct{}

// NewKMSService creates a KMSService backed by gocloud.dev secrets.
//
// Supported URI schemes: awskms://, azurekeyvault://, gcpkms://, hashivault:// and
// base64key:// (local, for development and tests).
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens a keeper for keyURI. The returned keeper also implements Encrypt, which the
// create-pii-key command relies on.
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error) {
	if strings.TrimSpace(keyURI) == "" {
		return nil, fmt.Errorf("%w: empty key uri", cryptoDomain.ErrKeyUnwrapFailed)
	}

	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}
