package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	cryptoDomain "github.com/radarone/vault/internal/crypto/domain"
)

// KeyUnwrapTimeout bounds the KMS round trip of a single Load.
const KeyUnwrapTimeout = 10 * time.Second

// KeyLoader resolves the process encryption key from configuration.
//
// Without a KMS key URI the configured value is the 64-character hex key itself. With a URI the
// value is the base64 KMS ciphertext of that hex key and is unwrapped before parsing.
type KeyLoader struct {
	kmsService KMSService
	keyURI     string
	value      string
}

// NewKeyLoader creates a KeyLoader. kmsService may be nil when keyURI is empty.
func NewKeyLoader(kmsService KMSService, keyURI, value string) *KeyLoader {
	return &KeyLoader{
		kmsService: kmsService,
		keyURI:     strings.TrimSpace(keyURI),
		value:      value,
	}
}

// Load returns the parsed encryption key.
func (l *KeyLoader) Load(ctx context.Context) (*cryptoDomain.EncryptionKey, error) {
	if l.keyURI == "" {
		return cryptoDomain.ParseEncryptionKey(l.value)
	}

	if strings.TrimSpace(l.value) == "" {
		return nil, cryptoDomain.ErrEncryptionKeyNotSet
	}
	if l.kmsService == nil {
		return nil, fmt.Errorf("%w: no kms service configured", cryptoDomain.ErrKeyUnwrapFailed)
	}

	wrapped, err := base64.StdEncoding.DecodeString(strings.TrimSpace(l.value))
	if err != nil {
		return nil, fmt.Errorf("%w: key is not base64", cryptoDomain.ErrKeyUnwrapFailed)
	}

	ctx, cancel := context.WithTimeout(ctx, KeyUnwrapTimeout)
	defer cancel()

	keeper, err := l.kmsService.OpenKeeper(ctx, l.keyURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrKMSUnavailable, err)
	}
	defer func() {
		_ = keeper.Close()
	}()

	hexKey, err := keeper.Decrypt(ctx, wrapped)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrKMSUnavailable, err)
	}
	defer cryptoDomain.Zero(hexKey)

	return cryptoDomain.ParseEncryptionKey(string(hexKey))
}

// CipherLoader returns a loader suitable for NewLazyFieldCipher.
func (l *KeyLoader) CipherLoader(ctx context.Context) CipherLoader {
	return func() (FieldCipher, error) {
		key, err := l.Load(ctx)
		if err != nil {
			return nil, err
		}
		defer key.Close()

		return NewAESGCM(key)
	}
}
