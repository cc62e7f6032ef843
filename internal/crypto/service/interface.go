// Package service provides the field-level authenticated encryption used to protect PII and
// third-party session state at rest, plus loading of the process encryption key.
package service

import (
	"context"

	cryptoDomain "github.com/radarone/vault/internal/crypto/domain"
)

// FieldCipher seals and opens individual field values.
//
// Implementations are safe for concurrent use: every Seal draws its own random IV and no
// mutable state is shared between calls.
type FieldCipher interface {
	// Seal encrypts plaintext and returns the IV, tag and ciphertext.
	Seal(plaintext []byte) (cryptoDomain.EncryptedSecret, error)

	// Open verifies the tag and decrypts. A failed verification returns ErrDecryptionFailed.
	Open(secret cryptoDomain.EncryptedSecret) ([]byte, error)
}

// KMSKeeper is the subset of a gocloud.dev secrets keeper used to unwrap key material.
type KMSKeeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KMSService opens keepers from a key URI.
type KMSService interface {
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}
