package domain

import (
	"github.com/radarone/vault/internal/errors"
)

// Cryptographic error definitions.
//
// Format and decryption failures wrap ErrIntegrity: a record that cannot be parsed or
// authenticated is corrupted, never "empty". Key problems wrap ErrMisconfigured so that
// handlers answer with a generic server error instead of leaking configuration details.
var (
	// ErrEncryptionKeyNotSet indicates the encryption key was not configured.
	ErrEncryptionKeyNotSet = errors.Wrap(errors.ErrMisconfigured, "encryption key is not set")

	// ErrInvalidEncryptionKey indicates the configured key is not exactly 64 hex characters.
	ErrInvalidEncryptionKey = errors.Wrap(
		errors.ErrMisconfigured,
		"encryption key must be exactly 64 hex characters",
	)

	// ErrKeyUnwrapFailed indicates the KMS could not decrypt the configured key material.
	ErrKeyUnwrapFailed = errors.Wrap(errors.ErrMisconfigured, "failed to unwrap encryption key")

	// ErrKMSUnavailable indicates the KMS call that unwraps the key failed. Unlike the
	// configuration errors above it is not remembered, so the next operation retries.
	ErrKMSUnavailable = errors.New("kms request failed")

	// ErrInvalidSecretFormat indicates an encrypted value is not "iv:tag:ciphertext" hex.
	ErrInvalidSecretFormat = errors.Wrap(errors.ErrIntegrity, "invalid encrypted secret format")

	// ErrDecryptionFailed indicates the authentication tag did not verify.
	//
	// The cause (wrong key, tampered ciphertext, tampered tag or IV) is deliberately
	// not distinguished.
	ErrDecryptionFailed = errors.Wrap(errors.ErrIntegrity, "decryption failed")
)
