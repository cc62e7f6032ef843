package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	cryptoDomain "github.com/radarone/vault/internal/crypto/domain"
)

// AESGCMCipher implements FieldCipher with AES-256-GCM.
//
// The GCM instance is built with a 16-byte nonce rather than the usual 12 bytes so the
// serialized form stays compatible with values already stored as hex(iv):hex(tag):hex(ct).
// Seal appends the 16-byte tag to the ciphertext; it is split off into EncryptedSecret.AuthTag.
//
// The cipher is stateless after construction and safe for concurrent use.
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates an AES-256-GCM field cipher from a parsed encryption key.
func NewAESGCM(key *cryptoDomain.EncryptionKey) (*AESGCMCipher, error) {
	if key == nil || len(key.Bytes()) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidEncryptionKey
	}

	block, err := aes.NewCipher(key.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, cryptoDomain.IVSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead}, nil
}

// Seal encrypts plaintext under a fresh random IV.
func (a *AESGCMCipher) Seal(plaintext []byte) (cryptoDomain.EncryptedSecret, error) {
	iv := make([]byte, cryptoDomain.IVSize)
	if _, err := rand.Read(iv); err != nil {
		return cryptoDomain.EncryptedSecret{}, fmt.Errorf("failed to generate iv: %w", err)
	}

	sealed := a.aead.Seal(nil, iv, plaintext, nil)
	split := len(sealed) - cryptoDomain.AuthTagSize

	return cryptoDomain.EncryptedSecret{
		IV:         iv,
		AuthTag:    sealed[split:],
		Ciphertext: sealed[:split],
	}, nil
}

// Open authenticates and decrypts a secret.
func (a *AESGCMCipher) Open(secret cryptoDomain.EncryptedSecret) ([]byte, error) {
	if len(secret.IV) != cryptoDomain.IVSize || len(secret.AuthTag) != cryptoDomain.AuthTagSize {
		return nil, cryptoDomain.ErrInvalidSecretFormat
	}

	sealed := make([]byte, 0, len(secret.Ciphertext)+len(secret.AuthTag))
	sealed = append(sealed, secret.Ciphertext...)
	sealed = append(sealed, secret.AuthTag...)

	plaintext, err := a.aead.Open(nil, secret.IV, sealed, nil)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}
