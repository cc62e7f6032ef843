package service

import (
	"errors"
	"sync"

	cryptoDomain "github.com/radarone/vault/internal/crypto/domain"
	apperrors "github.com/radarone/vault/internal/errors"
)

// CipherLoader builds the underlying cipher, typically by resolving and parsing the key.
type CipherLoader func() (FieldCipher, error)

// LazyFieldCipher defers cipher construction until the first Seal or Open.
//
// A missing or malformed key therefore surfaces on the first operation that needs it rather
// than at process start. Configuration failures are remembered: every later call returns the
// same error and nothing is ever encrypted with a fallback. Any other failure, such as an
// unreachable KMS, is returned to the caller and the next operation loads again.
type LazyFieldCipher struct {
	loader CipherLoader

	mu     sync.Mutex
	cipher FieldCipher
	err    error
}

// NewLazyFieldCipher creates a LazyFieldCipher.
func NewLazyFieldCipher(loader CipherLoader) *LazyFieldCipher {
	return &LazyFieldCipher{loader: loader}
}

func (l *LazyFieldCipher) load() (FieldCipher, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cipher != nil || l.err != nil {
		return l.cipher, l.err
	}

	c, err := l.loader()
	if err != nil {
		if errors.Is(err, apperrors.ErrMisconfigured) {
			l.err = err
		}
		return nil, err
	}
	l.cipher = c
	return c, nil
}

// Seal loads the cipher if needed and encrypts.
func (l *LazyFieldCipher) Seal(plaintext []byte) (cryptoDomain.EncryptedSecret, error) {
	c, err := l.load()
	if err != nil {
		return cryptoDomain.EncryptedSecret{}, err
	}
	return c.Seal(plaintext)
}

// Open loads the cipher if needed and decrypts.
func (l *LazyFieldCipher) Open(secret cryptoDomain.EncryptedSecret) ([]byte, error) {
	c, err := l.load()
	if err != nil {
		return nil, err
	}
	return c.Open(secret)
}
