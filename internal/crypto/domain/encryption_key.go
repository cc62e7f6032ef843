package domain

import (
	"encoding/hex"
	"strings"
)

// EncryptionKey holds the raw 32-byte AES-256 key used for field encryption.
//
// The key is parsed once from configuration and handed to the cipher at construction.
// Call Close when the key is no longer needed to scrub it from memory.
type EncryptionKey struct {
	key []byte
}

// ParseEncryptionKey parses a 64-character hex string into an EncryptionKey.
//
// Surrounding whitespace is ignored. Returns ErrEncryptionKeyNotSet for an empty value and
// ErrInvalidEncryptionKey for anything that is not exactly 64 hex characters.
func ParseEncryptionKey(hexKey string) (*EncryptionKey, error) {
	hexKey = strings.TrimSpace(hexKey)
	if hexKey == "" {
		return nil, ErrEncryptionKeyNotSet
	}
	if len(hexKey) != KeyHexLength {
		return nil, ErrInvalidEncryptionKey
	}

	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, ErrInvalidEncryptionKey
	}

	return &EncryptionKey{key: key}, nil
}

// NewEncryptionKey wraps raw key bytes. The slice is copied.
func NewEncryptionKey(raw []byte) (*EncryptionKey, error) {
	if len(raw) != KeySize {
		return nil, ErrInvalidEncryptionKey
	}
	key := make([]byte, KeySize)
	copy(key, raw)
	return &EncryptionKey{key: key}, nil
}

// Bytes returns the raw key material. Callers must not retain or modify it.
func (k *EncryptionKey) Bytes() []byte {
	return k.key
}

// Hex returns the key in the configuration format.
func (k *EncryptionKey) Hex() string {
	return hex.EncodeToString(k.key)
}

// Close zeroes the key material.
func (k *EncryptionKey) Close() {
	Zero(k.key)
	k.key = nil
}
