package service

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashService digests normalized CPF digits into the lookup value stored beside the ciphertext.
type HashService interface {
	Digest(digits string) string
}

// DigestFunc adapts a plain function to HashService.
type DigestFunc func(digits string) string

func (f DigestFunc) Digest(digits string) string { return f(digits) }

// NewSHA256HashService returns the lowercase hex SHA-256 digester.
func NewSHA256HashService() HashService {
	return DigestFunc(func(digits string) string {
		sum := sha256.Sum256([]byte(digits))
		return hex.EncodeToString(sum[:])
	})
}
