package service

import (
	cryptoDomain "github.com/radarone/vault/internal/crypto/domain"
)

// SealString encrypts a string value and returns its serialized "iv:tag:ciphertext" form.
func SealString(c FieldCipher, plaintext string) (string, error) {
	secret, err := c.Seal([]byte(plaintext))
	if err != nil {
		return "", err
	}
	return secret.String(), nil
}

// OpenString parses a serialized secret and decrypts it.
//
// Format errors are returned before any cryptographic work is attempted.
func OpenString(c FieldCipher, serialized string) (string, error) {
	secret, err := cryptoDomain.ParseEncryptedSecret(serialized)
	if err != nil {
		return "", err
	}

	plaintext, err := c.Open(secret)
	if err != nil {
		return "", err
	}
	defer cryptoDomain.Zero(plaintext)

	return string(plaintext), nil
}
