// Package service implements field-level protection of national ids: authenticated encryption,
// the deterministic hash index, check digit validation and display formatting.
package service

import (
	cryptoService "github.com/radarone/vault/internal/crypto/service"
	"github.com/radarone/vault/internal/nationalid/domain"
)

// Encryptor encrypts, decrypts and indexes national ids.
//
// It holds no mutable state and is safe for concurrent use. The hash is unsalted so identical
// ids collide across records; anyone holding the hash column can brute-force it offline, since
// the 11-digit space is small.
type Encryptor struct {
	cipher cryptoService.FieldCipher
	hasher HashService
}

// NewEncryptor creates an Encryptor.
func NewEncryptor(cipher cryptoService.FieldCipher, hasher HashService) *Encryptor {
	return &Encryptor{
		cipher: cipher,
		hasher: hasher,
	}
}

// Encrypt normalizes plaintext to its digits and seals them.
// Returns ErrInvalidNationalIDLength unless exactly 11 digits remain.
func (e *Encryptor) Encrypt(plaintext string) (domain.EncryptedNationalID, error) {
	cpf := domain.Normalize(plaintext)
	if len(cpf) != domain.Length {
		return domain.EncryptedNationalID{}, domain.ErrInvalidNationalIDLength
	}

	ciphertext, err := cryptoService.SealString(e.cipher, cpf)
	if err != nil {
		return domain.EncryptedNationalID{}, err
	}

	return domain.EncryptedNationalID{
		Ciphertext: ciphertext,
		Last4:      cpf[domain.Length-4:],
	}, nil
}

// Decrypt opens a serialized "iv:tag:ciphertext" value.
func (e *Encryptor) Decrypt(ciphertext string) (string, error) {
	return cryptoService.OpenString(e.cipher, ciphertext)
}

// Hash returns the hex SHA-256 of the normalized 11 digits.
func (e *Encryptor) Hash(plaintext string) (string, error) {
	cpf := domain.Normalize(plaintext)
	if len(cpf) != domain.Length {
		return "", domain.ErrInvalidNationalIDLength
	}
	return e.hasher.Digest(cpf), nil
}

// Validate reports whether candidate is a well-formed national id.
func (e *Encryptor) Validate(candidate string) bool {
	return domain.IsValid(candidate)
}

// Format renders candidate as ###.###.###-## without validating it.
func (e *Encryptor) Format(candidate string) string {
	return domain.Format(candidate)
}
