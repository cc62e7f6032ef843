// Package usecase defines interfaces and implementations for national id use cases.
package usecase

import (
	"context"

	"github.com/radarone/vault/internal/nationalid/domain"
)

// NationalIDRepository defines the interface for national id persistence.
type NationalIDRepository interface {
	Create(ctx context.Context, record *domain.NationalIDRecord) error
	GetByUserID(ctx context.Context, userID string) (*domain.NationalIDRecord, error)

	// FindByHash returns the single record indexed by hash, or ErrNationalIDNotFound.
	FindByHash(ctx context.Context, hash string) (*domain.NationalIDRecord, error)
}

// Encryptor is the field protection used by the use case.
type Encryptor interface {
	Encrypt(plaintext string) (domain.EncryptedNationalID, error)
	Decrypt(ciphertext string) (string, error)
	Hash(plaintext string) (string, error)
	Validate(candidate string) bool
}

// NationalIDUseCase defines the national id operations exposed to handlers and commands.
type NationalIDUseCase interface {
	// Register stores the user's national id. It fails with ErrNationalIDImmutable when the user
	// already has one and ErrNationalIDAlreadyRegistered when another user owns the same id.
	Register(ctx context.Context, userID, nationalID string) (*domain.NationalIDRecord, error)

	// Get returns the stored record without decrypting it.
	Get(ctx context.Context, userID string) (*domain.NationalIDRecord, error)

	// Reveal decrypts the stored national id.
	Reveal(ctx context.Context, userID string) (string, error)

	// IsRegistered reports whether any user has registered the national id.
	IsRegistered(ctx context.Context, nationalID string) (bool, error)
}
