package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/radarone/vault/internal/database"
	apperrors "github.com/radarone/vault/internal/errors"
	"github.com/radarone/vault/internal/nationalid/domain"
)

type nationalIDUseCase struct {
	txManager database.TxManager
	repo      NationalIDRepository
	encryptor Encryptor
}

// NewNationalIDUseCase creates a new NationalIDUseCase.
func NewNationalIDUseCase(
	txManager database.TxManager,
	repo NationalIDRepository,
	encryptor Encryptor,
) NationalIDUseCase {
	return &nationalIDUseCase{
		txManager: txManager,
		repo:      repo,
		encryptor: encryptor,
	}
}

// Register validates, encrypts and stores the user's national id.
func (n *nationalIDUseCase) Register(
	ctx context.Context,
	userID, nationalID string,
) (*domain.NationalIDRecord, error) {
	if len(domain.Normalize(nationalID)) != domain.Length {
		return nil, domain.ErrInvalidNationalIDLength
	}
	if !n.encryptor.Validate(nationalID) {
		return nil, domain.ErrInvalidNationalID
	}

	encrypted, err := n.encryptor.Encrypt(nationalID)
	if err != nil {
		return nil, err
	}

	hash, err := n.encryptor.Hash(nationalID)
	if err != nil {
		return nil, err
	}

	record := &domain.NationalIDRecord{
		ID:         uuid.Must(uuid.NewV7()),
		UserID:     userID,
		Ciphertext: encrypted.Ciphertext,
		Last4:      encrypted.Last4,
		Hash:       hash,
		CreatedAt:  time.Now().UTC(),
	}

	err = n.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := n.repo.GetByUserID(ctx, userID); err == nil {
			return domain.ErrNationalIDImmutable
		} else if !apperrors.Is(err, domain.ErrNationalIDNotFound) {
			return err
		}

		if _, err := n.repo.FindByHash(ctx, hash); err == nil {
			return domain.ErrNationalIDAlreadyRegistered
		} else if !apperrors.Is(err, domain.ErrNationalIDNotFound) {
			return err
		}

		return n.repo.Create(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// Get returns the stored record without decrypting it.
func (n *nationalIDUseCase) Get(ctx context.Context, userID string) (*domain.NationalIDRecord, error) {
	return n.repo.GetByUserID(ctx, userID)
}

// Reveal decrypts the stored national id. Corrupted ciphertext surfaces as an integrity error.
func (n *nationalIDUseCase) Reveal(ctx context.Context, userID string) (string, error) {
	record, err := n.repo.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}

	plaintext, err := n.encryptor.Decrypt(record.Ciphertext)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to decrypt national id")
	}
	return plaintext, nil
}

// IsRegistered looks the national id up by hash only.
func (n *nationalIDUseCase) IsRegistered(ctx context.Context, nationalID string) (bool, error) {
	hash, err := n.encryptor.Hash(nationalID)
	if err != nil {
		return false, err
	}

	_, err = n.repo.FindByHash(ctx, hash)
	if err != nil {
		if apperrors.Is(err, domain.ErrNationalIDNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
