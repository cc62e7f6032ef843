// Package repository implements national id persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/radarone/vault/internal/database"
	apperrors "github.com/radarone/vault/internal/errors"
	"github.com/radarone/vault/internal/nationalid/domain"
)

const (
	// uniqueUserIDConstraint and uniqueHashConstraint are the constraint names created by the
	// migrations; violations are mapped to domain errors.
	uniqueUserIDConstraint = "uq_national_id_records_user_id"
	uniqueHashConstraint   = "uq_national_id_records_hash"
)

// PostgreSQLNationalIDRepository implements national id persistence for PostgreSQL databases.
type PostgreSQLNationalIDRepository struct {
	db *sql.DB
}

// NewPostgreSQLNationalIDRepository creates a new PostgreSQL national id repository.
func NewPostgreSQLNationalIDRepository(db *sql.DB) *PostgreSQLNationalIDRepository {
	return &PostgreSQLNationalIDRepository{db: db}
}

// Create inserts a national id record.
func (p *PostgreSQLNationalIDRepository) Create(ctx context.Context, record *domain.NationalIDRecord) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO national_id_records (id, user_id, ciphertext, last4, hash, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.ID,
		record.UserID,
		record.Ciphertext,
		record.Last4,
		record.Hash,
		record.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			if pqErr.Constraint == uniqueUserIDConstraint {
				return domain.ErrNationalIDImmutable
			}
			return domain.ErrNationalIDAlreadyRegistered
		}
		return apperrors.Wrap(err, "failed to create national id record")
	}
	return nil
}

// GetByUserID retrieves the national id record of a user.
func (p *PostgreSQLNationalIDRepository) GetByUserID(
	ctx context.Context,
	userID string,
) (*domain.NationalIDRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, ciphertext, last4, hash, created_at
			  FROM national_id_records
			  WHERE user_id = $1`

	var record domain.NationalIDRecord
	err := querier.QueryRowContext(ctx, query, userID).Scan(
		&record.ID,
		&record.UserID,
		&record.Ciphertext,
		&record.Last4,
		&record.Hash,
		&record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNationalIDNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get national id by user id")
	}
	return &record, nil
}

// FindByHash retrieves the national id record with the given hash.
func (p *PostgreSQLNationalIDRepository) FindByHash(
	ctx context.Context,
	hash string,
) (*domain.NationalIDRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, ciphertext, last4, hash, created_at
			  FROM national_id_records
			  WHERE hash = $1`

	var record domain.NationalIDRecord
	err := querier.QueryRowContext(ctx, query, hash).Scan(
		&record.ID,
		&record.UserID,
		&record.Ciphertext,
		&record.Last4,
		&record.Hash,
		&record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNationalIDNotFound
		}
		return nil, apperrors.Wrap(err, "failed to find national id by hash")
	}
	return &record, nil
}
