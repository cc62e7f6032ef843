package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/radarone/vault/internal/database"
	apperrors "github.com/radarone/vault/internal/errors"
	"github.com/radarone/vault/internal/nationalid/domain"
)

// MySQLNationalIDRepository implements national id persistence for MySQL databases.
// IDs are stored as BINARY(16).
type MySQLNationalIDRepository struct {
	db *sql.DB
}

// NewMySQLNationalIDRepository creates a new MySQL national id repository.
func NewMySQLNationalIDRepository(db *sql.DB) *MySQLNationalIDRepository {
	return &MySQLNationalIDRepository{db: db}
}

// Create inserts a national id record.
func (m *MySQLNationalIDRepository) Create(ctx context.Context, record *domain.NationalIDRecord) error {
	querier := database.GetTx(ctx, m.db)

	id, err := record.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal national id record id")
	}

	query := `INSERT INTO national_id_records (id, user_id, ciphertext, last4, hash, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		record.UserID,
		record.Ciphertext,
		record.Last4,
		record.Hash,
		record.CreatedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			if strings.Contains(mysqlErr.Message, uniqueUserIDConstraint) {
				return domain.ErrNationalIDImmutable
			}
			return domain.ErrNationalIDAlreadyRegistered
		}
		return apperrors.Wrap(err, "failed to create national id record")
	}
	return nil
}

// GetByUserID retrieves the national id record of a user.
func (m *MySQLNationalIDRepository) GetByUserID(
	ctx context.Context,
	userID string,
) (*domain.NationalIDRecord, error) {
	query := `SELECT id, user_id, ciphertext, last4, hash, created_at
			  FROM national_id_records
			  WHERE user_id = ?`

	return m.queryOne(ctx, query, userID, "failed to get national id by user id")
}

// FindByHash retrieves the national id record with the given hash.
func (m *MySQLNationalIDRepository) FindByHash(
	ctx context.Context,
	hash string,
) (*domain.NationalIDRecord, error) {
	query := `SELECT id, user_id, ciphertext, last4, hash, created_at
			  FROM national_id_records
			  WHERE hash = ?`

	return m.queryOne(ctx, query, hash, "failed to find national id by hash")
}

func (m *MySQLNationalIDRepository) queryOne(
	ctx context.Context,
	query string,
	arg any,
	failureMessage string,
) (*domain.NationalIDRecord, error) {
	querier := database.GetTx(ctx, m.db)

	var record domain.NationalIDRecord
	var id []byte
	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&id,
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
		return nil, apperrors.Wrap(err, failureMessage)
	}

	if err := record.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal national id record id")
	}
	return &record, nil
}
