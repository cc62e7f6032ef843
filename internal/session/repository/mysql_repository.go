package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/radarone/vault/internal/database"
	apperrors "github.com/radarone/vault/internal/errors"
	"github.com/radarone/vault/internal/session/domain"
)

// MySQLSessionRepository implements external session persistence for MySQL databases.
// IDs are stored as BINARY(16).
type MySQLSessionRepository struct {
	db *sql.DB
}

// NewMySQLSessionRepository creates a new MySQL session repository.
func NewMySQLSessionRepository(db *sql.DB) *MySQLSessionRepository {
	return &MySQLSessionRepository{db: db}
}

// Upsert inserts the session or replaces the stored one of the same (user_id, site).
// MySQL has no RETURNING, so the surviving row is read back with the same querier.
func (m *MySQLSessionRepository) Upsert(ctx context.Context, session *domain.Session) error {
	querier := database.GetTx(ctx, m.db)

	id, err := session.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal session id")
	}

	meta, err := marshalMeta(session.Meta)
	if err != nil {
		return err
	}

	query := `INSERT INTO external_sessions (id, user_id, site, domain, encrypted_blob, status, metadata,
			  account_label, expires_at, last_used_at, last_error_at, last_error, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NULL, NULL, NULL, ?, ?)
			  ON DUPLICATE KEY UPDATE
			  domain = VALUES(domain),
			  encrypted_blob = VALUES(encrypted_blob),
			  status = VALUES(status),
			  metadata = VALUES(metadata),
			  account_label = COALESCE(VALUES(account_label), account_label),
			  expires_at = VALUES(expires_at),
			  last_error_at = NULL,
			  last_error = NULL,
			  updated_at = VALUES(updated_at)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		session.UserID,
		string(session.Site),
		session.Domain,
		session.EncryptedBlob,
		string(session.Status),
		meta,
		session.AccountLabel,
		session.ExpiresAt,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert session")
	}

	readBack := `SELECT id, account_label, last_used_at, created_at
				 FROM external_sessions
				 WHERE user_id = ? AND site = ?`

	var storedID []byte
	err = querier.QueryRowContext(ctx, readBack, session.UserID, string(session.Site)).Scan(
		&storedID,
		&session.AccountLabel,
		&session.LastUsedAt,
		&session.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to read upserted session")
	}
	if err := session.ID.UnmarshalBinary(storedID); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal session id")
	}

	session.LastErrorAt = nil
	session.LastError = nil
	return nil
}

// GetByUserAndSite retrieves the session of (userID, site).
func (m *MySQLSessionRepository) GetByUserAndSite(
	ctx context.Context,
	userID string,
	site domain.SiteKey,
) (*domain.Session, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + sessionColumns + `
			  FROM external_sessions
			  WHERE user_id = ? AND site = ?`

	session, err := m.scan(querier.QueryRowContext(ctx, query, userID, string(site)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get session")
	}
	return session, nil
}

// ListByUser retrieves every session of userID ordered by site.
func (m *MySQLSessionRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Session, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + sessionColumns + `
			  FROM external_sessions
			  WHERE user_id = ?
			  ORDER BY site ASC`

	rows, err := querier.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list sessions")
	}
	defer func() {
		_ = rows.Close()
	}()

	var sessions []*domain.Session
	for rows.Next() {
		session, err := m.scan(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan session")
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate sessions")
	}
	return sessions, nil
}

// DeleteByUserAndSite removes the session of (userID, site) and reports whether a row existed.
func (m *MySQLSessionRepository) DeleteByUserAndSite(
	ctx context.Context,
	userID string,
	site domain.SiteKey,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM external_sessions WHERE user_id = ? AND site = ?`

	result, err := querier.ExecContext(ctx, query, userID, string(site))
	if err != nil {
		return false, apperrors.Wrap(err, "failed to delete session")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to get rows affected")
	}
	return affected > 0, nil
}

// UpdateStatus persists the status and last error fields of the session unless the row was
// rewritten since readUpdatedAt.
func (m *MySQLSessionRepository) UpdateStatus(
	ctx context.Context,
	session *domain.Session,
	readUpdatedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := session.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal session id")
	}

	query := `UPDATE external_sessions
			  SET status = ?, last_error_at = ?, last_error = ?, updated_at = ?
			  WHERE id = ? AND updated_at = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		string(session.Status),
		session.LastErrorAt,
		session.LastError,
		session.UpdatedAt,
		id,
		readUpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update session status")
	}
	return requireUnchanged(result)
}

// TouchLastUsed sets last_used_at of the session.
func (m *MySQLSessionRepository) TouchLastUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) error {
	querier := database.GetTx(ctx, m.db)

	binaryID, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal session id")
	}

	query := `UPDATE external_sessions SET last_used_at = ? WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, usedAt, binaryID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update session last used")
	}
	return requireAffected(result)
}

func (m *MySQLSessionRepository) scan(row scanner) (*domain.Session, error) {
	var session domain.Session
	var id, meta []byte
	var site, status string

	err := row.Scan(
		&id,
		&session.UserID,
		&site,
		&session.Domain,
		&session.EncryptedBlob,
		&status,
		&meta,
		&session.AccountLabel,
		&session.ExpiresAt,
		&session.LastUsedAt,
		&session.LastErrorAt,
		&session.LastError,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := session.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal session id")
	}
	return finishScan(&session, site, status, meta)
}
