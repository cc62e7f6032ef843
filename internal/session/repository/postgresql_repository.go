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

const sessionColumns = `id, user_id, site, domain, encrypted_blob, status, metadata, account_label,
			  expires_at, last_used_at, last_error_at, last_error, created_at, updated_at`

// PostgreSQLSessionRepository implements external session persistence for PostgreSQL databases.
type PostgreSQLSessionRepository struct {
	db *sql.DB
}

// NewPostgreSQLSessionRepository creates a new PostgreSQL session repository.
func NewPostgreSQLSessionRepository(db *sql.DB) *PostgreSQLSessionRepository {
	return &PostgreSQLSessionRepository{db: db}
}

// Upsert inserts the session or replaces the stored one of the same (user_id, site).
func (p *PostgreSQLSessionRepository) Upsert(ctx context.Context, session *domain.Session) error {
	querier := database.GetTx(ctx, p.db)

	meta, err := marshalMeta(session.Meta)
	if err != nil {
		return err
	}

	query := `INSERT INTO external_sessions (id, user_id, site, domain, encrypted_blob, status, metadata,
			  account_label, expires_at, last_used_at, last_error_at, last_error, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULL, NULL, NULL, $10, $11)
			  ON CONFLICT (user_id, site) DO UPDATE SET
			  domain = EXCLUDED.domain,
			  encrypted_blob = EXCLUDED.encrypted_blob,
			  status = EXCLUDED.status,
			  metadata = EXCLUDED.metadata,
			  account_label = COALESCE(EXCLUDED.account_label, external_sessions.account_label),
			  expires_at = EXCLUDED.expires_at,
			  last_error_at = NULL,
			  last_error = NULL,
			  updated_at = EXCLUDED.updated_at
			  RETURNING id, account_label, last_used_at, created_at`

	err = querier.QueryRowContext(
		ctx,
		query,
		session.ID,
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
	).Scan(&session.ID, &session.AccountLabel, &session.LastUsedAt, &session.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert session")
	}

	session.LastErrorAt = nil
	session.LastError = nil
	return nil
}

// GetByUserAndSite retrieves the session of (userID, site).
func (p *PostgreSQLSessionRepository) GetByUserAndSite(
	ctx context.Context,
	userID string,
	site domain.SiteKey,
) (*domain.Session, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + sessionColumns + `
			  FROM external_sessions
			  WHERE user_id = $1 AND site = $2`

	session, err := p.scan(querier.QueryRowContext(ctx, query, userID, string(site)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get session")
	}
	return session, nil
}

// ListByUser retrieves every session of userID ordered by site.
func (p *PostgreSQLSessionRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Session, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + sessionColumns + `
			  FROM external_sessions
			  WHERE user_id = $1
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
		session, err := p.scan(rows)
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
func (p *PostgreSQLSessionRepository) DeleteByUserAndSite(
	ctx context.Context,
	userID string,
	site domain.SiteKey,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM external_sessions WHERE user_id = $1 AND site = $2`

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
func (p *PostgreSQLSessionRepository) UpdateStatus(
	ctx context.Context,
	session *domain.Session,
	readUpdatedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE external_sessions
			  SET status = $1, last_error_at = $2, last_error = $3, updated_at = $4
			  WHERE id = $5 AND updated_at = $6`

	result, err := querier.ExecContext(
		ctx,
		query,
		string(session.Status),
		session.LastErrorAt,
		session.LastError,
		session.UpdatedAt,
		session.ID,
		readUpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update session status")
	}
	return requireUnchanged(result)
}

// TouchLastUsed sets last_used_at of the session.
func (p *PostgreSQLSessionRepository) TouchLastUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE external_sessions SET last_used_at = $1 WHERE id = $2`

	result, err := querier.ExecContext(ctx, query, usedAt, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update session last used")
	}
	return requireAffected(result)
}

func (p *PostgreSQLSessionRepository) scan(row scanner) (*domain.Session, error) {
	var session domain.Session
	var site, status string
	var meta []byte

	err := row.Scan(
		&session.ID,
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

	return finishScan(&session, site, status, meta)
}

// finishScan converts the string columns of a scanned row into domain values.
func finishScan(session *domain.Session, site, status string, meta []byte) (*domain.Session, error) {
	session.Site = domain.SiteKey(site)

	parsed, ok := domain.ParseStatus(status)
	if !ok {
		return nil, apperrors.Wrap(apperrors.ErrIntegrity, "stored session has an unknown status")
	}
	session.Status = parsed

	if err := unmarshalMeta(meta, &session.Meta); err != nil {
		return nil, err
	}
	return session, nil
}

// requireUnchanged reports ErrSessionChanged when a guarded update matched no row.
func requireUnchanged(result sql.Result) error {
	if err := requireAffected(result); err != nil {
		if apperrors.Is(err, domain.ErrSessionNotFound) {
			return domain.ErrSessionChanged
		}
		return err
	}
	return nil
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if affected == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}
