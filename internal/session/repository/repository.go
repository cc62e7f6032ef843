// Package repository implements external session persistence for PostgreSQL and MySQL.
//
// Both implementations keep exactly one row per (user_id, site). Upsert replaces the stored
// blob, metadata and expiry in a single statement and resets the status to ACTIVE. The row id
// and created_at of an existing row are preserved and written back to the session.
package repository

import (
	"encoding/json"

	apperrors "github.com/radarone/vault/internal/errors"
	"github.com/radarone/vault/internal/session/domain"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func marshalMeta(meta domain.SessionMeta) (string, error) {
	data, err := json.Marshal(meta)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to marshal session metadata")
	}
	return string(data), nil
}

func unmarshalMeta(data []byte, meta *domain.SessionMeta) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, meta); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal session metadata")
	}
	return nil
}
