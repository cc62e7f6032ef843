// Package testutil provides helpers for repository tests.
//
// Repository tests run against go-sqlmock rather than a live database:
//
//	db, mock := testutil.NewMockDB(t)
//	mock.ExpectQuery(testutil.Query("SELECT id FROM external_sessions")).WillReturnRows(...)
//
// Unmet expectations fail the test during cleanup.
//
// Migration Path:
//
// MigrationsPath walks up from the current working directory until a "migrations/{dbType}"
// directory is found.
package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewMockDB returns a sqlmock-backed *sql.DB using regexp query matching.
// The connection is closed and expectations are verified when the test finishes.
func NewMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "failed to create sqlmock")

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet(), "unmet sql expectations")
		_ = db.Close()
	})

	return db, mock
}

// Query escapes a literal SQL fragment for use as a sqlmock expectation.
func Query(fragment string) string {
	return regexp.QuoteMeta(fragment)
}

// MigrationsPath returns the absolute path of migrations/{dbType}.
func MigrationsPath(dbType string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	for {
		migrationsPath := filepath.Join(dir, "migrations", dbType)
		if _, err := os.Stat(migrationsPath); err == nil {
			return migrationsPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("migrations directory not found for %s", dbType)
		}
		dir = parent
	}
}
