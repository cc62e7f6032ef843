package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radarone/vault/internal/testutil"
)

func TestWithTx_Commit(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	txManager := NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectExec(testutil.Query("DELETE FROM external_sessions")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := txManager.WithTx(context.Background(), func(ctx context.Context) error {
		querier := GetTx(ctx, db)
		assert.IsType(t, &sql.Tx{}, querier)
		_, err := querier.ExecContext(ctx, "DELETE FROM external_sessions")
		return err
	})
	assert.NoError(t, err)
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	txManager := NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := txManager.WithTx(context.Background(), func(ctx context.Context) error {
		return assert.AnError
	})
	assert.Equal(t, assert.AnError, err)
}

func TestWithTx_RollbackFailureKeepsCause(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	txManager := NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(errors.New("connection lost"))

	err := txManager.WithTx(context.Background(), func(ctx context.Context) error {
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "failed to rollback transaction")
}

func TestWithTx_BeginError(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	txManager := NewTxManager(db)

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	called := false
	err := txManager.WithTx(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to begin transaction")
	assert.False(t, called)
}

func TestWithTx_CommitError(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	txManager := NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	err := txManager.WithTx(context.Background(), func(ctx context.Context) error {
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to commit transaction")
}

func TestWithTx_NestedJoinsOuter(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	txManager := NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := txManager.WithTx(context.Background(), func(outer context.Context) error {
		return txManager.WithTx(outer, func(inner context.Context) error {
			assert.Same(t, GetTx(outer, db), GetTx(inner, db))
			return nil
		})
	})
	assert.NoError(t, err)
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	txManager := NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "boom", func() {
		_ = txManager.WithTx(context.Background(), func(ctx context.Context) error {
			panic("boom")
		})
	})
}

func TestGetTx_WithoutTransaction(t *testing.T) {
	db, _ := testutil.NewMockDB(t)
	assert.Same(t, db, GetTx(context.Background(), db))
}
