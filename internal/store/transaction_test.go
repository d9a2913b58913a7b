package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInTransaction_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO threat_records").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err = RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "INSERT INTO threat_records (task_name) VALUES (?)", "alpha")
		return err
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTransaction_FunctionError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectRollback()

	expectedErr := errors.New("function failed")
	err = RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		return expectedErr
	})

	assert.Equal(t, expectedErr, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTransaction_BeginError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	called := false
	err = RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrTransactionFailed)
	assert.False(t, called, "function must not run without a transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTransaction_CommitError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	err = RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		return nil
	})

	assert.ErrorIs(t, err, ErrTransactionFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTransaction_PanicRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "boom", func() {
		_ = RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}
