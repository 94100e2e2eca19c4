package txmanager

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
)

func newManager(t *testing.T, opts ...Option) (*TransactionManager, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db := dbmetrics.Wrap(sqlDB, nil)
	return NewTransactionManager(db, opts...), db, mock
}

func insert(db *dbmetrics.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := dbmetrics.GetExecutor(ctx, db).ExecContext(ctx, "INSERT INTO bookings DEFAULT VALUES")
		return err
	}
}

func TestTransactionManager_Do(t *testing.T) {
	t.Run("commit", func(t *testing.T) {
		tm, db, mock := newManager(t)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := tm.Do(context.Background(), insert(db))

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("business error rolls back", func(t *testing.T) {
		tm, _, mock := newManager(t)
		errBusiness := errors.New("slot taken")
		mock.ExpectBegin()
		mock.ExpectRollback()

		err := tm.Do(context.Background(), func(ctx context.Context) error {
			assert.True(t, dbmetrics.IsInTransaction(ctx))
			return errBusiness
		})

		assert.ErrorIs(t, err, errBusiness)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nested call joins outer transaction", func(t *testing.T) {
		tm, db, mock := newManager(t)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := tm.Do(context.Background(), func(ctx context.Context) error {
			return tm.Do(ctx, insert(db))
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("commit failure", func(t *testing.T) {
		tm, db, mock := newManager(t)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

		err := tm.Do(context.Background(), insert(db))

		assert.ErrorIs(t, err, ErrCommitTx)
	})

	t.Run("begin failure", func(t *testing.T) {
		tm, db, mock := newManager(t)
		mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

		err := tm.Do(context.Background(), insert(db))

		assert.ErrorIs(t, err, ErrBeginTx)
	})
}

func TestTransactionManager_DoSerializable(t *testing.T) {
	serializationFailure := &pq.Error{Code: "40001", Message: "could not serialize access"}

	t.Run("retries serialization failure", func(t *testing.T) {
		tm, db, mock := newManager(t)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO bookings").WillReturnError(serializationFailure)
		mock.ExpectRollback()
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		attempts := 0
		err := tm.DoSerializable(context.Background(), func(ctx context.Context) error {
			attempts++
			return insert(db)(ctx)
		})

		require.NoError(t, err)
		assert.Equal(t, 2, attempts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		tm, db, mock := newManager(t, WithMaxAttempts(2))
		for i := 0; i < 2; i++ {
			mock.ExpectBegin()
			mock.ExpectExec("INSERT INTO bookings").WillReturnError(serializationFailure)
			mock.ExpectRollback()
		}

		err := tm.DoSerializable(context.Background(), insert(db))

		assert.ErrorIs(t, err, ErrRetriesExhausted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("business error is not retried", func(t *testing.T) {
		tm, _, mock := newManager(t)
		errBusiness := errors.New("slot taken")
		mock.ExpectBegin()
		mock.ExpectRollback()

		attempts := 0
		err := tm.DoSerializable(context.Background(), func(ctx context.Context) error {
			attempts++
			return errBusiness
		})

		assert.ErrorIs(t, err, errBusiness)
		assert.Equal(t, 1, attempts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("swallowed failure inside transaction still retries", func(t *testing.T) {
		tm, db, mock := newManager(t)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO bookings").WillReturnError(serializationFailure)
		mock.ExpectCommit().WillReturnError(errors.New("current transaction is aborted"))
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := tm.DoSerializable(context.Background(), func(ctx context.Context) error {
			_ = insert(db)(ctx)
			return nil
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
