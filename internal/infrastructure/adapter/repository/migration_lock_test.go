package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/logger"
	mockcore "github.com/amirhossein-jamali/schema-ledger/mocks/port/core"
	mockpersistence "github.com/amirhossein-jamali/schema-ledger/mocks/port/persistence"
)

var errBusy = fmt.Errorf("%w: busy", errs.ErrLockNotAcquired)

func TestRetryingLock(t *testing.T) {
	ctx := context.Background()

	t.Run("Retries contention until acquired", func(t *testing.T) {
		inner := mockpersistence.NewMockMigrationLock(t)
		metrics := mockcore.NewMockMetrics(t)
		released := false

		inner.EXPECT().Acquire(mock.Anything).Return(nil, errBusy).Twice()
		inner.EXPECT().Acquire(mock.Anything).Return(func() { released = true }, nil).Once()
		metrics.EXPECT().ObserveLockWait(true, mock.Anything).Once()

		lock := NewRetryingLock(inner, "schema_history", 5, time.Millisecond, metrics, newFakeClock(), logger.NewNoopLogger())
		release, err := lock.Acquire(ctx)
		require.NoError(t, err)

		release()
		assert.True(t, released)
	})

	t.Run("Gives up after the retry budget", func(t *testing.T) {
		inner := mockpersistence.NewMockMigrationLock(t)
		metrics := mockcore.NewMockMetrics(t)

		inner.EXPECT().Acquire(mock.Anything).Return(nil, errBusy).Times(3)
		metrics.EXPECT().ObserveLockWait(false, mock.Anything).Once()

		lock := NewRetryingLock(inner, "schema_history", 2, time.Millisecond, metrics, newFakeClock(), logger.NewNoopLogger())
		_, err := lock.Acquire(ctx)

		var lockErr *errs.LockError
		require.ErrorAs(t, err, &lockErr)
		assert.Equal(t, 3, lockErr.Attempts)
		assert.Equal(t, "schema_history", lockErr.Key)
		assert.True(t, errs.IsLockError(err))
	})

	t.Run("Zero retries means a single attempt", func(t *testing.T) {
		inner := mockpersistence.NewMockMigrationLock(t)
		metrics := mockcore.NewMockMetrics(t)

		inner.EXPECT().Acquire(mock.Anything).Return(nil, errBusy).Once()
		metrics.EXPECT().ObserveLockWait(false, mock.Anything).Once()

		lock := NewRetryingLock(inner, "h", 0, time.Hour, metrics, newFakeClock(), logger.NewNoopLogger())
		_, err := lock.Acquire(ctx)
		assert.ErrorIs(t, err, errs.ErrLockNotAcquired)
	})

	t.Run("Database errors are not retried", func(t *testing.T) {
		inner := mockpersistence.NewMockMigrationLock(t)
		metrics := mockcore.NewMockMetrics(t)
		down := fmt.Errorf("%w: connection refused", errs.ErrDatabaseConnection)

		inner.EXPECT().Acquire(mock.Anything).Return(nil, down).Once()
		metrics.EXPECT().ObserveLockWait(false, mock.Anything).Once()

		lock := NewRetryingLock(inner, "h", 10, time.Millisecond, metrics, newFakeClock(), logger.NewNoopLogger())
		_, err := lock.Acquire(ctx)
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		assert.False(t, errs.IsLockError(err))
	})

	t.Run("Cancellation interrupts the wait", func(t *testing.T) {
		inner := mockpersistence.NewMockMigrationLock(t)
		metrics := mockcore.NewMockMetrics(t)
		canceled, cancel := context.WithCancel(ctx)

		inner.EXPECT().Acquire(mock.Anything).Run(func(context.Context) { cancel() }).Return(nil, errBusy).Once()
		metrics.EXPECT().ObserveLockWait(false, mock.Anything).Once()

		lock := NewRetryingLock(inner, "h", 10, time.Hour, metrics, newFakeClock(), logger.NewNoopLogger())
		_, err := lock.Acquire(canceled)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.True(t, errs.IsLockError(err))
	})
}

func TestNewMigrationLock_SQLiteUsesTableLock(t *testing.T) {
	metrics := mockcore.NewMockMetrics(t)
	metrics.EXPECT().ObserveLockWait(true, mock.Anything).Once()
	metrics.EXPECT().ObserveLockWait(false, mock.Anything).Once()

	lock := NewMigrationLock(newTestDB(t), database.DriverSQLite, LockConfig{
		HistoryTable:  "schema_history",
		RetryCount:    0,
		RetryInterval: time.Millisecond,
		Expiry:        time.Minute,
	}, metrics, newTickClock(), logger.NewNoopLogger(), database.NewErrorMapper())

	_, isTable := lock.inner.(*TableLock)
	require.True(t, isTable)

	release, err := lock.Acquire(context.Background())
	require.NoError(t, err)
	defer release()

	_, err = lock.Acquire(context.Background())
	var lockErr *errs.LockError
	require.ErrorAs(t, err, &lockErr)
	assert.Equal(t, 1, lockErr.Attempts)
}
