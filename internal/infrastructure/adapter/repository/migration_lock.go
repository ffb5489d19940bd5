package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/schema-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/schema-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/database"
)

// LockConfig controls how the migration lock is taken
type LockConfig struct {
	HistoryTable  string
	RetryCount    int
	RetryInterval time.Duration
	Expiry        time.Duration // table lock only
}

// NewMigrationLock picks the lock flavor for the driver and wraps it with retries.
// Postgres and MySQL use session locks; SQLite falls back to the lock table.
func NewMigrationLock(
	db *gorm.DB,
	driver string,
	cfg LockConfig,
	metrics coreport.Metrics,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	errorMapper *database.ErrorMapper,
) *RetryingLock {
	var inner persistence.MigrationLock
	switch driver {
	case database.DriverPostgres:
		inner = NewPostgresAdvisoryLock(db, cfg.HistoryTable, logger, errorMapper)
	case database.DriverMySQL:
		inner = NewMySQLNamedLock(db, cfg.HistoryTable, logger, errorMapper)
	default:
		inner = NewTableLock(db, cfg.HistoryTable, cfg.Expiry, timeProvider, logger, errorMapper)
	}
	return NewRetryingLock(inner, cfg.HistoryTable, cfg.RetryCount, cfg.RetryInterval, metrics, timeProvider, logger)
}

// RetryingLock retries a contended lock at a fixed interval and records the wait
type RetryingLock struct {
	inner        persistence.MigrationLock
	key          string
	retryCount   int
	interval     time.Duration
	metrics      coreport.Metrics
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ persistence.MigrationLock = (*RetryingLock)(nil)

// NewRetryingLock creates a new RetryingLock
func NewRetryingLock(
	inner persistence.MigrationLock,
	key string,
	retryCount int,
	interval time.Duration,
	metrics coreport.Metrics,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *RetryingLock {
	if retryCount < 0 {
		retryCount = 0
	}
	return &RetryingLock{
		inner:        inner,
		key:          key,
		retryCount:   retryCount,
		interval:     interval,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Acquire makes up to retryCount+1 attempts. Only contention is retried;
// database errors and cancellation end the loop at once.
func (l *RetryingLock) Acquire(ctx context.Context) (func(), error) {
	start := l.timeProvider.Now()
	attempts := 0

	for {
		attempts++
		release, err := l.inner.Acquire(ctx)
		if err == nil {
			wait := l.timeProvider.Since(start).Std()
			l.metrics.ObserveLockWait(true, wait)
			l.logger.Info("Migration lock acquired", map[string]any{
				"key":      l.key,
				"attempts": attempts,
				"wait_ms":  wait.Milliseconds(),
			})
			return release, nil
		}

		if !errors.Is(err, errs.ErrLockNotAcquired) {
			l.metrics.ObserveLockWait(false, l.timeProvider.Since(start).Std())
			return nil, err
		}

		if attempts > l.retryCount {
			l.metrics.ObserveLockWait(false, l.timeProvider.Since(start).Std())
			lockErr := &errs.LockError{Key: l.key, Attempts: attempts}
			l.logger.Warn("Giving up on migration lock", lockErr.LogFields())
			return nil, lockErr
		}

		l.logger.Debug("Waiting for migration lock", map[string]any{
			"key":         l.key,
			"attempt":     attempts,
			"retry_count": l.retryCount,
			"retry_after": l.interval.String(),
		})

		if err := l.timeProvider.Wait(ctx, coreport.Duration(l.interval)); err != nil {
			l.metrics.ObserveLockWait(false, l.timeProvider.Since(start).Std())
			return nil, &errs.LockError{Key: l.key, Attempts: attempts, Err: err}
		}
	}
}
