package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	errs "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/schema-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/schema-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/model"
)

const releaseTimeout = 10 * time.Second

// TableLock implements the migration lock as a row in a lock table. Each
// acquisition writes a fresh owner id; an expired row is taken over.
// While held, the row's expiry is pushed forward every third of the expiry.
type TableLock struct {
	db           *gorm.DB
	table        string
	key          string
	expiry       time.Duration
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	errorMapper  *database.ErrorMapper

	mu      sync.Mutex
	created bool
}

var _ persistence.MigrationLock = (*TableLock)(nil)

// NewTableLock creates a lock stored in the lock table paired with historyTable
func NewTableLock(
	db *gorm.DB,
	historyTable string,
	expiry time.Duration,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	errorMapper *database.ErrorMapper,
) *TableLock {
	return &TableLock{
		db:           db,
		table:        model.LockTableName(historyTable),
		key:          historyTable,
		expiry:       expiry,
		timeProvider: timeProvider,
		logger:       logger,
		errorMapper:  errorMapper,
	}
}

// Acquire inserts the lock row, or takes over an expired one, in a single upsert
func (l *TableLock) Acquire(ctx context.Context) (func(), error) {
	if err := l.ensureTable(ctx); err != nil {
		return nil, err
	}

	owner := uuid.NewString()
	now := l.timeProvider.Now().UTC()
	expiresAt := now.Add(l.expiry)

	result := l.db.WithContext(ctx).Exec(`
		INSERT INTO ? (lock_key, owner, locked_at, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (lock_key) DO UPDATE
		SET owner = excluded.owner,
		    locked_at = excluded.locked_at,
		    expires_at = excluded.expires_at
		WHERE ?.expires_at <= ?`,
		clause.Table{Name: l.table},
		l.key, owner, now, expiresAt,
		clause.Table{Name: l.table}, now,
	)
	if result.Error != nil {
		if isContextError(result.Error) {
			return nil, fmt.Errorf("lock acquisition interrupted: %w", result.Error)
		}
		l.logger.Error("Database error acquiring migration lock", map[string]any{
			"table": l.table,
			"key":   l.key,
			"error": result.Error.Error(),
		})
		return nil, l.errorMapper.MapError(result.Error, "acquire migration lock")
	}

	if result.RowsAffected == 0 {
		l.logger.Debug("Migration lock is held by another process", map[string]any{
			"table": l.table,
			"key":   l.key,
		})
		return nil, fmt.Errorf("%w: %s is held by another process", errs.ErrLockNotAcquired, l.key)
	}

	l.logger.Debug("Migration lock acquired", map[string]any{
		"table":      l.table,
		"key":        l.key,
		"owner":      owner,
		"expires_at": expiresAt,
	})

	renewCtx, stopRenewal := context.WithCancel(context.WithoutCancel(ctx))
	renewed := make(chan struct{})
	go func() {
		defer close(renewed)
		l.keepAlive(renewCtx, owner)
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			stopRenewal()
			<-renewed
			l.release(owner)
		})
	}, nil
}

// keepAlive extends the row's expiry until ctx ends or the row is lost
func (l *TableLock) keepAlive(ctx context.Context, owner string) {
	interval := coreport.Duration(l.expiry / 3)
	if interval <= 0 {
		return
	}
	for {
		if err := l.timeProvider.Wait(ctx, interval); err != nil {
			return
		}
		held, err := l.renew(ctx, owner)
		if err != nil {
			if isContextError(err) {
				return
			}
			l.logger.Warn("Failed to renew migration lock", map[string]any{
				"table": l.table,
				"key":   l.key,
				"error": err.Error(),
			})
			continue
		}
		if !held {
			l.logger.Warn("Migration lock was taken over while held", map[string]any{
				"table": l.table,
				"key":   l.key,
				"owner": owner,
			})
			return
		}
	}
}

// renew moves expires_at forward while owner still holds the row
func (l *TableLock) renew(ctx context.Context, owner string) (bool, error) {
	expiresAt := l.timeProvider.Now().UTC().Add(l.expiry)
	result := l.db.WithContext(ctx).
		Table(l.table).
		Where("lock_key = ? AND owner = ?", l.key, owner).
		Update("expires_at", expiresAt)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		l.logger.Debug("Migration lock renewed", map[string]any{
			"table":      l.table,
			"key":        l.key,
			"expires_at": expiresAt,
		})
	}
	return result.RowsAffected > 0, nil
}

// release deletes the row only while this owner still holds it
func (l *TableLock) release(owner string) {
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()

	result := l.db.WithContext(ctx).
		Table(l.table).
		Where("lock_key = ? AND owner = ?", l.key, owner).
		Delete(&model.MigrationLock{})
	if result.Error != nil {
		// The row expires on its own
		l.logger.Warn("Failed to release migration lock", map[string]any{
			"table": l.table,
			"key":   l.key,
			"error": result.Error.Error(),
		})
		return
	}
	if result.RowsAffected == 0 {
		l.logger.Warn("Migration lock expired before release", map[string]any{
			"table": l.table,
			"key":   l.key,
			"owner": owner,
		})
		return
	}

	l.logger.Debug("Migration lock released", map[string]any{
		"table": l.table,
		"key":   l.key,
	})
}

func (l *TableLock) ensureTable(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.created {
		return nil
	}
	if err := l.db.WithContext(ctx).Table(l.table).AutoMigrate(&model.MigrationLock{}); err != nil {
		return l.errorMapper.MapError(err, "create lock table")
	}
	l.created = true
	return nil
}
