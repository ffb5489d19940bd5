package repository

import (
	"context"
	"crypto/sha1"
	"database/sql"
	"database/sql/driver"
	"encoding/hex"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"

	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/schema-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/schema-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/database"
)

// mysqlLockNameLimit is the longest name GET_LOCK accepts
const mysqlLockNameLimit = 64

// sessionDialect holds the statements for one database's session-scoped lock
type sessionDialect struct {
	name    string
	tryLock func(ctx context.Context, conn *sql.Conn, key string) (bool, error)
	unlock  func(ctx context.Context, conn *sql.Conn, key string) error
}

var postgresDialect = sessionDialect{
	name: database.DriverPostgres,
	tryLock: func(ctx context.Context, conn *sql.Conn, key string) (bool, error) {
		var acquired bool
		err := conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", advisoryKey(key)).Scan(&acquired)
		return acquired, err
	},
	unlock: func(ctx context.Context, conn *sql.Conn, key string) error {
		var released bool
		if err := conn.QueryRowContext(ctx, "SELECT pg_advisory_unlock($1)", advisoryKey(key)).Scan(&released); err != nil {
			return err
		}
		if !released {
			return errors.New("advisory lock was not held by this session")
		}
		return nil
	},
}

var mysqlDialect = sessionDialect{
	name: database.DriverMySQL,
	tryLock: func(ctx context.Context, conn *sql.Conn, key string) (bool, error) {
		var acquired sql.NullInt64
		if err := conn.QueryRowContext(ctx, "SELECT GET_LOCK(?, 0)", mysqlLockName(key)).Scan(&acquired); err != nil {
			return false, err
		}
		return acquired.Valid && acquired.Int64 == 1, nil
	},
	unlock: func(ctx context.Context, conn *sql.Conn, key string) error {
		var released sql.NullInt64
		if err := conn.QueryRowContext(ctx, "SELECT RELEASE_LOCK(?)", mysqlLockName(key)).Scan(&released); err != nil {
			return err
		}
		if !released.Valid || released.Int64 != 1 {
			return errors.New("named lock was not held by this session")
		}
		return nil
	},
}

// SessionLock holds a database session lock on a connection pinned for the
// lifetime of the lock. The server drops the lock if the session dies.
type SessionLock struct {
	db          *gorm.DB
	key         string
	dialect     sessionDialect
	logger      coreport.Logger
	errorMapper *database.ErrorMapper
}

var _ persistence.MigrationLock = (*SessionLock)(nil)

// NewPostgresAdvisoryLock creates a lock backed by pg_try_advisory_lock
func NewPostgresAdvisoryLock(db *gorm.DB, key string, logger coreport.Logger, errorMapper *database.ErrorMapper) *SessionLock {
	return &SessionLock{db: db, key: key, dialect: postgresDialect, logger: logger, errorMapper: errorMapper}
}

// NewMySQLNamedLock creates a lock backed by GET_LOCK
func NewMySQLNamedLock(db *gorm.DB, key string, logger coreport.Logger, errorMapper *database.ErrorMapper) *SessionLock {
	return &SessionLock{db: db, key: key, dialect: mysqlDialect, logger: logger, errorMapper: errorMapper}
}

// Acquire tries the lock once on a dedicated connection
func (l *SessionLock) Acquire(ctx context.Context) (func(), error) {
	sqlDB, err := l.db.DB()
	if err != nil {
		return nil, l.errorMapper.MapError(err, "acquire migration lock")
	}

	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return nil, l.errorMapper.MapError(err, "pin lock connection")
	}

	acquired, err := l.dialect.tryLock(ctx, conn, l.key)
	if err != nil {
		_ = conn.Close()
		if isContextError(err) {
			return nil, fmt.Errorf("lock acquisition interrupted: %w", err)
		}
		l.logger.Error("Database error acquiring migration lock", map[string]any{
			"dialect": l.dialect.name,
			"key":     l.key,
			"error":   err.Error(),
		})
		return nil, l.errorMapper.MapError(err, "acquire migration lock")
	}
	if !acquired {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %s is held by another session", errs.ErrLockNotAcquired, l.key)
	}

	l.logger.Debug("Migration lock acquired", map[string]any{
		"dialect": l.dialect.name,
		"key":     l.key,
	})

	var once sync.Once
	return func() {
		once.Do(func() { l.release(conn) })
	}, nil
}

func (l *SessionLock) release(conn *sql.Conn) {
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()

	if err := l.dialect.unlock(ctx, conn, l.key); err != nil {
		l.logger.Warn("Failed to release migration lock, discarding the session", map[string]any{
			"dialect": l.dialect.name,
			"key":     l.key,
			"error":   err.Error(),
		})
		// A bad connection is closed instead of pooled, which ends the session and its lock
		_ = conn.Raw(func(any) error { return driver.ErrBadConn })
	} else {
		l.logger.Debug("Migration lock released", map[string]any{
			"dialect": l.dialect.name,
			"key":     l.key,
		})
	}
	_ = conn.Close()
}

// advisoryKey maps a lock name onto the bigint key space of postgres advisory locks
func advisoryKey(key string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("schema-ledger:" + key))
	return int64(h.Sum64())
}

// mysqlLockName keeps long table names within the GET_LOCK name limit
func mysqlLockName(key string) string {
	name := "schema-ledger:" + key
	if len(name) <= mysqlLockNameLimit {
		return name
	}
	sum := sha1.Sum([]byte(name))
	return "schema-ledger:" + hex.EncodeToString(sum[:])
}

// isContextError checks if an error is related to context timeout or cancellation
func isContextError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "context deadline exceeded") ||
		strings.Contains(errStr, "context canceled")
}
