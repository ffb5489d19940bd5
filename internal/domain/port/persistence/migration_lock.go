package persistence

import "context"

// MigrationLock serializes migration runs across processes. The lock is tied to
// a database session or carries an expiry, so a crashed holder never blocks forever.
type MigrationLock interface {
	// Acquire takes the lock and returns a function releasing it
	//
	// Possible errors:
	// - ErrLockNotAcquired: If another process holds the lock
	// - ErrDatabaseConnection: If database connection fails
	Acquire(ctx context.Context) (release func(), err error)
}
