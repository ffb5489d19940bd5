package model

import (
	"time"
)

// MigrationLock is a row-based lock for databases without session locks.
// A row whose ExpiresAt has passed belongs to a crashed holder and may be taken over.
type MigrationLock struct {
	LockKey   string    `gorm:"column:lock_key;primaryKey;type:varchar(191)"`
	Owner     string    `gorm:"column:owner;type:varchar(36);not null"`
	LockedAt  time.Time `gorm:"column:locked_at;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
}

// LockTableName returns the lock table paired with a schema history table
func LockTableName(historyTable string) string {
	return historyTable + "_lock"
}
