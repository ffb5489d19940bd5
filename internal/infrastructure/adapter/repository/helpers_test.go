package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/logger"
)

// fakeClock is a TimeProvider whose time only moves when told to
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Since(t time.Time) core.Duration { return core.Duration(c.Now().Sub(t)) }

// Wait advances the clock instead of blocking
func (c *fakeClock) Wait(ctx context.Context, d core.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.Advance(d.Std())
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return database.NewTestDBManager(t, logger.NewNoopLogger()).Connect(t)
}
