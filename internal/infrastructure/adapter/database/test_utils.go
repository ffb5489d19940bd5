package database

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	coreport "github.com/amirhossein-jamali/schema-ledger/internal/domain/port/core"
	timeprovider "github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/time"
	"gorm.io/gorm"
)

// TestDBManager provides an isolated in-memory SQLite database for tests
type TestDBManager struct {
	Manager      *Manager
	Config       *Config
	Logger       coreport.Logger
	TimeProvider coreport.TimeProvider
}

// NewTestDBManager creates a test database manager whose database is private to t
func NewTestDBManager(t *testing.T, logger coreport.Logger) *TestDBManager {
	t.Helper()

	timeProvider := timeprovider.NewRealTimeProvider()

	// Shared cache keeps the in-memory database alive across pooled connections
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	config := &Config{
		Driver:          DriverSQLite,
		Database:        fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name),
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: time.Hour,
		QueryTimeout:    5 * time.Second,
		LogLevel:        "silent",
		RetryAttempts:   0,
	}

	return &TestDBManager{
		Manager:      NewManager(config, logger, timeProvider),
		Config:       config,
		Logger:       logger,
		TimeProvider: timeProvider,
	}
}

// Connect opens the test database and closes it when the test ends
func (m *TestDBManager) Connect(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := m.Manager.Connect(context.Background())
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() {
		if err := m.Manager.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})
	return db
}
