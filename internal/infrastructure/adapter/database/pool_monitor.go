package database

import (
	"database/sql"
	"sync"
	"time"

	coreport "github.com/amirhossein-jamali/schema-ledger/internal/domain/port/core"
)

// ConnectionPoolMonitor periodically samples the connection pool and warns when
// it is close to exhaustion
type ConnectionPoolMonitor struct {
	db       *sql.DB
	logger   coreport.Logger
	stats    sql.DBStats
	mutex    sync.RWMutex
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewConnectionPoolMonitor creates a new connection pool monitor
func NewConnectionPoolMonitor(db *sql.DB, logger coreport.Logger) *ConnectionPoolMonitor {
	return &ConnectionPoolMonitor{
		db:       db,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start begins monitoring the connection pool
func (m *ConnectionPoolMonitor) Start(interval time.Duration) {
	m.collect()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.collect()
			case <-m.stopChan:
				return
			}
		}
	}()
}

// Stop stops the monitoring; it is safe to call more than once
func (m *ConnectionPoolMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopChan) })
}

// Stats returns the most recent sample
func (m *ConnectionPoolMonitor) Stats() sql.DBStats {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.stats
}

func (m *ConnectionPoolMonitor) collect() {
	stats := m.db.Stats()

	m.mutex.Lock()
	m.stats = stats
	m.mutex.Unlock()

	if stats.MaxOpenConnections > 0 && float64(stats.InUse) > float64(stats.MaxOpenConnections)*0.8 {
		m.logger.Warn("Database connection pool nearly exhausted", map[string]any{
			"in_use":           stats.InUse,
			"max_open":         stats.MaxOpenConnections,
			"idle":             stats.Idle,
			"wait_count":       stats.WaitCount,
			"wait_duration_ms": stats.WaitDuration.Milliseconds(),
		})
	}
}
