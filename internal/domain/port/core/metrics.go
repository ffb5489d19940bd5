package core

import "time"

// Metrics records migration outcomes and lock contention
type Metrics interface {
	// ObserveMigration records one executed migration
	ObserveMigration(migrationType string, success bool, duration time.Duration)
	// ObserveLockWait records the time spent waiting for the migration lock
	ObserveLockWait(acquired bool, wait time.Duration)
	// ObserveCommand records one command driver invocation
	ObserveCommand(command string, success bool, duration time.Duration)
}
