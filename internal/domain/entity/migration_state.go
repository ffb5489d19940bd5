package entity

// MigrationState is the reconciled lifecycle state of a migration
type MigrationState string

// Migration states
const (
	StatePending        MigrationState = "PENDING"
	StateIgnored        MigrationState = "IGNORED"
	StateSuccess        MigrationState = "SUCCESS"
	StateFailed         MigrationState = "FAILED"
	StateOutOfOrder     MigrationState = "OUT_OF_ORDER"
	StateBaseline       MigrationState = "BASELINE"
	StateSuperseded     MigrationState = "SUPERSEDED"
	StateOutdated       MigrationState = "OUTDATED"
	StateMissingSuccess MigrationState = "MISSING_SUCCESS"
	StateMissingFailed  MigrationState = "MISSING_FAILED"
	StateFutureSuccess  MigrationState = "FUTURE_SUCCESS"
	StateFutureFailed   MigrationState = "FUTURE_FAILED"
	StateDeleted        MigrationState = "DELETED"
)

// AllStates lists every state in declaration order
var AllStates = []MigrationState{
	StatePending, StateIgnored, StateSuccess, StateFailed, StateOutOfOrder,
	StateBaseline, StateSuperseded, StateOutdated, StateMissingSuccess,
	StateMissingFailed, StateFutureSuccess, StateFutureFailed, StateDeleted,
}

// IsApplied reports whether the state reflects a live row in the schema history
func (s MigrationState) IsApplied() bool {
	switch s {
	case StatePending, StateIgnored, StateDeleted:
		return false
	}
	return true
}

// IsResolved reports whether the state implies a resolved migration exists
func (s MigrationState) IsResolved() bool {
	switch s {
	case StateMissingSuccess, StateMissingFailed, StateFutureSuccess, StateFutureFailed, StateDeleted:
		return false
	}
	return true
}

// IsFailed reports whether the last execution failed
func (s MigrationState) IsFailed() bool {
	return s == StateFailed || s == StateMissingFailed || s == StateFutureFailed
}

// IsFuture reports whether the migration is ahead of every resolved migration
func (s MigrationState) IsFuture() bool {
	return s == StateFutureSuccess || s == StateFutureFailed
}

// IsMissing reports whether the applied migration can no longer be resolved
func (s MigrationState) IsMissing() bool {
	return s == StateMissingSuccess || s == StateMissingFailed
}

// ParseMigrationState returns the state with the given name
func ParseMigrationState(name string) (MigrationState, bool) {
	for _, s := range AllStates {
		if string(s) == name {
			return s, true
		}
	}
	return "", false
}
