package entity

import "time"

// AppliedRecord pairs one schema history row with the state reconciliation assigned to it
type AppliedRecord struct {
	Migration AppliedMigration
	State     MigrationState
}

// MigrationInfo is the reconciled view of one identity. Records hold every
// applied row for the identity in installed rank order; the last one is active.
type MigrationInfo struct {
	Identity Identity
	Resolved *ResolvedMigration
	Records  []AppliedRecord
	State    MigrationState
}

// Applied returns the active history row, or nil when nothing was applied.
// A resolved migration in an unapplied state reports none even when the
// history still holds deleted or excluded rows for it.
func (m MigrationInfo) Applied() *AppliedMigration {
	if len(m.Records) == 0 {
		return nil
	}
	if m.Resolved != nil && !m.State.IsApplied() {
		return nil
	}
	return &m.Records[len(m.Records)-1].Migration
}

// Description prefers the resolved description over the recorded one
func (m MigrationInfo) Description() string {
	if m.Resolved != nil {
		return m.Resolved.Description
	}
	if applied := m.Applied(); applied != nil {
		return applied.Description
	}
	return ""
}

// Type returns the applied type if present, otherwise the resolved type
func (m MigrationInfo) Type() MigrationType {
	if applied := m.Applied(); applied != nil {
		return applied.Type
	}
	if m.Resolved != nil {
		return m.Resolved.Type
	}
	return ""
}

// Script returns the script name
func (m MigrationInfo) Script() string {
	if m.Resolved != nil {
		return m.Resolved.Script
	}
	if applied := m.Applied(); applied != nil {
		return applied.Script
	}
	return ""
}

// Checksum returns the applied checksum if present, otherwise the resolved one
func (m MigrationInfo) Checksum() *int32 {
	if applied := m.Applied(); applied != nil {
		return applied.Checksum
	}
	if m.Resolved != nil {
		return m.Resolved.Checksum
	}
	return nil
}

// InstalledRank returns the rank of the active row, or zero
func (m MigrationInfo) InstalledRank() int {
	if applied := m.Applied(); applied != nil {
		return applied.InstalledRank
	}
	return 0
}

// InstalledOn returns the install time of the active row
func (m MigrationInfo) InstalledOn() *time.Time {
	if applied := m.Applied(); applied != nil {
		t := applied.InstalledOn
		return &t
	}
	return nil
}

// ExecutionTime returns the execution time of the active row in milliseconds
func (m MigrationInfo) ExecutionTime() int {
	if applied := m.Applied(); applied != nil {
		return applied.ExecutionTime
	}
	return 0
}
