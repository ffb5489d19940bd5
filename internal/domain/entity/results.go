package entity

import errs "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"

// BaselineResult reports the outcome of a baseline command
type BaselineResult struct {
	SchemaHistoryTable    string `json:"schemaHistoryTable" yaml:"schemaHistoryTable"`
	BaselineVersion       string `json:"baselineVersion" yaml:"baselineVersion"`
	BaselineDescription   string `json:"baselineDescription" yaml:"baselineDescription"`
	SuccessfullyBaselined bool   `json:"successfullyBaselined" yaml:"successfullyBaselined"`
}

// RepairOutput describes one schema history entry touched by repair
type RepairOutput struct {
	Version       string `json:"version,omitempty" yaml:"version,omitempty"`
	Description   string `json:"description" yaml:"description"`
	Script        string `json:"script" yaml:"script"`
	InstalledRank int    `json:"installedRank" yaml:"installedRank"`
}

// RepairResult reports the three disjoint groups of repaired entries
type RepairResult struct {
	SchemaHistoryTable string         `json:"schemaHistoryTable" yaml:"schemaHistoryTable"`
	MigrationsRemoved  []RepairOutput `json:"migrationsRemoved" yaml:"migrationsRemoved"`
	MigrationsDeleted  []RepairOutput `json:"migrationsDeleted" yaml:"migrationsDeleted"`
	MigrationsAligned  []RepairOutput `json:"migrationsAligned" yaml:"migrationsAligned"`
}

// Liberate action types
const (
	ActionCopiedVersioned   = "copied_versioned_migration"
	ActionCopiedRepeatable  = "copied_repeatable_migration"
	ActionCopiedBaseline    = "copied_baseline_migration"
	ActionSkippedUndo       = "skipped_undo_migration"
	ActionSkippedUndone     = "skipped_undone_migration"
	ActionSkippedDelete     = "skipped_delete_marker"
	ActionSkippedDeletedRow = "skipped_deleted_migration"
)

// LiberateAction is one entry of the liberate audit log
type LiberateAction struct {
	Type          string `json:"type" yaml:"type"`
	Version       string `json:"version,omitempty" yaml:"version,omitempty"`
	Description   string `json:"description" yaml:"description"`
	Script        string `json:"script,omitempty" yaml:"script,omitempty"`
	InstalledRank int    `json:"installedRank" yaml:"installedRank"`
}

// LiberateResult reports the conversion of a legacy schema history table
type LiberateResult struct {
	OldSchemaHistoryTable string           `json:"oldSchemaHistoryTable" yaml:"oldSchemaHistoryTable"`
	SchemaHistoryTable    string           `json:"schemaHistoryTable" yaml:"schemaHistoryTable"`
	Actions               []LiberateAction `json:"actions" yaml:"actions"`
}

// MigrateOutput describes one executed migration
type MigrateOutput struct {
	Category      string `json:"category" yaml:"category"`
	Version       string `json:"version,omitempty" yaml:"version,omitempty"`
	Description   string `json:"description" yaml:"description"`
	Type          string `json:"type" yaml:"type"`
	Script        string `json:"script" yaml:"script"`
	ExecutionTime int    `json:"executionTime" yaml:"executionTime"`
	Success       bool   `json:"success" yaml:"success"`
}

// MigrateResult reports the outcome of a migrate command
type MigrateResult struct {
	SchemaHistoryTable   string          `json:"schemaHistoryTable" yaml:"schemaHistoryTable"`
	InitialSchemaVersion string          `json:"initialSchemaVersion,omitempty" yaml:"initialSchemaVersion,omitempty"`
	TargetSchemaVersion  string          `json:"targetSchemaVersion,omitempty" yaml:"targetSchemaVersion,omitempty"`
	MigrationsExecuted   int             `json:"migrationsExecuted" yaml:"migrationsExecuted"`
	Migrations           []MigrateOutput `json:"migrations" yaml:"migrations"`
	Success              bool            `json:"success" yaml:"success"`
	Warnings             []string        `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// ValidateResult reports the outcome of a validate command
type ValidateResult struct {
	ValidationSuccessful bool                   `json:"validationSuccessful" yaml:"validationSuccessful"`
	ValidateCount        int                    `json:"validateCount" yaml:"validateCount"`
	Issues               []errs.ValidationIssue `json:"issues" yaml:"issues"`
}
