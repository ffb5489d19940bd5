package entity

import "time"

// ResolvedMigration is a migration available for execution, produced by one resolver scan
type ResolvedMigration struct {
	Identity         Identity
	Description      string
	Checksum         *int32 // nil for unchecksummed sources
	Script           string // script name or code migration name
	PhysicalLocation string
	Type             MigrationType
	Body             string // SQL text; empty for code migrations
}

// IsBaselineMigration reports whether this is a baseline migration script
func (m ResolvedMigration) IsBaselineMigration() bool {
	return m.Type == TypeSQLBaseline
}

// AppliedMigration is one row of the schema history
type AppliedMigration struct {
	InstalledRank int
	Identity      Identity
	Description   string
	Type          MigrationType
	Script        string
	Checksum      *int32
	InstalledBy   string
	InstalledOn   time.Time
	ExecutionTime int // milliseconds
	Success       bool
}

// ChecksumsEqual compares two nullable checksums
func ChecksumsEqual(a, b *int32) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Int32Ptr returns a pointer to v
func Int32Ptr(v int32) *int32 {
	return &v
}
