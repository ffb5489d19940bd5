package source

import "context"

// Resource is a raw migration candidate read from a location
type Resource struct {
	Filename string // base name, e.g. V1_2__add_users.sql
	Location string // full path including the location root
	Content  []byte
}

// ResourceProvider lists migration scripts from one location
type ResourceProvider interface {
	// Location identifies the scanned root for error reporting
	Location() string

	// ListResources returns resources whose file name starts with prefix and
	// ends with one of the suffixes
	//
	// Possible errors:
	// - ErrUnreadableLocation: If the location cannot be read
	ListResources(ctx context.Context, prefix string, suffixes []string) ([]Resource, error)
}

// CodeMigration describes a migration implemented in Go
type CodeMigration struct {
	Version     string // empty for repeatable migrations
	Description string
	Name        string
	Checksum    *int32
}

// CodeMigrationProvider supplies code-based migrations
type CodeMigrationProvider interface {
	Location() string
	LoadMigrations(ctx context.Context) ([]CodeMigration, error)
}
