package persistence

import (
	"context"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
)

// SchemaHistoryRepository is the append-only ledger of applied migrations
type SchemaHistoryRepository interface {
	// TableName returns the name of the schema history table
	TableName() string

	// Exists reports whether the schema history table exists
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	Exists(ctx context.Context) (bool, error)

	// Create idempotently ensures the table exists. When baseline is true and
	// the table is empty, it is seeded with a single BASELINE row at the
	// configured baseline version and description.
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, baseline bool) error

	// AllAppliedMigrations returns every row ordered by installed rank ascending
	//
	// Possible errors:
	// - ErrHistoryNotFound: If the table does not exist
	// - ErrDatabaseConnection: If database connection fails
	AllAppliedMigrations(ctx context.Context) ([]entity.AppliedMigration, error)

	// AddAppliedMigration appends one row and assigns the next installed rank atomically.
	// InstalledRank on the argument is ignored; the stored row is returned.
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	AddAppliedMigration(ctx context.Context, migration entity.AppliedMigration) (entity.AppliedMigration, error)

	// AddAppliedMigrations appends rows in order as one unit: when any insert
	// fails, none of the rows are stored
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	AddAppliedMigrations(ctx context.Context, migrations []entity.AppliedMigration) ([]entity.AppliedMigration, error)

	// RemoveAppliedMigration physically removes the row with the given rank
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	RemoveAppliedMigration(ctx context.Context, installedRank int) error

	// AlignAppliedMigration corrects checksum and description of an existing row
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	AlignAppliedMigration(ctx context.Context, installedRank int, checksum *int32, description string) error
}
