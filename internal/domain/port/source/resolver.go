package source

import (
	"context"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
)

// MigrationResolver produces the catalog of available migrations
type MigrationResolver interface {
	// ResolveMigrations returns versioned migrations by ascending version,
	// followed by repeatable migrations by description
	//
	// Possible errors:
	// - ErrInvalidMigrationName: If a candidate name cannot be parsed
	// - ErrDuplicateMigration: If two sources produce the same identity
	// - ErrUnreadableLocation: If a location cannot be read
	ResolveMigrations(ctx context.Context) ([]entity.ResolvedMigration, error)
}
