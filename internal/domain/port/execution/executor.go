package execution

import (
	"context"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
)

// MigrationExecutor runs one resolved migration against the target database
type MigrationExecutor interface {
	// Execute applies the migration; a returned error means the migration failed
	Execute(ctx context.Context, migration entity.ResolvedMigration) error
}
