package persistence

import (
	"context"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
)

// LegacyHistoryRepository reads a schema history table written in the legacy format
type LegacyHistoryRepository interface {
	// TableName returns the name of the legacy table
	TableName() string

	// AllLegacyMigrations returns every legacy row ordered by installed rank ascending.
	// Undo rows carry an UNDO_* type and deletion markers carry the DELETE type.
	//
	// Possible errors:
	// - ErrHistoryNotFound: If the legacy table does not exist
	// - ErrDatabaseConnection: If database connection fails
	AllLegacyMigrations(ctx context.Context) ([]entity.AppliedMigration, error)
}
