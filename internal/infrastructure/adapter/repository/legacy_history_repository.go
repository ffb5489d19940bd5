package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/schema-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/database"
)

// LegacyHistoryRepository reads a legacy schema history table. The legacy layout
// shares the current columns, so it reuses the history model.
type LegacyHistoryRepository struct {
	db          *gorm.DB
	table       string
	errorMapper *database.ErrorMapper
}

var _ persistence.LegacyHistoryRepository = (*LegacyHistoryRepository)(nil)

// NewLegacyHistoryRepository creates a new LegacyHistoryRepository instance
func NewLegacyHistoryRepository(db *gorm.DB, table string, errorMapper *database.ErrorMapper) *LegacyHistoryRepository {
	return &LegacyHistoryRepository{
		db:          db,
		table:       table,
		errorMapper: errorMapper,
	}
}

// TableName returns the name of the legacy table
func (r *LegacyHistoryRepository) TableName() string {
	return r.table
}

// AllLegacyMigrations returns every legacy row ordered by installed rank ascending
func (r *LegacyHistoryRepository) AllLegacyMigrations(ctx context.Context) ([]entity.AppliedMigration, error) {
	return readHistory(ctx, r.db, r.table, r.errorMapper)
}
