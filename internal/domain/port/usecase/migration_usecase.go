package usecase

import (
	"context"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"
)

// MigrationInfoService is a read-only reconciliation snapshot.
// Every list is ordered versioned ascending, then repeatables by description.
type MigrationInfoService interface {
	All() []entity.MigrationInfo
	Pending() []entity.MigrationInfo
	Applied() []entity.MigrationInfo
	Resolved() []entity.MigrationInfo
	Failed() []entity.MigrationInfo
	Future() []entity.MigrationInfo
	OutOfOrder() []entity.MigrationInfo
	Outdated() []entity.MigrationInfo
	ByState(state entity.MigrationState) []entity.MigrationInfo

	// Current returns the applied versioned migration with the highest installed rank, or nil
	Current() *entity.MigrationInfo
	// Next returns the first pending migration after Current, or nil
	Next() *entity.MigrationInfo

	CurrentVersion() (entity.Version, bool)
	NextVersion() (entity.Version, bool)

	// Validate lists every inconsistency found in the snapshot
	Validate() []errs.ValidationIssue
}

// BaselineRequest overrides the configured baseline version and description
type BaselineRequest struct {
	Version     string
	Description string
}

// MigrationUseCase defines the command drivers operating on the schema history
type MigrationUseCase interface {
	// Info reconciles the resolved migrations with the schema history
	Info(ctx context.Context) (MigrationInfoService, error)

	// Validate reports every inconsistency at once.
	// Returns a ValidationError alongside the result when a fatal issue exists.
	Validate(ctx context.Context) (*entity.ValidateResult, error)

	// Migrate applies pending migrations up to the target under the migration lock
	Migrate(ctx context.Context, target entity.TargetVersion) (*entity.MigrateResult, error)

	// Baseline marks the schema as trusted at the baseline version
	Baseline(ctx context.Context, req BaselineRequest) (*entity.BaselineResult, error)

	// Repair removes failed rows, handles missing migrations and realigns checksums
	Repair(ctx context.Context) (*entity.RepairResult, error)

	// Liberate converts the legacy schema history table into the current format
	Liberate(ctx context.Context) (*entity.LiberateResult, error)
}
