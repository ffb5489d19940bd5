package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/schema-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/schema-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/model"
)

// HistoryConfig names the schema history table and the values written by a baseline seed
type HistoryConfig struct {
	Table               string
	BaselineVersion     string
	BaselineDescription string
	InstalledBy         string // empty means the database session user
}

// SchemaHistoryRepository implements the schema history ledger using GORM
type SchemaHistoryRepository struct {
	db                  *gorm.DB
	table               string
	baselineVersion     entity.Version
	baselineDescription string
	installedBy         string
	timeProvider        coreport.TimeProvider
	logger              coreport.Logger
	errorMapper         *database.ErrorMapper
	retrier             *database.Retrier

	userOnce    sync.Once
	sessionUser string
}

var _ persistence.SchemaHistoryRepository = (*SchemaHistoryRepository)(nil)

// NewSchemaHistoryRepository creates a new SchemaHistoryRepository instance
func NewSchemaHistoryRepository(
	db *gorm.DB,
	cfg HistoryConfig,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	errorMapper *database.ErrorMapper,
) (*SchemaHistoryRepository, error) {
	if cfg.Table == "" {
		return nil, fmt.Errorf("%w: schema history table name is required", errs.ErrInvalidRequest)
	}
	baselineVersion, err := entity.ParseVersion(cfg.BaselineVersion)
	if err != nil {
		return nil, err
	}

	retryConfig := database.DefaultRetryConfig()
	// Rank assignment races only with writers that bypass the migration lock
	retryConfig.RetryConflicts = true

	return &SchemaHistoryRepository{
		db:                  db,
		table:               cfg.Table,
		baselineVersion:     baselineVersion,
		baselineDescription: cfg.BaselineDescription,
		installedBy:         cfg.InstalledBy,
		timeProvider:        timeProvider,
		logger:              logger,
		errorMapper:         errorMapper,
		retrier:             database.NewRetrier(retryConfig, errorMapper, timeProvider, logger),
	}, nil
}

// TableName returns the name of the schema history table
func (r *SchemaHistoryRepository) TableName() string {
	return r.table
}

func (r *SchemaHistoryRepository) scoped(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

// Exists reports whether the schema history table exists
func (r *SchemaHistoryRepository) Exists(ctx context.Context) (bool, error) {
	exists := r.db.WithContext(ctx).Migrator().HasTable(r.table)
	return exists, nil
}

// Create idempotently creates the table and optionally seeds a baseline row
func (r *SchemaHistoryRepository) Create(ctx context.Context, baseline bool) error {
	if !r.db.WithContext(ctx).Migrator().HasTable(r.table) {
		r.logger.Info("Creating schema history table", map[string]any{
			"table": r.table,
		})
		if err := r.scoped(ctx).AutoMigrate(&model.SchemaHistory{}); err != nil {
			r.logger.Error("Failed to create schema history table", map[string]any{
				"table": r.table,
				"error": err.Error(),
			})
			return r.errorMapper.MapError(err, "create schema history table")
		}
	}

	if !baseline {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Table(r.table).Count(&count).Error; err != nil {
			return r.errorMapper.MapError(err, "count schema history")
		}
		if count > 0 {
			return nil
		}

		row := &model.SchemaHistory{
			InstalledRank: 1,
			Version:       entity.VersionedIdentity(r.baselineVersion).VersionString(),
			Description:   r.baselineDescription,
			Type:          entity.TypeBaseline.String(),
			Script:        r.baselineDescription,
			InstalledBy:   r.resolveInstalledBy(ctx, ""),
			InstalledOn:   r.timeProvider.Now().UTC(),
			Success:       true,
		}
		if err := tx.Table(r.table).Create(row).Error; err != nil {
			return r.errorMapper.MapError(err, "seed baseline")
		}

		r.logger.Info("Seeded schema history with baseline", map[string]any{
			"table":   r.table,
			"version": r.baselineVersion.String(),
		})
		return nil
	})
}

// AllAppliedMigrations returns every row ordered by installed rank ascending
func (r *SchemaHistoryRepository) AllAppliedMigrations(ctx context.Context) ([]entity.AppliedMigration, error) {
	return readHistory(ctx, r.db, r.table, r.errorMapper)
}

// AddAppliedMigration appends one row at MAX(installed_rank)+1 inside a transaction
func (r *SchemaHistoryRepository) AddAppliedMigration(ctx context.Context, migration entity.AppliedMigration) (entity.AppliedMigration, error) {
	stored, err := r.AddAppliedMigrations(ctx, []entity.AppliedMigration{migration})
	if err != nil {
		return entity.AppliedMigration{}, err
	}
	return stored[0], nil
}

// AddAppliedMigrations appends rows in order inside a single transaction, so
// either every row is stored or none is
func (r *SchemaHistoryRepository) AddAppliedMigrations(ctx context.Context, migrations []entity.AppliedMigration) ([]entity.AppliedMigration, error) {
	if len(migrations) == 0 {
		return nil, nil
	}

	rows := make([]*model.SchemaHistory, len(migrations))
	for i, migration := range migrations {
		row := toHistoryModel(migration)
		row.InstalledBy = r.resolveInstalledBy(ctx, migration.InstalledBy)
		if row.InstalledOn.IsZero() {
			row.InstalledOn = r.timeProvider.Now()
		}
		row.InstalledOn = row.InstalledOn.UTC()
		rows[i] = row
	}

	err := r.retrier.Do(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var maxRank int
			if err := tx.Table(r.table).Select("COALESCE(MAX(installed_rank), 0)").Scan(&maxRank).Error; err != nil {
				return err
			}
			for i, row := range rows {
				row.InstalledRank = maxRank + i + 1
				if err := tx.Table(r.table).Create(row).Error; err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		r.logger.Error("Failed to record applied migrations", map[string]any{
			"table":   r.table,
			"rows":    len(migrations),
			"version": migrations[0].Identity.String(),
			"error":   err.Error(),
		})
		return nil, r.errorMapper.MapError(err, "add applied migration")
	}

	stored := make([]entity.AppliedMigration, len(migrations))
	for i, migration := range migrations {
		row := rows[i]
		r.logger.Debug("Recorded applied migration", map[string]any{
			"table":          r.table,
			"installed_rank": row.InstalledRank,
			"version":        migration.Identity.String(),
			"success":        row.Success,
		})

		migration.InstalledRank = row.InstalledRank
		migration.InstalledBy = row.InstalledBy
		migration.InstalledOn = row.InstalledOn
		stored[i] = migration
	}
	return stored, nil
}

// RemoveAppliedMigration physically removes the row with the given rank
func (r *SchemaHistoryRepository) RemoveAppliedMigration(ctx context.Context, installedRank int) error {
	result := r.scoped(ctx).Where("installed_rank = ?", installedRank).Delete(&model.SchemaHistory{})
	if result.Error != nil {
		return r.errorMapper.MapError(result.Error, "remove applied migration")
	}

	r.logger.Info("Removed schema history row", map[string]any{
		"table":          r.table,
		"installed_rank": installedRank,
		"rows":           result.RowsAffected,
	})
	return nil
}

// AlignAppliedMigration corrects checksum and description of an existing row
func (r *SchemaHistoryRepository) AlignAppliedMigration(ctx context.Context, installedRank int, checksum *int32, description string) error {
	result := r.scoped(ctx).
		Where("installed_rank = ?", installedRank).
		Updates(map[string]any{
			"checksum":    checksum,
			"description": description,
		})
	if result.Error != nil {
		return r.errorMapper.MapError(result.Error, "align applied migration")
	}

	r.logger.Info("Aligned schema history row", map[string]any{
		"table":          r.table,
		"installed_rank": installedRank,
		"rows":           result.RowsAffected,
	})
	return nil
}

// resolveInstalledBy prefers the explicit value, then the configured one, then the session user
func (r *SchemaHistoryRepository) resolveInstalledBy(ctx context.Context, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if r.installedBy != "" {
		return r.installedBy
	}
	r.userOnce.Do(func() {
		r.sessionUser = sessionUser(ctx, r.db)
	})
	return r.sessionUser
}

// sessionUser returns the database user of the current connection, or "" when the dialect has none
func sessionUser(ctx context.Context, db *gorm.DB) string {
	var query string
	switch db.Dialector.Name() {
	case "postgres":
		query = "SELECT current_user"
	case "mysql":
		query = "SELECT CURRENT_USER()"
	default:
		return ""
	}

	var user string
	if err := db.WithContext(ctx).Raw(query).Scan(&user).Error; err != nil {
		return ""
	}
	return user
}

// readHistory loads a history-shaped table ordered by installed rank
func readHistory(ctx context.Context, db *gorm.DB, table string, errorMapper *database.ErrorMapper) ([]entity.AppliedMigration, error) {
	if !db.WithContext(ctx).Migrator().HasTable(table) {
		return nil, fmt.Errorf("%w: %s", errs.ErrHistoryNotFound, table)
	}

	var rows []model.SchemaHistory
	if err := db.WithContext(ctx).Table(table).Order("installed_rank ASC").Find(&rows).Error; err != nil {
		return nil, errorMapper.MapError(err, "read "+table)
	}

	applied := make([]entity.AppliedMigration, 0, len(rows))
	for _, row := range rows {
		migration, err := toAppliedEntity(row)
		if err != nil {
			return nil, fmt.Errorf("%s rank %d: %w", table, row.InstalledRank, err)
		}
		applied = append(applied, migration)
	}
	return applied, nil
}

func toAppliedEntity(row model.SchemaHistory) (entity.AppliedMigration, error) {
	identity, err := entity.NewIdentity(row.Version, row.Description)
	if err != nil {
		return entity.AppliedMigration{}, err
	}
	migrationType, ok := entity.ParseMigrationType(row.Type)
	if !ok {
		return entity.AppliedMigration{}, errors.New("unknown migration type " + row.Type)
	}

	return entity.AppliedMigration{
		InstalledRank: row.InstalledRank,
		Identity:      identity,
		Description:   row.Description,
		Type:          migrationType,
		Script:        row.Script,
		Checksum:      row.Checksum,
		InstalledBy:   row.InstalledBy,
		InstalledOn:   row.InstalledOn,
		ExecutionTime: row.ExecutionTime,
		Success:       row.Success,
	}, nil
}

func toHistoryModel(migration entity.AppliedMigration) *model.SchemaHistory {
	return &model.SchemaHistory{
		InstalledRank: migration.InstalledRank,
		Version:       migration.Identity.VersionString(),
		Description:   migration.Description,
		Type:          migration.Type.String(),
		Script:        migration.Script,
		Checksum:      migration.Checksum,
		InstalledBy:   migration.InstalledBy,
		InstalledOn:   migration.InstalledOn,
		ExecutionTime: migration.ExecutionTime,
		Success:       migration.Success,
	}
}
