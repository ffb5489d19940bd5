package bootstrap

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/schema-ledger/internal/domain/port/core"
	sourceport "github.com/amirhossein-jamali/schema-ledger/internal/domain/port/source"
	"github.com/amirhossein-jamali/schema-ledger/internal/domain/usecase/command"
	"github.com/amirhossein-jamali/schema-ledger/internal/domain/usecase/reconcile"
	"github.com/amirhossein-jamali/schema-ledger/internal/domain/usecase/resolve"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/executor"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/repository"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/source"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/config"
)

// App holds the wired command service and the resources it owns
type App struct {
	Config  *config.Config
	DB      *database.Manager
	History *repository.SchemaHistoryRepository
	Service *command.Service
	Target  entity.TargetVersion
}

// NewLogger builds the zap logger described by the logger section; output
// overrides the configured destination when not empty
func NewLogger(cfg *config.Config, output string) (*logger.ZapLogger, error) {
	if output == "" {
		output = cfg.Logger.Output
	}
	return logger.NewZapLogger(logger.Options{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     output,
		TimeFormat: cfg.Logger.TimeFormat,
		CallerInfo: cfg.Logger.CallerInfo,
		Production: cfg.Environment == config.Production,
	})
}

// Build connects to the database and wires the resolver, history store, lock
// and executor into a command service. code may be nil.
func Build(
	ctx context.Context,
	cfg *config.Config,
	log coreport.Logger,
	timeProvider coreport.TimeProvider,
	metrics coreport.Metrics,
	code *source.CodeRegistry,
) (*App, error) {
	commandConfig, target, err := CommandConfig(cfg)
	if err != nil {
		return nil, err
	}

	manager := database.NewManager(database.NewConfig(cfg), log, timeProvider)
	db, err := manager.Connect(ctx)
	if err != nil {
		return nil, err
	}

	m := cfg.Migrations
	history, err := repository.NewSchemaHistoryRepository(db, repository.HistoryConfig{
		Table:               m.Table,
		BaselineVersion:     m.BaselineVersion,
		BaselineDescription: m.BaselineDescription,
		InstalledBy:         m.InstalledBy,
	}, timeProvider, log, manager.ErrorMapper())
	if err != nil {
		_ = manager.Close()
		return nil, err
	}

	legacy := repository.NewLegacyHistoryRepository(db, m.LegacyTable, manager.ErrorMapper())
	lock := repository.NewMigrationLock(db, manager.Driver(), repository.LockConfig{
		HistoryTable:  m.Table,
		RetryCount:    m.LockRetryCount,
		RetryInterval: m.LockRetryInterval,
		Expiry:        m.LockExpiry,
	}, metrics, timeProvider, log, manager.ErrorMapper())

	var codeProviders []sourceport.CodeMigrationProvider
	var lookup executor.CodeLookup
	if code != nil {
		codeProviders = append(codeProviders, code)
		lookup = code
	}
	resolver := resolve.NewResolver(NamingConfig(cfg), log, ResourceProviders(m.Locations), codeProviders)

	service := command.NewService(
		resolver,
		history,
		legacy,
		lock,
		executor.NewGormExecutor(db, lookup, log),
		timeProvider,
		metrics,
		log,
		commandConfig,
	)

	return &App{
		Config:  cfg,
		DB:      manager,
		History: history,
		Service: service,
		Target:  target,
	}, nil
}

// Close releases the database connection
func (a *App) Close() error {
	return a.DB.Close()
}

// CommandConfig translates the migrations section into command settings and
// returns the configured default target
func CommandConfig(cfg *config.Config) (command.Config, entity.TargetVersion, error) {
	m := cfg.Migrations

	target, err := entity.ParseTargetVersion(m.Target)
	if err != nil {
		return command.Config{}, entity.TargetVersion{}, fmt.Errorf("migrations.target: %w", err)
	}
	strategy, err := command.ParseRepairStrategy(m.RepairMissing)
	if err != nil {
		return command.Config{}, entity.TargetVersion{}, fmt.Errorf("migrations.repairMissing: %w", err)
	}

	return command.Config{
		Reconcile: reconcile.Config{
			CherryPick:             m.CherryPick,
			IgnorePatterns:         m.IgnorePatterns,
			OutOfOrder:             m.OutOfOrder,
			IgnoreMissing:          m.IgnoreMissing,
			IgnoreFuture:           m.IgnoreFuture,
			IgnoreChecksumMismatch: m.IgnoreChecksumMismatch,
			Target:                 target,
		},
		BaselineVersion:     m.BaselineVersion,
		BaselineDescription: m.BaselineDescription,
		BaselineOnMigrate:   m.BaselineOnMigrate,
		ValidateOnMigrate:   m.ValidateOnMigrate,
		RepairMissing:       strategy,
		RealignRepeatables:  m.RealignRepeatables,
		InstalledBy:         m.InstalledBy,
	}, target, nil
}

// NamingConfig returns the script naming convention of the migrations section
func NamingConfig(cfg *config.Config) resolve.NamingConfig {
	m := cfg.Migrations
	naming := resolve.DefaultNamingConfig()
	if m.SQLMigrationPrefix != "" {
		naming.VersionedPrefix = m.SQLMigrationPrefix
	}
	if m.RepeatableSQLMigrationPrefix != "" {
		naming.RepeatablePrefix = m.RepeatableSQLMigrationPrefix
	}
	if m.BaselineMigrationPrefix != "" {
		naming.BaselinePrefix = m.BaselineMigrationPrefix
	}
	if m.Separator != "" {
		naming.Separator = m.Separator
	}
	if len(m.Suffixes) > 0 {
		naming.Suffixes = m.Suffixes
	}
	return naming
}

// ResourceProviders creates one directory provider per location
func ResourceProviders(locations []string) []sourceport.ResourceProvider {
	providers := make([]sourceport.ResourceProvider, 0, len(locations))
	for _, location := range locations {
		providers = append(providers, source.NewDirProvider(location))
	}
	return providers
}
