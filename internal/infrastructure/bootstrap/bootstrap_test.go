package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/schema-ledger/internal/domain/usecase/command"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/source"
	timeprovider "github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/config"
)

func sqliteConfig(t *testing.T, locations ...string) *config.Config {
	t.Helper()
	return &config.Config{
		Environment: config.Test,
		Database: config.DatabaseConfig{
			Driver:       "sqlite",
			Database:     filepath.Join(t.TempDir(), "ledger.db"),
			MaxOpenConns: 1,
			MaxIdleConns: 1,
			QueryTimeout: 5 * time.Second,
		},
		Logger: config.LoggerConfig{Level: "error", Format: "json"},
		Migrations: config.MigrationsConfig{
			Locations:           locations,
			Table:               "schema_history",
			LegacyTable:         "legacy_schema_history",
			BaselineVersion:     "1",
			BaselineDescription: "<< Baseline >>",
			IgnoreFuture:        true,
			ValidateOnMigrate:   true,
			Target:              "latest",
			RepairMissing:       "delete",
			LockRetryInterval:   time.Millisecond,
			LockExpiry:          time.Minute,
		},
	}
}

func TestCommandConfig(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Migrations.Target = "3"
	cfg.Migrations.RepairMissing = "keep"
	cfg.Migrations.OutOfOrder = true
	cfg.Migrations.CherryPick = []string{"V2"}

	commandConfig, target, err := CommandConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, entity.TargetSpecific, target.Kind())
	assert.Equal(t, "3", target.String())
	assert.Equal(t, command.RepairKeep, commandConfig.RepairMissing)
	assert.True(t, commandConfig.Reconcile.OutOfOrder)
	assert.Equal(t, []string{"V2"}, commandConfig.Reconcile.CherryPick)
	assert.Equal(t, target, commandConfig.Reconcile.Target)

	cfg.Migrations.Target = "not a version"
	_, _, err = CommandConfig(cfg)
	assert.ErrorIs(t, err, errs.ErrInvalidTarget)

	cfg.Migrations.Target = "latest"
	cfg.Migrations.RepairMissing = "shred"
	_, _, err = CommandConfig(cfg)
	assert.ErrorContains(t, err, "migrations.repairMissing")
}

func TestNamingConfig(t *testing.T) {
	cfg := sqliteConfig(t)
	assert.Equal(t, NamingConfig(cfg), NamingConfig(&config.Config{}))

	cfg.Migrations.SQLMigrationPrefix = "M"
	cfg.Migrations.Separator = "-"
	cfg.Migrations.Suffixes = []string{".sql", ".ddl"}

	naming := NamingConfig(cfg)
	assert.Equal(t, "M", naming.VersionedPrefix)
	assert.Equal(t, "-", naming.Separator)
	assert.Equal(t, []string{".sql", ".ddl"}, naming.Suffixes)
}

func TestResourceProviders(t *testing.T) {
	providers := ResourceProviders([]string{"filesystem:db/a", "db/b"})
	require.Len(t, providers, 2)
	assert.Equal(t, "db/a", providers[0].(*source.FSProvider).Location())
	assert.Equal(t, "db/b", providers[1].(*source.FSProvider).Location())
}

func TestBuild(t *testing.T) {
	scripts := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(scripts, "V1__create_things.sql"),
		[]byte("CREATE TABLE things (id INTEGER PRIMARY KEY);"), 0o600))

	code := source.NewCodeRegistry("")
	code.MustRegister(source.CodeMigrationSpec{
		Version:     "2",
		Description: "seed things",
		Up: func(ctx context.Context, tx *gorm.DB) error {
			return tx.WithContext(ctx).Exec("INSERT INTO things (id) VALUES (1)").Error
		},
	})

	cfg := sqliteConfig(t, scripts)
	app, err := Build(context.Background(), cfg, logger.NewNoopLogger(),
		timeprovider.NewRealTimeProvider(), metrics.NoopMetrics{}, code)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	result, err := app.Service.Migrate(context.Background(), app.Target)
	require.NoError(t, err)
	assert.Equal(t, 2, result.MigrationsExecuted)

	var count int64
	require.NoError(t, app.DB.DB().Table("things").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	info, err := app.Service.Info(context.Background())
	require.NoError(t, err)
	current, ok := info.CurrentVersion()
	require.True(t, ok)
	assert.Equal(t, "2", current.String())
}

func TestBuild_RejectsBadConfiguration(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Migrations.RepairMissing = "shred"

	_, err := Build(context.Background(), cfg, logger.NewNoopLogger(),
		timeprovider.NewRealTimeProvider(), metrics.NoopMetrics{}, nil)
	assert.ErrorIs(t, err, errs.ErrInvalidRequest)
}
