package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, env, content string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", env+".yaml"), []byte(content), 0o600))
	t.Chdir(dir)
	t.Setenv("SL_ENV", env)
}

func TestLoad(t *testing.T) {
	t.Run("Defaults apply without a config file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("SL_ENV", "nowhere")

		cfg, err := Load(viper.New())
		require.NoError(t, err)

		assert.Equal(t, "nowhere", cfg.Environment)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, 30*time.Second, cfg.Database.QueryTimeout)
		assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
		assert.Equal(t, 300*time.Second, cfg.Server.WriteTimeout)

		m := cfg.Migrations
		assert.Equal(t, []string{"migrations"}, m.Locations)
		assert.Equal(t, "schema_history", m.Table)
		assert.Equal(t, "legacy_schema_history", m.LegacyTable)
		assert.Equal(t, "V", m.SQLMigrationPrefix)
		assert.Equal(t, "__", m.Separator)
		assert.Equal(t, "1", m.BaselineVersion)
		assert.Equal(t, "latest", m.Target)
		assert.Equal(t, "delete", m.RepairMissing)
		assert.True(t, m.IgnoreFuture)
		assert.True(t, m.ValidateOnMigrate)
		assert.False(t, m.OutOfOrder)
		assert.Equal(t, 50, m.LockRetryCount)
		assert.Equal(t, time.Second, m.LockRetryInterval)
		assert.Equal(t, 10*time.Minute, m.LockExpiry)
	})

	t.Run("File values and environment overrides", func(t *testing.T) {
		writeConfig(t, "staging", `
database:
  driver: mysql
  host: db.internal
  port: "3306"
migrations:
  locations:
    - db/core
    - db/reports
  outOfOrder: true
  cherryPick: ["V3", "R__views"]
  lockRetryInterval: 2
`)
		t.Setenv("SL_DB_PASSWORD", "s3cret")
		t.Setenv("SL_MIGRATIONS_TARGET", "5")
		t.Setenv("SL_LOCK_RETRY_COUNT", "0")

		cfg, err := Load(viper.New())
		require.NoError(t, err)

		assert.Equal(t, "mysql", cfg.Database.Driver)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "3306", cfg.Database.Port)
		assert.Equal(t, "s3cret", cfg.Database.Password)
		assert.Equal(t, []string{"db/core", "db/reports"}, cfg.Migrations.Locations)
		assert.True(t, cfg.Migrations.OutOfOrder)
		assert.Equal(t, []string{"V3", "R__views"}, cfg.Migrations.CherryPick)
		assert.Equal(t, 2*time.Second, cfg.Migrations.LockRetryInterval)
		assert.Equal(t, "5", cfg.Migrations.Target)
		assert.Equal(t, 0, cfg.Migrations.LockRetryCount)
	})

	t.Run("Location list from the environment", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("SL_ENV", "nowhere")
		t.Setenv("SL_MIGRATIONS_LOCATIONS", "sql/a, sql/b,")

		cfg, err := Load(viper.New())
		require.NoError(t, err)
		assert.Equal(t, []string{"sql/a", "sql/b"}, cfg.Migrations.Locations)
	})

	t.Run("Bound flags win over the environment", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("SL_ENV", "nowhere")
		t.Setenv("SL_MIGRATIONS_LOCATIONS", "from/env")
		t.Setenv("SL_DB_HOST", "env-host")

		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.StringSlice("locations", nil, "")
		require.NoError(t, flags.Parse([]string{"--locations", "from/flag"}))

		v := viper.New()
		require.NoError(t, v.BindPFlag("migrations.locations", flags.Lookup("locations")))

		cfg, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, []string{"from/flag"}, cfg.Migrations.Locations)
		assert.Equal(t, "env-host", cfg.Database.Host)
	})

	t.Run("Explicit config file", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		t.Setenv("SL_ENV", "nowhere")
		path := filepath.Join(dir, "ledger.yaml")
		require.NoError(t, os.WriteFile(path, []byte("migrations:\n  table: custom_history\n"), 0o600))

		v := viper.New()
		v.SetConfigFile(path)
		cfg, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, "custom_history", cfg.Migrations.Table)

		v = viper.New()
		v.SetConfigFile(filepath.Join(dir, "missing.yaml"))
		_, err = Load(v)
		assert.Error(t, err)
	})

	t.Run("Malformed file is an error", func(t *testing.T) {
		writeConfig(t, "broken", "migrations: [unterminated")

		_, err := Load(viper.New())
		assert.Error(t, err)
	})
}
