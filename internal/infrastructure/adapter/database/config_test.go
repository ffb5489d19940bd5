package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/config"
)

func validConfig(driver string) *Config {
	return &Config{
		Driver:        driver,
		Host:          "db.internal",
		Port:          ParsePort(driver, ""),
		Username:      "ledger",
		Password:      "s3cret",
		Database:      "app",
		SSLMode:       "disable",
		MaxOpenConns:  5,
		MaxIdleConns:  2,
		QueryTimeout:  10 * time.Second,
		LogLevel:      "info",
		RetryAttempts: 2,
		RetryDelay:    time.Second,
	}
}

func TestConfig_DSN(t *testing.T) {
	t.Run("Postgres keyword form", func(t *testing.T) {
		cfg := validConfig(DriverPostgres)
		assert.Equal(t, "host=db.internal port=5432 user=ledger password=s3cret dbname=app sslmode=disable", cfg.DSN())
	})

	t.Run("MySQL enables multi statements and time parsing", func(t *testing.T) {
		dsn := validConfig(DriverMySQL).DSN()
		assert.Contains(t, dsn, "ledger:s3cret@tcp(db.internal:3306)/app")
		assert.Contains(t, dsn, "multiStatements=true")
		assert.Contains(t, dsn, "parseTime=true")
	})

	t.Run("SQLite uses the database path", func(t *testing.T) {
		cfg := &Config{Driver: DriverSQLite, Database: "ledger.db"}
		assert.Equal(t, "ledger.db", cfg.DSN())
		assert.Equal(t, "ledger.db", cfg.Redacted())
	})

	t.Run("Redacted hides the password", func(t *testing.T) {
		redacted := validConfig(DriverPostgres).Redacted()
		assert.Equal(t, "ledger@db.internal:5432/app", redacted)
		assert.NotContains(t, redacted, "s3cret")
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "Valid postgres", mutate: func(c *Config) {}},
		{name: "Valid mysql ignores ssl mode", mutate: func(c *Config) { c.Driver = DriverMySQL; c.SSLMode = "whatever" }},
		{name: "Valid sqlite needs only a path", mutate: func(c *Config) { *c = Config{Driver: DriverSQLite, Database: ":memory:", MaxOpenConns: 1, QueryTimeout: time.Second, LogLevel: "warn"} }},
		{name: "Unknown driver", mutate: func(c *Config) { c.Driver = "oracle" }, wantErr: "unsupported database driver"},
		{name: "Missing host", mutate: func(c *Config) { c.Host = "" }, wantErr: "host is required"},
		{name: "Bad port", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "invalid port"},
		{name: "Bad ssl mode", mutate: func(c *Config) { c.SSLMode = "sometimes" }, wantErr: "invalid SSL mode"},
		{name: "No pool", mutate: func(c *Config) { c.MaxOpenConns = 0 }, wantErr: "max open connections"},
		{name: "No query timeout", mutate: func(c *Config) { c.QueryTimeout = 0 }, wantErr: "query timeout"},
		{name: "Bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(DriverPostgres)
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewConfig(t *testing.T) {
	conf := &config.Config{
		Database: config.DatabaseConfig{
			Driver:       "MySQL",
			Host:         "mysql",
			Port:         "",
			Username:     "root",
			Database:     "ledger",
			MaxOpenConns: 3,
			QueryTimeout: 5 * time.Second,
			RetryDelay:   2 * time.Second,
		},
		Logger: config.LoggerConfig{Level: "debug"},
	}

	cfg := NewConfig(conf)
	assert.Equal(t, DriverMySQL, cfg.Driver)
	assert.Equal(t, 3306, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.RetryDelay)
}
