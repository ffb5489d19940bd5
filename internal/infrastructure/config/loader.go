package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix is the prefix of every environment variable read by the loader
const EnvPrefix = "SL"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
	"../../configs/.env",
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	return Load(viper.New())
}

// Load reads configuration into v and decodes it. A config file set on v with
// SetConfigFile replaces the environment named file and must exist.
func Load(v *viper.Viper) (*Config, error) {
	// Missing .env files are normal outside local development
	_ = loadDotEnvFile()

	env := getEnvironment()

	// SetConfigName clears a file set with SetConfigFile, so only search when none was given
	explicit := v.ConfigFileUsed()
	if explicit == "" {
		v.SetConfigName(env)
		v.SetConfigType("yaml")
		for _, path := range ConfigPaths {
			v.AddConfigPath(path)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processLists(&config)
	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile loads the first readable .env file from the search paths
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			lastError = err
			continue
		}
		return nil
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for every non-secret setting
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 300)     // seconds, migrate requests can be long
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 30)   // seconds
	v.SetDefault("server.queueCapacity", 16)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 10)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 30)    // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1) // seconds

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.callerInfo", true)

	v.SetDefault("migrations.locations", []string{"migrations"})
	v.SetDefault("migrations.sqlMigrationPrefix", "V")
	v.SetDefault("migrations.repeatableSqlMigrationPrefix", "R")
	v.SetDefault("migrations.baselineMigrationPrefix", "B")
	v.SetDefault("migrations.separator", "__")
	v.SetDefault("migrations.suffixes", []string{".sql"})
	v.SetDefault("migrations.table", "schema_history")
	v.SetDefault("migrations.legacyTable", "legacy_schema_history")
	v.SetDefault("migrations.baselineVersion", "1")
	v.SetDefault("migrations.baselineDescription", "<< Baseline >>")
	v.SetDefault("migrations.baselineOnMigrate", false)
	v.SetDefault("migrations.outOfOrder", false)
	v.SetDefault("migrations.cherryPick", []string{})
	v.SetDefault("migrations.ignorePatterns", []string{})
	v.SetDefault("migrations.ignoreMissing", false)
	v.SetDefault("migrations.ignoreFuture", true)
	v.SetDefault("migrations.ignoreChecksumMismatch", false)
	v.SetDefault("migrations.validateOnMigrate", true)
	v.SetDefault("migrations.target", "latest")
	v.SetDefault("migrations.repairMissing", "delete")
	v.SetDefault("migrations.realignRepeatables", false)
	v.SetDefault("migrations.lockRetryCount", 50)
	v.SetDefault("migrations.lockRetryInterval", 1) // seconds
	v.SetDefault("migrations.lockExpiry", 600)      // seconds
	v.SetDefault("migrations.installedBy", "")
}

// getEnvironment determines the environment from SL_ENV
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides binds the short environment names used for secrets and
// connection settings to their configuration keys. Bound flags still win.
func processEnvOverrides(v *viper.Viper) {
	envOverrides := map[string]string{
		"database.driver":           "SL_DB_DRIVER",
		"database.host":             "SL_DB_HOST",
		"database.port":             "SL_DB_PORT",
		"database.username":         "SL_DB_USERNAME",
		"database.password":         "SL_DB_PASSWORD",
		"database.database":         "SL_DB_NAME",
		"database.sslMode":          "SL_DB_SSL_MODE",
		"database.maxOpenConns":     "SL_DB_MAX_OPEN_CONNS",
		"database.maxIdleConns":     "SL_DB_MAX_IDLE_CONNS",
		"database.queryTimeout":     "SL_DB_QUERY_TIMEOUT_SECONDS",
		"database.retryAttempts":    "SL_DB_RETRY_ATTEMPTS",
		"server.host":               "SL_SERVER_HOST",
		"server.port":               "SL_SERVER_PORT",
		"logger.level":              "SL_LOGGER_LEVEL",
		"migrations.installedBy":    "SL_MIGRATIONS_USER",
		"migrations.locations":      "SL_MIGRATIONS_LOCATIONS",
		"migrations.lockRetryCount": "SL_LOCK_RETRY_COUNT",
	}
	for key, env := range envOverrides {
		// BindEnv only fails without arguments
		_ = v.BindEnv(key, env)
	}
}

func splitList(items []string) []string {
	var cleaned []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				cleaned = append(cleaned, part)
			}
		}
	}
	return cleaned
}

// processLists trims list entries that came from comma separated environment values
func processLists(config *Config) {
	m := &config.Migrations
	m.Locations = splitList(m.Locations)
	m.Suffixes = splitList(m.Suffixes)
	m.CherryPick = splitList(m.CherryPick)
	m.IgnorePatterns = splitList(m.IgnorePatterns)
}

// processDurations converts raw second and minute counts into durations
func processDurations(config *Config) {
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute

	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Database.RetryDelay = time.Duration(config.Database.RetryDelay) * time.Second

	config.Migrations.LockRetryInterval = time.Duration(config.Migrations.LockRetryInterval) * time.Second
	config.Migrations.LockExpiry = time.Duration(config.Migrations.LockExpiry) * time.Second
}
