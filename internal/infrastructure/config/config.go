package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string           `mapstructure:"environment"`
	Server      ServerConfig     `mapstructure:"server"`
	Database    DatabaseConfig   `mapstructure:"database"`
	Logger      LoggerConfig     `mapstructure:"logger"`
	Migrations  MigrationsConfig `mapstructure:"migrations"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
	QueueCapacity     int           `mapstructure:"queueCapacity"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"timeFormat"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// MigrationsConfig contains resolver, reconciliation and command settings
type MigrationsConfig struct {
	Locations                    []string      `mapstructure:"locations"`
	SQLMigrationPrefix           string        `mapstructure:"sqlMigrationPrefix"`
	RepeatableSQLMigrationPrefix string        `mapstructure:"repeatableSqlMigrationPrefix"`
	BaselineMigrationPrefix      string        `mapstructure:"baselineMigrationPrefix"`
	Separator                    string        `mapstructure:"separator"`
	Suffixes                     []string      `mapstructure:"suffixes"`
	Table                        string        `mapstructure:"table"`
	LegacyTable                  string        `mapstructure:"legacyTable"`
	BaselineVersion              string        `mapstructure:"baselineVersion"`
	BaselineDescription          string        `mapstructure:"baselineDescription"`
	BaselineOnMigrate            bool          `mapstructure:"baselineOnMigrate"`
	OutOfOrder                   bool          `mapstructure:"outOfOrder"`
	CherryPick                   []string      `mapstructure:"cherryPick"`
	IgnorePatterns               []string      `mapstructure:"ignorePatterns"`
	IgnoreMissing                bool          `mapstructure:"ignoreMissing"`
	IgnoreFuture                 bool          `mapstructure:"ignoreFuture"`
	IgnoreChecksumMismatch       bool          `mapstructure:"ignoreChecksumMismatch"`
	ValidateOnMigrate            bool          `mapstructure:"validateOnMigrate"`
	Target                       string        `mapstructure:"target"`
	RepairMissing                string        `mapstructure:"repairMissing"`
	RealignRepeatables           bool          `mapstructure:"realignRepeatables"`
	LockRetryCount               int           `mapstructure:"lockRetryCount"`
	LockRetryInterval            time.Duration `mapstructure:"lockRetryInterval"` // seconds
	LockExpiry                   time.Duration `mapstructure:"lockExpiry"`        // seconds
	InstalledBy                  string        `mapstructure:"installedBy"`
}
