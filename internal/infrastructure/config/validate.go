package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"
)

var supportedDrivers = []string{"postgres", "mysql", "sqlite"}

type requiredSetting struct {
	key   string
	env   string
	value string
}

// Validate ensures all required configuration values are present. It returns
// warnings for settings that are legal but questionable in production.
func Validate(cfg *Config, requireServer bool) ([]string, error) {
	var missingConfigs []string

	if requireServer {
		if cfg.Server.Port == 0 {
			missingConfigs = append(missingConfigs, "server.port")
		}
		if cfg.Server.ReadTimeout == 0 {
			missingConfigs = append(missingConfigs, "server.readTimeout")
		}
		if cfg.Server.WriteTimeout == 0 {
			missingConfigs = append(missingConfigs, "server.writeTimeout")
		}
		if cfg.Server.ShutdownTimeout == 0 {
			missingConfigs = append(missingConfigs, "server.shutdownTimeout")
		}
	}

	driver := strings.ToLower(cfg.Database.Driver)
	if !slices.Contains(supportedDrivers, driver) {
		return nil, fmt.Errorf("invalid database.driver value: %q, must be one of: %s",
			cfg.Database.Driver, strings.Join(supportedDrivers, ", "))
	}

	required := []requiredSetting{
		{"database.database", "SL_DB_NAME", cfg.Database.Database},
	}
	if driver != "sqlite" {
		required = append(required,
			requiredSetting{"database.host", "SL_DB_HOST", cfg.Database.Host},
			requiredSetting{"database.username", "SL_DB_USERNAME", cfg.Database.Username},
		)
	}
	for _, r := range required {
		if r.value != "" {
			continue
		}
		if cfg.Environment == Production && os.Getenv(r.env) == "" {
			missingConfigs = append(missingConfigs, fmt.Sprintf("%s (or %s environment variable)", r.key, r.env))
		} else if cfg.Environment != Production {
			missingConfigs = append(missingConfigs, r.key)
		}
	}

	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}
	if len(cfg.Migrations.Locations) == 0 {
		missingConfigs = append(missingConfigs, "migrations.locations")
	}
	if cfg.Migrations.Table == "" {
		missingConfigs = append(missingConfigs, "migrations.table")
	}

	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != Development &&
		cfg.Environment != Production &&
		cfg.Environment != Test {
		return nil, fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, Development, Production, Test)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if len(missingConfigs) > 0 {
		return nil, fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	if cfg.Environment != Production {
		return nil, nil
	}

	var warnings []string
	if driver == "postgres" {
		switch strings.ToLower(cfg.Database.SSLMode) {
		case "require", "verify-ca", "verify-full":
		default:
			warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
		}
	}
	if requireServer && cfg.Server.ReadTimeout < 5*time.Second {
		warnings = append(warnings, "server.readTimeout is too low for production")
	}
	if requireServer && cfg.Server.WriteTimeout < 5*time.Second {
		warnings = append(warnings, "server.writeTimeout is too low for production")
	}
	if cfg.Migrations.IgnoreChecksumMismatch {
		warnings = append(warnings, "migrations.ignoreChecksumMismatch hides edited scripts in production")
	}
	return warnings, nil
}
