package resolve

import (
	"sort"
	"strings"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"
)

// NamingConfig holds the file naming convention for script migrations
type NamingConfig struct {
	VersionedPrefix  string
	RepeatablePrefix string
	BaselinePrefix   string
	Separator        string
	Suffixes         []string
}

// DefaultNamingConfig returns the V/R/B prefixes with a double underscore separator
func DefaultNamingConfig() NamingConfig {
	return NamingConfig{
		VersionedPrefix:  "V",
		RepeatablePrefix: "R",
		BaselinePrefix:   "B",
		Separator:        "__",
		Suffixes:         []string{".sql"},
	}
}

// Prefixes returns the configured prefixes, longest first
func (c NamingConfig) Prefixes() []string {
	prefixes := make([]string, 0, 3)
	for _, p := range []string{c.VersionedPrefix, c.RepeatablePrefix, c.BaselinePrefix} {
		if p != "" {
			prefixes = append(prefixes, p)
		}
	}
	sort.SliceStable(prefixes, func(i, j int) bool {
		return len(prefixes[i]) > len(prefixes[j])
	})
	return prefixes
}

// ParsedName is the outcome of parsing a migration file name
type ParsedName struct {
	Identity    entity.Identity
	Description string
	Type        entity.MigrationType
}

// ParseMigrationName parses names such as V1_2__Add_users.sql, R__Views.sql or B5__Baseline.sql.
// Anything that looks like a migration but does not parse is an error, never skipped.
func ParseMigrationName(filename, location string, cfg NamingConfig) (ParsedName, error) {
	base, ok := stripSuffix(filename, cfg.Suffixes)
	if !ok {
		return ParsedName{}, errs.NewInvalidMigrationNameError(filename, location, "unsupported suffix", nil)
	}

	prefix := matchPrefix(base, cfg.Prefixes())
	if prefix == "" {
		return ParsedName{}, errs.NewInvalidMigrationNameError(filename, location, "unknown prefix", nil)
	}
	remainder := base[len(prefix):]

	idx := strings.Index(remainder, cfg.Separator)
	if cfg.Separator == "" || idx < 0 {
		return ParsedName{}, errs.NewInvalidMigrationNameError(filename, location,
			"missing separator "+cfg.Separator, nil)
	}
	versionPart := remainder[:idx]
	description := strings.ReplaceAll(remainder[idx+len(cfg.Separator):], "_", " ")

	if prefix == cfg.RepeatablePrefix {
		if strings.TrimSpace(description) == "" {
			return ParsedName{}, errs.NewInvalidMigrationNameError(filename, location,
				"repeatable migration requires a description", nil)
		}
		return ParsedName{
			Identity:    entity.RepeatableIdentity(description),
			Description: description,
			Type:        entity.TypeSQL,
		}, nil
	}

	if versionPart == "" {
		return ParsedName{}, errs.NewInvalidMigrationNameError(filename, location, "empty version", nil)
	}
	version, err := entity.ParseVersion(strings.ReplaceAll(versionPart, "_", "."))
	if err != nil {
		return ParsedName{}, errs.NewInvalidMigrationNameError(filename, location, "invalid version", err)
	}

	migrationType := entity.TypeSQL
	if prefix == cfg.BaselinePrefix {
		migrationType = entity.TypeSQLBaseline
	}

	return ParsedName{
		Identity:    entity.VersionedIdentity(version),
		Description: description,
		Type:        migrationType,
	}, nil
}

func stripSuffix(name string, suffixes []string) (string, bool) {
	for _, suffix := range suffixes {
		if strings.HasSuffix(name, suffix) {
			return strings.TrimSuffix(name, suffix), true
		}
	}
	return name, false
}

func matchPrefix(name string, prefixes []string) string {
	for _, prefix := range prefixes {
		if strings.HasPrefix(name, prefix) {
			return prefix
		}
	}
	return ""
}
