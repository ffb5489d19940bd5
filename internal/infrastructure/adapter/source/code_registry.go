package source

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/schema-ledger/internal/domain/port/source"
)

// CodeFunc applies a code migration inside the transaction it is given
type CodeFunc func(ctx context.Context, tx *gorm.DB) error

// CodeMigrationSpec describes one Go migration to register
type CodeMigrationSpec struct {
	Version     string // empty for a repeatable migration
	Description string
	Checksum    *int32
	Up          CodeFunc
}

type registeredMigration struct {
	migration source.CodeMigration
	up        CodeFunc
}

// CodeRegistry holds migrations implemented as Go functions
type CodeRegistry struct {
	location string

	mu         sync.RWMutex
	migrations map[string]registeredMigration
}

var _ source.CodeMigrationProvider = (*CodeRegistry)(nil)

// NewCodeRegistry creates an empty registry reported under location
func NewCodeRegistry(location string) *CodeRegistry {
	if location == "" {
		location = "code"
	}
	return &CodeRegistry{
		location:   location,
		migrations: make(map[string]registeredMigration),
	}
}

// Location returns the name the registry is reported under
func (r *CodeRegistry) Location() string {
	return r.location
}

// Register adds a migration. Versions are validated here so a bad entry fails at startup.
func (r *CodeRegistry) Register(spec CodeMigrationSpec) error {
	if spec.Up == nil {
		return fmt.Errorf("%w: code migration %q has no function", errs.ErrInvalidRequest, spec.Description)
	}

	name, err := codeMigrationName(spec.Version, spec.Description)
	if err != nil {
		return errs.NewInvalidMigrationNameError(name, r.location, err.Error(), err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.migrations[name]; exists {
		return errs.NewDuplicateMigrationError(name, r.location)
	}
	r.migrations[name] = registeredMigration{
		migration: source.CodeMigration{
			Version:     strings.TrimSpace(spec.Version),
			Description: spec.Description,
			Name:        name,
			Checksum:    spec.Checksum,
		},
		up: spec.Up,
	}
	return nil
}

// MustRegister is Register for package-level registration; it panics on error
func (r *CodeRegistry) MustRegister(spec CodeMigrationSpec) {
	if err := r.Register(spec); err != nil {
		panic(err)
	}
}

// LoadMigrations returns the registered migrations sorted by name
func (r *CodeRegistry) LoadMigrations(ctx context.Context) ([]source.CodeMigration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	migrations := make([]source.CodeMigration, 0, len(r.migrations))
	for _, registered := range r.migrations {
		migrations = append(migrations, registered.migration)
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Name < migrations[j].Name
	})
	return migrations, nil
}

// Lookup returns the function registered under a migration name
func (r *CodeRegistry) Lookup(name string) (CodeFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	registered, ok := r.migrations[name]
	if !ok {
		return nil, false
	}
	return registered.up, true
}

// codeMigrationName builds V<version>__<description> or R__<description>
func codeMigrationName(version, description string) (string, error) {
	desc := strings.ReplaceAll(strings.TrimSpace(description), " ", "_")
	version = strings.TrimSpace(version)

	if version == "" {
		name := "R__" + desc
		if desc == "" {
			return name, fmt.Errorf("repeatable migration requires a description")
		}
		return name, nil
	}

	name := "V" + strings.ReplaceAll(version, ".", "_") + "__" + desc
	if _, err := entity.ParseVersion(version); err != nil {
		return name, err
	}
	return name, nil
}
