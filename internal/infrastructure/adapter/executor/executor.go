package executor

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/schema-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/schema-ledger/internal/domain/port/execution"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/source"
)

// CodeLookup finds the function behind a code migration name
type CodeLookup interface {
	Lookup(name string) (source.CodeFunc, bool)
}

// GormExecutor runs each migration in its own transaction on the target database
type GormExecutor struct {
	db     *gorm.DB
	code   CodeLookup
	logger coreport.Logger
}

var _ execution.MigrationExecutor = (*GormExecutor)(nil)

// NewGormExecutor creates a new executor; code may be nil when no Go migrations exist
func NewGormExecutor(db *gorm.DB, code CodeLookup, logger coreport.Logger) *GormExecutor {
	return &GormExecutor{db: db, code: code, logger: logger}
}

// Execute applies one migration. The whole script runs as a single statement
// batch, so dialects without transactional DDL may keep partial changes.
func (e *GormExecutor) Execute(ctx context.Context, migration entity.ResolvedMigration) error {
	switch migration.Type {
	case entity.TypeSQL, entity.TypeSQLBaseline:
		return e.executeSQL(ctx, migration)
	case entity.TypeGo:
		return e.executeCode(ctx, migration)
	default:
		return fmt.Errorf("migration type %s cannot be executed", migration.Type)
	}
}

func (e *GormExecutor) executeSQL(ctx context.Context, migration entity.ResolvedMigration) error {
	if strings.TrimSpace(migration.Body) == "" {
		e.logger.Warn("Migration script is empty", map[string]any{
			"script":   migration.Script,
			"location": migration.PhysicalLocation,
		})
		return nil
	}

	e.logger.Debug("Executing SQL migration", map[string]any{
		"version": migration.Identity.String(),
		"script":  migration.Script,
	})

	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Exec(migration.Body).Error
	})
}

func (e *GormExecutor) executeCode(ctx context.Context, migration entity.ResolvedMigration) error {
	if e.code == nil {
		return fmt.Errorf("no code migrations are registered for %s", migration.Script)
	}
	up, ok := e.code.Lookup(migration.Script)
	if !ok {
		return fmt.Errorf("code migration %s is not registered", migration.Script)
	}

	e.logger.Debug("Executing code migration", map[string]any{
		"version": migration.Identity.String(),
		"script":  migration.Script,
	})

	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return up(ctx, tx)
	})
}
