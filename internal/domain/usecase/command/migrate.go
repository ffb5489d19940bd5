package command

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"
	"github.com/google/uuid"
)

// Migrate applies pending migrations up to the target. The lock is held for the
// whole apply-and-record sequence so installed ranks never interleave.
func (s *Service) Migrate(ctx context.Context, target entity.TargetVersion) (_ *entity.MigrateResult, err error) {
	start := s.timeProvider.Now()
	defer func() { s.observe("migrate", start, err) }()

	var result *entity.MigrateResult
	err = s.withLock(ctx, func() error {
		var runErr error
		result, runErr = s.migrate(ctx, target)
		return runErr
	})
	return result, err
}

func (s *Service) migrate(ctx context.Context, target entity.TargetVersion) (*entity.MigrateResult, error) {
	runID := uuid.NewString()

	if err := s.history.Create(ctx, s.cfg.BaselineOnMigrate); err != nil {
		return nil, err
	}

	cfg := s.cfg.Reconcile
	cfg.Target = target
	info, err := s.snapshot(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if s.cfg.ValidateOnMigrate {
		if fatal := fatalIssues(info.Validate()); len(fatal) > 0 {
			return nil, &errs.ValidationError{Issues: fatal}
		}
	}

	result := &entity.MigrateResult{
		SchemaHistoryTable:   s.history.TableName(),
		InitialSchemaVersion: versionOf(info.Current()),
		Success:              true,
	}

	for _, failed := range info.Failed() {
		if failed.State == entity.StateFutureFailed && cfg.IgnoreFuture {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("schema history has a failed future migration %s", failed.Identity))
			continue
		}
		return nil, fmt.Errorf("%w: %s (%s)", errs.ErrFailedMigrationPresent, failed.Identity, failed.Script())
	}

	bound := target.Resolve(info)
	result.TargetSchemaVersion = bound.String()

	s.logger.Info("Migrating schema", map[string]any{
		"run_id":          runID,
		"table":           s.history.TableName(),
		"current_version": result.InitialSchemaVersion,
		"target":          bound.String(),
	})

	for _, pending := range info.Pending() {
		if v, ok := pending.Identity.Version(); ok {
			if !bound.Allows(v) {
				continue
			}
		} else if !bound.Unbounded {
			continue
		}

		output, execErr := s.apply(ctx, runID, *pending.Resolved)
		result.Migrations = append(result.Migrations, output)
		result.MigrationsExecuted++
		if execErr != nil {
			result.Success = false
			return result, execErr
		}
	}

	if result.MigrationsExecuted == 0 {
		s.logger.Info("Schema is up to date", map[string]any{
			"run_id": runID,
			"table":  s.history.TableName(),
		})
	}
	return result, nil
}

// apply executes one migration and records its outcome, failed or not
func (s *Service) apply(ctx context.Context, runID string, m entity.ResolvedMigration) (entity.MigrateOutput, error) {
	s.logger.Info("Applying migration", map[string]any{
		"run_id":  runID,
		"version": versionOfIdentity(m.Identity),
		"script":  m.Script,
	})

	start := s.timeProvider.Now()
	execErr := s.executor.Execute(ctx, m)
	elapsed := s.timeProvider.Since(start).Std()
	s.metrics.ObserveMigration(m.Type.String(), execErr == nil, elapsed)

	row := entity.AppliedMigration{
		Identity:      m.Identity,
		Description:   m.Description,
		Type:          m.Type,
		Script:        m.Script,
		Checksum:      m.Checksum,
		InstalledBy:   s.cfg.InstalledBy,
		InstalledOn:   start,
		ExecutionTime: int(elapsed.Milliseconds()),
		Success:       execErr == nil,
	}

	output := entity.MigrateOutput{
		Category:      category(m),
		Version:       versionOfIdentity(m.Identity),
		Description:   m.Description,
		Type:          m.Type.String(),
		Script:        m.Script,
		ExecutionTime: row.ExecutionTime,
		Success:       row.Success,
	}

	// An interrupted run still records its failure
	if _, err := s.history.AddAppliedMigration(context.WithoutCancel(ctx), row); err != nil {
		if execErr != nil {
			return output, fmt.Errorf("recording failed migration %s: %w (execution error: %v)", m.Identity, err, execErr)
		}
		return output, err
	}

	if execErr != nil {
		s.logger.Error("Migration failed", map[string]any{
			"run_id":  runID,
			"version": output.Version,
			"script":  m.Script,
			"error":   execErr.Error(),
		})
		return output, &errs.MigrationExecutionError{
			Identity: m.Identity.String(),
			Script:   m.Script,
			Err:      execErr,
		}
	}

	s.logger.Debug("Migration applied", map[string]any{
		"run_id":      runID,
		"version":     output.Version,
		"duration_ms": row.ExecutionTime,
	})
	return output, nil
}

func category(m entity.ResolvedMigration) string {
	switch {
	case m.Identity.IsRepeatable():
		return "Repeatable"
	case m.IsBaselineMigration():
		return "Baseline"
	default:
		return "Versioned"
	}
}
