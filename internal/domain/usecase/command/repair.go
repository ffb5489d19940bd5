package command

import (
	"context"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
)

// Repair removes failed rows, handles missing migrations by the configured
// strategy and realigns checksums. Each identity lands in at most one list.
func (s *Service) Repair(ctx context.Context) (_ *entity.RepairResult, err error) {
	start := s.timeProvider.Now()
	defer func() { s.observe("repair", start, err) }()

	result := &entity.RepairResult{
		SchemaHistoryTable: s.history.TableName(),
		MigrationsRemoved:  []entity.RepairOutput{},
		MigrationsDeleted:  []entity.RepairOutput{},
		MigrationsAligned:  []entity.RepairOutput{},
	}

	err = s.withLock(ctx, func() error {
		if err := s.history.Create(ctx, false); err != nil {
			return err
		}

		info, err := s.snapshot(ctx, s.cfg.Reconcile)
		if err != nil {
			return err
		}

		for _, migration := range info.All() {
			switch {
			case migration.State.IsMissing() && !s.belowBaseline(info.Applied(), migration.Identity):
				err = s.repairMissing(ctx, migration, result)
			case hasFailedRows(migration):
				_, err = s.removeFailedRows(ctx, migration, result)
			default:
				err = s.realign(ctx, migration, result)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Repaired schema history", map[string]any{
		"table":   result.SchemaHistoryTable,
		"removed": len(result.MigrationsRemoved),
		"deleted": len(result.MigrationsDeleted),
		"aligned": len(result.MigrationsAligned),
	})
	return result, nil
}

// repairMissing applies the missing-migration strategy to one identity
func (s *Service) repairMissing(ctx context.Context, migration entity.MigrationInfo, result *entity.RepairResult) error {
	switch s.cfg.RepairMissing {
	case RepairRemove:
		for _, record := range migration.Records {
			if err := s.history.RemoveAppliedMigration(ctx, record.Migration.InstalledRank); err != nil {
				return err
			}
		}
		result.MigrationsRemoved = append(result.MigrationsRemoved, repairOutput(migration))
		return nil

	case RepairDelete:
		removed, err := s.removeFailedRows(ctx, migration, nil)
		if err != nil {
			return err
		}
		if removed == len(migration.Records) {
			result.MigrationsRemoved = append(result.MigrationsRemoved, repairOutput(migration))
			return nil
		}

		applied := migration.Applied()
		marker, err := s.history.AddAppliedMigration(ctx, entity.AppliedMigration{
			Identity:    migration.Identity,
			Description: applied.Description,
			Type:        entity.TypeDelete,
			Script:      applied.Script,
			Checksum:    applied.Checksum,
			InstalledBy: s.cfg.InstalledBy,
			InstalledOn: s.timeProvider.Now(),
			Success:     true,
		})
		if err != nil {
			return err
		}
		output := repairOutput(migration)
		output.InstalledRank = marker.InstalledRank
		result.MigrationsDeleted = append(result.MigrationsDeleted, output)
		return nil

	default:
		_, err := s.removeFailedRows(ctx, migration, result)
		return err
	}
}

// removeFailedRows physically removes every failed row of one identity.
// It reports the identity as removed when result is non-nil and a row was removed.
func (s *Service) removeFailedRows(ctx context.Context, migration entity.MigrationInfo, result *entity.RepairResult) (int, error) {
	removed := 0
	for _, record := range migration.Records {
		if record.Migration.Success || record.Migration.Type == entity.TypeDelete {
			continue
		}
		if err := s.history.RemoveAppliedMigration(ctx, record.Migration.InstalledRank); err != nil {
			return removed, err
		}
		removed++
	}
	if removed > 0 && result != nil {
		result.MigrationsRemoved = append(result.MigrationsRemoved, repairOutput(migration))
	}
	return removed, nil
}

// realign copies the resolved checksum and description onto the active row
func (s *Service) realign(ctx context.Context, migration entity.MigrationInfo, result *entity.RepairResult) error {
	applied := migration.Applied()
	resolved := migration.Resolved
	if applied == nil || resolved == nil || applied.Type.IsSynthetic() {
		return nil
	}

	switch {
	case migration.Identity.IsVersioned():
		switch migration.State {
		case entity.StateSuccess, entity.StateOutOfOrder, entity.StateBaseline:
		default:
			return nil
		}
	case migration.State != entity.StateOutdated || !s.cfg.RealignRepeatables:
		return nil
	}

	if entity.ChecksumsEqual(applied.Checksum, resolved.Checksum) && applied.Description == resolved.Description {
		return nil
	}

	if err := s.history.AlignAppliedMigration(ctx, applied.InstalledRank, resolved.Checksum, resolved.Description); err != nil {
		return err
	}
	result.MigrationsAligned = append(result.MigrationsAligned, repairOutput(migration))
	return nil
}

// belowBaseline reports whether a versioned identity sits under the latest applied baseline
func (s *Service) belowBaseline(applied []entity.MigrationInfo, identity entity.Identity) bool {
	v, ok := identity.Version()
	if !ok {
		return false
	}
	for _, migration := range applied {
		if migration.State != entity.StateBaseline {
			continue
		}
		if baseline, ok := migration.Identity.Version(); ok && v.LessThan(baseline) {
			return true
		}
	}
	return false
}

func hasFailedRows(migration entity.MigrationInfo) bool {
	for _, record := range migration.Records {
		if !record.Migration.Success && record.Migration.Type != entity.TypeDelete {
			return true
		}
	}
	return false
}

func repairOutput(migration entity.MigrationInfo) entity.RepairOutput {
	return entity.RepairOutput{
		Version:       versionOfIdentity(migration.Identity),
		Description:   migration.Description(),
		Script:        migration.Script(),
		InstalledRank: migration.InstalledRank(),
	}
}
