package command

import (
	"context"
	"fmt"
	"sort"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"
)

// Liberate converts the legacy schema history table into the current format.
// The target history must be empty; rows are copied in legacy rank order as
// one unit, so a failed copy leaves the history empty.
func (s *Service) Liberate(ctx context.Context) (_ *entity.LiberateResult, err error) {
	start := s.timeProvider.Now()
	defer func() { s.observe("liberate", start, err) }()

	result := &entity.LiberateResult{
		OldSchemaHistoryTable: s.legacy.TableName(),
		SchemaHistoryTable:    s.history.TableName(),
	}

	err = s.withLock(ctx, func() error {
		legacyRows, err := s.legacy.AllLegacyMigrations(ctx)
		if err != nil {
			return err
		}

		if err := s.history.Create(ctx, false); err != nil {
			return err
		}
		existing, err := s.history.AllAppliedMigrations(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return fmt.Errorf("%w: %s holds %d row(s)", errs.ErrHistoryNotEmpty, s.history.TableName(), len(existing))
		}

		kept, actions := PlanLiberation(legacyRows)
		if _, err := s.history.AddAppliedMigrations(ctx, kept); err != nil {
			return err
		}
		result.Actions = actions
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Liberated legacy schema history", map[string]any{
		"legacy_table": result.OldSchemaHistoryTable,
		"table":        result.SchemaHistoryTable,
		"actions":      len(result.Actions),
	})
	return result, nil
}

// PlanLiberation filters legacy rows in one ordered pass. An undo row cancels the
// most recent kept row of its identity, a delete marker drops itself and the most
// recent kept row of its identity. Every legacy row yields exactly one action.
func PlanLiberation(rows []entity.AppliedMigration) ([]entity.AppliedMigration, []entity.LiberateAction) {
	sorted := make([]entity.AppliedMigration, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].InstalledRank < sorted[j].InstalledRank
	})

	actionTypes := make([]string, len(sorted))
	dropped := make([]bool, len(sorted))
	keptByIdentity := make(map[string][]int)

	dropLatest := func(key string, action string) {
		stack := keptByIdentity[key]
		if len(stack) == 0 {
			return
		}
		target := stack[len(stack)-1]
		keptByIdentity[key] = stack[:len(stack)-1]
		dropped[target] = true
		actionTypes[target] = action
	}

	for i, row := range sorted {
		key := row.Identity.Key()
		switch {
		case row.Type.IsUndo():
			dropped[i] = true
			actionTypes[i] = entity.ActionSkippedUndo
			dropLatest(key, entity.ActionSkippedUndone)
		case row.Type == entity.TypeDelete:
			dropped[i] = true
			actionTypes[i] = entity.ActionSkippedDelete
			dropLatest(key, entity.ActionSkippedDeletedRow)
		default:
			actionTypes[i] = copiedAction(row)
			keptByIdentity[key] = append(keptByIdentity[key], i)
		}
	}

	var kept []entity.AppliedMigration
	actions := make([]entity.LiberateAction, 0, len(sorted))
	for i, row := range sorted {
		actions = append(actions, entity.LiberateAction{
			Type:          actionTypes[i],
			Version:       versionOfIdentity(row.Identity),
			Description:   row.Description,
			Script:        row.Script,
			InstalledRank: row.InstalledRank,
		})
		if !dropped[i] {
			kept = append(kept, row)
		}
	}
	return kept, actions
}

func copiedAction(row entity.AppliedMigration) string {
	switch {
	case row.Type.IsBaseline():
		return entity.ActionCopiedBaseline
	case row.Identity.IsRepeatable():
		return entity.ActionCopiedRepeatable
	default:
		return entity.ActionCopiedVersioned
	}
}
