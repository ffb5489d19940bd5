package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
)

func versionsOf(outputs []entity.RepairOutput) []string {
	versions := make([]string, 0, len(outputs))
	for _, output := range outputs {
		versions = append(versions, output.Version)
	}
	return versions
}

func TestService_Repair(t *testing.T) {
	ctx := context.Background()

	// V2 was applied but its file is gone; V3 keeps V2 below the highest resolved version
	missingScenario := func(t *testing.T, cfg Config, v2Success bool) *fixture {
		f := newFixture(t, cfg, sqlMigration("1", 1), sqlMigration("3", 3))
		f.seed(t,
			historyRow(sqlMigration("1", 1), true),
			historyRow(sqlMigration("2", 2), v2Success),
		)
		return f
	}

	t.Run("Delete strategy appends a marker", func(t *testing.T) {
		f := missingScenario(t, defaultConfig(), true)

		result, err := f.service.Repair(ctx)
		require.NoError(t, err)

		assert.Empty(t, result.MigrationsRemoved)
		assert.Empty(t, result.MigrationsAligned)
		require.Len(t, result.MigrationsDeleted, 1)
		assert.Equal(t, "2", result.MigrationsDeleted[0].Version)
		assert.Equal(t, 3, result.MigrationsDeleted[0].InstalledRank)

		rows := f.history.snapshot()
		require.Len(t, rows, 3)
		assert.Equal(t, entity.TypeDelete, rows[2].Type)
		assert.Equal(t, "2", rows[2].Identity.String())

		info, err := f.service.Info(ctx)
		require.NoError(t, err)
		assert.Len(t, info.ByState(entity.StateDeleted), 1)

		validated, err := f.service.Validate(ctx)
		require.NoError(t, err)
		assert.True(t, validated.ValidationSuccessful)
	})

	t.Run("Delete strategy removes a missing migration that only failed", func(t *testing.T) {
		f := missingScenario(t, defaultConfig(), false)

		result, err := f.service.Repair(ctx)
		require.NoError(t, err)

		assert.Equal(t, []string{"2"}, versionsOf(result.MigrationsRemoved))
		assert.Empty(t, result.MigrationsDeleted)
		assert.Len(t, f.history.snapshot(), 1)
	})

	t.Run("Remove strategy drops every row", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.RepairMissing = RepairRemove
		f := missingScenario(t, cfg, true)

		result, err := f.service.Repair(ctx)
		require.NoError(t, err)

		assert.Equal(t, []string{"2"}, versionsOf(result.MigrationsRemoved))
		assert.Empty(t, result.MigrationsDeleted)
		rows := f.history.snapshot()
		require.Len(t, rows, 1)
		assert.Equal(t, "1", rows[0].Identity.String())
	})

	t.Run("Keep strategy leaves successful rows alone", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.RepairMissing = RepairKeep
		f := missingScenario(t, cfg, true)

		result, err := f.service.Repair(ctx)
		require.NoError(t, err)

		assert.Empty(t, result.MigrationsRemoved)
		assert.Empty(t, result.MigrationsDeleted)
		assert.Len(t, f.history.snapshot(), 2)
	})

	t.Run("Keep strategy still removes failed rows", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.RepairMissing = RepairKeep
		f := missingScenario(t, cfg, false)

		result, err := f.service.Repair(ctx)
		require.NoError(t, err)

		assert.Equal(t, []string{"2"}, versionsOf(result.MigrationsRemoved))
		assert.Len(t, f.history.snapshot(), 1)
	})

	t.Run("Checksum and description are realigned", func(t *testing.T) {
		changed := sqlMigration("1", 9)
		changed.Description = "create accounts"
		f := newFixture(t, defaultConfig(), changed, sqlMigration("2", 2))
		f.seed(t, historyRow(sqlMigration("1", 1), true), historyRow(sqlMigration("2", 2), true))

		result, err := f.service.Repair(ctx)
		require.NoError(t, err)

		assert.Equal(t, []string{"1"}, versionsOf(result.MigrationsAligned))
		rows := f.history.snapshot()
		assert.Equal(t, int32(9), *rows[0].Checksum)
		assert.Equal(t, "create accounts", rows[0].Description)

		validated, err := f.service.Validate(ctx)
		require.NoError(t, err)
		assert.Empty(t, validated.Issues)
	})

	t.Run("Outdated repeatables are realigned only on request", func(t *testing.T) {
		f := newFixture(t, defaultConfig(), repeatableMigration("views", 6))
		f.seed(t, historyRow(repeatableMigration("views", 5), true))

		result, err := f.service.Repair(ctx)
		require.NoError(t, err)
		assert.Empty(t, result.MigrationsAligned)

		cfg := defaultConfig()
		cfg.RealignRepeatables = true
		f = newFixture(t, cfg, repeatableMigration("views", 6))
		f.seed(t, historyRow(repeatableMigration("views", 5), true))

		result, err = f.service.Repair(ctx)
		require.NoError(t, err)
		require.Len(t, result.MigrationsAligned, 1)
		assert.Equal(t, "views", result.MigrationsAligned[0].Description)
		assert.Equal(t, int32(6), *f.history.snapshot()[0].Checksum)
	})

	t.Run("Missing rows below an applied baseline are left alone", func(t *testing.T) {
		f := newFixture(t, defaultConfig(), sqlMigration("6", 6))
		f.seed(t,
			historyRow(sqlMigration("2", 2), true),
			entity.AppliedMigration{
				Identity:    entity.VersionedIdentity(entity.MustParseVersion("5")),
				Description: "<< Baseline >>",
				Type:        entity.TypeBaseline,
				Script:      "<< Baseline >>",
				Success:     true,
			},
		)

		result, err := f.service.Repair(ctx)
		require.NoError(t, err)

		assert.Empty(t, result.MigrationsRemoved)
		assert.Empty(t, result.MigrationsDeleted)
		assert.Empty(t, result.MigrationsAligned)
		assert.Len(t, f.history.snapshot(), 2)
	})

	t.Run("Each identity appears in at most one list", func(t *testing.T) {
		f := newFixture(t, defaultConfig(), sqlMigration("1", 9), sqlMigration("3", 3), sqlMigration("5", 5))
		f.seed(t,
			historyRow(sqlMigration("1", 1), true),
			historyRow(sqlMigration("2", 2), true),
			historyRow(sqlMigration("3", 3), false),
			historyRow(sqlMigration("4", 4), true),
			historyRow(sqlMigration("4", 4), false),
		)

		result, err := f.service.Repair(ctx)
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"3"}, versionsOf(result.MigrationsRemoved))
		assert.ElementsMatch(t, []string{"2", "4"}, versionsOf(result.MigrationsDeleted))
		assert.ElementsMatch(t, []string{"1"}, versionsOf(result.MigrationsAligned))

		seen := make(map[string]bool)
		for _, list := range [][]entity.RepairOutput{result.MigrationsRemoved, result.MigrationsDeleted, result.MigrationsAligned} {
			for _, output := range list {
				assert.False(t, seen[output.Version], "version %s repaired twice", output.Version)
				seen[output.Version] = true
			}
		}

		_, err = f.service.Migrate(ctx, entity.LatestTarget())
		require.NoError(t, err)
		assert.Equal(t, []string{"V3__step.sql", "V5__step.sql"}, f.executor.executed)
	})
}
