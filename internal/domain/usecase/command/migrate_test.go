package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"
)

func TestService_Migrate(t *testing.T) {
	ctx := context.Background()

	t.Run("Fresh database runs everything in order", func(t *testing.T) {
		f := newFixture(t, defaultConfig(),
			sqlMigration("1", 1), sqlMigration("1.1", 11), sqlMigration("2", 2), repeatableMigration("views", 5))

		result, err := f.service.Migrate(ctx, entity.LatestTarget())
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.Equal(t, 4, result.MigrationsExecuted)
		assert.Equal(t, "", result.InitialSchemaVersion)
		assert.Equal(t, "<< latest >>", result.TargetSchemaVersion)
		assert.Equal(t, []string{"V1__step.sql", "V1.1__step.sql", "V2__step.sql", "R__views.sql"}, f.executor.executed)
		assert.Equal(t, "Repeatable", result.Migrations[3].Category)

		rows := f.history.snapshot()
		require.Len(t, rows, 4)
		for i, row := range rows {
			assert.Equal(t, i+1, row.InstalledRank)
			assert.True(t, row.Success)
			assert.Equal(t, "ledger", row.InstalledBy)
			assert.Equal(t, 7, row.ExecutionTime)
		}
		assert.Equal(t, 1, f.released)
	})

	t.Run("Second run is a no-op", func(t *testing.T) {
		f := newFixture(t, defaultConfig(), sqlMigration("1", 1), repeatableMigration("views", 5))

		_, err := f.service.Migrate(ctx, entity.LatestTarget())
		require.NoError(t, err)
		result, err := f.service.Migrate(ctx, entity.LatestTarget())
		require.NoError(t, err)

		assert.Equal(t, 0, result.MigrationsExecuted)
		assert.Equal(t, "1", result.InitialSchemaVersion)
		assert.Len(t, f.history.snapshot(), 2)
	})

	t.Run("Specific target stops early and skips repeatables", func(t *testing.T) {
		f := newFixture(t, defaultConfig(), sqlMigration("1", 1), sqlMigration("2", 2), repeatableMigration("views", 5))

		target, err := entity.ParseTargetVersion("1")
		require.NoError(t, err)
		result, err := f.service.Migrate(ctx, target)
		require.NoError(t, err)

		assert.Equal(t, 1, result.MigrationsExecuted)
		assert.Equal(t, []string{"V1__step.sql"}, f.executor.executed)
	})

	t.Run("Next target runs one migration", func(t *testing.T) {
		f := newFixture(t, defaultConfig(), sqlMigration("1", 1), sqlMigration("2", 2), sqlMigration("3", 3))
		f.seed(t, historyRow(sqlMigration("1", 1), true))

		target, err := entity.ParseTargetVersion("next")
		require.NoError(t, err)
		result, err := f.service.Migrate(ctx, target)
		require.NoError(t, err)

		assert.Equal(t, "2", result.TargetSchemaVersion)
		assert.Equal(t, []string{"V2__step.sql"}, f.executor.executed)
	})

	t.Run("Outdated repeatable runs again", func(t *testing.T) {
		f := newFixture(t, defaultConfig(), sqlMigration("1", 1), repeatableMigration("views", 6))
		f.seed(t, historyRow(sqlMigration("1", 1), true), historyRow(repeatableMigration("views", 5), true))

		result, err := f.service.Migrate(ctx, entity.LatestTarget())
		require.NoError(t, err)

		assert.Equal(t, []string{"R__views.sql"}, f.executor.executed)
		assert.Equal(t, 1, result.MigrationsExecuted)
		rows := f.history.snapshot()
		require.Len(t, rows, 3)
		assert.Equal(t, int32(6), *rows[2].Checksum)
	})

	t.Run("Failure is recorded and blocks later runs", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.ValidateOnMigrate = false
		f := newFixture(t, cfg, sqlMigration("1", 1), sqlMigration("2", 2), sqlMigration("3", 3))
		f.executor.failing["V2__step.sql"] = errScript

		result, err := f.service.Migrate(ctx, entity.LatestTarget())
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrMigrationFailed)
		assert.ErrorIs(t, err, errScript)
		var execErr *errs.MigrationExecutionError
		require.True(t, errors.As(err, &execErr))
		assert.Equal(t, "2", execErr.Identity)

		require.NotNil(t, result)
		assert.False(t, result.Success)
		assert.Equal(t, 2, result.MigrationsExecuted)

		rows := f.history.snapshot()
		require.Len(t, rows, 2)
		assert.True(t, rows[0].Success)
		assert.False(t, rows[1].Success)
		assert.Equal(t, "V2__step.sql", rows[1].Script)

		// The failed migration is never retried automatically
		delete(f.executor.failing, "V2__step.sql")
		_, err = f.service.Migrate(ctx, entity.LatestTarget())
		assert.ErrorIs(t, err, errs.ErrFailedMigrationPresent)
		assert.Len(t, f.executor.executed, 2)

		repaired, err := f.service.Repair(ctx)
		require.NoError(t, err)
		require.Len(t, repaired.MigrationsRemoved, 1)
		assert.Equal(t, "2", repaired.MigrationsRemoved[0].Version)

		result, err = f.service.Migrate(ctx, entity.LatestTarget())
		require.NoError(t, err)
		assert.Equal(t, 2, result.MigrationsExecuted)
		assert.Equal(t, "1", result.InitialSchemaVersion)
	})

	t.Run("Interrupted migration still records a failed row", func(t *testing.T) {
		f := newFixture(t, defaultConfig(), sqlMigration("1", 1))
		runCtx, cancel := context.WithCancel(ctx)
		f.executor.onRun = func(entity.ResolvedMigration) { cancel() }
		f.executor.failing["V1__step.sql"] = context.Canceled

		_, err := f.service.Migrate(runCtx, entity.LatestTarget())
		assert.ErrorIs(t, err, context.Canceled)

		rows := f.history.snapshot()
		require.Len(t, rows, 1)
		assert.False(t, rows[0].Success)
		assert.Equal(t, []bool{true}, f.history.addCtxOK)
	})

	t.Run("Validation failure prevents any execution", func(t *testing.T) {
		f := newFixture(t, defaultConfig(), sqlMigration("1", 99), sqlMigration("2", 2))
		f.seed(t, historyRow(sqlMigration("1", 1), true))

		_, err := f.service.Migrate(ctx, entity.LatestTarget())
		require.Error(t, err)
		assert.True(t, errs.IsValidationError(err))
		assert.Empty(t, f.executor.executed)

		var validationErr *errs.ValidationError
		require.True(t, errors.As(err, &validationErr))
		require.Len(t, validationErr.Issues, 1)
		assert.Equal(t, errs.IssueChecksumMismatch, validationErr.Issues[0].Kind)
	})

	t.Run("Validation can be disabled", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.ValidateOnMigrate = false
		f := newFixture(t, cfg, sqlMigration("1", 99), sqlMigration("2", 2))
		f.seed(t, historyRow(sqlMigration("1", 1), true))

		_, err := f.service.Migrate(ctx, entity.LatestTarget())
		require.NoError(t, err)
		assert.Equal(t, []string{"V2__step.sql"}, f.executor.executed)
	})

	t.Run("Out of order migrations", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.ValidateOnMigrate = false
		f := newFixture(t, cfg, sqlMigration("1", 1), sqlMigration("2", 2), sqlMigration("3", 3))
		f.seed(t, historyRow(sqlMigration("1", 1), true), historyRow(sqlMigration("3", 3), true))

		result, err := f.service.Migrate(ctx, entity.LatestTarget())
		require.NoError(t, err)
		assert.Equal(t, 0, result.MigrationsExecuted)

		cfg.Reconcile.OutOfOrder = true
		f = newFixture(t, cfg, sqlMigration("1", 1), sqlMigration("2", 2), sqlMigration("3", 3))
		f.seed(t, historyRow(sqlMigration("1", 1), true), historyRow(sqlMigration("3", 3), true))

		result, err = f.service.Migrate(ctx, entity.LatestTarget())
		require.NoError(t, err)
		assert.Equal(t, []string{"V2__step.sql"}, f.executor.executed)
		assert.Equal(t, 3, f.history.snapshot()[2].InstalledRank)
	})

	t.Run("Baseline on migrate", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.BaselineOnMigrate = true
		f := newFixture(t, cfg, sqlMigration("1", 1), sqlMigration("2", 2))

		result, err := f.service.Migrate(ctx, entity.LatestTarget())
		require.NoError(t, err)

		assert.Equal(t, "1", result.InitialSchemaVersion)
		assert.Equal(t, []string{"V2__step.sql"}, f.executor.executed)
	})

	t.Run("Lock not acquired", func(t *testing.T) {
		f := newFixture(t, defaultConfig())
		f.lock.ExpectedCalls = nil
		lockErr := &errs.LockError{Key: "schema_history", Attempts: 3}
		f.lock.EXPECT().Acquire(mock.Anything).Return(nil, lockErr)

		_, err := f.service.Migrate(ctx, entity.LatestTarget())
		assert.ErrorIs(t, err, errs.ErrLockNotAcquired)
		assert.Empty(t, f.executor.executed)
		assert.False(t, f.history.created)
	})

	t.Run("Resolution errors abort before any write", func(t *testing.T) {
		f := newFixture(t, defaultConfig())
		f.resolver.ExpectedCalls = nil
		f.resolver.EXPECT().ResolveMigrations(mock.Anything).
			Return(nil, errs.NewDuplicateMigrationError("1", "a/V1__x.sql", "b/V1__y.sql"))

		_, err := f.service.Migrate(ctx, entity.LatestTarget())
		assert.ErrorIs(t, err, errs.ErrDuplicateMigration)
		assert.Empty(t, f.history.snapshot())
	})
}
