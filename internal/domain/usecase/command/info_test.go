package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"
)

func TestService_Info(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing history table reads as empty", func(t *testing.T) {
		f := newFixture(t, defaultConfig(), sqlMigration("1", 1), repeatableMigration("views", 5))

		info, err := f.service.Info(ctx)
		require.NoError(t, err)

		assert.Len(t, info.Pending(), 2)
		assert.Nil(t, info.Current())
		assert.False(t, f.history.created)
		assert.Equal(t, 0, f.released)
	})

	t.Run("Reports current and next", func(t *testing.T) {
		f := newFixture(t, defaultConfig(), sqlMigration("1", 1), sqlMigration("2", 2))
		f.seed(t, historyRow(sqlMigration("1", 1), true))

		info, err := f.service.Info(ctx)
		require.NoError(t, err)

		require.NotNil(t, info.Current())
		assert.Equal(t, "1", info.Current().Identity.String())
		require.NotNil(t, info.Next())
		assert.Equal(t, "2", info.Next().Identity.String())
	})
}

func TestService_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("Clean history validates", func(t *testing.T) {
		f := newFixture(t, defaultConfig(), sqlMigration("1", 1), sqlMigration("2", 2))
		f.seed(t, historyRow(sqlMigration("1", 1), true))

		result, err := f.service.Validate(ctx)
		require.NoError(t, err)

		assert.True(t, result.ValidationSuccessful)
		assert.Equal(t, 2, result.ValidateCount)
		assert.Empty(t, result.Issues)
	})

	t.Run("All issues are reported at once", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Reconcile.IgnoreFuture = false
		changed := sqlMigration("2", 22)
		changed.Description = "renamed"
		f := newFixture(t, cfg, sqlMigration("1", 1), changed, sqlMigration("4", 4))
		f.seed(t,
			historyRow(sqlMigration("1", 1), false),
			historyRow(sqlMigration("2", 2), true),
			historyRow(sqlMigration("3", 3), true),
			historyRow(sqlMigration("9", 9), true),
		)

		result, err := f.service.Validate(ctx)

		require.Error(t, err)
		assert.True(t, errs.IsValidationError(err))
		require.NotNil(t, result)
		assert.False(t, result.ValidationSuccessful)

		kinds := make(map[errs.IssueKind]string)
		for _, issue := range result.Issues {
			kinds[issue.Kind] = issue.Identity
		}
		assert.Equal(t, map[errs.IssueKind]string{
			errs.IssueFailed:              "1",
			errs.IssueChecksumMismatch:    "2",
			errs.IssueDescriptionMismatch: "2",
			errs.IssueMissing:             "3",
			errs.IssueFuture:              "9",
			errs.IssueOutOfOrder:          "4",
		}, kinds)
	})

	t.Run("Outdated repeatables are not fatal", func(t *testing.T) {
		f := newFixture(t, defaultConfig(), repeatableMigration("views", 6))
		f.seed(t, historyRow(repeatableMigration("views", 5), true))

		result, err := f.service.Validate(ctx)
		require.NoError(t, err)

		assert.True(t, result.ValidationSuccessful)
		require.Len(t, result.Issues, 1)
		assert.Equal(t, errs.IssueOutdated, result.Issues[0].Kind)
	})

	t.Run("Ignore flags silence missing migrations", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Reconcile.IgnoreMissing = true
		f := newFixture(t, cfg, sqlMigration("1", 1), sqlMigration("3", 3))
		f.seed(t, historyRow(sqlMigration("1", 1), true), historyRow(sqlMigration("2", 2), true))

		result, err := f.service.Validate(ctx)
		require.NoError(t, err)
		assert.Empty(t, result.Issues)

		info, err := f.service.Info(ctx)
		require.NoError(t, err)
		assert.Len(t, info.ByState(entity.StateMissingSuccess), 1)
	})
}
