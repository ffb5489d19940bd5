package reconcile

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var installedOn = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func versioned(version string) entity.Identity {
	return entity.VersionedIdentity(entity.MustParseVersion(version))
}

func resolvedV(version string, checksum int32) entity.ResolvedMigration {
	return entity.ResolvedMigration{
		Identity:    versioned(version),
		Description: "migration " + version,
		Checksum:    entity.Int32Ptr(checksum),
		Script:      "V" + version + "__migration_" + version + ".sql",
		Type:        entity.TypeSQL,
	}
}

func resolvedB(version string) entity.ResolvedMigration {
	m := resolvedV(version, 0)
	m.Script = "B" + version + "__baseline.sql"
	m.Type = entity.TypeSQLBaseline
	return m
}

func resolvedR(description string, checksum int32) entity.ResolvedMigration {
	return entity.ResolvedMigration{
		Identity:    entity.RepeatableIdentity(description),
		Description: description,
		Checksum:    entity.Int32Ptr(checksum),
		Script:      "R__" + description + ".sql",
		Type:        entity.TypeSQL,
	}
}

func appliedRow(rank int, m entity.ResolvedMigration, success bool) entity.AppliedMigration {
	return entity.AppliedMigration{
		InstalledRank: rank,
		Identity:      m.Identity,
		Description:   m.Description,
		Type:          m.Type,
		Script:        m.Script,
		Checksum:      m.Checksum,
		InstalledBy:   "tester",
		InstalledOn:   installedOn,
		Success:       success,
	}
}

func markerRow(rank int, identity entity.Identity, migrationType entity.MigrationType) entity.AppliedMigration {
	return entity.AppliedMigration{
		InstalledRank: rank,
		Identity:      identity,
		Description:   "marker",
		Type:          migrationType,
		InstalledBy:   "tester",
		InstalledOn:   installedOn,
		Success:       true,
	}
}

func statesOf(infos []entity.MigrationInfo) map[string]entity.MigrationState {
	states := make(map[string]entity.MigrationState, len(infos))
	for _, info := range infos {
		states[info.Identity.String()] = info.State
	}
	return states
}

func identitiesOf(infos []entity.MigrationInfo) []string {
	ids := make([]string, 0, len(infos))
	for _, info := range infos {
		ids = append(ids, info.Identity.String())
	}
	return ids
}

func TestReconcileBaselineThenPending(t *testing.T) {
	resolved := []entity.ResolvedMigration{resolvedV("4", 4)}
	applied := []entity.AppliedMigration{
		appliedRow(1, resolvedV("1", 1), true),
		appliedRow(2, resolvedV("2", 2), true),
		markerRow(3, versioned("3"), entity.TypeBaseline),
	}

	info := Reconcile(resolved, applied, Config{})

	assert.Equal(t, map[string]entity.MigrationState{
		"1": entity.StateMissingSuccess,
		"2": entity.StateMissingSuccess,
		"3": entity.StateBaseline,
		"4": entity.StatePending,
	}, statesOf(info.All()))

	require.NotNil(t, info.Current())
	assert.Equal(t, "3", info.Current().Identity.String())
	require.NotNil(t, info.Next())
	assert.Equal(t, "4", info.Next().Identity.String())

	// Missing rows below an applied baseline are not reported
	assert.Empty(t, info.Validate())
}

func TestReconcileBelowAppliedBaseline(t *testing.T) {
	resolved := []entity.ResolvedMigration{resolvedV("1", 1), resolvedV("2", 2), resolvedV("3", 3)}
	applied := []entity.AppliedMigration{markerRow(1, versioned("2"), entity.TypeBaseline)}

	info := Reconcile(resolved, applied, Config{})

	assert.Equal(t, map[string]entity.MigrationState{
		"1": entity.StateIgnored,
		"2": entity.StateBaseline,
		"3": entity.StatePending,
	}, statesOf(info.All()))
	assert.Empty(t, info.Validate())
}

func TestReconcileDeletion(t *testing.T) {
	applied := []entity.AppliedMigration{
		appliedRow(1, resolvedV("1", 1), true),
		markerRow(2, versioned("1"), entity.TypeDelete),
	}

	info := Reconcile(nil, applied, Config{})

	all := info.All()
	require.Len(t, all, 1)
	assert.Equal(t, entity.StateDeleted, all[0].State)
	assert.Nil(t, info.Current())
	assert.Nil(t, info.Next())
	assert.Empty(t, info.Applied())
}

func TestReconcileDeletedThenResolvedAgain(t *testing.T) {
	m := resolvedV("1", 1)
	applied := []entity.AppliedMigration{
		appliedRow(1, m, true),
		markerRow(2, m.Identity, entity.TypeDelete),
	}

	info := Reconcile([]entity.ResolvedMigration{m}, applied, Config{})

	all := info.All()
	require.Len(t, all, 1)
	assert.Equal(t, entity.StatePending, all[0].State)
	assert.Nil(t, all[0].Applied())
	require.Len(t, all[0].Records, 2)
	assert.Equal(t, entity.StateDeleted, all[0].Records[1].State)
}

func TestReconcileMissingVersusFuture(t *testing.T) {
	resolved := []entity.ResolvedMigration{resolvedV("3", 3), resolvedV("4", 4)}
	applied := []entity.AppliedMigration{
		appliedRow(1, resolvedV("1", 1), true),
		appliedRow(2, resolvedV("2", 2), false),
		appliedRow(3, resolvedV("5", 5), true),
		appliedRow(4, resolvedV("6", 6), false),
	}

	info := Reconcile(resolved, applied, Config{})

	assert.Equal(t, map[string]entity.MigrationState{
		"1": entity.StateMissingSuccess,
		"2": entity.StateMissingFailed,
		"3": entity.StateIgnored,
		"4": entity.StateIgnored,
		"5": entity.StateFutureSuccess,
		"6": entity.StateFutureFailed,
	}, statesOf(info.All()))

	assert.Equal(t, []string{"5", "6"}, identitiesOf(info.Future()))
	assert.Equal(t, []string{"2", "6"}, identitiesOf(info.Failed()))
	assert.Equal(t, "6", info.Current().Identity.String())
}

func TestReconcileFutureWithoutResolved(t *testing.T) {
	applied := []entity.AppliedMigration{appliedRow(1, resolvedV("1", 1), true)}

	info := Reconcile(nil, applied, Config{})

	assert.Equal(t, entity.StateFutureSuccess, info.All()[0].State)
}

func TestReconcileRepeatableSupersession(t *testing.T) {
	history := []entity.AppliedMigration{
		appliedRow(1, resolvedR("A", 1), true),
		appliedRow(2, resolvedR("A", 2), true),
		appliedRow(3, resolvedR("A", 3), true),
	}

	testCases := []struct {
		name     string
		checksum int32
		expected entity.MigrationState
	}{
		{"Unchanged script", 3, entity.StateSuccess},
		{"Changed script", 4, entity.StateOutdated},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			info := Reconcile([]entity.ResolvedMigration{resolvedR("A", tc.checksum)}, history, Config{})

			all := info.All()
			require.Len(t, all, 1)
			assert.Equal(t, tc.expected, all[0].State)
			require.Len(t, all[0].Records, 3)
			assert.Equal(t, entity.StateSuperseded, all[0].Records[0].State)
			assert.Equal(t, entity.StateSuperseded, all[0].Records[1].State)
			assert.Equal(t, tc.expected, all[0].Records[2].State)
			assert.Equal(t, 3, all[0].InstalledRank())
		})
	}

	t.Run("Failed last run", func(t *testing.T) {
		failed := append([]entity.AppliedMigration{}, history...)
		failed = append(failed, appliedRow(4, resolvedR("A", 4), false))

		info := Reconcile([]entity.ResolvedMigration{resolvedR("A", 4)}, failed, Config{})
		assert.Equal(t, entity.StateFailed, info.All()[0].State)
	})

	t.Run("Outdated counts as pending", func(t *testing.T) {
		info := Reconcile([]entity.ResolvedMigration{resolvedR("A", 9)}, history, Config{})
		assert.Len(t, info.Pending(), 1)
		assert.Len(t, info.Outdated(), 1)

		issues := info.Validate()
		require.Len(t, issues, 1)
		assert.Equal(t, errs.IssueOutdated, issues[0].Kind)
		assert.False(t, issues[0].Kind.IsFatal())
	})
}

func TestReconcileCherryPick(t *testing.T) {
	resolved := []entity.ResolvedMigration{resolvedV("1", 1), resolvedV("2", 2)}
	applied := []entity.AppliedMigration{appliedRow(1, resolvedV("2", 2), true)}

	t.Run("Excluded even when applied", func(t *testing.T) {
		info := Reconcile(resolved, applied, Config{CherryPick: []string{"V3"}})

		assert.Equal(t, map[string]entity.MigrationState{
			"1": entity.StateIgnored,
			"2": entity.StateIgnored,
		}, statesOf(info.All()))
		assert.Nil(t, info.Current())
	})

	t.Run("Entry forms", func(t *testing.T) {
		withRepeatable := append([]entity.ResolvedMigration{}, resolved...)
		withRepeatable = append(withRepeatable, resolvedR("Refresh views", 7), resolvedR("Other", 8))

		info := Reconcile(withRepeatable, nil, Config{CherryPick: []string{"1", "R__Refresh_views"}})

		assert.Equal(t, map[string]entity.MigrationState{
			"1":             entity.StatePending,
			"2":             entity.StateIgnored,
			"Refresh views": entity.StatePending,
			"Other":         entity.StateIgnored,
		}, statesOf(info.All()))
	})
}

func TestReconcileIgnorePatterns(t *testing.T) {
	resolved := []entity.ResolvedMigration{resolvedV("1", 1), resolvedV("2", 2), resolvedR("Views", 3)}

	info := Reconcile(resolved, nil, Config{IgnorePatterns: []string{"2", "R__*"}})

	assert.Equal(t, map[string]entity.MigrationState{
		"1":     entity.StatePending,
		"2":     entity.StateIgnored,
		"Views": entity.StateIgnored,
	}, statesOf(info.All()))
}

func TestReconcileOutOfOrder(t *testing.T) {
	resolved := []entity.ResolvedMigration{resolvedV("1", 1), resolvedV("2", 2), resolvedV("3", 3)}

	t.Run("Applied out of order", func(t *testing.T) {
		applied := []entity.AppliedMigration{
			appliedRow(1, resolved[0], true),
			appliedRow(2, resolved[2], true),
			appliedRow(3, resolved[1], true),
		}

		info := Reconcile(resolved, applied, Config{})
		assert.Equal(t, []string{"2"}, identitiesOf(info.OutOfOrder()))
		assert.Equal(t, "2", info.Current().Identity.String())

		info = Reconcile(resolved, applied, Config{OutOfOrder: true})
		assert.Empty(t, info.OutOfOrder())
	})

	t.Run("Skipped below the applied ceiling", func(t *testing.T) {
		applied := []entity.AppliedMigration{
			appliedRow(1, resolved[0], true),
			appliedRow(2, resolved[2], true),
		}

		info := Reconcile(resolved, applied, Config{})
		assert.Equal(t, entity.StateIgnored, statesOf(info.All())["2"])
		assert.Nil(t, info.Next())

		issues := info.Validate()
		require.Len(t, issues, 1)
		assert.Equal(t, errs.IssueOutOfOrder, issues[0].Kind)

		info = Reconcile(resolved, applied, Config{OutOfOrder: true})
		assert.Equal(t, entity.StatePending, statesOf(info.All())["2"])
		assert.Empty(t, info.Validate())
	})
}

func TestReconcileFreshBaselineMigrations(t *testing.T) {
	resolved := []entity.ResolvedMigration{
		resolvedB("3"), resolvedV("4", 4), resolvedB("5"), resolvedV("6", 6), resolvedV("7", 7),
	}

	t.Run("Highest baseline wins", func(t *testing.T) {
		info := Reconcile(resolved, nil, Config{})

		assert.Equal(t, map[string]entity.MigrationState{
			"3": entity.StateIgnored,
			"4": entity.StateIgnored,
			"5": entity.StatePending,
			"6": entity.StatePending,
			"7": entity.StatePending,
		}, statesOf(info.All()))
		assert.Equal(t, "5", info.Next().Identity.String())
	})

	t.Run("Target caps the baseline", func(t *testing.T) {
		target, err := entity.ParseTargetVersion("4")
		require.NoError(t, err)

		info := Reconcile(resolved, nil, Config{Target: target})
		states := statesOf(info.All())
		assert.Equal(t, entity.StatePending, states["3"])
		assert.Equal(t, entity.StatePending, states["4"])
		assert.Equal(t, entity.StateIgnored, states["5"])
	})

	t.Run("Existing history ignores only baselines it has moved past", func(t *testing.T) {
		applied := []entity.AppliedMigration{appliedRow(1, resolved[1], true)}

		info := Reconcile(resolved, applied, Config{})
		states := statesOf(info.All())
		assert.Equal(t, entity.StateIgnored, states["3"])
		assert.Equal(t, entity.StateSuccess, states["4"])
		assert.Equal(t, entity.StatePending, states["5"])
		assert.Equal(t, entity.StatePending, states["6"])
		assert.Empty(t, info.Validate())
	})

	t.Run("Baseline above the applied history is pending", func(t *testing.T) {
		catalog := []entity.ResolvedMigration{resolvedV("1", 1), resolvedB("2"), resolvedV("3", 3)}
		applied := []entity.AppliedMigration{appliedRow(1, catalog[0], true)}

		info := Reconcile(catalog, applied, Config{})
		assert.Equal(t, map[string]entity.MigrationState{
			"1": entity.StateSuccess,
			"2": entity.StatePending,
			"3": entity.StatePending,
		}, statesOf(info.All()))
		assert.Equal(t, "2", info.Next().Identity.String())
	})

	t.Run("A higher applied baseline ignores lower ones", func(t *testing.T) {
		catalog := []entity.ResolvedMigration{resolvedB("3"), resolvedB("5"), resolvedV("6", 6)}
		applied := []entity.AppliedMigration{appliedRow(1, catalog[1], true)}

		info := Reconcile(catalog, applied, Config{OutOfOrder: true})
		assert.Equal(t, map[string]entity.MigrationState{
			"3": entity.StateIgnored,
			"5": entity.StateBaseline,
			"6": entity.StatePending,
		}, statesOf(info.All()))
	})
}

func TestInfoServiceValidate(t *testing.T) {
	resolved := []entity.ResolvedMigration{resolvedV("1", 1), resolvedV("2", 20), resolvedV("3", 3)}
	renamed := resolvedV("3", 3)
	renamed.Description = "old name"

	applied := []entity.AppliedMigration{
		appliedRow(1, resolvedV("1", 1), true),
		appliedRow(2, resolvedV("2", 2), true),
		appliedRow(3, renamed, true),
		appliedRow(4, resolvedV("9", 9), true),
		appliedRow(5, resolvedV("0.5", 5), true),
	}

	t.Run("Aggregates every issue", func(t *testing.T) {
		issues := Reconcile(resolved, applied, Config{}).Validate()

		kinds := make(map[string]errs.IssueKind)
		for _, issue := range issues {
			kinds[issue.Identity] = issue.Kind
		}
		assert.Len(t, issues, 4)
		assert.Equal(t, errs.IssueMissing, kinds["0.5"])
		assert.Equal(t, errs.IssueChecksumMismatch, kinds["2"])
		assert.Equal(t, errs.IssueDescriptionMismatch, kinds["3"])
		assert.Equal(t, errs.IssueFuture, kinds["9"])
	})

	t.Run("Ignore flags", func(t *testing.T) {
		issues := Reconcile(resolved, applied, Config{
			IgnoreMissing:          true,
			IgnoreFuture:           true,
			IgnoreChecksumMismatch: true,
		}).Validate()

		require.Len(t, issues, 1)
		assert.Equal(t, errs.IssueDescriptionMismatch, issues[0].Kind)
	})

	t.Run("Failed migration", func(t *testing.T) {
		failed := []entity.AppliedMigration{appliedRow(1, resolvedV("1", 1), false)}
		issues := Reconcile(resolved[:1], failed, Config{}).Validate()

		require.Len(t, issues, 1)
		assert.Equal(t, errs.IssueFailed, issues[0].Kind)
	})
}

func TestReconcileOrdering(t *testing.T) {
	resolved := []entity.ResolvedMigration{
		resolvedR("b", 1), resolvedV("10", 10), resolvedR("a", 2), resolvedV("1.2", 12), resolvedV("2", 2),
	}

	info := Reconcile(resolved, nil, Config{})

	assert.Equal(t, []string{"1.2", "2", "10", "a", "b"}, identitiesOf(info.All()))
	assert.Equal(t, "1.2", info.Next().Identity.String())
}

// randomScenario builds an arbitrary catalog and history from a seeded source
func randomScenario(rng *rand.Rand) ([]entity.ResolvedMigration, []entity.AppliedMigration, Config) {
	var resolved []entity.ResolvedMigration
	var candidates []entity.ResolvedMigration
	for i := 1; i <= 8; i++ {
		m := resolvedV(fmt.Sprintf("%d", i), int32(i))
		if rng.Intn(5) == 0 {
			m = resolvedB(fmt.Sprintf("%d", i))
		}
		candidates = append(candidates, m)
		if rng.Intn(3) > 0 {
			resolved = append(resolved, m)
		}
	}
	for _, name := range []string{"views", "grants"} {
		m := resolvedR(name, int32(rng.Intn(3)))
		candidates = append(candidates, m)
		if rng.Intn(2) == 0 {
			resolved = append(resolved, m)
		}
	}

	var applied []entity.AppliedMigration
	rows := rng.Intn(12)
	for rank := 1; rank <= rows; rank++ {
		m := candidates[rng.Intn(len(candidates))]
		switch rng.Intn(6) {
		case 0:
			applied = append(applied, markerRow(rank, m.Identity, entity.TypeDelete))
		case 1:
			applied = append(applied, markerRow(rank, m.Identity, entity.TypeBaseline))
		default:
			m.Checksum = entity.Int32Ptr(int32(rng.Intn(3)))
			applied = append(applied, appliedRow(rank, m, rng.Intn(4) > 0))
		}
	}

	cfg := Config{OutOfOrder: rng.Intn(2) == 0}
	if rng.Intn(4) == 0 {
		cfg.CherryPick = []string{fmt.Sprintf("V%d", 1+rng.Intn(8)), "R__views"}
	}
	if rng.Intn(4) == 0 {
		cfg.IgnorePatterns = []string{fmt.Sprintf("%d", 1+rng.Intn(8))}
	}
	return resolved, applied, cfg
}

func TestReconcileIsDeterministicAndComplete(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	validStates := make(map[entity.MigrationState]bool)
	for _, state := range entity.AllStates {
		validStates[state] = true
	}

	for i := 0; i < 500; i++ {
		resolved, applied, cfg := randomScenario(rng)

		first := Reconcile(resolved, applied, cfg)
		second := Reconcile(resolved, applied, cfg)
		require.Equal(t, first.All(), second.All(), "scenario %d", i)
		require.Equal(t, first.Validate(), second.Validate(), "scenario %d", i)

		shuffled := append([]entity.AppliedMigration{}, applied...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		require.Equal(t, first.All(), Reconcile(resolved, shuffled, cfg).All(), "scenario %d", i)

		union := make(map[string]bool)
		for _, m := range resolved {
			union[m.Identity.Key()] = true
		}
		for _, row := range applied {
			union[row.Identity.Key()] = true
		}

		all := first.All()
		require.Len(t, all, len(union), "scenario %d", i)
		for j, info := range all {
			assert.True(t, union[info.Identity.Key()])
			assert.True(t, validStates[info.State], "scenario %d: state %q", i, info.State)
			if j > 0 {
				assert.Negative(t, all[j-1].Identity.Compare(info.Identity))
			}
		}
	}
}
