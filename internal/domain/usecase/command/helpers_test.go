package command

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/schema-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/schema-ledger/internal/domain/usecase/reconcile"
	"github.com/amirhossein-jamali/schema-ledger/internal/infrastructure/adapter/logger"
	mockcore "github.com/amirhossein-jamali/schema-ledger/mocks/port/core"
	mockpersistence "github.com/amirhossein-jamali/schema-ledger/mocks/port/persistence"
	mocksource "github.com/amirhossein-jamali/schema-ledger/mocks/port/source"
)

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

// memHistory is an in-memory schema history with database-like rank assignment
type memHistory struct {
	mu       sync.Mutex
	created  bool
	rows     []entity.AppliedMigration
	addErr   error
	addCtxOK []bool
	// failInsert makes the n-th inserted row fail, counting from one
	failInsert int
	inserts    int
}

func (h *memHistory) TableName() string { return "schema_history" }

func (h *memHistory) Exists(context.Context) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.created, nil
}

func (h *memHistory) Create(_ context.Context, baseline bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.created = true
	if baseline && len(h.rows) == 0 {
		h.rows = append(h.rows, entity.AppliedMigration{
			InstalledRank: 1,
			Identity:      entity.VersionedIdentity(entity.MustParseVersion("1")),
			Description:   "<< Baseline >>",
			Type:          entity.TypeBaseline,
			Script:        "<< Baseline >>",
			InstalledOn:   fixedNow,
			Success:       true,
		})
	}
	return nil
}

func (h *memHistory) AllAppliedMigrations(context.Context) ([]entity.AppliedMigration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.created {
		return nil, errs.ErrHistoryNotFound
	}
	return append([]entity.AppliedMigration(nil), h.rows...), nil
}

func (h *memHistory) AddAppliedMigration(ctx context.Context, m entity.AppliedMigration) (entity.AppliedMigration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.addCtxOK = append(h.addCtxOK, ctx.Err() == nil)
	if h.addErr != nil {
		return entity.AppliedMigration{}, h.addErr
	}
	if err := h.insertLocked(); err != nil {
		return entity.AppliedMigration{}, err
	}
	m.InstalledRank = h.maxRankLocked() + 1
	h.rows = append(h.rows, m)
	return m, nil
}

// AddAppliedMigrations stores every row or, on the first failing insert, none
func (h *memHistory) AddAppliedMigrations(ctx context.Context, ms []entity.AppliedMigration) ([]entity.AppliedMigration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.addCtxOK = append(h.addCtxOK, ctx.Err() == nil)
	if h.addErr != nil {
		return nil, h.addErr
	}
	rank := h.maxRankLocked()
	stored := make([]entity.AppliedMigration, 0, len(ms))
	for i, m := range ms {
		if err := h.insertLocked(); err != nil {
			return nil, err
		}
		m.InstalledRank = rank + i + 1
		stored = append(stored, m)
	}
	h.rows = append(h.rows, stored...)
	return stored, nil
}

func (h *memHistory) insertLocked() error {
	h.inserts++
	if h.failInsert > 0 && h.inserts == h.failInsert {
		return errors.New("connection reset by peer")
	}
	return nil
}

func (h *memHistory) maxRankLocked() int {
	rank := 0
	for _, row := range h.rows {
		if row.InstalledRank > rank {
			rank = row.InstalledRank
		}
	}
	return rank
}

func (h *memHistory) RemoveAppliedMigration(_ context.Context, installedRank int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	kept := h.rows[:0]
	for _, row := range h.rows {
		if row.InstalledRank != installedRank {
			kept = append(kept, row)
		}
	}
	h.rows = kept
	return nil
}

func (h *memHistory) AlignAppliedMigration(_ context.Context, installedRank int, checksum *int32, description string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.rows {
		if h.rows[i].InstalledRank == installedRank {
			h.rows[i].Checksum = checksum
			h.rows[i].Description = description
		}
	}
	return nil
}

func (h *memHistory) snapshot() []entity.AppliedMigration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]entity.AppliedMigration(nil), h.rows...)
}

// memLegacy serves a fixed legacy table
type memLegacy struct {
	rows []entity.AppliedMigration
	err  error
}

func (l *memLegacy) TableName() string { return "legacy_schema_history" }

func (l *memLegacy) AllLegacyMigrations(context.Context) ([]entity.AppliedMigration, error) {
	return l.rows, l.err
}

// recordingExecutor remembers executed scripts and fails the configured ones
type recordingExecutor struct {
	mu       sync.Mutex
	executed []string
	failing  map[string]error
	onRun    func(m entity.ResolvedMigration)
}

func (e *recordingExecutor) Execute(_ context.Context, m entity.ResolvedMigration) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.executed = append(e.executed, m.Script)
	if e.onRun != nil {
		e.onRun(m)
	}
	if err, ok := e.failing[m.Script]; ok {
		return err
	}
	return nil
}

type fixture struct {
	service  *Service
	history  *memHistory
	legacy   *memLegacy
	executor *recordingExecutor
	lock     *mockpersistence.MockMigrationLock
	resolver *mocksource.MockMigrationResolver
	released int
}

func defaultConfig() Config {
	return Config{
		Reconcile:           reconcile.Config{IgnoreFuture: true},
		BaselineVersion:     "1",
		BaselineDescription: "<< Baseline >>",
		ValidateOnMigrate:   true,
		RepairMissing:       RepairDelete,
		InstalledBy:         "ledger",
	}
}

func newFixture(t *testing.T, cfg Config, resolved ...entity.ResolvedMigration) *fixture {
	f := &fixture{
		history:  &memHistory{},
		legacy:   &memLegacy{},
		executor: &recordingExecutor{failing: map[string]error{}},
		lock:     mockpersistence.NewMockMigrationLock(t),
		resolver: mocksource.NewMockMigrationResolver(t),
	}

	f.lock.EXPECT().Acquire(mock.Anything).Return(func() { f.released++ }, nil).Maybe()
	f.resolver.EXPECT().ResolveMigrations(mock.Anything).Return(resolved, nil).Maybe()

	timeProvider := mockcore.NewMockTimeProvider(t)
	timeProvider.EXPECT().Now().Return(fixedNow).Maybe()
	timeProvider.EXPECT().Since(mock.Anything).Return(core.Duration(7 * time.Millisecond)).Maybe()

	metrics := mockcore.NewMockMetrics(t)
	metrics.EXPECT().ObserveCommand(mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
	metrics.EXPECT().ObserveMigration(mock.Anything, mock.Anything, mock.Anything).Return().Maybe()

	f.service = NewService(f.resolver, f.history, f.legacy, f.lock, f.executor,
		timeProvider, metrics, logger.NewNoopLogger(), cfg)
	return f
}

func sqlMigration(version string, checksum int32) entity.ResolvedMigration {
	return entity.ResolvedMigration{
		Identity:    entity.VersionedIdentity(entity.MustParseVersion(version)),
		Description: "step " + version,
		Checksum:    entity.Int32Ptr(checksum),
		Script:      "V" + version + "__step.sql",
		Type:        entity.TypeSQL,
		Body:        "select " + version + ";",
	}
}

func repeatableMigration(description string, checksum int32) entity.ResolvedMigration {
	return entity.ResolvedMigration{
		Identity:    entity.RepeatableIdentity(description),
		Description: description,
		Checksum:    entity.Int32Ptr(checksum),
		Script:      "R__" + description + ".sql",
		Type:        entity.TypeSQL,
	}
}

func historyRow(m entity.ResolvedMigration, success bool) entity.AppliedMigration {
	return entity.AppliedMigration{
		Identity:    m.Identity,
		Description: m.Description,
		Type:        m.Type,
		Script:      m.Script,
		Checksum:    m.Checksum,
		InstalledBy: "seed",
		InstalledOn: fixedNow,
		Success:     success,
	}
}

// seed appends rows through the store so ranks are assigned as in production
func (f *fixture) seed(t *testing.T, rows ...entity.AppliedMigration) {
	t.Helper()
	ctx := context.Background()
	if err := f.history.Create(ctx, false); err != nil {
		t.Fatal(err)
	}
	for _, row := range rows {
		if _, err := f.history.AddAppliedMigration(ctx, row); err != nil {
			t.Fatal(err)
		}
	}
}

var errScript = errors.New("syntax error at or near \"CREAT\"")
