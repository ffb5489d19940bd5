package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/schema-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/schema-ledger/internal/domain/port/execution"
	"github.com/amirhossein-jamali/schema-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/schema-ledger/internal/domain/port/source"
	"github.com/amirhossein-jamali/schema-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/schema-ledger/internal/domain/usecase/reconcile"
)

// RepairStrategy decides what repair does with applied migrations that can no longer be resolved
type RepairStrategy string

// Repair strategies for missing migrations
const (
	RepairDelete RepairStrategy = "delete"
	RepairRemove RepairStrategy = "remove"
	RepairKeep   RepairStrategy = "keep"
)

// ParseRepairStrategy validates a configured repair strategy
func ParseRepairStrategy(s string) (RepairStrategy, error) {
	switch strategy := RepairStrategy(strings.ToLower(strings.TrimSpace(s))); strategy {
	case "":
		return RepairDelete, nil
	case RepairDelete, RepairRemove, RepairKeep:
		return strategy, nil
	default:
		return "", fmt.Errorf("%w: unknown repair strategy %q", errs.ErrInvalidRequest, s)
	}
}

// Config holds the behavior switches of the command drivers
type Config struct {
	Reconcile           reconcile.Config
	BaselineVersion     string
	BaselineDescription string
	BaselineOnMigrate   bool
	ValidateOnMigrate   bool
	RepairMissing       RepairStrategy
	RealignRepeatables  bool
	InstalledBy         string
}

// Service implements the command drivers on top of the resolver, the schema
// history store and the migration lock
type Service struct {
	resolver     source.MigrationResolver
	history      persistence.SchemaHistoryRepository
	legacy       persistence.LegacyHistoryRepository
	lock         persistence.MigrationLock
	executor     execution.MigrationExecutor
	timeProvider coreport.TimeProvider
	metrics      coreport.Metrics
	logger       coreport.Logger
	cfg          Config
}

var _ usecase.MigrationUseCase = (*Service)(nil)

// NewService creates a new command service
func NewService(
	resolver source.MigrationResolver,
	history persistence.SchemaHistoryRepository,
	legacy persistence.LegacyHistoryRepository,
	lock persistence.MigrationLock,
	executor execution.MigrationExecutor,
	timeProvider coreport.TimeProvider,
	metrics coreport.Metrics,
	logger coreport.Logger,
	cfg Config,
) *Service {
	if cfg.RepairMissing == "" {
		cfg.RepairMissing = RepairDelete
	}
	return &Service{
		resolver:     resolver,
		history:      history,
		legacy:       legacy,
		lock:         lock,
		executor:     executor,
		timeProvider: timeProvider,
		metrics:      metrics,
		logger:       logger,
		cfg:          cfg,
	}
}

// snapshot resolves migrations and reads the history, then reconciles them
func (s *Service) snapshot(ctx context.Context, cfg reconcile.Config) (*reconcile.InfoService, error) {
	resolved, err := s.resolver.ResolveMigrations(ctx)
	if err != nil {
		return nil, err
	}

	applied, err := s.history.AllAppliedMigrations(ctx)
	if err != nil {
		if !errors.Is(err, errs.ErrHistoryNotFound) {
			return nil, err
		}
		// A database that was never migrated has no history yet
		applied = nil
	}

	return reconcile.Reconcile(resolved, applied, cfg), nil
}

// withLock runs fn while holding the migration lock
func (s *Service) withLock(ctx context.Context, fn func() error) error {
	release, err := s.lock.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()
	return fn()
}

// observe records command metrics and logs the outcome
func (s *Service) observe(command string, start time.Time, err error) {
	duration := s.timeProvider.Since(start).Std()
	s.metrics.ObserveCommand(command, err == nil, duration)

	if err != nil {
		fields := errs.LogFieldsOf(err)
		fields["command"] = command
		fields["table"] = s.history.TableName()
		fields["duration_ms"] = duration.Milliseconds()
		s.logger.Error("Command failed", fields)
		return
	}
	s.logger.Info("Command completed", map[string]any{
		"command":     command,
		"table":       s.history.TableName(),
		"duration_ms": duration.Milliseconds(),
	})
}

func fatalIssues(issues []errs.ValidationIssue) []errs.ValidationIssue {
	var fatal []errs.ValidationIssue
	for _, issue := range issues {
		if issue.Kind.IsFatal() {
			fatal = append(fatal, issue)
		}
	}
	return fatal
}

func versionOf(info *entity.MigrationInfo) string {
	if info == nil {
		return ""
	}
	if v := info.Identity.VersionString(); v != nil {
		return *v
	}
	return ""
}

func versionOfIdentity(identity entity.Identity) string {
	if v := identity.VersionString(); v != nil {
		return *v
	}
	return ""
}
