package command

import (
	"context"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/schema-ledger/internal/domain/port/usecase"
)

// Info reconciles a fresh snapshot. The history is read without taking the lock.
func (s *Service) Info(ctx context.Context) (_ usecase.MigrationInfoService, err error) {
	start := s.timeProvider.Now()
	defer func() { s.observe("info", start, err) }()

	info, err := s.snapshot(ctx, s.cfg.Reconcile)
	if err != nil {
		return nil, err
	}
	return info, nil
}

// Validate reports every inconsistency between resolved and applied migrations at once
func (s *Service) Validate(ctx context.Context) (_ *entity.ValidateResult, err error) {
	start := s.timeProvider.Now()
	defer func() { s.observe("validate", start, err) }()

	info, err := s.snapshot(ctx, s.cfg.Reconcile)
	if err != nil {
		return nil, err
	}

	issues := info.Validate()
	fatal := fatalIssues(issues)
	result := &entity.ValidateResult{
		ValidationSuccessful: len(fatal) == 0,
		ValidateCount:        len(info.Resolved()),
		Issues:               issues,
	}
	if len(fatal) > 0 {
		return result, &errs.ValidationError{Issues: fatal}
	}
	return result, nil
}
