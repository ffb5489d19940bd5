package command

import (
	"context"
	"strings"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/schema-ledger/internal/domain/port/usecase"
)

// Baseline marks the schema as trusted at the baseline version. It refuses when
// the history holds anything but a baseline at the same version.
func (s *Service) Baseline(ctx context.Context, req usecase.BaselineRequest) (_ *entity.BaselineResult, err error) {
	start := s.timeProvider.Now()
	defer func() { s.observe("baseline", start, err) }()

	rawVersion := strings.TrimSpace(req.Version)
	if rawVersion == "" {
		rawVersion = s.cfg.BaselineVersion
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = s.cfg.BaselineDescription
	}

	version, err := entity.ParseVersion(rawVersion)
	if err != nil {
		return nil, err
	}

	result := &entity.BaselineResult{
		SchemaHistoryTable:  s.history.TableName(),
		BaselineVersion:     version.String(),
		BaselineDescription: description,
	}

	err = s.withLock(ctx, func() error {
		if err := s.history.Create(ctx, false); err != nil {
			return err
		}

		applied, err := s.history.AllAppliedMigrations(ctx)
		if err != nil {
			return err
		}

		for _, row := range applied {
			if row.Type != entity.TypeBaseline {
				return &errs.BaselineError{
					Version: version.String(),
					Reason:  "schema history already contains applied migrations",
				}
			}
			existing, ok := row.Identity.Version()
			if !ok || !existing.Equal(version) {
				return &errs.BaselineError{
					Version: version.String(),
					Reason:  "schema history is already baselined at version " + row.Identity.String(),
				}
			}
		}

		if len(applied) > 0 {
			s.logger.Info("Schema history already baselined", map[string]any{
				"table":   s.history.TableName(),
				"version": version.String(),
			})
			result.SuccessfullyBaselined = true
			return nil
		}

		_, err = s.history.AddAppliedMigration(ctx, entity.AppliedMigration{
			Identity:    entity.VersionedIdentity(version),
			Description: description,
			Type:        entity.TypeBaseline,
			Script:      description,
			InstalledBy: s.cfg.InstalledBy,
			InstalledOn: s.timeProvider.Now(),
			Success:     true,
		})
		if err != nil {
			return err
		}
		result.SuccessfullyBaselined = true
		return nil
	})
	if err != nil {
		return result, err
	}
	return result, nil
}
