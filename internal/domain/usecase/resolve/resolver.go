package resolve

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/schema-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/schema-ledger/internal/domain/port/source"
	"golang.org/x/sync/errgroup"
)

// Resolver discovers migrations from script locations and code providers
type Resolver struct {
	providers     []source.ResourceProvider
	codeProviders []source.CodeMigrationProvider
	naming        NamingConfig
	logger        coreport.Logger
}

// NewResolver creates a new Resolver
func NewResolver(
	naming NamingConfig,
	logger coreport.Logger,
	providers []source.ResourceProvider,
	codeProviders []source.CodeMigrationProvider,
) *Resolver {
	return &Resolver{
		providers:     providers,
		codeProviders: codeProviders,
		naming:        naming,
		logger:        logger,
	}
}

// ResolveMigrations scans every source and returns a deduplicated catalog:
// versioned migrations by ascending version, then repeatable ones by description.
func (r *Resolver) ResolveMigrations(ctx context.Context) ([]entity.ResolvedMigration, error) {
	scanned := make([][]entity.ResolvedMigration, len(r.providers)+len(r.codeProviders))

	g, gctx := errgroup.WithContext(ctx)
	for i, provider := range r.providers {
		g.Go(func() error {
			migrations, err := r.scanProvider(gctx, provider)
			if err != nil {
				return err
			}
			scanned[i] = migrations
			return nil
		})
	}
	for i, provider := range r.codeProviders {
		slot := len(r.providers) + i
		g.Go(func() error {
			migrations, err := r.loadCodeMigrations(gctx, provider)
			if err != nil {
				return err
			}
			scanned[slot] = migrations
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		r.logger.Error("Migration resolution failed", errs.LogFieldsOf(err))
		return nil, err
	}

	resolved, err := mergeResolved(scanned)
	if err != nil {
		r.logger.Error("Migration resolution failed", errs.LogFieldsOf(err))
		return nil, err
	}

	r.logger.Debug("Resolved migrations", map[string]any{
		"count":     len(resolved),
		"locations": len(r.providers) + len(r.codeProviders),
	})
	return resolved, nil
}

// scanProvider lists and parses every candidate script of one location
func (r *Resolver) scanProvider(ctx context.Context, provider source.ResourceProvider) ([]entity.ResolvedMigration, error) {
	seen := make(map[string]bool)
	var migrations []entity.ResolvedMigration

	for _, prefix := range r.naming.Prefixes() {
		resources, err := provider.ListResources(ctx, prefix, r.naming.Suffixes)
		if err != nil {
			return nil, err
		}

		for _, resource := range resources {
			// Overlapping prefixes may list the same file twice
			if seen[resource.Location] {
				continue
			}
			seen[resource.Location] = true

			parsed, err := ParseMigrationName(resource.Filename, resource.Location, r.naming)
			if err != nil {
				return nil, err
			}

			migrations = append(migrations, entity.ResolvedMigration{
				Identity:         parsed.Identity,
				Description:      parsed.Description,
				Checksum:         entity.Int32Ptr(entity.ComputeChecksum(resource.Content)),
				Script:           resource.Filename,
				PhysicalLocation: resource.Location,
				Type:             parsed.Type,
				Body:             string(resource.Content),
			})
		}
	}

	return migrations, nil
}

// loadCodeMigrations converts code migrations into resolved migrations
func (r *Resolver) loadCodeMigrations(ctx context.Context, provider source.CodeMigrationProvider) ([]entity.ResolvedMigration, error) {
	codeMigrations, err := provider.LoadMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", errs.ErrUnreadableLocation, provider.Location(), err.Error())
	}

	migrations := make([]entity.ResolvedMigration, 0, len(codeMigrations))
	for _, cm := range codeMigrations {
		var identity entity.Identity
		if strings.TrimSpace(cm.Version) == "" {
			if strings.TrimSpace(cm.Description) == "" {
				return nil, errs.NewInvalidMigrationNameError(cm.Name, provider.Location(),
					"repeatable migration requires a description", nil)
			}
			identity = entity.RepeatableIdentity(cm.Description)
		} else {
			version, err := entity.ParseVersion(cm.Version)
			if err != nil {
				return nil, errs.NewInvalidMigrationNameError(cm.Name, provider.Location(), "invalid version", err)
			}
			identity = entity.VersionedIdentity(version)
		}

		migrations = append(migrations, entity.ResolvedMigration{
			Identity:         identity,
			Description:      cm.Description,
			Checksum:         cm.Checksum,
			Script:           cm.Name,
			PhysicalLocation: provider.Location() + "/" + cm.Name,
			Type:             entity.TypeGo,
		})
	}
	return migrations, nil
}

// mergeResolved combines per-source results in source order and rejects duplicate identities
func mergeResolved(scanned [][]entity.ResolvedMigration) ([]entity.ResolvedMigration, error) {
	byKey := make(map[string]entity.ResolvedMigration)
	var merged []entity.ResolvedMigration

	for _, migrations := range scanned {
		for _, m := range migrations {
			key := m.Identity.Key()
			if existing, ok := byKey[key]; ok {
				return nil, errs.NewDuplicateMigrationError(m.Identity.String(),
					existing.PhysicalLocation, m.PhysicalLocation)
			}
			byKey[key] = m
			merged = append(merged, m)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Identity.Compare(merged[j].Identity) < 0
	})
	return merged, nil
}
