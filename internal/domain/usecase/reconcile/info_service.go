package reconcile

import (
	"fmt"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"
)

// InfoService is an immutable reconciliation snapshot. It is safe for concurrent use.
type InfoService struct {
	infos           []entity.MigrationInfo
	cfg             Config
	skipped         map[string]bool
	appliedBaseline *entity.Version
}

// All returns every migration, versioned ascending then repeatables by description
func (s *InfoService) All() []entity.MigrationInfo {
	return s.filter(func(entity.MigrationInfo) bool { return true })
}

// Pending returns migrations waiting to run, including outdated repeatables
func (s *InfoService) Pending() []entity.MigrationInfo {
	return s.filter(func(m entity.MigrationInfo) bool {
		return m.State == entity.StatePending || m.State == entity.StateOutdated
	})
}

// Applied returns migrations with a live history row
func (s *InfoService) Applied() []entity.MigrationInfo {
	return s.filter(func(m entity.MigrationInfo) bool { return m.State.IsApplied() })
}

// Resolved returns migrations available from a source
func (s *InfoService) Resolved() []entity.MigrationInfo {
	return s.filter(func(m entity.MigrationInfo) bool { return m.Resolved != nil })
}

// Failed returns migrations whose last execution failed
func (s *InfoService) Failed() []entity.MigrationInfo {
	return s.filter(func(m entity.MigrationInfo) bool { return m.State.IsFailed() })
}

// Future returns applied migrations newer than anything resolved
func (s *InfoService) Future() []entity.MigrationInfo {
	return s.filter(func(m entity.MigrationInfo) bool { return m.State.IsFuture() })
}

// OutOfOrder returns migrations applied below an already applied version
func (s *InfoService) OutOfOrder() []entity.MigrationInfo {
	return s.filter(func(m entity.MigrationInfo) bool { return m.State == entity.StateOutOfOrder })
}

// Outdated returns repeatable migrations whose script changed since the last run
func (s *InfoService) Outdated() []entity.MigrationInfo {
	return s.filter(func(m entity.MigrationInfo) bool { return m.State == entity.StateOutdated })
}

// ByState returns migrations in the given state
func (s *InfoService) ByState(state entity.MigrationState) []entity.MigrationInfo {
	return s.filter(func(m entity.MigrationInfo) bool { return m.State == state })
}

// Current returns the applied versioned migration with the highest installed rank, or nil
func (s *InfoService) Current() *entity.MigrationInfo {
	var current *entity.MigrationInfo
	for i := range s.infos {
		info := s.infos[i]
		if !info.Identity.IsVersioned() || !info.State.IsApplied() {
			continue
		}
		if current == nil || info.InstalledRank() > current.InstalledRank() {
			current = &info
		}
	}
	return current
}

// Next returns the first pending migration after Current in resolution order, or nil
func (s *InfoService) Next() *entity.MigrationInfo {
	current := s.Current()
	for _, info := range s.infos {
		if info.State != entity.StatePending {
			continue
		}
		if current != nil && info.Identity.Compare(current.Identity) <= 0 {
			continue
		}
		return &info
	}
	return nil
}

// CurrentVersion returns the version of Current
func (s *InfoService) CurrentVersion() (entity.Version, bool) {
	if current := s.Current(); current != nil {
		return current.Identity.Version()
	}
	return entity.Version{}, false
}

// NextVersion returns the version of Next when it is versioned
func (s *InfoService) NextVersion() (entity.Version, bool) {
	if next := s.Next(); next != nil {
		return next.Identity.Version()
	}
	return entity.Version{}, false
}

// Validate lists every inconsistency between the resolved catalog and the history at once
func (s *InfoService) Validate() []errs.ValidationIssue {
	var issues []errs.ValidationIssue
	for _, info := range s.infos {
		issues = append(issues, s.stateIssues(info)...)
		issues = append(issues, s.contentIssues(info)...)
	}
	return issues
}

func (s *InfoService) stateIssues(info entity.MigrationInfo) []errs.ValidationIssue {
	issue := func(kind errs.IssueKind, message string) []errs.ValidationIssue {
		return []errs.ValidationIssue{{
			Kind:     kind,
			Identity: info.Identity.String(),
			Script:   info.Script(),
			Message:  message,
		}}
	}

	switch info.State {
	case entity.StateMissingSuccess, entity.StateMissingFailed:
		if s.cfg.IgnoreMissing || s.belowAppliedBaseline(info.Identity) {
			return nil
		}
		return issue(errs.IssueMissing, "applied migration not resolved locally")
	case entity.StateFutureSuccess, entity.StateFutureFailed:
		if s.cfg.IgnoreFuture {
			return nil
		}
		return issue(errs.IssueFuture, "applied migration is newer than any resolved migration")
	case entity.StateFailed:
		return issue(errs.IssueFailed, "last execution failed, repair the schema history before migrating")
	case entity.StateIgnored:
		if s.skipped[info.Identity.Key()] {
			return issue(errs.IssueOutOfOrder, "resolved migration not applied and below the current version, enable outOfOrder to apply it")
		}
	case entity.StateOutdated:
		return issue(errs.IssueOutdated, "repeatable migration changed since its last run")
	}
	return nil
}

func (s *InfoService) contentIssues(info entity.MigrationInfo) []errs.ValidationIssue {
	applied := info.Applied()
	if info.Resolved == nil || applied == nil || !info.Identity.IsVersioned() || applied.Type.IsSynthetic() {
		return nil
	}
	switch info.State {
	case entity.StateSuccess, entity.StateOutOfOrder, entity.StateBaseline:
	default:
		return nil
	}

	resolved := info.Resolved
	var issues []errs.ValidationIssue
	add := func(kind errs.IssueKind, message string) {
		issues = append(issues, errs.ValidationIssue{
			Kind:     kind,
			Identity: info.Identity.String(),
			Script:   resolved.Script,
			Message:  message,
		})
	}

	if applied.Type != resolved.Type {
		add(errs.IssueTypeMismatch, fmt.Sprintf("applied as %s, resolved as %s", applied.Type, resolved.Type))
	}
	if !s.cfg.IgnoreChecksumMismatch && !entity.ChecksumsEqual(applied.Checksum, resolved.Checksum) {
		add(errs.IssueChecksumMismatch, fmt.Sprintf("applied checksum %s, resolved checksum %s",
			formatChecksum(applied.Checksum), formatChecksum(resolved.Checksum)))
	}
	if applied.Description != resolved.Description {
		add(errs.IssueDescriptionMismatch, fmt.Sprintf("applied description %q, resolved description %q",
			applied.Description, resolved.Description))
	}
	return issues
}

func (s *InfoService) belowAppliedBaseline(identity entity.Identity) bool {
	v, ok := identity.Version()
	return ok && s.appliedBaseline != nil && v.LessThan(*s.appliedBaseline)
}

func (s *InfoService) filter(keep func(entity.MigrationInfo) bool) []entity.MigrationInfo {
	result := make([]entity.MigrationInfo, 0, len(s.infos))
	for _, info := range s.infos {
		if keep(info) {
			result = append(result, info)
		}
	}
	return result
}

func formatChecksum(checksum *int32) string {
	if checksum == nil {
		return "<none>"
	}
	return fmt.Sprintf("%d", *checksum)
}
