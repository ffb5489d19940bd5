package reconcile

import (
	"path"
	"sort"
	"strings"
	"unicode"

	"github.com/amirhossein-jamali/schema-ledger/internal/domain/entity"
)

// Config is the filter configuration applied during reconciliation
type Config struct {
	// CherryPick restricts the resolved migrations taken into account.
	// Entries are versions ("3", "V3") or repeatable descriptions ("R__Views", "Views").
	CherryPick []string
	// IgnorePatterns are path.Match globs over the identity or script name
	IgnorePatterns         []string
	OutOfOrder             bool
	IgnoreMissing          bool
	IgnoreFuture           bool
	IgnoreChecksumMismatch bool
	// Target caps which baseline migration a fresh history starts from
	Target entity.TargetVersion
}

// Reconcile merges the resolved catalog with the schema history into one
// MigrationInfo per identity. It is a pure function of its inputs.
func Reconcile(resolved []entity.ResolvedMigration, applied []entity.AppliedMigration, cfg Config) *InfoService {
	rows := make([]entity.AppliedMigration, len(applied))
	copy(rows, applied)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].InstalledRank < rows[j].InstalledRank
	})

	groups := make(map[string][]entity.AppliedMigration)
	identities := make(map[string]entity.Identity)
	for _, row := range rows {
		key := row.Identity.Key()
		groups[key] = append(groups[key], row)
		if _, ok := identities[key]; !ok {
			identities[key] = row.Identity
		}
	}

	resolvedByKey := make(map[string]entity.ResolvedMigration, len(resolved))
	for _, m := range resolved {
		key := m.Identity.Key()
		resolvedByKey[key] = m
		identities[key] = m.Identity
	}

	c := newClassifier(cfg, resolved, rows, groups)

	infos := make([]entity.MigrationInfo, 0, len(identities))
	for key, identity := range identities {
		var res *entity.ResolvedMigration
		if m, ok := resolvedByKey[key]; ok {
			res = &m
		}
		infos = append(infos, c.classify(identity, res, groups[key]))
	}
	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].Identity.Compare(infos[j].Identity) < 0
	})

	return &InfoService{
		infos:           infos,
		cfg:             cfg,
		skipped:         c.skipped,
		appliedBaseline: c.appliedBaseline,
	}
}

// classifier holds the history-wide facts the per-identity decision table needs
type classifier struct {
	cfg Config

	fresh           bool            // no live history row
	maxResolved     *entity.Version // highest resolved version, ignored ones included
	lastApplied     *entity.Version // highest version with a live history row
	appliedBaseline *entity.Version // highest live baseline row
	freshBaseline   *entity.Version // baseline migration a fresh history starts from
	outOfOrderRanks map[int]bool
	skipped         map[string]bool // resolved but left behind by a higher applied version
}

func newClassifier(
	cfg Config,
	resolved []entity.ResolvedMigration,
	rows []entity.AppliedMigration,
	groups map[string][]entity.AppliedMigration,
) *classifier {
	c := &classifier{
		cfg:             cfg,
		outOfOrderRanks: make(map[int]bool),
		skipped:         make(map[string]bool),
	}

	for _, m := range resolved {
		if v, ok := m.Identity.Version(); ok {
			c.maxResolved = maxVersion(c.maxResolved, v)
		}
	}

	c.fresh = true
	for _, group := range groups {
		last := group[len(group)-1]
		if !isLive(group) {
			continue
		}
		c.fresh = false
		if v, ok := last.Identity.Version(); ok {
			c.lastApplied = maxVersion(c.lastApplied, v)
			if last.Type.IsBaseline() {
				c.appliedBaseline = maxVersion(c.appliedBaseline, v)
			}
		}
	}

	var running *entity.Version
	for _, row := range rows {
		v, ok := row.Identity.Version()
		if !ok || row.Type == entity.TypeDelete || !isLive(groups[row.Identity.Key()]) {
			continue
		}
		if running != nil && v.LessThan(*running) {
			c.outOfOrderRanks[row.InstalledRank] = true
			continue
		}
		running = maxVersion(running, v)
	}

	if c.fresh {
		ceiling, bounded := cfg.Target.Version()
		for _, m := range resolved {
			v, ok := m.Identity.Version()
			if !ok || !m.IsBaselineMigration() || !c.included(m) {
				continue
			}
			if bounded && v.GreaterThan(ceiling) {
				continue
			}
			c.freshBaseline = maxVersion(c.freshBaseline, v)
		}
	}

	return c
}

func (c *classifier) classify(identity entity.Identity, resolved *entity.ResolvedMigration, rows []entity.AppliedMigration) entity.MigrationInfo {
	info := entity.MigrationInfo{Identity: identity, Resolved: resolved}

	// Exclusion wins over any recorded history
	if resolved != nil && !c.included(*resolved) {
		info.State = entity.StateIgnored
		info.Records = recordsWith(rows, entity.StateIgnored)
		return info
	}

	if resolved == nil {
		info.State = c.unresolvedState(identity, rows)
		info.Records = recordsWith(rows, info.State)
		return info
	}

	if !isLive(rows) {
		info.State = c.unappliedState(*resolved)
		info.Records = recordsWith(rows, entity.StateDeleted)
		return info
	}

	if identity.IsRepeatable() {
		return c.classifyRepeatable(info, rows)
	}

	last := rows[len(rows)-1]
	switch {
	case !last.Success:
		info.State = entity.StateFailed
	case last.Type.IsBaseline():
		info.State = entity.StateBaseline
	case c.outOfOrderRanks[last.InstalledRank] && !c.cfg.OutOfOrder:
		info.State = entity.StateOutOfOrder
	default:
		info.State = entity.StateSuccess
	}
	info.Records = recordsWith(rows, info.State)
	return info
}

// unresolvedState classifies history rows with no resolved counterpart
func (c *classifier) unresolvedState(identity entity.Identity, rows []entity.AppliedMigration) entity.MigrationState {
	last := rows[len(rows)-1]
	switch {
	case last.Type == entity.TypeDelete:
		return entity.StateDeleted
	case last.Type.IsBaseline():
		return entity.StateBaseline
	}

	if v, ok := identity.Version(); ok && (c.maxResolved == nil || v.GreaterThan(*c.maxResolved)) {
		if last.Success {
			return entity.StateFutureSuccess
		}
		return entity.StateFutureFailed
	}
	if last.Success {
		return entity.StateMissingSuccess
	}
	return entity.StateMissingFailed
}

// unappliedState classifies a resolved migration without a live history row
func (c *classifier) unappliedState(resolved entity.ResolvedMigration) entity.MigrationState {
	v, versioned := resolved.Identity.Version()
	if !versioned {
		return entity.StatePending
	}

	// A fresh history starts from one baseline migration. Once history exists, a
	// baseline migration is pending unless a higher baseline was applied or the
	// history has already moved past it.
	if resolved.IsBaselineMigration() {
		if c.fresh {
			if c.freshBaseline != nil && v.Equal(*c.freshBaseline) {
				return entity.StatePending
			}
			return entity.StateIgnored
		}
		if c.appliedBaseline != nil && v.LessThan(*c.appliedBaseline) {
			return entity.StateIgnored
		}
		if c.lastApplied != nil && v.LessThan(*c.lastApplied) {
			return entity.StateIgnored
		}
		return entity.StatePending
	}

	if c.freshBaseline != nil && !v.GreaterThan(*c.freshBaseline) {
		return entity.StateIgnored
	}
	if c.appliedBaseline != nil && !v.GreaterThan(*c.appliedBaseline) {
		return entity.StateIgnored
	}

	if c.lastApplied != nil && v.LessThan(*c.lastApplied) && !c.cfg.OutOfOrder {
		c.skipped[resolved.Identity.Key()] = true
		return entity.StateIgnored
	}
	return entity.StatePending
}

func (c *classifier) classifyRepeatable(info entity.MigrationInfo, rows []entity.AppliedMigration) entity.MigrationInfo {
	records := make([]entity.AppliedRecord, len(rows))
	for i, row := range rows[:len(rows)-1] {
		records[i] = entity.AppliedRecord{Migration: row, State: entity.StateSuperseded}
	}

	last := rows[len(rows)-1]
	switch {
	case !last.Success:
		info.State = entity.StateFailed
	case !entity.ChecksumsEqual(last.Checksum, info.Resolved.Checksum):
		info.State = entity.StateOutdated
	default:
		info.State = entity.StateSuccess
	}
	records[len(rows)-1] = entity.AppliedRecord{Migration: last, State: info.State}
	info.Records = records
	return info
}

// included applies the cherry-pick allow-list and the ignore patterns
func (c *classifier) included(m entity.ResolvedMigration) bool {
	for _, pattern := range c.cfg.IgnorePatterns {
		if globMatch(pattern, m.Identity.String()) || globMatch(pattern, m.Script) {
			return false
		}
	}

	if len(c.cfg.CherryPick) == 0 {
		return true
	}
	for _, entry := range c.cfg.CherryPick {
		if cherryPickMatches(strings.TrimSpace(entry), m.Identity) {
			return true
		}
	}
	return false
}

func cherryPickMatches(entry string, identity entity.Identity) bool {
	if v, ok := identity.Version(); ok {
		raw := entry
		if len(raw) > 1 && (raw[0] == 'V' || raw[0] == 'v') && unicode.IsDigit(rune(raw[1])) {
			raw = raw[1:]
		}
		picked, err := entity.ParseVersion(strings.ReplaceAll(raw, "_", "."))
		return err == nil && picked.Equal(v)
	}

	description := strings.ReplaceAll(strings.TrimPrefix(entry, "R__"), "_", " ")
	return description == identity.RepeatableDescription()
}

func globMatch(pattern, name string) bool {
	matched, err := path.Match(pattern, name)
	return err == nil && matched
}

func isLive(rows []entity.AppliedMigration) bool {
	return len(rows) > 0 && rows[len(rows)-1].Type != entity.TypeDelete
}

func recordsWith(rows []entity.AppliedMigration, state entity.MigrationState) []entity.AppliedRecord {
	if len(rows) == 0 {
		return nil
	}
	records := make([]entity.AppliedRecord, len(rows))
	for i, row := range rows {
		records[i] = entity.AppliedRecord{Migration: row, State: state}
	}
	return records
}

func maxVersion(current *entity.Version, v entity.Version) *entity.Version {
	if current == nil || v.GreaterThan(*current) {
		return &v
	}
	return current
}
