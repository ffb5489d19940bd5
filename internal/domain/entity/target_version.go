package entity

import (
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"
)

// TargetKind enumerates the forms a migration target can take
type TargetKind int

const (
	// TargetLatest runs everything that is pending
	TargetLatest TargetKind = iota
	// TargetNext runs only the next pending versioned migration
	TargetNext
	// TargetCurrent runs nothing above the current version
	TargetCurrent
	// TargetSpecific runs up to and including a concrete version
	TargetSpecific
)

// TargetVersion is a migration target. Symbolic targets are resolved against a
// reconciliation snapshot when evaluated, never at parse time.
type TargetVersion struct {
	kind    TargetKind
	version Version
}

// VersionContext exposes the parts of a reconciliation result a target needs
type VersionContext interface {
	CurrentVersion() (Version, bool)
	NextVersion() (Version, bool)
}

// TargetBound is a resolved target: either unbounded, a version ceiling, or nothing at all
type TargetBound struct {
	Unbounded bool
	None      bool
	Version   Version
}

// LatestTarget returns the default target
func LatestTarget() TargetVersion {
	return TargetVersion{kind: TargetLatest}
}

// ParseTargetVersion parses "latest", "next", "current" or a concrete version
func ParseTargetVersion(s string) (TargetVersion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "latest":
		return TargetVersion{kind: TargetLatest}, nil
	case "next":
		return TargetVersion{kind: TargetNext}, nil
	case "current":
		return TargetVersion{kind: TargetCurrent}, nil
	}

	v, err := ParseVersion(s)
	if err != nil {
		return TargetVersion{}, fmt.Errorf("%w: %s", errs.ErrInvalidTarget, err.Error())
	}
	return TargetVersion{kind: TargetSpecific, version: v}, nil
}

// Kind returns the target form
func (t TargetVersion) Kind() TargetKind {
	return t.kind
}

// String returns the textual target
func (t TargetVersion) String() string {
	switch t.kind {
	case TargetNext:
		return "next"
	case TargetCurrent:
		return "current"
	case TargetSpecific:
		return t.version.String()
	default:
		return "latest"
	}
}

// Resolve turns the target into a concrete bound using the given snapshot
func (t TargetVersion) Resolve(ctx VersionContext) TargetBound {
	switch t.kind {
	case TargetSpecific:
		return TargetBound{Version: t.version}
	case TargetNext:
		if next, ok := ctx.NextVersion(); ok {
			return TargetBound{Version: next}
		}
		return TargetBound{None: true}
	case TargetCurrent:
		if current, ok := ctx.CurrentVersion(); ok {
			return TargetBound{Version: current}
		}
		return TargetBound{None: true}
	default:
		return TargetBound{Unbounded: true}
	}
}

// Allows reports whether a versioned migration at v may run under this bound
func (b TargetBound) Allows(v Version) bool {
	switch {
	case b.None:
		return false
	case b.Unbounded:
		return true
	default:
		return !v.GreaterThan(b.Version)
	}
}

// String returns the bound for reporting
func (b TargetBound) String() string {
	switch {
	case b.None:
		return "<< none >>"
	case b.Unbounded:
		return "<< latest >>"
	default:
		return b.Version.String()
	}
}

// Version returns the concrete version of a specific target
func (t TargetVersion) Version() (Version, bool) {
	return t.version, t.kind == TargetSpecific
}
