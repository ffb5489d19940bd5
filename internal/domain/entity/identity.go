package entity

import "strings"

// IdentityKind distinguishes versioned from repeatable migrations
type IdentityKind int

const (
	// KindVersioned identifies a migration by its Version
	KindVersioned IdentityKind = iota + 1
	// KindRepeatable identifies a migration by its description only
	KindRepeatable
)

// Identity is either Versioned(Version) or Repeatable(description).
// The zero value is invalid; use the constructors.
type Identity struct {
	kind        IdentityKind
	version     Version
	description string
}

// VersionedIdentity creates the identity of a versioned migration
func VersionedIdentity(v Version) Identity {
	return Identity{kind: KindVersioned, version: v}
}

// RepeatableIdentity creates the identity of a repeatable migration
func RepeatableIdentity(description string) Identity {
	return Identity{kind: KindRepeatable, description: description}
}

// NewIdentity builds an identity from a nullable version column and a description
func NewIdentity(version *string, description string) (Identity, error) {
	if version == nil || strings.TrimSpace(*version) == "" {
		return RepeatableIdentity(description), nil
	}
	v, err := ParseVersion(*version)
	if err != nil {
		return Identity{}, err
	}
	return VersionedIdentity(v), nil
}

// Kind returns the identity variant
func (i Identity) Kind() IdentityKind {
	return i.kind
}

// IsVersioned reports whether this is a versioned identity
func (i Identity) IsVersioned() bool {
	return i.kind == KindVersioned
}

// IsRepeatable reports whether this is a repeatable identity
func (i Identity) IsRepeatable() bool {
	return i.kind == KindRepeatable
}

// Version returns the version and true for versioned identities
func (i Identity) Version() (Version, bool) {
	return i.version, i.kind == KindVersioned
}

// RepeatableDescription returns the description for repeatable identities
func (i Identity) RepeatableDescription() string {
	return i.description
}

// VersionString returns the version text, or nil for repeatable identities
func (i Identity) VersionString() *string {
	if i.kind != KindVersioned {
		return nil
	}
	s := i.version.String()
	return &s
}

// Key returns a canonical key; equal identities share the same key
func (i Identity) Key() string {
	if i.kind == KindVersioned {
		return "V:" + i.version.Key()
	}
	return "R:" + i.description
}

// String returns the version for versioned identities and the description for repeatable ones
func (i Identity) String() string {
	if i.kind == KindVersioned {
		return i.version.String()
	}
	return i.description
}

// Equal reports whether two identities denote the same migration
func (i Identity) Equal(other Identity) bool {
	return i.Compare(other) == 0
}

// Compare orders versioned identities by version first, then repeatable ones by description
func (i Identity) Compare(other Identity) int {
	switch {
	case i.kind == KindVersioned && other.kind == KindVersioned:
		return i.version.Compare(other.version)
	case i.kind == KindVersioned:
		return -1
	case other.kind == KindVersioned:
		return 1
	default:
		return strings.Compare(i.description, other.description)
	}
}
