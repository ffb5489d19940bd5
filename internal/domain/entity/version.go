package entity

import (
	"strings"

	errs "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"
)

// Version is an ordered, dot-separated sequence of numeric or textual components.
// Numeric components compare numerically, textual ones lexically, and missing
// trailing components count as zero, so "1" and "1.0" are equal.
type Version struct {
	components []string
}

// ParseVersion parses a dot-separated version such as "1.2.3"
func ParseVersion(s string) (Version, error) {
	input := strings.TrimSpace(s)
	if input == "" {
		return Version{}, errs.NewInvalidFormatError(s, "version is empty")
	}

	parts := strings.Split(input, ".")
	components := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return Version{}, errs.NewInvalidFormatError(s, "version contains an empty component")
		}
		if !isAlphanumeric(part) {
			return Version{}, errs.NewInvalidFormatError(s, "component "+part+" contains invalid characters")
		}
		components = append(components, normalizeComponent(part))
	}

	return Version{components: components}, nil
}

// MustParseVersion parses a version and panics on malformed input
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the normalized dotted form
func (v Version) String() string {
	return strings.Join(v.components, ".")
}

// IsZero reports whether the version was never parsed
func (v Version) IsZero() bool {
	return len(v.components) == 0
}

// Key returns a canonical form with trailing zero components removed, suitable for map keys
func (v Version) Key() string {
	end := len(v.components)
	for end > 1 && v.components[end-1] == "0" {
		end--
	}
	return strings.Join(v.components[:end], ".")
}

// Compare returns -1, 0 or 1 depending on whether v is lower than, equal to or higher than other
func (v Version) Compare(other Version) int {
	n := len(v.components)
	if len(other.components) > n {
		n = len(other.components)
	}

	for i := 0; i < n; i++ {
		if c := compareComponents(componentAt(v.components, i), componentAt(other.components, i)); c != 0 {
			return c
		}
	}
	return 0
}

// Equal reports structural equality after trailing-zero normalization
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// LessThan reports whether v sorts before other
func (v Version) LessThan(other Version) bool {
	return v.Compare(other) < 0
}

// GreaterThan reports whether v sorts after other
func (v Version) GreaterThan(other Version) bool {
	return v.Compare(other) > 0
}

func componentAt(components []string, i int) string {
	if i < len(components) {
		return components[i]
	}
	return "0"
}

// compareComponents orders numeric components numerically and before textual ones
func compareComponents(a, b string) int {
	aNum, bNum := isNumeric(a), isNumeric(b)
	switch {
	case aNum && bNum:
		// Leading zeros are already stripped, so a longer string is a larger number
		if len(a) != len(b) {
			if len(a) < len(b) {
				return -1
			}
			return 1
		}
		return strings.Compare(a, b)
	case aNum:
		return -1
	case bNum:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

func normalizeComponent(part string) string {
	if !isNumeric(part) {
		return part
	}
	trimmed := strings.TrimLeft(part, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		default:
			return false
		}
	}
	return true
}
