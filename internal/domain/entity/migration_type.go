package entity

import "strings"

// MigrationType is the kind of a resolved or applied migration
type MigrationType string

// Migration types stored in the schema history
const (
	TypeSQL         MigrationType = "SQL"
	TypeSQLBaseline MigrationType = "SQL_BASELINE"
	TypeGo          MigrationType = "GO"
	TypeBaseline    MigrationType = "BASELINE" // synthetic marker written by baseline
	TypeDelete      MigrationType = "DELETE"   // synthetic marker written by repair
	TypeUndoSQL     MigrationType = "UNDO_SQL" // legacy histories only
	TypeUndoGo      MigrationType = "UNDO_GO"  // legacy histories only
)

// ParseMigrationType maps a stored type name to a MigrationType
func ParseMigrationType(s string) (MigrationType, bool) {
	t := MigrationType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case TypeSQL, TypeSQLBaseline, TypeGo, TypeBaseline, TypeDelete, TypeUndoSQL, TypeUndoGo:
		return t, true
	}
	return t, false
}

// IsBaseline reports whether the type marks a baseline
func (t MigrationType) IsBaseline() bool {
	return t == TypeBaseline || t == TypeSQLBaseline
}

// IsSynthetic reports whether the type is a marker that never executed anything
func (t MigrationType) IsSynthetic() bool {
	return t == TypeBaseline || t == TypeDelete
}

// IsUndo reports whether the type is an undo execution
func (t MigrationType) IsUndo() bool {
	return strings.HasPrefix(string(t), "UNDO_")
}

// String returns the stored type name
func (t MigrationType) String() string {
	return string(t)
}
