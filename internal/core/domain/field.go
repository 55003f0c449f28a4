package domain

import "github.com/google/uuid"

// FieldKind identifies which variant a Field is.
type FieldKind int

const (
	// FieldKindOther covers every column type this tool does not touch.
	FieldKindOther FieldKind = iota
	// FieldKindText is a single line of text.
	FieldKindText
	// FieldKindDateTime is a date/time column; the only kind with a display format.
	FieldKindDateTime
)

// String returns a human-readable kind name.
func (k FieldKind) String() string {
	switch k {
	case FieldKindText:
		return "Text"
	case FieldKindDateTime:
		return "DateTime"
	default:
		return "Other"
	}
}

// Field is a column definition on a list. Implementations are *TextField,
// *DateTimeField and *OtherField. Only *DateTimeField exposes a display format,
// so mutation is gated by a type switch rather than a type-name comparison.
type Field interface {
	FieldID() uuid.UUID
	FieldTitle() string
	Kind() FieldKind
}

// FieldInfo holds the attributes every column has.
type FieldInfo struct {
	ID           uuid.UUID
	Title        string
	InternalName string
	ReadOnly     bool
}

// FieldID returns the column GUID.
func (f FieldInfo) FieldID() uuid.UUID { return f.ID }

// FieldTitle returns the column display name.
func (f FieldInfo) FieldTitle() string { return f.Title }

// TextField is a single-line text column.
type TextField struct {
	FieldInfo
}

// Kind returns FieldKindText.
func (*TextField) Kind() FieldKind { return FieldKindText }

// DateTimeField is a date/time column.
type DateTimeField struct {
	FieldInfo
	DisplayFormat DisplayFormat
}

// Kind returns FieldKindDateTime.
func (*DateTimeField) Kind() FieldKind { return FieldKindDateTime }

// OtherField is any column type other than text or date/time.
// TypeName keeps the service's own type tag for diagnostics.
type OtherField struct {
	FieldInfo
	TypeName string
}

// Kind returns FieldKindOther.
func (*OtherField) Kind() FieldKind { return FieldKindOther }

// Compile-time checks.
var (
	_ Field = (*TextField)(nil)
	_ Field = (*DateTimeField)(nil)
	_ Field = (*OtherField)(nil)
)
