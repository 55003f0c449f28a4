package sharepoint

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/LindaBusdiecker/SharePointOnline/internal/core/domain"
)

// SharePoint FieldTypeKind values this package distinguishes.
const (
	fieldTypeKindText     = 2
	fieldTypeKindDateTime = 4
)

// TypeAsString values this package distinguishes.
const (
	typeNameText     = "Text"
	typeNameDateTime = "DateTime"
)

// odataTypeFieldDateTime is the entity type used in update payloads.
const odataTypeFieldDateTime = "SP.FieldDateTime"

type listJSON struct {
	ID           string `json:"Id"`
	Title        string `json:"Title"`
	Hidden       bool   `json:"Hidden"`
	BaseTemplate int    `json:"BaseTemplate"`
}

type fieldJSON struct {
	ID                     string `json:"Id"`
	Title                  string `json:"Title"`
	InternalName           string `json:"InternalName"`
	TypeAsString           string `json:"TypeAsString"`
	FieldTypeKind          int    `json:"FieldTypeKind"`
	ReadOnlyField          bool   `json:"ReadOnlyField"`
	DateTimeFriendlyFormat *int   `json:"DateTimeFriendlyFormat"`
}

type updateMetadata struct {
	Type string `json:"type"`
}

type dateTimeFieldUpdate struct {
	Metadata               updateMetadata `json:"__metadata"`
	DateTimeFriendlyFormat int            `json:"DateTimeFriendlyFormat"`
}

// decodeList converts a list entry from the lists collection.
func decodeList(raw json.RawMessage) (domain.List, error) {
	var l listJSON
	if err := json.Unmarshal(raw, &l); err != nil {
		return domain.List{}, fmt.Errorf("decode list: %w", err)
	}

	id, err := uuid.Parse(l.ID)
	if err != nil {
		return domain.List{}, fmt.Errorf("list %q has invalid id %q: %w", l.Title, l.ID, err)
	}

	return domain.List{
		ID:           id,
		Title:        l.Title,
		Hidden:       l.Hidden,
		BaseTemplate: l.BaseTemplate,
	}, nil
}

// decodeField converts a field entry into its domain variant. This is the only
// place the service's type tag is inspected.
func decodeField(raw json.RawMessage) (domain.Field, error) {
	var f fieldJSON
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode field: %w", err)
	}

	id, err := uuid.Parse(f.ID)
	if err != nil {
		return nil, fmt.Errorf("field %q has invalid id %q: %w", f.Title, f.ID, err)
	}

	info := domain.FieldInfo{
		ID:           id,
		Title:        f.Title,
		InternalName: f.InternalName,
		ReadOnly:     f.ReadOnlyField,
	}

	switch {
	case isDateTime(&f):
		dt := &domain.DateTimeField{FieldInfo: info}
		if f.DateTimeFriendlyFormat != nil {
			dt.DisplayFormat = domain.DisplayFormat(*f.DateTimeFriendlyFormat)
		}
		return dt, nil
	case f.TypeAsString == typeNameText || (f.TypeAsString == "" && f.FieldTypeKind == fieldTypeKindText):
		return &domain.TextField{FieldInfo: info}, nil
	default:
		typeName := f.TypeAsString
		if typeName == "" {
			typeName = fmt.Sprintf("FieldTypeKind(%d)", f.FieldTypeKind)
		}
		return &domain.OtherField{FieldInfo: info, TypeName: typeName}, nil
	}
}

func isDateTime(f *fieldJSON) bool {
	if f.TypeAsString != "" {
		return f.TypeAsString == typeNameDateTime
	}
	return f.FieldTypeKind == fieldTypeKindDateTime
}

// encodeDateTimeUpdate builds the MERGE payload for a date/time field.
func encodeDateTimeUpdate(format domain.DisplayFormat) ([]byte, error) {
	return json.Marshal(dateTimeFieldUpdate{
		Metadata:               updateMetadata{Type: odataTypeFieldDateTime},
		DateTimeFriendlyFormat: int(format),
	})
}
