package domain

import (
	"fmt"
	"strings"
)

// DisplayFormat controls how a date/time column renders its values.
// The numeric values match SharePoint's DateTimeFieldFriendlyFormatType.
type DisplayFormat int

const (
	// DisplayFormatUnspecified leaves rendering to the platform default.
	DisplayFormatUnspecified DisplayFormat = 0
	// DisplayFormatDisabled renders absolute timestamps.
	DisplayFormatDisabled DisplayFormat = 1
	// DisplayFormatRelative renders relative phrases such as "today at 3:00 PM".
	DisplayFormatRelative DisplayFormat = 2
)

// DisplayFormats lists every accepted value in numeric order.
var DisplayFormats = []DisplayFormat{
	DisplayFormatUnspecified,
	DisplayFormatDisabled,
	DisplayFormatRelative,
}

var displayFormatNames = map[DisplayFormat]string{
	DisplayFormatUnspecified: "Unspecified",
	DisplayFormatDisabled:    "Disabled",
	DisplayFormatRelative:    "Relative",
}

// ParseDisplayFormat converts a symbolic name into a DisplayFormat.
// Matching is case-insensitive and "Undefined" is an alias for Unspecified.
func ParseDisplayFormat(s string) (DisplayFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unspecified", "undefined":
		return DisplayFormatUnspecified, nil
	case "disabled":
		return DisplayFormatDisabled, nil
	case "relative":
		return DisplayFormatRelative, nil
	default:
		return 0, fmt.Errorf("%w: %q (expected Undefined, Disabled or Relative)", ErrInvalidDisplayFormat, s)
	}
}

// Valid reports whether f is one of the known values.
func (f DisplayFormat) Valid() bool {
	_, ok := displayFormatNames[f]
	return ok
}

// String returns the canonical name, or the number for unknown values.
func (f DisplayFormat) String() string {
	if name, ok := displayFormatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("DisplayFormat(%d)", int(f))
}
