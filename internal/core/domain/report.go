package domain

import "fmt"

// FieldChange records one committed (or, in a dry run, planned) display format write.
type FieldChange struct {
	ListTitle  string
	FieldTitle string
	Before     DisplayFormat
	After      DisplayFormat
}

// BeforeLine renders the diagnostic line emitted ahead of the write.
func (c FieldChange) BeforeLine() string {
	return fmt.Sprintf("Before: List [%s], Field [%s] value: [%s]", c.ListTitle, c.FieldTitle, c.Before)
}

// AfterLine renders the diagnostic line emitted after the write.
func (c FieldChange) AfterLine() string {
	return fmt.Sprintf("After: List [%s], Field [%s] value: [%s]", c.ListTitle, c.FieldTitle, c.After)
}

// Report summarises one run against one site. On failure it still holds every
// change committed before the abort.
type Report struct {
	SiteURL       string
	ListsScanned  int
	FieldsScanned int
	Changes       []FieldChange
	DryRun        bool
}

// ListsChanged counts the distinct lists with at least one change.
func (r *Report) ListsChanged() int {
	seen := make(map[string]struct{})
	for _, c := range r.Changes {
		seen[c.ListTitle] = struct{}{}
	}
	return len(seen)
}
