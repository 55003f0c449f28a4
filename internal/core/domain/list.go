package domain

import "github.com/google/uuid"

// List is a list or document library on a site.
type List struct {
	ID           uuid.UUID
	Title        string
	Hidden       bool
	BaseTemplate int
}
