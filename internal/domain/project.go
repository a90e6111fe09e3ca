package domain

import "time"

// Project is a content record attached to a leaf sub-domain. The server owns
// the slug (derived from the title) and the view counter; neither is ever
// sent by this client.
type Project struct {
	ID               string
	Title            string
	Abstract         string
	Specifications   string
	LearningOutcomes string
	IsFeatured       bool
	IsActive         bool // archived means !IsActive
	ViewCount        int
	SubDomainID      string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Archived reports whether the project is archived.
func (p *Project) Archived() bool {
	return !p.IsActive
}
