package repository

import (
	"context"
	"time"

	"github.com/mwesthall/catalogctl/internal/domain"
)

// ForestSnapshot is the last successfully fetched forest for one domain,
// kept locally so `catalogctl tree --cached` can render something when the
// backend is unreachable. The cache is write-only during normal operation:
// live loads always trust the network, never this table.
type ForestSnapshot struct {
	DomainID    string
	DomainTitle string
	Forest      []*domain.SubDomain
	FetchedAt   time.Time
}

type SnapshotRepo interface {
	// Save upserts the snapshot for its domain.
	Save(ctx context.Context, snap *ForestSnapshot) error
	// Get returns the snapshot for a domain, or (nil, nil) when none exists.
	Get(ctx context.Context, domainID string) (*ForestSnapshot, error)
	// Delete removes a domain's snapshot; deleting a missing one is not an error.
	Delete(ctx context.Context, domainID string) error
}
