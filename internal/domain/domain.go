package domain

// Domain is a top-level category container owning a forest of sub-domains.
// Domains are created and managed server-side; this client only reads them.
type Domain struct {
	ID           string
	Title        string
	Description  string
	ProjectCount int // server-supplied aggregate over the whole forest
}

// PlaceholderDomain returns a synthetic Domain for an id the server's domain
// list did not contain. The admin screen must always have something to
// render, even when domain metadata cannot be resolved.
func PlaceholderDomain(id string) *Domain {
	return &Domain{
		ID:    id,
		Title: "Domain " + id,
	}
}
