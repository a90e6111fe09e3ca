// Package tree provides read-only traversal over a sub-domain forest and the
// expansion state used by tree views. Nothing here mutates nodes or talks to
// the network; the controller owns the forest, this package only answers
// structural questions about it.
package tree

import "github.com/mwesthall/catalogctl/internal/domain"

// FindByID does a depth-first search across the whole forest and returns the
// node with the given id. ok is false when the id is absent, which callers
// must treat as recoverable (the node may have been deleted server-side since
// the last fetch).
func FindByID(forest []*domain.SubDomain, id string) (*domain.SubDomain, bool) {
	for _, n := range forest {
		if n.ID == id {
			return n, true
		}
		if found, ok := FindByID(n.Children, id); ok {
			return found, true
		}
	}
	return nil, false
}

// Depth returns the number of ancestor hops from a root to the node with the
// given id; roots have depth 0. Returns -1 when the id is not in the forest.
// Informational only ("Level N" badges), not load-bearing for any rule.
func Depth(forest []*domain.SubDomain, id string) int {
	for _, n := range forest {
		if n.ID == id {
			return 0
		}
		if d := Depth(n.Children, id); d >= 0 {
			return d + 1
		}
	}
	return -1
}

// CollectIDs returns the ids of one level of nodes, in order. Applied to the
// forest's roots it yields the seed set for first-level auto-expansion.
func CollectIDs(nodes []*domain.SubDomain) []string {
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

// Count returns the total number of nodes in the forest at every depth.
func Count(forest []*domain.SubDomain) int {
	total := 0
	for _, n := range forest {
		total += 1 + Count(n.Children)
	}
	return total
}

// Row is one visible line of a rendered tree: the node plus the positional
// facts a renderer needs to draw connectors.
type Row struct {
	Node   *domain.SubDomain
	Depth  int
	IsLast bool // last among its siblings
}

// Flatten walks the forest in render order and returns a row for every node
// whose ancestors are all expanded. Roots are always visible. The forest is
// not modified.
func Flatten(forest []*domain.SubDomain, exp *ExpansionState) []Row {
	var rows []Row
	flattenInto(forest, exp, 0, &rows)
	return rows
}

func flattenInto(nodes []*domain.SubDomain, exp *ExpansionState, depth int, rows *[]Row) {
	for i, n := range nodes {
		*rows = append(*rows, Row{Node: n, Depth: depth, IsLast: i == len(nodes)-1})
		if !n.IsLeaf() && exp.IsExpanded(n.ID) {
			flattenInto(n.Children, exp, depth+1, rows)
		}
	}
}
