package tree

// ExpansionState tracks which nodes currently show their children. Keyed by
// raw node id, which is why ids must be unique across the whole forest and
// not just within a sibling list. There is no persistence: every forest
// reload reseeds the state to "first level expanded", deliberately dropping
// any deeper expansion the user had opened.
type ExpansionState struct {
	expanded map[string]struct{}
}

// NewExpansionState returns an empty (all collapsed) state.
func NewExpansionState() *ExpansionState {
	return &ExpansionState{expanded: make(map[string]struct{})}
}

// Seed replaces the state wholesale with the given ids. The slice is copied;
// the caller keeps ownership of it.
func (e *ExpansionState) Seed(ids []string) {
	e.expanded = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		e.expanded[id] = struct{}{}
	}
}

// Toggle flips membership: expanded becomes collapsed and vice versa.
func (e *ExpansionState) Toggle(id string) {
	if _, ok := e.expanded[id]; ok {
		delete(e.expanded, id)
	} else {
		e.expanded[id] = struct{}{}
	}
}

// IsExpanded reports whether the node's children are visible.
func (e *ExpansionState) IsExpanded(id string) bool {
	_, ok := e.expanded[id]
	return ok
}

// Len returns the number of expanded nodes.
func (e *ExpansionState) Len() int {
	return len(e.expanded)
}
