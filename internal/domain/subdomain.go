package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	TitleMinLen       = 3
	TitleMaxLen       = 100
	DescriptionMaxLen = 500
)

// SubDomain is a node in a domain's category tree. A node with children is a
// category; a node without children is a leaf and is the only kind of node
// that may hold projects. Leaf status is always derived from Children, never
// stored, so it cannot drift.
type SubDomain struct {
	ID           string
	Title        string
	Description  string
	Children     []*SubDomain // server order; never sorted client-side
	ProjectCount int          // advisory cache, meaningful on leaves only
	ParentID     *string      // nil for roots owned directly by the domain
}

// IsLeaf reports whether the node has no children.
func (s *SubDomain) IsLeaf() bool {
	return len(s.Children) == 0
}

// ValidateTitle checks the trimmed title against the server's length rules.
// The server enforces the same bounds; this only avoids a doomed round trip.
func ValidateTitle(title string) error {
	t := strings.TrimSpace(title)
	if t == "" {
		return fmt.Errorf("title is required")
	}
	n := utf8.RuneCountInString(t)
	if n < TitleMinLen || n > TitleMaxLen {
		return fmt.Errorf("title must be %d-%d characters, got %d", TitleMinLen, TitleMaxLen, n)
	}
	return nil
}

// ValidateDescription checks the description length. Empty is allowed.
func ValidateDescription(desc string) error {
	if n := utf8.RuneCountInString(desc); n > DescriptionMaxLen {
		return fmt.Errorf("description must be at most %d characters, got %d", DescriptionMaxLen, n)
	}
	return nil
}
