package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwesthall/catalogctl/internal/domain"
	"github.com/mwesthall/catalogctl/internal/tree"
)

// resolveNode loads the domain's forest and resolves a node reference, which
// may be an exact id or a unique case-insensitive title match.
func resolveNode(ctx context.Context, app *App, domainID, ref string) (*domain.SubDomain, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, fmt.Errorf("sub-domain ID is required")
	}

	_, forest, err := app.Ctrl.LoadForest(ctx, domainID)
	if err != nil {
		return nil, err
	}

	if node, ok := tree.FindByID(forest, ref); ok {
		return node, nil
	}

	var matches []*domain.SubDomain
	var walk func(nodes []*domain.SubDomain)
	walk = func(nodes []*domain.SubDomain) {
		for _, n := range nodes {
			if strings.EqualFold(n.Title, ref) {
				matches = append(matches, n)
			}
			walk(n.Children)
		}
	}
	walk(forest)

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("sub-domain not found: %q", ref)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("title %q is ambiguous (%d matches), use the id", ref, len(matches))
	}
}

// resolveProject finds a project by id within a leaf's project list.
func resolveProject(ctx context.Context, app *App, node *domain.SubDomain, projectID string) (*domain.Project, error) {
	projects, err := app.Ctrl.ListProjects(ctx, node)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if p.ID == projectID {
			return p, nil
		}
	}
	for _, p := range projects {
		if strings.EqualFold(p.Title, projectID) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("project not found on %q: %q", node.Title, projectID)
}
