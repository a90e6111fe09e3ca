// Package controller orchestrates the hierarchy screen: it is the only
// caller of the API client, owns the authoritative forest plus the expansion
// state, and applies every mutation as "mutate remotely, then refetch
// wholesale". Nodes are value-like and replaced on every load, never patched
// in place, so a failed operation can never leave the forest half-mutated.
package controller

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mwesthall/catalogctl/internal/api"
	"github.com/mwesthall/catalogctl/internal/domain"
	"github.com/mwesthall/catalogctl/internal/repository"
	"github.com/mwesthall/catalogctl/internal/tree"
)

// projectPageLimit is sized to return "all" projects of a leaf in one call.
// Pagination beyond this is out of scope for the admin screen.
const projectPageLimit = 200

// ProjectFields carries the user-entered fields for creating a project.
// There is deliberately no slug field: the server derives it from the title.
type ProjectFields struct {
	Title            string
	Abstract         string
	Specifications   string
	LearningOutcomes string
	IsFeatured       bool
}

// Controller owns one domain's forest and the expansion state over it.
type Controller struct {
	client    api.Client
	notifier  Notifier
	snapshots repository.SnapshotRepo // optional; nil disables the cache

	mu        sync.Mutex
	domainID  string
	domain    *domain.Domain
	forest    []*domain.SubDomain
	expansion *tree.ExpansionState
	loading   bool

	// loadGen guards against overlapping loads resolving out of order: only
	// the newest issued load may commit. The original screen had no such
	// guard and let the last response win.
	loadGen uint64
}

// New creates a Controller. notifier may be nil (notifications discarded);
// snapshots may be nil (no local cache).
func New(client api.Client, notifier Notifier, snapshots repository.SnapshotRepo) *Controller {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &Controller{
		client:    client,
		notifier:  notifier,
		snapshots: snapshots,
		expansion: tree.NewExpansionState(),
	}
}

// Domain returns the currently loaded domain, possibly a placeholder.
func (c *Controller) Domain() *domain.Domain {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.domain
}

// Forest returns the authoritative forest from the last successful load.
func (c *Controller) Forest() []*domain.SubDomain {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.forest
}

// Expansion returns the expansion state. Owned by the controller; reseeded
// to "first level expanded" on every successful load.
func (c *Controller) Expansion() *tree.ExpansionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expansion
}

// Loading reports whether a forest load is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// ToggleExpanded flips a node's expansion. Unknown ids toggle harmlessly.
func (c *Controller) ToggleExpanded(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expansion.Toggle(id)
}

// LoadForest fetches the domain's metadata and forest, reconciling two
// independently fetched representations:
//
//   - the flat sub-domain list is the primary source; its failure is the
//     only user-visible load error
//   - the hierarchy endpoint is preferred when it succeeds and returns a
//     non-empty forest, because it carries the fuller nested structure; its
//     failure silently falls back to the flat list
//
// Domain metadata absent from the domain list degrades to a placeholder so
// the screen always has something to render, and even a total failure leaves
// a valid (placeholder domain, empty forest) state behind. On success the
// expansion state is reseeded to exactly the first-level node ids.
func (c *Controller) LoadForest(ctx context.Context, domainID string) (*domain.Domain, []*domain.SubDomain, error) {
	gen := c.beginLoad(domainID)

	dom := c.resolveDomain(ctx, domainID)

	flat, flatErr := c.client.ListSubDomains(ctx, domainID)
	if flatErr != nil {
		c.commit(gen, dom, nil)
		c.notifier.Error(api.UserMessage(flatErr))
		return dom, nil, flatErr
	}

	forest := flat
	if hier, err := c.client.GetDomainHierarchy(ctx, domainID); err == nil && len(hier) > 0 {
		forest = hier
	}

	c.commit(gen, dom, forest)
	c.saveSnapshot(ctx, dom, forest)
	return dom, forest, nil
}

func (c *Controller) beginLoad(domainID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.domainID = domainID
	c.loading = true
	c.loadGen++
	return c.loadGen
}

// commit installs a load result unless a newer load has been issued since,
// in which case the stale result is discarded.
func (c *Controller) commit(gen uint64, dom *domain.Domain, forest []*domain.SubDomain) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.loadGen {
		return
	}
	c.domain = dom
	c.forest = forest
	c.expansion.Seed(tree.CollectIDs(forest))
	c.loading = false
}

// resolveDomain looks the domain up in the server's domain list. Both a
// failed list call and an absent entry degrade to a placeholder; neither is
// a user-visible error.
func (c *Controller) resolveDomain(ctx context.Context, domainID string) *domain.Domain {
	domains, err := c.client.ListDomains(ctx)
	if err == nil {
		for _, d := range domains {
			if d.ID == domainID {
				return d
			}
		}
	}
	return domain.PlaceholderDomain(domainID)
}

func (c *Controller) saveSnapshot(ctx context.Context, dom *domain.Domain, forest []*domain.SubDomain) {
	if c.snapshots == nil {
		return
	}
	// Best effort: a cache write failure must not fail the load.
	_ = c.snapshots.Save(ctx, &repository.ForestSnapshot{
		DomainID:    dom.ID,
		DomainTitle: dom.Title,
		Forest:      forest,
		FetchedAt:   time.Now().UTC(),
	})
}

// LoadCached returns the locally cached snapshot for a domain, or nil when
// the cache is disabled or empty. Never consulted by live loads.
func (c *Controller) LoadCached(ctx context.Context, domainID string) (*repository.ForestSnapshot, error) {
	if c.snapshots == nil {
		return nil, nil
	}
	return c.snapshots.Get(ctx, domainID)
}

// AddNode creates a sub-domain under parentID, or at the root when parentID
// is nil, then refetches the whole forest.
func (c *Controller) AddNode(ctx context.Context, parentID *string, title, description string) (*domain.SubDomain, error) {
	if err := validateNodeInput(title, description); err != nil {
		c.notifier.Error(api.UserMessage(err))
		return nil, err
	}

	created, err := c.client.CreateSubDomain(ctx, api.CreateSubDomainRequest{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		DomainID:    c.currentDomainID(),
		ParentID:    parentID,
	})
	if err != nil {
		c.notifier.Error(api.UserMessage(err))
		return nil, err
	}

	c.refetch(ctx)
	c.notifier.Success("Sub-domain created")
	return created, nil
}

// EditNode updates an existing sub-domain's title and description. The
// parent is never resent: nodes cannot be reparented through this operation.
func (c *Controller) EditNode(ctx context.Context, nodeID, title, description string) (*domain.SubDomain, error) {
	if err := validateNodeInput(title, description); err != nil {
		c.notifier.Error(api.UserMessage(err))
		return nil, err
	}

	updated, err := c.client.UpdateSubDomain(ctx, nodeID, api.UpdateSubDomainRequest{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		DomainID:    c.currentDomainID(),
	})
	if err != nil {
		c.notifier.Error(api.UserMessage(err))
		return nil, err
	}

	c.refetch(ctx)
	c.notifier.Success("Sub-domain updated")
	return updated, nil
}

// DeleteNode removes a sub-domain. The server cascades to nested sub-domains
// and assigned projects, so callers must have shown DeletePrompt and
// received an explicit confirmation before calling. There is no local
// precondition; on failure the forest is left exactly as it was.
func (c *Controller) DeleteNode(ctx context.Context, node *domain.SubDomain) error {
	if err := c.client.DeleteSubDomain(ctx, node.ID); err != nil {
		c.notifier.Error(api.UserMessage(err))
		return err
	}

	c.refetch(ctx)
	c.notifier.Success(fmt.Sprintf("Deleted %q", node.Title))
	return nil
}

// AddProject attaches a project to a leaf sub-domain. Non-leaf nodes are
// rejected locally, before any network call.
func (c *Controller) AddProject(ctx context.Context, node *domain.SubDomain, fields ProjectFields) (*domain.Project, error) {
	if !node.IsLeaf() {
		err := api.NewError(api.KindPrecondition, "Projects can only be added to leaf sub-domains")
		c.notifier.Error(err.Message)
		return nil, err
	}
	if err := domain.ValidateTitle(fields.Title); err != nil {
		apiErr := api.WrapError(api.KindValidationFailed, err, "invalid project title")
		c.notifier.Error(api.UserMessage(apiErr))
		return nil, apiErr
	}

	created, err := c.client.CreateProject(ctx, api.CreateProjectRequest{
		Title:            strings.TrimSpace(fields.Title),
		Abstract:         fields.Abstract,
		Specifications:   fields.Specifications,
		LearningOutcomes: fields.LearningOutcomes,
		SubDomainID:      node.ID,
		IsFeatured:       fields.IsFeatured,
	})
	if err != nil {
		c.notifier.Error(api.UserMessage(err))
		return nil, err
	}

	// Refetch so the leaf's project count reflects the new project.
	c.refetch(ctx)
	c.notifier.Success("Project created")
	return created, nil
}

// ListProjects returns all projects of a leaf sub-domain. The cached
// ProjectCount is advisory only: even a reported zero still fetches, because
// counts have been observed to disagree with reality.
func (c *Controller) ListProjects(ctx context.Context, node *domain.SubDomain) ([]*domain.Project, error) {
	if !node.IsLeaf() {
		err := api.NewError(api.KindPrecondition, "Projects can only be viewed on leaf sub-domains")
		c.notifier.Error(err.Message)
		return nil, err
	}

	projects, err := c.client.ListProjects(ctx, node.ID, projectPageLimit)
	if err != nil {
		c.notifier.Error(api.UserMessage(err))
		return nil, err
	}
	return projects, nil
}

// EditProject applies partial updates to a project.
func (c *Controller) EditProject(ctx context.Context, project *domain.Project, req api.UpdateProjectRequest) (*domain.Project, error) {
	updated, err := c.client.UpdateProject(ctx, project.ID, req)
	if err != nil {
		c.notifier.Error(api.UserMessage(err))
		return nil, err
	}
	c.notifier.Success("Project updated")
	return updated, nil
}

// DeleteProject removes a project and refetches the forest, since the
// owning leaf's project count changes.
func (c *Controller) DeleteProject(ctx context.Context, project *domain.Project) error {
	if err := c.client.DeleteProject(ctx, project.ID); err != nil {
		c.notifier.Error(api.UserMessage(err))
		return err
	}

	c.refetch(ctx)
	c.notifier.Success(fmt.Sprintf("Deleted project %q", project.Title))
	return nil
}

// ToggleFeatured flips the featured flag by sending the explicit target
// value.
func (c *Controller) ToggleFeatured(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	target := !project.IsFeatured
	updated, err := c.client.UpdateProject(ctx, project.ID, api.UpdateProjectRequest{IsFeatured: &target})
	if err != nil {
		c.notifier.Error(api.UserMessage(err))
		return nil, err
	}
	if target {
		c.notifier.Success("Project featured")
	} else {
		c.notifier.Success("Project unfeatured")
	}
	return updated, nil
}

// ToggleArchived archives an active project or restores an archived one.
// The request carries the explicit intent (archive = the project's current
// IsActive), never a blind "flip", so the caller always knows which state it
// asked for. Refetches the forest because archiving changes the leaf's
// project count.
func (c *Controller) ToggleArchived(ctx context.Context, project *domain.Project, reason string) error {
	archive := project.IsActive
	if err := c.client.ArchiveProject(ctx, project.ID, archive, reason); err != nil {
		c.notifier.Error(api.UserMessage(err))
		return err
	}

	c.refetch(ctx)
	if archive {
		c.notifier.Success(fmt.Sprintf("Archived %q", project.Title))
	} else {
		c.notifier.Success(fmt.Sprintf("Restored %q", project.Title))
	}
	return nil
}

// refetch reloads the current domain after a successful mutation. A failed
// refetch surfaces through LoadForest's own notification; the mutation
// itself already succeeded server-side.
func (c *Controller) refetch(ctx context.Context) {
	if id := c.currentDomainID(); id != "" {
		_, _, _ = c.LoadForest(ctx, id)
	}
}

func (c *Controller) currentDomainID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.domainID
}

func validateNodeInput(title, description string) error {
	if err := domain.ValidateTitle(title); err != nil {
		return api.WrapError(api.KindValidationFailed, err, "invalid title")
	}
	if err := domain.ValidateDescription(description); err != nil {
		return api.WrapError(api.KindValidationFailed, err, "invalid description")
	}
	return nil
}

// DeletePrompt builds the confirmation question for deleting a node. The
// text must name the cascading consequences when they apply; deletion must
// never proceed without an explicit affirmative answer to it.
func DeletePrompt(node *domain.SubDomain) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Are you sure you want to delete %q?", node.Title)
	if !node.IsLeaf() {
		b.WriteString(" This will also delete its nested sub-domains.")
	}
	if node.ProjectCount > 0 {
		fmt.Fprintf(&b, " %d project(s) are still assigned and will be deleted.", node.ProjectCount)
	}
	b.WriteString(" This cannot be undone.")
	return b.String()
}
