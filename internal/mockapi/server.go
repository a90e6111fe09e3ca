// Package mockapi implements an in-memory stub of the catalog backend for
// demos and manual testing. It speaks the same REST contract as production,
// including the awkward parts: list payloads are nested under a "data"
// envelope, ids are plain strings, and cascade deletion happens server-side.
package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type subDomainRecord struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DomainID    string  `json:"-"`
	ParentID    *string `json:"parentId"`
}

type projectRecord struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	Abstract         string    `json:"abstract"`
	Specifications   string    `json:"specifications"`
	LearningOutcomes string    `json:"learningOutcomes"`
	IsFeatured       bool      `json:"isFeatured"`
	IsActive         bool      `json:"isActive"`
	ViewCount        int       `json:"viewCount"`
	SubDomainID      string    `json:"subDomainId"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type domainRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Server holds the in-memory catalog and its router.
type Server struct {
	mu         sync.Mutex
	domains    []*domainRecord
	subDomains []*subDomainRecord
	projects   []*projectRecord
	router     chi.Router
}

// New creates a Server pre-seeded with a small demo catalog.
func New() *Server {
	s := &Server{}
	s.seed()
	s.router = s.setupRouter()
	return s
}

// Handler returns the HTTP handler for the stub API.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/domains", s.handleListDomains)
		r.Get("/domains/{domainID}/hierarchy", s.handleHierarchy)
		r.Get("/subdomains", s.handleListSubDomains)
		r.Post("/subdomains", s.handleCreateSubDomain)
		r.Put("/subdomains/{id}", s.handleUpdateSubDomain)
		r.Delete("/subdomains/{id}", s.handleDeleteSubDomain)
		r.Get("/projects", s.handleListProjects)
		r.Post("/projects", s.handleCreateProject)
		r.Put("/projects/{id}", s.handleUpdateProject)
		r.Delete("/projects/{id}", s.handleDeleteProject)
		r.Post("/projects/{id}/archive", s.handleArchiveProject)
	})

	return r
}

func (s *Server) seed() {
	s.domains = []*domainRecord{
		{ID: "1", Title: "Computer Science", Description: "Software, systems and theory"},
		{ID: "2", Title: "Electrical Engineering", Description: "Circuits and signals"},
	}

	ai := &subDomainRecord{ID: "sd-ai", Title: "Artificial Intelligence", DomainID: "1"}
	aiID := ai.ID
	ml := &subDomainRecord{ID: "sd-ml", Title: "Machine Learning", DomainID: "1", ParentID: &aiID}
	nlp := &subDomainRecord{ID: "sd-nlp", Title: "Natural Language Processing", DomainID: "1", ParentID: &aiID}
	dbs := &subDomainRecord{ID: "sd-db", Title: "Databases", DomainID: "1"}
	s.subDomains = []*subDomainRecord{ai, ml, nlp, dbs}

	now := time.Now().UTC()
	s.projects = []*projectRecord{
		{
			ID: "pr-1", Title: "Spam Classifier", Slug: "spam-classifier",
			Abstract: "Naive Bayes spam filter", IsActive: true,
			SubDomainID: "sd-ml", CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "pr-2", Title: "Query Planner Visualizer", Slug: "query-planner-visualizer",
			Abstract: "Walk through join orders", IsActive: true, IsFeatured: true,
			SubDomainID: "sd-db", CreatedAt: now, UpdatedAt: now,
		},
	}
}

// ── responses ────────────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeData wraps a payload under the "data" envelope the real backend is
// fond of, so clients keep exercising their nested decode path.
func writeData(w http.ResponseWriter, payload any) {
	writeJSON(w, http.StatusOK, map[string]any{"data": payload})
}

func writeError(w http.ResponseWriter, status int, format string, args ...any) {
	writeJSON(w, status, map[string]string{"message": fmt.Sprintf(format, args...)})
}

// ── tree assembly ────────────────────────────────────────────────────────────

type subDomainNode struct {
	subDomainRecord
	ProjectCount int              `json:"projectCount"`
	Children     []*subDomainNode `json:"children"`
}

// buildForest nests the flat records into a forest for one domain,
// preserving insertion order at every level.
func (s *Server) buildForest(domainID string) []*subDomainNode {
	nodes := make(map[string]*subDomainNode)
	var order []*subDomainNode
	for _, rec := range s.subDomains {
		if rec.DomainID != domainID {
			continue
		}
		n := &subDomainNode{subDomainRecord: *rec, Children: []*subDomainNode{}}
		n.ProjectCount = s.projectCount(rec.ID)
		nodes[rec.ID] = n
		order = append(order, n)
	}

	var roots []*subDomainNode
	for _, n := range order {
		if n.ParentID != nil {
			if parent, ok := nodes[*n.ParentID]; ok {
				parent.Children = append(parent.Children, n)
				continue
			}
		}
		roots = append(roots, n)
	}
	return roots
}

func (s *Server) projectCount(subDomainID string) int {
	n := 0
	for _, p := range s.projects {
		if p.SubDomainID == subDomainID && p.IsActive {
			n++
		}
	}
	return n
}

func (s *Server) findSubDomain(id string) *subDomainRecord {
	for _, rec := range s.subDomains {
		if rec.ID == id {
			return rec
		}
	}
	return nil
}

func (s *Server) findProject(id string) *projectRecord {
	for _, p := range s.projects {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ── handlers ─────────────────────────────────────────────────────────────────

func (s *Server) handleListDomains(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	type domainOut struct {
		domainRecord
		ProjectCount int `json:"projectCount"`
	}
	out := make([]domainOut, 0, len(s.domains))
	for _, d := range s.domains {
		count := 0
		for _, sd := range s.subDomains {
			if sd.DomainID == d.ID {
				count += s.projectCount(sd.ID)
			}
		}
		out = append(out, domainOut{domainRecord: *d, ProjectCount: count})
	}
	writeData(w, map[string]any{"domains": out})
}

func (s *Server) handleHierarchy(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	domainID := chi.URLParam(r, "domainID")
	var title string
	for _, d := range s.domains {
		if d.ID == domainID {
			title = d.Title
		}
	}
	if title == "" {
		writeError(w, http.StatusNotFound, "domain %s not found", domainID)
		return
	}
	forest := s.buildForest(domainID)
	if forest == nil {
		forest = []*subDomainNode{}
	}
	writeData(w, map[string]any{"title": title, "subDomains": forest})
}

func (s *Server) handleListSubDomains(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	domainID := r.URL.Query().Get("domainId")
	if domainID == "" {
		writeError(w, http.StatusBadRequest, "domainId query parameter is required")
		return
	}
	// The flat endpoint still nests children; production serves the same
	// structure from both endpoints when it is healthy.
	forest := s.buildForest(domainID)
	if forest == nil {
		forest = []*subDomainNode{}
	}
	writeData(w, map[string]any{"subDomains": forest})
}

type subDomainInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DomainID    string  `json:"domainId"`
	ParentID    *string `json:"parentId"`
}

func validateTitle(title string) string {
	t := strings.TrimSpace(title)
	if len(t) < 3 || len(t) > 100 {
		return "title must be between 3 and 100 characters"
	}
	return ""
}

func (s *Server) handleCreateSubDomain(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var in subDomainInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := validateTitle(in.Title); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, "%s", msg)
		return
	}
	if len(in.Description) > 500 {
		writeError(w, http.StatusUnprocessableEntity, "description must be at most 500 characters")
		return
	}
	if in.ParentID != nil && s.findSubDomain(*in.ParentID) == nil {
		writeError(w, http.StatusNotFound, "parent sub-domain %s not found", *in.ParentID)
		return
	}

	rec := &subDomainRecord{
		ID:          "sd-" + uuid.New().String()[:8],
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		DomainID:    in.DomainID,
		ParentID:    in.ParentID,
	}
	s.subDomains = append(s.subDomains, rec)
	writeData(w, rec)
}

func (s *Server) handleUpdateSubDomain(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.findSubDomain(chi.URLParam(r, "id"))
	if rec == nil {
		writeError(w, http.StatusNotFound, "sub-domain not found")
		return
	}
	var in subDomainInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := validateTitle(in.Title); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, "%s", msg)
		return
	}
	rec.Title = strings.TrimSpace(in.Title)
	rec.Description = in.Description
	writeData(w, rec)
}

func (s *Server) handleDeleteSubDomain(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	if s.findSubDomain(id) == nil {
		writeError(w, http.StatusNotFound, "sub-domain not found")
		return
	}

	// Cascade: collect the node and all descendants, then drop their projects.
	doomed := map[string]bool{id: true}
	for changed := true; changed; {
		changed = false
		for _, rec := range s.subDomains {
			if rec.ParentID != nil && doomed[*rec.ParentID] && !doomed[rec.ID] {
				doomed[rec.ID] = true
				changed = true
			}
		}
	}

	var keptSubs []*subDomainRecord
	for _, rec := range s.subDomains {
		if !doomed[rec.ID] {
			keptSubs = append(keptSubs, rec)
		}
	}
	s.subDomains = keptSubs

	var keptProjects []*projectRecord
	for _, p := range s.projects {
		if !doomed[p.SubDomainID] {
			keptProjects = append(keptProjects, p)
		}
	}
	s.projects = keptProjects

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subDomainID := r.URL.Query().Get("subDomainId")
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	out := []*projectRecord{}
	for _, p := range s.projects {
		if p.SubDomainID == subDomainID {
			out = append(out, p)
		}
		if len(out) >= limit {
			break
		}
	}
	writeData(w, map[string]any{"projects": out})
}

type projectInput struct {
	Title            *string `json:"title"`
	Abstract         *string `json:"abstract"`
	Specifications   *string `json:"specifications"`
	LearningOutcomes *string `json:"learningOutcomes"`
	SubDomainID      *string `json:"subDomainId"`
	IsFeatured       *bool   `json:"isFeatured"`
}

// slugify derives the url slug from a title, as the real backend does.
// Clients never send slugs.
func slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var in projectInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.Title == nil || validateTitle(*in.Title) != "" {
		writeError(w, http.StatusUnprocessableEntity, "title must be between 3 and 100 characters")
		return
	}
	if in.SubDomainID == nil {
		writeError(w, http.StatusBadRequest, "subDomainId is required")
		return
	}
	target := s.findSubDomain(*in.SubDomainID)
	if target == nil {
		writeError(w, http.StatusNotFound, "sub-domain %s not found", *in.SubDomainID)
		return
	}
	for _, rec := range s.subDomains {
		if rec.ParentID != nil && *rec.ParentID == target.ID {
			writeError(w, http.StatusUnprocessableEntity, "projects can only be attached to leaf sub-domains")
			return
		}
	}

	now := time.Now().UTC()
	p := &projectRecord{
		ID:          "pr-" + uuid.New().String()[:8],
		Title:       strings.TrimSpace(*in.Title),
		Slug:        slugify(*in.Title),
		IsActive:    true,
		SubDomainID: *in.SubDomainID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Abstract != nil {
		p.Abstract = *in.Abstract
	}
	if in.Specifications != nil {
		p.Specifications = *in.Specifications
	}
	if in.LearningOutcomes != nil {
		p.LearningOutcomes = *in.LearningOutcomes
	}
	if in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
	}
	s.projects = append(s.projects, p)
	writeData(w, p)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findProject(chi.URLParam(r, "id"))
	if p == nil {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	var in projectInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.Title != nil {
		if msg := validateTitle(*in.Title); msg != "" {
			writeError(w, http.StatusUnprocessableEntity, "%s", msg)
			return
		}
		p.Title = strings.TrimSpace(*in.Title)
		p.Slug = slugify(p.Title)
	}
	if in.Abstract != nil {
		p.Abstract = *in.Abstract
	}
	if in.Specifications != nil {
		p.Specifications = *in.Specifications
	}
	if in.LearningOutcomes != nil {
		p.LearningOutcomes = *in.LearningOutcomes
	}
	if in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
	}
	p.UpdatedAt = time.Now().UTC()
	writeData(w, p)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	for i, p := range s.projects {
		if p.ID == id {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "project not found")
}

type archiveInput struct {
	Archive bool   `json:"archive"`
	Reason  string `json:"reason"`
}

func (s *Server) handleArchiveProject(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findProject(chi.URLParam(r, "id"))
	if p == nil {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	var in archiveInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	// archive=true means "take it out of service": IsActive becomes false.
	p.IsActive = !in.Archive
	p.UpdatedAt = time.Now().UTC()
	w.WriteHeader(http.StatusOK)
}
