// Package api implements the REST client for the catalog backend. All
// response-shape quirks are normalized here so the controller and CLI only
// ever see domain types.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/mwesthall/catalogctl/internal/domain"
)

// CreateSubDomainRequest is the payload for creating a sub-domain. A nil
// ParentID creates a root-level node under the domain.
type CreateSubDomainRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DomainID    string  `json:"domainId"`
	ParentID    *string `json:"parentId,omitempty"`
}

// UpdateSubDomainRequest is the payload for updating a sub-domain. ParentID
// is never sent: nodes cannot be reparented through this operation.
type UpdateSubDomainRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DomainID    string `json:"domainId"`
}

// CreateProjectRequest is the payload for creating a project on a leaf
// sub-domain. There is no slug field: the server derives it from the title.
type CreateProjectRequest struct {
	Title            string `json:"title"`
	Abstract         string `json:"abstract"`
	Specifications   string `json:"specifications"`
	LearningOutcomes string `json:"learningOutcomes"`
	SubDomainID      string `json:"subDomainId"`
	IsFeatured       bool   `json:"isFeatured"`
}

// UpdateProjectRequest carries partial project updates; nil fields are
// omitted from the request body.
type UpdateProjectRequest struct {
	Title            *string `json:"title,omitempty"`
	Abstract         *string `json:"abstract,omitempty"`
	Specifications   *string `json:"specifications,omitempty"`
	LearningOutcomes *string `json:"learningOutcomes,omitempty"`
	IsFeatured       *bool   `json:"isFeatured,omitempty"`
}

type archiveRequest struct {
	Archive bool   `json:"archive"`
	Reason  string `json:"reason"`
}

// Client is the RPC-style collaborator the controller depends on. Tests
// substitute a spy implementation; production uses the HTTP client below.
type Client interface {
	ListDomains(ctx context.Context) ([]*domain.Domain, error)
	GetDomainHierarchy(ctx context.Context, domainID string) ([]*domain.SubDomain, error)
	ListSubDomains(ctx context.Context, domainID string) ([]*domain.SubDomain, error)
	CreateSubDomain(ctx context.Context, req CreateSubDomainRequest) (*domain.SubDomain, error)
	UpdateSubDomain(ctx context.Context, id string, req UpdateSubDomainRequest) (*domain.SubDomain, error)
	DeleteSubDomain(ctx context.Context, id string) error
	ListProjects(ctx context.Context, subDomainID string, limit int) ([]*domain.Project, error)
	CreateProject(ctx context.Context, req CreateProjectRequest) (*domain.Project, error)
	UpdateProject(ctx context.Context, id string, req UpdateProjectRequest) (*domain.Project, error)
	DeleteProject(ctx context.Context, id string) error
	ArchiveProject(ctx context.Context, id string, archive bool, reason string) error
}

type httpClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewHTTPClient creates a Client against the given base URL. The token is
// optional; when set it is sent as a bearer token on every request.
func NewHTTPClient(baseURL, token string, timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &httpClient{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *httpClient) ListDomains(ctx context.Context) ([]*domain.Domain, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/domains", nil)
	if err != nil {
		return nil, err
	}
	domains, err := decodeDomainList(body)
	if err != nil {
		return nil, WrapError(KindServerError, err, "decoding domain list")
	}
	return domains, nil
}

func (c *httpClient) GetDomainHierarchy(ctx context.Context, domainID string) ([]*domain.SubDomain, error) {
	path := "/api/v1/domains/" + url.PathEscape(domainID) + "/hierarchy"
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	forest, err := decodeSubDomainList(body)
	if err != nil {
		return nil, WrapError(KindServerError, err, "decoding domain hierarchy")
	}
	return forest, nil
}

func (c *httpClient) ListSubDomains(ctx context.Context, domainID string) ([]*domain.SubDomain, error) {
	path := "/api/v1/subdomains?domainId=" + url.QueryEscape(domainID)
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	forest, err := decodeSubDomainList(body)
	if err != nil {
		return nil, WrapError(KindServerError, err, "decoding sub-domain list")
	}
	return forest, nil
}

func (c *httpClient) CreateSubDomain(ctx context.Context, req CreateSubDomainRequest) (*domain.SubDomain, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/v1/subdomains", req)
	if err != nil {
		return nil, err
	}
	return decodeSubDomainOrNil(body), nil
}

func (c *httpClient) UpdateSubDomain(ctx context.Context, id string, req UpdateSubDomainRequest) (*domain.SubDomain, error) {
	body, err := c.do(ctx, http.MethodPut, "/api/v1/subdomains/"+url.PathEscape(id), req)
	if err != nil {
		return nil, err
	}
	return decodeSubDomainOrNil(body), nil
}

func (c *httpClient) DeleteSubDomain(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/v1/subdomains/"+url.PathEscape(id), nil)
	return err
}

func (c *httpClient) ListProjects(ctx context.Context, subDomainID string, limit int) ([]*domain.Project, error) {
	path := "/api/v1/projects?subDomainId=" + url.QueryEscape(subDomainID) + "&limit=" + strconv.Itoa(limit)
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	projects, err := decodeProjectList(body)
	if err != nil {
		return nil, WrapError(KindServerError, err, "decoding project list")
	}
	return projects, nil
}

func (c *httpClient) CreateProject(ctx context.Context, req CreateProjectRequest) (*domain.Project, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/v1/projects", req)
	if err != nil {
		return nil, err
	}
	return decodeProjectOrNil(body), nil
}

func (c *httpClient) UpdateProject(ctx context.Context, id string, req UpdateProjectRequest) (*domain.Project, error) {
	body, err := c.do(ctx, http.MethodPut, "/api/v1/projects/"+url.PathEscape(id), req)
	if err != nil {
		return nil, err
	}
	return decodeProjectOrNil(body), nil
}

func (c *httpClient) DeleteProject(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/v1/projects/"+url.PathEscape(id), nil)
	return err
}

func (c *httpClient) ArchiveProject(ctx context.Context, id string, archive bool, reason string) error {
	path := "/api/v1/projects/" + url.PathEscape(id) + "/archive"
	_, err := c.do(ctx, http.MethodPost, path, archiveRequest{Archive: archive, Reason: reason})
	return err
}

// do executes one request and returns the raw response body for a 2xx
// status. Non-2xx statuses are mapped onto the error taxonomy with the
// server's own message surfaced when it provides one.
func (c *httpClient) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, WrapError(KindTransport, err, "marshaling request")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, WrapError(KindTransport, err, "creating request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, WrapError(KindTransport, err, "calling %s %s", method, path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, WrapError(KindTransport, err, "reading response")
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	msg := serverMessage(body)
	switch {
	case resp.StatusCode == http.StatusNotFound:
		if msg == "" {
			msg = fmt.Sprintf("%s %s: not found", method, path)
		}
		return nil, NewError(KindNotFound, "%s", msg)
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		if msg == "" {
			msg = "the server rejected the request"
		}
		return nil, NewError(KindValidationFailed, "%s", msg)
	default:
		if msg == "" {
			msg = fmt.Sprintf("server returned status %d", resp.StatusCode)
		}
		return nil, NewError(KindServerError, "%s", msg)
	}
}

func serverMessage(body []byte) string {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	return env.message()
}

// decodeSubDomainOrNil decodes a single created/updated node, probing the
// nested envelope shape. The controller refetches the whole forest after
// every write, so a nil here only degrades the confirmation message.
func decodeSubDomainOrNil(body []byte) *domain.SubDomain {
	var env struct {
		subDomainDTO
		Data *subDomainDTO `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil
	}
	dto := env.subDomainDTO
	if dto.ID == "" && env.Data != nil {
		dto = *env.Data
	}
	if dto.ID == "" {
		return nil
	}
	return toSubDomain(dto)
}

func decodeProjectOrNil(body []byte) *domain.Project {
	var env struct {
		projectDTO
		Data *projectDTO `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil
	}
	dto := env.projectDTO
	if dto.ID == "" && env.Data != nil {
		dto = *env.Data
	}
	if dto.ID == "" {
		return nil
	}
	return toProject(dto)
}
