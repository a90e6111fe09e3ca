package api

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/mwesthall/catalogctl/internal/domain"
)

// The backend is inconsistent about envelopes: a list payload may sit at the
// top level or be nested one level under a generic "data" key. Every decoder
// here probes the shallow shape first, then the nested one, and falls back to
// an empty sequence so the rest of the system only ever sees a normalized
// shape.

// flexID accepts both JSON strings and integers, since node ids are opaque
// and the backend has served both over time.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type domainDTO struct {
	ID           flexID `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ProjectCount int    `json:"projectCount"`
}

type subDomainDTO struct {
	ID           flexID         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	ProjectCount int            `json:"projectCount"`
	ParentID     *flexID        `json:"parentId"`
	Children     []subDomainDTO `json:"children"`
}

type projectDTO struct {
	ID               flexID `json:"id"`
	Title            string `json:"title"`
	Abstract         string `json:"abstract"`
	Specifications   string `json:"specifications"`
	LearningOutcomes string `json:"learningOutcomes"`
	IsFeatured       bool   `json:"isFeatured"`
	IsActive         bool   `json:"isActive"`
	ViewCount        int    `json:"viewCount"`
	SubDomainID      flexID `json:"subDomainId"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

type domainListEnvelope struct {
	Domains []domainDTO `json:"domains"`
	Data    *struct {
		Domains []domainDTO `json:"domains"`
	} `json:"data"`
}

type subDomainListEnvelope struct {
	SubDomains []subDomainDTO `json:"subDomains"`
	Data       *struct {
		SubDomains []subDomainDTO `json:"subDomains"`
	} `json:"data"`
}

type projectListEnvelope struct {
	Projects []projectDTO `json:"projects"`
	Data     *struct {
		Projects []projectDTO `json:"projects"`
	} `json:"data"`
}

// errorEnvelope probes the common spots a backend error message hides in.
type errorEnvelope struct {
	Message string `json:"message"`
	ErrMsg  string `json:"error"`
	Data    *struct {
		Message string `json:"message"`
	} `json:"data"`
}

func (e errorEnvelope) message() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.ErrMsg != "":
		return e.ErrMsg
	case e.Data != nil:
		return e.Data.Message
	}
	return ""
}

func decodeDomainList(body []byte) ([]*domain.Domain, error) {
	var env domainListEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	dtos := env.Domains
	if len(dtos) == 0 && env.Data != nil {
		dtos = env.Data.Domains
	}
	out := make([]*domain.Domain, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, &domain.Domain{
			ID:           string(d.ID),
			Title:        d.Title,
			Description:  d.Description,
			ProjectCount: d.ProjectCount,
		})
	}
	return out, nil
}

func decodeSubDomainList(body []byte) ([]*domain.SubDomain, error) {
	var env subDomainListEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	dtos := env.SubDomains
	if len(dtos) == 0 && env.Data != nil {
		dtos = env.Data.SubDomains
	}
	return toSubDomains(dtos), nil
}

func decodeProjectList(body []byte) ([]*domain.Project, error) {
	var env projectListEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	dtos := env.Projects
	if len(dtos) == 0 && env.Data != nil {
		dtos = env.Data.Projects
	}
	out := make([]*domain.Project, 0, len(dtos))
	for _, p := range dtos {
		out = append(out, toProject(p))
	}
	return out, nil
}

func toSubDomains(dtos []subDomainDTO) []*domain.SubDomain {
	out := make([]*domain.SubDomain, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, toSubDomain(d))
	}
	return out
}

func toSubDomain(d subDomainDTO) *domain.SubDomain {
	n := &domain.SubDomain{
		ID:           string(d.ID),
		Title:        d.Title,
		Description:  d.Description,
		ProjectCount: d.ProjectCount,
		Children:     toSubDomains(d.Children),
	}
	if d.ParentID != nil {
		pid := string(*d.ParentID)
		n.ParentID = &pid
	}
	return n
}

func toProject(p projectDTO) *domain.Project {
	return &domain.Project{
		ID:               string(p.ID),
		Title:            p.Title,
		Abstract:         p.Abstract,
		Specifications:   p.Specifications,
		LearningOutcomes: p.LearningOutcomes,
		IsFeatured:       p.IsFeatured,
		IsActive:         p.IsActive,
		ViewCount:        p.ViewCount,
		SubDomainID:      string(p.SubDomainID),
		CreatedAt:        parseTimestamp(p.CreatedAt),
		UpdatedAt:        parseTimestamp(p.UpdatedAt),
	}
}

// parseTimestamp tolerates missing or malformed times; display code treats
// the zero value as "unknown".
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	// Some endpoints serve epoch milliseconds.
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC()
	}
	return time.Time{}
}
