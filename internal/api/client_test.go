package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, "test-token", 5*time.Second)
}

func TestHTTPClient_ListSubDomains(t *testing.T) {
	var gotPath, gotAuth, gotReqID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"subDomains":[{"id":"a","title":"ML"}]}`))
	})

	forest, err := client.ListSubDomains(context.Background(), "5")
	require.NoError(t, err)
	require.Len(t, forest, 1)
	assert.Equal(t, "a", forest[0].ID)
	assert.Equal(t, "/api/v1/subdomains?domainId=5", gotPath)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.NotEmpty(t, gotReqID, "every request carries a correlation id")
}

func TestHTTPClient_CreateProject_OmitsSlug(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"id":"p1","title":"Proj1","isActive":true}`))
	})

	p, err := client.CreateProject(context.Background(), CreateProjectRequest{
		Title:       "Proj1",
		Abstract:    "short",
		SubDomainID: "a",
	})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "p1", p.ID)

	_, hasSlug := gotBody["slug"]
	assert.False(t, hasSlug, "slug is derived server-side and must never be sent")
	assert.Equal(t, "a", gotBody["subDomainId"])
}

func TestHTTPClient_ArchiveProject_SendsExplicitIntent(t *testing.T) {
	var gotBody archiveRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	})

	err := client.ArchiveProject(context.Background(), "p1", true, "stale content")
	require.NoError(t, err)
	assert.True(t, gotBody.Archive)
	assert.Equal(t, "stale content", gotBody.Reason)
}

func TestHTTPClient_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		kind   Kind
		msg    string
	}{
		{"not found", http.StatusNotFound, `{"message":"no such domain"}`, KindNotFound, "no such domain"},
		{"validation", http.StatusUnprocessableEntity, `{"message":"title too short"}`, KindValidationFailed, "title too short"},
		{"bad request", http.StatusBadRequest, `{"error":"missing domainId"}`, KindValidationFailed, "missing domainId"},
		{"server error", http.StatusInternalServerError, `oops`, KindServerError, "server returned status 500"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})

			_, err := client.ListDomains(context.Background())
			require.Error(t, err)
			assert.True(t, IsKind(err, tc.kind), "expected %s, got %s", tc.kind, KindOf(err))
			assert.Equal(t, tc.msg, UserMessage(err), "server message surfaced verbatim")
		})
	}
}

func TestHTTPClient_TransportError(t *testing.T) {
	// Point at a closed server to force a connection failure.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	client := NewHTTPClient(srv.URL, "", time.Second)

	_, err := client.ListDomains(context.Background())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTransport))
}

func TestHTTPClient_DeleteSubDomain(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteSubDomain(context.Background(), "a"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/v1/subdomains/a", gotPath)
}
