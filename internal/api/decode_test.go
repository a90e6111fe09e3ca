package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSubDomainList_ShallowShape(t *testing.T) {
	body := []byte(`{"subDomains":[{"id":"a","title":"ML","children":[{"id":"b","title":"Deep","parentId":"a"}]}]}`)

	forest, err := decodeSubDomainList(body)
	require.NoError(t, err)
	require.Len(t, forest, 1)
	assert.Equal(t, "a", forest[0].ID)
	require.Len(t, forest[0].Children, 1)
	assert.Equal(t, "b", forest[0].Children[0].ID)
	require.NotNil(t, forest[0].Children[0].ParentID)
	assert.Equal(t, "a", *forest[0].Children[0].ParentID)
}

func TestDecodeSubDomainList_NestedUnderData(t *testing.T) {
	body := []byte(`{"data":{"subDomains":[{"id":"x","title":"Networks"}]}}`)

	forest, err := decodeSubDomainList(body)
	require.NoError(t, err)
	require.Len(t, forest, 1)
	assert.Equal(t, "x", forest[0].ID)
}

func TestDecodeSubDomainList_NeitherShape(t *testing.T) {
	forest, err := decodeSubDomainList([]byte(`{"something":"else"}`))
	require.NoError(t, err)
	assert.Empty(t, forest, "unknown shapes normalize to an empty forest")
}

func TestDecodeSubDomainList_IntegerIDs(t *testing.T) {
	body := []byte(`{"subDomains":[{"id":17,"title":"Sys","parentId":4}]}`)

	forest, err := decodeSubDomainList(body)
	require.NoError(t, err)
	require.Len(t, forest, 1)
	assert.Equal(t, "17", forest[0].ID)
	require.NotNil(t, forest[0].ParentID)
	assert.Equal(t, "4", *forest[0].ParentID)
}

func TestDecodeDomainList_BothShapes(t *testing.T) {
	shallow, err := decodeDomainList([]byte(`{"domains":[{"id":"1","title":"CS","projectCount":7}]}`))
	require.NoError(t, err)
	require.Len(t, shallow, 1)
	assert.Equal(t, 7, shallow[0].ProjectCount)

	nested, err := decodeDomainList([]byte(`{"data":{"domains":[{"id":"2","title":"EE"}]}}`))
	require.NoError(t, err)
	require.Len(t, nested, 1)
	assert.Equal(t, "EE", nested[0].Title)
}

func TestDecodeProjectList_Timestamps(t *testing.T) {
	body := []byte(`{"projects":[{"id":"p1","title":"Classifier","isActive":true,"createdAt":"2026-03-01T10:00:00Z","updatedAt":""}]}`)

	projects, err := decodeProjectList(body)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), projects[0].CreatedAt)
	assert.True(t, projects[0].UpdatedAt.IsZero())
}

func TestDecodeSubDomainOrNil(t *testing.T) {
	n := decodeSubDomainOrNil([]byte(`{"id":"s1","title":"Fresh"}`))
	require.NotNil(t, n)
	assert.Equal(t, "s1", n.ID)

	n = decodeSubDomainOrNil([]byte(`{"data":{"id":"s2","title":"Nested"}}`))
	require.NotNil(t, n)
	assert.Equal(t, "s2", n.ID)

	assert.Nil(t, decodeSubDomainOrNil([]byte(`{}`)))
	assert.Nil(t, decodeSubDomainOrNil([]byte(`not json`)))
}

func TestErrorEnvelope_Message(t *testing.T) {
	assert.Equal(t, "bad title", serverMessage([]byte(`{"message":"bad title"}`)))
	assert.Equal(t, "boom", serverMessage([]byte(`{"error":"boom"}`)))
	assert.Equal(t, "nested", serverMessage([]byte(`{"data":{"message":"nested"}}`)))
	assert.Equal(t, "", serverMessage([]byte(`plain text`)))
}
