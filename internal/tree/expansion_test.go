package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpansionState_Toggle(t *testing.T) {
	exp := NewExpansionState()

	assert.False(t, exp.IsExpanded("a"))

	exp.Toggle("a")
	assert.True(t, exp.IsExpanded("a"))

	exp.Toggle("a")
	assert.False(t, exp.IsExpanded("a"))
	assert.Zero(t, exp.Len())
}

func TestExpansionState_SeedReplacesWholesale(t *testing.T) {
	exp := NewExpansionState()
	exp.Toggle("old")

	exp.Seed([]string{"a", "b"})

	assert.False(t, exp.IsExpanded("old"), "prior expansion is dropped on reseed")
	assert.True(t, exp.IsExpanded("a"))
	assert.True(t, exp.IsExpanded("b"))
	assert.Equal(t, 2, exp.Len())
}

func TestExpansionState_SeedCopiesInput(t *testing.T) {
	ids := []string{"a"}
	exp := NewExpansionState()
	exp.Seed(ids)

	ids[0] = "mutated"
	assert.True(t, exp.IsExpanded("a"), "state must not alias the caller's slice")
}
