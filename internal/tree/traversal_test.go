package tree

import (
	"testing"

	"github.com/mwesthall/catalogctl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testForest builds a forest three levels deep:
//
//	root1
//	├─ mid1
//	│  └─ deep1
//	└─ mid2
//	root2
func testForest() []*domain.SubDomain {
	deep1 := &domain.SubDomain{ID: "deep1", Title: "Deep Learning"}
	mid1 := &domain.SubDomain{ID: "mid1", Title: "Neural Nets", Children: []*domain.SubDomain{deep1}}
	mid2 := &domain.SubDomain{ID: "mid2", Title: "Classical ML"}
	root1 := &domain.SubDomain{ID: "root1", Title: "AI", Children: []*domain.SubDomain{mid1, mid2}}
	root2 := &domain.SubDomain{ID: "root2", Title: "Databases"}
	return []*domain.SubDomain{root1, root2}
}

func TestFindByID_EveryDepth(t *testing.T) {
	forest := testForest()

	for _, id := range []string{"root1", "root2", "mid1", "mid2", "deep1"} {
		n, ok := FindByID(forest, id)
		require.True(t, ok, "id %s should be found", id)
		assert.Equal(t, id, n.ID)
	}

	_, ok := FindByID(forest, "ghost")
	assert.False(t, ok)

	_, ok = FindByID(nil, "root1")
	assert.False(t, ok)
}

func TestDepth(t *testing.T) {
	forest := testForest()

	assert.Equal(t, 0, Depth(forest, "root1"))
	assert.Equal(t, 0, Depth(forest, "root2"))
	assert.Equal(t, 1, Depth(forest, "mid2"))
	assert.Equal(t, 2, Depth(forest, "deep1"))
	assert.Equal(t, -1, Depth(forest, "ghost"))
}

func TestCollectIDs_OneLevelOnly(t *testing.T) {
	forest := testForest()

	ids := CollectIDs(forest)
	assert.Equal(t, []string{"root1", "root2"}, ids, "only roots, in server order")

	assert.Empty(t, CollectIDs(nil))
}

func TestCount(t *testing.T) {
	assert.Equal(t, 5, Count(testForest()))
	assert.Equal(t, 0, Count(nil))
}

func TestFlatten_RespectsExpansion(t *testing.T) {
	forest := testForest()
	exp := NewExpansionState()

	// Nothing expanded: only roots are visible.
	rows := Flatten(forest, exp)
	require.Len(t, rows, 2)
	assert.Equal(t, "root1", rows[0].Node.ID)
	assert.Equal(t, "root2", rows[1].Node.ID)
	assert.True(t, rows[1].IsLast)

	// Expanding root1 reveals its direct children but not deep1.
	exp.Toggle("root1")
	rows = Flatten(forest, exp)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"root1", "mid1", "mid2", "root2"}, rowIDs(rows))
	assert.Equal(t, 1, rows[1].Depth)

	// Expanding mid1 as well reveals the full spine.
	exp.Toggle("mid1")
	rows = Flatten(forest, exp)
	assert.Equal(t, []string{"root1", "mid1", "deep1", "mid2", "root2"}, rowIDs(rows))
	assert.Equal(t, 2, rows[2].Depth)
	assert.True(t, rows[2].IsLast, "deep1 is mid1's only child")
}

func TestFlatten_DoesNotMutateForest(t *testing.T) {
	forest := testForest()
	exp := NewExpansionState()
	exp.Seed(CollectIDs(forest))

	_ = Flatten(forest, exp)

	require.Len(t, forest, 2)
	require.Len(t, forest[0].Children, 2)
	require.Len(t, forest[0].Children[0].Children, 1)
}

func rowIDs(rows []Row) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.Node.ID
	}
	return ids
}
