package formatter

import (
	"strings"
	"testing"

	"github.com/mwesthall/catalogctl/internal/domain"
	"github.com/mwesthall/catalogctl/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestRenderForest_ConnectorsAndBadges(t *testing.T) {
	forest := []*domain.SubDomain{
		{ID: "ai", Title: "AI", Children: []*domain.SubDomain{
			{ID: "ml", Title: "ML", ProjectCount: 2},
			{ID: "nlp", Title: "NLP"},
		}},
		{ID: "db", Title: "Databases", ProjectCount: 1},
	}
	exp := tree.NewExpansionState()
	exp.Seed(tree.CollectIDs(forest))

	out := stripANSI(RenderForest(tree.Flatten(forest, exp), exp))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	assert.True(t, strings.HasPrefix(lines[0], "▾ AI"), "expanded category marker: %q", lines[0])
	assert.Contains(t, lines[1], "├─ · ML")
	assert.Contains(t, lines[1], "[ 2 project(s) ]")
	assert.Contains(t, lines[2], "└─ · NLP")
	assert.Contains(t, lines[3], "· Databases")
}

func TestRenderForest_CollapsedMarker(t *testing.T) {
	forest := []*domain.SubDomain{
		{ID: "ai", Title: "AI", Children: []*domain.SubDomain{{ID: "ml", Title: "ML"}}},
	}
	exp := tree.NewExpansionState()

	out := stripANSI(RenderForest(tree.Flatten(forest, exp), exp))
	assert.Contains(t, out, "▸ AI")
	assert.NotContains(t, out, "ML", "collapsed children stay hidden")
}

func TestRenderForest_Empty(t *testing.T) {
	exp := tree.NewExpansionState()
	out := stripANSI(RenderForest(nil, exp))
	assert.Contains(t, out, "No sub-domains")
}

func TestLevelBadge_DisplaysOneBased(t *testing.T) {
	assert.Equal(t, "Level 1", stripANSI(LevelBadge(0)), "roots display as Level 1")
	assert.Equal(t, "Level 3", stripANSI(LevelBadge(2)))
}
