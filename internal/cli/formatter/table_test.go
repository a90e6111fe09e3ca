package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"ID", "TITLE"},
		[][]string{
			{"a", "Machine Learning"},
			{"long-id", "DB"},
		},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	// All TITLE cells start at the same column.
	assert.Equal(t, strings.Index(lines[0], "TITLE"), strings.Index(lines[2], "Machine Learning"))
	assert.Equal(t, strings.Index(lines[0], "TITLE"), strings.Index(lines[3], "DB"))
}

func TestRenderTable_RightAlignsNumericColumns(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"TITLE", "#PROJECTS"},
		[][]string{
			{"AI", "7"},
			{"Databases", "123"},
		},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	assert.NotContains(t, lines[0], "#", "alignment marker is stripped")
	end := len(strings.TrimRight(lines[1], " "))
	assert.Equal(t, end, len(strings.TrimRight(lines[2], " ")), "short number ends flush with the column")
	assert.Equal(t, end, len(strings.TrimRight(lines[3], " ")))
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"a"}}))
}
