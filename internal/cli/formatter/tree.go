package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwesthall/catalogctl/internal/tree"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderForest renders the visible rows of a sub-domain forest as an
// indented tree with box-drawing connectors. Categories carry an expansion
// marker; leaves get a right-aligned project-count badge. Rows come from
// tree.Flatten, so only nodes under expanded ancestors appear.
func RenderForest(rows []tree.Row, exp *tree.ExpansionState) string {
	if len(rows) == 0 {
		return Dim("No sub-domains yet.")
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(rows))
	maxContentWidth := 0

	// Pass 1: build each line's content and track max visible width.
	for idx, row := range rows {
		var prefix string
		if row.Depth > 0 {
			for i := 1; i < row.Depth; i++ {
				prefix += treePipe
			}
			if row.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		n := row.Node
		var marker, title string
		if n.IsLeaf() {
			marker = StyleDim.Render("· ")
			title = StyleFg.Render(n.Title)
			lines[idx].badge = StyleBlue.Render(fmt.Sprintf("[ %d project(s) ]", n.ProjectCount))
		} else if exp.IsExpanded(n.ID) {
			marker = StyleHeader.Render("▾ ")
			title = StyleBold.Render(n.Title)
		} else {
			marker = StyleHeader.Render("▸ ")
			title = StyleBold.Render(n.Title)
		}

		content := prefix + marker + title
		lines[idx].content = content

		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	// Pass 2: render with right-aligned badges.
	var b strings.Builder
	for _, li := range lines {
		if li.badge != "" {
			pad := maxContentWidth - lipgloss.Width(li.content)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
		} else {
			b.WriteString(li.content + "\n")
		}
	}

	return b.String()
}
