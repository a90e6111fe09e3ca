package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderTable renders an aligned table with a header separator line. Columns
// are padded to the widest cell, measured by visible width so styled cells
// align correctly. Headers starting with '#' mark numeric columns, which are
// right-aligned; the marker is stripped before rendering.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)
	rightAlign := make([]bool, cols)
	for i, h := range headers {
		if strings.HasPrefix(h, "#") {
			rightAlign[i] = true
			headers[i] = strings.TrimPrefix(h, "#")
		}
	}

	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	const colGap = 2

	var b strings.Builder

	writeCell := func(content, styled string, col int) {
		pad := widths[col] - lipgloss.Width(content)
		if pad < 0 {
			pad = 0
		}
		if rightAlign[col] {
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(styled)
		} else {
			b.WriteString(styled)
			if col < cols-1 {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
		if col < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}

	for i, h := range headers {
		writeCell(h, StyleHeader.Render(h), i)
	}
	b.WriteString("\n")

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			writeCell(cell, cell, i)
		}
		b.WriteString("\n")
	}

	return b.String()
}
