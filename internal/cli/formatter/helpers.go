package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// TruncID shortens an opaque id for display.
func TruncID(id string) string {
	if len(id) > 8 {
		return StyleDim.Render(id[:8])
	}
	return StyleDim.Render(id)
}

// HumanTimestamp formats a timestamp for display; zero renders as "--".
func HumanTimestamp(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return t.Local().Format("Jan 2 2006 15:04")
}
