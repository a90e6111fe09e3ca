package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the dim style.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in the bold foreground style.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// FeaturedBadge returns the styled marker for featured projects.
func FeaturedBadge(featured bool) string {
	if featured {
		return StyleYellow.Render("★ featured")
	}
	return ""
}

// ActivePill renders a project's active/archived state.
func ActivePill(active bool) string {
	if active {
		return StyleGreen.Render("● active")
	}
	return StyleDim.Render("○ archived")
}

// LevelBadge renders the informational "Level N" marker for a tree depth.
// Depths are zero-based internally but the badge is shown 1-based, so a
// root node (depth 0) displays as "Level 1".
func LevelBadge(depth int) string {
	return StyleDim.Render(fmt.Sprintf("Level %d", depth+1))
}
