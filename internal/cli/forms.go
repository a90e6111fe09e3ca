package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwesthall/catalogctl/internal/cli/formatter"
	"github.com/mwesthall/catalogctl/internal/domain"
)

func catalogHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateFormTitle(s string) error {
	return domain.ValidateTitle(s)
}

func validateFormDescription(s string) error {
	return domain.ValidateDescription(s)
}

// subDomainForm builds the create/edit form for a sub-domain.
func subDomainForm(heading string, title, description *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(heading+" · Title").
				Placeholder("3-100 characters").
				Value(title).
				Validate(validateFormTitle),
			huh.NewText().
				Title("Description (optional)").
				Placeholder("up to 500 characters").
				CharLimit(domain.DescriptionMaxLen).
				Value(description).
				Validate(validateFormDescription),
		),
	).WithTheme(catalogHuhTheme()).WithShowHelp(false)
}

// projectForm builds the create form for a project on a leaf.
func projectForm(title, abstract, specs, outcomes *string, featured *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project Title").
				Placeholder("3-100 characters").
				Value(title).
				Validate(validateFormTitle),
			huh.NewText().
				Title("Abstract").
				Value(abstract),
			huh.NewText().
				Title("Specifications").
				Value(specs),
			huh.NewText().
				Title("Learning Outcomes").
				Value(outcomes),
			huh.NewConfirm().
				Title("Feature this project?").
				Affirmative("Yes").
				Negative("No").
				Value(featured),
		),
	).WithTheme(catalogHuhTheme()).WithShowHelp(false)
}

// confirmForm builds a yes/no prompt for destructive operations.
func confirmForm(prompt string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Delete").
				Negative("Cancel").
				Value(result),
		),
	).WithTheme(catalogHuhTheme()).WithShowHelp(false)
}

// reasonForm asks for the archive/restore reason.
func reasonForm(action string, reason *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Reason for %s", action)).
				Placeholder("optional").
				Value(reason).
				Validate(func(s string) error {
					if utf8.RuneCountInString(strings.TrimSpace(s)) > 200 {
						return fmt.Errorf("keep the reason under 200 characters")
					}
					return nil
				}),
		),
	).WithTheme(catalogHuhTheme()).WithShowHelp(false)
}
