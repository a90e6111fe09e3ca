package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBrowseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse DOMAIN_ID",
		Short: "Interactively browse and edit a domain's sub-domain tree",
		Long: `Open a full-screen browser over the sub-domain tree of a domain.

Navigate with the arrow keys, expand categories or open a leaf's project
list with enter, and add, edit or delete sub-domains in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model := newBrowseModel(app, args[0])
			p := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			return nil
		},
	}
	return cmd
}
