package cli

import (
	"github.com/mwesthall/catalogctl/internal/api"
	"github.com/mwesthall/catalogctl/internal/config"
	"github.com/mwesthall/catalogctl/internal/controller"
	"github.com/spf13/cobra"
)

// App holds references to the controller and client used by CLI commands.
type App struct {
	Ctrl   *controller.Controller
	Client api.Client
	Config config.Config
}

// NewRootCmd creates the top-level "catalogctl" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "catalogctl",
		Short: "Admin tool for the project catalog's domain hierarchy",
	}

	root.AddCommand(
		newDomainCmd(app),
		newTreeCmd(app),
		newBrowseCmd(app),
		newSubDomainCmd(app),
		newProjectCmd(app),
		newConfigCmd(app),
		newMockAPICmd(),
	)

	return root
}
