package cli

import (
	"encoding/json"
	"fmt"

	"github.com/mwesthall/catalogctl/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and initialize the catalogctl configuration",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := json.MarshalIndent(app.Config, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Write the current configuration to disk",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := config.Save(app.Config); err != nil {
					return err
				}
				path, err := config.Path()
				if err != nil {
					return err
				}
				fmt.Printf("Wrote %s\n", path)
				return nil
			},
		},
	)

	return cmd
}
