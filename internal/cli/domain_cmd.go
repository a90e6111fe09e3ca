package cli

import (
	"context"
	"fmt"

	"github.com/mwesthall/catalogctl/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDomainCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domains",
		Short: "List catalog domains",
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := formatter.StartSpinner("Fetching domains...")
			domains, err := app.Client.ListDomains(context.Background())
			stop()
			if err != nil {
				return err
			}
			if len(domains) == 0 {
				fmt.Println(formatter.Dim("No domains."))
				return nil
			}
			fmt.Println(formatter.FormatDomainList(domains))
			return nil
		},
	}
	return cmd
}
