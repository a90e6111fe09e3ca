package cli

import (
	"fmt"
	"net/http"

	"github.com/mwesthall/catalogctl/internal/mockapi"
	"github.com/spf13/cobra"
)

func newMockAPICmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "mockapi",
		Short: "Run a local in-memory stub of the catalog backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := fmt.Sprintf("localhost:%d", port)
			fmt.Printf("Stub catalog API listening on http://%s\n", addr)
			fmt.Println("Point catalogctl at it with CATALOGCTL_API_URL=http://" + addr)
			return http.ListenAndServe(addr, mockapi.New().Handler())
		},
	}

	cmd.Flags().IntVar(&port, "port", 8640, "Port to listen on")

	return cmd
}
