package cli

import (
	"context"
	"fmt"

	"github.com/mwesthall/catalogctl/internal/cli/formatter"
	"github.com/mwesthall/catalogctl/internal/controller"
	"github.com/spf13/cobra"
)

func newSubDomainCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subdomain",
		Short: "Manage sub-domains",
	}

	cmd.AddCommand(
		newSubDomainAddCmd(app),
		newSubDomainUpdateCmd(app),
		newSubDomainRemoveCmd(app),
	)

	return cmd
}

func newSubDomainAddCmd(app *App) *cobra.Command {
	var domainID, parentRef, title, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a sub-domain",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var parentID *string
			if parentRef != "" {
				parent, err := resolveNode(ctx, app, domainID, parentRef)
				if err != nil {
					return err
				}
				parentID = &parent.ID
			} else if _, _, err := app.Ctrl.LoadForest(ctx, domainID); err != nil {
				return err
			}

			// When no title flag is given, fall back to the interactive form.
			if title == "" {
				if err := subDomainForm("New Sub-Domain", &title, &description).Run(); err != nil {
					return err
				}
			}

			created, err := app.Ctrl.AddNode(ctx, parentID, title, description)
			if err != nil {
				return err
			}
			if created != nil {
				fmt.Printf("Created sub-domain %s (%s)\n", created.Title, created.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&domainID, "domain", "", "Domain ID")
	cmd.Flags().StringVar(&parentRef, "parent", "", "Parent sub-domain (id or title); omit for a root node")
	cmd.Flags().StringVar(&title, "title", "", "Title (3-100 characters)")
	cmd.Flags().StringVar(&description, "description", "", "Description (up to 500 characters)")
	_ = cmd.MarkFlagRequired("domain")

	return cmd
}

func newSubDomainUpdateCmd(app *App) *cobra.Command {
	var domainID, title, description string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a sub-domain's title and description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			node, err := resolveNode(ctx, app, domainID, args[0])
			if err != nil {
				return err
			}

			if title == "" {
				title = node.Title
				description = node.Description
				if err := subDomainForm("Edit Sub-Domain", &title, &description).Run(); err != nil {
					return err
				}
			}

			updated, err := app.Ctrl.EditNode(ctx, node.ID, title, description)
			if err != nil {
				return err
			}
			if updated != nil {
				fmt.Printf("Updated sub-domain %s\n", updated.Title)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&domainID, "domain", "", "Domain ID")
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	_ = cmd.MarkFlagRequired("domain")

	return cmd
}

func newSubDomainRemoveCmd(app *App) *cobra.Command {
	var domainID string
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a sub-domain (cascades to nested sub-domains and projects)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			node, err := resolveNode(ctx, app, domainID, args[0])
			if err != nil {
				return err
			}

			// Deletion never proceeds without an explicit confirmation that
			// names the cascade consequences.
			if !yes {
				var confirmed bool
				if err := confirmForm(controller.DeletePrompt(node), &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Println(formatter.Dim("Cancelled."))
					return nil
				}
			}

			return app.Ctrl.DeleteNode(ctx, node)
		},
	}

	cmd.Flags().StringVar(&domainID, "domain", "", "Domain ID")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("domain")

	return cmd
}
