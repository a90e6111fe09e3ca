package cli

import (
	"context"
	"fmt"

	"github.com/mwesthall/catalogctl/internal/api"
	"github.com/mwesthall/catalogctl/internal/cli/formatter"
	"github.com/mwesthall/catalogctl/internal/controller"
	"github.com/mwesthall/catalogctl/internal/tree"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects on leaf sub-domains",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectAddCmd(app),
		newProjectUpdateCmd(app),
		newProjectRemoveCmd(app),
		newProjectFeatureCmd(app),
		newProjectArchiveCmd(app),
	)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var domainID string

	cmd := &cobra.Command{
		Use:   "list SUBDOMAIN",
		Short: "List the projects of a leaf sub-domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			node, err := resolveNode(ctx, app, domainID, args[0])
			if err != nil {
				return err
			}
			projects, err := app.Ctrl.ListProjects(ctx, node)
			if err != nil {
				return err
			}
			if depth := tree.Depth(app.Ctrl.Forest(), node.ID); depth >= 0 {
				fmt.Println(formatter.LevelBadge(depth))
			}
			fmt.Println(formatter.FormatProjectList(node, projects))
			return nil
		},
	}

	cmd.Flags().StringVar(&domainID, "domain", "", "Domain ID")
	_ = cmd.MarkFlagRequired("domain")

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var domainID, title, abstract, specs, outcomes string
	var featured bool

	cmd := &cobra.Command{
		Use:   "add SUBDOMAIN",
		Short: "Create a project on a leaf sub-domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			node, err := resolveNode(ctx, app, domainID, args[0])
			if err != nil {
				return err
			}

			if title == "" {
				if err := projectForm(&title, &abstract, &specs, &outcomes, &featured).Run(); err != nil {
					return err
				}
			}

			created, err := app.Ctrl.AddProject(ctx, node, controller.ProjectFields{
				Title:            title,
				Abstract:         abstract,
				Specifications:   specs,
				LearningOutcomes: outcomes,
				IsFeatured:       featured,
			})
			if err != nil {
				return err
			}
			if created != nil {
				fmt.Printf("Created project %s (%s)\n", created.Title, created.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&domainID, "domain", "", "Domain ID")
	cmd.Flags().StringVar(&title, "title", "", "Project title")
	cmd.Flags().StringVar(&abstract, "abstract", "", "Short abstract")
	cmd.Flags().StringVar(&specs, "specifications", "", "Specifications text")
	cmd.Flags().StringVar(&outcomes, "learning-outcomes", "", "Learning outcomes text")
	cmd.Flags().BoolVar(&featured, "featured", false, "Mark the project as featured")
	_ = cmd.MarkFlagRequired("domain")

	return cmd
}

// changedString returns value only when the flag was set on the command line,
// so untouched fields stay out of partial update payloads.
func changedString(flags *pflag.FlagSet, name string, value *string) *string {
	if flags.Changed(name) {
		return value
	}
	return nil
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var domainID, subRef string
	var title, abstract, specs, outcomes string

	cmd := &cobra.Command{
		Use:   "update PROJECT",
		Short: "Update a project's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			node, err := resolveNode(ctx, app, domainID, subRef)
			if err != nil {
				return err
			}
			project, err := resolveProject(ctx, app, node, args[0])
			if err != nil {
				return err
			}

			req := api.UpdateProjectRequest{
				Title:            changedString(cmd.Flags(), "title", &title),
				Abstract:         changedString(cmd.Flags(), "abstract", &abstract),
				Specifications:   changedString(cmd.Flags(), "specifications", &specs),
				LearningOutcomes: changedString(cmd.Flags(), "learning-outcomes", &outcomes),
			}

			updated, err := app.Ctrl.EditProject(ctx, project, req)
			if err != nil {
				return err
			}
			if updated != nil {
				fmt.Println(formatter.FormatProjectInspect(updated))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&domainID, "domain", "", "Domain ID")
	cmd.Flags().StringVar(&subRef, "subdomain", "", "Leaf sub-domain (id or title)")
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&abstract, "abstract", "", "New abstract")
	cmd.Flags().StringVar(&specs, "specifications", "", "New specifications")
	cmd.Flags().StringVar(&outcomes, "learning-outcomes", "", "New learning outcomes")
	_ = cmd.MarkFlagRequired("domain")
	_ = cmd.MarkFlagRequired("subdomain")

	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var domainID, subRef string
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove PROJECT",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			node, err := resolveNode(ctx, app, domainID, subRef)
			if err != nil {
				return err
			}
			project, err := resolveProject(ctx, app, node, args[0])
			if err != nil {
				return err
			}

			if !yes {
				var confirmed bool
				prompt := fmt.Sprintf("Are you sure you want to delete project %q? This cannot be undone.", project.Title)
				if err := confirmForm(prompt, &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Println(formatter.Dim("Cancelled."))
					return nil
				}
			}

			return app.Ctrl.DeleteProject(ctx, project)
		},
	}

	cmd.Flags().StringVar(&domainID, "domain", "", "Domain ID")
	cmd.Flags().StringVar(&subRef, "subdomain", "", "Leaf sub-domain (id or title)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("domain")
	_ = cmd.MarkFlagRequired("subdomain")

	return cmd
}

func newProjectFeatureCmd(app *App) *cobra.Command {
	var domainID, subRef string

	cmd := &cobra.Command{
		Use:   "feature PROJECT",
		Short: "Toggle a project's featured flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			node, err := resolveNode(ctx, app, domainID, subRef)
			if err != nil {
				return err
			}
			project, err := resolveProject(ctx, app, node, args[0])
			if err != nil {
				return err
			}

			_, err = app.Ctrl.ToggleFeatured(ctx, project)
			return err
		},
	}

	cmd.Flags().StringVar(&domainID, "domain", "", "Domain ID")
	cmd.Flags().StringVar(&subRef, "subdomain", "", "Leaf sub-domain (id or title)")
	_ = cmd.MarkFlagRequired("domain")
	_ = cmd.MarkFlagRequired("subdomain")

	return cmd
}

func newProjectArchiveCmd(app *App) *cobra.Command {
	var domainID, subRef, reason string

	cmd := &cobra.Command{
		Use:   "archive PROJECT",
		Short: "Archive an active project, or restore an archived one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			node, err := resolveNode(ctx, app, domainID, subRef)
			if err != nil {
				return err
			}
			project, err := resolveProject(ctx, app, node, args[0])
			if err != nil {
				return err
			}

			action := "archiving"
			if project.Archived() {
				action = "restoring"
			}
			if reason == "" {
				if err := reasonForm(action, &reason).Run(); err != nil {
					return err
				}
			}

			return app.Ctrl.ToggleArchived(ctx, project, reason)
		},
	}

	cmd.Flags().StringVar(&domainID, "domain", "", "Domain ID")
	cmd.Flags().StringVar(&subRef, "subdomain", "", "Leaf sub-domain (id or title)")
	cmd.Flags().StringVar(&reason, "reason", "", "Reason recorded with the archive/restore")
	_ = cmd.MarkFlagRequired("domain")
	_ = cmd.MarkFlagRequired("subdomain")

	return cmd
}
