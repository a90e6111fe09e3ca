package cli

import (
	"context"
	"fmt"

	"github.com/mwesthall/catalogctl/internal/cli/formatter"
	"github.com/mwesthall/catalogctl/internal/domain"
	"github.com/mwesthall/catalogctl/internal/tree"
	"github.com/spf13/cobra"
)

func newTreeCmd(app *App) *cobra.Command {
	var cached, all bool

	cmd := &cobra.Command{
		Use:   "tree DOMAIN_ID",
		Short: "Render a domain's sub-domain tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			domainID := args[0]

			if cached {
				return renderCachedTree(ctx, app, domainID, all)
			}

			stop := formatter.StartSpinner("Fetching hierarchy...")
			dom, forest, err := app.Ctrl.LoadForest(ctx, domainID)
			stop()
			if err != nil {
				// The controller already produced the failure toast; the
				// screen still renders its valid empty state.
				fmt.Println(formatter.Header(dom.Title))
				fmt.Println(formatter.Dim("No sub-domains yet."))
				if snap, cerr := app.Ctrl.LoadCached(ctx, domainID); cerr == nil && snap != nil {
					fmt.Println(formatter.Dim(fmt.Sprintf(
						"A snapshot from %s is available: catalogctl tree %s --cached",
						formatter.HumanTimestamp(snap.FetchedAt), domainID)))
				}
				return nil
			}

			exp := app.Ctrl.Expansion()
			if all {
				exp = expandAll(forest)
			}

			fmt.Println(formatter.Header(fmt.Sprintf("%s · %d project(s)", dom.Title, dom.ProjectCount)))
			fmt.Println(formatter.RenderForest(tree.Flatten(forest, exp), exp))
			return nil
		},
	}

	cmd.Flags().BoolVar(&cached, "cached", false, "Render the last locally cached snapshot instead of fetching")
	cmd.Flags().BoolVar(&all, "all", false, "Expand every level, not just the first")

	return cmd
}

func renderCachedTree(ctx context.Context, app *App, domainID string, all bool) error {
	snap, err := app.Ctrl.LoadCached(ctx, domainID)
	if err != nil {
		return err
	}
	if snap == nil {
		return fmt.Errorf("no cached snapshot for domain %s", domainID)
	}

	exp := tree.NewExpansionState()
	if all {
		exp = expandAll(snap.Forest)
	} else {
		exp.Seed(tree.CollectIDs(snap.Forest))
	}

	fmt.Println(formatter.Header(snap.DomainTitle))
	fmt.Println(formatter.Dim(fmt.Sprintf("cached %s", formatter.HumanTimestamp(snap.FetchedAt))))
	fmt.Println(formatter.RenderForest(tree.Flatten(snap.Forest, exp), exp))
	return nil
}

func expandAll(forest []*domain.SubDomain) *tree.ExpansionState {
	exp := tree.NewExpansionState()
	var walk func(nodes []*domain.SubDomain)
	walk = func(nodes []*domain.SubDomain) {
		for _, n := range nodes {
			exp.Toggle(n.ID)
			walk(n.Children)
		}
	}
	walk(forest)
	return exp
}
