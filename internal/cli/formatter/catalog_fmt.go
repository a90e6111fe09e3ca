package formatter

import (
	"fmt"
	"strings"

	"github.com/mwesthall/catalogctl/internal/domain"
)

// FormatDomainList renders the domain table inside a bordered box.
func FormatDomainList(domains []*domain.Domain) string {
	headers := []string{"ID", "TITLE", "#PROJECTS"}
	rows := make([][]string, 0, len(domains))
	for _, d := range domains {
		rows = append(rows, []string{
			TruncID(d.ID),
			Bold(d.Title),
			fmt.Sprintf("%d", d.ProjectCount),
		})
	}
	return RenderBox("Domains", RenderTable(headers, rows))
}

// FormatProjectList renders the projects of one leaf sub-domain.
func FormatProjectList(node *domain.SubDomain, projects []*domain.Project) string {
	if len(projects) == 0 {
		return RenderBox(node.Title, Dim("No projects."))
	}

	headers := []string{"ID", "TITLE", "STATE", "FEATURED", "#VIEWS", "UPDATED"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		featured := Dim("--")
		if p.IsFeatured {
			featured = FeaturedBadge(true)
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Title),
			ActivePill(p.IsActive),
			featured,
			fmt.Sprintf("%d", p.ViewCount),
			Dim(HumanTimestamp(p.UpdatedAt)),
		})
	}
	return RenderBox(node.Title, RenderTable(headers, rows))
}

// FormatProjectInspect renders a single project card.
func FormatProjectInspect(p *domain.Project) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s", Bold(p.Title), ActivePill(p.IsActive)))
	if p.IsFeatured {
		b.WriteString("  " + FeaturedBadge(true))
	}
	b.WriteString("\n\n")

	section := func(label, text string) {
		if strings.TrimSpace(text) == "" {
			return
		}
		b.WriteString(StyleHeader.Render(label) + "\n" + text + "\n\n")
	}
	section("Abstract", p.Abstract)
	section("Specifications", p.Specifications)
	section("Learning Outcomes", p.LearningOutcomes)

	b.WriteString(Dim(fmt.Sprintf("views %d · created %s · updated %s",
		p.ViewCount, HumanTimestamp(p.CreatedAt), HumanTimestamp(p.UpdatedAt))))

	return RenderBox("", b.String())
}
