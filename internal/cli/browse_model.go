package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/mwesthall/catalogctl/internal/cli/formatter"
	"github.com/mwesthall/catalogctl/internal/controller"
	"github.com/mwesthall/catalogctl/internal/domain"
	"github.com/mwesthall/catalogctl/internal/tree"
)

// browseMode tracks which interaction mode the browser is in.
type browseMode int

const (
	modeTree     browseMode = iota // navigating the forest
	modeProjects                   // viewing a leaf's projects
	modeForm                       // huh form is active (add/edit/confirm)
)

// Messages produced by async commands. All network work happens inside
// tea.Cmd closures; Update only ever touches model state.
type (
	forestLoadedMsg   struct{ err error }
	projectsLoadedMsg struct {
		node     *domain.SubDomain
		projects []*domain.Project
		err      error
	}
	mutationDoneMsg struct{ err error }
)

// browseKeys describes the tree-mode bindings shown in the help line.
var browseKeys = []key.Binding{
	key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "move")),
	key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "expand/projects")),
	key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add child")),
	key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add root")),
	key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

func renderKeyHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return formatter.Dim(strings.Join(parts, " · "))
}

// browseModel is the bubbletea Model for the interactive tree browser.
type browseModel struct {
	app      *App
	domainID string
	width    int

	mode    browseMode
	cursor  int
	rows    []tree.Row
	loading bool
	status  string

	// projects view
	projectNode *domain.SubDomain
	projects    []*domain.Project

	// active form; values are bound to locals captured by formDone
	form     *huh.Form
	formDone func(m *browseModel) tea.Cmd

	quitting bool
}

func newBrowseModel(app *App, domainID string) browseModel {
	return browseModel{
		app:      app,
		domainID: domainID,
		loading:  true,
	}
}

func (m browseModel) Init() tea.Cmd {
	return loadForestCmd(m.app, m.domainID)
}

func loadForestCmd(app *App, domainID string) tea.Cmd {
	return func() tea.Msg {
		_, _, err := app.Ctrl.LoadForest(context.Background(), domainID)
		return forestLoadedMsg{err: err}
	}
}

func loadProjectsCmd(app *App, node *domain.SubDomain) tea.Cmd {
	return func() tea.Msg {
		projects, err := app.Ctrl.ListProjects(context.Background(), node)
		return projectsLoadedMsg{node: node, projects: projects, err: err}
	}
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.form != nil {
			m.form = m.form.WithWidth(msg.Width)
		}
		return m, nil

	case forestLoadedMsg:
		m.loading = false
		m.refreshRows()
		if msg.err != nil {
			m.status = formatter.StyleRed.Render("✘ ") + msg.err.Error()
		} else {
			m.status = ""
		}
		return m, nil

	case projectsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = formatter.StyleRed.Render("✘ ") + msg.err.Error()
			return m, nil
		}
		m.mode = modeProjects
		m.projectNode = msg.node
		m.projects = msg.projects
		return m, nil

	case mutationDoneMsg:
		// The controller refetched on success; rebuild the visible rows.
		m.loading = false
		m.refreshRows()
		if msg.err != nil {
			m.status = formatter.StyleRed.Render("✘ ") + msg.err.Error()
		} else {
			m.status = formatter.StyleGreen.Render("✔ done")
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeProjects:
			return m.updateProjects(msg)
		default:
			return m.updateTree(msg)
		}
	}

	if m.mode == modeForm {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m browseModel) updateTree(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case "enter", " ":
		node := m.cursorNode()
		if node == nil {
			break
		}
		if node.IsLeaf() {
			m.loading = true
			return m, loadProjectsCmd(m.app, node)
		}
		m.app.Ctrl.ToggleExpanded(node.ID)
		m.refreshRows()

	case "r":
		m.loading = true
		return m, loadForestCmd(m.app, m.domainID)

	case "a":
		return m.startAddForm(m.cursorNode())

	case "A":
		return m.startAddForm(nil)

	case "e":
		if node := m.cursorNode(); node != nil {
			return m.startEditForm(node)
		}

	case "d":
		if node := m.cursorNode(); node != nil {
			return m.startDeleteConfirm(node)
		}
	}
	return m, nil
}

func (m browseModel) updateProjects(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = modeTree
		m.projectNode = nil
		m.projects = nil
	}
	return m, nil
}

func (m browseModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		done := m.formDone
		m.form = nil
		m.formDone = nil
		m.mode = modeTree
		if done != nil {
			return m, done(&m)
		}
		return m, nil
	}
	if m.form.State == huh.StateAborted {
		m.form = nil
		m.formDone = nil
		m.mode = modeTree
		m.status = formatter.Dim("Cancelled.")
		return m, nil
	}
	return m, cmd
}

func (m browseModel) startAddForm(parent *domain.SubDomain) (tea.Model, tea.Cmd) {
	heading := "New Root Sub-Domain"
	if parent != nil {
		heading = fmt.Sprintf("New Child of %s", parent.Title)
	}
	title := new(string)
	desc := new(string)
	m.form = subDomainForm(heading, title, desc)
	m.mode = modeForm
	m.formDone = func(m *browseModel) tea.Cmd {
		app := m.app
		var parentID *string
		if parent != nil {
			parentID = &parent.ID
		}
		m.loading = true
		return func() tea.Msg {
			_, err := app.Ctrl.AddNode(context.Background(), parentID, *title, *desc)
			return mutationDoneMsg{err: err}
		}
	}
	return m, m.form.Init()
}

func (m browseModel) startEditForm(node *domain.SubDomain) (tea.Model, tea.Cmd) {
	title := new(string)
	desc := new(string)
	*title = node.Title
	*desc = node.Description
	m.form = subDomainForm("Edit Sub-Domain", title, desc)
	m.mode = modeForm
	m.formDone = func(m *browseModel) tea.Cmd {
		app, id := m.app, node.ID
		m.loading = true
		return func() tea.Msg {
			_, err := app.Ctrl.EditNode(context.Background(), id, *title, *desc)
			return mutationDoneMsg{err: err}
		}
	}
	return m, m.form.Init()
}

func (m browseModel) startDeleteConfirm(node *domain.SubDomain) (tea.Model, tea.Cmd) {
	confirmed := new(bool)
	m.form = confirmForm(controller.DeletePrompt(node), confirmed)
	m.mode = modeForm
	m.formDone = func(m *browseModel) tea.Cmd {
		if !*confirmed {
			m.status = formatter.Dim("Cancelled.")
			return nil
		}
		app := m.app
		m.loading = true
		return func() tea.Msg {
			return mutationDoneMsg{err: app.Ctrl.DeleteNode(context.Background(), node)}
		}
	}
	return m, m.form.Init()
}

func (m *browseModel) refreshRows() {
	m.rows = tree.Flatten(m.app.Ctrl.Forest(), m.app.Ctrl.Expansion())
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m browseModel) cursorNode() *domain.SubDomain {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].Node
}

// ── view ─────────────────────────────────────────────────────────────────────

func (m browseModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	dom := m.app.Ctrl.Domain()
	title := "Loading..."
	if dom != nil {
		title = fmt.Sprintf("%s · %d project(s)", dom.Title, dom.ProjectCount)
	}
	b.WriteString(formatter.Header(title) + "\n")

	switch {
	case m.form != nil:
		b.WriteString(m.form.View())

	case m.mode == modeProjects:
		b.WriteString(formatter.FormatProjectList(m.projectNode, m.projects))
		b.WriteString("\n" + formatter.Dim("esc back"))

	default:
		b.WriteString(m.viewTree())
		b.WriteString("\n" + renderKeyHelp(browseKeys))
	}

	if m.loading {
		b.WriteString("\n" + formatter.StyleYellow.Render("… loading"))
	}
	if m.status != "" {
		b.WriteString("\n" + m.status)
	}

	return b.String()
}

// viewTree renders rows like formatter.RenderForest but with a cursor line.
func (m browseModel) viewTree() string {
	if len(m.rows) == 0 {
		return formatter.Dim("No sub-domains yet. Press A to add one.")
	}

	exp := m.app.Ctrl.Expansion()
	var b strings.Builder
	for i, row := range m.rows {
		var prefix string
		for d := 1; d < row.Depth; d++ {
			prefix += "│  "
		}
		if row.Depth > 0 {
			if row.IsLast {
				prefix += "└─ "
			} else {
				prefix += "├─ "
			}
		}

		n := row.Node
		var line string
		switch {
		case n.IsLeaf():
			line = prefix + formatter.Dim("· ") + n.Title + "  " +
				formatter.StyleBlue.Render(fmt.Sprintf("[ %d project(s) ]", n.ProjectCount))
		case exp.IsExpanded(n.ID):
			line = prefix + formatter.StyleHeader.Render("▾ ") + formatter.Bold(n.Title)
		default:
			line = prefix + formatter.StyleHeader.Render("▸ ") + formatter.Bold(n.Title)
		}

		if i == m.cursor {
			b.WriteString(formatter.StyleHeader.Render("❯ ") + line + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}
