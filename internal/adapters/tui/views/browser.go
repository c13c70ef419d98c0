package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"trailhead/internal/adapters/tui/styles"
	"trailhead/internal/application/commands"
	"trailhead/internal/domain"
	"trailhead/internal/ports"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextFilter key.Binding
	PrevFilter key.Binding
	Visit      key.Binding
	Back       key.Binding
	New        key.Binding
	NewRoot    key.Binding
	Rename     key.Binding
	Delete     key.Binding
	Member     key.Binding
	Yank       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	NextFilter: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "filter"),
	),
	PrevFilter: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev filter"),
	),
	Visit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "visit"),
	),
	Back: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "back"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	NewRoot: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "new root"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rename"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Member: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "context"),
	),
	Yank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy path"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// reserved lines around the tree: title, filter tabs, breadcrumb, message, help
const browserChrome = 10

// BrowserModel is the model for the filtered tree browser
type BrowserModel struct {
	ViewState
	graph     ports.NodeGraph
	contexts  ports.ContextStore
	filter    domain.Filter
	entries   []domain.FilteredEntry
	current   *domain.Node
	context   *domain.Context
	crumb     string
	paginator *Paginator
	clip      func(string) error
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(graph ports.NodeGraph, contexts ports.ContextStore) *BrowserModel {
	return &BrowserModel{
		graph:     graph,
		contexts:  contexts,
		filter:    domain.FilterAll,
		paginator: NewPaginator(20),
		clip:      clipboard.WriteAll,
	}
}

// SetClipboard replaces the function used to copy hierarchy paths
func (m *BrowserModel) SetClipboard(fn func(string) error) {
	m.clip = fn
}

// SetSize updates the view dimensions and the visible page
func (m *BrowserModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.paginator.SetPageSize(height - browserChrome)
}

// Filter returns the active filter
func (m *BrowserModel) Filter() domain.Filter {
	return m.filter
}

// Entries returns the materialized tree
func (m *BrowserModel) Entries() []domain.FilteredEntry {
	return m.entries
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return m.loadTree()
}

// Reload reloads the tree for the active filter
func (m *BrowserModel) Reload() tea.Cmd {
	return m.loadTree()
}

// loadTree captures the filter now; the command runs off the update loop
func (m *BrowserModel) loadTree() tea.Cmd {
	graph, contexts, filter := m.graph, m.contexts, m.filter
	return func() tea.Msg {
		ctx := context.Background()
		entries, err := graph.FilteredNodeTree(ctx, filter)
		if err != nil {
			return errMsg{err}
		}
		current, err := graph.GetCurrentNode(ctx)
		if err != nil {
			return errMsg{err}
		}
		cur, err := contexts.CurrentContext(ctx)
		if err != nil {
			return errMsg{err}
		}
		return treeLoadedMsg{filter: filter, entries: entries, current: current, context: cur}
	}
}

func (m *BrowserModel) loadBreadcrumb() tea.Cmd {
	node := m.SelectedNode()
	if node == nil {
		return nil
	}
	n, graph := *node, m.graph
	return func() tea.Msg {
		path, err := graph.FormatNodeWithHierarchy(context.Background(), n)
		if err != nil {
			return errMsg{err}
		}
		return breadcrumbMsg{id: n.ID, path: path}
	}
}

type treeLoadedMsg struct {
	filter  domain.Filter
	entries []domain.FilteredEntry
	current *domain.Node
	context *domain.Context
}

type breadcrumbMsg struct {
	id   string
	path string
}

type errMsg struct {
	err error
}

type successMsg struct {
	message string
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case treeLoadedMsg:
		if msg.filter != m.filter {
			// stale result of a filter the user already left
			return m, nil
		}
		m.entries = msg.entries
		m.current = msg.current
		m.context = msg.context
		m.paginator.SetTotal(len(m.entries))
		return m, m.loadBreadcrumb()

	case breadcrumbMsg:
		if n := m.SelectedNode(); n != nil && n.ID == msg.id {
			m.crumb = msg.path
		}
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case successMsg:
		m.SetMessage(msg.message, false)
		return m, m.Reload()

	case copiedMsg:
		m.SetMessage("Copied "+msg.path, false)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return tea.Quit

	case key.Matches(msg, BrowserKeys.Up):
		if m.paginator.CursorUp() {
			return m.loadBreadcrumb()
		}

	case key.Matches(msg, BrowserKeys.Down):
		if m.paginator.CursorDown() {
			return m.loadBreadcrumb()
		}

	case key.Matches(msg, BrowserKeys.NextFilter):
		m.cycleFilter(1)
		return m.loadTree()

	case key.Matches(msg, BrowserKeys.PrevFilter):
		m.cycleFilter(-1)
		return m.loadTree()

	case key.Matches(msg, BrowserKeys.Visit):
		if n := m.SelectedNode(); n != nil {
			return m.run(func(ctx context.Context) (string, error) {
				res, err := commands.NewVisitCommand(m.graph, n.ID).Execute(ctx)
				if err != nil {
					return "", err
				}
				return res.Message, nil
			})
		}

	case key.Matches(msg, BrowserKeys.Back):
		return m.run(func(ctx context.Context) (string, error) {
			res, err := commands.NewBackCommand(m.graph).Execute(ctx)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		})

	case key.Matches(msg, BrowserKeys.New):
		parent := m.SelectedNode()
		return func() tea.Msg { return SwitchToCreateMsg{Parent: parent} }

	case key.Matches(msg, BrowserKeys.NewRoot):
		return func() tea.Msg { return SwitchToCreateMsg{} }

	case key.Matches(msg, BrowserKeys.Rename):
		if n := m.SelectedNode(); n != nil {
			target := *n
			return func() tea.Msg { return SwitchToRenameMsg{Target: target} }
		}

	case key.Matches(msg, BrowserKeys.Delete):
		if n := m.SelectedNode(); n != nil {
			return m.confirmDelete(*n)
		}

	case key.Matches(msg, BrowserKeys.Member):
		if n := m.SelectedNode(); n != nil {
			return m.toggleMember(*n)
		}

	case key.Matches(msg, BrowserKeys.Yank):
		if n := m.SelectedNode(); n != nil {
			return m.yank(*n)
		}

	case key.Matches(msg, BrowserKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }
	}

	return nil
}

func (m *BrowserModel) cycleFilter(step int) {
	idx := 0
	for i, f := range domain.AllFilters {
		if f == m.filter {
			idx = i
			break
		}
	}
	n := len(domain.AllFilters)
	m.filter = domain.AllFilters[(idx+step+n)%n]
	m.entries = nil
	m.crumb = ""
	m.paginator.SetTotal(0)
}

// run executes an action and reports its message, reloading on success
func (m *BrowserModel) run(action func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		message, err := action(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return successMsg{message}
	}
}

func (m *BrowserModel) confirmDelete(n domain.Node) tea.Cmd {
	graph := m.graph
	return func() tea.Msg {
		children, err := graph.GetChildNodes(context.Background(), n.ID)
		if err != nil {
			return errMsg{err}
		}
		return SwitchToDeleteMsg{Target: n, HasChildren: len(children) > 0}
	}
}

func (m *BrowserModel) toggleMember(n domain.Node) tea.Cmd {
	contexts := m.contexts
	return m.run(func(ctx context.Context) (string, error) {
		added, err := commands.ToggleMembership(ctx, contexts, n.ID)
		if err != nil {
			return "", err
		}
		if added {
			return fmt.Sprintf("Added %s to the current context", n.Name), nil
		}
		return fmt.Sprintf("Removed %s from the current context", n.Name), nil
	})
}

func (m *BrowserModel) yank(n domain.Node) tea.Cmd {
	graph, clip := m.graph, m.clip
	return func() tea.Msg {
		path, err := graph.FormatNodeWithHierarchy(context.Background(), n)
		if err != nil {
			return errMsg{err}
		}
		if err := clip(path); err != nil {
			return errMsg{fmt.Errorf("copy to clipboard: %w", err)}
		}
		// copying changes nothing, skip the reload
		return copiedMsg{path}
	}
}

type copiedMsg struct {
	path string
}

// SelectedNode returns the node under the cursor, nil when the tree is empty
func (m *BrowserModel) SelectedNode() *domain.Node {
	cursor := m.paginator.Cursor()
	if cursor < 0 || cursor >= len(m.entries) {
		return nil
	}
	return &m.entries[cursor].Node
}

// View renders the browser view
func (m *BrowserModel) View() string {
	v := NewViewBuilder().Title("Trailhead")
	v.Line(m.renderFilters()).BlankLine()

	if m.context != nil {
		v.Muted("context: " + m.context.Name)
	}

	if len(m.entries) == 0 {
		v.Muted(m.emptyText())
	} else {
		start, end := m.paginator.VisibleRange()
		for i := start; i < end; i++ {
			v.Line(m.renderEntry(m.entries[i], i == m.paginator.Cursor()))
		}
	}
	v.BlankLine()

	if m.crumb != "" {
		v.Line(styles.Breadcrumb.Render(m.crumb))
	}
	v.Message(m.Message, m.MessageErr)

	v.Raw(RenderHelpLine(
		BrowserKeys.NextFilter, BrowserKeys.Visit, BrowserKeys.Back,
		BrowserKeys.New, BrowserKeys.Delete, BrowserKeys.Help, BrowserKeys.Quit,
	))
	return v.String()
}

func (m *BrowserModel) emptyText() string {
	switch m.filter {
	case domain.FilterContext:
		if m.context == nil {
			return "No current context."
		}
		return "The current context has no members."
	case domain.FilterAll:
		return "No nodes yet. Press N to create one."
	default:
		return "Nothing matches this filter."
	}
}

func (m *BrowserModel) renderFilters() string {
	tabs := make([]string, 0, len(domain.AllFilters))
	for _, f := range domain.AllFilters {
		if f == m.filter {
			tabs = append(tabs, styles.FilterActive.Render(f.String()))
		} else {
			tabs = append(tabs, styles.FilterInactive.Render(f.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *BrowserModel) renderEntry(e domain.FilteredEntry, selected bool) string {
	var b strings.Builder

	switch {
	case m.current != nil && m.current.ID == e.Node.ID:
		b.WriteString(styles.NodeCurrent.Render(styles.TreeCurrent))
	case e.Selected:
		b.WriteString(styles.NodeCurrent.Render(styles.TreeMember))
	default:
		b.WriteString(styles.TreeNoMarker)
	}
	b.WriteString(styles.TreeBranch.Render(strings.Repeat(styles.TreeIndent, e.Depth)))

	name := e.Node.Name
	if selected {
		b.WriteString(styles.NodeSelected.Render(name))
		return b.String()
	}

	switch {
	case styles.IsAnchor(e.Node.ID):
		b.WriteString(styles.NodeAnchor.Foreground(styles.AnchorColor(e.Node.ID)).Render(name))
	case e.Node.Temp:
		b.WriteString(styles.NodeTemp.Render(name))
	case e.Depth == 0:
		b.WriteString(styles.NodeRoot.Render(name))
	default:
		b.WriteString(styles.NodeChild.Render(name))
	}
	return b.String()
}
