package views

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"trailhead/internal/adapters/sqlite"
	"trailhead/internal/adapters/sqlstore"
	"trailhead/internal/application"
	"trailhead/internal/domain"
	"trailhead/internal/graph"
)

func newTestGraph(t *testing.T) (*graph.Engine, *sqlstore.ContextStore) {
	t.Helper()
	ctx := context.Background()
	log := zaptest.NewLogger(t)

	store, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "tui.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	contexts := sqlstore.NewContextStore(store)
	engine := graph.New(store, contexts, graph.WithLogger(log))
	require.NoError(t, engine.EnsureAnchors(ctx))
	return engine, contexts
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// settle runs cmd and feeds browser-internal messages back into m until a
// message for another view (or nothing) comes out.
func settle(m tea.Model, cmd tea.Cmd) tea.Msg {
	for cmd != nil {
		msg := cmd()
		switch msg.(type) {
		case treeLoadedMsg, breadcrumbMsg, errMsg, successMsg, copiedMsg:
			_, cmd = m.Update(msg)
		default:
			return msg
		}
	}
	return nil
}

func typeText(m tea.Model, s string) {
	for _, r := range s {
		m.Update(runes(string(r)))
	}
}

func selectNode(t *testing.T, m *BrowserModel, id string) {
	t.Helper()
	for i, e := range m.Entries() {
		if e.Node.ID == id {
			m.paginator.SetCursor(i)
			settle(m, m.loadBreadcrumb())
			return
		}
	}
	t.Fatalf("node %s not in tree", id)
}

func TestBrowserModel_LoadsAnchors(t *testing.T) {
	g, contexts := newTestGraph(t)
	m := NewBrowserModel(g, contexts)
	m.SetSize(80, 40)

	settle(m, m.Init())

	require.Len(t, m.Entries(), len(domain.Anchors))
	for _, e := range m.Entries() {
		assert.Equal(t, 0, e.Depth)
		assert.False(t, e.Selected)
	}
	require.NotNil(t, m.SelectedNode())
	assert.Contains(t, m.View(), "Projects")
}

func TestBrowserModel_CycleFilter(t *testing.T) {
	g, contexts := newTestGraph(t)
	m := NewBrowserModel(g, contexts)
	settle(m, m.Init())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	settle(m, cmd)
	assert.Equal(t, domain.FilterRecent, m.Filter())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	settle(m, cmd)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	settle(m, cmd)
	assert.Equal(t, domain.FilterContext, m.Filter())
	assert.Empty(t, m.Entries())
	assert.Contains(t, m.View(), "No current context.")
}

func TestBrowserModel_StaleTreeIgnored(t *testing.T) {
	g, contexts := newTestGraph(t)
	m := NewBrowserModel(g, contexts)
	settle(m, m.Init())

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(treeLoadedMsg{filter: domain.FilterAll, entries: []domain.FilteredEntry{{Node: domain.Node{ID: "x"}}}})
	assert.Empty(t, m.Entries())
}

func TestBrowserModel_LoadCapturesFilter(t *testing.T) {
	g, contexts := newTestGraph(t)
	m := NewBrowserModel(g, contexts)
	settle(m, m.Init())

	pending := m.Reload()
	_, next := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, domain.FilterRecent, m.Filter())

	loaded, ok := pending().(treeLoadedMsg)
	require.True(t, ok)
	assert.Equal(t, domain.FilterAll, loaded.filter)
	assert.Len(t, loaded.entries, len(domain.Anchors))

	m.Update(loaded)
	assert.Empty(t, m.Entries())

	settle(m, next)
	assert.Equal(t, domain.FilterRecent, m.Filter())
}

func TestBrowserModel_VisitAndBack(t *testing.T) {
	g, contexts := newTestGraph(t)
	m := NewBrowserModel(g, contexts)
	settle(m, m.Init())
	ctx := context.Background()

	selectNode(t, m, domain.AnchorProjects)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	settle(m, cmd)
	assert.Equal(t, "Now on Projects", m.Message)
	assert.False(t, m.MessageErr)

	cur, err := g.GetCurrentNode(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, domain.AnchorProjects, cur.ID)

	selectNode(t, m, domain.AnchorTopics)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	settle(m, cmd)

	_, cmd = m.Update(runes("b"))
	settle(m, cmd)
	assert.False(t, m.MessageErr, m.Message)

	cur, err = g.GetCurrentNode(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.AnchorProjects, cur.ID)
}

func TestBrowserModel_Yank(t *testing.T) {
	g, contexts := newTestGraph(t)
	ctx := context.Background()
	_, err := g.CreateNode(ctx, "Website", []string{domain.AnchorProjects}, false)
	require.NoError(t, err)

	m := NewBrowserModel(g, contexts)
	var copied string
	m.SetClipboard(func(s string) error {
		copied = s
		return nil
	})
	settle(m, m.Init())

	var siteID string
	for _, e := range m.Entries() {
		if e.Node.Name == "Website" {
			siteID = e.Node.ID
		}
	}
	require.NotEmpty(t, siteID)
	selectNode(t, m, siteID)

	_, cmd := m.Update(runes("y"))
	settle(m, cmd)
	assert.Equal(t, "Projects → Website", copied)
	assert.Contains(t, m.View(), "Projects → Website")
}

func TestBrowserModel_ToggleMembership(t *testing.T) {
	g, contexts := newTestGraph(t)
	ctx := context.Background()
	m := NewBrowserModel(g, contexts)
	settle(m, m.Init())
	selectNode(t, m, domain.AnchorTags)

	// No current context yet
	_, cmd := m.Update(runes("x"))
	settle(m, cmd)
	assert.True(t, m.MessageErr)

	c, err := contexts.CreateContext(ctx, "Focus")
	require.NoError(t, err)
	require.NoError(t, contexts.UseContext(ctx, c.ID))

	_, cmd = m.Update(runes("x"))
	settle(m, cmd)
	assert.False(t, m.MessageErr, m.Message)

	for _, e := range m.Entries() {
		assert.Equal(t, e.Node.ID == domain.AnchorTags, e.Selected, e.Node.Name)
	}
}

func TestBrowserModel_SwitchMessages(t *testing.T) {
	g, contexts := newTestGraph(t)
	m := NewBrowserModel(g, contexts)
	settle(m, m.Init())
	selectNode(t, m, domain.AnchorModes)

	_, cmd := m.Update(runes("n"))
	msg, ok := settle(m, cmd).(SwitchToCreateMsg)
	require.True(t, ok)
	require.NotNil(t, msg.Parent)
	assert.Equal(t, domain.AnchorModes, msg.Parent.ID)

	_, cmd = m.Update(runes("N"))
	root, ok := settle(m, cmd).(SwitchToCreateMsg)
	require.True(t, ok)
	assert.Nil(t, root.Parent)

	_, cmd = m.Update(runes("d"))
	del, ok := settle(m, cmd).(SwitchToDeleteMsg)
	require.True(t, ok)
	assert.Equal(t, domain.AnchorModes, del.Target.ID)
	assert.False(t, del.HasChildren)

	_, cmd = m.Update(runes("r"))
	_, ok = settle(m, cmd).(SwitchToRenameMsg)
	assert.True(t, ok)

	_, cmd = m.Update(runes("?"))
	_, ok = settle(m, cmd).(SwitchToHelpMsg)
	assert.True(t, ok)
}

func TestCreateModel_Submit(t *testing.T) {
	g, _ := newTestGraph(t)
	m := NewCreateModel(g)

	projects, err := g.GetNode(context.Background(), domain.AnchorProjects)
	require.NoError(t, err)
	m.SetParent(projects)

	typeText(m, "Website")
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	msg, ok := cmd().(SwitchToBrowserMsg)
	require.True(t, ok)
	assert.Equal(t, "Created Projects → Website", msg.Message)

	nodes, err := g.FindNodes(context.Background(), "website")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.True(t, nodes[0].Temp)
}

func TestCreateModel_ExtraParents(t *testing.T) {
	g, _ := newTestGraph(t)
	m := NewCreateModel(g)
	m.SetParent(nil)

	typeText(m, "Shared")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(m, "Projects, Topics")
	assert.Equal(t, []string{"Projects", "Topics"}, m.parentRefs())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, ok := cmd().(SwitchToBrowserMsg)
	require.True(t, ok)

	nodes, err := g.FindNodes(context.Background(), "shared")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	parents, err := g.GetParentNodeIDs(context.Background(), nodes[0].ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{domain.AnchorProjects, domain.AnchorTopics}, parents)
}

func TestCreateModel_EmptyName(t *testing.T) {
	g, _ := newTestGraph(t)
	m := NewCreateModel(g)
	m.SetParent(nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := cmd()
	_, ok := msg.(CreateErrMsg)
	require.True(t, ok)

	m.Update(msg)
	assert.True(t, m.MessageErr)
}

func TestRenameModel_Submit(t *testing.T) {
	g, _ := newTestGraph(t)
	ctx := context.Background()
	id, err := g.CreateNode(ctx, "Draft", nil, false)
	require.NoError(t, err)
	n, err := g.GetNode(ctx, id)
	require.NoError(t, err)

	m := NewRenameModel(g)
	m.SetTarget(*n)
	assert.Equal(t, "Draft", m.form.Value(0))

	typeText(m, " v2")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg, ok := cmd().(SwitchToBrowserMsg)
	require.True(t, ok)
	assert.Equal(t, "Renamed Draft to Draft v2", msg.Message)

	got, err := g.GetNode(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Draft v2", got.Name)
}

func TestDeleteModel_Cascade(t *testing.T) {
	g, _ := newTestGraph(t)
	ctx := context.Background()
	parent, err := g.CreateNode(ctx, "Parent", nil, false)
	require.NoError(t, err)
	_, err = g.CreateNode(ctx, "Child", []string{parent}, false)
	require.NoError(t, err)
	n, err := g.GetNode(ctx, parent)
	require.NoError(t, err)

	m := NewDeleteModel(g)
	m.Prepare(SwitchToDeleteMsg{Target: *n, HasChildren: true})

	// Without cascade the engine refuses
	_, cmd := m.Update(runes("y"))
	_, ok := cmd().(DeleteErrMsg)
	assert.True(t, ok)

	m.Update(runes("c"))
	assert.Contains(t, m.View(), "Every descendant")

	_, cmd = m.Update(runes("y"))
	msg, ok := cmd().(SwitchToBrowserMsg)
	require.True(t, ok)
	assert.Equal(t, "Deleted Parent and 1 descendant(s)", msg.Message)

	_, err = g.GetNode(ctx, parent)
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestDeleteModel_Cancel(t *testing.T) {
	g, _ := newTestGraph(t)
	m := NewDeleteModel(g)
	m.Prepare(SwitchToDeleteMsg{Target: domain.Node{ID: "x", Name: "X"}})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	msg, ok := cmd().(SwitchToBrowserMsg)
	require.True(t, ok)
	assert.Empty(t, msg.Message)
}

func TestPaginator(t *testing.T) {
	p := NewPaginator(3)
	p.SetTotal(10)

	for range 5 {
		p.CursorDown()
	}
	assert.Equal(t, 5, p.Cursor())
	start, end := p.VisibleRange()
	assert.Equal(t, 3, start)
	assert.Equal(t, 6, end)

	p.SetTotal(2)
	assert.Equal(t, 1, p.Cursor())
	assert.False(t, p.CursorDown())

	p.SetTotal(0)
	assert.Equal(t, 0, p.Cursor())
	assert.False(t, p.CursorUp())
}
