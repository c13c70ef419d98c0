package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"trailhead/internal/adapters/tui/styles"
	"trailhead/internal/application/commands"
	"trailhead/internal/domain"
	"trailhead/internal/ports"
)

const (
	fieldName = iota
	fieldParents
)

var tempKey = key.NewBinding(
	key.WithKeys("ctrl+t"),
	key.WithHelp("ctrl+t", "toggle temp"),
)

// CreateModel is the model for the create node view
type CreateModel struct {
	ViewState
	graph  ports.NodeGraph
	form   *InputForm
	parent *domain.Node
	temp   bool
}

// NewCreateModel creates a new create view model
func NewCreateModel(graph ports.NodeGraph) *CreateModel {
	return &CreateModel{
		graph: graph,
		form: NewInputForm(
			NewInputField("Name", "e.g. Refactor importer", 120),
			NewInputField("Other parents", "comma-separated names or ids", 0),
		),
	}
}

// SetParent resets the form for a node under parent. A nil parent creates a root.
func (m *CreateModel) SetParent(parent *domain.Node) {
	m.parent = parent
	m.temp = false
	m.form.Reset()
	m.ClearMessage()
}

// Init initializes the create view
func (m *CreateModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the create view
func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case CreateErrMsg:
		m.SetMessage(msg.Err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		case key.Matches(msg, m.form.Keys.Submit):
			return m, m.submit
		case key.Matches(msg, tempKey):
			m.temp = !m.temp
			return m, nil
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

// parentRefs returns the selected parent followed by any extra refs typed in
func (m *CreateModel) parentRefs() []string {
	var refs []string
	if m.parent != nil {
		refs = append(refs, m.parent.ID)
	}
	for ref := range strings.SplitSeq(m.form.Value(fieldParents), ",") {
		if ref = strings.TrimSpace(ref); ref != "" {
			refs = append(refs, ref)
		}
	}
	return refs
}

func (m *CreateModel) submit() tea.Msg {
	cmd := commands.NewCreateNodeCommand(m.graph, m.form.Value(fieldName), m.parentRefs(), m.temp)
	res, err := cmd.Execute(context.Background())
	if err != nil {
		return CreateErrMsg{Err: err}
	}
	return SwitchToBrowserMsg{Message: res.Message}
}

// CreateErrMsg indicates an error during creation
type CreateErrMsg struct {
	Err error
}

// View renders the create view
func (m *CreateModel) View() string {
	title := "New Root Node"
	if m.parent != nil {
		title = "New Node"
	}
	v := NewViewBuilder().Title(title)

	if m.parent != nil {
		v.Line(styles.InputLabel.Render("Under: ") + m.parent.Name).BlankLine()
	}

	v.Line(m.form.RenderField(fieldName)).
		BlankLine().
		Line(m.form.RenderField(fieldParents)).
		BlankLine()

	temp := "[ ] temp"
	if m.temp {
		temp = styles.NodeTemp.Render("[x] temp")
	}
	v.Line(temp).BlankLine()

	v.Message(m.Message, m.MessageErr)
	v.Raw(m.form.RenderHelp("create", RenderKeyHelp(tempKey)))
	return v.String()
}
