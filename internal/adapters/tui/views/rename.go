package views

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"trailhead/internal/application/commands"
	"trailhead/internal/domain"
	"trailhead/internal/ports"
)

// RenameModel is the model for the rename view
type RenameModel struct {
	ViewState
	graph  ports.NodeGraph
	form   *InputForm
	target *domain.Node
}

// NewRenameModel creates a new rename view model
func NewRenameModel(graph ports.NodeGraph) *RenameModel {
	return &RenameModel{
		graph: graph,
		form:  NewInputForm(NewInputField("New name", "", 120)),
	}
}

// SetTarget prefills the form with the node's current name
func (m *RenameModel) SetTarget(n domain.Node) {
	m.target = &n
	m.form.Reset()
	m.form.SetValue(0, n.Name)
	m.form.Fields[0].Input.CursorEnd()
	m.ClearMessage()
}

// Init initializes the rename view
func (m *RenameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the rename view
func (m *RenameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case RenameErrMsg:
		m.SetMessage(msg.Err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		case key.Matches(msg, m.form.Keys.Submit):
			return m, m.submit
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *RenameModel) submit() tea.Msg {
	if m.target == nil {
		return SwitchToBrowserMsg{}
	}
	res, err := commands.NewRenameCommand(m.graph, m.target.ID, m.form.Value(0)).Execute(context.Background())
	if err != nil {
		return RenameErrMsg{Err: err}
	}
	return SwitchToBrowserMsg{Message: res.Message}
}

// RenameErrMsg indicates an error during rename
type RenameErrMsg struct {
	Err error
}

// View renders the rename view
func (m *RenameModel) View() string {
	v := NewViewBuilder().Title("Rename")
	v.Line(RenderTargetInfo(m.target, "Rename")).BlankLine()
	v.Line(m.form.RenderField(0)).BlankLine()
	v.Message(m.Message, m.MessageErr)
	v.Raw(m.form.RenderHelp("rename"))
	return v.String()
}
