package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"trailhead/internal/adapters/tui/styles"
	"trailhead/internal/application/commands"
	"trailhead/internal/ports"
)

var cascadeKey = key.NewBinding(
	key.WithKeys("c"),
	key.WithHelp("c", "toggle cascade"),
)

// DeleteModel is the model for the delete confirmation view
type DeleteModel struct {
	ConfirmationModel
	graph       ports.NodeGraph
	hasChildren bool
	cascade     bool
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel(graph ports.NodeGraph) *DeleteModel {
	return &DeleteModel{
		ConfirmationModel: NewConfirmationModel(),
		graph:             graph,
	}
}

// Prepare resets the view for a new target
func (m *DeleteModel) Prepare(msg SwitchToDeleteMsg) {
	target := msg.Target
	m.SetTarget(&target)
	m.hasChildren = msg.HasChildren
	m.cascade = false
	m.ClearMessage()
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.hasChildren && key.Matches(msg, cascadeKey) {
			m.cascade = !m.cascade
			return m, nil
		}
		handled, cmd := m.HandleKeyMsg(msg,
			m.doDelete,
			func() tea.Msg { return SwitchToBrowserMsg{} },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

func (m *DeleteModel) doDelete() tea.Msg {
	if m.Target == nil {
		return DeleteErrMsg{Err: fmt.Errorf("no target selected")}
	}

	res, err := commands.NewDeleteCommand(m.graph, m.Target.ID, m.cascade).Execute(context.Background())
	if err != nil {
		return DeleteErrMsg{Err: err}
	}
	return SwitchToBrowserMsg{Message: res.Message}
}

// DeleteErrMsg indicates an error during deletion
type DeleteErrMsg struct {
	Err error
}

// View renders the delete confirmation view
func (m *DeleteModel) View() string {
	v := NewViewBuilder().
		Title("Delete Confirmation").
		Line(styles.ErrorMsg.Render("This action cannot be undone!")).
		BlankLine().
		Line(RenderTargetInfo(m.Target, "Delete")).
		BlankLine()

	if m.hasChildren {
		if m.cascade {
			v.Line(styles.ErrorMsg.Render("  Every descendant will be deleted too."))
		} else {
			v.Muted("  This node has children. Press c to delete them as well.")
		}
		v.BlankLine()
	}

	v.Message(m.Message, m.MessageErr)
	v.Raw(RenderConfirmPrompt("Are you sure?"))
	return v.String()
}
