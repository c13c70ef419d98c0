package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"trailhead/internal/adapters/tui/views"
	"trailhead/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewCreate
	ViewRename
	ViewDelete
	ViewHelp
)

// App is the main TUI application model
type App struct {
	log *zap.Logger

	state   ViewState
	browser *views.BrowserModel
	create  *views.CreateModel
	rename  *views.RenameModel
	delete  *views.DeleteModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(graph ports.NodeGraph, contexts ports.ContextStore, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		log:     log,
		state:   ViewBrowser,
		browser: views.NewBrowserModel(graph, contexts),
		create:  views.NewCreateModel(graph),
		rename:  views.NewRenameModel(graph),
		delete:  views.NewDeleteModel(graph),
		help:    views.NewHelpModel(),
	}
}

// Browser returns the browser view model
func (a *App) Browser() *views.BrowserModel {
	return a.browser
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.create.SetSize(msg.Width, msg.Height)
		a.rename.SetSize(msg.Width, msg.Height)
		a.delete.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToCreateMsg:
		a.state = ViewCreate
		a.create.SetParent(msg.Parent)
		return a, a.create.Init()

	case views.SwitchToRenameMsg:
		a.state = ViewRename
		a.rename.SetTarget(msg.Target)
		return a, a.rename.Init()

	case views.SwitchToDeleteMsg:
		a.state = ViewDelete
		a.delete.Prepare(msg)
		return a, a.delete.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		if msg.Message != "" {
			a.log.Info("tui action", zap.String("result", msg.Message))
			a.browser.SetMessage(msg.Message, msg.Err)
		}
		return a, a.browser.Reload()

	case views.DeleteErrMsg:
		a.log.Warn("delete failed", zap.Error(msg.Err))
		a.delete.SetMessage(msg.Err.Error(), true)
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewCreate:
		_, cmd = a.create.Update(msg)
	case ViewRename:
		_, cmd = a.rename.Update(msg)
	case ViewDelete:
		_, cmd = a.delete.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewCreate:
		return a.create.View()
	case ViewRename:
		return a.rename.View()
	case ViewDelete:
		return a.delete.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
