package views

import "trailhead/internal/domain"

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Messages for view switching

// SwitchToCreateMsg opens the create view. Parent is nil for a new root.
type SwitchToCreateMsg struct {
	Parent *domain.Node
}

// SwitchToRenameMsg opens the rename view for Target
type SwitchToRenameMsg struct {
	Target domain.Node
}

// SwitchToDeleteMsg opens the delete confirmation for Target
type SwitchToDeleteMsg struct {
	Target      domain.Node
	HasChildren bool
}

type SwitchToHelpMsg struct{}

// SwitchToBrowserMsg returns to the browser, optionally with a status message
type SwitchToBrowserMsg struct {
	Message string
	Err     bool
}
