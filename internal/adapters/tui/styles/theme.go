package styles

import (
	"github.com/charmbracelet/lipgloss"

	"trailhead/internal/domain"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Anchor colors, one per category
	AnchorProjects = lipgloss.Color("#6366F1") // Indigo
	AnchorTrails   = lipgloss.Color("#8B5CF6") // Violet
	AnchorTopics   = lipgloss.Color("#EC4899") // Pink
	AnchorModes    = lipgloss.Color("#F97316") // Orange
	AnchorTags     = lipgloss.Color("#14B8A6") // Teal

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Filter tabs
	FilterActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true).
			Padding(0, 1)

	FilterInactive = lipgloss.NewStyle().
			Foreground(Muted).
			Padding(0, 1)

	// Tree node styles
	NodeAnchor = lipgloss.NewStyle().
			Bold(true)

	NodeRoot = lipgloss.NewStyle().
			Foreground(Secondary)

	NodeChild = lipgloss.NewStyle()

	NodeTemp = lipgloss.NewStyle().
			Foreground(Warning).
			Italic(true)

	NodeSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	NodeCurrent = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// Tree indicators
	TreeBranch   = lipgloss.NewStyle().Foreground(Muted)
	TreeIndent   = "│ "
	TreeMember   = "● "
	TreeCurrent  = "▶ "
	TreeNoMarker = "  "

	// Breadcrumb of the selected node
	Breadcrumb = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// AnchorColor returns the color of a category anchor, Primary for other nodes
func AnchorColor(nodeID string) lipgloss.Color {
	switch nodeID {
	case domain.AnchorProjects:
		return AnchorProjects
	case domain.AnchorTrails:
		return AnchorTrails
	case domain.AnchorTopics:
		return AnchorTopics
	case domain.AnchorModes:
		return AnchorModes
	case domain.AnchorTags:
		return AnchorTags
	default:
		return Primary
	}
}

// IsAnchor reports whether nodeID is one of the category anchors
func IsAnchor(nodeID string) bool {
	for _, a := range domain.Anchors {
		if a.ID == nodeID {
			return true
		}
	}
	return false
}
