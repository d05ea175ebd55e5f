package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/upcycle/internal/model"
)

// Color palette
var (
	// Status colors
	NotStarted = lipgloss.Color("#FFB347") // Orange
	InProgress = lipgloss.Color("#4ECDC4") // Teal
	Completed  = lipgloss.Color("#95E1A3") // Green
	Failure    = lipgloss.Color("#FF6B6B") // Red

	// UI colors
	Primary   = lipgloss.Color("#2E7D32")
	Accent    = lipgloss.Color("#4ECDC4")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Accent).
			Padding(0, 1)

	SidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(Border).
			Padding(1, 1)

	DetailStyle = lipgloss.NewStyle().
			Padding(1, 2)

	ProjectItemStyle = lipgloss.NewStyle().
				Padding(0, 1)

	ProjectItemSelectedStyle = lipgloss.NewStyle().
					Padding(0, 1).
					Background(Surface).
					Bold(true)

	StepItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	StepItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	StepDoneStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Strikethrough(true).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Accent).
			Padding(1, 2)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Failure).
			Bold(true)
)

// StatusStyle returns the style for a project status
func StatusStyle(status model.ProjectStatus) lipgloss.Style {
	switch status {
	case model.StatusDone:
		return lipgloss.NewStyle().Foreground(Completed).Bold(true)
	case model.StatusInProgress:
		return lipgloss.NewStyle().Foreground(InProgress)
	default:
		return lipgloss.NewStyle().Foreground(NotStarted)
	}
}

// FormatStatus renders the stored status text in its color
func FormatStatus(status model.ProjectStatus) string {
	return StatusStyle(status).Render(status.String())
}

// ProjectColor renders s in the project's own card color
func ProjectColor(c model.Color, s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(s)
}
