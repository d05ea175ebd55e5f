package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/upcycle/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ECDC4"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB347"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	pointsStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
)

func swatch(c model.Color) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("■")
}

func statusText(s model.ProjectStatus) string {
	switch s {
	case model.StatusDone:
		return successStyle.Render(s.String())
	case model.StatusInProgress:
		return titleStyle.Render(s.String())
	default:
		return warnStyle.Render(s.String())
	}
}

func success(format string, args ...any) {
	fmt.Println(successStyle.Render("✅ " + fmt.Sprintf(format, args...)))
}

func warn(format string, args ...any) {
	fmt.Println(warnStyle.Render("⚠️  " + fmt.Sprintf(format, args...)))
}
