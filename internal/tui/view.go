package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/upcycle/internal/model"
)

const sidebarWidth = 30

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Memuat..."
	}

	mainContent := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), m.renderDetail())

	switch m.mode {
	case ModeFilter:
		mainContent = lipgloss.Place(
			m.width, m.height-2,
			lipgloss.Center, lipgloss.Center,
			m.renderFilterModal(),
			lipgloss.WithWhitespaceChars(" "),
		)
	case ModeHelp:
		mainContent = m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, m.renderStatusBar())
}

func (m Model) renderSidebar() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(Primary).Render("UpCycle") + "\n")
	b.WriteString(HelpStyle.Render("Proyek Saya") + "\n")
	b.WriteString(lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("─", sidebarWidth-4)) + "\n\n")

	if len(m.projects) == 0 {
		if m.filterText != "" {
			b.WriteString(HelpStyle.Render("Tidak ada yang cocok"))
		} else {
			b.WriteString(HelpStyle.Render("Belum ada proyek"))
		}
	}

	for i, p := range m.projects {
		cursor := "  "
		style := ProjectItemStyle
		if i == m.projCursor {
			cursor = "❯ "
			if m.pane == PaneProjects {
				style = ProjectItemSelectedStyle
			}
		}

		line := fmt.Sprintf("%s%-18s %3.0f%%", cursor, truncate(p.Title, 18), p.Progress*100)
		b.WriteString(style.Render(line) + "\n")
	}

	if m.filterText != "" {
		b.WriteString("\n" + HelpStyle.Render("filter: "+m.filterText))
	}

	return SidebarStyle.Width(sidebarWidth).Height(m.height - 2).Render(b.String())
}

func (m Model) renderDetail() string {
	width := m.width - sidebarWidth - 2
	if width < 20 {
		width = 20
	}
	p := m.currentProject()
	if p == nil {
		return DetailStyle.Width(width).Height(m.height - 2).Render(
			HelpStyle.Render("Adopsi ide atau postingan komunitas untuk memulai proyek."))
	}

	var b strings.Builder
	b.WriteString(ProjectColor(p.Color, "■ ") + lipgloss.NewStyle().Bold(true).Foreground(Accent).Render(p.Title) + "\n")
	b.WriteString(HelpStyle.Render(p.Category) + "  " + FormatStatus(p.Status) + "\n")
	if impact := p.StrippedImpact(); impact != "" {
		b.WriteString(HelpStyle.Render("Dampak: "+impact) + "\n")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("─", width-4)) + "\n\n")

	progress := p.Progress
	if m.checklist != nil && m.dirty {
		progress = m.checklist.Progress()
	}
	b.WriteString(fmt.Sprintf("%s %3.0f%%", progressBar(progress, 24), progress*100))
	if m.dirty {
		b.WriteString(HelpStyle.Render("  (belum disimpan)"))
	}
	b.WriteString("\n\n")

	if len(p.Steps) == 0 {
		b.WriteString(HelpStyle.Render("  Proyek ini tidak punya langkah."))
	}

	for i, step := range p.Steps {
		checked := m.checklist != nil && m.checklist.Checked(i)
		box := "[ ]"
		style := StepItemStyle
		if checked {
			box = "[x]"
			style = StepDoneStyle
		}
		cursor := "  "
		if i == m.stepCursor && m.pane == PaneSteps {
			cursor = "❯ "
			if !checked {
				style = StepItemSelectedStyle
			}
		}
		line := fmt.Sprintf("%s%s %d. %s", cursor, box, i+1, truncate(step, width-14))
		b.WriteString(style.Render(line) + "\n")
	}

	if p.Status == model.StatusNotStarted {
		b.WriteString("\n" + HelpStyle.Render("s untuk mulai mengerjakan"))
	}

	return DetailStyle.Width(width).Height(m.height - 2).Render(b.String())
}

func (m Model) renderStatusBar() string {
	left := fmt.Sprintf("⭐ %d poin", m.store.Points())
	if m.busy {
		left += "  ⏳"
	}

	msg := HelpStyle.Render("? bantuan  q keluar")
	if m.message != "" {
		if m.failed {
			msg = ErrorStyle.Render(m.message)
		} else {
			msg = lipgloss.NewStyle().Foreground(Completed).Render(m.message)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(msg) - 4
	if gap < 1 {
		gap = 1
	}
	return StatusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + msg)
}

func (m Model) renderFilterModal() string {
	content := lipgloss.NewStyle().Bold(true).Foreground(Accent).Render("Filter Proyek") + "\n\n"
	content += m.input.View() + "\n\n"
	content += HelpStyle.Render(fmt.Sprintf("%d proyek cocok", len(m.projects))) + "\n"
	content += HelpStyle.Render("enter simpan • esc hapus filter")
	return ModalStyle.Width(50).Render(content)
}

func (m Model) renderHelp() string {
	bindings := []struct {
		section string
		keys    []keyHelp
	}{
		{"Navigasi", []keyHelp{
			helpFor(keys.Up), helpFor(keys.Down), helpFor(keys.Left), helpFor(keys.Right), helpFor(keys.Tab),
		}},
		{"Aksi", []keyHelp{
			helpFor(keys.Toggle), helpFor(keys.Start), helpFor(keys.Save), helpFor(keys.Filter), helpFor(keys.Refresh),
		}},
		{"Lainnya", []keyHelp{helpFor(keys.Help), helpFor(keys.Quit)}},
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(Accent).Render("Pintasan Keyboard") + "\n")
	for _, group := range bindings {
		b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render(group.section) + "\n")
		for _, h := range group.keys {
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.key, h.desc))
		}
	}
	b.WriteString("\n" + HelpStyle.Render("Tekan tombol apa saja untuk menutup"))

	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, ModalStyle.Render(b.String()))
}
