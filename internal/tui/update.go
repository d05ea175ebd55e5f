package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/upcycle/internal/logger"
	"github.com/existflow/upcycle/internal/model"
	"github.com/existflow/upcycle/internal/store"
)

// storeChangedMsg is sent when a mirrored collection changed
type storeChangedMsg struct {
	collection store.Collection
}

// projectSavedMsg carries the outcome of saving a checklist
type projectSavedMsg struct {
	project model.Project
	wasDone bool
	err     error
}

// projectStartedMsg carries the outcome of starting a project
type projectStartedMsg struct {
	project model.Project
	err     error
}

// reloadedMsg carries the outcome of a manual reload
type reloadedMsg struct {
	err error
}

// Init starts listening for store changes
func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

// waitForChange blocks on the store subscription
func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	changes := m.changes
	return func() tea.Msg {
		c, ok := <-changes
		if !ok {
			return nil
		}
		return storeChangedMsg{collection: c.Collection}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case storeChangedMsg:
		if msg.collection == store.CollectionProjects {
			m.refreshProjects()
		}
		return m, m.waitForChange()

	case projectSavedMsg:
		m.busy = false
		if msg.err != nil {
			m.log.Warn("Failed to save progress", logger.Err(msg.err))
			m.setError(fmt.Sprintf("Gagal menyimpan: %v", msg.err))
			m.refreshProjects()
			return m, nil
		}
		m.dirty = false
		m.refreshProjects()
		if msg.project.IsDone() && !msg.wasDone {
			m.setMessage(fmt.Sprintf("Proyek selesai! +%d poin", model.CompletionPoints))
		} else {
			m.setMessage(fmt.Sprintf("Progres disimpan (%.0f%%)", msg.project.Progress*100))
		}
		return m, nil

	case projectStartedMsg:
		m.busy = false
		if msg.err != nil {
			m.log.Warn("Failed to start project", logger.Err(msg.err))
			m.setError(fmt.Sprintf("Gagal memulai: %v", msg.err))
			return m, nil
		}
		m.refreshProjects()
		m.setMessage("Proyek dimulai: " + msg.project.Title)
		return m, nil

	case reloadedMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(fmt.Sprintf("Gagal memuat: %v", msg.err))
			return m, nil
		}
		m.refreshProjects()
		m.setMessage("Proyek dimuat ulang")
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeFilter:
			return m.updateFilter(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Tab):
		if m.pane == PaneProjects {
			m.pane = PaneSteps
		} else {
			m.pane = PaneProjects
		}

	case key.Matches(msg, keys.Left):
		m.pane = PaneProjects

	case key.Matches(msg, keys.Right):
		m.pane = PaneSteps

	case key.Matches(msg, keys.Up):
		m.handleMove(-1)

	case key.Matches(msg, keys.Down):
		m.handleMove(1)

	case key.Matches(msg, keys.Toggle):
		if m.pane == PaneProjects {
			m.pane = PaneSteps
			return m, nil
		}
		m.handleToggle()

	case key.Matches(msg, keys.Start):
		return m.startProject()

	case key.Matches(msg, keys.Save):
		return m.saveProgress()

	case key.Matches(msg, keys.Refresh):
		if m.busy {
			return m, nil
		}
		m.busy = true
		ctx, s := m.ctx, m.store
		return m, func() tea.Msg {
			return reloadedMsg{err: s.LoadProjects(ctx)}
		}

	case key.Matches(msg, keys.Filter):
		m.mode = ModeFilter
		m.input.SetValue(m.filterText)
		m.input.Focus()
		return m, nil

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

// handleMove moves the cursor of the focused pane
func (m *Model) handleMove(delta int) {
	if m.pane == PaneSteps {
		if m.checklist != nil {
			m.stepCursor = clamp(m.stepCursor+delta, m.checklist.Len())
		}
		return
	}

	next := clamp(m.projCursor+delta, len(m.projects))
	if next == m.projCursor {
		return
	}
	if m.dirty {
		m.setMessage("Perubahan langkah dibatalkan")
	}
	m.projCursor = next
	m.resetChecklist()
}

// handleToggle flips the step under the cursor. Steps are editable only
// while the project is in progress.
func (m *Model) handleToggle() {
	if m.checklist == nil || m.checklist.Len() == 0 {
		return
	}
	if !m.editable() {
		return
	}
	m.checklist.Toggle(m.stepCursor)
	m.dirty = true
	m.message = ""
}

// editable reports whether the selected project accepts step changes and
// explains why not in the status bar
func (m *Model) editable() bool {
	p := m.currentProject()
	if p == nil {
		return false
	}
	switch p.Status {
	case model.StatusNotStarted:
		m.setMessage("Mulai proyek dulu (s)")
		return false
	case model.StatusDone:
		m.setMessage("Proyek sudah selesai")
		return false
	}
	return true
}

// startProject moves the selected project out of NotStarted
func (m Model) startProject() (tea.Model, tea.Cmd) {
	p := m.currentProject()
	if p == nil || m.busy {
		return m, nil
	}
	if p.Status != model.StatusNotStarted {
		m.setMessage("Proyek sudah dimulai")
		return m, nil
	}

	m.busy = true
	ctx, s, id := m.ctx, m.store, p.ID
	return m, func() tea.Msg {
		started, err := s.StartProject(ctx, id)
		return projectStartedMsg{project: started, err: err}
	}
}

// saveProgress persists the checklist of the selected project
func (m Model) saveProgress() (tea.Model, tea.Cmd) {
	p := m.currentProject()
	if p == nil || m.checklist == nil || m.busy {
		return m, nil
	}
	if !m.editable() {
		return m, nil
	}
	if !m.dirty {
		m.setMessage("Tidak ada perubahan")
		return m, nil
	}

	m.busy = true
	ctx, s, id, wasDone := m.ctx, m.store, p.ID, p.IsDone()
	checklist := m.checklist
	return m, func() tea.Msg {
		saved, err := s.SaveProjectProgress(ctx, id, checklist)
		return projectSavedMsg{project: saved, wasDone: wasDone, err: err}
	}
}

// updateFilter handles the title filter input
func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.input.Blur()
		m.input.SetValue("")
		m.applyFilter("")
		return m, nil

	case tea.KeyEnter:
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.applyFilter(m.input.Value())
	return m, cmd
}

// applyFilter narrows the project list to titles containing text
func (m *Model) applyFilter(text string) {
	selected := m.checklistFor
	m.filterText = text
	m.reload()
	if p := m.currentProject(); p == nil || p.ID != selected {
		m.resetChecklist()
	}
}

// refreshProjects re-reads the store, keeping the selection and any
// unsaved toggles of the selected project
func (m *Model) refreshProjects() {
	selected := m.checklistFor
	m.reload()
	for i, p := range m.projects {
		if p.ID == selected {
			m.projCursor = i
			if !m.dirty {
				m.resetChecklistKeepCursor()
			}
			return
		}
	}
	m.resetChecklist()
}

func (m *Model) resetChecklistKeepCursor() {
	cursor := m.stepCursor
	m.resetChecklist()
	if m.checklist != nil {
		m.stepCursor = clamp(cursor, m.checklist.Len())
	}
}

func (m *Model) setMessage(s string) {
	m.message = s
	m.failed = false
}

func (m *Model) setError(s string) {
	m.message = s
	m.failed = true
}
