// Package tui is the interactive project checklist.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/existflow/upcycle/internal/logger"
	"github.com/existflow/upcycle/internal/model"
	"github.com/existflow/upcycle/internal/store"
)

// Pane represents which pane is focused
type Pane int

const (
	PaneProjects Pane = iota
	PaneSteps
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
	ModeHelp
)

// ProjectStore is the part of the domain store the checklist drives
type ProjectStore interface {
	Projects() []model.Project
	LoadProjects(ctx context.Context) error
	StartProject(ctx context.Context, id int64) (model.Project, error)
	SaveProjectProgress(ctx context.Context, id int64, checklist *model.Checklist) (model.Project, error)
	Points() int
	Subscribe() (<-chan store.Change, func())
}

// Model is the main TUI model
type Model struct {
	ctx   context.Context
	store ProjectStore
	log   *logger.Logger

	projects []model.Project // filtered view of the store
	changes  <-chan store.Change
	cancel   func()

	// Checklist of the selected project
	checklist    *model.Checklist
	checklistFor int64
	dirty        bool

	// UI state
	width      int
	height     int
	pane       Pane
	mode       Mode
	projCursor int
	stepCursor int
	busy       bool

	input      textinput.Model
	filterText string

	message string
	failed  bool
}

// NewModel creates a checklist over the store's projects. When focus is
// non-zero the cursor starts on that project.
func NewModel(ctx context.Context, s ProjectStore, focus int64) Model {
	log := logger.WithFields(logger.F("component", "tui"))
	log.Info("Initializing TUI model")

	ti := textinput.New()
	ti.Placeholder = "Cari proyek..."
	ti.CharLimit = 64
	ti.Width = 40

	changes, cancel := s.Subscribe()
	m := Model{
		ctx:     ctx,
		store:   s,
		log:     log,
		changes: changes,
		cancel:  cancel,
		pane:    PaneProjects,
		input:   ti,
	}
	m.reload()

	if focus != 0 {
		for i, p := range m.projects {
			if p.ID == focus {
				m.projCursor = i
				m.pane = PaneSteps
				break
			}
		}
	}
	m.resetChecklist()

	log.Debug("TUI model initialized", logger.F("projects", len(m.projects)))
	return m
}

// Close cancels the store subscription
func (m Model) Close() {
	if m.cancel != nil {
		m.cancel()
	}
}

// reload pulls the mirrored projects through the active filter
func (m *Model) reload() {
	all := m.store.Projects()
	needle := strings.ToLower(strings.TrimSpace(m.filterText))

	filtered := make([]model.Project, 0, len(all))
	for _, p := range all {
		if needle == "" || strings.Contains(strings.ToLower(p.Title), needle) {
			filtered = append(filtered, p)
		}
	}
	m.projects = filtered
	m.projCursor = clamp(m.projCursor, len(m.projects))
}

// currentProject returns the selected project
func (m *Model) currentProject() *model.Project {
	if len(m.projects) == 0 {
		return nil
	}
	return &m.projects[m.projCursor]
}

// resetChecklist seeds the checklist from the selected project's stored
// progress, discarding unsaved toggles
func (m *Model) resetChecklist() {
	m.dirty = false
	m.stepCursor = 0
	p := m.currentProject()
	if p == nil {
		m.checklist = nil
		m.checklistFor = 0
		return
	}
	m.checklist = model.NewChecklist(*p)
	m.checklistFor = p.ID
}
