package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/upcycle/internal/model"
	"github.com/existflow/upcycle/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore keeps projects in memory and applies the store's status rules
type fakeStore struct {
	projects []model.Project
	points   int
	saveErr  error
	changes  chan store.Change
}

func newFakeStore(projects ...model.Project) *fakeStore {
	return &fakeStore{projects: projects, changes: make(chan store.Change, 4)}
}

func (f *fakeStore) Projects() []model.Project {
	return append([]model.Project(nil), f.projects...)
}

func (f *fakeStore) LoadProjects(context.Context) error { return nil }

func (f *fakeStore) StartProject(_ context.Context, id int64) (model.Project, error) {
	for i, p := range f.projects {
		if p.ID == id {
			started, _ := p.Start()
			f.projects[i] = started
			return started, nil
		}
	}
	return model.Project{}, store.ErrProjectNotFound
}

func (f *fakeStore) SaveProjectProgress(_ context.Context, id int64, c *model.Checklist) (model.Project, error) {
	if f.saveErr != nil {
		return model.Project{}, f.saveErr
	}
	for i, p := range f.projects {
		if p.ID == id {
			switch p.Status {
			case model.StatusDone:
				return p, nil
			case model.StatusNotStarted:
				return p, store.ErrProjectNotStarted
			}
			updated := p.WithProgress(c.Progress())
			if updated.IsDone() {
				f.points += model.CompletionPoints
			}
			f.projects[i] = updated
			return updated, nil
		}
	}
	return model.Project{}, store.ErrProjectNotFound
}

func (f *fakeStore) Points() int { return f.points }

func (f *fakeStore) Subscribe() (<-chan store.Change, func()) {
	return f.changes, func() {}
}

func project(id int64, title string, steps ...string) model.Project {
	return model.Project{ID: id, Title: title, Category: "Plastik", Status: model.StatusNotStarted, Steps: steps}
}

func startedProject(id int64, title string, steps ...string) model.Project {
	p, _ := project(id, title, steps...).Start()
	return p
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msg and runs any returned command once, feeding its result back
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd != nil {
		if out := cmd(); out != nil {
			next, _ = m.Update(out)
			m = next.(Model)
		}
	}
	return m
}

func TestModel_SaveCompletesProjectOnce(t *testing.T) {
	fs := newFakeStore(project(1, "Pot Botol", "Potong", "Hias"))
	m := NewModel(context.Background(), fs, 1)
	require.Equal(t, PaneSteps, m.pane)

	m = send(t, m, keyPress("s"))
	assert.Equal(t, model.StatusInProgress, fs.projects[0].Status)

	m = send(t, m, keyPress("x"))
	m = send(t, m, keyPress("j"))
	m = send(t, m, keyPress("x"))
	assert.True(t, m.dirty)

	m = send(t, m, keyPress("w"))
	assert.False(t, m.dirty)
	assert.Equal(t, model.StatusDone, fs.projects[0].Status)
	assert.Equal(t, model.CompletionPoints, fs.points)
	assert.Contains(t, m.message, "+100")

	// Steps of a finished project are locked
	m = send(t, m, keyPress("x"))
	assert.False(t, m.dirty)
	assert.Equal(t, "Proyek sudah selesai", m.message)
	assert.True(t, m.checklist.Checked(1))

	m = send(t, m, keyPress("w"))
	assert.Equal(t, model.StatusDone, fs.projects[0].Status)
	assert.Equal(t, model.CompletionPoints, fs.points)
	assert.NotContains(t, m.message, "+100")
}

func TestModel_StepsLockedUntilStarted(t *testing.T) {
	fs := newFakeStore(project(1, "Pot Botol", "Potong", "Hias"))
	m := NewModel(context.Background(), fs, 1)

	m = send(t, m, keyPress("x"))
	assert.False(t, m.dirty)
	assert.False(t, m.checklist.Checked(0))
	assert.Equal(t, "Mulai proyek dulu (s)", m.message)

	next, cmd := m.Update(keyPress("w"))
	assert.Nil(t, cmd)
	assert.Equal(t, model.StatusNotStarted, fs.projects[0].Status)
	assert.Equal(t, "Mulai proyek dulu (s)", next.(Model).message)
}

func TestModel_SaveFailureKeepsToggles(t *testing.T) {
	fs := newFakeStore(startedProject(1, "Pot Botol", "Potong", "Hias"))
	fs.saveErr = errors.New("offline")
	m := NewModel(context.Background(), fs, 1)

	m = send(t, m, keyPress("x"))
	m = send(t, m, keyPress("w"))

	assert.True(t, m.failed)
	assert.True(t, m.dirty)
	assert.True(t, m.checklist.Checked(0))
	assert.False(t, m.busy)
}

func TestModel_SaveWithoutChanges(t *testing.T) {
	fs := newFakeStore(startedProject(1, "Pot Botol", "Potong"))
	m := NewModel(context.Background(), fs, 1)

	next, cmd := m.Update(keyPress("w"))
	assert.Nil(t, cmd)
	assert.Equal(t, "Tidak ada perubahan", next.(Model).message)
}

func TestModel_MovingProjectDiscardsToggles(t *testing.T) {
	fs := newFakeStore(startedProject(1, "Pot Botol", "Potong"), startedProject(2, "Tas Kain", "Jahit"))
	m := NewModel(context.Background(), fs, 0)
	require.Equal(t, PaneProjects, m.pane)

	m = send(t, m, keyPress("tab"))
	m = send(t, m, keyPress("x"))
	require.True(t, m.dirty)

	m = send(t, m, keyPress("tab"))
	m = send(t, m, keyPress("down"))
	assert.False(t, m.dirty)
	assert.Equal(t, int64(2), m.checklistFor)
	assert.False(t, m.checklist.Checked(0))
}

func TestModel_StartAlreadyStarted(t *testing.T) {
	p := project(1, "Pot Botol", "Potong")
	p.Status = model.StatusInProgress
	fs := newFakeStore(p)
	m := NewModel(context.Background(), fs, 1)

	next, cmd := m.Update(keyPress("s"))
	assert.Nil(t, cmd)
	assert.Equal(t, "Proyek sudah dimulai", next.(Model).message)
}

func TestModel_Filter(t *testing.T) {
	fs := newFakeStore(project(1, "Pot Botol", "Potong"), project(2, "Tas Kain", "Jahit"))
	m := NewModel(context.Background(), fs, 0)

	m = send(t, m, keyPress("/"))
	require.Equal(t, ModeFilter, m.mode)
	m = send(t, m, keyPress("kain"))
	require.Len(t, m.projects, 1)
	assert.Equal(t, int64(2), m.checklistFor)

	m = send(t, m, keyPress("enter"))
	assert.Equal(t, ModeNormal, m.mode)
	assert.Len(t, m.projects, 1)

	m = send(t, m, keyPress("/"))
	m = send(t, m, keyPress("esc"))
	assert.Len(t, m.projects, 2)
}

func TestModel_StoreChangeRefreshesList(t *testing.T) {
	fs := newFakeStore(project(1, "Pot Botol", "Potong"))
	m := NewModel(context.Background(), fs, 0)

	fs.projects = append([]model.Project{project(2, "Tas Kain", "Jahit")}, fs.projects...)
	fs.changes <- store.Change{Collection: store.CollectionProjects}

	next, cmd := m.Update(m.Init()())
	m = next.(Model)
	assert.NotNil(t, cmd)
	require.Len(t, m.projects, 2)
	// Selection follows the project, not the index
	assert.Equal(t, int64(1), m.currentProject().ID)
}

func TestModel_View(t *testing.T) {
	fs := newFakeStore(project(1, "Pot Botol", "Potong"))
	m := NewModel(context.Background(), fs, 1)
	assert.Equal(t, "Memuat...", m.View())

	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()
	assert.Contains(t, view, "Pot Botol")
	assert.Contains(t, view, "Potong")
	assert.Contains(t, view, "Belum Dimulai")

	m = send(t, m, keyPress("?"))
	assert.Contains(t, m.View(), "Pintasan Keyboard")
	m = send(t, m, keyPress("q"))
	assert.Equal(t, ModeNormal, m.mode)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))
	assert.Equal(t, "Bo...", truncate("Botol Plastik", 5))
}
