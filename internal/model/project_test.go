package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func TestParseProjectStatus(t *testing.T) {
	for _, s := range []ProjectStatus{StatusNotStarted, StatusInProgress, StatusDone} {
		got, ok := ParseProjectStatus(s.String())
		require.True(t, ok)
		require.Equal(t, s, got)
	}

	got, ok := ParseProjectStatus("Dibatalkan")
	require.False(t, ok)
	require.Equal(t, StatusNotStarted, got)
}

func TestProjectFromIdea(t *testing.T) {
	idea := Idea{ID: 3, Title: "Lampu", Category: "Kaca", Color: 0xFF00BCD4, Steps: []string{"a", "b"}}

	p := ProjectFromIdea(idea, fixedNow)
	require.Equal(t, fixedNow.Unix(), p.ID)
	require.Equal(t, []string{"a", "b"}, p.Steps)
	require.Equal(t, StatusNotStarted, p.Status)
	require.Zero(t, p.Progress)
	require.True(t, p.MaterialReady)
	require.Equal(t, IdeaImpact, p.Impact)
	require.Equal(t, idea.Color, p.Color)

	idea.Steps = nil
	p = ProjectFromIdea(idea, fixedNow)
	require.Equal(t, []string{"Siapkan alat dan bahan", "Ikuti instruksi pengerjaan", "Finishing"}, p.Steps)
}

func TestProjectFromCommunityPost(t *testing.T) {
	post := CommunityPost{ID: 1, Title: "Rak", Category: "Kertas", Impact: "2kg Kardus", Color: 0xFFFFC107, ImageURL: "img"}

	p := ProjectFromCommunityPost(post, fixedNow)
	require.Equal(t, "Menyelamatkan 2kg Kardus", p.Impact)
	require.Len(t, p.Steps, 4)
	require.Contains(t, p.Steps[0], "Kertas")
	require.Equal(t, "img", p.ImageURL)

	shared := PostFromProject(p, "Sari", fixedNow)
	require.Equal(t, "2kg Kardus", shared.Impact)
	require.Equal(t, "Sari", shared.CreatorName)
	require.Zero(t, shared.Likes)
}

func TestProject_Lifecycle(t *testing.T) {
	p := Project{Steps: []string{"a", "b", "c"}}

	started, ok := p.Start()
	require.True(t, ok)
	require.Equal(t, StatusInProgress, started.Status)
	require.InDelta(t, StartedProgress, started.Progress, 1e-9)

	_, ok = started.Start()
	require.False(t, ok)

	done := started.WithProgress(1)
	require.True(t, done.IsDone())

	back := done.WithProgress(0.3)
	require.True(t, back.IsDone())
	require.InDelta(t, 0.3, back.Progress, 1e-9)

	// A save with nothing checked still counts as started
	require.Equal(t, StatusInProgress, p.WithProgress(0).Status)
}

func TestNewCommunityPost_Impact(t *testing.T) {
	require.Equal(t, "Poin: 50", NewCommunityPost("a", "b", DifficultyEasy, "c", fixedNow).Impact)
	require.Equal(t, "Poin: 100", NewCommunityPost("a", "b", DifficultyMedium, "c", fixedNow).Impact)
	require.Equal(t, "Poin: 200", NewCommunityPost("a", "b", DifficultyHard, "c", fixedNow).Impact)
	require.Equal(t, "Poin: 50", NewCommunityPost("a", "b", "Ekstrem", "c", fixedNow).Impact)
}
