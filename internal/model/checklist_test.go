package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChecklist_Progress(t *testing.T) {
	p := Project{Steps: []string{"a", "b", "c", "d"}, Progress: 0.5}

	c := NewChecklist(p)
	require.Equal(t, 4, c.Len())
	require.True(t, c.Checked(0))
	require.True(t, c.Checked(1))
	require.False(t, c.Checked(2))
	require.InDelta(t, 0.5, c.Progress(), 1e-9)

	c.Toggle(2)
	require.InDelta(t, 0.75, c.Progress(), 1e-9)
	require.False(t, c.Complete())

	c.Set(3, true)
	require.True(t, c.Complete())
	require.InDelta(t, 1.0, c.Progress(), 1e-9)

	c.Set(9, true)
	require.False(t, c.Checked(9))
}

func TestChecklist_StartedProjectHasNothingChecked(t *testing.T) {
	p := Project{Steps: []string{"a", "b", "c"}, Progress: StartedProgress}
	require.Zero(t, NewChecklist(p).CheckedCount())
}

func TestChecklist_SavedProgressReopens(t *testing.T) {
	for n := 1; n <= 60; n++ {
		steps := make([]string, n)
		for k := 0; k <= n; k++ {
			saved := NewChecklist(Project{Steps: steps})
			for i := 0; i < k; i++ {
				saved.Set(i, true)
			}
			reopened := NewChecklist(Project{Steps: steps, Progress: saved.Progress()})
			require.Equal(t, k, reopened.CheckedCount(), "%d of %d steps", k, n)
		}
	}
}

func TestChecklist_StartedProgressFloors(t *testing.T) {
	// 0.05 of 10 steps is half a step and stays unchecked
	steps := make([]string, 10)
	require.Zero(t, NewChecklist(Project{Steps: steps, Progress: StartedProgress}).CheckedCount())
}

func TestChecklist_NoSteps(t *testing.T) {
	c := NewChecklist(Project{Progress: 1})
	require.Zero(t, c.Len())
	require.Zero(t, c.Progress())
	require.False(t, c.Complete())
}
