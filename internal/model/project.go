package model

import (
	"strings"
	"time"
)

// ProjectStatus is the lifecycle state of a project
type ProjectStatus int

const (
	StatusNotStarted ProjectStatus = iota
	StatusInProgress
	StatusDone
)

// Stored representations of each status
const (
	statusNotStartedText = "Belum Dimulai"
	statusInProgressText = "Berjalan"
	statusDoneText       = "Selesai"
)

// String returns the stored representation of the status
func (s ProjectStatus) String() string {
	switch s {
	case StatusInProgress:
		return statusInProgressText
	case StatusDone:
		return statusDoneText
	default:
		return statusNotStartedText
	}
}

// ParseProjectStatus maps a stored string onto a status.
// Unknown values report false and yield StatusNotStarted.
func ParseProjectStatus(s string) (ProjectStatus, bool) {
	switch s {
	case statusNotStartedText:
		return StatusNotStarted, true
	case statusInProgressText:
		return StatusInProgress, true
	case statusDoneText:
		return StatusDone, true
	default:
		return StatusNotStarted, false
	}
}

const (
	// StartedProgress marks a project as started without any step checked
	StartedProgress = 0.05

	// CompletionPoints is awarded once when a project first reaches Done
	CompletionPoints = 100

	// ImpactPrefix is prepended to a post's impact when a project is adopted from it
	ImpactPrefix = "Menyelamatkan "

	// IdeaImpact is the impact text of projects adopted from an idea
	IdeaImpact = "Proyek dari Ide Pilihan"
)

// Project is a user's own piece of upcycling work
type Project struct {
	ID            int64
	Title         string
	Category      string
	Progress      float64 // 0.0 to 1.0
	MaterialReady bool
	Status        ProjectStatus
	Color         Color
	Impact        string
	Steps         []string
	ImageURL      string
}

// IdeaFallbackSteps is used when an adopted idea carries no steps
func IdeaFallbackSteps() []string {
	return []string{"Siapkan alat dan bahan", "Ikuti instruksi pengerjaan", "Finishing"}
}

// CommunityPlanSteps is the generic plan for a project adopted from a post
func CommunityPlanSteps(category string) []string {
	return []string{
		"Kumpulkan bahan " + category + " yang diperlukan.",
		"Bersihkan dan siapkan bahan.",
		"Ikuti panduan kreasi (lihat detail komunitas).",
		"Finishing dan hias sesuai selera.",
	}
}

// secondsID derives an id from the current time at second resolution
func secondsID(now time.Time) int64 {
	return now.Unix()
}

// ProjectFromCommunityPost builds a fresh project that recreates a post
func ProjectFromCommunityPost(post CommunityPost, now time.Time) Project {
	return Project{
		ID:            secondsID(now),
		Title:         post.Title,
		Category:      post.Category,
		Progress:      0,
		MaterialReady: true,
		Status:        StatusNotStarted,
		Color:         post.Color,
		Impact:        ImpactPrefix + post.Impact,
		Steps:         CommunityPlanSteps(post.Category),
		ImageURL:      post.ImageURL,
	}
}

// ProjectFromIdea builds a fresh project from an idea template
func ProjectFromIdea(idea Idea, now time.Time) Project {
	steps := IdeaFallbackSteps()
	if len(idea.Steps) > 0 {
		steps = append([]string(nil), idea.Steps...)
	}
	return Project{
		ID:            secondsID(now),
		Title:         idea.Title,
		Category:      idea.Category,
		Progress:      0,
		MaterialReady: true,
		Status:        StatusNotStarted,
		Color:         idea.Color,
		Impact:        IdeaImpact,
		Steps:         steps,
		ImageURL:      idea.ImageURL,
	}
}

// Start moves a project out of NotStarted. It reports false when the
// project was already started or finished.
func (p Project) Start() (Project, bool) {
	if p.Status != StatusNotStarted {
		return p, false
	}
	p.Status = StatusInProgress
	p.Progress = StartedProgress
	return p, true
}

// WithProgress applies a recomputed progress value. Reaching 1.0 marks the
// project Done; Done never goes back.
func (p Project) WithProgress(progress float64) Project {
	p.Progress = progress
	switch {
	case p.Status == StatusDone:
	case progress >= 1.0:
		p.Status = StatusDone
	default:
		p.Status = StatusInProgress
	}
	return p
}

// IsDone reports whether the project is finished
func (p Project) IsDone() bool {
	return p.Status == StatusDone
}

// StrippedImpact returns the impact without the adoption prefix
func (p Project) StrippedImpact() string {
	return strings.TrimPrefix(p.Impact, ImpactPrefix)
}
