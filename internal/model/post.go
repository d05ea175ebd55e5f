package model

import (
	"fmt"
	"time"
)

// FormPostColor is the colour given to posts written from scratch
const FormPostColor Color = 0xFF8CA993

// CommunityPost is a public record of a finished project
type CommunityPost struct {
	ID          int64
	Title       string
	CreatorName string
	Category    string
	Impact      string
	Likes       int
	Color       Color
	ImageURL    string
}

// PostFromProject shares a project with the community
func PostFromProject(p Project, creator string, now time.Time) CommunityPost {
	return CommunityPost{
		ID:          secondsID(now),
		Title:       p.Title,
		CreatorName: creator,
		Category:    p.Category,
		Impact:      p.StrippedImpact(),
		Likes:       0,
		Color:       p.Color,
	}
}

// NewCommunityPost builds a post from the create-post form. The impact
// advertises the points for the chosen difficulty.
func NewCommunityPost(title, category, difficulty, creator string, now time.Time) CommunityPost {
	return CommunityPost{
		ID:          secondsID(now),
		Title:       title,
		CreatorName: creator,
		Category:    category,
		Impact:      fmt.Sprintf("Poin: %d", DifficultyPoints(difficulty)),
		Likes:       0,
		Color:       FormPostColor,
	}
}
