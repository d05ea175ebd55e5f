// Package browse provides the read-side views the app shows over the
// mirrored lists: search, the top of the feed, per-category shelves and
// the grouped activity history. Everything here is pure.
package browse

import (
	"sort"
	"strings"

	"github.com/existflow/upcycle/internal/model"
)

// AllCategories disables category filtering in FilterPosts
const AllCategories = "Semua"

// FilterIdeas returns the ideas matching any keyword of query in their
// title, category or materials, case-insensitively. A non-empty category
// must match exactly. An empty query matches everything.
func FilterIdeas(ideas []model.Idea, query, category string) []model.Idea {
	keywords := strings.Fields(strings.ToLower(query))

	out := make([]model.Idea, 0, len(ideas))
	for _, idea := range ideas {
		if category != "" && idea.Category != category {
			continue
		}
		if len(keywords) > 0 && !ideaMatches(idea, keywords) {
			continue
		}
		out = append(out, idea)
	}
	return out
}

func ideaMatches(idea model.Idea, keywords []string) bool {
	title := strings.ToLower(idea.Title)
	category := strings.ToLower(idea.Category)
	for _, k := range keywords {
		if strings.Contains(title, k) || strings.Contains(category, k) {
			return true
		}
		for _, m := range idea.Materials {
			if strings.Contains(strings.ToLower(m), k) {
				return true
			}
		}
	}
	return false
}

// FilterPosts returns the posts whose title or creator contains query.
// category AllCategories or "" keeps every category.
func FilterPosts(posts []model.CommunityPost, query, category string) []model.CommunityPost {
	q := strings.ToLower(query)

	out := make([]model.CommunityPost, 0, len(posts))
	for _, p := range posts {
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		if !strings.Contains(strings.ToLower(p.Title), q) && !strings.Contains(strings.ToLower(p.CreatorName), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// TopPosts returns up to n posts with the most likes. Ties keep feed order.
func TopPosts(posts []model.CommunityPost, n int) []model.CommunityPost {
	sorted := append([]model.CommunityPost(nil), posts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Likes > sorted[j].Likes
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// InventoryByCategory returns the items stored under a category
func InventoryByCategory(items []model.InventoryItem, category string) []model.InventoryItem {
	var out []model.InventoryItem
	for _, it := range items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

// IdeasByCategory returns the ideas recommended for a category
func IdeasByCategory(ideas []model.Idea, category string) []model.Idea {
	return FilterIdeas(ideas, "", category)
}

// ProjectsWithStatus filters projects by status; nil keeps all of them
func ProjectsWithStatus(projects []model.Project, status *model.ProjectStatus) []model.Project {
	if status == nil {
		return append([]model.Project(nil), projects...)
	}
	var out []model.Project
	for _, p := range projects {
		if p.Status == *status {
			out = append(out, p)
		}
	}
	return out
}
