package browse

import (
	"testing"
	"time"

	"github.com/existflow/upcycle/internal/catalog"
	"github.com/existflow/upcycle/internal/model"
	"github.com/stretchr/testify/require"
)

func titles[T any](items []T, title func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, title(it))
	}
	return out
}

func ideaTitle(i model.Idea) string          { return i.Title }
func postTitle(p model.CommunityPost) string { return p.Title }

func TestFilterIdeas(t *testing.T) {
	ideas := catalog.SeedIdeas()

	require.Len(t, FilterIdeas(ideas, "", ""), 4)
	require.Len(t, FilterIdeas(ideas, "   ", ""), 4)

	// Keywords are OR-ed
	require.Equal(t, []string{"Pot Bunga Botol Gantung", "Organizer Meja"},
		titles(FilterIdeas(ideas, "POT meja", ""), ideaTitle))

	// Materials are searched too
	require.Equal(t, []string{"Dompet Koin Kemasan"}, titles(FilterIdeas(ideas, "sachet", ""), ideaTitle))

	require.Equal(t, []string{"Lampu Hias Toples"}, titles(FilterIdeas(ideas, "", "Kaca"), ideaTitle))
	require.Empty(t, FilterIdeas(ideas, "pot", "Kaca"))
}

func TestFilterPosts(t *testing.T) {
	posts := catalog.SeedPosts()

	require.Len(t, FilterPosts(posts, "", AllCategories), 6)
	require.Equal(t, []string{"Dompet Sachet Kopi", "Vas Bunga Botol"},
		titles(FilterPosts(posts, "", "Plastik"), postTitle))
	require.Equal(t, []string{"Rak Buku Kardus"}, titles(FilterPosts(posts, "rina", ""), postTitle))
}

func TestTopPosts(t *testing.T) {
	posts := catalog.SeedPosts()

	top := TopPosts(posts, 3)
	require.Equal(t, []string{"Rak Buku Kardus", "Tas Belanja Kain", "Dompet Sachet Kopi"}, titles(top, postTitle))
	require.Len(t, TopPosts(posts, 100), 6)
	require.Equal(t, "Dompet Sachet Kopi", posts[0].Title, "input is not reordered")
}

func TestByCategory(t *testing.T) {
	items := []model.InventoryItem{
		{ID: 1, Category: "Plastik"},
		{ID: 2, Category: "Kaca"},
		{ID: 3, Category: "Plastik"},
	}
	require.Len(t, InventoryByCategory(items, "Plastik"), 2)
	require.Empty(t, InventoryByCategory(items, "Logam"))
	require.Len(t, IdeasByCategory(catalog.SeedIdeas(), "Plastik"), 2)
}

func TestProjectsWithStatus(t *testing.T) {
	projects := []model.Project{
		{ID: 1, Status: model.StatusDone},
		{ID: 2, Status: model.StatusInProgress},
	}
	done := model.StatusDone
	require.Len(t, ProjectsWithStatus(projects, nil), 2)
	require.Equal(t, int64(1), ProjectsWithStatus(projects, &done)[0].ID)
}

func event(id string, at time.Time) model.ActivityEvent {
	return model.ActivityEvent{ID: id, Timestamp: at.UnixMilli()}
}

func TestGroupActivities(t *testing.T) {
	// Thursday
	now := time.Date(2024, 5, 16, 15, 0, 0, 0, time.UTC)

	events := []model.ActivityEvent{
		event("a", now.Add(-time.Hour)),
		event("b", now.Add(-2*time.Hour)),
		event("c", now.Add(-24*time.Hour)),
		event("d", time.Date(2024, 5, 13, 10, 0, 0, 0, time.UTC)),
		event("e", time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)),
	}

	groups := GroupActivities(events, now)
	require.Len(t, groups, 4)
	require.Equal(t, LabelToday, groups[0].Label)
	require.Len(t, groups[0].Events, 2)
	require.Equal(t, LabelYesterday, groups[1].Label)
	require.Equal(t, LabelThisWeek, groups[2].Label)
	require.Equal(t, "02 Mei 2024", groups[3].Label)
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 8, 20, 12, 0, 0, 0, time.UTC)

	require.Equal(t, "Baru saja", RelativeTime(now.Add(-30*time.Second), now))
	require.Equal(t, "5 menit lalu", RelativeTime(now.Add(-5*time.Minute), now))
	require.Equal(t, "3 jam lalu", RelativeTime(now.Add(-3*time.Hour-10*time.Minute), now))
	require.Equal(t, "Kemarin", RelativeTime(now.Add(-30*time.Hour), now))
	require.Equal(t, "17 Agu 2024", RelativeTime(now.Add(-72*time.Hour), now))
}

func TestActivityLabel(t *testing.T) {
	require.Equal(t, "Scan", ActivityLabel(model.ActivityScan))
	require.Equal(t, "Mulai Proyek", ActivityLabel(model.ActivityProjectStart))
	require.Equal(t, "Badge", ActivityLabel(model.ActivityBadgeUnlock))

	like := model.ActivityCommunityLike
	events := []model.ActivityEvent{{ID: "1", Type: model.ActivityScan}, {ID: "2", Type: like}}
	require.Len(t, FilterActivities(events, &like), 1)
	require.Len(t, FilterActivities(events, nil), 2)
}
