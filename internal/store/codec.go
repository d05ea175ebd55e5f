package store

import (
	"github.com/existflow/upcycle/internal/docstore"
	"github.com/existflow/upcycle/internal/model"
)

// Decoding is total: every missing or mistyped field falls back to the
// defaults below instead of failing the load.

const (
	defaultCreatorName = "Anonim"
	defaultStatus      = model.StatusNotStarted
)

func str(d docstore.Document, key string) string {
	v, _ := d.String(key)
	return v
}

func strDefault(d docstore.Document, key, def string) string {
	if v, ok := d.String(key); ok {
		return v
	}
	return def
}

func int64Field(d docstore.Document, key string) int64 {
	v, _ := d.Int64(key)
	return v
}

func floatField(d docstore.Document, key string) float64 {
	v, _ := d.Float64(key)
	return v
}

func boolDefault(d docstore.Document, key string, def bool) bool {
	if v, ok := d.Bool(key); ok {
		return v
	}
	return def
}

func stringList(d docstore.Document, key string) []string {
	if v, ok := d.Strings(key); ok {
		return v
	}
	return []string{}
}

func colorField(d docstore.Document) model.Color {
	if v, ok := d.Int64("color"); ok {
		return model.ColorFromARGB(int32(v))
	}
	return model.DefaultColor
}

func decodeIdea(d docstore.Document) model.Idea {
	return model.Idea{
		ID:           int64Field(d, "id"),
		Title:        str(d, "title"),
		Difficulty:   str(d, "difficulty"),
		TimeRequired: str(d, "timeRequired"),
		Description:  str(d, "description"),
		Tools:        stringList(d, "tools"),
		Materials:    stringList(d, "materials"),
		Steps:        stringList(d, "steps"),
		Category:     str(d, "category"),
		Color:        colorField(d),
		ImageURL:     str(d, "imageUrl"),
	}
}

func encodeIdea(i model.Idea) map[string]any {
	return map[string]any{
		"id":           i.ID,
		"title":        i.Title,
		"difficulty":   i.Difficulty,
		"timeRequired": i.TimeRequired,
		"description":  i.Description,
		"tools":        nonNil(i.Tools),
		"materials":    nonNil(i.Materials),
		"steps":        nonNil(i.Steps),
		"category":     i.Category,
		"color":        i.Color.ARGB(),
		"imageUrl":     i.ImageURL,
	}
}

func decodeProject(d docstore.Document) model.Project {
	status := defaultStatus
	if raw, ok := d.String("status"); ok {
		status, _ = model.ParseProjectStatus(raw)
	}
	return model.Project{
		ID:            int64Field(d, "id"),
		Title:         str(d, "title"),
		Category:      str(d, "category"),
		Progress:      floatField(d, "progress"),
		MaterialReady: boolDefault(d, "isMaterialReady", true),
		Status:        status,
		Color:         colorField(d),
		Impact:        str(d, "impact"),
		Steps:         stringList(d, "steps"),
		ImageURL:      str(d, "imageUrl"),
	}
}

func encodeProject(p model.Project) map[string]any {
	return map[string]any{
		"id":              p.ID,
		"title":           p.Title,
		"category":        p.Category,
		"progress":        p.Progress,
		"isMaterialReady": p.MaterialReady,
		"status":          p.Status.String(),
		"color":           p.Color.ARGB(),
		"impact":          p.Impact,
		"steps":           nonNil(p.Steps),
		"imageUrl":        p.ImageURL,
	}
}

func decodeInventoryItem(d docstore.Document) model.InventoryItem {
	return model.InventoryItem{
		ID:        int64Field(d, "id"),
		Name:      str(d, "name"),
		Category:  str(d, "category"),
		DateAdded: str(d, "dateAdded"),
		Weight:    str(d, "weight"),
		Status:    str(d, "status"),
	}
}

func encodeInventoryItem(i model.InventoryItem) map[string]any {
	return map[string]any{
		"id":        i.ID,
		"name":      i.Name,
		"category":  i.Category,
		"dateAdded": i.DateAdded,
		"weight":    i.Weight,
		"status":    i.Status,
	}
}

func decodePost(d docstore.Document) model.CommunityPost {
	return model.CommunityPost{
		ID:          int64Field(d, "id"),
		Title:       str(d, "title"),
		CreatorName: strDefault(d, "creatorName", defaultCreatorName),
		Category:    str(d, "category"),
		Impact:      str(d, "impact"),
		Likes:       int(int64Field(d, "likes")),
		Color:       colorField(d),
		ImageURL:    str(d, "imageUrl"),
	}
}

func encodePost(p model.CommunityPost, createdAt int64) map[string]any {
	return map[string]any{
		"id":          p.ID,
		"title":       p.Title,
		"creatorName": p.CreatorName,
		"category":    p.Category,
		"impact":      p.Impact,
		"likes":       p.Likes,
		"color":       p.Color.ARGB(),
		"imageUrl":    p.ImageURL,
		"createdAt":   createdAt,
	}
}

func decodeActivity(d docstore.Document, nowMillis int64) model.ActivityEvent {
	typ := model.ActivityScan
	if raw, ok := d.String("type"); ok {
		typ, _ = model.ParseActivityType(raw)
	}
	ts, ok := d.Int64("timestamp")
	if !ok {
		ts = nowMillis
	}
	return model.ActivityEvent{
		ID:          str(d, "id"),
		Type:        typ,
		Title:       str(d, "title"),
		Description: str(d, "description"),
		Timestamp:   ts,
	}
}

func encodeActivity(e model.ActivityEvent) map[string]any {
	return map[string]any{
		"id":          e.ID,
		"type":        e.Type.String(),
		"title":       e.Title,
		"description": e.Description,
		"timestamp":   e.Timestamp,
	}
}

func decodeProfile(d docstore.Document, userID string) model.Profile {
	return model.Profile{
		UserID:        userID,
		Username:      strDefault(d, "username", model.DefaultUsername),
		Points:        int(int64Field(d, "points")),
		Level:         strDefault(d, "level", model.DefaultLevel),
		ClaimedBadges: stringList(d, "claimedBadges"),
	}
}

func newProfileFields(userID, username, email string, createdAt int64) map[string]any {
	return map[string]any{
		"uid":       userID,
		"username":  username,
		"email":     email,
		"points":    0,
		"level":     model.DefaultLevel,
		"createdAt": createdAt,
	}
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
