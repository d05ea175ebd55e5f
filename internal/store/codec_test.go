package store

import (
	"strconv"
	"testing"

	"github.com/existflow/upcycle/internal/catalog"
	"github.com/existflow/upcycle/internal/docstore"
	"github.com/existflow/upcycle/internal/model"
	"github.com/stretchr/testify/require"
)

// stored passes fields through the JSON form written by every backend
func stored(t *testing.T, id int64, fields map[string]any) docstore.Document {
	t.Helper()
	data, err := docstore.EncodeFields(fields)
	require.NoError(t, err)
	decoded, err := docstore.DecodeFields(data)
	require.NoError(t, err)
	return docstore.Document{ID: strconv.FormatInt(id, 10), Fields: decoded}
}

func TestCodec_SeedColorsSurviveStorage(t *testing.T) {
	for _, idea := range catalog.SeedIdeas() {
		got := decodeIdea(stored(t, idea.ID, encodeIdea(idea)))
		require.Equal(t, idea.Color, got.Color, idea.Title)
	}

	for _, post := range catalog.SeedPosts() {
		got := decodePost(stored(t, post.ID, encodePost(post, 1714550400000)))
		require.Equal(t, post.Color, got.Color, post.Title)
		require.Equal(t, post.Likes, got.Likes)
	}
}

func TestCodec_ExtremeColorsSurviveStorage(t *testing.T) {
	for _, c := range []model.Color{0xFF000000, 0xFFFFFFFF, model.DefaultColor} {
		p := testProject(1, "a")
		p.Color = c
		got := decodeProject(stored(t, p.ID, encodeProject(p)))
		require.Equal(t, c, got.Color, c.Hex())

		post := model.CommunityPost{ID: 2, Title: "Lampu", CreatorName: "Rina", Color: c}
		require.Equal(t, c, decodePost(stored(t, post.ID, encodePost(post, 0))).Color, c.Hex())
	}
}
