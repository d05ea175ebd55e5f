package docstore

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitUserPath(t *testing.T) {
	uid, ok := SplitUserPath("users/abc/projects")
	require.True(t, ok)
	require.Equal(t, "abc", uid)

	_, ok = SplitUserPath("ideas")
	require.False(t, ok)
	_, ok = SplitUserPath("users")
	require.False(t, ok)
	_, ok = SplitUserPath("users//projects")
	require.False(t, ok)
}

func TestValidCollection(t *testing.T) {
	require.True(t, ValidCollection("ideas"))
	require.True(t, ValidCollection("users/u1/projects"))
	require.False(t, ValidCollection(""))
	require.False(t, ValidCollection("users/u1"))
	require.False(t, ValidCollection("ideas/"))
}

func TestDocument_Accessors(t *testing.T) {
	fields, err := DecodeFields([]byte(`{"n": 42, "f": 0.25, "b": true, "s": "x", "l": ["a", 1], "big": 1700000000123}`))
	require.NoError(t, err)
	d := Document{ID: "12", Fields: fields}

	n, ok := d.Int64("n")
	require.True(t, ok)
	require.Equal(t, int64(42), n)

	f, ok := d.Float64("f")
	require.True(t, ok)
	require.Equal(t, 0.25, f)

	big, ok := d.Int64("big")
	require.True(t, ok)
	require.Equal(t, int64(1700000000123), big)

	_, ok = d.Int64("s")
	require.False(t, ok)

	_, ok = d.Strings("l")
	require.False(t, ok, "mixed list is not a string list")

	b, ok := d.Bool("b")
	require.True(t, ok)
	require.True(t, b)

	id, ok := d.IDInt()
	require.True(t, ok)
	require.Equal(t, int64(12), id)

	_, ok = d.Int64("missing")
	require.False(t, ok)
	require.IsType(t, json.Number(""), fields["n"])
}

func TestDecodeFields_Empty(t *testing.T) {
	fields, err := DecodeFields(nil)
	require.NoError(t, err)
	require.Empty(t, fields)

	fields, err = DecodeFields([]byte("null"))
	require.NoError(t, err)
	require.NotNil(t, fields)
}

func TestMerge(t *testing.T) {
	base := map[string]any{"a": 1, "b": 2}
	out := Merge(base, map[string]any{"b": 3, "c": 4})
	require.Equal(t, map[string]any{"a": 1, "b": 3, "c": 4}, out)
	require.Equal(t, 2, base["b"])
}
