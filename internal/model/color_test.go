package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestColor_ARGBRoundTrip(t *testing.T) {
	for _, c := range []Color{DefaultColor, 0xFF2196F3, 0xFF000000, 0xFFFFFFFF, 0x00000000, 0x80123456} {
		require.Equal(t, c, ColorFromARGB(c.ARGB()))
	}
	require.Equal(t, int32(-14575885), Color(0xFF2196F3).ARGB())
	require.Equal(t, int32(-16777216), Color(0xFF000000).ARGB())
	require.Equal(t, int32(-1), Color(0xFFFFFFFF).ARGB())
}

func TestColor_Channels(t *testing.T) {
	c := Color(0x80A1B2C3)
	require.Equal(t, uint8(0x80), c.Alpha())
	require.Equal(t, "#A1B2C3", c.Hex())
}
