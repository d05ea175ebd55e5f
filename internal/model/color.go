package model

import "fmt"

// Color is a display colour in 0xAARRGGBB layout.
//
// Documents persist it as a signed 32-bit integer with the same bit
// pattern, so 0xFF2196F3 is stored as -14575885.
type Color uint32

// DefaultColor is used when a document carries no usable colour.
const DefaultColor Color = 0xFF8CA993

// ColorFromARGB converts the stored signed form back into a Color.
func ColorFromARGB(v int32) Color {
	return Color(uint32(v))
}

// ARGB returns the signed 32-bit form written to documents.
func (c Color) ARGB() int32 {
	return int32(uint32(c))
}

// Alpha returns the alpha channel.
func (c Color) Alpha() uint8 {
	return uint8(c >> 24)
}

// Hex returns the RGB part as "#RRGGBB", dropping alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%06X", uint32(c)&0xFFFFFF)
}
