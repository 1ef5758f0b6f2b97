package common

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses a "#rrggbb" or "#rgb" color string.
//
// Parameters:
//   - s: the hex color string
//
// Returns:
//   - colorful.Color: the parsed color
//   - error: error if s is not a valid hex color
func ParseColor(s string) (colorful.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

// MustParseColor is ParseColor for compile-time constants. It panics on invalid input.
func MustParseColor(s string) colorful.Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// RGBA converts a color plus alpha to the float32 layout used by GPU uniforms.
//
// Parameters:
//   - c: the color
//   - alpha: alpha in [0, 1]
//
// Returns:
//   - [4]float32: red, green, blue, alpha
func RGBA(c colorful.Color, alpha float32) [4]float32 {
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), alpha}
}
