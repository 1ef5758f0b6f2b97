package palette

import (
	"fmt"

	"github.com/Carmen-Shannon/polydrift/common"
	"github.com/lucasb-eyer/go-colorful"
)

// Scheme is a named foreground/background color pair.
type Scheme struct {
	Name       string
	Foreground colorful.Color
	Background colorful.Color
}

// NewScheme parses hex colors into a Scheme.
//
// Parameters:
//   - name: display name of the scheme
//   - foreground: hex color for outlines, e.g. "#ffffff"
//   - background: hex color for fills, fog and clear
//
// Returns:
//   - Scheme: the parsed scheme
//   - error: error if either color fails to parse
func NewScheme(name, foreground, background string) (Scheme, error) {
	fg, err := common.ParseColor(foreground)
	if err != nil {
		return Scheme{}, fmt.Errorf("scheme %s foreground: %w", name, err)
	}
	bg, err := common.ParseColor(background)
	if err != nil {
		return Scheme{}, fmt.Errorf("scheme %s background: %w", name, err)
	}
	return Scheme{Name: name, Foreground: fg, Background: bg}, nil
}

func mustScheme(name, foreground, background string) Scheme {
	s, err := NewScheme(name, foreground, background)
	if err != nil {
		panic(err)
	}
	return s
}

// DefaultSchemes returns the built-in palette. The first entry is white on black.
func DefaultSchemes() []Scheme {
	return []Scheme{
		mustScheme("mono", "#ffffff", "#000000"),
		mustScheme("paper", "#1b1b1b", "#f4f1ea"),
		mustScheme("amber", "#ffb000", "#1a1200"),
		mustScheme("ocean", "#7fdbff", "#001f3f"),
		mustScheme("moss", "#a8d672", "#14210d"),
		mustScheme("rose", "#ff5c8a", "#1f0a12"),
	}
}
