package material

import (
	"github.com/lucasb-eyer/go-colorful"
)

// MaterialBuilderOption is a functional option for configuring a Material via NewMaterial.
type MaterialBuilderOption func(*material)

// WithName sets the name of the Material.
//
// Parameters:
//   - name: the material identifier
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.params.Name = name
	}
}

// WithColor sets the initial color.
//
// Parameters:
//   - c: the color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option to a material
func WithColor(c colorful.Color) MaterialBuilderOption {
	return func(m *material) {
		m.params.Color = c
	}
}

// WithOpacity sets the alpha used for transparent blending.
//
// Parameters:
//   - opacity: alpha in [0, 1]
//
// Returns:
//   - MaterialBuilderOption: a function that applies the opacity option to a material
func WithOpacity(opacity float32) MaterialBuilderOption {
	return func(m *material) {
		m.params.Opacity = opacity
	}
}

// WithWireframe draws edges only.
//
// Parameters:
//   - wireframe: true for edge rendering
//
// Returns:
//   - MaterialBuilderOption: a function that applies the wireframe option to a material
func WithWireframe(wireframe bool) MaterialBuilderOption {
	return func(m *material) {
		m.params.Wireframe = wireframe
	}
}

// WithTransparent enables alpha blending.
//
// Parameters:
//   - transparent: true to blend
//
// Returns:
//   - MaterialBuilderOption: a function that applies the transparent option to a material
func WithTransparent(transparent bool) MaterialBuilderOption {
	return func(m *material) {
		m.params.Transparent = transparent
	}
}

// WithDepthTest toggles depth testing.
//
// Parameters:
//   - enabled: true to test depth
//
// Returns:
//   - MaterialBuilderOption: a function that applies the depth test option to a material
func WithDepthTest(enabled bool) MaterialBuilderOption {
	return func(m *material) {
		m.params.DepthTest = enabled
	}
}

// WithDepthWrite toggles depth writes.
//
// Parameters:
//   - enabled: true to write depth
//
// Returns:
//   - MaterialBuilderOption: a function that applies the depth write option to a material
func WithDepthWrite(enabled bool) MaterialBuilderOption {
	return func(m *material) {
		m.params.DepthWrite = enabled
	}
}

// WithPolygonOffset enables depth bias.
//
// Parameters:
//   - factor: slope-scaled bias
//   - units: constant bias
//
// Returns:
//   - MaterialBuilderOption: a function that applies the polygon offset option to a material
func WithPolygonOffset(factor, units float32) MaterialBuilderOption {
	return func(m *material) {
		m.params.PolygonOffset = true
		m.params.OffsetFactor = factor
		m.params.OffsetUnits = units
	}
}
