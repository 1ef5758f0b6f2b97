package material

import (
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// Params is an immutable snapshot of a Material, taken once per frame so the renderer
// never races with palette changes.
type Params struct {
	Name          string
	Color         colorful.Color
	Opacity       float32
	Wireframe     bool
	Transparent   bool
	DepthTest     bool
	DepthWrite    bool
	PolygonOffset bool
	OffsetFactor  float32
	OffsetUnits   float32
}

// RGBA returns the color and opacity in GPU float layout.
func (p Params) RGBA() [4]float32 {
	return [4]float32{float32(p.Color.R), float32(p.Color.G), float32(p.Color.B), p.Opacity}
}

// material is the implementation of the Material interface.
type material struct {
	mu     *sync.Mutex
	params Params
}

// Material defines the interface for a flat-colored render material.
//
// Only the color is mutable after construction; it changes when the palette changes.
// The draw state (wireframe, blending, depth test and write, polygon offset) is fixed
// at construction and consumed by the renderer when it builds pipelines.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Color retrieves the current color.
	//
	// Returns:
	//   - colorful.Color: the color
	Color() colorful.Color

	// SetColor replaces the color.
	//
	// Parameters:
	//   - c: the new color
	SetColor(c colorful.Color)

	// Opacity retrieves the alpha used when the material is transparent.
	//
	// Returns:
	//   - float32: alpha in [0, 1]
	Opacity() float32

	// Wireframe reports whether the material draws edges only.
	Wireframe() bool

	// Transparent reports whether the material is alpha blended.
	Transparent() bool

	// DepthTest reports whether fragments are depth tested.
	DepthTest() bool

	// DepthWrite reports whether fragments write depth.
	DepthWrite() bool

	// PolygonOffset reports whether depth is biased, and by how much.
	//
	// Returns:
	//   - bool: true if polygon offset is enabled
	//   - float32: slope factor
	//   - float32: constant units
	PolygonOffset() (bool, float32, float32)

	// Snapshot copies the material's state.
	//
	// Returns:
	//   - Params: the current parameters
	Snapshot() Params
}

var _ Material = &material{}

// NewMaterial creates a Material. Defaults to an opaque white solid material with depth
// test and depth write enabled.
//
// Parameters:
//   - options: functional options to configure the material
//
// Returns:
//   - Material: the newly created material
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		mu: &sync.Mutex{},
		params: Params{
			Color:      colorful.Color{R: 1, G: 1, B: 1},
			Opacity:    1,
			DepthTest:  true,
			DepthWrite: true,
		},
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// NewOutline creates the wireframe material drawn in the foreground color.
//
// Parameters:
//   - fg: foreground color
//
// Returns:
//   - Material: the outline material
func NewOutline(fg colorful.Color) Material {
	return NewMaterial(
		WithName("outline"),
		WithColor(fg),
		WithWireframe(true),
	)
}

// NewFill creates the filled-shell material drawn in the background color. It is
// transparent, depth tested, does not write depth, and is pushed back by a polygon
// offset of factor 1 so outline edges on the same faces stay visible.
//
// Parameters:
//   - bg: background color
//
// Returns:
//   - Material: the fill material
func NewFill(bg colorful.Color) Material {
	return NewMaterial(
		WithName("fill"),
		WithColor(bg),
		WithTransparent(true),
		WithDepthWrite(false),
		WithPolygonOffset(1, 0),
	)
}

func (m *material) Name() string {
	return m.params.Name
}

func (m *material) Color() colorful.Color {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.params.Color
}

func (m *material) SetColor(c colorful.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.params.Color = c
}

func (m *material) Opacity() float32 {
	return m.params.Opacity
}

func (m *material) Wireframe() bool {
	return m.params.Wireframe
}

func (m *material) Transparent() bool {
	return m.params.Transparent
}

func (m *material) DepthTest() bool {
	return m.params.DepthTest
}

func (m *material) DepthWrite() bool {
	return m.params.DepthWrite
}

func (m *material) PolygonOffset() (bool, float32, float32) {
	return m.params.PolygonOffset, m.params.OffsetFactor, m.params.OffsetUnits
}

func (m *material) Snapshot() Params {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.params
}
