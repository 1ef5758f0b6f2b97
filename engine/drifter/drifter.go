package drifter

import (
	"github.com/Carmen-Shannon/polydrift/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is the placement of a drifter in world space.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3 // Euler angles in radians, XYZ order
	Scale    mgl32.Vec3
}

// Part identifies which of a drifter's two renderables a Handle refers to.
type Part int

const (
	// PartOutline is the wireframe shell drawn in the foreground color.
	PartOutline Part = iota
	// PartFill is the filled shell drawn in the background color, hiding edges behind it.
	PartFill
)

func (p Part) String() string {
	switch p {
	case PartOutline:
		return "outline"
	case PartFill:
		return "fill"
	default:
		return "unknown"
	}
}

// Handle is one renderable view of a Drifter. Both handles of a drifter read the same
// transform, so the outline and fill can never disagree on placement.
type Handle interface {
	// Part returns which renderable this handle represents.
	Part() Part

	// Owner returns the drifter this handle belongs to.
	Owner() Drifter

	// Transform returns the owner's current transform.
	Transform() Transform
}

type handle struct {
	owner *drifter
	part  Part
}

func (h *handle) Part() Part {
	return h.part
}

func (h *handle) Owner() Drifter {
	return h.owner
}

func (h *handle) Transform() Transform {
	return h.owner.transform
}

type drifter struct {
	id        uint64
	transform Transform

	// constant for the lifetime of the drifter
	angularVelocity mgl32.Vec3
	linearVelocity  mgl32.Vec3

	outline handle
	fill    handle
}

// Drifter is a single polyhedron instance drifting through the field. It owns one
// transform and two renderable handles (outline and fill) that share it.
//
// A Drifter is not safe for concurrent mutation. The frame loop is its only writer.
type Drifter interface {
	// ID returns the drifter's identifier within its pool.
	//
	// Returns:
	//   - uint64: the ID
	ID() uint64

	// Transform returns a copy of the current transform.
	//
	// Returns:
	//   - Transform: position, rotation and scale
	Transform() Transform

	// Position returns the world-space position.
	Position() mgl32.Vec3

	// Rotation returns the Euler rotation in radians.
	Rotation() mgl32.Vec3

	// Scale returns the scale factors.
	Scale() mgl32.Vec3

	// AngularVelocity returns the rotation rate in radians per second per axis.
	AngularVelocity() mgl32.Vec3

	// LinearVelocity returns the translation rate in world units per second.
	LinearVelocity() mgl32.Vec3

	// SetPosition moves the drifter.
	//
	// Parameters:
	//   - p: new world-space position
	SetPosition(p mgl32.Vec3)

	// SetRotation sets the Euler rotation.
	//
	// Parameters:
	//   - r: new rotation in radians
	SetRotation(r mgl32.Vec3)

	// SetScale sets the scale factors.
	//
	// Parameters:
	//   - s: new scale
	SetScale(s mgl32.Vec3)

	// Advance integrates rotation and position over elapsed seconds:
	// rotation += angularVelocity*dt, position += linearVelocity*dt.
	// Advance(0) leaves the transform unchanged.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Advance(dt float32)

	// WrapInto teleports the drifter to the opposite face of box on every axis where it
	// has left the box. See common.Box.Wrap.
	//
	// Parameters:
	//   - box: the recycling volume
	//
	// Returns:
	//   - bool: true if the drifter was moved
	WrapInto(box common.Box) bool

	// ModelMatrix builds the model matrix for the current transform.
	//
	// Returns:
	//   - mgl32.Mat4: column-major model matrix
	ModelMatrix() mgl32.Mat4

	// Outline returns the wireframe handle.
	Outline() Handle

	// Fill returns the filled-shell handle.
	Fill() Handle
}

var _ Drifter = &drifter{}

// NewDrifter creates a Drifter configured with the given options.
// Scale defaults to (1, 1, 1); everything else defaults to zero.
//
// Parameters:
//   - options: functional options to configure the drifter
//
// Returns:
//   - Drifter: the newly created drifter
func NewDrifter(options ...DrifterBuilderOption) Drifter {
	d := &drifter{
		transform: Transform{Scale: mgl32.Vec3{1, 1, 1}},
	}
	for _, option := range options {
		option(d)
	}
	d.outline = handle{owner: d, part: PartOutline}
	d.fill = handle{owner: d, part: PartFill}
	return d
}

func (d *drifter) ID() uint64 {
	return d.id
}

func (d *drifter) Transform() Transform {
	return d.transform
}

func (d *drifter) Position() mgl32.Vec3 {
	return d.transform.Position
}

func (d *drifter) Rotation() mgl32.Vec3 {
	return d.transform.Rotation
}

func (d *drifter) Scale() mgl32.Vec3 {
	return d.transform.Scale
}

func (d *drifter) AngularVelocity() mgl32.Vec3 {
	return d.angularVelocity
}

func (d *drifter) LinearVelocity() mgl32.Vec3 {
	return d.linearVelocity
}

func (d *drifter) SetPosition(p mgl32.Vec3) {
	d.transform.Position = p
}

func (d *drifter) SetRotation(r mgl32.Vec3) {
	d.transform.Rotation = r
}

func (d *drifter) SetScale(s mgl32.Vec3) {
	d.transform.Scale = s
}

func (d *drifter) Advance(dt float32) {
	for i := range 3 {
		d.transform.Rotation[i] += d.angularVelocity[i] * dt
		d.transform.Position[i] += d.linearVelocity[i] * dt
	}
}

func (d *drifter) WrapInto(box common.Box) bool {
	p, wrapped := box.Wrap(d.transform.Position)
	if wrapped {
		d.transform.Position = p
	}
	return wrapped
}

func (d *drifter) ModelMatrix() mgl32.Mat4 {
	return common.BuildModelMatrix(d.transform.Position, d.transform.Rotation, d.transform.Scale)
}

func (d *drifter) Outline() Handle {
	return &d.outline
}

func (d *drifter) Fill() Handle {
	return &d.fill
}
