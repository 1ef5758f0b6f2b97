package drifter

import (
	"github.com/go-gl/mathgl/mgl32"
)

// DrifterBuilderOption is a functional option for configuring a Drifter during construction.
type DrifterBuilderOption func(*drifter)

// WithID sets the ID of the Drifter.
//
// Parameters:
//   - id: identifier within the pool
//
// Returns:
//   - DrifterBuilderOption: functional option to set the ID
func WithID(id uint64) DrifterBuilderOption {
	return func(d *drifter) {
		d.id = id
	}
}

// WithPosition sets the initial position.
//
// Parameters:
//   - p: world-space position
//
// Returns:
//   - DrifterBuilderOption: functional option to set the position
func WithPosition(p mgl32.Vec3) DrifterBuilderOption {
	return func(d *drifter) {
		d.transform.Position = p
	}
}

// WithRotation sets the initial Euler rotation in radians.
//
// Parameters:
//   - r: rotation angles
//
// Returns:
//   - DrifterBuilderOption: functional option to set the rotation
func WithRotation(r mgl32.Vec3) DrifterBuilderOption {
	return func(d *drifter) {
		d.transform.Rotation = r
	}
}

// WithScale sets the initial scale.
//
// Parameters:
//   - s: scale factors
//
// Returns:
//   - DrifterBuilderOption: functional option to set the scale
func WithScale(s mgl32.Vec3) DrifterBuilderOption {
	return func(d *drifter) {
		d.transform.Scale = s
	}
}

// WithAngularVelocity sets the constant rotation rate in radians per second.
//
// Parameters:
//   - v: angular velocity per axis
//
// Returns:
//   - DrifterBuilderOption: functional option to set the angular velocity
func WithAngularVelocity(v mgl32.Vec3) DrifterBuilderOption {
	return func(d *drifter) {
		d.angularVelocity = v
	}
}

// WithLinearVelocity sets the constant translation rate in world units per second.
// Leave unset for drifters that only spin in place.
//
// Parameters:
//   - v: linear velocity
//
// Returns:
//   - DrifterBuilderOption: functional option to set the linear velocity
func WithLinearVelocity(v mgl32.Vec3) DrifterBuilderOption {
	return func(d *drifter) {
		d.linearVelocity = v
	}
}
