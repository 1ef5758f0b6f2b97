package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Box is an axis-aligned bounding box. Min is componentwise <= Max for any Box built
// through NewBox or NewBoxFromCenter.
type Box struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewBox creates a Box from two opposite corners in any order.
//
// Parameters:
//   - a, b: opposite corners of the box
//
// Returns:
//   - Box: the box with Min/Max normalized componentwise
func NewBox(a, b mgl32.Vec3) Box {
	var box Box
	for i := range 3 {
		box.Min[i] = min(a[i], b[i])
		box.Max[i] = max(a[i], b[i])
	}
	return box
}

// NewBoxFromCenter creates a Box centred on center extending halfExtents along each axis.
// Negative half-extents are treated as their absolute value.
//
// Parameters:
//   - center: the box center
//   - halfExtents: half the box size along each axis
//
// Returns:
//   - Box: the box spanning center ± halfExtents
func NewBoxFromCenter(center, halfExtents mgl32.Vec3) Box {
	return NewBox(center.Sub(halfExtents), center.Add(halfExtents))
}

// Size returns Max - Min.
func (b Box) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Box) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Contains reports whether p lies inside the box or on its boundary.
func (b Box) Contains(p mgl32.Vec3) bool {
	for i := range 3 {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Wrap teleports p to the opposite face on every axis where it has left the box.
// Axes are handled independently in x, y, z order: a coordinate strictly above Max
// becomes Min, one strictly below Min becomes Max. Points on a face are untouched.
//
// Parameters:
//   - p: the point to test
//
// Returns:
//   - mgl32.Vec3: the wrapped point
//   - bool: true if any axis was wrapped
func (b Box) Wrap(p mgl32.Vec3) (mgl32.Vec3, bool) {
	wrapped := false
	for i := range 3 {
		if p[i] > b.Max[i] {
			p[i] = b.Min[i]
			wrapped = true
		} else if p[i] < b.Min[i] {
			p[i] = b.Max[i]
			wrapped = true
		}
	}
	return p, wrapped
}
