package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Perspective creates a perspective projection matrix for WebGPU clip space.
// Depth maps to [0, 1] rather than OpenGL's [-1, 1], which is why mgl32.Perspective is not used.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	out := mgl32.Ident4()

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
	return out
}

// BuildModelMatrix constructs a 4x4 model matrix from position, Euler rotation, and scale.
// The rotation order is X * Y * Z, matching the default Euler order of common web 3D
// libraries so that rotations accumulated per axis read the same way.
//
// Parameters:
//   - pos: translation in world space
//   - rot: rotation angles in radians around each axis
//   - scale: scale factors along each axis
//
// Returns:
//   - mgl32.Mat4: the column-major model matrix
func BuildModelMatrix(pos, rot, scale mgl32.Vec3) mgl32.Mat4 {
	a := float32(math.Cos(float64(rot[0])))
	b := float32(math.Sin(float64(rot[0])))
	c := float32(math.Cos(float64(rot[1])))
	d := float32(math.Sin(float64(rot[1])))
	e := float32(math.Cos(float64(rot[2])))
	f := float32(math.Sin(float64(rot[2])))

	ae, af, be, bf := a*e, a*f, b*e, b*f

	var out mgl32.Mat4
	out[0] = (c * e) * scale[0]
	out[1] = (af + be*d) * scale[0]
	out[2] = (bf - ae*d) * scale[0]

	out[4] = (-c * f) * scale[1]
	out[5] = (ae - bf*d) * scale[1]
	out[6] = (be + af*d) * scale[1]

	out[8] = d * scale[2]
	out[9] = (-b * c) * scale[2]
	out[10] = (a * c) * scale[2]

	out[12] = pos[0]
	out[13] = pos[1]
	out[14] = pos[2]
	out[15] = 1
	return out
}

// Smoothstep is the Hermite interpolation used for linear fog: 0 at or below edge0,
// 1 at or above edge1.
func Smoothstep(edge0, edge1, x float32) float32 {
	if edge1 == edge0 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := (x - edge0) / (edge1 - edge0)
	t = max(0, min(1, t))
	return t * t * (3 - 2*t)
}
