package scene

import (
	"math/rand"

	"github.com/Carmen-Shannon/polydrift/common"
	"github.com/Carmen-Shannon/polydrift/engine/camera"
	"github.com/Carmen-Shannon/polydrift/engine/drifter"
	"github.com/Carmen-Shannon/polydrift/engine/scroll"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultCount is the number of drifters in a scene.
	DefaultCount = 20

	// DefaultAngularRange is the width of the interval angular velocity components are drawn from.
	DefaultAngularRange float32 = 1

	// DefaultLinearRange is the width of the interval linear velocity components are drawn from.
	DefaultLinearRange float32 = 1

	// DefaultForwardOffset places the camera-relative volume center this far along Z from the camera.
	DefaultForwardOffset float32 = -11

	// DefaultScrollScale maps the default scroll page onto the default camera travel.
	DefaultScrollScale = -scroll.DefaultRange / scroll.DefaultPageHeight

	// FogNear is the fog start distance magnitude; the fog end is padded by a fifth of it.
	FogNear float32 = 20
)

// DefaultHalfExtents is the half size of the camera-relative volume.
var DefaultHalfExtents = mgl32.Vec3{10, 12, 9}

// DefaultFixedVolume returns the fixed recycling volume for a camera: 20 wide, 24 tall,
// from z = -10 up to one unit short of the near plane.
//
// Parameters:
//   - cam: the scene camera
//
// Returns:
//   - common.Box: the volume
func DefaultFixedVolume(cam camera.Camera) common.Box {
	return common.NewBox(
		mgl32.Vec3{-10, -12, -10},
		mgl32.Vec3{10, 12, cam.Position().Z() - cam.Near() - 1},
	)
}

// NewFog returns the linear fog for a camera and volume.
//
// Parameters:
//   - cam: the scene camera
//   - volume: the recycling volume
//
// Returns:
//   - Fog: fog with Near = -FogNear and Far = near plane + volume depth + FogNear/5
func NewFog(cam camera.Camera, volume common.Box) Fog {
	return Fog{
		Near: -FogNear,
		Far:  cam.Near() + volume.Size().Z() + FogNear/5,
	}
}

// Populate creates count drifters placed uniformly inside volume with velocity components
// drawn uniformly from [-range/2, range/2). Draws happen in a fixed order, so the same
// seed always produces the same pool.
//
// Parameters:
//   - rng: the random source
//   - count: number of drifters
//   - volume: placement volume
//   - angularRange: width of the angular velocity interval
//   - linearRange: width of the linear velocity interval
//
// Returns:
//   - []drifter.Drifter: the drifters, IDs 0..count-1
func Populate(rng *rand.Rand, count int, volume common.Box, angularRange, linearRange float32) []drifter.Drifter {
	size := volume.Size()
	out := make([]drifter.Drifter, 0, count)
	for i := range count {
		var pos, angular, linear mgl32.Vec3
		for a := range 3 {
			pos[a] = size[a]*rng.Float32() + volume.Min[a]
		}
		for a := range 3 {
			angular[a] = rng.Float32()*angularRange - angularRange/2
		}
		for a := range 3 {
			linear[a] = rng.Float32()*linearRange - linearRange/2
		}
		out = append(out, drifter.NewDrifter(
			drifter.WithID(uint64(i)),
			drifter.WithPosition(pos),
			drifter.WithAngularVelocity(angular),
			drifter.WithLinearVelocity(linear),
		))
	}
	return out
}
