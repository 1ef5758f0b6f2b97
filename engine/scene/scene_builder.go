package scene

import (
	"math/rand"

	"github.com/Carmen-Shannon/polydrift/common"
	"github.com/Carmen-Shannon/polydrift/engine/camera"
	"github.com/Carmen-Shannon/polydrift/engine/model"
	"github.com/Carmen-Shannon/polydrift/engine/scroll"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering. Scenes start active.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithRand injects the random source used to place drifters and pick velocities.
//
// Parameters:
//   - rng: the random source
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRand(rng *rand.Rand) SceneBuilderOption {
	return func(s *scene) {
		s.rng = rng
	}
}

// WithSeed is shorthand for WithRand(rand.New(rand.NewSource(seed))).
//
// Parameters:
//   - seed: the random seed
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSeed(seed int64) SceneBuilderOption {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithCamera uses an existing camera instead of the default one.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.cam = cam
	}
}

// WithCount sets the number of drifters.
//
// Parameters:
//   - n: drifter count; negative values are treated as 0
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCount(n int) SceneBuilderOption {
	return func(s *scene) {
		s.count = max(n, 0)
	}
}

// WithShape selects the polyhedron and its radius.
//
// Parameters:
//   - shape: the polyhedron
//   - radius: circumscribed radius
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShape(shape model.Shape, radius float32) SceneBuilderOption {
	return func(s *scene) {
		s.shape = shape
		s.radius = radius
	}
}

// WithVelocityRanges sets the widths of the intervals velocity components are drawn from.
//
// Parameters:
//   - angular: angular velocity range in radians per second
//   - linear: linear velocity range in world units per second; 0 spins drifters in place
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithVelocityRanges(angular, linear float32) SceneBuilderOption {
	return func(s *scene) {
		s.angularRange = angular
		s.linearRange = linear
	}
}

// WithVolume uses a fixed recycling volume.
//
// Parameters:
//   - a, b: opposite corners, normalized by the box constructor
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithVolume(a, b mgl32.Vec3) SceneBuilderOption {
	return func(s *scene) {
		box := common.NewBox(a, b)
		s.fixedVolume = &box
		s.volumeMode = VolumeModeFixed
	}
}

// WithCameraVolume makes the recycling volume follow the camera.
//
// Parameters:
//   - halfExtents: half size of the box on each axis
//   - forwardOffset: Z offset of the box center from the camera
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCameraVolume(halfExtents mgl32.Vec3, forwardOffset float32) SceneBuilderOption {
	return func(s *scene) {
		s.volumeMode = VolumeModeCameraRelative
		s.halfExtents = halfExtents
		s.forwardOffset = forwardOffset
	}
}

// WithVolumeMode switches between the default fixed and camera-relative volumes.
//
// Parameters:
//   - mode: the volume mode
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithVolumeMode(mode VolumeMode) SceneBuilderOption {
	return func(s *scene) {
		s.volumeMode = mode
	}
}

// WithScroll sets the scroll scale and the scroll position at construction time.
// The camera height is left as configured; see WithScrollTracker to anchor it.
//
// Parameters:
//   - scale: camera world units per pixel of scroll
//   - initialOffset: the host's scroll position right now
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithScroll(scale, initialOffset float32) SceneBuilderOption {
	return func(s *scene) {
		s.scrollScale = scale
		s.initialScroll = initialOffset
	}
}

// WithScrollTracker ties the scene to a scroll tracker: the scroll scale and initial
// position come from the tracker and the camera starts at tr.CameraY(), so the camera
// height always equals tr.CameraY() as the engine feeds tr.Position() to Tick.
//
// Parameters:
//   - tr: the tracker the engine scrolls
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithScrollTracker(tr scroll.Tracker) SceneBuilderOption {
	return func(s *scene) {
		y := tr.CameraY()
		s.scrollScale = tr.CameraScale()
		s.initialScroll = tr.Position()
		s.cameraY = &y
	}
}

// WithColors sets the initial foreground and background colors.
//
// Parameters:
//   - fg: outline color
//   - bg: fill, clear and fog color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithColors(fg, bg colorful.Color) SceneBuilderOption {
	return func(s *scene) {
		s.foreground = fg
		s.background = bg
	}
}

// WithFrameWorkers sets the number of worker goroutines used to build model matrices.
// Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFrameWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		s.frameWorkers = max(n, 1)
	}
}

// WithChunkSize sets how many drifters each frame task handles.
//
// Parameters:
//   - n: drifters per task (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithChunkSize(n int) SceneBuilderOption {
	return func(s *scene) {
		s.chunkSize = max(n, 1)
	}
}
