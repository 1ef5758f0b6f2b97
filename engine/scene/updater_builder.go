package scene

import (
	"github.com/Carmen-Shannon/polydrift/common"
	"github.com/go-gl/mathgl/mgl32"
)

// UpdaterBuilderOption is a functional option for configuring an Updater.
type UpdaterBuilderOption func(u *updater)

// WithFixedVolume keeps the recycling volume at a fixed box.
//
// Parameters:
//   - box: the volume
//
// Returns:
//   - UpdaterBuilderOption: option function to apply
func WithFixedVolume(box common.Box) UpdaterBuilderOption {
	return func(u *updater) {
		u.mode = VolumeModeFixed
		u.volume = box
		u.volumeSet = true
	}
}

// WithCameraRelativeVolume recenters the volume on the camera after every reposition.
//
// Parameters:
//   - halfExtents: half size of the box on each axis
//   - forwardOffset: Z offset of the box center from the camera
//
// Returns:
//   - UpdaterBuilderOption: option function to apply
func WithCameraRelativeVolume(halfExtents mgl32.Vec3, forwardOffset float32) UpdaterBuilderOption {
	return func(u *updater) {
		u.mode = VolumeModeCameraRelative
		u.halfExtents = halfExtents
		u.forwardOffset = forwardOffset
	}
}

// WithScrollScale sets the camera travel in world units per pixel of scroll.
//
// Parameters:
//   - k: scale constant; negative values move the camera down as the page scrolls down
//
// Returns:
//   - UpdaterBuilderOption: option function to apply
func WithScrollScale(k float32) UpdaterBuilderOption {
	return func(u *updater) {
		u.scrollScale = k
	}
}

// WithInitialScroll records the scroll position at construction so the first Reposition
// sees no delta.
//
// Parameters:
//   - offset: scroll position in pixels
//
// Returns:
//   - UpdaterBuilderOption: option function to apply
func WithInitialScroll(offset float32) UpdaterBuilderOption {
	return func(u *updater) {
		u.lastScroll = offset
	}
}
