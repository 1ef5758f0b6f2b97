package scene

import (
	"sync"

	"github.com/Carmen-Shannon/polydrift/common"
	"github.com/Carmen-Shannon/polydrift/engine/camera"
	"github.com/Carmen-Shannon/polydrift/engine/drifter"
	"github.com/go-gl/mathgl/mgl32"
)

// VolumeMode selects how the recycling volume follows the camera.
type VolumeMode int

const (
	// VolumeModeFixed keeps the volume where it was created.
	VolumeModeFixed VolumeMode = iota
	// VolumeModeCameraRelative recenters the volume on the camera every reposition.
	VolumeModeCameraRelative
)

func (m VolumeMode) String() string {
	if m == VolumeModeCameraRelative {
		return "camera"
	}
	return "fixed"
}

type updater struct {
	mu *sync.Mutex

	drifters []drifter.Drifter
	cam      camera.Camera

	mode          VolumeMode
	volume        common.Box
	volumeSet     bool
	halfExtents   mgl32.Vec3
	forwardOffset float32

	scrollScale float32
	lastScroll  float32
}

// Updater advances the drifter pool and repositions the camera once per frame.
//
// Advance and Reposition must be called from a single goroutine (the frame loop).
// Volume may be read from anywhere.
type Updater interface {
	// Advance integrates every drifter over elapsed seconds and wraps each one back into
	// the volume, axis by axis (x, then y, then z). A drifter exactly on a face is not
	// wrapped. Velocities are never changed.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous frame; not clamped
	Advance(dt float32)

	// Reposition moves the camera vertically by scrollScale times the change in scroll
	// position since the previous call, then recenters the volume in camera-relative mode.
	// It does not depend on elapsed time.
	//
	// Parameters:
	//   - scrollOffset: current scroll position in pixels, see scroll.Tracker.Position
	Reposition(scrollOffset float32)

	// Tick runs Reposition followed by Advance.
	//
	// Parameters:
	//   - dt: elapsed seconds
	//   - scrollOffset: current scroll position in pixels
	Tick(dt, scrollOffset float32)

	// Volume returns the current recycling volume.
	//
	// Returns:
	//   - common.Box: the volume
	Volume() common.Box

	// Mode returns how the volume follows the camera.
	Mode() VolumeMode

	// ScrollScale returns the camera travel in world units per pixel of scroll.
	ScrollScale() float32

	// LastScroll returns the scroll position seen by the most recent Reposition.
	LastScroll() float32
}

var _ Updater = &updater{}

// NewUpdater creates an Updater over the given drifters and camera. In camera-relative
// mode the volume is computed from the camera immediately. Without a volume option the
// volume is DefaultFixedVolume(cam).
//
// Parameters:
//   - drifters: the pool to advance
//   - cam: the camera to reposition
//   - options: functional options to configure the updater
//
// Returns:
//   - Updater: the newly created updater
func NewUpdater(drifters []drifter.Drifter, cam camera.Camera, options ...UpdaterBuilderOption) Updater {
	u := &updater{
		mu:            &sync.Mutex{},
		drifters:      drifters,
		cam:           cam,
		halfExtents:   DefaultHalfExtents,
		forwardOffset: DefaultForwardOffset,
		scrollScale:   DefaultScrollScale,
	}
	for _, option := range options {
		option(u)
	}
	switch {
	case u.mode == VolumeModeCameraRelative:
		u.volume = CameraRelativeVolume(cam.Position(), u.halfExtents, u.forwardOffset)
	case !u.volumeSet:
		u.volume = DefaultFixedVolume(cam)
	}
	return u
}

// CameraRelativeVolume computes the box centered forwardOffset along Z from the camera.
//
// Parameters:
//   - camPos: camera position
//   - halfExtents: half size of the box on each axis
//   - forwardOffset: Z offset of the box center from the camera
//
// Returns:
//   - common.Box: the volume
func CameraRelativeVolume(camPos, halfExtents mgl32.Vec3, forwardOffset float32) common.Box {
	return common.NewBoxFromCenter(camPos.Add(mgl32.Vec3{0, 0, forwardOffset}), halfExtents)
}

func (u *updater) Advance(dt float32) {
	box := u.Volume()
	for _, d := range u.drifters {
		d.Advance(dt)
		d.WrapInto(box)
	}
}

func (u *updater) Reposition(scrollOffset float32) {
	u.mu.Lock()
	delta := scrollOffset - u.lastScroll
	u.lastScroll = scrollOffset
	u.mu.Unlock()

	if delta != 0 {
		u.cam.Translate(mgl32.Vec3{0, u.scrollScale * delta, 0})
	}

	if u.mode == VolumeModeCameraRelative {
		box := CameraRelativeVolume(u.cam.Position(), u.halfExtents, u.forwardOffset)
		u.mu.Lock()
		u.volume = box
		u.mu.Unlock()
	}
}

func (u *updater) Tick(dt, scrollOffset float32) {
	u.Reposition(scrollOffset)
	u.Advance(dt)
}

func (u *updater) Volume() common.Box {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.volume
}

func (u *updater) Mode() VolumeMode {
	return u.mode
}

func (u *updater) ScrollScale() float32 {
	return u.scrollScale
}

func (u *updater) LastScroll() float32 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.lastScroll
}
