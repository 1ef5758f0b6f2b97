package scene

import (
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/polydrift/common"
	"github.com/Carmen-Shannon/polydrift/engine/camera"
	"github.com/Carmen-Shannon/polydrift/engine/drifter"
	"github.com/Carmen-Shannon/polydrift/engine/model"
	"github.com/Carmen-Shannon/polydrift/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// Scene defines the interface for a drift field: a camera, a shared polyhedron mesh, a fixed
// pool of drifters, the two materials they are drawn with, and fog.
//
// The embedded Updater methods are driven by the engine's frame goroutine. SetColors,
// SetActive and the read accessors are safe to call from any goroutine.
type Scene interface {
	Updater

	// Name returns the name of the scene.
	//
	// Returns:
	//   - string: the scene name
	Name() string

	// Active returns whether the scene is ticked and rendered.
	//
	// Returns:
	//   - bool: true if the scene is active
	Active() bool

	// SetActive sets whether the scene is ticked and rendered.
	//
	// Parameters:
	//   - active: true to activate
	SetActive(active bool)

	// Camera returns the scene camera.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Mesh returns the polyhedron shared by every drifter.
	//
	// Returns:
	//   - model.Mesh: the mesh
	Mesh() model.Mesh

	// Drifters returns the drifter pool. The slice is owned by the scene; do not mutate
	// drifters outside the frame goroutine.
	//
	// Returns:
	//   - []drifter.Drifter: the drifters
	Drifters() []drifter.Drifter

	// Outline returns the wireframe material.
	Outline() material.Material

	// Fill returns the fill material.
	Fill() material.Material

	// Fog returns the current fog.
	Fog() Fog

	// Background returns the clear color.
	Background() colorful.Color

	// SetColors applies a palette: outline color = fg, fill color = bg, clear color = bg
	// and fog color = bg. No validation is performed.
	//
	// Parameters:
	//   - fg: foreground color
	//   - bg: background color
	SetColors(fg, bg colorful.Color)

	// Frame snapshots the scene for rendering.
	//
	// Returns:
	//   - Frame: the snapshot
	Frame() Frame
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	cam      camera.Camera
	mesh     model.Mesh
	drifters []drifter.Drifter
	updater  Updater

	outline    material.Material
	fill       material.Material
	fog        Fog
	background colorful.Color

	// construction inputs
	rng           *rand.Rand
	count         int
	shape         model.Shape
	radius        float32
	angularRange  float32
	linearRange   float32
	fixedVolume   *common.Box
	volumeMode    VolumeMode
	halfExtents   mgl32.Vec3
	forwardOffset float32
	scrollScale   float32
	initialScroll float32
	cameraY       *float32
	foreground    colorful.Color

	// framePool builds model matrices in parallel chunks; workers persist across frames.
	framePool    worker.DynamicWorkerPool
	frameWorkers int
	chunkSize    int
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene bootstraps a drift field. With no options it reproduces the classic layout:
// 20 unit icosahedra, white outlines on black, a camera at (0, 0, 10) with a 45 degree fov,
// and a fixed volume from (-10, -12, -10) to (10, 12, 8).
//
// Drifter placement and velocities come from the injected random source (see WithRand),
// so two scenes built from equally seeded sources are identical.
//
// Parameters:
//   - name: the name of the scene, "scene" when empty
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:            &sync.RWMutex{},
		name:          common.Coalesce(name, "scene"),
		active:        true,
		count:         DefaultCount,
		shape:         model.ShapeIcosahedron,
		radius:        1,
		angularRange:  DefaultAngularRange,
		linearRange:   DefaultLinearRange,
		halfExtents:   DefaultHalfExtents,
		forwardOffset: DefaultForwardOffset,
		scrollScale:   DefaultScrollScale,
		foreground:    colorful.Color{R: 1, G: 1, B: 1},
		background:    colorful.Color{},
		frameWorkers:  max(runtime.NumCPU()-1, 1),
		chunkSize:     8,
	}

	for _, option := range options {
		option(s)
	}

	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.cam == nil {
		s.cam = camera.NewCamera()
	}
	if s.cameraY != nil {
		p := s.cam.Position()
		s.cam.SetPosition(mgl32.Vec3{p.X(), *s.cameraY, p.Z()})
	}
	s.mesh = model.NewMesh(model.WithShape(s.shape), model.WithRadius(s.radius))

	var volume common.Box
	var volumeOpt UpdaterBuilderOption
	switch {
	case s.volumeMode == VolumeModeCameraRelative:
		volume = CameraRelativeVolume(s.cam.Position(), s.halfExtents, s.forwardOffset)
		volumeOpt = WithCameraRelativeVolume(s.halfExtents, s.forwardOffset)
	case s.fixedVolume != nil:
		volume = *s.fixedVolume
		volumeOpt = WithFixedVolume(volume)
	default:
		volume = DefaultFixedVolume(s.cam)
		volumeOpt = WithFixedVolume(volume)
	}

	s.drifters = Populate(s.rng, s.count, volume, s.angularRange, s.linearRange)
	s.updater = NewUpdater(s.drifters, s.cam, volumeOpt, WithScrollScale(s.scrollScale), WithInitialScroll(s.initialScroll))

	s.outline = material.NewOutline(s.foreground)
	s.fill = material.NewFill(s.background)
	s.fog = NewFog(s.cam, volume)
	s.fog.Color = s.background

	s.framePool = worker.NewDynamicWorkerPool(s.frameWorkers, 256, 1*time.Second)
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Mesh() model.Mesh {
	return s.mesh
}

func (s *scene) Drifters() []drifter.Drifter {
	return s.drifters
}

func (s *scene) Outline() material.Material {
	return s.outline
}

func (s *scene) Fill() material.Material {
	return s.fill
}

func (s *scene) Fog() Fog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fog
}

func (s *scene) Background() colorful.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

func (s *scene) SetColors(fg, bg colorful.Color) {
	s.outline.SetColor(fg)
	s.fill.SetColor(bg)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = bg
	s.fog.Color = bg
}

func (s *scene) Advance(dt float32) {
	s.updater.Advance(dt)
}

func (s *scene) Reposition(scrollOffset float32) {
	s.updater.Reposition(scrollOffset)
}

func (s *scene) Tick(dt, scrollOffset float32) {
	s.updater.Tick(dt, scrollOffset)
}

func (s *scene) Volume() common.Box {
	return s.updater.Volume()
}

func (s *scene) Mode() VolumeMode {
	return s.updater.Mode()
}

func (s *scene) ScrollScale() float32 {
	return s.updater.ScrollScale()
}

func (s *scene) LastScroll() float32 {
	return s.updater.LastScroll()
}
