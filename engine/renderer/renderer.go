package renderer

import (
	"errors"
	"sync"

	"github.com/Carmen-Shannon/polydrift/engine/scene"
	"github.com/Carmen-Shannon/polydrift/engine/window"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend
	released    bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	fillOffset           *float32
}

// Renderer defines the interface for the rendering system.
//
// Frames go in and nothing is read back: each call to Render draws one or more scene
// snapshots and presents the result. The Renderer owns a backend, which is either the
// WebGPU backend drawing into a GLFW window surface or the terminal backend drawing into
// a tcell screen.
type Renderer interface {
	// Render draws and presents the frames. The first frame's background clears the target.
	//
	// Parameters:
	//   - frames: scene snapshots to draw, in order
	//
	// Returns:
	//   - error: an error if the frame could not be drawn; the caller should skip it
	Render(frames ...scene.Frame) error

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// A call to Resize is required after changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// BackendType returns the backend selected at construction.
	BackendType() RendererBackendType

	// Release frees the backend. Render returns an error afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type for the given window.
// The WGPU backend needs the window's surface descriptor; the terminal backend needs its screen.
// Both panic when the window cannot provide them, like any other device setup failure.
//
// Parameters:
//   - backendType: the type of rendering backend to use
//   - win: the window to render into
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeTerminal:
		screen := win.Screen()
		if screen == nil {
			panic("renderer: terminal backend requires a terminal window")
		}
		r.backend = newTerminalRendererBackend(screen, r.fillOffset)
	case BackendTypeWGPU:
		fallthrough
	default:
		msaa := MSAAOff
		if r.pendingMSAA != nil {
			msaa = *r.pendingMSAA
		}
		desc := win.SurfaceDescriptor()
		if desc == nil {
			panic("renderer: WGPU backend requires a window with a native surface")
		}
		r.backend = newWGPURendererBackend(desc, r.forceFallbackAdapter, msaa)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.backend.ConfigureSurface(win.Width(), win.Height())
	return r
}

func (r *renderer) Render(frames ...scene.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return errors.New("renderer: render after release")
	}
	if len(frames) == 0 {
		return nil
	}
	return r.backend.DrawFrames(frames)
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released || width <= 0 || height <= 0 {
		return
	}
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.SetPresentMode(mode)
}

func (r *renderer) BackendType() RendererBackendType {
	return r.backendType
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.released {
		return
	}
	r.released = true
	r.backend.Release()
}
