package renderer

import (
	"github.com/Carmen-Shannon/polydrift/engine/scene"
)

// RendererBackendType identifies the backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeTerminal selects the software rasterizer that draws into a terminal screen.
	BackendTypeTerminal
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1). This is the default.
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing.
	MSAA4x MSAASampleCount = 4
)

// RendererBackend is the interface every backend implements. The Renderer forwards to it
// under its own lock, so backends are only ever called from one goroutine at a time.
type RendererBackend interface {
	// ConfigureSurface prepares the backend for a new output size.
	//
	// Parameters:
	//   - width: the new width in pixels (columns for the terminal backend)
	//   - height: the new height in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets how frames are delivered to the display.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// DrawFrames draws and presents the given frames. The first frame's background is the
	// clear color.
	//
	// Parameters:
	//   - frames: the frame snapshots to draw, in order
	//
	// Returns:
	//   - error: an error if the frame could not be drawn
	DrawFrames(frames []scene.Frame) error

	// Release frees every resource owned by the backend.
	Release()
}
