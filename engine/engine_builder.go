package engine

import (
	"github.com/Carmen-Shannon/polydrift/engine/palette"
	"github.com/Carmen-Shannon/polydrift/engine/profiler"
	"github.com/Carmen-Shannon/polydrift/engine/scene"
	"github.com/Carmen-Shannon/polydrift/engine/scroll"
)

// EngineBuilderOption is a functional option for configuring an Engine during construction.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling at construction time.
//
// Parameters:
//   - enabled: true to enable profiling, false to disable
//
// Returns:
//   - EngineBuilderOption: a function that applies the profiling option to an engine
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithProfiler replaces the default profiler.
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithTickRate sets the frame rate cap. Defaults to 60; values <= 0 uncap the loop.
//
// Parameters:
//   - fps: frames per second
//
// Returns:
//   - EngineBuilderOption: a function that applies the tick rate option to an engine
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.frameLimit = frameDuration(fps)
	}
}

// WithWindow sets the host window the engine runs in.
//
// Parameters:
//   - w: the window, typically a window.Window
//
// Returns:
//   - EngineBuilderOption: a function that applies the window option to an engine
func WithWindow(w Host) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer frames are handed to.
//
// Parameters:
//   - r: the renderer, typically a renderer.Renderer
//
// Returns:
//   - EngineBuilderOption: a function that applies the renderer option to an engine
func WithRenderer(r FrameRenderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithScene adds a scene at the given key.
//
// Parameters:
//   - key: the key for the scene; scenes tick and render in key order
//   - s: the scene to add
//
// Returns:
//   - EngineBuilderOption: a function that applies the scene option to an engine
func WithScene(key int, s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = s
	}
}

// WithTracker sets the scroll tracker. Its page height should match the scenes' scroll scale.
func WithTracker(t scroll.Tracker) EngineBuilderOption {
	return func(e *engine) {
		e.tracker = t
	}
}

// WithPalette sets the scheme selector. Its apply callback is replaced by the engine's.
func WithPalette(p palette.Selector) EngineBuilderOption {
	return func(e *engine) {
		e.palette = p
	}
}
