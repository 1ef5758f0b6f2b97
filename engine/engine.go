package engine

import (
	"log"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/polydrift/common"
	"github.com/Carmen-Shannon/polydrift/engine/palette"
	"github.com/Carmen-Shannon/polydrift/engine/profiler"
	"github.com/Carmen-Shannon/polydrift/engine/scene"
	"github.com/Carmen-Shannon/polydrift/engine/scroll"
	"github.com/lucasb-eyer/go-colorful"
)

// Host is the part of a window the engine drives. window.Window satisfies it.
type Host interface {
	SetUpdateCallback(callback func())
	SetResizeCallback(callback func(width, height int))
	SetScrollCallback(callback func(delta float32))
	SetKeyDownCallback(callback func(keyCode uint32))
	IsRunning() bool
	ProcessMessages()
	Close() error
	Width() int
	Height() int
}

// FrameRenderer draws scene snapshots. renderer.Renderer satisfies it.
type FrameRenderer interface {
	Render(frames ...scene.Frame) error
	Resize(width, height int)
}

// engine is the implementation of the Engine interface.
type engine struct {
	mu *sync.Mutex

	wg sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once
	quitting    atomic.Bool

	window   Host
	renderer FrameRenderer
	tracker  scroll.Tracker
	palette  palette.Selector

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	frameLimit     time.Duration // minimum frame duration; 0 = uncapped
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)
	keyCallback    func(keyCode uint32)

	scenes map[int]scene.Scene
}

// Engine is the top-level runtime that ties together the window, renderer, scenes, scroll
// tracker and palette.
//
// A single frame goroutine owns every scene: each frame it computes the elapsed time, runs the
// tick callback, ticks the active scenes (reposition from scroll, then advance), snapshots them
// and hands the snapshots to the renderer. Window callbacks only touch mutex-guarded state: the
// scroll tracker, camera aspect and palette colors.
type Engine interface {
	// Window returns the host window, or nil.
	Window() Host

	// Renderer returns the renderer, or nil.
	Renderer() FrameRenderer

	// Tracker returns the scroll tracker the window's scroll input feeds.
	Tracker() scroll.Tracker

	// Palette returns the scheme selector. Selecting a scheme recolors every scene.
	Palette() palette.Selector

	// EnableProfiler enables performance profiling. Stats are logged once per interval.
	EnableProfiler()

	// DisableProfiler disables performance profiling.
	DisableProfiler()

	// SetTickRate sets the frame rate cap. Values <= 0 uncap the frame loop.
	//
	// Parameters:
	//   - fps: frames per second
	SetTickRate(fps float64)

	// SetTickCallback sets a function called at the start of every frame, before scenes tick.
	//
	// Parameters:
	//   - callback: receives the elapsed time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback sets a function called after every frame is rendered.
	//
	// Parameters:
	//   - callback: receives the elapsed time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetKeyCallback sets a function called for key presses the engine does not handle itself.
	//
	// Parameters:
	//   - callback: receives the key code
	SetKeyCallback(callback func(keyCode uint32))

	// AddScene adds or replaces the scene at key. Scenes tick and render in key order.
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at key.
	RemoveScene(key int)

	// Scene returns the scene at key, or nil.
	Scene(key int) scene.Scene

	// Scenes returns a copy of the scene map.
	Scenes() map[int]scene.Scene

	// Step runs one frame with the given elapsed time. Run calls it from the frame goroutine;
	// it is exported for callers that drive their own loop.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	//
	// Returns:
	//   - error: the renderer's error, if any; the frame is skipped
	Step(dt float32) error

	// Run starts the frame goroutine and blocks in the window message loop until the window
	// closes or Quit is called.
	Run()

	// Quit stops the frame loop and closes the window. Safe to call more than once and from
	// any goroutine.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the given options.
// Wires window resize, scroll and key callbacks, and points the palette at every scene.
//
// Parameters:
//   - options: variadic list of EngineBuilderOption functions to configure the Engine
//
// Returns:
//   - Engine: a new Engine instance configured with the specified options
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:          &sync.Mutex{},
		quitChannel: make(chan struct{}),
		scenes:      make(map[int]scene.Scene),
		profiler:    profiler.NewProfiler(),
		frameLimit:  time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.tracker == nil {
		e.tracker = scroll.NewTracker()
	}
	if e.palette == nil {
		e.palette = palette.NewSelector()
	}
	for key, s := range e.scenes {
		e.checkScrollScale(key, s)
	}
	e.palette.SetApply(e.applyColors)

	if e.window != nil {
		e.tracker.SetViewport(float32(e.window.Height()))
		e.window.SetResizeCallback(e.handleResize)
		e.window.SetScrollCallback(e.tracker.Scroll)
		e.window.SetKeyDownCallback(e.handleKey)
		e.window.SetUpdateCallback(func() {
			if e.quitting.Load() && e.window.IsRunning() {
				if err := e.window.Close(); err != nil {
					log.Printf("failed to close window: %v", err)
				}
			}
		})
	}

	return e
}

func (e *engine) Window() Host {
	return e.window
}

func (e *engine) Renderer() FrameRenderer {
	return e.renderer
}

func (e *engine) Tracker() scroll.Tracker {
	return e.tracker
}

func (e *engine) Palette() palette.Selector {
	return e.palette
}

func (e *engine) applyColors(fg, bg colorful.Color) {
	for _, s := range e.Scenes() {
		s.SetColors(fg, bg)
	}
}

// handleResize ignores empty sizes, as the renderer does, so camera aspect stays finite.
func (e *engine) handleResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if e.renderer != nil {
		e.renderer.Resize(width, height)
	}
	for _, s := range e.Scenes() {
		s.Camera().SetAspect(float32(width) / float32(height))
	}
	e.tracker.SetViewport(float32(height))
}

// handleKey maps digits to palette schemes, P and Space to the next scheme, R to the top of
// the page, arrows and page keys to scrolling and Q to quit. Anything else goes to the key
// callback.
func (e *engine) handleKey(keyCode uint32) {
	if i, ok := common.DigitIndex(keyCode); ok {
		e.palette.Select(i)
		return
	}
	switch keyCode {
	case common.KeyP, common.KeySpace:
		e.palette.Next()
	case common.KeyR:
		e.tracker.ScrollTo(0)
	case common.KeyQ:
		e.Quit()
	case common.KeyUp:
		e.tracker.Scroll(1)
	case common.KeyDown:
		e.tracker.Scroll(-1)
	case common.KeyPageUp:
		e.tracker.ScrollBy(-e.tracker.ViewportHeight())
	case common.KeyPageDown:
		e.tracker.ScrollBy(e.tracker.ViewportHeight())
	default:
		e.mu.Lock()
		cb := e.keyCallback
		e.mu.Unlock()
		if cb != nil {
			cb(keyCode)
		}
	}
}

func (e *engine) Run() {
	// Scenes start in the selected scheme's colors.
	e.palette.Reapply()

	e.wg.Add(1)
	go e.handleFrames()

	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
	} else {
		<-e.quitChannel
	}
	e.wg.Wait()

	if e.window != nil && e.window.IsRunning() {
		if err := e.window.Close(); err != nil {
			log.Printf("failed to close window: %v", err)
		}
	}
}

func (e *engine) Quit() {
	e.signalQuit()
}

func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.quitting.Store(true)
		close(e.quitChannel)
	})
}

// handleFrames is the frame goroutine. It is the only writer of scene state.
func (e *engine) handleFrames() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("frame goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	lastFrame := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
		}

		start := time.Now()
		dt := float32(start.Sub(lastFrame).Seconds())
		lastFrame = start

		if err := e.Step(dt); err != nil {
			log.Printf("frame skipped: %v", err)
		}

		if e.profilingEnabled.Load() {
			e.profiler.Tick(time.Since(start))
		}

		e.mu.Lock()
		limit := e.frameLimit
		e.mu.Unlock()
		if remaining := limit - time.Since(start); limit > 0 && remaining > 0 {
			timer := time.NewTimer(remaining)
			select {
			case <-e.quitChannel:
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}
}

func (e *engine) Step(dt float32) error {
	e.mu.Lock()
	tick, render := e.tickCallback, e.renderCallback
	e.mu.Unlock()

	if tick != nil {
		tick(dt)
	}

	offset := e.tracker.Position()
	active := e.activeScenes()
	frames := make([]scene.Frame, 0, len(active))
	for _, s := range active {
		s.Tick(dt, offset)
		frames = append(frames, s.Frame())
	}

	var err error
	if e.renderer != nil && len(frames) > 0 {
		err = e.renderer.Render(frames...)
	}

	if render != nil {
		render(dt)
	}
	return err
}

func (e *engine) activeScenes() []scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()

	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	active := make([]scene.Scene, 0, len(keys))
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			active = append(active, s)
		}
	}
	return active
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

func (e *engine) SetTickRate(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameLimit = frameDuration(fps)
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderCallback = callback
}

func (e *engine) SetKeyCallback(callback func(keyCode uint32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.keyCallback = callback
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.checkScrollScale(key, s)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
}

// checkScrollScale warns when a scene was built for a different page than the tracker
// scrolls; build scenes with scene.WithScrollTracker to avoid it.
func (e *engine) checkScrollScale(key int, s scene.Scene) {
	want := e.tracker.CameraScale()
	got := s.ScrollScale()
	if math.Abs(float64(got-want)) > 1e-9 {
		log.Printf("scene %d (%s): scroll scale %g does not match tracker scale %g", key, s.Name(), got, want)
	}
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
