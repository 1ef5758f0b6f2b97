package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gdamore/tcell/v2"
)

// WindowBackendType selects the platform a Window runs on.
type WindowBackendType int

const (
	// BackendGLFW opens a native window through GLFW. WebGPU renders into it.
	BackendGLFW WindowBackendType = iota

	// BackendTerminal takes over the controlling terminal through tcell.
	BackendTerminal
)

// Window defines the interface for a host window that owns the event loop.
//
// Callbacks run on the goroutine that calls ProcessMessages, which is locked to its OS thread.
type Window interface {
	// SetUpdateCallback sets a function called once per message loop iteration.
	//
	// Parameters:
	//   - callback: the function to call
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the drawable size changes.
	//
	// Parameters:
	//   - callback: receives the new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the function called on scroll input. Positive deltas scroll up.
	//
	// Parameters:
	//   - callback: receives the number of wheel notches
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the function called when a key is pressed or repeats.
	//
	// Parameters:
	//   - callback: receives the key code, see common/key_codes.go
	SetKeyDownCallback(callback func(keyCode uint32))

	// SurfaceDescriptor returns the native surface for WebGPU, or nil for terminal windows.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform surface descriptor
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Screen returns the tcell screen of a terminal window, or nil for GLFW windows.
	//
	// Returns:
	//   - tcell.Screen: the terminal screen
	Screen() tcell.Screen

	// Backend returns the platform the window runs on.
	Backend() WindowBackendType

	// IsRunning reports whether the window is still open.
	IsRunning() bool

	// Close closes the window and releases the platform.
	//
	// Returns:
	//   - error: error if the window was never opened
	Close() error

	// ProcessMessages runs the message loop until the window closes.
	ProcessMessages()

	// Width returns the drawable width in pixels. Terminal windows report columns.
	Width() int

	// Height returns the drawable height in pixels. Terminal windows report two pixels per
	// row so that cells keep a 1:2 aspect.
	Height() int
}

// platformWindow is implemented by each backend.
type platformWindow interface {
	surfaceDescriptor() *wgpu.SurfaceDescriptor
	screen() tcell.Screen
	isRunning() bool
	close() error

	// processMessages handles pending events and reports whether the window is still running.
	processMessages() bool
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	// title is the text displayed in the window's title bar.
	title string

	// width is the current drawable width in pixels.
	width int

	// height is the current drawable height in pixels.
	height int

	backendType WindowBackendType

	// screen is an optional pre-built tcell screen for the terminal backend.
	screen tcell.Screen

	// pageNotches is how many scroll notches a terminal page key produces.
	pageNotches float32

	internalWindow platformWindow

	onUpdate  func()
	onResize  func(width, height int)
	onScroll  func(delta float32)
	onKeyDown func(keyCode uint32)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options and opens it.
// Applies default values first, then each option in order. Panics if the platform window
// cannot be created.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the open window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:       "polydrift",
		width:       1280,
		height:      720,
		backendType: BackendGLFW,
		pageNotches: 8,
	}
	for _, opt := range options {
		opt(w)
	}

	var err error
	switch w.backendType {
	case BackendTerminal:
		w.internalWindow, err = newTerminalWindow(w)
	case BackendGLFW:
		fallthrough
	default:
		w.internalWindow, err = newGLFWWindow(w)
	}
	if err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	if w.internalWindow == nil {
		return nil
	}
	return w.internalWindow.surfaceDescriptor()
}

func (w *engineWindow) Screen() tcell.Screen {
	if w.internalWindow == nil {
		return nil
	}
	return w.internalWindow.screen()
}

func (w *engineWindow) Backend() WindowBackendType {
	return w.backendType
}

func (w *engineWindow) IsRunning() bool {
	return w.internalWindow != nil && w.internalWindow.isRunning()
}

func (w *engineWindow) Close() error {
	if w.internalWindow == nil {
		return fmt.Errorf("window is not initialized")
	}
	return w.internalWindow.close()
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := w.internalWindow.processMessages(); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) resized(width, height int) {
	w.width = width
	w.height = height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

func (w *engineWindow) scrolled(delta float32) {
	if w.onScroll != nil {
		w.onScroll(delta)
	}
}

func (w *engineWindow) keyDown(keyCode uint32) {
	if w.onKeyDown != nil {
		w.onKeyDown(keyCode)
	}
}
