package window

import "github.com/gdamore/tcell/v2"

// WindowBuilderOption is a functional option used to configure a Window during construction.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title. Ignored by the terminal backend.
//
// Parameters:
//   - title: the window title
//
// Returns:
//   - WindowBuilderOption: a function that sets the title
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithWidth sets the requested width in pixels. Ignored by the terminal backend.
//
// Parameters:
//   - width: the window width
//
// Returns:
//   - WindowBuilderOption: a function that sets the width
func WithWidth(width int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
	}
}

// WithHeight sets the requested height in pixels. Ignored by the terminal backend.
//
// Parameters:
//   - height: the window height
//
// Returns:
//   - WindowBuilderOption: a function that sets the height
func WithHeight(height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.height = height
	}
}

// WithBackend selects the platform backend. Defaults to BackendGLFW.
//
// Parameters:
//   - backend: the backend type
//
// Returns:
//   - WindowBuilderOption: a function that sets the backend
func WithBackend(backend WindowBackendType) WindowBuilderOption {
	return func(w *engineWindow) {
		w.backendType = backend
	}
}

// WithScreen supplies the tcell screen for the terminal backend instead of opening the
// controlling terminal. The window initializes and finalizes it.
//
// Parameters:
//   - s: an uninitialized screen
//
// Returns:
//   - WindowBuilderOption: a function that sets the screen
func WithScreen(s tcell.Screen) WindowBuilderOption {
	return func(w *engineWindow) {
		w.screen = s
	}
}

// WithPageNotches sets how many scroll notches the terminal page keys produce.
//
// Parameters:
//   - notches: notches per page key press
//
// Returns:
//   - WindowBuilderOption: a function that sets the page size
func WithPageNotches(notches float32) WindowBuilderOption {
	return func(w *engineWindow) {
		w.pageNotches = notches
	}
}
