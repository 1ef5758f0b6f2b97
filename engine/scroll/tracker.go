package scroll

import (
	"sync"
)

const (
	// DefaultPageHeight is the height of the virtual page in pixels.
	DefaultPageHeight float32 = 4000

	// DefaultViewportHeight is the viewport height used until the first resize.
	DefaultViewportHeight float32 = 800

	// DefaultPixelsPerNotch is the scroll distance of one wheel notch.
	DefaultPixelsPerNotch float32 = 100

	// DefaultRange is the vertical world distance the camera covers across the whole page.
	DefaultRange float32 = 20
)

type tracker struct {
	mu             *sync.Mutex
	pageHeight     float32
	viewportHeight float32
	pixelsPerNotch float32
	worldRange     float32
	offset         float32
}

// Tracker stands in for the scroll position of a host page. The window thread feeds it
// wheel and key input while the frame goroutine reads Position, so all methods are safe
// for concurrent use.
type Tracker interface {
	// Scroll moves the offset by whole or fractional wheel notches.
	// Positive notches scroll toward the top of the page.
	//
	// Parameters:
	//   - notches: wheel delta as reported by the window
	Scroll(notches float32)

	// ScrollBy moves the offset by a number of pixels; positive values move down the page.
	//
	// Parameters:
	//   - pixels: distance to move
	ScrollBy(pixels float32)

	// ScrollTo sets the offset directly, clamped to the page.
	//
	// Parameters:
	//   - offset: target offset in pixels
	ScrollTo(offset float32)

	// SetViewport updates the viewport height and re-clamps the offset.
	//
	// Parameters:
	//   - height: viewport height in pixels
	SetViewport(height float32)

	// Offset returns the current scroll offset in pixels from the top of the page.
	//
	// Returns:
	//   - float32: the offset, within [0, pageHeight - viewportHeight]
	Offset() float32

	// Position returns the page coordinate at the middle of the viewport, the point the
	// camera follows. It moves with both the offset and the viewport height.
	//
	// Returns:
	//   - float32: offset + viewportHeight/2
	Position() float32

	// CameraY returns the camera height for the current position: half the range at the
	// page top, falling linearly by CameraScale per pixel.
	//
	// Returns:
	//   - float32: range/2 + CameraScale() * Position()
	CameraY() float32

	// PageHeight returns the virtual page height in pixels.
	PageHeight() float32

	// ViewportHeight returns the viewport height in pixels.
	ViewportHeight() float32

	// CameraScale returns the world units the camera moves vertically per pixel of scroll.
	// It is negative: scrolling down the page moves the camera down.
	//
	// Returns:
	//   - float32: -range / pageHeight
	CameraScale() float32
}

var _ Tracker = &tracker{}

// NewTracker creates a scroll Tracker at the top of the page.
//
// Parameters:
//   - options: functional options to configure the tracker
//
// Returns:
//   - Tracker: the newly created tracker
func NewTracker(options ...TrackerBuilderOption) Tracker {
	t := &tracker{
		mu:             &sync.Mutex{},
		pageHeight:     DefaultPageHeight,
		viewportHeight: DefaultViewportHeight,
		pixelsPerNotch: DefaultPixelsPerNotch,
		worldRange:     DefaultRange,
	}
	for _, option := range options {
		option(t)
	}
	t.offset = t.clamp(t.offset)
	return t
}

func (t *tracker) Scroll(notches float32) {
	t.ScrollBy(-notches * t.pixelsPerNotch)
}

func (t *tracker) ScrollBy(pixels float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.offset = t.clamp(t.offset + pixels)
}

func (t *tracker) ScrollTo(offset float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.offset = t.clamp(offset)
}

func (t *tracker) SetViewport(height float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.viewportHeight = height
	t.offset = t.clamp(t.offset)
}

func (t *tracker) Offset() float32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.offset
}

func (t *tracker) Position() float32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.offset + t.viewportHeight/2
}

func (t *tracker) CameraY() float32 {
	return t.worldRange/2 + t.CameraScale()*t.Position()
}

func (t *tracker) PageHeight() float32 {
	return t.pageHeight
}

func (t *tracker) ViewportHeight() float32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.viewportHeight
}

func (t *tracker) CameraScale() float32 {
	if t.pageHeight == 0 {
		return 0
	}
	return -t.worldRange / t.pageHeight
}

// clamp must be called with mu held.
func (t *tracker) clamp(offset float32) float32 {
	limit := max(t.pageHeight-t.viewportHeight, 0)
	return min(max(offset, 0), limit)
}
