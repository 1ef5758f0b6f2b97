package scroll

// TrackerBuilderOption is a functional option for configuring a Tracker during construction.
type TrackerBuilderOption func(*tracker)

// WithPageHeight sets the virtual page height in pixels.
//
// Parameters:
//   - height: page height
//
// Returns:
//   - TrackerBuilderOption: functional option to set the page height
func WithPageHeight(height float32) TrackerBuilderOption {
	return func(t *tracker) {
		t.pageHeight = height
	}
}

// WithViewportHeight sets the initial viewport height in pixels.
//
// Parameters:
//   - height: viewport height
//
// Returns:
//   - TrackerBuilderOption: functional option to set the viewport height
func WithViewportHeight(height float32) TrackerBuilderOption {
	return func(t *tracker) {
		t.viewportHeight = height
	}
}

// WithPixelsPerNotch sets how far one wheel notch scrolls.
//
// Parameters:
//   - pixels: distance per notch
//
// Returns:
//   - TrackerBuilderOption: functional option to set the notch distance
func WithPixelsPerNotch(pixels float32) TrackerBuilderOption {
	return func(t *tracker) {
		t.pixelsPerNotch = pixels
	}
}

// WithRange sets the vertical world distance covered by scrolling the full page.
//
// Parameters:
//   - worldUnits: camera travel across the page
//
// Returns:
//   - TrackerBuilderOption: functional option to set the range
func WithRange(worldUnits float32) TrackerBuilderOption {
	return func(t *tracker) {
		t.worldRange = worldUnits
	}
}

// WithInitialOffset starts the tracker part way down the page.
//
// Parameters:
//   - offset: starting offset in pixels
//
// Returns:
//   - TrackerBuilderOption: functional option to set the starting offset
func WithInitialOffset(offset float32) TrackerBuilderOption {
	return func(t *tracker) {
		t.offset = offset
	}
}
