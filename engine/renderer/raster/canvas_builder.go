package raster

// CanvasBuilderOption is a functional option used to configure a Canvas during construction.
type CanvasBuilderOption func(*canvas)

// WithSize sets the initial size in cells.
//
// Parameters:
//   - cols: number of columns
//   - rows: number of rows
//
// Returns:
//   - CanvasBuilderOption: a function that sets the canvas size
func WithSize(cols, rows int) CanvasBuilderOption {
	return func(c *canvas) {
		c.cols = cols
		c.rows = rows
	}
}

// WithFillOffset sets how far behind a filled surface, as a fraction of its depth, an
// edge may lie and still be drawn. It plays the role of the fill material's polygon offset.
//
// Parameters:
//   - offset: relative depth tolerance, 0.02 by default
//
// Returns:
//   - CanvasBuilderOption: a function that sets the fill offset
func WithFillOffset(offset float32) CanvasBuilderOption {
	return func(c *canvas) {
		c.fillOffset = offset
	}
}
