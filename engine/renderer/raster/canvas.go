package raster

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/polydrift/engine/scene"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

// Target is the part of a tcell.Screen the canvas writes to.
type Target interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// Cell is one character cell of the canvas.
type Cell struct {
	Rune  rune
	Color colorful.Color
}

// canvas is the implementation of the Canvas interface.
type canvas struct {
	mu *sync.Mutex

	cols, rows int
	background colorful.Color

	cells []Cell

	// fillDepth holds the nearest filled-surface view depth per cell, lineDepth the
	// nearest outline depth already written to the cell.
	fillDepth []float32
	lineDepth []float32

	fillOffset float32
	minW       float32
}

// Canvas is a software rasterizer that draws scene frames into terminal character cells.
//
// Filled shells are rasterized into a depth buffer only; they never produce glyphs but hide
// the outline edges behind them. Outline edges are drawn with slope glyphs and fogged toward
// the background color by view depth.
type Canvas interface {
	// Size returns the canvas size in cells.
	//
	// Returns:
	//   - int: columns
	//   - int: rows
	Size() (int, int)

	// Resize changes the canvas size in cells and clears it.
	//
	// Parameters:
	//   - cols: number of columns
	//   - rows: number of rows
	Resize(cols, rows int)

	// Clear resets every cell to a blank in the given background color.
	//
	// Parameters:
	//   - bg: the background color
	Clear(bg colorful.Color)

	// Draw rasterizes a frame on top of the current contents.
	//
	// Parameters:
	//   - f: the frame snapshot to draw
	Draw(f scene.Frame)

	// Cell returns the cell at a column and row, or a blank cell when out of bounds.
	Cell(x, y int) Cell

	// Background returns the color set by the last Clear.
	Background() colorful.Color

	// Flush writes every cell to the target.
	//
	// Parameters:
	//   - t: the destination, typically a tcell.Screen
	Flush(t Target)
}

var _ Canvas = &canvas{}

// NewCanvas creates a Canvas. Defaults: 80x24 cells, black background.
//
// Parameters:
//   - options: functional options to configure the canvas
//
// Returns:
//   - Canvas: the new canvas
func NewCanvas(options ...CanvasBuilderOption) Canvas {
	c := &canvas{
		mu:         &sync.Mutex{},
		cols:       80,
		rows:       24,
		fillOffset: 0.02,
		minW:       1e-3,
	}
	for _, opt := range options {
		opt(c)
	}
	c.Resize(c.cols, c.rows)
	return c
}

func (c *canvas) Size() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cols, c.rows
}

func (c *canvas) Resize(cols, rows int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cols, c.rows = max(cols, 0), max(rows, 0)
	n := c.cols * c.rows
	c.cells = make([]Cell, n)
	c.fillDepth = make([]float32, n)
	c.lineDepth = make([]float32, n)
	c.clear(c.background)
}

func (c *canvas) Clear(bg colorful.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clear(bg)
}

func (c *canvas) clear(bg colorful.Color) {
	c.background = bg
	inf := float32(math.Inf(1))
	for i := range c.cells {
		c.cells[i] = Cell{Rune: ' ', Color: bg}
		c.fillDepth[i] = inf
		c.lineDepth[i] = inf
	}
}

func (c *canvas) Background() colorful.Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.background
}

func (c *canvas) Cell(x, y int) Cell {
	c.mu.Lock()
	defer c.mu.Unlock()
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return Cell{Rune: ' ', Color: c.background}
	}
	return c.cells[y*c.cols+x]
}

func (c *canvas) Draw(f scene.Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cols == 0 || c.rows == 0 || f.Mesh == nil {
		return
	}

	vertices := f.Mesh.Vertices()

	// Every fill goes in before any edge so edges are tested against the complete surface.
	instances := make([][]point, len(f.Models))
	for i, m := range f.Models {
		mvp := f.ViewProj.Mul4(m)
		pts := make([]point, len(vertices))
		for j, v := range vertices {
			pts[j] = c.project(mvp, v)
		}
		instances[i] = pts
		c.fillTriangles(pts, f.Mesh.Triangles())
	}

	edges := f.Mesh.Edges()
	for _, pts := range instances {
		for j := 0; j+1 < len(edges); j += 2 {
			c.drawEdge(pts[edges[j]], pts[edges[j+1]], f)
		}
	}
}

func (c *canvas) Flush(t Target) {
	c.mu.Lock()
	defer c.mu.Unlock()
	bg := toTcell(c.background)
	for y := 0; y < c.rows; y++ {
		for x := 0; x < c.cols; x++ {
			cell := c.cells[y*c.cols+x]
			style := tcell.StyleDefault.Background(bg).Foreground(toTcell(cell.Color))
			t.SetContent(x, y, cell.Rune, nil, style)
		}
	}
}

// point is a vertex in cell space. W is the clip-space w, which equals the view depth
// under a perspective projection.
type point struct {
	X, Y    float32
	W       float32
	visible bool
}

func (c *canvas) project(mvp mgl32.Mat4, v mgl32.Vec3) point {
	clip := mvp.Mul4x1(v.Vec4(1))
	w := clip.W()
	if w < c.minW {
		return point{}
	}
	ndcX, ndcY := clip.X()/w, clip.Y()/w
	return point{
		X:       (ndcX + 1) / 2 * float32(c.cols),
		Y:       (1 - ndcY) / 2 * float32(c.rows),
		W:       w,
		visible: true,
	}
}

func (c *canvas) fillTriangles(pts []point, triangles []uint32) {
	for i := 0; i+2 < len(triangles); i += 3 {
		a, b, d := pts[triangles[i]], pts[triangles[i+1]], pts[triangles[i+2]]
		if !a.visible || !b.visible || !d.visible {
			continue
		}
		area := edgeFunc(a, b, d.X, d.Y)
		if area == 0 {
			continue
		}
		minX := max(int(math.Floor(float64(min(a.X, b.X, d.X)))), 0)
		maxX := min(int(math.Ceil(float64(max(a.X, b.X, d.X)))), c.cols-1)
		minY := max(int(math.Floor(float64(min(a.Y, b.Y, d.Y)))), 0)
		maxY := min(int(math.Ceil(float64(max(a.Y, b.Y, d.Y)))), c.rows-1)
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				px, py := float32(x)+0.5, float32(y)+0.5
				w0 := edgeFunc(b, d, px, py) / area
				w1 := edgeFunc(d, a, px, py) / area
				w2 := edgeFunc(a, b, px, py) / area
				if w0 < 0 || w1 < 0 || w2 < 0 {
					continue
				}
				// 1/w interpolates linearly in screen space.
				invW := w0/a.W + w1/b.W + w2/d.W
				depth := 1 / invW
				idx := y*c.cols + x
				if depth < c.fillDepth[idx] {
					c.fillDepth[idx] = depth
				}
			}
		}
	}
}

func edgeFunc(a, b point, x, y float32) float32 {
	return (b.X-a.X)*(y-a.Y) - (b.Y-a.Y)*(x-a.X)
}

func (c *canvas) drawEdge(a, b point, f scene.Frame) {
	if !a.visible || !b.visible {
		return
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	glyph := slopeGlyph(dx, dy)
	steps := int(math.Ceil(float64(max(abs32(dx), abs32(dy)))))
	steps = max(steps, 1)
	for s := 0; s <= steps; s++ {
		t := float32(s) / float32(steps)
		x := int(math.Floor(float64(a.X + dx*t)))
		y := int(math.Floor(float64(a.Y + dy*t)))
		if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
			continue
		}
		depth := 1 / ((1-t)/a.W + t/b.W)
		idx := y*c.cols + x
		if depth > c.fillDepth[idx]*(1+c.fillOffset) || depth >= c.lineDepth[idx] {
			continue
		}
		c.lineDepth[idx] = depth
		c.cells[idx] = Cell{
			Rune:  glyph,
			Color: f.Outline.Color.BlendRgb(f.Fog.Color, float64(f.Fog.Factor(depth))),
		}
	}
}

// slopeGlyph picks a glyph for a segment. Cells are twice as tall as wide, so dy is doubled
// before measuring the angle.
func slopeGlyph(dx, dy float32) rune {
	if dx == 0 && dy == 0 {
		return '.'
	}
	angle := math.Atan2(float64(-dy*2), float64(dx)) * 180 / math.Pi
	if angle < 0 {
		angle += 180
	}
	switch {
	case angle < 22.5 || angle >= 157.5:
		return '-'
	case angle < 67.5:
		return '/'
	case angle < 112.5:
		return '|'
	default:
		return '\\'
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
