package renderer

import (
	"github.com/Carmen-Shannon/polydrift/engine/renderer/raster"
	"github.com/Carmen-Shannon/polydrift/engine/scene"
	"github.com/gdamore/tcell/v2"
)

// terminalRendererBackend rasterizes frames in software and shows them on a tcell screen.
type terminalRendererBackend struct {
	screen tcell.Screen
	canvas raster.Canvas
}

var _ RendererBackend = &terminalRendererBackend{}

func newTerminalRendererBackend(screen tcell.Screen, fillOffset *float32) *terminalRendererBackend {
	cols, rows := screen.Size()
	opts := []raster.CanvasBuilderOption{raster.WithSize(cols, rows)}
	if fillOffset != nil {
		opts = append(opts, raster.WithFillOffset(*fillOffset))
	}
	return &terminalRendererBackend{
		screen: screen,
		canvas: raster.NewCanvas(opts...),
	}
}

// ConfigureSurface ignores the pixel size it is given; terminal windows report height in
// half-cells, so the canvas follows the screen's own cell grid instead.
func (b *terminalRendererBackend) ConfigureSurface(_, _ int) {
	cols, rows := b.screen.Size()
	b.canvas.Resize(cols, rows)
}

// SetPresentMode is a no-op; the terminal shows whatever was last flushed.
func (b *terminalRendererBackend) SetPresentMode(_ PresentMode) {}

func (b *terminalRendererBackend) DrawFrames(frames []scene.Frame) error {
	b.canvas.Clear(frames[0].Background)
	for _, f := range frames {
		b.canvas.Draw(f)
	}
	b.canvas.Flush(b.screen)
	b.screen.Show()
	return nil
}

// Release leaves the screen to its window, which owns and finalizes it.
func (b *terminalRendererBackend) Release() {}
