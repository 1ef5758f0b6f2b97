package scroll

import (
	"math"
	"sync"
	"testing"
)

func TestScrollClamps(t *testing.T) {
	tr := NewTracker(WithPageHeight(1000), WithViewportHeight(200), WithPixelsPerNotch(50))

	tr.Scroll(1) // wheel up at the top stays at the top
	if got := tr.Offset(); got != 0 {
		t.Errorf("Offset() = %v, want 0", got)
	}

	tr.Scroll(-3)
	if got := tr.Offset(); got != 150 {
		t.Errorf("Offset() = %v, want 150", got)
	}

	tr.ScrollBy(10000)
	if got := tr.Offset(); got != 800 {
		t.Errorf("Offset() = %v, want 800", got)
	}

	tr.SetViewport(500)
	if got := tr.Offset(); got != 500 {
		t.Errorf("Offset() after SetViewport = %v, want 500", got)
	}

	tr.SetViewport(2000)
	if got := tr.Offset(); got != 0 {
		t.Errorf("Offset() with viewport taller than page = %v, want 0", got)
	}
}

func TestInitialOffsetClamped(t *testing.T) {
	tr := NewTracker(WithPageHeight(1000), WithViewportHeight(400), WithInitialOffset(900))
	if got := tr.Offset(); got != 600 {
		t.Errorf("Offset() = %v, want 600", got)
	}
}

func TestCameraScaleMatchesAbsoluteMapping(t *testing.T) {
	const page, viewport, worldRange = 3000, 600, 20
	tr := NewTracker(WithPageHeight(page), WithViewportHeight(viewport), WithRange(worldRange))

	absolute := func(offset float32) float32 {
		cur := offset + viewport/2
		return -(cur/page*worldRange - worldRange/2)
	}

	from, to := float32(120), float32(1450)
	want := absolute(to) - absolute(from)
	got := tr.CameraScale() * (to - from)
	if math.Abs(float64(got-want)) > 1e-4 {
		t.Errorf("delta camera y = %v, want %v", got, want)
	}
}

func TestCameraYMatchesAbsoluteMapping(t *testing.T) {
	const page, worldRange = 4000, 20
	absolute := func(offset, viewport float32) float32 {
		cur := offset + viewport/2
		return -(cur/page*worldRange - worldRange/2)
	}

	tests := []struct {
		name     string
		viewport float32
		offset   float32
		want     float32
	}{
		{"top", 800, 0, 8},
		{"middle", 800, 1600, 0},
		{"bottom", 800, 3200, -8},
		{"short viewport", 400, 0, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(WithPageHeight(page), WithViewportHeight(tt.viewport), WithRange(worldRange))
			tr.ScrollTo(tt.offset)
			if got := tr.CameraY(); math.Abs(float64(got-tt.want)) > 1e-4 {
				t.Errorf("CameraY() = %v, want %v", got, tt.want)
			}
			if got, want := tr.CameraY(), absolute(tt.offset, tt.viewport); math.Abs(float64(got-want)) > 1e-4 {
				t.Errorf("CameraY() = %v, absolute mapping gives %v", got, want)
			}
		})
	}
}

func TestPositionFollowsViewport(t *testing.T) {
	tr := NewTracker(WithPageHeight(4000), WithViewportHeight(800))
	tr.ScrollTo(1000)
	if got := tr.Position(); got != 1400 {
		t.Fatalf("Position() = %v, want 1400", got)
	}
	tr.SetViewport(400)
	if got := tr.Position(); got != 1200 {
		t.Errorf("Position() after SetViewport = %v, want 1200", got)
	}
}

func TestConcurrentScroll(t *testing.T) {
	tr := NewTracker(WithPageHeight(1e6), WithViewportHeight(0), WithPixelsPerNotch(1))
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				tr.Scroll(-1)
				_ = tr.Offset()
			}
		}()
	}
	wg.Wait()
	if got := tr.Offset(); got != 800 {
		t.Errorf("Offset() = %v, want 800", got)
	}
}
