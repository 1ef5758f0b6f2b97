package engine

import (
	"bytes"
	"errors"
	"log"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/polydrift/common"
	"github.com/Carmen-Shannon/polydrift/engine/palette"
	"github.com/Carmen-Shannon/polydrift/engine/scene"
	"github.com/Carmen-Shannon/polydrift/engine/scroll"
	"github.com/go-gl/mathgl/mgl32"
)

type fakeHost struct {
	mu      sync.Mutex
	running bool
	width   int
	height  int

	onUpdate func()
	onResize func(width, height int)
	onScroll func(delta float32)
	onKey    func(keyCode uint32)
}

func newFakeHost() *fakeHost {
	return &fakeHost{running: true, width: 800, height: 600}
}

func (h *fakeHost) SetUpdateCallback(cb func())                  { h.onUpdate = cb }
func (h *fakeHost) SetResizeCallback(cb func(width, height int)) { h.onResize = cb }
func (h *fakeHost) SetScrollCallback(cb func(delta float32))     { h.onScroll = cb }
func (h *fakeHost) SetKeyDownCallback(cb func(keyCode uint32))   { h.onKey = cb }
func (h *fakeHost) Width() int                                   { return h.width }
func (h *fakeHost) Height() int                                  { return h.height }

func (h *fakeHost) IsRunning() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.running
}

func (h *fakeHost) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.running = false
	return nil
}

func (h *fakeHost) ProcessMessages() {
	for h.IsRunning() {
		if h.onUpdate != nil {
			h.onUpdate()
		}
		time.Sleep(time.Millisecond)
	}
}

type fakeRenderer struct {
	mu      sync.Mutex
	frames  [][]scene.Frame
	resizes [][2]int
	err     error
}

func (r *fakeRenderer) Render(frames ...scene.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, frames)
	return r.err
}

func (r *fakeRenderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resizes = append(r.resizes, [2]int{width, height})
}

func TestStepRendersActiveScenesInKeyOrder(t *testing.T) {
	r := &fakeRenderer{}
	e := NewEngine(
		WithRenderer(r),
		WithScene(2, scene.NewScene("second", scene.WithSeed(2), scene.WithCount(3))),
		WithScene(1, scene.NewScene("first", scene.WithSeed(1), scene.WithCount(3))),
		WithScene(3, scene.NewScene("hidden", scene.WithSeed(3), scene.WithActive(false))),
	)

	if err := e.Step(0.016); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if len(r.frames) != 1 {
		t.Fatalf("Render called %d times, want 1", len(r.frames))
	}
	got := r.frames[0]
	if len(got) != 2 || got[0].Scene != "first" || got[1].Scene != "second" {
		names := make([]string, len(got))
		for i, f := range got {
			names[i] = f.Scene
		}
		t.Fatalf("rendered scenes = %v, want [first second]", names)
	}
	if len(got[0].Models) != 3 {
		t.Errorf("frame has %d models, want 3", len(got[0].Models))
	}
}

func TestStepAdvancesScenes(t *testing.T) {
	s := scene.NewScene("drift",
		scene.WithSeed(5),
		scene.WithCount(1),
		scene.WithVolume(mgl32.Vec3{-100, -100, -100}, mgl32.Vec3{100, 100, 100}),
	)
	e := NewEngine(WithScene(0, s))

	d := s.Drifters()[0]
	before := d.Position()
	if err := e.Step(0.5); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	want := before.Add(d.LinearVelocity().Mul(0.5))
	if !d.Position().ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("position = %v, want %v", d.Position(), want)
	}
}

func TestScrollMovesCamera(t *testing.T) {
	host := newFakeHost()
	host.height = 800
	tracker := scroll.NewTracker(scroll.WithViewportHeight(800))
	s := scene.NewScene("scroll", scene.WithSeed(1), scene.WithCount(1), scene.WithScrollTracker(tracker))
	e := NewEngine(WithWindow(host), WithTracker(tracker), WithScene(0, s))

	// Page 4000, viewport 800, range 20: the camera follows 10 - (offset+400)/200.
	tests := []struct {
		name   string
		offset float32
		wantY  float32
	}{
		{"top", 0, 8},
		{"middle", 1600, 0},
		{"bottom", 3200, -8},
		{"back to top", 0, 8},
	}
	for _, tt := range tests {
		tracker.ScrollTo(tt.offset)
		if err := e.Step(0); err != nil {
			t.Fatalf("%s: Step() error = %v", tt.name, err)
		}
		if got := s.Camera().Position().Y(); mgl32.Abs(got-tt.wantY) > 1e-4 {
			t.Errorf("%s: camera y = %v, want %v", tt.name, got, tt.wantY)
		}
	}

	host.onScroll(-1) // one notch down from the top
	if err := e.Step(0); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if got, want := s.Camera().Position().Y(), tracker.CameraY(); mgl32.Abs(got-want) > 1e-4 {
		t.Errorf("camera y after wheel = %v, want %v", got, want)
	}

	host.onResize(800, 400)
	if err := e.Step(0); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if got, want := s.Camera().Position().Y(), tracker.CameraY(); mgl32.Abs(got-want) > 1e-4 {
		t.Errorf("camera y after resize = %v, want %v", got, want)
	}
}

func TestResizeIgnoresEmptySize(t *testing.T) {
	host := newFakeHost()
	r := &fakeRenderer{}
	s := scene.NewScene("empty", scene.WithSeed(1), scene.WithCount(1))
	e := NewEngine(WithWindow(host), WithRenderer(r), WithScene(0, s))
	aspect := s.Camera().Aspect()
	viewport := e.Tracker().ViewportHeight()

	host.onResize(640, 0)
	host.onResize(0, 480)

	if got := s.Camera().Aspect(); got != aspect {
		t.Errorf("aspect = %v, want unchanged %v", got, aspect)
	}
	if len(r.resizes) != 0 {
		t.Errorf("renderer resizes = %v, want none", r.resizes)
	}
	if got := e.Tracker().ViewportHeight(); got != viewport {
		t.Errorf("viewport = %v, want unchanged %v", got, viewport)
	}
}

func TestMismatchedScrollScaleIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	tracker := scroll.NewTracker(scroll.WithPageHeight(8000))
	e := NewEngine(WithTracker(tracker), WithScene(0, scene.NewScene("default", scene.WithSeed(1), scene.WithCount(1))))
	if !strings.Contains(buf.String(), "does not match tracker scale") {
		t.Errorf("no warning logged for default scene, log = %q", buf.String())
	}

	buf.Reset()
	e.AddScene(1, scene.NewScene("tied", scene.WithSeed(1), scene.WithCount(1), scene.WithScrollTracker(tracker)))
	if buf.Len() != 0 {
		t.Errorf("unexpected warning for scene built from the tracker: %q", buf.String())
	}
}

func TestKeysSelectPalette(t *testing.T) {
	host := newFakeHost()
	s := scene.NewScene("colors", scene.WithSeed(1), scene.WithCount(1))
	e := NewEngine(WithWindow(host), WithScene(0, s))
	schemes := palette.DefaultSchemes()

	host.onKey(common.Key2)
	if _, i := e.Palette().Current(); i != 1 {
		t.Fatalf("palette index = %d, want 1", i)
	}
	if got := s.Background(); !got.AlmostEqualRgb(schemes[1].Background) {
		t.Errorf("background = %s, want %s", got.Hex(), schemes[1].Background.Hex())
	}
	if got := s.Outline().Color(); !got.AlmostEqualRgb(schemes[1].Foreground) {
		t.Errorf("outline = %s, want %s", got.Hex(), schemes[1].Foreground.Hex())
	}

	host.onKey(common.KeyP)
	if _, i := e.Palette().Current(); i != 2 {
		t.Errorf("palette index after P = %d, want 2", i)
	}

	var forwarded []uint32
	e.SetKeyCallback(func(k uint32) { forwarded = append(forwarded, k) })
	host.onKey('X')
	if len(forwarded) != 1 || forwarded[0] != 'X' {
		t.Errorf("forwarded keys = %v, want [X]", forwarded)
	}
}

func TestResizeUpdatesCameraRendererAndViewport(t *testing.T) {
	host := newFakeHost()
	r := &fakeRenderer{}
	s := scene.NewScene("resize", scene.WithSeed(1), scene.WithCount(1))
	e := NewEngine(WithWindow(host), WithRenderer(r), WithScene(0, s))

	host.onResize(1000, 500)

	if got := s.Camera().Aspect(); mgl32.Abs(got-2) > 1e-6 {
		t.Errorf("aspect = %v, want 2", got)
	}
	if len(r.resizes) != 1 || r.resizes[0] != [2]int{1000, 500} {
		t.Errorf("renderer resizes = %v", r.resizes)
	}
	if got := e.Tracker().ViewportHeight(); got != 500 {
		t.Errorf("viewport = %v, want 500", got)
	}
}

func TestStepReturnsRenderError(t *testing.T) {
	r := &fakeRenderer{err: errors.New("surface lost")}
	rendered := 0
	e := NewEngine(WithRenderer(r), WithScene(0, scene.NewScene("err", scene.WithSeed(1), scene.WithCount(1))))
	e.SetRenderCallback(func(float32) { rendered++ })

	if err := e.Step(0.01); err == nil {
		t.Fatal("Step() error = nil, want renderer error")
	}
	if rendered != 1 {
		t.Errorf("render callback ran %d times, want 1", rendered)
	}
}

func TestRunStopsOnQuit(t *testing.T) {
	host := newFakeHost()
	e := NewEngine(WithWindow(host), WithTickRate(500), WithScene(0, scene.NewScene("run", scene.WithSeed(1), scene.WithCount(2))))

	var once sync.Once
	ticks := 0
	e.SetTickCallback(func(float32) {
		ticks++
		if ticks >= 3 {
			once.Do(e.Quit)
		}
	})

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Quit")
	}
	if host.IsRunning() {
		t.Error("window still running after Run returned")
	}
	e.Quit() // idempotent
}
