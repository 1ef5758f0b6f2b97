package scene

import (
	"math/rand"
	"testing"

	"github.com/Carmen-Shannon/polydrift/engine/model"
	"github.com/Carmen-Shannon/polydrift/engine/scroll"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

func TestBootstrapDeterministic(t *testing.T) {
	a := NewScene("a", WithSeed(42))
	b := NewScene("b", WithSeed(42))
	c := NewScene("c", WithSeed(43))

	if len(a.Drifters()) != DefaultCount {
		t.Fatalf("count = %d, want %d", len(a.Drifters()), DefaultCount)
	}

	same := true
	for i := range a.Drifters() {
		da, db, dc := a.Drifters()[i], b.Drifters()[i], c.Drifters()[i]
		if da.Transform() != db.Transform() || da.AngularVelocity() != db.AngularVelocity() || da.LinearVelocity() != db.LinearVelocity() {
			t.Fatalf("drifter %d differs between equal seeds", i)
		}
		if da.Transform() != dc.Transform() {
			same = false
		}
	}
	if same {
		t.Errorf("different seeds produced identical placements")
	}
}

func TestBootstrapRanges(t *testing.T) {
	s := NewScene("ranges", WithSeed(7), WithCount(200), WithVelocityRanges(2, 0.5))
	v := s.Volume()
	for _, d := range s.Drifters() {
		if !v.Contains(d.Position()) {
			t.Errorf("drifter %d at %v outside %v", d.ID(), d.Position(), v)
		}
		for a := range 3 {
			if w := d.AngularVelocity()[a]; w < -1 || w >= 1 {
				t.Errorf("angular component %v outside [-1, 1)", w)
			}
			if w := d.LinearVelocity()[a]; w < -0.25 || w >= 0.25 {
				t.Errorf("linear component %v outside [-0.25, 0.25)", w)
			}
		}
	}
}

func TestPopulateUsesInjectedSource(t *testing.T) {
	box := DefaultFixedVolume(NewScene("x", WithCount(0)).Camera())
	a := Populate(rand.New(rand.NewSource(1)), 5, box, 1, 1)
	b := Populate(rand.New(rand.NewSource(1)), 5, box, 1, 1)
	for i := range a {
		if a[i].Position() != b[i].Position() {
			t.Fatalf("drifter %d differs", i)
		}
		if a[i].ID() != uint64(i) {
			t.Errorf("ID() = %d, want %d", a[i].ID(), i)
		}
	}
}

func TestDefaults(t *testing.T) {
	s := NewScene("defaults", WithSeed(1))
	if s.Mesh().Shape() != model.ShapeIcosahedron || s.Mesh().Radius() != 1 {
		t.Errorf("mesh = %s r%v", s.Mesh().Shape(), s.Mesh().Radius())
	}
	v := s.Volume()
	if v.Min != (mgl32.Vec3{-10, -12, -10}) || v.Max != (mgl32.Vec3{10, 12, 8}) {
		t.Errorf("volume = %v", v)
	}
	fog := s.Fog()
	if fog.Near != -20 || fog.Far != 23 {
		t.Errorf("fog = %v..%v, want -20..23", fog.Near, fog.Far)
	}
	if s.Outline().Color().Hex() != "#ffffff" || s.Background().Hex() != "#000000" {
		t.Errorf("colors = %s on %s", s.Outline().Color().Hex(), s.Background().Hex())
	}
	if !s.Active() {
		t.Errorf("scene should start active")
	}
}

func TestSetColors(t *testing.T) {
	s := NewScene("colors", WithSeed(1))
	fg := colorful.Color{R: 1, G: 0.5, B: 0}
	bg := colorful.Color{R: 0, G: 0.1, B: 0.2}
	s.SetColors(fg, bg)

	if s.Outline().Color() != fg {
		t.Errorf("outline = %v, want %v", s.Outline().Color(), fg)
	}
	if s.Fill().Color() != bg {
		t.Errorf("fill = %v, want %v", s.Fill().Color(), bg)
	}
	if s.Background() != bg {
		t.Errorf("background = %v, want %v", s.Background(), bg)
	}
	if s.Fog().Color != bg {
		t.Errorf("fog = %v, want %v", s.Fog().Color, bg)
	}
}

func TestFrameSnapshot(t *testing.T) {
	s := NewScene("frame", WithSeed(5), WithCount(37), WithChunkSize(4), WithFrameWorkers(3))
	s.Tick(0.25, 0)
	f := s.Frame()

	if f.Scene != "frame" {
		t.Errorf("Scene = %q", f.Scene)
	}
	if len(f.Models) != 37 {
		t.Fatalf("len(Models) = %d, want 37", len(f.Models))
	}
	for i, d := range s.Drifters() {
		if !f.Models[i].ApproxEqualThreshold(d.ModelMatrix(), 1e-6) {
			t.Errorf("model %d does not match drifter transform", i)
		}
	}
	if !f.ViewProj.ApproxEqualThreshold(s.Camera().ViewProjectionMatrix(), 1e-6) {
		t.Errorf("ViewProj mismatch")
	}
	if !f.Outline.Wireframe || !f.Fill.Transparent {
		t.Errorf("material snapshots = %+v %+v", f.Outline, f.Fill)
	}

	s.SetColors(colorful.Color{R: 1}, colorful.Color{B: 1})
	if f.Background == s.Background() {
		t.Errorf("frame background changed after SetColors")
	}
}

func TestCameraRelativeScene(t *testing.T) {
	s := NewScene("follow", WithSeed(9), WithVolumeMode(VolumeModeCameraRelative), WithScroll(-0.01, 0))
	s.Tick(0, 1000)
	if y := s.Camera().Position().Y(); !approx(y, -10) {
		t.Fatalf("camera y = %v, want -10", y)
	}
	if c := s.Volume().Center(); !approx(c.Y(), -10) {
		t.Errorf("volume center y = %v, want -10", c.Y())
	}
	// drifters left behind wrap into the moved volume on the next advance
	s.Advance(0)
	for _, d := range s.Drifters() {
		if !s.Volume().Contains(d.Position()) {
			t.Errorf("drifter %d at %v outside %v", d.ID(), d.Position(), s.Volume())
		}
	}
}

func TestScrollTrackerAnchorsCamera(t *testing.T) {
	const page, viewport, worldRange = 4000, 800, 20
	// absolute page mapping: cur is the page coordinate at the viewport middle
	absolute := func(offset float32) float32 {
		cur := offset + viewport/2
		return -(cur/page*worldRange - worldRange/2)
	}

	tr := scroll.NewTracker(scroll.WithPageHeight(page), scroll.WithViewportHeight(viewport), scroll.WithRange(worldRange))
	s := NewScene("anchored", WithSeed(3), WithScrollTracker(tr))

	if y := s.Camera().Position().Y(); !approx(y, 8) {
		t.Fatalf("initial camera y = %v, want 8", y)
	}
	if s.ScrollScale() != tr.CameraScale() {
		t.Errorf("ScrollScale() = %v, want %v", s.ScrollScale(), tr.CameraScale())
	}

	volume := s.Volume()
	for _, offset := range []float32{0, 1600, 3200, 800, 0} {
		tr.ScrollTo(offset)
		s.Tick(0, tr.Position())
		y := s.Camera().Position().Y()
		if !approx(y, absolute(offset)) {
			t.Errorf("offset %v: camera y = %v, want %v", offset, y, absolute(offset))
		}
		if y < volume.Min.Y() || y > volume.Max.Y() {
			t.Errorf("offset %v: camera y = %v outside volume %v", offset, y, volume)
		}
	}
}

func TestFogFactor(t *testing.T) {
	f := Fog{Near: -20, Far: 23}
	if got := f.Factor(-30); got != 0 {
		t.Errorf("Factor(-30) = %v, want 0", got)
	}
	if got := f.Factor(30); got != 1 {
		t.Errorf("Factor(30) = %v, want 1", got)
	}
	if got := f.Factor(1.5); !approx(got, 0.5) {
		t.Errorf("Factor(1.5) = %v, want 0.5", got)
	}
	if (&GPUFogUniform{}).Size() != 32 {
		t.Errorf("fog uniform size = %d, want 32", (&GPUFogUniform{}).Size())
	}
}
