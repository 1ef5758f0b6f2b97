package material

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestOutlineAndFillPresets(t *testing.T) {
	fg := colorful.Color{R: 1, G: 1, B: 1}
	bg := colorful.Color{}

	outline := NewOutline(fg)
	if !outline.Wireframe() || outline.Transparent() || !outline.DepthWrite() {
		t.Errorf("outline state = %+v", outline.Snapshot())
	}
	if outline.Color() != fg {
		t.Errorf("outline color = %v, want %v", outline.Color(), fg)
	}

	fill := NewFill(bg)
	if fill.Wireframe() || !fill.Transparent() || !fill.DepthTest() || fill.DepthWrite() {
		t.Errorf("fill state = %+v", fill.Snapshot())
	}
	on, factor, _ := fill.PolygonOffset()
	if !on || factor != 1 {
		t.Errorf("fill polygon offset = %v %v, want enabled factor 1", on, factor)
	}
}

func TestSnapshotIsolatedFromLaterChanges(t *testing.T) {
	m := NewMaterial(WithColor(colorful.Color{R: 1}))
	snap := m.Snapshot()
	m.SetColor(colorful.Color{G: 1})
	if snap.Color.R != 1 || snap.Color.G != 0 {
		t.Errorf("snapshot changed: %v", snap.Color)
	}
	if m.Color().G != 1 {
		t.Errorf("SetColor did not apply")
	}
}

func TestUniformLayout(t *testing.T) {
	u := Uniform(Params{Color: colorful.Color{R: 0.25, G: 0.5, B: 0.75}, Opacity: 1})
	if u.Size() != 16 {
		t.Fatalf("Size() = %d, want 16", u.Size())
	}
	buf := u.Marshal()
	want := []float32{0.25, 0.5, 0.75, 1}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4 : i*4+4]))
		if got != w {
			t.Errorf("component %d = %v, want %v", i, got, w)
		}
	}
}
