package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDefaults(t *testing.T) {
	c := NewCamera()
	if c.Position() != (mgl32.Vec3{0, 0, 10}) {
		t.Errorf("Position() = %v, want (0,0,10)", c.Position())
	}
	if c.Near() != 1 || c.Far() != 100 {
		t.Errorf("near/far = %v/%v, want 1/100", c.Near(), c.Far())
	}
	if math.Abs(float64(c.Fov()-mgl32.DegToRad(45))) > 1e-6 {
		t.Errorf("Fov() = %v, want 45 degrees", c.Fov())
	}
}

func TestTranslateKeepsDirection(t *testing.T) {
	c := NewCamera()
	before := c.ViewMatrix()
	c.Translate(mgl32.Vec3{0, 3, 0})

	if c.Direction() != (mgl32.Vec3{0, 0, -1}) {
		t.Errorf("Direction() = %v after translate", c.Direction())
	}
	// a pure translation of the camera shifts the view by the opposite amount
	want := mgl32.Translate3D(0, -3, 0).Mul4(before)
	if !c.ViewMatrix().ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("ViewMatrix() = %v, want %v", c.ViewMatrix(), want)
	}
}

func TestViewProjectionCentersTarget(t *testing.T) {
	c := NewCamera(WithAspect(16.0 / 9.0))
	clip := c.ViewProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	ndc := clip.Vec3().Mul(1 / clip.W())
	if math.Abs(float64(ndc.X())) > 1e-6 || math.Abs(float64(ndc.Y())) > 1e-6 {
		t.Errorf("origin projects to %v, want screen center", ndc)
	}
	if ndc.Z() <= 0 || ndc.Z() >= 1 {
		t.Errorf("origin depth = %v, want inside (0, 1)", ndc.Z())
	}
}

func TestSetAspectRecomputesProjection(t *testing.T) {
	c := NewCamera()
	before := c.ProjectionMatrix()
	c.SetAspect(2)
	after := c.ProjectionMatrix()
	if after.At(0, 0) != before.At(0, 0)/2 {
		t.Errorf("x scale = %v, want %v", after.At(0, 0), before.At(0, 0)/2)
	}
	if after.At(1, 1) != before.At(1, 1) {
		t.Errorf("y scale changed with aspect")
	}
}

func TestUniformLayout(t *testing.T) {
	c := NewCamera(WithPosition(mgl32.Vec3{1, 2, 3}))
	u := Uniform(c)
	if u.Size() != 144 {
		t.Fatalf("Size() = %d, want 144", u.Size())
	}
	buf := u.Marshal()
	y := math.Float32frombits(binary.LittleEndian.Uint32(buf[132:136]))
	if y != 2 {
		t.Errorf("camera y in uniform = %v, want 2", y)
	}
}
