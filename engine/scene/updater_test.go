package scene

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/polydrift/common"
	"github.com/Carmen-Shannon/polydrift/engine/camera"
	"github.com/Carmen-Shannon/polydrift/engine/drifter"
	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-4

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) <= eps
}

func TestAdvanceRotationProperty(t *testing.T) {
	d := drifter.NewDrifter(
		drifter.WithRotation(mgl32.Vec3{0.1, 0.2, 0.3}),
		drifter.WithAngularVelocity(mgl32.Vec3{0.5, -0.25, 1}),
	)
	u := NewUpdater([]drifter.Drifter{d}, camera.NewCamera(),
		WithFixedVolume(common.NewBox(mgl32.Vec3{-5, -5, -5}, mgl32.Vec3{5, 5, 5})))

	u.Advance(0.4)
	want := mgl32.Vec3{0.1 + 0.5*0.4, 0.2 - 0.25*0.4, 0.3 + 1*0.4}
	if !d.Rotation().ApproxEqualThreshold(want, eps) {
		t.Errorf("Rotation() = %v, want %v", d.Rotation(), want)
	}
}

func TestAdvanceZeroIsIdentity(t *testing.T) {
	s := NewScene("zero", WithSeed(3))
	before := make([]drifter.Transform, len(s.Drifters()))
	for i, d := range s.Drifters() {
		before[i] = d.Transform()
	}
	s.Advance(0)
	for i, d := range s.Drifters() {
		if d.Transform() != before[i] {
			t.Errorf("drifter %d moved on Advance(0): %v -> %v", i, before[i], d.Transform())
		}
	}
}

func TestAdvanceWrapsPerAxis(t *testing.T) {
	box := common.NewBox(mgl32.Vec3{-5, -5, -5}, mgl32.Vec3{5, 5, 5})
	tests := []struct {
		name   string
		start  mgl32.Vec3
		linear mgl32.Vec3
		dt     float32
		want   mgl32.Vec3
	}{
		{"exits +x", mgl32.Vec3{4.9, 0, 0}, mgl32.Vec3{1, 0, 0}, 0.2, mgl32.Vec3{-5, 0, 0}},
		{"exits -y", mgl32.Vec3{0, -4.9, 1}, mgl32.Vec3{0, -1, 0}, 0.2, mgl32.Vec3{0, 5, 1}},
		{"exits x and z", mgl32.Vec3{4.9, 1, -4.9}, mgl32.Vec3{1, 0, -1}, 0.2, mgl32.Vec3{-5, 1, 5}},
		{"lands on face", mgl32.Vec3{4.5, 0, 0}, mgl32.Vec3{1, 0, 0}, 0.5, mgl32.Vec3{5, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := drifter.NewDrifter(
				drifter.WithPosition(tt.start),
				drifter.WithLinearVelocity(tt.linear),
			)
			u := NewUpdater([]drifter.Drifter{d}, camera.NewCamera(), WithFixedVolume(box))
			u.Advance(tt.dt)
			if !d.Position().ApproxEqualThreshold(tt.want, eps) {
				t.Errorf("Position() = %v, want %v", d.Position(), tt.want)
			}
			if d.LinearVelocity() != tt.linear {
				t.Errorf("velocity changed to %v", d.LinearVelocity())
			}
		})
	}
}

func TestPairInvariantOverManyFrames(t *testing.T) {
	s := NewScene("pairs", WithSeed(11), WithVelocityRanges(4, 8))
	for frame := range 200 {
		s.Tick(0.1, float32(frame*5))
		for _, d := range s.Drifters() {
			if d.Outline().Transform() != d.Fill().Transform() {
				t.Fatalf("frame %d: drifter %d outline and fill diverged", frame, d.ID())
			}
		}
	}
}

func TestRepositionIndependentOfElapsedTime(t *testing.T) {
	const k = -0.01
	run := func(dt float32) float32 {
		cam := camera.NewCamera()
		u := NewUpdater(nil, cam, WithScrollScale(k))
		u.Tick(dt, 250)
		return cam.Position().Y()
	}

	want := float32(k * 250)
	for _, dt := range []float32{0, 1.0 / 60, 5} {
		if got := run(dt); !approx(got, want) {
			t.Errorf("dt=%v: camera y = %v, want %v", dt, got, want)
		}
	}
}

func TestRepositionUsesDeltas(t *testing.T) {
	cam := camera.NewCamera()
	u := NewUpdater(nil, cam, WithScrollScale(-0.005), WithInitialScroll(400))

	u.Reposition(400)
	if y := cam.Position().Y(); y != 0 {
		t.Errorf("first reposition at the initial offset moved the camera to y=%v", y)
	}

	u.Reposition(600)
	u.Reposition(500)
	if y := cam.Position().Y(); !approx(y, -0.5) {
		t.Errorf("camera y = %v, want -0.5", y)
	}
	if u.LastScroll() != 500 {
		t.Errorf("LastScroll() = %v, want 500", u.LastScroll())
	}
}

func TestCameraRelativeVolumeSize(t *testing.T) {
	half := mgl32.Vec3{10, 12, 9}
	cam := camera.NewCamera()
	u := NewUpdater(nil, cam, WithCameraRelativeVolume(half, -11), WithScrollScale(-0.05))

	for _, offset := range []float32{0, 120, 3999, -700, 15} {
		u.Reposition(offset)
		v := u.Volume()
		size := v.Max.Sub(v.Min)
		if !size.ApproxEqualThreshold(half.Mul(2), eps) {
			t.Fatalf("offset %v: volume size = %v, want %v", offset, size, half.Mul(2))
		}
		wantCenter := cam.Position().Add(mgl32.Vec3{0, 0, -11})
		if !v.Center().ApproxEqualThreshold(wantCenter, eps) {
			t.Errorf("offset %v: center = %v, want %v", offset, v.Center(), wantCenter)
		}
	}
}

func TestFixedVolumeIgnoresCamera(t *testing.T) {
	box := common.NewBox(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
	cam := camera.NewCamera()
	u := NewUpdater(nil, cam, WithFixedVolume(box), WithScrollScale(1))
	u.Reposition(100)
	if u.Volume() != box {
		t.Errorf("Volume() = %v, want %v", u.Volume(), box)
	}
	if cam.Position().Y() != 100 {
		t.Errorf("camera y = %v, want 100", cam.Position().Y())
	}
}

func TestDefaultVolumesAgree(t *testing.T) {
	cam := camera.NewCamera()
	fixed := DefaultFixedVolume(cam)
	relative := CameraRelativeVolume(cam.Position(), DefaultHalfExtents, DefaultForwardOffset)
	if !fixed.Min.ApproxEqualThreshold(relative.Min, eps) || !fixed.Max.ApproxEqualThreshold(relative.Max, eps) {
		t.Errorf("fixed %v and camera-relative %v differ at the default camera", fixed, relative)
	}
	if fixed.Max.Z() != 8 {
		t.Errorf("fixed max z = %v, want 8", fixed.Max.Z())
	}
}

func TestUpdaterDefaultsToFixedVolume(t *testing.T) {
	cam := camera.NewCamera()
	d := drifter.NewDrifter(
		drifter.WithPosition(mgl32.Vec3{3, -4, 2}),
		drifter.WithLinearVelocity(mgl32.Vec3{1, 1, 1}),
	)
	u := NewUpdater([]drifter.Drifter{d}, cam)

	if got, want := u.Volume(), DefaultFixedVolume(cam); got != want {
		t.Fatalf("Volume() = %v, want %v", got, want)
	}
	if u.Mode() != VolumeModeFixed {
		t.Errorf("Mode() = %v, want fixed", u.Mode())
	}

	u.Advance(0)
	if got := d.Position(); got != (mgl32.Vec3{3, -4, 2}) {
		t.Errorf("position after Advance(0) = %v, want unchanged", got)
	}
}
