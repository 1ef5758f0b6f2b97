package drifter

import (
	"testing"

	"github.com/Carmen-Shannon/polydrift/common"
	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func TestNewDrifterDefaults(t *testing.T) {
	d := NewDrifter()
	if d.Scale() != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("Scale() = %v, want (1,1,1)", d.Scale())
	}
	if d.Position() != (mgl32.Vec3{}) || d.Rotation() != (mgl32.Vec3{}) {
		t.Errorf("expected zero position and rotation, got %v %v", d.Position(), d.Rotation())
	}
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name    string
		rot     mgl32.Vec3
		pos     mgl32.Vec3
		angular mgl32.Vec3
		linear  mgl32.Vec3
		dt      float32
		wantRot mgl32.Vec3
		wantPos mgl32.Vec3
	}{
		{
			name:    "quarter second",
			angular: mgl32.Vec3{0.4, -0.2, 0},
			dt:      0.5,
			wantRot: mgl32.Vec3{0.2, -0.1, 0},
		},
		{
			name:    "rotation and translation",
			rot:     mgl32.Vec3{1, 1, 1},
			pos:     mgl32.Vec3{2, -3, 4},
			angular: mgl32.Vec3{0.5, 0.5, 0.5},
			linear:  mgl32.Vec3{1, 2, -3},
			dt:      2,
			wantRot: mgl32.Vec3{2, 2, 2},
			wantPos: mgl32.Vec3{4, 1, -2},
		},
		{
			name:    "zero elapsed time",
			rot:     mgl32.Vec3{0.3, 0.2, 0.1},
			pos:     mgl32.Vec3{1, 2, 3},
			angular: mgl32.Vec3{9, 9, 9},
			linear:  mgl32.Vec3{9, 9, 9},
			dt:      0,
			wantRot: mgl32.Vec3{0.3, 0.2, 0.1},
			wantPos: mgl32.Vec3{1, 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDrifter(
				WithRotation(tt.rot),
				WithPosition(tt.pos),
				WithAngularVelocity(tt.angular),
				WithLinearVelocity(tt.linear),
			)
			d.Advance(tt.dt)
			if !d.Rotation().ApproxEqualThreshold(tt.wantRot, eps) {
				t.Errorf("Rotation() = %v, want %v", d.Rotation(), tt.wantRot)
			}
			if !d.Position().ApproxEqualThreshold(tt.wantPos, eps) {
				t.Errorf("Position() = %v, want %v", d.Position(), tt.wantPos)
			}
			if d.AngularVelocity() != tt.angular || d.LinearVelocity() != tt.linear {
				t.Errorf("velocities changed by Advance")
			}
		})
	}
}

func TestWrapIntoKeepsVelocity(t *testing.T) {
	box := common.NewBox(mgl32.Vec3{-5, -5, -5}, mgl32.Vec3{5, 5, 5})
	d := NewDrifter(
		WithPosition(mgl32.Vec3{4.9, 0, 0}),
		WithLinearVelocity(mgl32.Vec3{1, 0, 0}),
	)
	d.Advance(0.2)
	if !d.WrapInto(box) {
		t.Fatalf("expected wrap at x=%v", d.Position().X())
	}
	if d.Position().X() != -5 {
		t.Errorf("x = %v, want -5", d.Position().X())
	}
	if d.LinearVelocity() != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("LinearVelocity() = %v, want unchanged", d.LinearVelocity())
	}
	if d.WrapInto(box) {
		t.Errorf("drifter on the face should not wrap again")
	}
}

func TestHandlesShareTransform(t *testing.T) {
	d := NewDrifter(
		WithID(7),
		WithPosition(mgl32.Vec3{1, 2, 3}),
		WithAngularVelocity(mgl32.Vec3{0.1, 0.2, 0.3}),
		WithLinearVelocity(mgl32.Vec3{0.5, 0, -0.5}),
	)
	box := common.NewBox(mgl32.Vec3{-2, -2, -2}, mgl32.Vec3{2, 2, 2})
	for range 50 {
		d.Advance(0.25)
		d.WrapInto(box)
		if d.Outline().Transform() != d.Fill().Transform() {
			t.Fatalf("outline %v and fill %v diverged", d.Outline().Transform(), d.Fill().Transform())
		}
	}
	if d.Outline().Owner().ID() != 7 || d.Fill().Owner().ID() != 7 {
		t.Errorf("handles report the wrong owner")
	}
	if d.Outline().Part() != PartOutline || d.Fill().Part() != PartFill {
		t.Errorf("handle parts = %v, %v", d.Outline().Part(), d.Fill().Part())
	}
}

func TestModelMatrixMatchesTransform(t *testing.T) {
	tr := Transform{
		Position: mgl32.Vec3{1, -2, 3},
		Rotation: mgl32.Vec3{0.3, 0.6, -0.9},
		Scale:    mgl32.Vec3{1, 1, 1},
	}
	d := NewDrifter(WithPosition(tr.Position), WithRotation(tr.Rotation))
	want := common.BuildModelMatrix(tr.Position, tr.Rotation, tr.Scale)
	if !d.ModelMatrix().ApproxEqualThreshold(want, eps) {
		t.Errorf("ModelMatrix() = %v, want %v", d.ModelMatrix(), want)
	}
}
