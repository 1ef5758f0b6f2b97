package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewBoxNormalizesCorners(t *testing.T) {
	b := NewBox(mgl32.Vec3{5, -1, 2}, mgl32.Vec3{-5, 1, -2})
	if b.Min != (mgl32.Vec3{-5, -1, -2}) || b.Max != (mgl32.Vec3{5, 1, 2}) {
		t.Errorf("expected normalized box, got min=%v max=%v", b.Min, b.Max)
	}
}

func TestNewBoxFromCenterSize(t *testing.T) {
	half := mgl32.Vec3{10, 12, 9}
	for _, center := range []mgl32.Vec3{{0, 0, 0}, {3.5, -120, 7}, {-1e3, 1e3, 0.25}} {
		b := NewBoxFromCenter(center, half)
		size := b.Size()
		for i := range 3 {
			if diff := size[i] - 2*half[i]; diff > 1e-3 || diff < -1e-3 {
				t.Errorf("center %v axis %d: expected size %v, got %v", center, i, 2*half[i], size[i])
			}
		}
		if !b.Center().ApproxEqualThreshold(center, 1e-3) {
			t.Errorf("expected center %v, got %v", center, b.Center())
		}
	}
}

func TestBoxWrap(t *testing.T) {
	b := NewBox(mgl32.Vec3{-5, -5, -5}, mgl32.Vec3{5, 5, 5})

	tests := []struct {
		name    string
		in      mgl32.Vec3
		want    mgl32.Vec3
		wrapped bool
	}{
		{"past max x", mgl32.Vec3{5.1, 0, 0}, mgl32.Vec3{-5, 0, 0}, true},
		{"below min y", mgl32.Vec3{1, -5.01, 2}, mgl32.Vec3{1, 5, 2}, true},
		{"exactly on max face", mgl32.Vec3{5, 0, 0}, mgl32.Vec3{5, 0, 0}, false},
		{"exactly on min face", mgl32.Vec3{0, 0, -5}, mgl32.Vec3{0, 0, -5}, false},
		{"inside", mgl32.Vec3{1, 2, 3}, mgl32.Vec3{1, 2, 3}, false},
		{"every axis independently", mgl32.Vec3{6, -6, 7}, mgl32.Vec3{-5, 5, -5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, wrapped := b.Wrap(tt.in)
			if got != tt.want || wrapped != tt.wrapped {
				t.Errorf("Wrap(%v) = %v, %v; want %v, %v", tt.in, got, wrapped, tt.want, tt.wrapped)
			}
		})
	}
}

func TestBoxContains(t *testing.T) {
	b := NewBox(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
	if !b.Contains(mgl32.Vec3{1, -1, 0}) {
		t.Error("expected boundary point to be contained")
	}
	if b.Contains(mgl32.Vec3{0, 0, 1.001}) {
		t.Error("expected outside point to be rejected")
	}
}
