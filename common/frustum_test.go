package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestFrustum_ContainsSphere(t *testing.T) {
	proj := mgl64.Perspective(mgl64.DegToRad(90), 1, 1, 1000)
	view := mgl64.LookAtV(mgl64.Vec3{}, mgl64.Vec3{0, 0, -1}, WorldUp)
	f := FrustumFromMatrix(proj.Mul4(view))

	tests := []struct {
		name   string
		center mgl64.Vec3
		radius float64
		want   bool
	}{
		{"ahead", mgl64.Vec3{0, 0, -10}, 1, true},
		{"behind", mgl64.Vec3{0, 0, 10}, 1, false},
		{"past the far plane", mgl64.Vec3{0, 0, -1100}, 50, false},
		{"far left", mgl64.Vec3{-100, 0, -10}, 1, false},
		{"straddling the left plane", mgl64.Vec3{-11, 0, -10}, 2, true},
		{"straddling the near plane", mgl64.Vec3{0, 0, -0.5}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.ContainsSphere(tt.center, tt.radius); got != tt.want {
				t.Errorf("ContainsSphere(%v, %v) = %v, want %v", tt.center, tt.radius, got, tt.want)
			}
		})
	}
}

func TestFrustumFromMatrix_NormalizesPlanes(t *testing.T) {
	proj := mgl64.Perspective(mgl64.DegToRad(45), 4.0/3.0, 1, 10000)
	view := mgl64.LookAtV(mgl64.Vec3{0, 500, 500}, mgl64.Vec3{}, WorldUp)
	f := FrustumFromMatrix(proj.Mul4(view))

	for i, p := range f.Planes {
		if !almostEqual(p.Normal.Len(), 1, 1e-9) {
			t.Errorf("plane %d normal length = %v, want 1", i, p.Normal.Len())
		}
	}
	if !f.ContainsSphere(mgl64.Vec3{}, 1) {
		t.Error("look-at target is outside the frustum")
	}
}
