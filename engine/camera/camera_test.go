package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-planner/common"
	"github.com/Carmen-Shannon/oxy-planner/engine/raycast"
	"github.com/go-gl/mathgl/mgl64"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func vecAlmostEqual(a, b mgl64.Vec3, eps float64) bool {
	return a.ApproxEqualThreshold(b, eps)
}

var testViewport = common.Viewport{Width: 800, Height: 600}

func newTestCamera() PerspectiveCamera {
	return NewPerspectiveCamera(DefaultFov,
		WithAspect(testViewport.Width/testViewport.Height),
		WithPosition(mgl64.Vec3{0, 500, 500}),
	)
}

func TestCamera_Axes(t *testing.T) {
	cam := newTestCamera()

	if got := cam.Right(); !vecAlmostEqual(got, mgl64.Vec3{1, 0, 0}, 1e-9) {
		t.Errorf("Right() = %v, want (1,0,0)", got)
	}
	s := math.Sqrt2 / 2
	if got := cam.CameraUp(); !vecAlmostEqual(got, mgl64.Vec3{0, s, -s}, 1e-9) {
		t.Errorf("CameraUp() = %v, want (0,%v,%v)", got, s, -s)
	}
}

func TestCamera_DegenerateLookAtKeepsView(t *testing.T) {
	cam := newTestCamera()
	before := cam.ViewMatrix()

	cam.LookAt(cam.Position())

	if after := cam.ViewMatrix(); after != before {
		t.Errorf("ViewMatrix changed on degenerate LookAt: %v -> %v", before, after)
	}
}

func TestCamera_ProjectMatchesPickingRay(t *testing.T) {
	tests := []struct {
		name string
		cam  Camera
	}{
		{"perspective", newTestCamera()},
		{"orthographic", NewOrthographicCameraForHeight(600, 800.0/600.0, WithPosition(mgl64.Vec3{0, 500, 500}))},
	}
	points := []mgl64.Vec3{{0, 0, 0}, {120, 30, -80}, {-200, 0, 150}}
	viewport := common.Viewport{X: 40, Y: 20, Width: 800, Height: 600}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, p := range points {
				screen := tt.cam.Project(p, viewport)
				ray := raycast.FromScreen(screen.X(), screen.Y(), tt.cam, viewport)

				// The point must lie on the ray: distance from p to its projection onto the ray is ~0.
				t0 := p.Sub(ray.Origin).Dot(ray.Direction)
				if miss := ray.At(t0).Sub(p).Len(); miss > 1e-6 {
					t.Errorf("ray through Project(%v) misses by %v", p, miss)
				}
			}
		})
	}
}

func TestPerspectiveCamera_SetFovRejectsInvalid(t *testing.T) {
	cam := newTestCamera()
	cam.SetFov(0)
	cam.SetFov(math.Pi)
	if got := cam.Fov(); !almostEqual(got, DefaultFov, 1e-12) {
		t.Errorf("Fov() = %v, want %v", got, DefaultFov)
	}
}

func TestOrthographicCamera_Extents(t *testing.T) {
	cam := NewOrthographicCameraForHeight(600, 2)
	left, right, top, bottom := cam.Extents()
	if left != -600 || right != 600 || top != 300 || bottom != -300 {
		t.Errorf("Extents() = %v %v %v %v, want -600 600 300 -300", left, right, top, bottom)
	}
}
