package raycast

import (
	"github.com/Carmen-Shannon/oxy-planner/common"
	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half-line starting at Origin and extending along the unit vector Direction.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Camera is the minimal camera capability needed to build picking rays.
type Camera interface {
	// Position returns the camera's world-space eye position.
	Position() mgl64.Vec3

	// InverseViewProjectionMatrix maps normalized device coordinates back to world space.
	InverseViewProjectionMatrix() mgl64.Mat4
}

// parallelProjection is implemented by cameras whose rays do not converge at the eye.
type parallelProjection interface {
	Extents() (left, right, top, bottom float64)
}

// FromScreen builds the picking ray through a window coordinate.
// The screen point is converted to normalized device coordinates using the viewport (including its
// margins) and unprojected onto the far plane. Perspective rays start at the camera position;
// orthographic rays start at the matching point on the near plane.
//
// Parameters:
//   - x, y: window coordinates in pixels
//   - cam: the active camera
//   - viewport: the region of the window the camera renders into
//
// Returns:
//   - Ray: the normalized picking ray
func FromScreen(x, y float64, cam Camera, viewport common.Viewport) Ray {
	nx, ny := viewport.ToNDC(x, y)
	inv := cam.InverseViewProjectionMatrix()
	far := common.TransformPoint(inv, mgl64.Vec3{nx, ny, 1})

	origin := cam.Position()
	if _, ok := cam.(parallelProjection); ok {
		origin = common.TransformPoint(inv, mgl64.Vec3{nx, ny, -1})
	}

	dir, ok := common.NormalizeOrZero(far.Sub(origin))
	if !ok {
		// Degenerate camera matrices: fall back to looking down the world -Z axis.
		dir = mgl64.Vec3{0, 0, -1}
	}
	return Ray{Origin: origin, Direction: dir}
}
