package common

import "github.com/go-gl/mathgl/mgl64"

// FrustumPlane is a plane ax + by + cz + d = 0 with (a, b, c) = Normal and d = Distance.
type FrustumPlane struct {
	Normal   mgl64.Vec3
	Distance float64
}

// Frustum represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]FrustumPlane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// FrustumFromMatrix extracts frustum planes from a view-projection matrix using the
// Gribb/Hartmann method.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: the combined projection * view matrix
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func FrustumFromMatrix(viewProj mgl64.Mat4) Frustum {
	r0, r1, r2, r3 := viewProj.Row(0), viewProj.Row(1), viewProj.Row(2), viewProj.Row(3)
	rows := [6]mgl64.Vec4{
		r3.Add(r0), // left
		r3.Sub(r0), // right
		r3.Add(r1), // bottom
		r3.Sub(r1), // top
		r3.Add(r2), // near
		r3.Sub(r2), // far
	}

	var f Frustum
	for i, r := range rows {
		p := FrustumPlane{Normal: r.Vec3(), Distance: r.W()}
		if l := p.Normal.Len(); l > 0 {
			p.Normal = p.Normal.Mul(1 / l)
			p.Distance /= l
		}
		f.Planes[i] = p
	}
	return f
}

// ContainsSphere reports whether any part of the sphere lies inside the frustum.
// Spheres straddling a corner may be reported inside; callers use it only to skip work.
//
// Parameters:
//   - center: sphere center in world space
//   - radius: sphere radius
//
// Returns:
//   - bool: false if the sphere is entirely outside one of the planes
func (f Frustum) ContainsSphere(center mgl64.Vec3, radius float64) bool {
	for _, p := range f.Planes {
		if p.Normal.Dot(center)+p.Distance < -radius {
			return false
		}
	}
	return true
}
