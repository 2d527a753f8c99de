package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PolarEpsilon keeps the polar angle away from the poles, where the look-at direction becomes
// parallel to the world up axis and the view basis degenerates.
const PolarEpsilon = 1e-6

// WorldUp is the world up axis used by every camera in the engine.
var WorldUp = mgl64.Vec3{0, 1, 0}

// Spherical expresses an offset from a target point as radius, polar angle and azimuth.
// Phi is measured from the +Y axis, Theta is measured around the Y axis starting at +Z.
type Spherical struct {
	Radius float64
	Phi    float64
	Theta  float64
}

// SphericalFromOffset converts a Cartesian offset into spherical coordinates.
//
// Parameters:
//   - offset: vector from the target to the camera
//
// Returns:
//   - Spherical: radius, polar angle and azimuth of the offset
func SphericalFromOffset(offset mgl64.Vec3) Spherical {
	x, y, z := offset.Elem()
	return Spherical{
		Radius: offset.Len(),
		Phi:    math.Atan2(math.Sqrt(x*x+z*z), y),
		Theta:  math.Atan2(x, z),
	}
}

// Offset reconstructs the Cartesian offset described by s.
//
// Returns:
//   - mgl64.Vec3: the offset from the target
func (s Spherical) Offset() mgl64.Vec3 {
	sinPhiRadius := math.Sin(s.Phi) * s.Radius
	return mgl64.Vec3{
		sinPhiRadius * math.Sin(s.Theta),
		math.Cos(s.Phi) * s.Radius,
		sinPhiRadius * math.Cos(s.Theta),
	}
}

// ClampPolar clamps a polar angle to the configured limits and then to [PolarEpsilon, π−PolarEpsilon].
// The epsilon band always wins, so a misconfigured range can never reach a pole.
//
// Parameters:
//   - phi: polar angle in radians
//   - minPolar: lower configured limit
//   - maxPolar: upper configured limit
//
// Returns:
//   - float64: the clamped polar angle
func ClampPolar(phi, minPolar, maxPolar float64) float64 {
	phi = math.Max(minPolar, math.Min(maxPolar, phi))
	return math.Max(PolarEpsilon, math.Min(math.Pi-PolarEpsilon, phi))
}

// ClampRadius clamps a radius to [minDistance, maxDistance].
//
// Parameters:
//   - radius: candidate radius
//   - minDistance: lower bound
//   - maxDistance: upper bound
//
// Returns:
//   - float64: the clamped radius
func ClampRadius(radius, minDistance, maxDistance float64) float64 {
	return math.Max(minDistance, math.Min(maxDistance, radius))
}

// NormalizeOrZero normalizes v, returning false instead of NaN components when v has (near) zero length.
//
// Parameters:
//   - v: the vector to normalize
//
// Returns:
//   - mgl64.Vec3: unit vector, or the zero vector
//   - bool: false if v could not be normalized
func NormalizeOrZero(v mgl64.Vec3) (mgl64.Vec3, bool) {
	l := v.Len()
	if l < 1e-12 {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// TransformPoint multiplies a point by a 4x4 matrix and applies the perspective divide.
//
// Parameters:
//   - m: the transform
//   - p: the point (w = 1)
//
// Returns:
//   - mgl64.Vec3: the transformed point
func TransformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	v := m.Mul4x1(p.Vec4(1))
	if v[3] != 0 && v[3] != 1 {
		return v.Vec3().Mul(1 / v[3])
	}
	return v.Vec3()
}
