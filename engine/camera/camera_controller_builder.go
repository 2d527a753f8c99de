package camera

import "github.com/go-gl/mathgl/mgl64"

// OrbitControlsOption is a functional option for configuring OrbitControls.
type OrbitControlsOption func(*orbitControlsImpl)

// WithTarget sets the initial orbit pivot.
//
// Parameters:
//   - target: world-space pivot
//
// Returns:
//   - OrbitControlsOption: functional option to set the target
func WithTarget(target mgl64.Vec3) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.target = target
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - min: minimum distance from the target
//   - max: maximum distance from the target
//
// Returns:
//   - OrbitControlsOption: functional option to set radius bounds
func WithRadiusBounds(min, max float64) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.minDistance = min
		oc.maxDistance = max
	}
}

// WithPolarBounds sets the minimum and maximum polar angle measured from +Y.
// The angle is additionally kept a small epsilon away from both poles.
//
// Parameters:
//   - min: minimum polar angle in radians
//   - max: maximum polar angle in radians
//
// Returns:
//   - OrbitControlsOption: functional option to set polar bounds
func WithPolarBounds(min, max float64) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.minPolarAngle = min
		oc.maxPolarAngle = max
	}
}

// WithRotateSpeed sets the drag rotation multiplier.
func WithRotateSpeed(speed float64) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.rotateSpeed = speed
	}
}

// WithZoomSpeed sets the zoom exponent; the dolly factor is 0.95^speed.
func WithZoomSpeed(speed float64) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.zoomSpeed = speed
	}
}

// WithKeyPanSpeed sets the pixels panned per arrow key press.
func WithKeyPanSpeed(speed float64) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.keyPanSpeed = speed
	}
}

// WithAutoRotate enables idle spinning at the given speed. A speed of 2 is one revolution per
// 60 seconds at 60 updates per second.
//
// Parameters:
//   - speed: auto-rotate speed
//
// Returns:
//   - OrbitControlsOption: functional option to enable auto rotation
func WithAutoRotate(speed float64) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.autoRotate = true
		oc.autoRotateSpeed = speed
	}
}

// WithNoRotate disables rotate gestures.
func WithNoRotate(disabled bool) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.noRotate = disabled
	}
}

// WithNoZoom disables dolly gestures.
func WithNoZoom(disabled bool) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.noZoom = disabled
	}
}

// WithNoPan disables pan gestures and arrow keys.
func WithNoPan(disabled bool) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.noPan = disabled
	}
}

// WithNoKeys disables arrow key panning.
func WithNoKeys(disabled bool) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.noKeys = disabled
	}
}

// WithControlsEnabled sets whether gestures are accepted initially.
func WithControlsEnabled(enabled bool) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.enabled = enabled
	}
}
