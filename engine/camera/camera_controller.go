package camera

import (
	"github.com/Carmen-Shannon/oxy-planner/common"
	"github.com/Carmen-Shannon/oxy-planner/engine/notify"
	"github.com/go-gl/mathgl/mgl64"
)

// PendingDelta accumulates camera motion requested by gestures between two Update calls.
type PendingDelta struct {
	Theta float64    // azimuth delta in radians
	Phi   float64    // polar delta in radians
	Scale float64    // radius multiplier
	Pan   mgl64.Vec3 // target translation
}

// NeutralDelta is the delta that leaves the pose unchanged.
func NeutralDelta() PendingDelta {
	return PendingDelta{Scale: 1}
}

// OrbitControls defines the union interface for the orbit camera controller.
// The controller owns the camera pose as a spherical offset from a target point. Gesture and
// command methods only accumulate a PendingDelta; Update is the single place the camera moves.
type OrbitControls interface {
	orbitControls
	panControls
	gestureControls

	// Camera returns the controlled camera.
	//
	// Returns:
	//   - Camera: the camera whose pose this controller owns
	Camera() Camera

	// Target returns the orbit pivot.
	//
	// Returns:
	//   - mgl64.Vec3: world-space target
	Target() mgl64.Vec3

	// SetTarget moves the orbit pivot without moving the eye and re-aims the camera.
	//
	// Parameters:
	//   - target: world-space target
	SetTarget(target mgl64.Vec3)

	// Enabled reports whether gestures are accepted.
	Enabled() bool

	// SetEnabled toggles gesture handling. Release gestures are always processed so a disabled
	// controller never gets stuck mid-gesture.
	SetEnabled(enabled bool)

	// SetViewport sets the window region the camera renders into. Gesture deltas are scaled by its size.
	SetViewport(viewport common.Viewport)

	// Viewport returns the current viewport.
	Viewport() common.Viewport

	// Reconfigure applies options to a live controller, e.g. after a config reload.
	Reconfigure(options ...OrbitControlsOption)

	// Pending returns the delta that the next Update will apply.
	Pending() PendingDelta

	// Spherical returns the current offset of the camera from the target.
	Spherical() common.Spherical

	// Update applies the pending delta, re-aims the camera and fires CameraMoved.
	// Radius and polar angle are clamped; the pending delta is reset afterwards.
	Update()

	// CenterOn frames a region: the target is placed over center at a fixed height of 150 and the
	// camera backs off diagonally by 1.5 times the region depth.
	//
	// Parameters:
	//   - center: world-space center of the region
	//   - size: extents of the region
	CenterOn(center, size mgl64.Vec3)

	// CameraMoved fires after every Update.
	CameraMoved() *notify.Signal[notify.Empty]

	// NeedsUpdate reports whether the camera moved since the last call and clears the flag.
	NeedsUpdate() bool
}

// orbitControls defines rotation, dolly and auto-rotation.
type orbitControls interface {
	// RotateLeft requests an azimuth change. Positive angles orbit the camera to the left.
	//
	// Parameters:
	//   - angle: radians
	RotateLeft(angle float64)

	// RotateUp requests a polar change. Positive angles raise the camera toward the top pole.
	//
	// Parameters:
	//   - angle: radians
	RotateUp(angle float64)

	// DollyIn divides the pending radius scale by scale.
	//
	// Parameters:
	//   - scale: dolly factor, typically ZoomScale()
	DollyIn(scale float64)

	// DollyOut multiplies the pending radius scale by scale.
	//
	// Parameters:
	//   - scale: dolly factor, typically ZoomScale()
	DollyOut(scale float64)

	// ZoomScale returns the default dolly factor, 0.95^zoomSpeed.
	ZoomScale() float64

	// AutoRotationAngle returns the azimuth step applied per Update while auto-rotating.
	AutoRotationAngle() float64

	// SetAutoRotate enables or disables idle spinning. Enabling clears a previous cancellation.
	SetAutoRotate(enabled bool)

	// AutoRotating reports whether the next Update will spin the camera.
	AutoRotating() bool

	// SetAutoRotatePaused suspends spinning while set, e.g. while the pointer is over the viewport.
	SetAutoRotatePaused(paused bool)

	// StopAutoRotate cancels spinning until SetAutoRotate(true) is called again.
	StopAutoRotate()

	// Bounds returns the radius and polar limits.
	//
	// Returns:
	//   - minDistance, maxDistance: radius limits
	//   - minPolar, maxPolar: polar angle limits in radians
	Bounds() (minDistance, maxDistance, minPolar, maxPolar float64)
}

// panControls defines target translation.
type panControls interface {
	// PanLeft moves the target along the camera's horizontal right axis by -distance.
	PanLeft(distance float64)

	// PanUp moves the target along the horizontal projection of the camera's up axis.
	PanUp(distance float64)

	// Pan converts a screen-space delta in pixels into world-space PanLeft/PanUp requests.
	// The conversion depends on the projection; an unknown projection skips the pan and logs a warning.
	//
	// Parameters:
	//   - dx, dy: pointer delta in pixels
	Pan(dx, dy float64)

	// SetPan replaces the pending pan offset.
	SetPan(offset mgl64.Vec3)

	// PanTo moves the target horizontally over point, keeping its height, and applies it immediately.
	PanTo(point mgl64.Vec3)
}

// gestureControls maps raw pointer, wheel, key and touch input to camera requests.
type gestureControls interface {
	// PointerDown starts a mouse gesture: primary rotates, middle dollies, secondary pans.
	PointerDown(button common.MouseButton, x, y float64)

	// PointerMove continues the active mouse gesture.
	PointerMove(x, y float64)

	// PointerUp ends the active mouse gesture.
	PointerUp()

	// Wheel dollies by the sign of the wheel delta.
	Wheel(delta float64)

	// KeyDown pans with the arrow keys.
	KeyDown(key int)

	// TouchStart starts a touch gesture: one finger rotates, two dolly, three pan.
	TouchStart(points []mgl64.Vec2)

	// TouchMove continues the active touch gesture. A change in finger count restarts the gesture
	// without emitting a delta.
	TouchMove(points []mgl64.Vec2)

	// TouchEnd ends or restarts the touch gesture with the fingers still down.
	TouchEnd(remaining []mgl64.Vec2)

	// Idle reports whether no gesture is in progress.
	Idle() bool
}
