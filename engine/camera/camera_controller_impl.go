package camera

import (
	"log"
	"math"

	"github.com/Carmen-Shannon/oxy-planner/common"
	"github.com/Carmen-Shannon/oxy-planner/engine/notify"
	"github.com/go-gl/mathgl/mgl64"
)

// RadiusEpsilon is the smallest orbit radius ever produced, so the offset never collapses onto the target.
const RadiusEpsilon = 1e-6

// centerHeight is the target height used by CenterOn.
const centerHeight = 150.0

// orbitControlsImpl is the single implementation of OrbitControls.
// It is not safe for concurrent use; the engine drives it from the tick goroutine only.
type orbitControlsImpl struct {
	camera   Camera
	target   mgl64.Vec3
	viewport common.Viewport
	enabled  bool

	pending PendingDelta

	// Limits
	minDistance   float64
	maxDistance   float64
	minPolarAngle float64
	maxPolarAngle float64

	// Speeds
	rotateSpeed float64
	zoomSpeed   float64
	keyPanSpeed float64

	// Feature toggles
	noRotate bool
	noZoom   bool
	noPan    bool
	noKeys   bool

	// Idle spin
	autoRotate          bool
	autoRotateSpeed     float64
	autoRotateCancelled bool
	autoRotatePaused    bool

	gesture gesture

	needsUpdate bool
	cameraMoved *notify.Signal[notify.Empty]
}

// Compile-time interface compliance check
var _ OrbitControls = &orbitControlsImpl{}

// NewOrbitControls creates an orbit controller for cam.
// The initial pose is read from the camera's current position; the target defaults to the origin.
//
// Parameters:
//   - cam: the camera to control
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitControls: the newly created controller
func NewOrbitControls(cam Camera, options ...OrbitControlsOption) OrbitControls {
	oc := &orbitControlsImpl{
		camera:  cam,
		enabled: true,
		pending: NeutralDelta(),

		minDistance:   0,
		maxDistance:   1500,
		minPolarAngle: 0,
		maxPolarAngle: math.Pi / 2,

		rotateSpeed: 1.0,
		zoomSpeed:   1.0,
		keyPanSpeed: 40.0,

		autoRotateSpeed: 2.0,

		cameraMoved: notify.NewSignal[notify.Empty]("cameraMoved"),
	}

	for _, option := range options {
		option(oc)
	}

	oc.camera.LookAt(oc.target)
	return oc
}

func (oc *orbitControlsImpl) Camera() Camera {
	return oc.camera
}

func (oc *orbitControlsImpl) Target() mgl64.Vec3 {
	return oc.target
}

func (oc *orbitControlsImpl) SetTarget(target mgl64.Vec3) {
	oc.target = target
	oc.camera.LookAt(target)
	oc.needsUpdate = true
}

func (oc *orbitControlsImpl) Enabled() bool {
	return oc.enabled
}

func (oc *orbitControlsImpl) SetEnabled(enabled bool) {
	oc.enabled = enabled
}

func (oc *orbitControlsImpl) SetViewport(viewport common.Viewport) {
	oc.viewport = viewport
}

func (oc *orbitControlsImpl) Viewport() common.Viewport {
	return oc.viewport
}

func (oc *orbitControlsImpl) Reconfigure(options ...OrbitControlsOption) {
	for _, option := range options {
		option(oc)
	}
}

func (oc *orbitControlsImpl) Pending() PendingDelta {
	return oc.pending
}

func (oc *orbitControlsImpl) Spherical() common.Spherical {
	return common.SphericalFromOffset(oc.camera.Position().Sub(oc.target))
}

func (oc *orbitControlsImpl) Bounds() (minDistance, maxDistance, minPolar, maxPolar float64) {
	return oc.minDistance, oc.maxDistance, oc.minPolarAngle, oc.maxPolarAngle
}

func (oc *orbitControlsImpl) CameraMoved() *notify.Signal[notify.Empty] {
	return oc.cameraMoved
}

func (oc *orbitControlsImpl) NeedsUpdate() bool {
	n := oc.needsUpdate
	oc.needsUpdate = false
	return n
}

func (oc *orbitControlsImpl) RotateLeft(angle float64) {
	oc.pending.Theta -= angle
}

func (oc *orbitControlsImpl) RotateUp(angle float64) {
	oc.pending.Phi -= angle
}

func (oc *orbitControlsImpl) DollyIn(scale float64) {
	if scale == 0 {
		return
	}
	oc.pending.Scale /= scale
}

func (oc *orbitControlsImpl) DollyOut(scale float64) {
	oc.pending.Scale *= scale
}

func (oc *orbitControlsImpl) ZoomScale() float64 {
	return math.Pow(0.95, oc.zoomSpeed)
}

func (oc *orbitControlsImpl) AutoRotationAngle() float64 {
	return 2 * math.Pi / 60 / 60 * oc.autoRotateSpeed
}

func (oc *orbitControlsImpl) SetAutoRotate(enabled bool) {
	oc.autoRotate = enabled
	if enabled {
		oc.autoRotateCancelled = false
	}
}

func (oc *orbitControlsImpl) AutoRotating() bool {
	return oc.autoRotate && !oc.autoRotateCancelled && !oc.autoRotatePaused
}

func (oc *orbitControlsImpl) SetAutoRotatePaused(paused bool) {
	oc.autoRotatePaused = paused
}

func (oc *orbitControlsImpl) StopAutoRotate() {
	oc.autoRotateCancelled = true
}

func (oc *orbitControlsImpl) PanLeft(distance float64) {
	right := oc.camera.Right()
	dir, ok := common.NormalizeOrZero(mgl64.Vec3{right.X(), 0, right.Z()})
	if !ok {
		return
	}
	oc.pending.Pan = oc.pending.Pan.Add(dir.Mul(-distance))
}

func (oc *orbitControlsImpl) PanUp(distance float64) {
	up := oc.camera.CameraUp()
	dir, ok := common.NormalizeOrZero(mgl64.Vec3{up.X(), 0, up.Z()})
	if !ok {
		return
	}
	oc.pending.Pan = oc.pending.Pan.Add(dir.Mul(distance))
}

func (oc *orbitControlsImpl) Pan(dx, dy float64) {
	if !oc.viewport.Valid() {
		return
	}
	switch cam := oc.camera.(type) {
	case PerspectiveCamera:
		// World units spanned by half the viewport height at the target's depth.
		targetDistance := cam.Position().Sub(oc.target).Len() * math.Tan(cam.Fov()/2)
		oc.PanLeft(2 * dx * targetDistance / oc.viewport.Height)
		oc.PanUp(2 * dy * targetDistance / oc.viewport.Height)
	case OrthographicCamera:
		left, right, top, bottom := cam.Extents()
		oc.PanLeft(dx * (right - left) / oc.viewport.Width)
		oc.PanUp(dy * (top - bottom) / oc.viewport.Height)
	default:
		log.Printf("[Controls] WARNING: unsupported camera type %T, pan disabled", oc.camera)
	}
}

func (oc *orbitControlsImpl) SetPan(offset mgl64.Vec3) {
	oc.pending.Pan = offset
}

func (oc *orbitControlsImpl) PanTo(point mgl64.Vec3) {
	next := mgl64.Vec3{point.X(), oc.target.Y(), point.Z()}
	oc.pending.Pan = oc.pending.Pan.Add(next.Sub(oc.target))
	oc.Update()
}

func (oc *orbitControlsImpl) CenterOn(center, size mgl64.Vec3) {
	target := mgl64.Vec3{center.X(), centerHeight, center.Z()}
	distance := size.Z() * 1.5
	oc.target = target
	oc.camera.SetPosition(target.Add(mgl64.Vec3{0, distance, distance}))
	oc.camera.LookAt(target)
	oc.Update()
}

func (oc *orbitControlsImpl) Update() {
	offset := oc.camera.Position().Sub(oc.target)
	s := common.SphericalFromOffset(offset)

	if oc.AutoRotating() && oc.gesture.state == gestureNone {
		oc.RotateLeft(oc.AutoRotationAngle())
	}

	s.Theta += oc.pending.Theta
	s.Phi = common.ClampPolar(s.Phi+oc.pending.Phi, oc.minPolarAngle, oc.maxPolarAngle)
	s.Radius = common.ClampRadius(s.Radius*oc.pending.Scale, math.Max(oc.minDistance, RadiusEpsilon), oc.maxDistance)

	oc.target = oc.target.Add(oc.pending.Pan)
	oc.camera.SetPosition(oc.target.Add(s.Offset()))
	oc.camera.LookAt(oc.target)

	oc.pending = NeutralDelta()
	oc.needsUpdate = true
	oc.cameraMoved.Fire(notify.Empty{})
}
