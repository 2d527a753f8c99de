package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-planner/common"
	"github.com/go-gl/mathgl/mgl64"
)

// lens builds a projection matrix from the shared clip settings.
type lens interface {
	projectionMatrix(aspect, near, far float64) mgl64.Mat4
}

type cameraImpl struct {
	mu *sync.Mutex

	position mgl64.Vec3
	target   mgl64.Vec3
	up       mgl64.Vec3

	aspect float64
	near   float64
	far    float64

	lens lens

	viewMatrix                  mgl64.Mat4
	projectionMatrix            mgl64.Mat4
	viewProjectionMatrix        mgl64.Mat4
	inverseViewProjectionMatrix mgl64.Mat4
}

// Camera defines the projection-agnostic part of a camera.
// The camera stores its pose (position + look-at target) and recomputes view/projection
// matrices whenever the pose or clip settings change. Projection-specific behaviour is
// exposed through PerspectiveCamera and OrthographicCamera.
type Camera interface {
	// Position returns the camera's world-space eye position.
	//
	// Returns:
	//   - mgl64.Vec3: eye position
	Position() mgl64.Vec3

	// SetPosition moves the eye and recomputes matrices.
	//
	// Parameters:
	//   - position: new eye position
	SetPosition(position mgl64.Vec3)

	// Target returns the point the camera last looked at.
	//
	// Returns:
	//   - mgl64.Vec3: look-at point
	Target() mgl64.Vec3

	// LookAt orients the camera toward target and recomputes matrices.
	// A target equal to the eye position is ignored.
	//
	// Parameters:
	//   - target: world-space look-at point
	LookAt(target mgl64.Vec3)

	// Up returns the camera's up reference vector.
	Up() mgl64.Vec3

	// SetUp sets the up reference vector and recomputes matrices.
	SetUp(up mgl64.Vec3)

	// Aspect returns the aspect ratio (width / height).
	Aspect() float64

	// SetAspect sets the aspect ratio and recomputes matrices.
	SetAspect(aspect float64)

	// Near returns the near clipping plane distance.
	Near() float64

	// Far returns the far clipping plane distance.
	Far() float64

	// SetClip sets the near and far clipping distances and recomputes matrices.
	//
	// Parameters:
	//   - near: near plane distance
	//   - far: far plane distance
	SetClip(near, far float64)

	// Right returns the camera's local +X axis in world space.
	Right() mgl64.Vec3

	// CameraUp returns the camera's local +Y axis in world space.
	CameraUp() mgl64.Vec3

	// ViewMatrix returns the current view matrix.
	ViewMatrix() mgl64.Mat4

	// ProjectionMatrix returns the current projection matrix.
	ProjectionMatrix() mgl64.Mat4

	// ViewProjectionMatrix returns projection * view.
	ViewProjectionMatrix() mgl64.Mat4

	// InverseViewProjectionMatrix returns the inverse of ViewProjectionMatrix, used to unproject
	// screen points into picking rays.
	InverseViewProjectionMatrix() mgl64.Mat4

	// Project maps a world point to window coordinates inside viewport.
	//
	// Parameters:
	//   - point: world-space point
	//   - viewport: the window region the camera renders into
	//
	// Returns:
	//   - mgl64.Vec2: window coordinates in pixels
	Project(point mgl64.Vec3, viewport common.Viewport) mgl64.Vec2
}

// PerspectiveCamera is a Camera with a vertical field of view.
type PerspectiveCamera interface {
	Camera

	// Fov returns the vertical field of view in radians.
	Fov() float64

	// SetFov sets the vertical field of view in radians and recomputes matrices.
	SetFov(fov float64)
}

// OrthographicCamera is a Camera with a fixed view volume.
type OrthographicCamera interface {
	Camera

	// Extents returns the view-space bounds of the view volume.
	//
	// Returns:
	//   - left, right, top, bottom: view volume bounds
	Extents() (left, right, top, bottom float64)

	// SetExtents sets the view volume bounds and recomputes matrices.
	SetExtents(left, right, top, bottom float64)
}

var _ Camera = &cameraImpl{}

func newCameraImpl(l lens, options ...CameraBuilderOption) *cameraImpl {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		position: mgl64.Vec3{0, 0, 1},
		up:       common.WorldUp,
		aspect:   1.0,
		near:     1,
		far:      10000,
		lens:     l,
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(position mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
	c.updateMatrices()
}

func (c *cameraImpl) Target() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) LookAt(target mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = target
	c.updateMatrices()
}

func (c *cameraImpl) Up() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) SetUp(up mgl64.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = up
	c.updateMatrices()
}

func (c *cameraImpl) Aspect() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) SetAspect(aspect float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if aspect <= 0 {
		return
	}
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) Near() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) SetClip(near, far float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) Right() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix.Row(0).Vec3()
}

func (c *cameraImpl) CameraUp() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix.Row(1).Vec3()
}

func (c *cameraImpl) ViewMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) InverseViewProjectionMatrix() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inverseViewProjectionMatrix
}

func (c *cameraImpl) Project(point mgl64.Vec3, viewport common.Viewport) mgl64.Vec2 {
	ndc := common.TransformPoint(c.ViewProjectionMatrix(), point)
	x, y := viewport.FromNDC(ndc.X(), ndc.Y())
	return mgl64.Vec2{x, y}
}

// updateMatrices recomputes all derived matrices. Must be called with mu held.
// A degenerate pose (eye on the target, or looking along the up vector) keeps the previous view.
func (c *cameraImpl) updateMatrices() {
	forward := c.target.Sub(c.position)
	if _, ok := common.NormalizeOrZero(forward.Cross(c.up)); ok {
		c.viewMatrix = mgl64.LookAtV(c.position, c.target, c.up)
	} else if c.viewMatrix == (mgl64.Mat4{}) {
		c.viewMatrix = mgl64.Ident4()
	}
	c.projectionMatrix = c.lens.projectionMatrix(c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
	c.inverseViewProjectionMatrix = c.viewProjectionMatrix.Inv()
}
