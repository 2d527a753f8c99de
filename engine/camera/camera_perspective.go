package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultFov is the default vertical field of view (45 degrees) in radians.
const DefaultFov = 45.0 * (math.Pi / 180.0)

type perspectiveLens struct {
	fov float64
}

func (l *perspectiveLens) projectionMatrix(aspect, near, far float64) mgl64.Mat4 {
	return mgl64.Perspective(l.fov, aspect, near, far)
}

type perspectiveCameraImpl struct {
	*cameraImpl
	lens *perspectiveLens
}

var _ PerspectiveCamera = &perspectiveCameraImpl{}

// NewPerspectiveCamera creates a camera with a perspective projection.
//
// Parameters:
//   - fov: vertical field of view in radians; values <= 0 use DefaultFov
//   - options: functional options to configure the camera
//
// Returns:
//   - PerspectiveCamera: the newly created camera
func NewPerspectiveCamera(fov float64, options ...CameraBuilderOption) PerspectiveCamera {
	if fov <= 0 {
		fov = DefaultFov
	}
	l := &perspectiveLens{fov: fov}
	return &perspectiveCameraImpl{
		cameraImpl: newCameraImpl(l, options...),
		lens:       l,
	}
}

func (c *perspectiveCameraImpl) Fov() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lens.fov
}

func (c *perspectiveCameraImpl) SetFov(fov float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if fov <= 0 || fov >= math.Pi {
		return
	}
	c.lens.fov = fov
	c.updateMatrices()
}
