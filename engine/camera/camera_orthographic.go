package camera

import "github.com/go-gl/mathgl/mgl64"

type orthographicLens struct {
	left, right, top, bottom float64
}

func (l *orthographicLens) projectionMatrix(_, near, far float64) mgl64.Mat4 {
	return mgl64.Ortho(l.left, l.right, l.bottom, l.top, near, far)
}

type orthographicCameraImpl struct {
	*cameraImpl
	lens *orthographicLens
}

var _ OrthographicCamera = &orthographicCameraImpl{}

// NewOrthographicCamera creates a camera with a parallel projection.
// The extents are independent of the aspect ratio; callers resize them on viewport changes.
//
// Parameters:
//   - left, right, top, bottom: view-space bounds of the view volume
//   - options: functional options to configure the camera
//
// Returns:
//   - OrthographicCamera: the newly created camera
func NewOrthographicCamera(left, right, top, bottom float64, options ...CameraBuilderOption) OrthographicCamera {
	l := &orthographicLens{left: left, right: right, top: top, bottom: bottom}
	return &orthographicCameraImpl{
		cameraImpl: newCameraImpl(l, options...),
		lens:       l,
	}
}

// NewOrthographicCameraForHeight creates an orthographic camera whose view volume is height units
// tall and as wide as the aspect ratio demands.
func NewOrthographicCameraForHeight(height, aspect float64, options ...CameraBuilderOption) OrthographicCamera {
	halfH := height / 2
	halfW := halfH * aspect
	return NewOrthographicCamera(-halfW, halfW, halfH, -halfH, append(options, WithAspect(aspect))...)
}

func (c *orthographicCameraImpl) Extents() (left, right, top, bottom float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lens.left, c.lens.right, c.lens.top, c.lens.bottom
}

func (c *orthographicCameraImpl) SetExtents(left, right, top, bottom float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lens.left, c.lens.right, c.lens.top, c.lens.bottom = left, right, top, bottom
	c.updateMatrices()
}
