package camera

import "github.com/go-gl/mathgl/mgl64"

type CameraBuilderOption func(*cameraImpl)

// WithUp sets the camera's up reference vector.
//
// Parameters:
//   - up: up vector
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(up mgl64.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = up
	}
}

// WithAspect sets the camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		if aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithClip sets the near and far clipping plane distances.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the clip planes
func WithClip(near, far float64) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}

// WithPosition sets the camera's initial eye position.
func WithPosition(position mgl64.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = position
	}
}

// WithLookAt sets the camera's initial look-at target.
func WithLookAt(target mgl64.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = target
	}
}
