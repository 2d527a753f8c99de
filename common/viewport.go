package common

// Viewport is the screen-space rectangle the 3D view occupies inside its window.
// X and Y are the margins of the rectangle's top-left corner; screen coordinates
// handed to the engine are window coordinates and are offset by them.
type Viewport struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Valid reports whether the viewport has a usable, non-zero area.
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

// ToNDC converts a window coordinate to normalized device coordinates in [-1, 1],
// with +Y pointing up.
//
// Parameters:
//   - x, y: window coordinates in pixels
//
// Returns:
//   - nx, ny: normalized device coordinates
func (v Viewport) ToNDC(x, y float64) (nx, ny float64) {
	nx = (x-v.X)/v.Width*2 - 1
	ny = -(y-v.Y)/v.Height*2 + 1
	return nx, ny
}

// FromNDC converts normalized device coordinates back to a window coordinate.
//
// Parameters:
//   - nx, ny: normalized device coordinates
//
// Returns:
//   - x, y: window coordinates in pixels
func (v Viewport) FromNDC(nx, ny float64) (x, y float64) {
	halfW := v.Width / 2
	halfH := v.Height / 2
	x = nx*halfW + halfW + v.X
	y = -ny*halfH + halfH + v.Y
	return x, y
}
