// Package common holds the plain math, input and color types shared across the engine.
package common

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Lerp blends c toward other by t, clamping t to [0, 1].
//
// Parameters:
//   - other: the target color
//   - t: blend factor
//
// Returns:
//   - Color: the blended color
func (c Color) Lerp(other Color, t float64) Color {
	t = max(0, min(1, t))
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}
