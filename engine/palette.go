package engine

import (
	"github.com/Carmen-Shannon/oxy-planner/common"
	"github.com/Carmen-Shannon/oxy-planner/engine/interaction"
)

// Palette maps the interaction state onto the background color a presenter clears to.
type Palette struct {
	Idle     common.Color
	Selected common.Color
	Dragging common.Color
	Rotating common.Color

	// Highlight is blended in by HoverMix while an item or the rotate handle is under the pointer.
	Highlight common.Color
	HoverMix  float64
}

// DefaultPalette returns the colors used when no palette is configured.
func DefaultPalette() Palette {
	return Palette{
		Idle:      common.Color{R: 0.13, G: 0.14, B: 0.16, A: 1},
		Selected:  common.Color{R: 0.14, G: 0.17, B: 0.22, A: 1},
		Dragging:  common.Color{R: 0.12, G: 0.20, B: 0.16, A: 1},
		Rotating:  common.Color{R: 0.22, G: 0.17, B: 0.12, A: 1},
		Highlight: common.Color{R: 0.35, G: 0.38, B: 0.45, A: 1},
		HoverMix:  0.15,
	}
}

// Color picks the background for state.
//
// Parameters:
//   - state: the current interaction state
//   - hovered: true if an item or the rotate handle is under the pointer
//
// Returns:
//   - common.Color: the clear color
func (p Palette) Color(state interaction.State, hovered bool) common.Color {
	var c common.Color
	switch {
	case state == interaction.StateDragging:
		c = p.Dragging
	case state.Rotating():
		c = p.Rotating
	case state == interaction.StateSelected:
		c = p.Selected
	default:
		c = p.Idle
	}
	if hovered && !state.CameraLocked() {
		c = c.Lerp(p.Highlight, p.HoverMix)
	}
	return c
}
