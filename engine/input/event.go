package input

import (
	"github.com/Carmen-Shannon/oxy-planner/common"
	"github.com/go-gl/mathgl/mgl64"
)

// Event is a raw input event captured by a window or poller and consumed by the engine tick.
// The set of events is closed.
type Event interface {
	event()
}

// PointerDown is a mouse button press at window coordinates.
type PointerDown struct {
	Button common.MouseButton
	X, Y   float64
}

// PointerMove is cursor motion at window coordinates.
type PointerMove struct {
	X, Y float64
}

// PointerUp is a mouse button release at window coordinates.
type PointerUp struct {
	Button common.MouseButton
	X, Y   float64
}

// PointerEnter reports the cursor entering (Inside) or leaving the window.
type PointerEnter struct {
	Inside bool
}

// CaptureLost reports that pointer capture ended without a release, e.g. on focus loss.
type CaptureLost struct{}

// Wheel is a vertical scroll. Positive deltas scroll up.
type Wheel struct {
	Delta float64
}

// KeyDown is a key press or repeat, using the common key codes.
type KeyDown struct {
	Key int
}

// TouchStart reports the full set of touch points after a finger was added.
type TouchStart struct {
	Points []mgl64.Vec2
}

// TouchMove reports the full set of touch points after they moved.
type TouchMove struct {
	Points []mgl64.Vec2
}

// TouchEnd reports the touch points still down after a finger was lifted or cancelled.
type TouchEnd struct {
	Remaining []mgl64.Vec2
}

// Resize reports a new window size in screen coordinates.
type Resize struct {
	Width, Height int
}

// Task runs arbitrary work on the tick goroutine, e.g. applying a reloaded configuration.
type Task struct {
	Run func()
}

func (PointerDown) event()  {}
func (PointerMove) event()  {}
func (PointerUp) event()    {}
func (PointerEnter) event() {}
func (CaptureLost) event()  {}
func (Wheel) event()        {}
func (KeyDown) event()      {}
func (TouchStart) event()   {}
func (TouchMove) event()    {}
func (TouchEnd) event()     {}
func (Resize) event()       {}
func (Task) event()         {}
