package interaction

// State is the interaction state machine's current mode.
type State int

const (
	StateUnselected State = iota
	StateSelected
	StateDragging
	StateRotating
	StateRotatingFree
)

func (s State) String() string {
	switch s {
	case StateUnselected:
		return "UNSELECTED"
	case StateSelected:
		return "SELECTED"
	case StateDragging:
		return "DRAGGING"
	case StateRotating:
		return "ROTATING"
	case StateRotatingFree:
		return "ROTATING_FREE"
	default:
		return "UNKNOWN"
	}
}

// Rotating reports whether the selected item is being rotated.
func (s State) Rotating() bool {
	return s == StateRotating || s == StateRotatingFree
}

// CameraLocked reports whether camera controls are disabled in this state.
func (s State) CameraLocked() bool {
	return s == StateDragging || s.Rotating()
}
