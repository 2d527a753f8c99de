package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes; input backends that use a different key space
// translate into these before handing events to the engine.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyRight = 262 // Right arrow (GLFW)
	KeyLeft  = 263 // Left arrow (GLFW)
	KeyDown  = 264 // Down arrow (GLFW)
	KeyUp    = 265 // Up arrow (GLFW)

	KeySpace      = 32  // Spacebar (ASCII)
	KeyMinus      = 45  // - (ASCII)
	KeyEqual      = 61  // = (ASCII)
	KeyF          = 70  // F (ASCII)
	KeyR          = 82  // R (ASCII)
	KeyT          = 84  // T (ASCII)
	KeyEsc        = 256 // Escape key (GLFW)
	KeyBackspace  = 259 // Backspace (GLFW)
	KeyDelete     = 261 // Delete (GLFW)
	KeyKPSubtract = 333 // Keypad - (GLFW)
	KeyKPAdd      = 334 // Keypad + (GLFW)
)

// MouseButton identifies a pointer button independent of the windowing backend.
type MouseButton int

// Pointer buttons in DOM order: primary, middle (wheel), secondary.
const (
	ButtonPrimary MouseButton = iota
	ButtonMiddle
	ButtonSecondary
)

// String returns a human readable button name.
func (b MouseButton) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonMiddle:
		return "middle"
	case ButtonSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}
