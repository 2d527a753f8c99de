package common

// CursorStyle is the pointer shape shown over the viewport.
type CursorStyle int

const (
	CursorAuto CursorStyle = iota
	CursorPointer
	CursorMove
)

func (c CursorStyle) String() string {
	switch c {
	case CursorPointer:
		return "pointer"
	case CursorMove:
		return "move"
	default:
		return "auto"
	}
}

// CursorSetter is implemented by anything that can change the visible cursor (windows, pollers).
type CursorSetter interface {
	SetCursorStyle(style CursorStyle)
}
