package engine

import "github.com/Carmen-Shannon/oxy-planner/common"

// Command is a viewer action triggered by a key binding or a toolbar.
type Command int

const (
	CommandZoomIn Command = iota
	CommandZoomOut
	CommandPanLeft
	CommandPanRight
	CommandPanUp
	CommandPanDown
	CommandTopView
	CommandFrontView
	CommandResetView
	CommandDeleteSelected
	CommandQuit
)

const (
	// zoomStep is the dolly factor of one zoom command.
	zoomStep = 1.1

	// panStep is the distance in world units one pan command moves the target.
	panStep = 100.0

	topViewHeight   = 1500.0
	frontViewHeight = 300.0
	frontViewDepth  = 1500.0
)

func (c Command) String() string {
	switch c {
	case CommandZoomIn:
		return "zoom-in"
	case CommandZoomOut:
		return "zoom-out"
	case CommandPanLeft:
		return "pan-left"
	case CommandPanRight:
		return "pan-right"
	case CommandPanUp:
		return "pan-up"
	case CommandPanDown:
		return "pan-down"
	case CommandTopView:
		return "top-view"
	case CommandFrontView:
		return "front-view"
	case CommandResetView:
		return "reset-view"
	case CommandDeleteSelected:
		return "delete-selected"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// DefaultKeyBindings returns the key bindings used when none are configured.
// Arrow keys are not bound; they reach the orbit controls as key pans.
func DefaultKeyBindings() map[int]Command {
	return map[int]Command{
		common.KeyEqual:      CommandZoomIn,
		common.KeyKPAdd:      CommandZoomIn,
		common.KeyMinus:      CommandZoomOut,
		common.KeyKPSubtract: CommandZoomOut,
		common.KeyT:          CommandTopView,
		common.KeyF:          CommandFrontView,
		common.KeyR:          CommandResetView,
		common.KeyDelete:     CommandDeleteSelected,
		common.KeyBackspace:  CommandDeleteSelected,
		common.KeyEsc:        CommandQuit,
	}
}
