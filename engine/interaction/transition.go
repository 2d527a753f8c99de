package interaction

import "github.com/Carmen-Shannon/oxy-planner/common"

// Trigger is the kind of input the state machine reacts to.
type Trigger int

const (
	// TriggerPress is a primary pointer press.
	TriggerPress Trigger = iota
	// TriggerRelease is a pointer release, including an implicit release on loss of capture.
	TriggerRelease
	// TriggerMove is a pointer move.
	TriggerMove
	// TriggerSelect is a programmatic selection; a nil Item clears the selection.
	TriggerSelect
	// TriggerPlace puts a freshly loaded item straight into dragging.
	TriggerPlace
	// TriggerRemove reports that Item left the scene.
	TriggerRemove
)

// Snapshot is the part of the controller state the transition function reads.
type Snapshot struct {
	State    State
	Selected Item

	// Hovering reports whether an item is under the pointer.
	Hovering bool

	// CanMoveFixed lets fixed items be dragged.
	CanMoveFixed bool
}

// Input is a single trigger together with the hit-test results at the pointer.
type Input struct {
	Trigger Trigger

	// Hit is the nearest visible item under the pointer, nil when the rotate handle is hovered.
	Hit Item

	// HandleHovered reports whether the HUD rotate handle is under the pointer.
	HandleHovered bool

	// Moved reports whether the pointer moved since the last press.
	Moved bool

	// Item is the subject of TriggerSelect, TriggerPlace and TriggerRemove.
	Item Item
}

// Step is the result of a transition: the state to end in and the ordered effects to run.
type Step struct {
	Next     State
	Selected Item
	Effects  []Effect
}

// Effect is a side effect requested by a transition. The set of effects is closed.
type Effect interface {
	effect()
}

// SwitchState records a state change; entry and exit effects follow it.
type SwitchState struct{ From, To State }

// SelectItem unselects the previous item, selects Item and fires itemSelected.
type SelectItem struct{ Item Item }

// DeselectItem unselects the current item and fires itemUnselected.
type DeselectItem struct{}

// SetCameraEnabled toggles the camera controls.
type SetCameraEnabled struct{ Enabled bool }

// SetCursor changes the visible cursor.
type SetCursor struct{ Style common.CursorStyle }

// PressItem forwards the pointer's drag-surface point to the selected item's ClickPressed.
type PressItem struct{}

// DragItem forwards the pointer's drag-surface point to the selected item's ClickDragged.
type DragItem struct{}

// RotateItem forwards the pointer's drag-surface point to the selected item's Rotate.
type RotateItem struct{}

// ReleaseItem calls the selected item's ClickReleased.
type ReleaseItem struct{}

// SetHUDRotating tells the HUD whether a rotation is in progress.
type SetHUDRotating struct{ Rotating bool }

// UpdateHover re-evaluates which item is under the pointer.
type UpdateHover struct{}

// UpdateHUD re-positions the HUD.
type UpdateHUD struct{}

// CheckWallsAndFloors resolves a click on empty space to a wall, a floor or nothing.
type CheckWallsAndFloors struct{}

func (SwitchState) effect()         {}
func (SelectItem) effect()          {}
func (DeselectItem) effect()        {}
func (SetCameraEnabled) effect()    {}
func (SetCursor) effect()           {}
func (PressItem) effect()           {}
func (DragItem) effect()            {}
func (RotateItem) effect()          {}
func (ReleaseItem) effect()         {}
func (SetHUDRotating) effect()      {}
func (UpdateHover) effect()         {}
func (UpdateHUD) effect()           {}
func (CheckWallsAndFloors) effect() {}

// Transition computes the next state and the effects of applying in to s.
// It performs no side effects; Controller executes the returned effects in order.
//
// Parameters:
//   - s: the current controller state
//   - in: the trigger and hit-test results
//
// Returns:
//   - Step: next state, resulting selection and ordered effects
func Transition(s Snapshot, in Input) Step {
	t := &transition{snap: s, state: s.State, selected: s.Selected}
	switch in.Trigger {
	case TriggerPress:
		t.press(in)
	case TriggerRelease:
		t.release(in)
	case TriggerMove:
		t.move()
	case TriggerSelect:
		if in.Item == nil {
			t.switchTo(StateUnselected)
		} else {
			t.selectItem(in.Item)
		}
	case TriggerPlace:
		if in.Item != nil {
			if t.state == StateDragging {
				t.emit(ReleaseItem{})
				t.switchTo(StateSelected)
			}
			t.selectItem(in.Item)
			t.switchTo(StateDragging)
		}
	case TriggerRemove:
		if in.Item != nil && in.Item == t.selected {
			t.switchTo(StateUnselected)
		}
	}
	return Step{Next: t.state, Selected: t.selected, Effects: t.effects}
}

type transition struct {
	snap     Snapshot
	state    State
	selected Item
	effects  []Effect
}

func (t *transition) emit(e Effect) {
	t.effects = append(t.effects, e)
}

func (t *transition) press(in Input) {
	switch t.state {
	case StateSelected:
		if in.HandleHovered {
			t.switchTo(StateRotating)
		} else if in.Hit != nil {
			t.selectItem(in.Hit)
			t.dragIfMovable(in.Hit)
		}
	case StateUnselected:
		if in.Hit != nil {
			t.selectItem(in.Hit)
			t.dragIfMovable(in.Hit)
		}
	case StateRotatingFree:
		t.switchTo(StateSelected)
	}
}

func (t *transition) release(in Input) {
	switch t.state {
	case StateDragging:
		t.emit(ReleaseItem{})
		t.switchTo(StateSelected)
	case StateRotating:
		if in.Moved {
			t.switchTo(StateSelected)
		} else {
			t.switchTo(StateRotatingFree)
		}
	case StateUnselected:
		if !in.Moved && in.Hit == nil && !in.HandleHovered {
			t.emit(CheckWallsAndFloors{})
		}
	case StateSelected:
		if !in.Moved && in.Hit == nil && !in.HandleHovered {
			t.switchTo(StateUnselected)
			t.emit(CheckWallsAndFloors{})
		}
	}
}

func (t *transition) move() {
	switch t.state {
	case StateUnselected, StateSelected:
		t.emit(UpdateHover{})
	case StateDragging:
		t.emit(DragItem{})
		t.emit(UpdateHUD{})
	case StateRotating, StateRotatingFree:
		t.emit(RotateItem{})
		t.emit(UpdateHUD{})
	}
}

// selectItem makes item the selection, leaving UNSELECTED first when needed.
func (t *transition) selectItem(item Item) {
	if t.state == StateUnselected {
		t.switchTo(StateSelected)
	}
	t.selected = item
	t.emit(SelectItem{Item: item})
}

func (t *transition) dragIfMovable(item Item) {
	if !item.Fixed() || t.snap.CanMoveFixed {
		t.switchTo(StateDragging)
	}
}

func (t *transition) switchTo(next State) {
	if next == t.state {
		return
	}
	prev := t.state
	t.emit(SwitchState{From: prev, To: next})
	t.exit(prev)
	t.state = next
	t.enter(next)
	t.emit(SetHUDRotating{Rotating: next.Rotating()})
}

func (t *transition) exit(s State) {
	if s == StateDragging {
		if t.snap.Hovering {
			t.emit(SetCursor{Style: common.CursorPointer})
		} else {
			t.emit(SetCursor{Style: common.CursorAuto})
		}
	}
}

func (t *transition) enter(s State) {
	switch s {
	case StateUnselected:
		if t.selected != nil {
			t.selected = nil
			t.emit(DeselectItem{})
		}
		t.emit(SetCameraEnabled{Enabled: true})
	case StateSelected:
		t.emit(SetCameraEnabled{Enabled: true})
	case StateRotating, StateRotatingFree:
		t.emit(SetCameraEnabled{Enabled: false})
	case StateDragging:
		t.emit(SetCursor{Style: common.CursorMove})
		t.emit(PressItem{})
		t.emit(SetCameraEnabled{Enabled: false})
	}
}
