package input

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-planner/common"
	"github.com/go-gl/mathgl/mgl64"
)

// Touch is one active touch point.
type Touch struct {
	ID       int
	Position mgl64.Vec2
}

// Snapshot is the complete input state of a polled backend for one frame.
type Snapshot struct {
	Width, Height int
	Focused       bool
	Inside        bool
	Cursor        mgl64.Vec2

	// Buttons is indexed by common.MouseButton.
	Buttons [3]bool

	// Wheel is the vertical scroll since the previous frame.
	Wheel float64

	// Keys holds the keys pressed or repeated this frame.
	Keys []int

	Touches []Touch
}

// Tracker turns successive snapshots from a polling backend into the same events a callback-driven
// window produces.
type Tracker struct {
	prev Snapshot
}

// NewTracker creates a tracker that assumes a focused window with the cursor outside.
func NewTracker() *Tracker {
	return &Tracker{prev: Snapshot{Focused: true}}
}

// Diff returns the events that lead from the previous snapshot to next, and remembers next.
//
// Parameters:
//   - next: the current frame's input state
//
// Returns:
//   - []Event: events in dispatch order, nil if nothing changed
func (t *Tracker) Diff(next Snapshot) []Event {
	prev := t.prev
	var out []Event

	if next.Width != prev.Width || next.Height != prev.Height {
		out = append(out, Resize{Width: next.Width, Height: next.Height})
	}
	if next.Inside != prev.Inside {
		out = append(out, PointerEnter{Inside: next.Inside})
	}
	if prev.Focused && !next.Focused {
		out = append(out, CaptureLost{})
	}

	out = append(out, diffTouches(prev.Touches, next.Touches)...)

	if next.Cursor != prev.Cursor {
		out = append(out, PointerMove{X: next.Cursor.X(), Y: next.Cursor.Y()})
	}
	for i := range next.Buttons {
		b := common.MouseButton(i)
		x, y := next.Cursor.Elem()
		switch {
		case next.Buttons[i] && !prev.Buttons[i]:
			out = append(out, PointerDown{Button: b, X: x, Y: y})
		case !next.Buttons[i] && prev.Buttons[i]:
			out = append(out, PointerUp{Button: b, X: x, Y: y})
		}
	}
	if next.Wheel != 0 {
		out = append(out, Wheel{Delta: next.Wheel})
	}
	for _, k := range next.Keys {
		out = append(out, KeyDown{Key: k})
	}

	next.Touches = slices.Clone(next.Touches)
	next.Keys = nil
	next.Wheel = 0
	t.prev = next
	return out
}

// diffTouches reports lifted fingers before added ones, so a swap within one frame ends the old gesture first.
func diffTouches(prev, next []Touch) []Event {
	var out []Event

	survivors := make([]mgl64.Vec2, 0, len(next))
	lifted, moved := false, false
	for _, p := range prev {
		i := slices.IndexFunc(next, func(n Touch) bool { return n.ID == p.ID })
		if i < 0 {
			lifted = true
			continue
		}
		survivors = append(survivors, next[i].Position)
		if next[i].Position != p.Position {
			moved = true
		}
	}
	added := len(survivors) < len(next)

	if lifted {
		out = append(out, TouchEnd{Remaining: survivors})
	}
	if added {
		out = append(out, TouchStart{Points: positions(next)})
	} else if moved && !lifted {
		out = append(out, TouchMove{Points: positions(next)})
	}
	return out
}

func positions(touches []Touch) []mgl64.Vec2 {
	out := make([]mgl64.Vec2, len(touches))
	for i, t := range touches {
		out[i] = t.Position
	}
	return out
}
