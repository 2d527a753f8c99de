package room

import (
	"log"

	"github.com/Carmen-Shannon/oxy-planner/engine/interaction"
	"github.com/Carmen-Shannon/oxy-planner/engine/notify"
	"github.com/Carmen-Shannon/oxy-planner/engine/raycast"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

const (
	// HandleDistance is the gap between the selected item's front face and the rotate handle.
	HandleDistance = 30.0

	// HandleSize is the edge length of the rotate handle's pick box.
	HandleSize = 20.0

	defaultHandleReach = 50.0
)

// sized is implemented by items that expose their footprint and rotation.
type sized interface {
	HalfSize() mgl64.Vec3
	Yaw() float64
}

// HUD places a rotate handle in front of the selected item.
type HUD struct {
	item      interaction.Item
	handle    *raycast.Box
	mouseover bool
	rotating  bool
}

var _ interaction.HUD = &HUD{}

// NewHUD creates a HUD with no selection.
func NewHUD() *HUD {
	return &HUD{
		handle: &raycast.Box{
			HalfSize: mgl64.Vec3{HandleSize / 2, HandleSize / 2, HandleSize / 2},
			Hidden:   true,
		},
	}
}

// Bind follows selection changes announced by notes. Call the returned function to stop.
//
// Parameters:
//   - notes: the interaction controller's notifications
//
// Returns:
//   - func(): unbinds the HUD
func (h *HUD) Bind(notes *interaction.Notifications) func() {
	selected := notes.ItemSelected.Subscribe(h.Attach)
	unselected := notes.ItemUnselected.Subscribe(func(notify.Empty) { h.Detach() })
	return func() {
		unsubscribe(notes.ItemSelected, selected)
		unsubscribe(notes.ItemUnselected, unselected)
	}
}

func unsubscribe[T any](s *notify.Signal[T], id uuid.UUID) {
	if !s.Unsubscribe(id) {
		log.Printf("[HUD] WARNING: %s subscription %s already removed", s.Name(), id)
	}
}

// Attach shows the handle next to item.
func (h *HUD) Attach(item interaction.Item) {
	h.item = item
	h.rotating = false
	h.Update()
}

// Detach hides the handle.
func (h *HUD) Detach() {
	h.item = nil
	h.mouseover = false
	h.rotating = false
	h.handle.Hidden = true
}

func (h *HUD) Item() interaction.Item { return h.item }
func (h *HUD) Mouseover() bool        { return h.mouseover }
func (h *HUD) Rotating() bool         { return h.rotating }

// Handle returns the handle's pick box, or nil when nothing is selected.
func (h *HUD) Handle() raycast.Surface {
	if h.item == nil {
		return nil
	}
	return h.handle
}

func (h *HUD) SetMouseover(over bool) {
	h.mouseover = over
}

func (h *HUD) SetRotating(rotating bool) {
	h.rotating = rotating
}

// Update moves the handle to follow the attached item's position and rotation.
func (h *HUD) Update() {
	if h.item == nil {
		h.handle.Hidden = true
		return
	}

	reach, yaw := defaultHandleReach, 0.0
	if s, ok := h.item.(sized); ok {
		reach = s.HalfSize().Z() + HandleDistance
		yaw = s.Yaw()
	}
	offset := mgl64.Rotate3DY(yaw).Mul3x1(mgl64.Vec3{0, 0, reach})

	pos := h.item.Position()
	h.handle.Center = mgl64.Vec3{pos.X() + offset.X(), HandleSize / 2, pos.Z() + offset.Z()}
	h.handle.Yaw = yaw
	h.handle.Hidden = false
}
