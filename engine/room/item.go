package room

import (
	"math"

	"github.com/Carmen-Shannon/oxy-planner/engine/interaction"
	"github.com/Carmen-Shannon/oxy-planner/engine/raycast"
	"github.com/go-gl/mathgl/mgl64"
)

// Item is a box-shaped piece of furniture standing on the floor or hanging on a wall.
type Item struct {
	name     string
	position mgl64.Vec3
	halfSize mgl64.Vec3
	yaw      float64
	fixed    bool
	placed   bool

	selected bool
	hovered  bool

	dragOffset mgl64.Vec3
	dragPlanes []raycast.Surface
	box        *raycast.Box
}

// ItemOption is a functional option for configuring an Item.
type ItemOption func(*Item)

var (
	_ interaction.Item      = &Item{}
	_ interaction.Placeable = &Item{}
)

// WithFixed locks the item in place.
func WithFixed(fixed bool) ItemOption {
	return func(it *Item) {
		it.fixed = fixed
	}
}

// WithYaw sets the initial rotation about +Y in radians.
func WithYaw(yaw float64) ItemOption {
	return func(it *Item) {
		it.yaw = yaw
	}
}

// WithDragPlanes makes the item slide along the given surfaces instead of the floor.
func WithDragPlanes(planes ...raycast.Surface) ItemOption {
	return func(it *Item) {
		it.dragPlanes = planes
	}
}

// WithUnplaced marks the item as not yet placed, so it follows the pointer when added to a scene.
func WithUnplaced() ItemOption {
	return func(it *Item) {
		it.placed = false
	}
}

// NewItem creates an item whose bottom rests at position.Y.
//
// Parameters:
//   - name: display name
//   - position: world-space center of the item's footprint
//   - size: width, height and depth
//   - options: functional options to configure the item
//
// Returns:
//   - *Item: the new item
func NewItem(name string, position, size mgl64.Vec3, options ...ItemOption) *Item {
	it := &Item{
		name:     name,
		position: position,
		halfSize: size.Mul(0.5),
		placed:   true,
	}
	for _, option := range options {
		option(it)
	}
	it.box = &raycast.Box{HalfSize: it.halfSize}
	it.syncBox()
	return it
}

func (it *Item) Name() string              { return it.name }
func (it *Item) Position() mgl64.Vec3      { return it.position }
func (it *Item) HalfSize() mgl64.Vec3      { return it.halfSize }
func (it *Item) Yaw() float64              { return it.yaw }
func (it *Item) Fixed() bool               { return it.fixed }
func (it *Item) SetFixed(fixed bool)       { it.fixed = fixed }
func (it *Item) Selected() bool            { return it.selected }
func (it *Item) Hovered() bool             { return it.hovered }
func (it *Item) Placed() bool              { return it.placed }
func (it *Item) SetPlaced()                { it.placed = true }
func (it *Item) Surface() raycast.Surface  { return it.box }
func (it *Item) SetSelected()              { it.selected = true }
func (it *Item) SetUnselected()            { it.selected = false }
func (it *Item) MouseOver()                { it.hovered = true }
func (it *Item) MouseOff()                 { it.hovered = false }
func (it *Item) ClickReleased()            {}
func (it *Item) SetVisible(visible bool)   { it.box.Hidden = !visible }

func (it *Item) CustomIntersectionPlanes() []raycast.Surface {
	return it.dragPlanes
}

// ClickPressed remembers where on the drag surface the item was grabbed.
func (it *Item) ClickPressed(point mgl64.Vec3) {
	it.dragOffset = it.position.Sub(point)
	if len(it.dragPlanes) == 0 {
		it.dragOffset[1] = 0
	}
}

// ClickDragged moves the item so the grab point follows point. Floor items keep their height.
func (it *Item) ClickDragged(point mgl64.Vec3) {
	next := point.Add(it.dragOffset)
	if len(it.dragPlanes) == 0 {
		next[1] = it.position.Y()
	}
	it.MoveTo(next)
}

// Rotate turns the item to face point.
func (it *Item) Rotate(point mgl64.Vec3) {
	d := point.Sub(it.position)
	if d.X() == 0 && d.Z() == 0 {
		return
	}
	it.yaw = math.Atan2(d.X(), d.Z())
	it.syncBox()
}

// MoveTo places the item at position.
func (it *Item) MoveTo(position mgl64.Vec3) {
	it.position = position
	it.syncBox()
}

func (it *Item) syncBox() {
	it.box.Center = it.position.Add(mgl64.Vec3{0, it.halfSize.Y(), 0})
	it.box.Yaw = it.yaw
}
