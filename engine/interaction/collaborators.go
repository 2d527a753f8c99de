package interaction

import (
	"github.com/Carmen-Shannon/oxy-planner/engine/notify"
	"github.com/Carmen-Shannon/oxy-planner/engine/raycast"
	"github.com/go-gl/mathgl/mgl64"
)

// Item is a selectable, movable object in the scene.
// Items are compared by identity, so implementations must be pointer types.
type Item interface {
	// Position returns the item's world-space position.
	Position() mgl64.Vec3

	// Fixed reports whether the item is locked in place.
	Fixed() bool

	// Surface returns the geometry used to pick the item.
	Surface() raycast.Surface

	// CustomIntersectionPlanes returns the surfaces the item is dragged along, or nil to drag on the ground.
	CustomIntersectionPlanes() []raycast.Surface

	ClickPressed(point mgl64.Vec3)
	ClickDragged(point mgl64.Vec3)
	ClickReleased()
	Rotate(point mgl64.Vec3)

	SetSelected()
	SetUnselected()
	MouseOver()
	MouseOff()
}

// Placeable is implemented by items that start out unplaced and follow the pointer until dropped.
type Placeable interface {
	Placed() bool
	SetPlaced()
}

// Scene provides the candidate items for picking.
type Scene interface {
	Items() []Item
}

// SceneEvents is implemented by scenes that announce item lifecycle changes.
// The controller subscribes to them on construction.
type SceneEvents interface {
	ItemLoaded() *notify.Signal[Item]
	ItemRemoved() *notify.Signal[Item]
}

// WallEdge identifies one side of a wall.
type WallEdge interface {
	ID() string
}

// Room identifies a floor region.
type Room interface {
	ID() string
}

// WallPlane pairs a wall-side surface with the edge that owns it.
type WallPlane struct {
	Surface raycast.Surface
	Edge    WallEdge
}

// FloorPlane pairs a floor surface with the room that owns it.
type FloorPlane struct {
	Surface raycast.Surface
	Room    Room
}

// Floorplan provides walls and floors for click tests.
type Floorplan interface {
	WallEdgePlanes() []WallPlane
	FloorPlanes() []FloorPlane

	// Center returns the center of the floorplan's bounds.
	Center() mgl64.Vec3

	// Size returns the extents of the floorplan's bounds.
	Size() mgl64.Vec3
}

// HUD is the overlay drawn around the selected item.
type HUD interface {
	// Handle returns the rotate handle's geometry, or nil when no handle is shown.
	Handle() raycast.Surface

	SetMouseover(over bool)
	SetRotating(rotating bool)

	// Update re-positions the overlay after the selected item changed.
	Update()
}

// CameraControls is the part of the camera controller the interaction layer toggles.
type CameraControls interface {
	Enabled() bool
	SetEnabled(enabled bool)
}
