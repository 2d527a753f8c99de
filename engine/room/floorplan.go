package room

import (
	"fmt"
	"log"
	"math"

	"github.com/Carmen-Shannon/oxy-planner/engine/interaction"
	"github.com/Carmen-Shannon/oxy-planner/engine/notify"
	"github.com/Carmen-Shannon/oxy-planner/engine/raycast"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultWallHeight is the wall height used when a floorplan is created without one.
const DefaultWallHeight = 250.0

// Side names one of the four walls of a rectangular room.
type Side string

const (
	SideNorth Side = "north"
	SideSouth Side = "south"
	SideEast  Side = "east"
	SideWest  Side = "west"
)

// Room is an axis-aligned rectangular room on the XZ plane.
type Room struct {
	Name string
	Min  mgl64.Vec2 // (x, z)
	Max  mgl64.Vec2 // (x, z)
}

var _ interaction.Room = &Room{}

func (r *Room) ID() string { return r.Name }

// Edge is the inner face of one wall of a room.
type Edge struct {
	Room *Room
	Side Side
}

var _ interaction.WallEdge = &Edge{}

func (e *Edge) ID() string { return fmt.Sprintf("%s/%s", e.Room.Name, e.Side) }

// Floorplan holds the rooms of a layout and the click surfaces derived from them.
type Floorplan struct {
	wallHeight float64
	rooms      []*Room
	walls      []interaction.WallPlane
	floors     []interaction.FloorPlane
	center     mgl64.Vec3
	size       mgl64.Vec3
	updated    *notify.Signal[notify.Empty]
}

var _ interaction.Floorplan = &Floorplan{}

// NewFloorplan creates an empty floorplan.
//
// Parameters:
//   - wallHeight: height of every wall, DefaultWallHeight if not positive
//
// Returns:
//   - *Floorplan: the floorplan
func NewFloorplan(wallHeight float64) *Floorplan {
	if wallHeight <= 0 {
		wallHeight = DefaultWallHeight
	}
	return &Floorplan{
		wallHeight: wallHeight,
		updated:    notify.NewSignal[notify.Empty]("floorplanUpdated"),
	}
}

func (f *Floorplan) WallEdgePlanes() []interaction.WallPlane { return f.walls }
func (f *Floorplan) FloorPlanes() []interaction.FloorPlane   { return f.floors }
func (f *Floorplan) Center() mgl64.Vec3                      { return f.center }
func (f *Floorplan) Size() mgl64.Vec3                        { return f.size }
func (f *Floorplan) Rooms() []*Room                          { return f.rooms }
func (f *Floorplan) WallHeight() float64                     { return f.wallHeight }

// Updated fires after rooms are added or removed.
func (f *Floorplan) Updated() *notify.Signal[notify.Empty] {
	return f.updated
}

// AddRoom adds a rectangular room spanning the two corners.
//
// Parameters:
//   - name: unique room name
//   - a: one corner (x, z)
//   - b: the opposite corner (x, z)
//
// Returns:
//   - *Room: the added room
//   - error: if the name is taken or the room has no area
func (f *Floorplan) AddRoom(name string, a, b mgl64.Vec2) (*Room, error) {
	for _, r := range f.rooms {
		if r.Name == name {
			return nil, fmt.Errorf("room %q already exists", name)
		}
	}
	lo := mgl64.Vec2{math.Min(a.X(), b.X()), math.Min(a.Y(), b.Y())}
	hi := mgl64.Vec2{math.Max(a.X(), b.X()), math.Max(a.Y(), b.Y())}
	if hi.X()-lo.X() <= 0 || hi.Y()-lo.Y() <= 0 {
		return nil, fmt.Errorf("room %q has no area", name)
	}

	r := &Room{Name: name, Min: lo, Max: hi}
	f.rooms = append(f.rooms, r)
	f.rebuild()
	log.Printf("[Floorplan] added room %s (%.0f x %.0f)", name, hi.X()-lo.X(), hi.Y()-lo.Y())
	return r, nil
}

// RemoveRoom removes the named room.
//
// Returns:
//   - bool: true if a room was removed
func (f *Floorplan) RemoveRoom(name string) bool {
	for i, r := range f.rooms {
		if r.Name == name {
			f.rooms = append(f.rooms[:i:i], f.rooms[i+1:]...)
			f.rebuild()
			return true
		}
	}
	return false
}

func (f *Floorplan) rebuild() {
	f.walls = nil
	f.floors = nil

	lo := mgl64.Vec3{math.Inf(1), 0, math.Inf(1)}
	hi := mgl64.Vec3{math.Inf(-1), 0, math.Inf(-1)}
	for _, r := range f.rooms {
		f.floors = append(f.floors, interaction.FloorPlane{Surface: floorQuad(r), Room: r})
		for _, side := range []Side{SideNorth, SideSouth, SideEast, SideWest} {
			f.walls = append(f.walls, interaction.WallPlane{
				Surface: wallQuad(r, side, f.wallHeight),
				Edge:    &Edge{Room: r, Side: side},
			})
		}
		lo = mgl64.Vec3{math.Min(lo.X(), r.Min.X()), 0, math.Min(lo.Z(), r.Min.Y())}
		hi = mgl64.Vec3{math.Max(hi.X(), r.Max.X()), f.wallHeight, math.Max(hi.Z(), r.Max.Y())}
	}

	if len(f.rooms) == 0 {
		f.center, f.size = mgl64.Vec3{}, mgl64.Vec3{}
	} else {
		f.center = lo.Add(hi).Mul(0.5)
		f.size = hi.Sub(lo)
	}
	f.updated.Fire(notify.Empty{})
}

// floorQuad faces +Y.
func floorQuad(r *Room) *raycast.Quad {
	hx := (r.Max.X() - r.Min.X()) / 2
	hz := (r.Max.Y() - r.Min.Y()) / 2
	return &raycast.Quad{
		Center:    mgl64.Vec3{r.Min.X() + hx, 0, r.Min.Y() + hz},
		HalfU:     mgl64.Vec3{0, 0, hz},
		HalfV:     mgl64.Vec3{hx, 0, 0},
		Hidden:    true,
		FrontOnly: true,
	}
}

// wallQuad faces into the room.
func wallQuad(r *Room, side Side, height float64) *raycast.Quad {
	hx := (r.Max.X() - r.Min.X()) / 2
	hz := (r.Max.Y() - r.Min.Y()) / 2
	cx, cz := r.Min.X()+hx, r.Min.Y()+hz
	up := mgl64.Vec3{0, height / 2, 0}

	q := &raycast.Quad{HalfV: up, Hidden: true}
	switch side {
	case SideNorth:
		q.Center = mgl64.Vec3{cx, height / 2, r.Min.Y()}
		q.HalfU = mgl64.Vec3{hx, 0, 0}
	case SideSouth:
		q.Center = mgl64.Vec3{cx, height / 2, r.Max.Y()}
		q.HalfU = mgl64.Vec3{-hx, 0, 0}
	case SideEast:
		q.Center = mgl64.Vec3{r.Max.X(), height / 2, cz}
		q.HalfU = mgl64.Vec3{0, 0, hz}
	case SideWest:
		q.Center = mgl64.Vec3{r.Min.X(), height / 2, cz}
		q.HalfU = mgl64.Vec3{0, 0, -hz}
	}
	return q
}
