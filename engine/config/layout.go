package config

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-planner/engine/room"
	"github.com/go-gl/mathgl/mgl64"
)

// LayoutConfig describes the rooms and furniture loaded at startup.
// An empty layout loads DemoLayout.
type LayoutConfig struct {
	WallHeight float64      `toml:"wall_height" yaml:"wall_height"`
	Rooms      []RoomConfig `toml:"rooms" yaml:"rooms"`
	Items      []ItemConfig `toml:"items" yaml:"items"`
}

// RoomConfig is an axis-aligned room between two floor corners given as (x, z).
type RoomConfig struct {
	Name string     `toml:"name" yaml:"name"`
	Min  [2]float64 `toml:"min" yaml:"min"`
	Max  [2]float64 `toml:"max" yaml:"max"`
}

// ItemConfig is a piece of furniture. Position is the center of its footprint on the floor.
type ItemConfig struct {
	Name       string     `toml:"name" yaml:"name"`
	Position   [3]float64 `toml:"position" yaml:"position"`
	Size       [3]float64 `toml:"size" yaml:"size"`
	YawDegrees float64    `toml:"yaw_degrees" yaml:"yaw_degrees"`
	Fixed      bool       `toml:"fixed" yaml:"fixed"`
}

// DemoLayout is a single living room with a few pieces of furniture.
func DemoLayout() LayoutConfig {
	return LayoutConfig{
		WallHeight: room.DefaultWallHeight,
		Rooms: []RoomConfig{
			{Name: "living", Min: [2]float64{-300, -200}, Max: [2]float64{300, 200}},
		},
		Items: []ItemConfig{
			{Name: "sofa", Position: [3]float64{0, 0, -140}, Size: [3]float64{220, 85, 95}},
			{Name: "table", Position: [3]float64{0, 0, 20}, Size: [3]float64{120, 45, 70}},
			{Name: "armchair", Position: [3]float64{-200, 0, 40}, Size: [3]float64{90, 90, 90}, YawDegrees: 90},
			{Name: "cabinet", Position: [3]float64{250, 0, 160}, Size: [3]float64{90, 180, 45}, YawDegrees: 180, Fixed: true},
		},
	}
}

// BuildLayout creates the floorplan and scene described by the [layout] section.
//
// Returns:
//   - *room.Floorplan: the rooms
//   - *room.Scene: the items
//   - error: if a room is degenerate or duplicated
func (c *Config) BuildLayout() (*room.Floorplan, *room.Scene, error) {
	layout := c.Layout
	if len(layout.Rooms) == 0 && len(layout.Items) == 0 {
		layout = DemoLayout()
		layout.WallHeight = c.Layout.WallHeight
	}

	floorplan := room.NewFloorplan(layout.WallHeight)
	for _, r := range layout.Rooms {
		if _, err := floorplan.AddRoom(r.Name, mgl64.Vec2(r.Min), mgl64.Vec2(r.Max)); err != nil {
			return nil, nil, fmt.Errorf("layout room %q: %w", r.Name, err)
		}
	}

	scene := room.NewScene()
	for _, it := range layout.Items {
		scene.Add(room.NewItem(it.Name, mgl64.Vec3(it.Position), mgl64.Vec3(it.Size),
			room.WithYaw(mgl64.DegToRad(it.YawDegrees)),
			room.WithFixed(it.Fixed),
		))
	}
	return floorplan, scene, nil
}
