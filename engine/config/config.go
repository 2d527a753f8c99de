package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-planner/common"
	"github.com/Carmen-Shannon/oxy-planner/engine/room"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidConfig is wrapped by every validation failure.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrUnsupportedFormat is returned for config files that are neither TOML nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// Format is a config file encoding.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Projection names accepted by camera.projection.
const (
	ProjectionPerspective  = "perspective"
	ProjectionOrthographic = "orthographic"
)

// Config is the viewer configuration file.
type Config struct {
	Window      WindowConfig      `toml:"window" yaml:"window"`
	Camera      CameraConfig      `toml:"camera" yaml:"camera"`
	Controls    ControlsConfig    `toml:"controls" yaml:"controls"`
	Interaction InteractionConfig `toml:"interaction" yaml:"interaction"`
	Engine      EngineConfig      `toml:"engine" yaml:"engine"`
	Layout      LayoutConfig      `toml:"layout" yaml:"layout"`
}

type WindowConfig struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
}

type CameraConfig struct {
	Projection  string  `toml:"projection" yaml:"projection"`
	FovDegrees  float64 `toml:"fov_degrees" yaml:"fov_degrees"`
	Near        float64 `toml:"near" yaml:"near"`
	Far         float64 `toml:"far" yaml:"far"`
	OrthoHeight float64 `toml:"ortho_height" yaml:"ortho_height"`
}

// ControlsConfig tunes the orbit controls. Polar angles are in degrees.
type ControlsConfig struct {
	RotateSpeed     float64 `toml:"rotate_speed" yaml:"rotate_speed"`
	ZoomSpeed       float64 `toml:"zoom_speed" yaml:"zoom_speed"`
	KeyPanSpeed     float64 `toml:"key_pan_speed" yaml:"key_pan_speed"`
	MinDistance     float64 `toml:"min_distance" yaml:"min_distance"`
	MaxDistance     float64 `toml:"max_distance" yaml:"max_distance"`
	MinPolarAngle   float64 `toml:"min_polar_angle" yaml:"min_polar_angle"`
	MaxPolarAngle   float64 `toml:"max_polar_angle" yaml:"max_polar_angle"`
	AutoRotate      bool    `toml:"auto_rotate" yaml:"auto_rotate"`
	AutoRotateSpeed float64 `toml:"auto_rotate_speed" yaml:"auto_rotate_speed"`
	NoRotate        bool    `toml:"no_rotate" yaml:"no_rotate"`
	NoZoom          bool    `toml:"no_zoom" yaml:"no_zoom"`
	NoPan           bool    `toml:"no_pan" yaml:"no_pan"`
	NoKeys          bool    `toml:"no_keys" yaml:"no_keys"`
}

type InteractionConfig struct {
	CanMoveFixedItems bool `toml:"can_move_fixed_items" yaml:"can_move_fixed_items"`
}

type EngineConfig struct {
	TickRate         int  `toml:"tick_rate" yaml:"tick_rate"`
	Profiling        bool `toml:"profiling" yaml:"profiling"`
	RaycastWorkers   int  `toml:"raycast_workers" yaml:"raycast_workers"`
	RaycastThreshold int  `toml:"raycast_threshold" yaml:"raycast_threshold"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Window: WindowConfig{Title: "oxy-planner", Width: 1280, Height: 720},
		Camera: CameraConfig{
			Projection:  ProjectionPerspective,
			FovDegrees:  45,
			Near:        1,
			Far:         10000,
			OrthoHeight: 1500,
		},
		Controls: ControlsConfig{
			RotateSpeed:     1,
			ZoomSpeed:       1,
			KeyPanSpeed:     40,
			MaxDistance:     1500,
			MaxPolarAngle:   90,
			AutoRotateSpeed: 2,
		},
		Engine: EngineConfig{TickRate: 60, RaycastWorkers: 1, RaycastThreshold: 64},
		Layout: LayoutConfig{WallHeight: room.DefaultWallHeight},
	}
}

// FormatFor picks the decoder for a file by its extension.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - Format: the file's format
//   - error: ErrUnsupportedFormat for unknown extensions
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads, decodes and validates the config file at path.
//
// Parameters:
//   - path: a .toml, .yaml or .yml file
//
// Returns:
//   - *Config: the config with defaults filled in
//   - error: if the file cannot be read, decoded or validated
func Load(path string) (*Config, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data, fills unset fields from Default and validates the result.
//
// Parameters:
//   - data: the encoded config
//   - format: the encoding of data
//
// Returns:
//   - *Config: the decoded config
//   - error: if decoding or validation fails
func Parse(data []byte, format Format) (*Config, error) {
	var cfg Config
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &cfg)
	case FormatYAML:
		err = yaml.Unmarshal(data, &cfg)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}

	cfg.fillDefaults(Default())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// fillDefaults replaces zero values with the values from d. Booleans default to false.
func (c *Config) fillDefaults(d *Config) {
	c.Window.Title = common.Coalesce(c.Window.Title, d.Window.Title)
	c.Window.Width = common.Coalesce(c.Window.Width, d.Window.Width)
	c.Window.Height = common.Coalesce(c.Window.Height, d.Window.Height)

	c.Camera.Projection = common.Coalesce(strings.ToLower(c.Camera.Projection), d.Camera.Projection)
	c.Camera.FovDegrees = common.Coalesce(c.Camera.FovDegrees, d.Camera.FovDegrees)
	c.Camera.Near = common.Coalesce(c.Camera.Near, d.Camera.Near)
	c.Camera.Far = common.Coalesce(c.Camera.Far, d.Camera.Far)
	c.Camera.OrthoHeight = common.Coalesce(c.Camera.OrthoHeight, d.Camera.OrthoHeight)

	c.Controls.RotateSpeed = common.Coalesce(c.Controls.RotateSpeed, d.Controls.RotateSpeed)
	c.Controls.ZoomSpeed = common.Coalesce(c.Controls.ZoomSpeed, d.Controls.ZoomSpeed)
	c.Controls.KeyPanSpeed = common.Coalesce(c.Controls.KeyPanSpeed, d.Controls.KeyPanSpeed)
	c.Controls.MaxDistance = common.Coalesce(c.Controls.MaxDistance, d.Controls.MaxDistance)
	c.Controls.MaxPolarAngle = common.Coalesce(c.Controls.MaxPolarAngle, d.Controls.MaxPolarAngle)
	c.Controls.AutoRotateSpeed = common.Coalesce(c.Controls.AutoRotateSpeed, d.Controls.AutoRotateSpeed)

	c.Engine.TickRate = common.Coalesce(c.Engine.TickRate, d.Engine.TickRate)
	c.Engine.RaycastWorkers = common.Coalesce(c.Engine.RaycastWorkers, d.Engine.RaycastWorkers)
	c.Engine.RaycastThreshold = common.Coalesce(c.Engine.RaycastThreshold, d.Engine.RaycastThreshold)

	c.Layout.WallHeight = common.Coalesce(c.Layout.WallHeight, d.Layout.WallHeight)
}

// Validate reports every out-of-range value, each wrapping ErrInvalidConfig.
//
// Returns:
//   - error: nil if the config is usable
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d must be positive", c.Window.Width, c.Window.Height)

	check(c.Camera.Projection == ProjectionPerspective || c.Camera.Projection == ProjectionOrthographic,
		"camera.projection %q must be %q or %q", c.Camera.Projection, ProjectionPerspective, ProjectionOrthographic)
	check(c.Camera.FovDegrees > 0 && c.Camera.FovDegrees < 180, "camera.fov_degrees %v must be in (0, 180)", c.Camera.FovDegrees)
	check(c.Camera.Near > 0, "camera.near %v must be positive", c.Camera.Near)
	check(c.Camera.Far > c.Camera.Near, "camera.far %v must exceed camera.near %v", c.Camera.Far, c.Camera.Near)
	check(c.Camera.OrthoHeight > 0, "camera.ortho_height %v must be positive", c.Camera.OrthoHeight)

	check(c.Controls.MinDistance >= 0, "controls.min_distance %v must not be negative", c.Controls.MinDistance)
	check(c.Controls.MaxDistance >= c.Controls.MinDistance,
		"controls.max_distance %v must not be below controls.min_distance %v", c.Controls.MaxDistance, c.Controls.MinDistance)
	check(c.Controls.MinPolarAngle >= 0 && c.Controls.MaxPolarAngle <= 180,
		"controls polar angles [%v, %v] must lie in [0, 180]", c.Controls.MinPolarAngle, c.Controls.MaxPolarAngle)
	check(c.Controls.MaxPolarAngle >= c.Controls.MinPolarAngle,
		"controls.max_polar_angle %v must not be below controls.min_polar_angle %v", c.Controls.MaxPolarAngle, c.Controls.MinPolarAngle)
	check(c.Controls.ZoomSpeed > 0, "controls.zoom_speed %v must be positive", c.Controls.ZoomSpeed)

	check(c.Engine.TickRate > 0, "engine.tick_rate %d must be positive", c.Engine.TickRate)
	check(c.Engine.RaycastWorkers > 0, "engine.raycast_workers %d must be positive", c.Engine.RaycastWorkers)
	check(c.Engine.RaycastThreshold > 0, "engine.raycast_threshold %d must be positive", c.Engine.RaycastThreshold)

	check(c.Layout.WallHeight > 0, "layout.wall_height %v must be positive", c.Layout.WallHeight)
	for i, r := range c.Layout.Rooms {
		check(r.Name != "", "layout.rooms[%d] needs a name", i)
	}
	for i, it := range c.Layout.Items {
		check(it.Name != "", "layout.items[%d] needs a name", i)
		check(it.Size[0] > 0 && it.Size[1] > 0 && it.Size[2] > 0, "layout.items[%d] size %v must be positive", i, it.Size)
	}

	return errors.Join(errs...)
}
