package config

import (
	"log"

	"github.com/Carmen-Shannon/oxy-planner/engine/camera"
	"github.com/Carmen-Shannon/oxy-planner/engine/interaction"
	"github.com/Carmen-Shannon/oxy-planner/engine/raycast"
	"github.com/go-gl/mathgl/mgl64"
)

// Aspect returns the window's width over height.
func (c *Config) Aspect() float64 {
	return float64(c.Window.Width) / float64(c.Window.Height)
}

// NewCamera builds the configured camera for the window's aspect ratio.
//
// Parameters:
//   - options: extra camera options applied after the configured ones
//
// Returns:
//   - camera.Camera: a perspective or orthographic camera
func (c *Config) NewCamera(options ...camera.CameraBuilderOption) camera.Camera {
	options = append([]camera.CameraBuilderOption{
		camera.WithAspect(c.Aspect()),
		camera.WithClip(c.Camera.Near, c.Camera.Far),
	}, options...)

	if c.Camera.Projection == ProjectionOrthographic {
		return camera.NewOrthographicCameraForHeight(c.Camera.OrthoHeight, c.Aspect(), options...)
	}
	return camera.NewPerspectiveCamera(mgl64.DegToRad(c.Camera.FovDegrees), options...)
}

// ControlsOptions translates the [controls] section into orbit control options.
func (c *Config) ControlsOptions() []camera.OrbitControlsOption {
	cc := c.Controls
	options := []camera.OrbitControlsOption{
		camera.WithRotateSpeed(cc.RotateSpeed),
		camera.WithZoomSpeed(cc.ZoomSpeed),
		camera.WithKeyPanSpeed(cc.KeyPanSpeed),
		camera.WithRadiusBounds(cc.MinDistance, cc.MaxDistance),
		camera.WithPolarBounds(mgl64.DegToRad(cc.MinPolarAngle), mgl64.DegToRad(cc.MaxPolarAngle)),
		camera.WithNoRotate(cc.NoRotate),
		camera.WithNoZoom(cc.NoZoom),
		camera.WithNoPan(cc.NoPan),
		camera.WithNoKeys(cc.NoKeys),
	}
	if cc.AutoRotate {
		options = append(options, camera.WithAutoRotate(cc.AutoRotateSpeed))
	}
	return options
}

// InteractionOptions translates the [interaction] and [engine] raycast settings into controller options.
// A raycast pool is only created when more than one worker is configured.
func (c *Config) InteractionOptions() []interaction.ControllerBuilderOption {
	options := []interaction.ControllerBuilderOption{
		interaction.WithCanMoveFixedItems(c.Interaction.CanMoveFixedItems),
	}
	if c.Engine.RaycastWorkers > 1 {
		options = append(options, interaction.WithRaycastPool(raycast.NewPool(c.Engine.RaycastWorkers, c.Engine.RaycastThreshold)))
	}
	return options
}

// ApplyTuning pushes the runtime-adjustable settings of c into live components.
// Window size, projection type and engine settings need a restart and are left alone.
//
// Parameters:
//   - cam: the active camera
//   - controls: the active orbit controls, may be nil
//   - ctrl: the active interaction controller, may be nil
func (c *Config) ApplyTuning(cam camera.Camera, controls camera.OrbitControls, ctrl interaction.Controller) {
	if cam != nil {
		cam.SetClip(c.Camera.Near, c.Camera.Far)
		if p, ok := cam.(camera.PerspectiveCamera); ok {
			p.SetFov(mgl64.DegToRad(c.Camera.FovDegrees))
		}
	}
	if controls != nil {
		controls.Reconfigure(c.ControlsOptions()...)
		if !c.Controls.AutoRotate {
			controls.SetAutoRotate(false)
		}
		controls.Update()
	}
	if ctrl != nil {
		ctrl.SetCanMoveFixedItems(c.Interaction.CanMoveFixedItems)
	}
	log.Printf("[Config] applied tuning: projection=%s fov=%.1f autoRotate=%v", c.Camera.Projection, c.Camera.FovDegrees, c.Controls.AutoRotate)
}
