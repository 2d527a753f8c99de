package interaction

import (
	"github.com/Carmen-Shannon/oxy-planner/common"
	"github.com/Carmen-Shannon/oxy-planner/engine/raycast"
)

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*controllerImpl)

// WithFloorplan sets the walls and floors used for click tests.
//
// Parameters:
//   - floorplan: the floorplan collaborator
//
// Returns:
//   - ControllerBuilderOption: functional option to set the floorplan
func WithFloorplan(floorplan Floorplan) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.floorplan = floorplan
	}
}

// WithHUD sets the overlay whose rotate handle takes hit priority over items.
//
// Parameters:
//   - hud: the HUD collaborator
//
// Returns:
//   - ControllerBuilderOption: functional option to set the HUD
func WithHUD(hud HUD) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.hud = hud
	}
}

// WithCameraControls sets the camera controls that are locked while dragging or rotating.
func WithCameraControls(controls CameraControls) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.controls = controls
	}
}

// WithCursorSetter sets the sink for cursor style changes.
func WithCursorSetter(cursor common.CursorSetter) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.cursor = cursor
	}
}

// WithCanMoveFixedItems lets fixed items be dragged.
func WithCanMoveFixedItems(canMove bool) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.canMoveFixedItems = canMove
	}
}

// WithRaycastPool fans large pick tests out to a worker pool.
func WithRaycastPool(pool *raycast.Pool) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.pool = pool
	}
}

// WithViewport sets the initial viewport.
func WithViewport(viewport common.Viewport) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.viewport = viewport
	}
}

// WithNotifications shares an existing set of signals instead of creating a new one.
func WithNotifications(notes *Notifications) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if notes != nil {
			c.notes = notes
		}
	}
}
