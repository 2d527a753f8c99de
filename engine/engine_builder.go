package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-planner/common"
	"github.com/Carmen-Shannon/oxy-planner/engine/camera"
	"github.com/Carmen-Shannon/oxy-planner/engine/input"
	"github.com/Carmen-Shannon/oxy-planner/engine/interaction"
	"github.com/Carmen-Shannon/oxy-planner/engine/profiler"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler, e.g. to inject a clock in tests.
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		if p != nil {
			e.profiler = p
		}
	}
}

// WithTickRate sets the engine tick rate in ticks per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.engineTickRate = tickInterval(fps)
	}
}

// WithQueue sets the queue events are drained from, e.g. one already handed to a window.
func WithQueue(queue *input.Queue) EngineBuilderOption {
	return func(e *engine) {
		if queue != nil {
			e.queue = queue
		}
	}
}

// WithPresenter sets the frame presenter. Without one, ticks only track whether a frame is due.
//
// Parameters:
//   - presenter: the renderer frames are presented through
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithPresenter(presenter Presenter) EngineBuilderOption {
	return func(e *engine) {
		e.presenter = presenter
	}
}

// WithPalette sets the background colors used per interaction state.
func WithPalette(palette Palette) EngineBuilderOption {
	return func(e *engine) {
		e.palette = palette
	}
}

// WithFloorplan sets the walls and floors used for click tests and for centering the camera.
// If the floorplan reports updates, the camera re-centers on every change.
//
// Parameters:
//   - floorplan: the floorplan
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFloorplan(floorplan interaction.Floorplan) EngineBuilderOption {
	return func(e *engine) {
		e.floorplan = floorplan
	}
}

// WithHUD sets the selection overlay.
func WithHUD(hud interaction.HUD) EngineBuilderOption {
	return func(e *engine) {
		e.hud = hud
	}
}

// WithCursorSetter sets where cursor changes are sent, usually the window or poller.
func WithCursorSetter(cursor common.CursorSetter) EngineBuilderOption {
	return func(e *engine) {
		e.cursor = cursor
	}
}

// WithSceneEditor sets the collaborator that deletes items on CommandDeleteSelected.
func WithSceneEditor(editor SceneEditor) EngineBuilderOption {
	return func(e *engine) {
		e.editor = editor
	}
}

// WithViewport sets the initial viewport. Resize events replace it.
func WithViewport(viewport common.Viewport) EngineBuilderOption {
	return func(e *engine) {
		e.viewport = viewport
	}
}

// WithControlsOptions appends options passed to the orbit controls on construction.
func WithControlsOptions(options ...camera.OrbitControlsOption) EngineBuilderOption {
	return func(e *engine) {
		e.controlsOptions = append(e.controlsOptions, options...)
	}
}

// WithInteractionOptions appends options passed to the interaction controller on construction.
func WithInteractionOptions(options ...interaction.ControllerBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.interactionOptions = append(e.interactionOptions, options...)
	}
}

// WithKeyBindings replaces the default key to command bindings.
//
// Parameters:
//   - bindings: common key codes mapped to commands
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithKeyBindings(bindings map[int]Command) EngineBuilderOption {
	return func(e *engine) {
		e.bindings = bindings
	}
}

// tickInterval converts a tick rate into a tick period, defaulting to 60Hz.
func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60.0
	}
	return time.Duration(float64(time.Second) / fps)
}
