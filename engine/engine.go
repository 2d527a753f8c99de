package engine

import (
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-planner/common"
	"github.com/Carmen-Shannon/oxy-planner/engine/camera"
	"github.com/Carmen-Shannon/oxy-planner/engine/input"
	"github.com/Carmen-Shannon/oxy-planner/engine/interaction"
	"github.com/Carmen-Shannon/oxy-planner/engine/notify"
	"github.com/Carmen-Shannon/oxy-planner/engine/profiler"
	"github.com/go-gl/mathgl/mgl64"
)

// Presenter draws a frame. The renderer satisfies it.
type Presenter interface {
	Render(color common.Color) error
}

// SceneEditor removes items from the scene.
type SceneEditor interface {
	Remove(item interaction.Item) bool
}

// updater is implemented by floorplans that announce changes.
type updater interface {
	Updated() *notify.Signal[notify.Empty]
}

// Frame describes one engine tick.
type Frame struct {
	Events   int
	Rendered bool
	Took     time.Duration
}

// pose is a camera position and orbit target.
type pose struct {
	position mgl64.Vec3
	target   mgl64.Vec3
}

// engine implements the Engine interface.
// Every method except Queue().Push must be called from the goroutine that ticks the engine.
type engine struct {
	queue *input.Queue

	camera      camera.Camera
	controls    camera.OrbitControls
	interaction interaction.Controller

	scene     interaction.Scene
	editor    SceneEditor
	floorplan interaction.Floorplan
	hud       interaction.HUD
	cursor    common.CursorSetter

	controlsOptions    []camera.OrbitControlsOption
	interactionOptions []interaction.ControllerBuilderOption

	presenter Presenter
	palette   Palette
	viewport  common.Viewport
	bindings  map[int]Command
	home      pose

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	lastTick       time.Time

	// Touch routing: a second finger hands the gesture to the camera until every finger lifts.
	multiTouch bool
	lastTouch  mgl64.Vec2

	needsRender bool

	quitChannel chan struct{}
	quitOnce    sync.Once

	unsubscribe []func()
}

// Engine is the main entry point for the viewer.
// It drains queued input once per tick, routes it to the interaction controller and the orbit
// controls, and presents a frame when anything visible changed.
type Engine interface {
	// Queue returns the event queue windows and pollers push into.
	Queue() *input.Queue

	// Camera returns the camera the engine drives.
	Camera() camera.Camera

	// Controls returns the orbit controls.
	Controls() camera.OrbitControls

	// Interaction returns the selection and drag controller.
	Interaction() interaction.Controller

	// Viewport returns the current viewport.
	Viewport() common.Viewport

	// Execute runs a viewer command immediately.
	//
	// Parameters:
	//   - cmd: the command to run
	Execute(cmd Command)

	// Tick drains and dispatches queued events, advances the orbit controls and presents a frame
	// if one is due.
	//
	// Returns:
	//   - Frame: what the tick did
	Tick() Frame

	// Pump ticks if at least one tick period has passed since the last tick.
	// Hosts that run their own loop (e.g. a window message loop) call it every iteration.
	//
	// Parameters:
	//   - now: the current time
	//
	// Returns:
	//   - Frame: what the tick did
	//   - bool: true if a tick ran
	Pump(now time.Time) (Frame, bool)

	// SetTickRate sets the engine tick rate in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// TickRate returns the tick period.
	TickRate() time.Duration

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// RequestRender marks a frame as due on the next tick.
	RequestRender()

	// Quit signals hosts to stop ticking. Safe to call multiple times.
	Quit()

	// Done is closed once Quit has been called.
	Done() <-chan struct{}

	// Close unsubscribes from collaborators, closes the interaction controller and quits.
	Close()
}

// NewEngine creates an engine around cam and scene.
// The orbit controls and interaction controller are created here and wired to each other.
//
// Parameters:
//   - cam: the camera to drive
//   - scene: the source of selectable items
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(cam camera.Camera, scene interaction.Scene, options ...EngineBuilderOption) Engine {
	e := &engine{
		queue:          input.NewQueue(),
		camera:         cam,
		scene:          scene,
		palette:        DefaultPalette(),
		bindings:       DefaultKeyBindings(),
		profiler:       profiler.NewProfiler(),
		engineTickRate: time.Second / 60,
		needsRender:    true,
		quitChannel:    make(chan struct{}),
	}

	for _, opt := range options {
		opt(e)
	}

	e.controls = camera.NewOrbitControls(cam, e.controlsOptions...)
	e.controls.SetViewport(e.viewport)
	e.home = pose{position: cam.Position(), target: e.controls.Target()}

	ctrlOptions := []interaction.ControllerBuilderOption{
		interaction.WithCameraControls(e.controls),
		interaction.WithViewport(e.viewport),
	}
	if e.floorplan != nil {
		ctrlOptions = append(ctrlOptions, interaction.WithFloorplan(e.floorplan))
	}
	if e.hud != nil {
		ctrlOptions = append(ctrlOptions, interaction.WithHUD(e.hud))
	}
	if e.cursor != nil {
		ctrlOptions = append(ctrlOptions, interaction.WithCursorSetter(e.cursor))
	}
	e.interaction = interaction.NewController(cam, scene, append(ctrlOptions, e.interactionOptions...)...)

	// Items can slide under a resting pointer whenever the camera moves.
	moved := e.controls.CameraMoved()
	movedID := moved.Subscribe(func(notify.Empty) { e.interaction.RefreshHover() })
	e.unsubscribe = append(e.unsubscribe, func() { moved.Unsubscribe(movedID) })

	if u, ok := e.floorplan.(updater); ok {
		signal := u.Updated()
		id := signal.Subscribe(func(notify.Empty) { e.centerOnFloorplan() })
		e.unsubscribe = append(e.unsubscribe, func() { signal.Unsubscribe(id) })
	}
	e.centerOnFloorplan()

	return e
}

func (e *engine) Queue() *input.Queue                 { return e.queue }
func (e *engine) Camera() camera.Camera               { return e.camera }
func (e *engine) Controls() camera.OrbitControls      { return e.controls }
func (e *engine) Interaction() interaction.Controller { return e.interaction }
func (e *engine) Viewport() common.Viewport           { return e.viewport }
func (e *engine) TickRate() time.Duration             { return e.engineTickRate }
func (e *engine) RequestRender()                      { e.needsRender = true }
func (e *engine) Done() <-chan struct{}               { return e.quitChannel }

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickRate(fps float64) {
	e.engineTickRate = tickInterval(fps)
}

// Quit closes the done channel. Subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) Close() {
	for _, fn := range e.unsubscribe {
		fn()
	}
	e.unsubscribe = nil
	e.interaction.Close()
	e.Quit()
}

func (e *engine) Pump(now time.Time) (Frame, bool) {
	if now.Sub(e.lastTick) < e.engineTickRate {
		return Frame{}, false
	}
	e.lastTick = now
	return e.Tick(), true
}

func (e *engine) Tick() Frame {
	start := time.Now()

	events := e.queue.Drain()
	for _, ev := range events {
		e.dispatch(ev)
	}

	if e.controls.Pending() != camera.NeutralDelta() || e.controls.AutoRotating() {
		e.controls.Update()
	}

	// Both flags reset on read, so they are always consulted.
	controlsMoved := e.controls.NeedsUpdate()
	interactionChanged := e.interaction.NeedsUpdate()
	due := e.needsRender || controlsMoved || interactionChanged

	frame := Frame{Events: len(events)}
	if due {
		frame.Rendered = e.present()
	}
	frame.Took = time.Since(start)

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick(frame.Events, frame.Rendered, frame.Took)
	}
	return frame
}

// present draws a frame. A failed frame stays due and is retried next tick.
func (e *engine) present() bool {
	if e.presenter == nil {
		e.needsRender = false
		return true
	}
	hovered := e.interaction.Hovered() != nil || e.interaction.HandleHovered()
	if err := e.presenter.Render(e.palette.Color(e.interaction.State(), hovered)); err != nil {
		log.Printf("[Engine] WARNING: present failed: %v", err)
		e.needsRender = true
		return false
	}
	e.needsRender = false
	return true
}

// dispatch routes one event. The interaction controller sees primary-button input first,
// so a press that starts a drag disables the orbit controls before they see it.
func (e *engine) dispatch(ev input.Event) {
	switch ev := ev.(type) {
	case input.PointerDown:
		e.controls.StopAutoRotate()
		if ev.Button == common.ButtonPrimary {
			e.interaction.PointerDown(ev.X, ev.Y)
		} else {
			e.interaction.AuxiliaryPress()
		}
		if e.controls.Enabled() {
			e.controls.PointerDown(ev.Button, ev.X, ev.Y)
		}
	case input.PointerMove:
		e.interaction.PointerMove(ev.X, ev.Y)
		if e.controls.Enabled() {
			e.controls.PointerMove(ev.X, ev.Y)
		}
	case input.PointerUp:
		if ev.Button == common.ButtonPrimary {
			e.interaction.PointerUp(ev.X, ev.Y)
		}
		e.controls.PointerUp()
	case input.PointerEnter:
		e.controls.SetAutoRotatePaused(ev.Inside)
		if !ev.Inside {
			e.interaction.Cancel()
			e.controls.PointerUp()
		}
	case input.CaptureLost:
		e.interaction.Cancel()
		e.controls.PointerUp()
	case input.Wheel:
		e.controls.StopAutoRotate()
		if e.controls.Enabled() {
			e.controls.Wheel(ev.Delta)
		}
	case input.KeyDown:
		if cmd, ok := e.bindings[ev.Key]; ok {
			e.Execute(cmd)
			return
		}
		if e.controls.Enabled() {
			e.controls.KeyDown(ev.Key)
		}
	case input.TouchStart:
		e.touchStart(ev.Points)
	case input.TouchMove:
		if !e.multiTouch && len(ev.Points) == 1 {
			e.lastTouch = ev.Points[0]
			e.interaction.PointerMove(ev.Points[0].X(), ev.Points[0].Y())
		}
		if e.controls.Enabled() {
			e.controls.TouchMove(ev.Points)
		}
	case input.TouchEnd:
		if !e.multiTouch && len(ev.Remaining) == 0 {
			e.interaction.PointerUp(e.lastTouch.X(), e.lastTouch.Y())
		}
		e.controls.TouchEnd(ev.Remaining)
		if len(ev.Remaining) == 0 {
			e.multiTouch = false
		}
	case input.Resize:
		e.resize(ev.Width, ev.Height)
	case input.Task:
		if ev.Run != nil {
			ev.Run()
		}
		e.needsRender = true
	default:
		log.Printf("[Engine] WARNING: unhandled event %T", ev)
	}
}

// touchStart routes a single finger like the primary button. A second finger aborts any
// item gesture and leaves the camera in charge until every finger lifts.
func (e *engine) touchStart(points []mgl64.Vec2) {
	e.controls.StopAutoRotate()
	switch {
	case len(points) == 1 && !e.multiTouch:
		e.lastTouch = points[0]
		e.interaction.PointerDown(points[0].X(), points[0].Y())
	case len(points) > 1 && !e.multiTouch:
		e.multiTouch = true
		e.interaction.Abort()
	}
	if e.controls.Enabled() {
		e.controls.TouchStart(points)
	}
}

// resize updates the viewport and the camera's projection. Orthographic cameras keep their
// vertical extent and widen or narrow horizontally.
func (e *engine) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.viewport = common.Viewport{Width: float64(width), Height: float64(height)}
	e.interaction.SetViewport(e.viewport)
	e.controls.SetViewport(e.viewport)

	aspect := float64(width) / float64(height)
	if ortho, ok := e.camera.(camera.OrthographicCamera); ok {
		left, right, top, bottom := ortho.Extents()
		cx := (left + right) / 2
		halfW := (top - bottom) / 2 * aspect
		ortho.SetExtents(cx-halfW, cx+halfW, top, bottom)
	}
	e.camera.SetAspect(aspect)
	e.needsRender = true
}

func (e *engine) Execute(cmd Command) {
	switch cmd {
	case CommandZoomIn:
		e.controls.DollyIn(zoomStep)
		e.controls.Update()
	case CommandZoomOut:
		e.controls.DollyOut(zoomStep)
		e.controls.Update()
	case CommandPanLeft:
		e.controls.PanLeft(panStep)
		e.controls.Update()
	case CommandPanRight:
		e.controls.PanLeft(-panStep)
		e.controls.Update()
	case CommandPanUp:
		e.controls.PanUp(panStep)
		e.controls.Update()
	case CommandPanDown:
		e.controls.PanUp(-panStep)
		e.controls.Update()
	case CommandTopView:
		e.camera.SetPosition(e.controls.Target().Add(mgl64.Vec3{0, topViewHeight, 0}))
		e.controls.Update()
	case CommandFrontView:
		e.camera.SetPosition(e.controls.Target().Add(mgl64.Vec3{0, frontViewHeight, frontViewDepth}))
		e.controls.Update()
	case CommandResetView:
		if !e.centerOnFloorplan() {
			e.camera.SetPosition(e.home.position)
			e.controls.SetTarget(e.home.target)
			e.controls.Update()
		}
	case CommandDeleteSelected:
		item := e.interaction.Selected()
		if item == nil || e.editor == nil {
			return
		}
		if !e.editor.Remove(item) {
			log.Printf("[Engine] WARNING: selected item was not in the scene")
		}
	case CommandQuit:
		e.Quit()
	default:
		log.Printf("[Engine] WARNING: unknown command %d", cmd)
		return
	}
	e.needsRender = true
}

// centerOnFloorplan points the camera at the floorplan's bounds.
//
// Returns:
//   - bool: false if there is no floorplan or it is empty
func (e *engine) centerOnFloorplan() bool {
	if e.floorplan == nil {
		return false
	}
	size := e.floorplan.Size()
	if size == (mgl64.Vec3{}) {
		return false
	}
	e.controls.CenterOn(e.floorplan.Center(), size)
	e.needsRender = true
	return true
}
