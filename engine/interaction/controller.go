package interaction

import (
	"github.com/Carmen-Shannon/oxy-planner/common"
	"github.com/Carmen-Shannon/oxy-planner/engine/camera"
	"github.com/Carmen-Shannon/oxy-planner/engine/notify"
	"github.com/Carmen-Shannon/oxy-planner/engine/raycast"
	"github.com/go-gl/mathgl/mgl64"
)

// PointerState is the controller's view of the primary pointer.
type PointerState struct {
	Position mgl64.Vec2
	Down     bool

	// Moved is set when the pointer position changes after a press and cleared by the next press.
	Moved bool
}

// Controller drives selection, dragging and rotation of scene items from pointer input.
// All methods must be called from the tick goroutine.
type Controller interface {
	// State returns the current interaction state.
	State() State

	// Selected returns the selected item, nil exactly when the state is StateUnselected.
	Selected() Item

	// Hovered returns the item currently under the pointer, if any.
	Hovered() Item

	// HandleHovered reports whether the HUD rotate handle is under the pointer.
	HandleHovered() bool

	// Pointer returns the tracked pointer state.
	Pointer() PointerState

	// Notifications returns the signals fired by the controller.
	Notifications() *Notifications

	// Enabled reports whether pointer input is processed.
	Enabled() bool

	// SetEnabled toggles pointer input processing.
	SetEnabled(enabled bool)

	// SetViewport sets the window region the camera renders into.
	SetViewport(viewport common.Viewport)

	// SetCanMoveFixedItems lets fixed items be dragged.
	SetCanMoveFixedItems(canMove bool)

	// PointerDown handles a primary press at window coordinates.
	//
	// Parameters:
	//   - x, y: window coordinates in pixels
	PointerDown(x, y float64)

	// PointerMove handles pointer motion at window coordinates.
	//
	// Parameters:
	//   - x, y: window coordinates in pixels
	PointerMove(x, y float64)

	// AuxiliaryPress handles a press of any button other than the primary one. It carries no
	// hit-test and only ends a free spin.
	AuxiliaryPress()

	// PointerUp handles a primary release at window coordinates.
	//
	// Parameters:
	//   - x, y: window coordinates in pixels
	PointerUp(x, y float64)

	// Cancel ends a pressed gesture as if the pointer was released where it was last seen.
	// Used on loss of capture; does nothing when the pointer is not down.
	Cancel()

	// Abort ends a pressed gesture as a drag, so it can never resolve into a click.
	// Used when a touch gesture turns into a multi-finger camera gesture.
	Abort()

	// RefreshHover re-runs the hover hit-test at the last pointer position, e.g. after the camera moved.
	RefreshHover()

	// Select selects item programmatically; nil clears the selection.
	Select(item Item)

	// ItemLoaded handles a newly added item. Unplaced items are selected and start dragging at
	// their ground position.
	ItemLoaded(item Item)

	// ItemRemoved drops every reference to item, deselecting it if needed.
	ItemRemoved(item Item)

	// Intersections casts the picking ray through a window coordinate against candidates.
	Intersections(x, y float64, candidates []raycast.Surface, opts raycast.Options) []raycast.Hit

	// ItemIntersection returns the point under the pointer on item's drag surfaces.
	//
	// Parameters:
	//   - item: the item being dragged or rotated
	//
	// Returns:
	//   - raycast.Hit: the nearest hit on the drag surfaces
	//   - bool: false if the pointer ray misses them
	ItemIntersection(item Item) (raycast.Hit, bool)

	// NeedsUpdate reports whether the view changed since the last call and clears the flag.
	NeedsUpdate() bool

	// Close unsubscribes from scene events.
	Close()
}

type controllerImpl struct {
	camera    camera.Camera
	scene     Scene
	floorplan Floorplan
	hud       HUD
	controls  CameraControls
	cursor    common.CursorSetter
	pool      *raycast.Pool
	notes     *Notifications

	viewport          common.Viewport
	groundPlane       *raycast.Plane
	enabled           bool
	canMoveFixedItems bool

	state       State
	selected    Item
	pointer     PointerState
	intersected Item
	mouseover   Item
	handleOver  bool
	needsUpdate bool

	subscriptions []func()
}

// Compile-time interface compliance check
var _ Controller = &controllerImpl{}

// NewController creates an interaction controller in StateUnselected.
// If scene implements SceneEvents, the controller subscribes to item load and removal.
//
// Parameters:
//   - cam: the camera picking rays are cast from
//   - scene: the source of selectable items
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(cam camera.Camera, scene Scene, options ...ControllerBuilderOption) Controller {
	c := &controllerImpl{
		camera:      cam,
		scene:       scene,
		notes:       NewNotifications(),
		groundPlane: raycast.NewGroundPlane(),
		enabled:     true,
		state:       StateUnselected,
	}

	for _, option := range options {
		option(c)
	}

	if events, ok := scene.(SceneEvents); ok {
		c.subscribe(events.ItemLoaded(), c.ItemLoaded)
		c.subscribe(events.ItemRemoved(), c.ItemRemoved)
	}
	return c
}

func (c *controllerImpl) subscribe(signal *notify.Signal[Item], fn func(Item)) {
	id := signal.Subscribe(fn)
	c.subscriptions = append(c.subscriptions, func() {
		signal.Unsubscribe(id)
	})
}

func (c *controllerImpl) Close() {
	for _, unsubscribe := range c.subscriptions {
		unsubscribe()
	}
	c.subscriptions = nil
}

func (c *controllerImpl) State() State                  { return c.state }
func (c *controllerImpl) Selected() Item                { return c.selected }
func (c *controllerImpl) Hovered() Item                 { return c.mouseover }
func (c *controllerImpl) HandleHovered() bool           { return c.handleOver }
func (c *controllerImpl) Pointer() PointerState         { return c.pointer }
func (c *controllerImpl) Notifications() *Notifications { return c.notes }
func (c *controllerImpl) Enabled() bool                 { return c.enabled }

func (c *controllerImpl) SetEnabled(enabled bool) {
	c.enabled = enabled
}

func (c *controllerImpl) SetViewport(viewport common.Viewport) {
	c.viewport = viewport
}

func (c *controllerImpl) SetCanMoveFixedItems(canMove bool) {
	c.canMoveFixedItems = canMove
}

func (c *controllerImpl) NeedsUpdate() bool {
	n := c.needsUpdate
	c.needsUpdate = false
	return n
}

func (c *controllerImpl) PointerDown(x, y float64) {
	if !c.enabled {
		return
	}
	c.pointer = PointerState{Position: mgl64.Vec2{x, y}, Down: true}
	c.updateIntersections()
	c.dispatch(Input{Trigger: TriggerPress, Hit: c.intersected, HandleHovered: c.handleOver})
}

func (c *controllerImpl) PointerMove(x, y float64) {
	if !c.enabled {
		return
	}
	pos := mgl64.Vec2{x, y}
	if pos != c.pointer.Position {
		c.pointer.Moved = true
	}
	c.pointer.Position = pos
	if !c.pointer.Down {
		c.updateIntersections()
	}
	c.dispatch(Input{Trigger: TriggerMove, Moved: c.pointer.Moved})
}

func (c *controllerImpl) AuxiliaryPress() {
	if !c.enabled {
		return
	}
	c.dispatch(Input{Trigger: TriggerPress})
}

func (c *controllerImpl) PointerUp(x, y float64) {
	if !c.enabled {
		return
	}
	pos := mgl64.Vec2{x, y}
	if pos != c.pointer.Position {
		c.pointer.Moved = true
	}
	c.pointer.Position = pos
	c.pointer.Down = false
	c.updateIntersections()
	c.dispatch(Input{Trigger: TriggerRelease, Hit: c.intersected, HandleHovered: c.handleOver, Moved: c.pointer.Moved})
}

func (c *controllerImpl) Cancel() {
	if !c.pointer.Down {
		return
	}
	c.PointerUp(c.pointer.Position.X(), c.pointer.Position.Y())
}

func (c *controllerImpl) Abort() {
	if !c.pointer.Down {
		return
	}
	c.pointer.Moved = true
	c.Cancel()
}

func (c *controllerImpl) RefreshHover() {
	if !c.enabled || c.pointer.Down {
		return
	}
	if c.state != StateUnselected && c.state != StateSelected {
		return
	}
	c.updateIntersections()
	c.updateMouseover()
}

func (c *controllerImpl) Select(item Item) {
	c.dispatch(Input{Trigger: TriggerSelect, Item: item})
}

func (c *controllerImpl) ItemLoaded(item Item) {
	if item == nil {
		return
	}
	p, ok := item.(Placeable)
	if !ok || p.Placed() {
		return
	}
	ground := item.Position()
	ground[1] = 0
	c.dispatchAt(Input{Trigger: TriggerPlace, Item: item}, c.camera.Project(ground, c.viewport))
	p.SetPlaced()
}

func (c *controllerImpl) ItemRemoved(item Item) {
	if item == nil {
		return
	}
	if c.intersected == item {
		c.intersected = nil
	}
	if c.mouseover == item {
		c.mouseover = nil
		c.setCursor(common.CursorAuto)
	}
	if item == c.selected {
		item.MouseOff()
		c.dispatch(Input{Trigger: TriggerRemove, Item: item})
	}
}

func (c *controllerImpl) Intersections(x, y float64, candidates []raycast.Surface, opts raycast.Options) []raycast.Hit {
	if !c.viewport.Valid() || len(candidates) == 0 {
		return nil
	}
	opts.Pool = c.pool
	return raycast.Intersect(raycast.FromScreen(x, y, c.camera, c.viewport), candidates, opts)
}

func (c *controllerImpl) ItemIntersection(item Item) (raycast.Hit, bool) {
	return c.itemIntersectionAt(item, c.pointer.Position)
}

func (c *controllerImpl) itemIntersectionAt(item Item, at mgl64.Vec2) (raycast.Hit, bool) {
	x, y := at.Elem()
	if custom := item.CustomIntersectionPlanes(); len(custom) > 0 {
		return raycast.First(c.Intersections(x, y, custom, raycast.Options{FilterByNormals: true}))
	}
	return raycast.First(c.Intersections(x, y, []raycast.Surface{c.groundPlane}, raycast.Options{}))
}

func (c *controllerImpl) snapshot() Snapshot {
	return Snapshot{
		State:        c.state,
		Selected:     c.selected,
		Hovering:     c.mouseover != nil,
		CanMoveFixed: c.canMoveFixedItems,
	}
}

// dispatch runs the transition for in and executes its effects in order.
func (c *controllerImpl) dispatch(in Input) {
	c.dispatchAt(in, c.pointer.Position)
}

// dispatchAt is dispatch with item gestures sampled at window point at instead of the pointer.
func (c *controllerImpl) dispatchAt(in Input, at mgl64.Vec2) {
	step := Transition(c.snapshot(), in)
	for _, e := range step.Effects {
		c.apply(e, at)
	}
	c.state = step.Next
	c.selected = step.Selected
}

func (c *controllerImpl) apply(e Effect, at mgl64.Vec2) {
	switch e := e.(type) {
	case SwitchState:
		c.state = e.To
	case SelectItem:
		if c.selected != nil {
			c.selected.SetUnselected()
		}
		c.selected = e.Item
		e.Item.SetSelected()
		c.needsUpdate = true
		c.notes.ItemSelected.Fire(e.Item)
	case DeselectItem:
		if c.selected != nil {
			c.selected.SetUnselected()
		}
		c.selected = nil
		c.needsUpdate = true
		c.notes.ItemUnselected.Fire(notify.Empty{})
	case SetCameraEnabled:
		if c.controls != nil {
			c.controls.SetEnabled(e.Enabled)
		}
	case SetCursor:
		c.setCursor(e.Style)
	case PressItem:
		c.forward(at, Item.ClickPressed)
	case DragItem:
		c.forward(at, Item.ClickDragged)
	case RotateItem:
		c.forward(at, Item.Rotate)
	case ReleaseItem:
		if c.selected != nil {
			c.selected.ClickReleased()
			c.needsUpdate = true
		}
	case SetHUDRotating:
		if c.hud != nil {
			c.hud.SetRotating(e.Rotating)
		}
	case UpdateHover:
		c.updateMouseover()
	case UpdateHUD:
		if c.hud != nil {
			c.hud.Update()
		}
		c.needsUpdate = true
	case CheckWallsAndFloors:
		c.checkWallsAndFloors()
	}
}

// forward sends the point under window point at on the selected item's drag surfaces to fn.
func (c *controllerImpl) forward(at mgl64.Vec2, fn func(Item, mgl64.Vec3)) {
	if c.selected == nil {
		return
	}
	hit, ok := c.itemIntersectionAt(c.selected, at)
	if !ok {
		return
	}
	fn(c.selected, hit.Point)
	c.needsUpdate = true
}

func (c *controllerImpl) setCursor(style common.CursorStyle) {
	if c.cursor != nil {
		c.cursor.SetCursorStyle(style)
	}
}

// updateIntersections refreshes the handle and item under the pointer.
// The HUD rotate handle wins over items regardless of distance.
func (c *controllerImpl) updateIntersections() {
	x, y := c.pointer.Position.Elem()

	if c.hud != nil {
		if handle := c.hud.Handle(); handle != nil {
			hits := c.Intersections(x, y, []raycast.Surface{handle}, raycast.Options{Recursive: true})
			if len(hits) > 0 {
				c.handleOver = true
				c.hud.SetMouseover(true)
				c.intersected = nil
				return
			}
		}
		c.hud.SetMouseover(false)
	}
	c.handleOver = false

	c.intersected = nil
	if c.scene == nil {
		return
	}
	items := c.scene.Items()
	surfaces := make([]raycast.Surface, 0, len(items))
	owners := make([]Item, 0, len(items))
	for _, item := range items {
		if s := item.Surface(); s != nil {
			surfaces = append(surfaces, s)
			owners = append(owners, item)
		}
	}
	if hit, ok := raycast.First(c.Intersections(x, y, surfaces, raycast.Options{OnlyVisible: true, Recursive: true})); ok {
		c.intersected = owners[hit.Index]
	}
}

// updateMouseover moves hover from the previous item to the one under the pointer.
func (c *controllerImpl) updateMouseover() {
	if c.intersected != nil {
		if c.mouseover != c.intersected {
			if c.mouseover != nil {
				c.mouseover.MouseOff()
			}
			c.mouseover = c.intersected
			c.mouseover.MouseOver()
			c.needsUpdate = true
		}
		c.setCursor(common.CursorPointer)
		return
	}
	if c.mouseover != nil {
		c.mouseover.MouseOff()
		c.mouseover = nil
		c.setCursor(common.CursorAuto)
		c.needsUpdate = true
	}
}

// checkWallsAndFloors resolves a click on empty space. Exactly one notification fires.
func (c *controllerImpl) checkWallsAndFloors() {
	x, y := c.pointer.Position.Elem()
	if c.floorplan != nil {
		walls := c.floorplan.WallEdgePlanes()
		surfaces := make([]raycast.Surface, len(walls))
		for i, w := range walls {
			surfaces[i] = w.Surface
		}
		if hit, ok := raycast.First(c.Intersections(x, y, surfaces, raycast.Options{FilterByNormals: true})); ok {
			c.notes.WallClicked.Fire(walls[hit.Index].Edge)
			return
		}

		floors := c.floorplan.FloorPlanes()
		surfaces = make([]raycast.Surface, len(floors))
		for i, f := range floors {
			surfaces[i] = f.Surface
		}
		if hit, ok := raycast.First(c.Intersections(x, y, surfaces, raycast.Options{})); ok {
			c.notes.FloorClicked.Fire(floors[hit.Index].Room)
			return
		}
	}
	c.notes.NothingClicked.Fire(notify.Empty{})
}
