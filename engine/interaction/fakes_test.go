package interaction

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-planner/common"
	"github.com/Carmen-Shannon/oxy-planner/engine/camera"
	"github.com/Carmen-Shannon/oxy-planner/engine/notify"
	"github.com/Carmen-Shannon/oxy-planner/engine/raycast"
	"github.com/go-gl/mathgl/mgl64"
)

type fakeItem struct {
	name   string
	pos    mgl64.Vec3
	fixed  bool
	box    *raycast.Box
	custom []raycast.Surface

	selected bool
	hovered  bool
	pressed  []mgl64.Vec3
	dragged  []mgl64.Vec3
	rotated  []mgl64.Vec3
	released int
}

func newFakeItem(name string, pos mgl64.Vec3, fixed bool) *fakeItem {
	return &fakeItem{
		name:  name,
		pos:   pos,
		fixed: fixed,
		box:   &raycast.Box{Center: pos, HalfSize: mgl64.Vec3{50, 50, 50}},
	}
}

func (f *fakeItem) Position() mgl64.Vec3                        { return f.pos }
func (f *fakeItem) Fixed() bool                                 { return f.fixed }
func (f *fakeItem) Surface() raycast.Surface                    { return f.box }
func (f *fakeItem) CustomIntersectionPlanes() []raycast.Surface { return f.custom }
func (f *fakeItem) ClickPressed(p mgl64.Vec3)                   { f.pressed = append(f.pressed, p) }
func (f *fakeItem) ClickDragged(p mgl64.Vec3)                   { f.dragged = append(f.dragged, p) }
func (f *fakeItem) ClickReleased()                              { f.released++ }
func (f *fakeItem) Rotate(p mgl64.Vec3)                         { f.rotated = append(f.rotated, p) }
func (f *fakeItem) SetSelected()                                { f.selected = true }
func (f *fakeItem) SetUnselected()                              { f.selected = false }
func (f *fakeItem) MouseOver()                                  { f.hovered = true }
func (f *fakeItem) MouseOff()                                   { f.hovered = false }

type placeableItem struct {
	*fakeItem
	placed bool
}

func (p *placeableItem) Placed() bool { return p.placed }
func (p *placeableItem) SetPlaced()   { p.placed = true }

type fakeScene struct {
	items   []Item
	loaded  *notify.Signal[Item]
	removed *notify.Signal[Item]
}

func newFakeScene(items ...Item) *fakeScene {
	return &fakeScene{
		items:   items,
		loaded:  notify.NewSignal[Item]("loaded"),
		removed: notify.NewSignal[Item]("removed"),
	}
}

func (s *fakeScene) Items() []Item                     { return s.items }
func (s *fakeScene) ItemLoaded() *notify.Signal[Item]  { return s.loaded }
func (s *fakeScene) ItemRemoved() *notify.Signal[Item] { return s.removed }

func (s *fakeScene) add(item Item) {
	s.items = append(s.items, item)
	s.loaded.Fire(item)
}

func (s *fakeScene) remove(item Item) {
	for i, it := range s.items {
		if it == item {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.removed.Fire(item)
}

type fakeEdge string

func (e fakeEdge) ID() string { return string(e) }

type fakeRoom string

func (r fakeRoom) ID() string { return string(r) }

type fakeFloorplan struct {
	walls  []WallPlane
	floors []FloorPlane
}

// newFakeFloorplan builds a 1200x1200 room centered at the origin with a north and an east wall.
func newFakeFloorplan() *fakeFloorplan {
	return &fakeFloorplan{
		walls: []WallPlane{
			{Surface: &raycast.Quad{Center: mgl64.Vec3{600, 125, 0}, HalfU: mgl64.Vec3{0, 0, 600}, HalfV: mgl64.Vec3{0, 125, 0}}, Edge: fakeEdge("east")},
			{Surface: &raycast.Quad{Center: mgl64.Vec3{0, 125, -600}, HalfU: mgl64.Vec3{600, 0, 0}, HalfV: mgl64.Vec3{0, 125, 0}}, Edge: fakeEdge("north")},
		},
		floors: []FloorPlane{
			{Surface: &raycast.Quad{HalfU: mgl64.Vec3{0, 0, 600}, HalfV: mgl64.Vec3{600, 0, 0}}, Room: fakeRoom("living")},
		},
	}
}

func (f *fakeFloorplan) WallEdgePlanes() []WallPlane { return f.walls }
func (f *fakeFloorplan) FloorPlanes() []FloorPlane   { return f.floors }
func (f *fakeFloorplan) Center() mgl64.Vec3          { return mgl64.Vec3{} }
func (f *fakeFloorplan) Size() mgl64.Vec3            { return mgl64.Vec3{1200, 250, 1200} }

type fakeHUD struct {
	handle    raycast.Surface
	mouseover bool
	rotating  bool
	updates   int
}

func (h *fakeHUD) Handle() raycast.Surface   { return h.handle }
func (h *fakeHUD) SetMouseover(over bool)    { h.mouseover = over }
func (h *fakeHUD) SetRotating(rotating bool) { h.rotating = rotating }
func (h *fakeHUD) Update()                   { h.updates++ }

type fakeControls struct {
	enabled bool
}

func (c *fakeControls) Enabled() bool           { return c.enabled }
func (c *fakeControls) SetEnabled(enabled bool) { c.enabled = enabled }

type fakeCursor struct {
	style common.CursorStyle
}

func (c *fakeCursor) SetCursorStyle(style common.CursorStyle) { c.style = style }

var testViewport = common.Viewport{Width: 800, Height: 600}

type harness struct {
	t         *testing.T
	cam       camera.Camera
	scene     *fakeScene
	floorplan *fakeFloorplan
	hud       *fakeHUD
	controls  *fakeControls
	cursor    *fakeCursor
	ctrl      Controller
	events    []string
}

func newHarness(t *testing.T, scene *fakeScene, options ...ControllerBuilderOption) *harness {
	t.Helper()
	h := &harness{
		t: t,
		cam: camera.NewPerspectiveCamera(camera.DefaultFov,
			camera.WithAspect(testViewport.Width/testViewport.Height),
			camera.WithPosition(mgl64.Vec3{0, 500, 500}),
		),
		scene:     scene,
		floorplan: newFakeFloorplan(),
		hud:       &fakeHUD{},
		controls:  &fakeControls{enabled: true},
		cursor:    &fakeCursor{},
	}
	options = append([]ControllerBuilderOption{
		WithFloorplan(h.floorplan),
		WithHUD(h.hud),
		WithCameraControls(h.controls),
		WithCursorSetter(h.cursor),
		WithViewport(testViewport),
	}, options...)
	h.ctrl = NewController(h.cam, scene, options...)

	notes := h.ctrl.Notifications()
	notes.ItemSelected.Subscribe(func(item Item) { h.events = append(h.events, "selected:"+nameOf(item)) })
	notes.ItemUnselected.Subscribe(func(notify.Empty) { h.events = append(h.events, "unselected") })
	notes.WallClicked.Subscribe(func(e WallEdge) { h.events = append(h.events, "wall:"+e.ID()) })
	notes.FloorClicked.Subscribe(func(r Room) { h.events = append(h.events, "floor:"+r.ID()) })
	notes.NothingClicked.Subscribe(func(notify.Empty) { h.events = append(h.events, "nothing") })
	return h
}

func nameOf(item Item) string {
	switch it := item.(type) {
	case *fakeItem:
		return it.name
	case *placeableItem:
		return it.name
	default:
		return "?"
	}
}

func (h *harness) screen(p mgl64.Vec3) (float64, float64) {
	s := h.cam.Project(p, testViewport)
	return s.X(), s.Y()
}

func (h *harness) down(p mgl64.Vec3) {
	x, y := h.screen(p)
	h.ctrl.PointerDown(x, y)
}

func (h *harness) move(p mgl64.Vec3) {
	x, y := h.screen(p)
	h.ctrl.PointerMove(x, y)
}

func (h *harness) up(p mgl64.Vec3) {
	x, y := h.screen(p)
	h.ctrl.PointerUp(x, y)
}

func (h *harness) click(p mgl64.Vec3) {
	h.down(p)
	h.up(p)
}

func (h *harness) takeEvents() []string {
	e := h.events
	h.events = nil
	return e
}

func (h *harness) checkInvariant() {
	h.t.Helper()
	if (h.ctrl.State() == StateUnselected) != (h.ctrl.Selected() == nil) {
		h.t.Fatalf("invariant broken: state %v with selected %v", h.ctrl.State(), h.ctrl.Selected())
	}
}
