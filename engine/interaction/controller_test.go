package interaction

import (
	"math/rand"
	"testing"

	"github.com/Carmen-Shannon/oxy-planner/common"
	"github.com/Carmen-Shannon/oxy-planner/engine/raycast"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
)

var (
	sofaTop    = mgl64.Vec3{0, 100, 0}
	floorPoint = mgl64.Vec3{200, 0, -200}
	wallPoint  = mgl64.Vec3{0, 20, -600}
)

func vecAlmostEqual(a, b mgl64.Vec3, eps float64) bool {
	return a.ApproxEqualThreshold(b, eps)
}

func TestController_DragScenario(t *testing.T) {
	sofa := newFakeItem("sofa", mgl64.Vec3{0, 50, 0}, false)
	h := newHarness(t, newFakeScene(sofa))

	h.down(sofaTop)
	if got := h.ctrl.State(); got != StateDragging {
		t.Fatalf("State() after press = %v, want DRAGGING", got)
	}
	if h.controls.enabled {
		t.Error("camera controls enabled while dragging")
	}
	if h.cursor.style != common.CursorMove {
		t.Errorf("cursor = %v, want move", h.cursor.style)
	}
	if len(sofa.pressed) != 1 || !vecAlmostEqual(sofa.pressed[0], mgl64.Vec3{0, 0, -125}, 1e-6) {
		t.Errorf("ClickPressed points = %v, want [(0,0,-125)]", sofa.pressed)
	}

	h.move(floorPoint)
	if len(sofa.dragged) != 1 || !vecAlmostEqual(sofa.dragged[0], floorPoint, 1e-6) {
		t.Errorf("ClickDragged points = %v, want [%v]", sofa.dragged, floorPoint)
	}
	if h.hud.updates == 0 {
		t.Error("HUD was not updated during the drag")
	}

	h.up(floorPoint)
	if got := h.ctrl.State(); got != StateSelected {
		t.Errorf("State() after release = %v, want SELECTED", got)
	}
	if sofa.released != 1 {
		t.Errorf("ClickReleased calls = %d, want 1", sofa.released)
	}
	if !h.controls.enabled {
		t.Error("camera controls still disabled after the drag")
	}
	if diff := cmp.Diff([]string{"selected:sofa"}, h.takeEvents()); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestController_FloorClickScenario(t *testing.T) {
	h := newHarness(t, newFakeScene())

	h.click(floorPoint)

	if got := h.ctrl.State(); got != StateUnselected {
		t.Errorf("State() = %v, want UNSELECTED", got)
	}
	if diff := cmp.Diff([]string{"floor:living"}, h.takeEvents()); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestController_ClickResolution(t *testing.T) {
	tests := []struct {
		name      string
		floorplan *fakeFloorplan
		at        mgl64.Vec3
		want      []string
	}{
		{"wall before floor", newFakeFloorplan(), wallPoint, []string{"wall:north"}},
		{"floor", newFakeFloorplan(), floorPoint, []string{"floor:living"}},
		{"nothing", &fakeFloorplan{}, floorPoint, []string{"nothing"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, newFakeScene(), WithFloorplan(tt.floorplan))
			h.click(tt.at)
			if diff := cmp.Diff(tt.want, h.takeEvents()); diff != "" {
				t.Errorf("notifications mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestController_BackFacingWallIsIgnored(t *testing.T) {
	fp := newFakeFloorplan()
	// Flip the north wall so it faces away from the camera.
	north := fp.walls[1].Surface.(*raycast.Quad)
	north.HalfU = north.HalfU.Mul(-1)

	h := newHarness(t, newFakeScene(), WithFloorplan(fp))
	h.click(wallPoint)

	if diff := cmp.Diff([]string{"nothing"}, h.takeEvents()); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestController_ClickNotificationOnlyWithoutMove(t *testing.T) {
	tests := []struct {
		name  string
		moves []mgl64.Vec3
		want  int
	}{
		{"no move", nil, 1},
		{"moved away and back", []mgl64.Vec3{{220, 0, -200}, floorPoint}, 0},
		{"moved", []mgl64.Vec3{{220, 0, -200}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, newFakeScene())
			h.down(floorPoint)
			for _, m := range tt.moves {
				h.move(m)
			}
			h.up(floorPoint)
			if got := len(h.takeEvents()); got != tt.want {
				t.Errorf("click notifications = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestController_SelectedClickOnNothingDeselects(t *testing.T) {
	sofa := newFakeItem("sofa", mgl64.Vec3{0, 50, 0}, true)
	h := newHarness(t, newFakeScene(sofa))

	h.click(sofaTop)
	if got := h.ctrl.State(); got != StateSelected {
		t.Fatalf("State() = %v, want SELECTED (fixed item)", got)
	}
	if !sofa.selected {
		t.Error("item was not told it is selected")
	}

	h.click(floorPoint)
	if got := h.ctrl.State(); got != StateUnselected {
		t.Errorf("State() = %v, want UNSELECTED", got)
	}
	if sofa.selected {
		t.Error("item still believes it is selected")
	}
	if diff := cmp.Diff([]string{"selected:sofa", "unselected", "floor:living"}, h.takeEvents()); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestController_HandleHasPriorityOverItem(t *testing.T) {
	center := mgl64.Vec3{0, 50, 0}
	sofa := newFakeItem("sofa", center, false)
	h := newHarness(t, newFakeScene(sofa))

	// Select the sofa, then show a handle buried inside it: the ray reaches the sofa first.
	h.click(sofaTop)
	h.hud.handle = &raycast.Box{Center: center, HalfSize: mgl64.Vec3{10, 10, 10}}

	h.move(center)
	if !h.ctrl.HandleHovered() {
		t.Fatal("HandleHovered() = false, want true")
	}
	if h.ctrl.Hovered() != nil {
		t.Errorf("Hovered() = %v, want nil while the handle is hovered", h.ctrl.Hovered())
	}
	if !h.hud.mouseover {
		t.Error("HUD mouseover not set")
	}

	h.down(center)
	if got := h.ctrl.State(); got != StateRotating {
		t.Fatalf("State() = %v, want ROTATING", got)
	}
	if h.controls.enabled || !h.hud.rotating {
		t.Errorf("controls enabled = %v, hud rotating = %v; want false, true", h.controls.enabled, h.hud.rotating)
	}

	h.up(center)
	if got := h.ctrl.State(); got != StateRotatingFree {
		t.Fatalf("State() = %v, want ROTATING_FREE", got)
	}

	h.move(floorPoint)
	if len(sofa.rotated) != 1 || !vecAlmostEqual(sofa.rotated[0], floorPoint, 1e-6) {
		t.Errorf("Rotate points = %v, want [%v]", sofa.rotated, floorPoint)
	}

	h.down(floorPoint)
	if got := h.ctrl.State(); got != StateSelected {
		t.Errorf("State() = %v, want SELECTED", got)
	}
	if !h.controls.enabled || h.hud.rotating {
		t.Errorf("controls enabled = %v, hud rotating = %v; want true, false", h.controls.enabled, h.hud.rotating)
	}
}

func TestController_RotateDragEndsInSelected(t *testing.T) {
	center := mgl64.Vec3{0, 50, 0}
	sofa := newFakeItem("sofa", center, true)
	h := newHarness(t, newFakeScene(sofa))
	h.click(sofaTop)
	h.hud.handle = &raycast.Box{Center: center, HalfSize: mgl64.Vec3{10, 10, 10}}

	h.move(center)
	h.down(center)
	h.move(floorPoint)
	h.up(floorPoint)

	if got := h.ctrl.State(); got != StateSelected {
		t.Errorf("State() = %v, want SELECTED", got)
	}
	if len(sofa.rotated) != 1 {
		t.Errorf("Rotate calls = %d, want 1", len(sofa.rotated))
	}
}

func TestController_Hover(t *testing.T) {
	sofa := newFakeItem("sofa", mgl64.Vec3{0, 50, 0}, false)
	hidden := newFakeItem("ghost", mgl64.Vec3{200, 50, -200}, false)
	hidden.box.Hidden = true
	h := newHarness(t, newFakeScene(sofa, hidden))

	h.move(sofaTop)
	if h.ctrl.Hovered() != Item(sofa) || !sofa.hovered {
		t.Errorf("Hovered() = %v, want sofa", h.ctrl.Hovered())
	}
	if h.cursor.style != common.CursorPointer {
		t.Errorf("cursor = %v, want pointer", h.cursor.style)
	}

	h.move(mgl64.Vec3{200, 100, -200})
	if h.ctrl.Hovered() != nil || sofa.hovered || hidden.hovered {
		t.Errorf("Hovered() = %v, want nil (hidden items are not pickable)", h.ctrl.Hovered())
	}
	if h.cursor.style != common.CursorAuto {
		t.Errorf("cursor = %v, want auto", h.cursor.style)
	}
}

func TestController_RefreshHoverFollowsCamera(t *testing.T) {
	sofa := newFakeItem("sofa", mgl64.Vec3{0, 50, 0}, false)
	h := newHarness(t, newFakeScene(sofa))

	h.move(floorPoint)
	if h.ctrl.Hovered() != nil {
		t.Fatal("Hovered() should start empty")
	}

	// Slide the camera so the sofa ends up under the stationary pointer.
	shift := floorPoint.Sub(sofaTop)
	h.cam.SetPosition(h.cam.Position().Sub(shift))
	h.cam.LookAt(h.cam.Target().Sub(shift))
	h.ctrl.RefreshHover()

	if h.ctrl.Hovered() != Item(sofa) {
		t.Errorf("Hovered() = %v, want sofa after camera moved", h.ctrl.Hovered())
	}
}

func TestController_ItemRemovedWhileDragging(t *testing.T) {
	sofa := newFakeItem("sofa", mgl64.Vec3{0, 50, 0}, false)
	scene := newFakeScene(sofa)
	h := newHarness(t, scene)

	h.down(sofaTop)
	h.takeEvents()
	scene.remove(sofa)

	if got := h.ctrl.State(); got != StateUnselected {
		t.Errorf("State() = %v, want UNSELECTED", got)
	}
	if h.ctrl.Selected() != nil || h.ctrl.Hovered() != nil {
		t.Errorf("stale references: selected %v hovered %v", h.ctrl.Selected(), h.ctrl.Hovered())
	}
	if !h.controls.enabled {
		t.Error("camera controls still disabled")
	}
	if diff := cmp.Diff([]string{"unselected"}, h.takeEvents()); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}

	// The dangling release must not reach the removed item.
	h.up(sofaTop)
	if sofa.released != 0 {
		t.Errorf("ClickReleased calls on removed item = %d, want 0", sofa.released)
	}
}

func TestController_ItemLoadedStartsPlacement(t *testing.T) {
	scene := newFakeScene()
	h := newHarness(t, scene)

	lamp := &placeableItem{fakeItem: newFakeItem("lamp", mgl64.Vec3{100, 50, 100}, true)}
	scene.add(lamp)

	if got := h.ctrl.State(); got != StateDragging {
		t.Fatalf("State() = %v, want DRAGGING", got)
	}
	if !lamp.placed {
		t.Error("item not marked placed")
	}
	if len(lamp.pressed) != 1 || !vecAlmostEqual(lamp.pressed[0], mgl64.Vec3{100, 0, 100}, 1e-6) {
		t.Errorf("ClickPressed points = %v, want [(100,0,100)]", lamp.pressed)
	}

	// Following the pointer without a button, then clicking, drops it.
	h.move(floorPoint)
	h.click(floorPoint)
	if got := h.ctrl.State(); got != StateSelected {
		t.Errorf("State() = %v, want SELECTED", got)
	}
	if lamp.released != 1 {
		t.Errorf("ClickReleased calls = %d, want 1", lamp.released)
	}

	// Loading it again does nothing.
	scene.loaded.Fire(lamp)
	if got := h.ctrl.State(); got != StateSelected {
		t.Errorf("State() after reload = %v, want SELECTED", got)
	}
}

func TestController_ItemLoadedKeepsPointerPosition(t *testing.T) {
	scene := newFakeScene()
	h := newHarness(t, scene)

	h.move(floorPoint)
	x, y := h.screen(floorPoint)

	lamp := &placeableItem{fakeItem: newFakeItem("lamp", mgl64.Vec3{100, 50, 100}, true)}
	scene.add(lamp)

	if len(lamp.pressed) != 1 || !vecAlmostEqual(lamp.pressed[0], mgl64.Vec3{100, 0, 100}, 1e-6) {
		t.Errorf("ClickPressed points = %v, want [(100,0,100)]", lamp.pressed)
	}
	if diff := cmp.Diff(mgl64.Vec2{x, y}, h.ctrl.Pointer().Position); diff != "" {
		t.Errorf("Pointer().Position mismatch (-want +got):\n%s", diff)
	}
}

func TestController_AuxiliaryPress(t *testing.T) {
	center := mgl64.Vec3{0, 50, 0}
	sofa := newFakeItem("sofa", center, true)
	h := newHarness(t, newFakeScene(sofa))

	h.click(sofaTop)
	h.takeEvents()

	h.ctrl.AuxiliaryPress()
	if got := h.ctrl.State(); got != StateSelected || h.ctrl.Selected() != Item(sofa) {
		t.Fatalf("State() = %v with %v, want SELECTED with sofa", got, h.ctrl.Selected())
	}

	h.hud.handle = &raycast.Box{Center: center, HalfSize: mgl64.Vec3{10, 10, 10}}
	h.move(center)
	h.click(center)
	if got := h.ctrl.State(); got != StateRotatingFree {
		t.Fatalf("State() = %v, want ROTATING_FREE", got)
	}

	h.ctrl.AuxiliaryPress()
	if got := h.ctrl.State(); got != StateSelected {
		t.Errorf("State() = %v, want SELECTED", got)
	}
	if !h.controls.enabled || h.hud.rotating {
		t.Errorf("controls enabled = %v, hud rotating = %v; want true, false", h.controls.enabled, h.hud.rotating)
	}
	if len(h.takeEvents()) != 0 {
		t.Error("leaving the free spin changed the selection")
	}
}

func TestController_CustomIntersectionPlanes(t *testing.T) {
	fp := newFakeFloorplan()
	art := newFakeItem("painting", mgl64.Vec3{0, 150, -560}, false)
	art.custom = []raycast.Surface{fp.walls[1].Surface}
	h := newHarness(t, newFakeScene(art), WithFloorplan(fp))

	h.down(mgl64.Vec3{0, 150, -510})
	if got := h.ctrl.State(); got != StateDragging {
		t.Fatalf("State() = %v, want DRAGGING", got)
	}
	target := mgl64.Vec3{100, 60, -600}
	h.move(target)
	if len(art.dragged) != 1 || !vecAlmostEqual(art.dragged[0], target, 1e-6) {
		t.Errorf("ClickDragged points = %v, want [%v]", art.dragged, target)
	}
}

func TestController_CancelActsAsRelease(t *testing.T) {
	sofa := newFakeItem("sofa", mgl64.Vec3{0, 50, 0}, false)
	h := newHarness(t, newFakeScene(sofa))

	h.down(sofaTop)
	h.ctrl.Cancel()

	if got := h.ctrl.State(); got != StateSelected {
		t.Errorf("State() = %v, want SELECTED", got)
	}
	if sofa.released != 1 {
		t.Errorf("ClickReleased calls = %d, want 1", sofa.released)
	}
	if h.ctrl.Pointer().Down {
		t.Error("pointer still down after cancel")
	}
}

func TestController_AbortSuppressesClick(t *testing.T) {
	h := newHarness(t, newFakeScene())
	h.down(floorPoint)
	h.ctrl.Abort()

	if events := h.takeEvents(); len(events) != 0 {
		t.Errorf("notifications = %v, want none", events)
	}
}

func TestController_Disabled(t *testing.T) {
	sofa := newFakeItem("sofa", mgl64.Vec3{0, 50, 0}, false)
	h := newHarness(t, newFakeScene(sofa))
	h.ctrl.SetEnabled(false)

	h.click(sofaTop)

	if got := h.ctrl.State(); got != StateUnselected {
		t.Errorf("State() = %v, want UNSELECTED", got)
	}
	if events := h.takeEvents(); len(events) != 0 {
		t.Errorf("notifications = %v, want none", events)
	}
}

func TestController_SelectionInvariantUnderRandomInput(t *testing.T) {
	sofa := newFakeItem("sofa", mgl64.Vec3{0, 50, 0}, false)
	table := newFakeItem("table", mgl64.Vec3{300, 50, 0}, true)
	scene := newFakeScene(sofa, table)
	h := newHarness(t, scene)

	targets := []mgl64.Vec3{sofaTop, {300, 100, 0}, floorPoint, wallPoint, {0, 50, 0}, {-250, 0, 100}}
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 2000; i++ {
		p := targets[rng.Intn(len(targets))]
		switch rng.Intn(10) {
		case 0, 1:
			h.down(p)
		case 2, 3, 4:
			h.move(p)
		case 5, 6:
			h.up(p)
		case 7:
			if rng.Intn(2) == 0 {
				h.hud.handle = &raycast.Box{Center: mgl64.Vec3{0, 50, 0}, HalfSize: mgl64.Vec3{10, 10, 10}}
			} else {
				h.hud.handle = nil
			}
		case 8:
			h.ctrl.Cancel()
		case 9:
			if rng.Intn(20) == 0 {
				h.ctrl.Select(nil)
			} else {
				h.ctrl.RefreshHover()
			}
		}
		h.checkInvariant()
		if h.ctrl.State().CameraLocked() == h.controls.enabled {
			t.Fatalf("step %d: state %v with camera enabled = %v", i, h.ctrl.State(), h.controls.enabled)
		}
	}
}
