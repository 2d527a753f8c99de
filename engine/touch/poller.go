package touch

import (
	"github.com/Carmen-Shannon/oxy-planner/common"
	"github.com/Carmen-Shannon/oxy-planner/engine/input"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyCodes maps the ebiten keys the engine reacts to onto common key codes.
var keyCodes = map[ebiten.Key]int{
	ebiten.KeyArrowUp:        common.KeyUp,
	ebiten.KeyArrowDown:      common.KeyDown,
	ebiten.KeyArrowLeft:      common.KeyLeft,
	ebiten.KeyArrowRight:     common.KeyRight,
	ebiten.KeySpace:          common.KeySpace,
	ebiten.KeyEscape:         common.KeyEsc,
	ebiten.KeyMinus:          common.KeyMinus,
	ebiten.KeyEqual:          common.KeyEqual,
	ebiten.KeyF:              common.KeyF,
	ebiten.KeyR:              common.KeyR,
	ebiten.KeyT:              common.KeyT,
	ebiten.KeyBackspace:      common.KeyBackspace,
	ebiten.KeyDelete:         common.KeyDelete,
	ebiten.KeyNumpadSubtract: common.KeyKPSubtract,
	ebiten.KeyNumpadAdd:      common.KeyKPAdd,
}

// buttons is indexed by common.MouseButton.
var buttons = [3]ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonMiddle,
	ebiten.MouseButtonRight,
}

// Poller reads ebiten's polled input once per game update and pushes the changes as input events.
// All methods must be called from ebiten's game goroutine.
type Poller struct {
	sink    input.Sink
	tracker *input.Tracker

	width, height int
	touchIDs      []ebiten.TouchID
	keys          []ebiten.Key
	cursor        ebiten.CursorShapeType
}

var _ common.CursorSetter = &Poller{}

// NewPoller creates a poller that pushes into sink.
func NewPoller(sink input.Sink) *Poller {
	return &Poller{
		sink:    sink,
		tracker: input.NewTracker(),
		cursor:  ebiten.CursorShapeDefault,
	}
}

// Layout records the logical screen size. Call it from the game's Layout method.
func (p *Poller) Layout(width, height int) {
	p.width, p.height = width, height
}

// Poll snapshots the current input state and pushes every change since the previous call.
func (p *Poller) Poll() {
	for _, e := range p.tracker.Diff(p.snapshot()) {
		p.sink.Push(e)
	}
}

func (p *Poller) snapshot() input.Snapshot {
	cx, cy := ebiten.CursorPosition()
	s := input.Snapshot{
		Width:   p.width,
		Height:  p.height,
		Focused: ebiten.IsFocused(),
		Cursor:  mgl64.Vec2{float64(cx), float64(cy)},
	}
	s.Inside = s.Focused && cx >= 0 && cy >= 0 && cx < p.width && cy < p.height

	for i, b := range buttons {
		s.Buttons[i] = ebiten.IsMouseButtonPressed(b)
	}
	_, s.Wheel = ebiten.Wheel()

	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		if code, ok := keyCodes[k]; ok {
			s.Keys = append(s.Keys, code)
		}
	}
	for _, k := range []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyArrowDown, ebiten.KeyArrowLeft, ebiten.KeyArrowRight} {
		if d := inpututil.KeyPressDuration(k); d > repeatDelay && (d-repeatDelay)%repeatInterval == 0 {
			s.Keys = append(s.Keys, keyCodes[k])
		}
	}

	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	for _, id := range p.touchIDs {
		x, y := ebiten.TouchPosition(id)
		s.Touches = append(s.Touches, input.Touch{ID: int(id), Position: mgl64.Vec2{float64(x), float64(y)}})
	}
	return s
}

// Key repeat timing in ticks, matching a typical desktop repeat at 60 TPS.
const (
	repeatDelay    = 30
	repeatInterval = 3
)

// SetCursorStyle maps the engine's cursor styles onto ebiten cursor shapes.
func (p *Poller) SetCursorStyle(style common.CursorStyle) {
	shape := ebiten.CursorShapeDefault
	switch style {
	case common.CursorPointer:
		shape = ebiten.CursorShapePointer
	case common.CursorMove:
		shape = ebiten.CursorShapeMove
	}
	if shape != p.cursor {
		ebiten.SetCursorShape(shape)
		p.cursor = shape
	}
}
