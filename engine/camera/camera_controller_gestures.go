package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-planner/common"
	"github.com/go-gl/mathgl/mgl64"
)

type gestureState int

const (
	gestureNone gestureState = iota
	gestureRotate
	gestureDolly
	gesturePan
	gestureTouchRotate
	gestureTouchDolly
	gestureTouchPan
)

// gesture tracks the in-progress pointer or touch gesture.
type gesture struct {
	state      gestureState
	touchCount int

	rotateStart mgl64.Vec2
	panStart    mgl64.Vec2
	dollyStart  float64
}

func (oc *orbitControlsImpl) Idle() bool {
	return oc.gesture.state == gestureNone
}

func (oc *orbitControlsImpl) PointerDown(button common.MouseButton, x, y float64) {
	if !oc.enabled {
		return
	}
	switch button {
	case common.ButtonPrimary:
		if oc.noRotate {
			return
		}
		oc.gesture.state = gestureRotate
		oc.gesture.rotateStart = mgl64.Vec2{x, y}
	case common.ButtonMiddle:
		if oc.noZoom {
			return
		}
		oc.gesture.state = gestureDolly
		oc.gesture.dollyStart = y
	case common.ButtonSecondary:
		if oc.noPan {
			return
		}
		oc.gesture.state = gesturePan
		oc.gesture.panStart = mgl64.Vec2{x, y}
	}
}

func (oc *orbitControlsImpl) PointerMove(x, y float64) {
	if !oc.enabled {
		return
	}
	switch oc.gesture.state {
	case gestureRotate:
		oc.rotateTo(mgl64.Vec2{x, y})
	case gestureDolly:
		dy := y - oc.gesture.dollyStart
		oc.gesture.dollyStart = y
		if dy > 0 {
			oc.DollyIn(oc.ZoomScale())
		} else if dy < 0 {
			oc.DollyOut(oc.ZoomScale())
		}
	case gesturePan:
		oc.panTo(mgl64.Vec2{x, y})
	}
}

func (oc *orbitControlsImpl) PointerUp() {
	oc.gesture = gesture{}
}

func (oc *orbitControlsImpl) Wheel(delta float64) {
	if !oc.enabled || oc.noZoom || delta == 0 {
		return
	}
	if delta > 0 {
		oc.DollyOut(oc.ZoomScale())
	} else {
		oc.DollyIn(oc.ZoomScale())
	}
}

func (oc *orbitControlsImpl) KeyDown(key int) {
	if !oc.enabled || oc.noKeys || oc.noPan {
		return
	}
	switch key {
	case common.KeyUp:
		oc.Pan(0, oc.keyPanSpeed)
	case common.KeyDown:
		oc.Pan(0, -oc.keyPanSpeed)
	case common.KeyLeft:
		oc.Pan(oc.keyPanSpeed, 0)
	case common.KeyRight:
		oc.Pan(-oc.keyPanSpeed, 0)
	}
}

func (oc *orbitControlsImpl) TouchStart(points []mgl64.Vec2) {
	if !oc.enabled {
		return
	}
	oc.beginTouch(points)
}

func (oc *orbitControlsImpl) TouchMove(points []mgl64.Vec2) {
	if !oc.enabled {
		return
	}
	if len(points) != oc.gesture.touchCount {
		oc.beginTouch(points)
		return
	}
	switch oc.gesture.state {
	case gestureTouchRotate:
		oc.rotateTo(points[0])
	case gestureTouchDolly:
		distance := points[0].Sub(points[1]).Len()
		delta := distance - oc.gesture.dollyStart
		oc.gesture.dollyStart = distance
		if delta > 0 {
			oc.DollyOut(oc.ZoomScale())
		} else if delta < 0 {
			oc.DollyIn(oc.ZoomScale())
		}
	case gestureTouchPan:
		oc.panTo(points[0])
	}
}

func (oc *orbitControlsImpl) TouchEnd(remaining []mgl64.Vec2) {
	if len(remaining) == 0 || !oc.enabled {
		oc.gesture = gesture{}
		return
	}
	oc.beginTouch(remaining)
}

// beginTouch resets the gesture for the given finger count.
func (oc *orbitControlsImpl) beginTouch(points []mgl64.Vec2) {
	oc.gesture = gesture{touchCount: len(points)}
	switch len(points) {
	case 1:
		if oc.noRotate {
			return
		}
		oc.gesture.state = gestureTouchRotate
		oc.gesture.rotateStart = points[0]
	case 2:
		if oc.noZoom {
			return
		}
		oc.gesture.state = gestureTouchDolly
		oc.gesture.dollyStart = points[0].Sub(points[1]).Len()
	case 3:
		if oc.noPan {
			return
		}
		oc.gesture.state = gestureTouchPan
		oc.gesture.panStart = points[0]
	}
}

func (oc *orbitControlsImpl) rotateTo(p mgl64.Vec2) {
	delta := p.Sub(oc.gesture.rotateStart)
	oc.gesture.rotateStart = p
	if !oc.viewport.Valid() {
		return
	}
	// A full viewport width is one revolution; a full height is clamped by the polar limits.
	oc.RotateLeft(2 * math.Pi * delta.X() / oc.viewport.Width * oc.rotateSpeed)
	oc.RotateUp(2 * math.Pi * delta.Y() / oc.viewport.Height * oc.rotateSpeed)
}

func (oc *orbitControlsImpl) panTo(p mgl64.Vec2) {
	delta := p.Sub(oc.gesture.panStart)
	oc.gesture.panStart = p
	oc.Pan(delta.X(), delta.Y())
}
