package camera

import (
	"bytes"
	"log"
	"math"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-planner/common"
	"github.com/Carmen-Shannon/oxy-planner/engine/notify"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func newTestControls(options ...OrbitControlsOption) OrbitControls {
	oc := NewOrbitControls(newTestCamera(), options...)
	oc.SetViewport(testViewport)
	return oc
}

func TestOrbitControls_UpdateIsIdempotent(t *testing.T) {
	oc := newTestControls()
	oc.Update()
	first := oc.Camera().Position()

	oc.Update()
	oc.Update()

	if second := oc.Camera().Position(); !vecAlmostEqual(first, second, 1e-9) {
		t.Errorf("Position drifted without input: %v -> %v", first, second)
	}
}

func TestOrbitControls_UpdateResetsPendingAndNotifies(t *testing.T) {
	oc := newTestControls()
	moved := 0
	oc.CameraMoved().Subscribe(func(notify.Empty) { moved++ })

	oc.RotateLeft(0.2)
	oc.RotateUp(0.1)
	oc.DollyIn(0.5)
	oc.PanLeft(10)
	oc.Update()

	if diff := cmp.Diff(NeutralDelta(), oc.Pending()); diff != "" {
		t.Errorf("Pending() after Update mismatch (-want +got):\n%s", diff)
	}
	if moved != 1 {
		t.Errorf("cameraMoved fired %d times, want 1", moved)
	}
	if !oc.NeedsUpdate() {
		t.Error("NeedsUpdate() = false after Update, want true")
	}
	if oc.NeedsUpdate() {
		t.Error("NeedsUpdate() did not clear")
	}
}

func TestOrbitControls_OnlyUpdateMovesCamera(t *testing.T) {
	oc := newTestControls()
	before := oc.Camera().Position()

	oc.RotateLeft(1)
	oc.RotateUp(0.3)
	oc.DollyOut(0.5)
	oc.Pan(50, 50)

	if after := oc.Camera().Position(); after != before {
		t.Errorf("camera moved before Update: %v -> %v", before, after)
	}
}

func TestOrbitControls_RotateLeft(t *testing.T) {
	oc := newTestControls()
	oc.RotateLeft(0.5)
	oc.Update()

	s := oc.Spherical()
	if !almostEqual(s.Theta, -0.5, 1e-9) {
		t.Errorf("Theta = %v, want -0.5", s.Theta)
	}
	if !almostEqual(s.Radius, 500*math.Sqrt2, 1e-6) {
		t.Errorf("Radius = %v, want %v", s.Radius, 500*math.Sqrt2)
	}
}

func TestOrbitControls_BoundsHoldAfterExtremeGestures(t *testing.T) {
	const minD, maxD = 100.0, 1500.0
	const minPolar, maxPolar = 0.0, math.Pi / 2

	tests := []struct {
		name  string
		apply func(OrbitControls)
	}{
		{"rotate up far past the pole", func(oc OrbitControls) { oc.RotateUp(1000) }},
		{"rotate down far past the limit", func(oc OrbitControls) { oc.RotateUp(-1000) }},
		{"dolly out to nothing", func(oc OrbitControls) { oc.DollyOut(1e-9) }},
		{"dolly in to infinity", func(oc OrbitControls) { oc.DollyIn(1e-9) }},
		{"many wheel ticks", func(oc OrbitControls) {
			for i := 0; i < 500; i++ {
				oc.Wheel(1)
			}
		}},
		{"everything at once", func(oc OrbitControls) {
			oc.RotateLeft(77)
			oc.RotateUp(-3)
			oc.DollyIn(1e-3)
			oc.Pan(1e4, -1e4)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oc := newTestControls(WithRadiusBounds(minD, maxD), WithPolarBounds(minPolar, maxPolar))
			tt.apply(oc)
			oc.Update()

			s := oc.Spherical()
			if s.Radius < minD-1e-6 || s.Radius > maxD+1e-6 {
				t.Errorf("Radius = %v, want within [%v, %v]", s.Radius, minD, maxD)
			}
			lo := math.Max(minPolar, common.PolarEpsilon)
			hi := math.Min(maxPolar, math.Pi-common.PolarEpsilon)
			if s.Phi < lo-1e-9 || s.Phi > hi+1e-9 {
				t.Errorf("Phi = %v, want within [%v, %v]", s.Phi, lo, hi)
			}
			for i, v := range oc.Camera().Position() {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Errorf("Position[%d] = %v", i, v)
				}
			}
		})
	}
}

func TestOrbitControls_DollyOutAtMaxDistance(t *testing.T) {
	const maxD = 1000.0
	s := math.Sqrt2 / 2
	cam := NewPerspectiveCamera(DefaultFov, WithPosition(mgl64.Vec3{0, maxD * s, maxD * s}))
	oc := NewOrbitControls(cam, WithRadiusBounds(10, maxD))

	oc.DollyOut(1.1)
	oc.Update()

	if got := oc.Spherical().Radius; !almostEqual(got, maxD, 1e-6) {
		t.Errorf("Radius = %v, want %v", got, maxD)
	}
}

func TestOrbitControls_PanPerspective(t *testing.T) {
	oc := newTestControls()
	oc.Pan(100, 0)

	targetDistance := 500 * math.Sqrt2 * math.Tan(DefaultFov/2)
	want := mgl64.Vec3{-2 * 100 * targetDistance / 600, 0, 0}
	if got := oc.Pending().Pan; !vecAlmostEqual(got, want, 1e-9) {
		t.Errorf("Pending().Pan = %v, want %v", got, want)
	}
}

func TestOrbitControls_PanOrthographic(t *testing.T) {
	cam := NewOrthographicCamera(-400, 400, 300, -300, WithPosition(mgl64.Vec3{0, 500, 500}))
	oc := NewOrbitControls(cam)
	oc.SetViewport(testViewport)

	oc.Pan(80, 0)
	if got := oc.Pending().Pan; !vecAlmostEqual(got, mgl64.Vec3{-80, 0, 0}, 1e-9) {
		t.Errorf("horizontal Pending().Pan = %v, want (-80,0,0)", got)
	}

	oc.SetPan(mgl64.Vec3{})
	oc.Pan(0, 60)
	if got := oc.Pending().Pan; !vecAlmostEqual(got, mgl64.Vec3{0, 0, -60}, 1e-9) {
		t.Errorf("vertical Pending().Pan = %v, want (0,0,-60)", got)
	}
}

// bareCamera hides the projection-specific methods of the wrapped camera.
type bareCamera struct {
	Camera
}

func TestOrbitControls_PanUnknownProjection(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(orig)

	oc := NewOrbitControls(bareCamera{newTestCamera()})
	oc.SetViewport(testViewport)
	oc.Pan(100, 100)

	if got := oc.Pending().Pan; got != (mgl64.Vec3{}) {
		t.Errorf("Pending().Pan = %v, want zero", got)
	}
	if !strings.Contains(buf.String(), "pan disabled") {
		t.Errorf("expected a pan warning, log was %q", buf.String())
	}
}

func TestOrbitControls_PanTo(t *testing.T) {
	oc := newTestControls()
	oc.PanTo(mgl64.Vec3{100, 50, -20})

	if got := oc.Target(); !vecAlmostEqual(got, mgl64.Vec3{100, 0, -20}, 1e-9) {
		t.Errorf("Target() = %v, want (100,0,-20)", got)
	}
}

func TestOrbitControls_CenterOn(t *testing.T) {
	oc := newTestControls(WithRadiusBounds(0, 5000))
	oc.CenterOn(mgl64.Vec3{10, 0, 20}, mgl64.Vec3{1000, 250, 800})

	if got := oc.Target(); !vecAlmostEqual(got, mgl64.Vec3{10, 150, 20}, 1e-9) {
		t.Errorf("Target() = %v, want (10,150,20)", got)
	}
	if got := oc.Camera().Position(); !vecAlmostEqual(got, mgl64.Vec3{10, 1350, 1220}, 1e-6) {
		t.Errorf("Position() = %v, want (10,1350,1220)", got)
	}
}

func TestOrbitControls_AutoRotate(t *testing.T) {
	step := 2 * math.Pi / 60 / 60 * 2

	tests := []struct {
		name      string
		prepare   func(OrbitControls)
		wantTheta float64
	}{
		{"spinning", func(OrbitControls) {}, -step},
		{"stopped", func(oc OrbitControls) { oc.StopAutoRotate() }, 0},
		{"paused", func(oc OrbitControls) { oc.SetAutoRotatePaused(true) }, 0},
		{"restarted", func(oc OrbitControls) {
			oc.StopAutoRotate()
			oc.SetAutoRotate(true)
		}, -step},
		{"during gesture", func(oc OrbitControls) { oc.PointerDown(common.ButtonPrimary, 10, 10) }, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oc := newTestControls(WithAutoRotate(2))
			tt.prepare(oc)
			oc.Update()
			if got := oc.Spherical().Theta; !almostEqual(got, tt.wantTheta, 1e-9) {
				t.Errorf("Theta = %v, want %v", got, tt.wantTheta)
			}
		})
	}
}

func TestOrbitControls_MouseGestures(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-9)

	tests := []struct {
		name  string
		apply func(OrbitControls)
		want  PendingDelta
	}{
		{
			name: "primary drag rotates",
			apply: func(oc OrbitControls) {
				oc.PointerDown(common.ButtonPrimary, 100, 100)
				oc.PointerMove(500, 250)
			},
			want: PendingDelta{Theta: -math.Pi, Phi: -math.Pi / 2, Scale: 1},
		},
		{
			name: "middle drag down dollies in",
			apply: func(oc OrbitControls) {
				oc.PointerDown(common.ButtonMiddle, 0, 0)
				oc.PointerMove(0, 5)
			},
			want: PendingDelta{Scale: 1 / 0.95},
		},
		{
			name: "middle drag up dollies out",
			apply: func(oc OrbitControls) {
				oc.PointerDown(common.ButtonMiddle, 0, 5)
				oc.PointerMove(0, 0)
			},
			want: PendingDelta{Scale: 0.95},
		},
		{
			name:  "wheel up dollies out",
			apply: func(oc OrbitControls) { oc.Wheel(1) },
			want:  PendingDelta{Scale: 0.95},
		},
		{
			name:  "wheel down dollies in",
			apply: func(oc OrbitControls) { oc.Wheel(-1) },
			want:  PendingDelta{Scale: 1 / 0.95},
		},
		{
			name: "moves after release are ignored",
			apply: func(oc OrbitControls) {
				oc.PointerDown(common.ButtonPrimary, 0, 0)
				oc.PointerUp()
				oc.PointerMove(300, 300)
			},
			want: NeutralDelta(),
		},
		{
			name: "disabled controls ignore gestures",
			apply: func(oc OrbitControls) {
				oc.SetEnabled(false)
				oc.PointerDown(common.ButtonPrimary, 0, 0)
				oc.PointerMove(300, 300)
				oc.Wheel(1)
			},
			want: NeutralDelta(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oc := newTestControls()
			tt.apply(oc)
			if diff := cmp.Diff(tt.want, oc.Pending(), approx); diff != "" {
				t.Errorf("Pending() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOrbitControls_KeyPan(t *testing.T) {
	tests := []struct {
		key  int
		want mgl64.Vec3
	}{
		{common.KeyLeft, mgl64.Vec3{-1, 0, 0}},
		{common.KeyRight, mgl64.Vec3{1, 0, 0}},
		{common.KeyUp, mgl64.Vec3{0, 0, -1}},
		{common.KeyDown, mgl64.Vec3{0, 0, 1}},
	}
	for _, tt := range tests {
		oc := newTestControls()
		oc.KeyDown(tt.key)
		dir, ok := common.NormalizeOrZero(oc.Pending().Pan)
		if !ok || !vecAlmostEqual(dir, tt.want, 1e-9) {
			t.Errorf("KeyDown(%d) pan direction = %v, want %v", tt.key, dir, tt.want)
		}
	}

	oc := newTestControls(WithNoKeys(true))
	oc.KeyDown(common.KeyUp)
	if got := oc.Pending().Pan; got != (mgl64.Vec3{}) {
		t.Errorf("KeyDown with keys disabled panned by %v", got)
	}
}

func TestOrbitControls_TouchCountChangeResetsGesture(t *testing.T) {
	oc := newTestControls()

	oc.TouchStart([]mgl64.Vec2{{100, 100}})
	oc.TouchMove([]mgl64.Vec2{{100, 100}, {200, 100}})
	if diff := cmp.Diff(NeutralDelta(), oc.Pending()); diff != "" {
		t.Fatalf("count change emitted a delta (-want +got):\n%s", diff)
	}

	// Fingers spread apart: dolly toward the target.
	oc.TouchMove([]mgl64.Vec2{{90, 100}, {210, 100}})
	if got := oc.Pending().Scale; !almostEqual(got, 0.95, 1e-12) {
		t.Errorf("Scale after pinch out = %v, want 0.95", got)
	}

	oc.TouchEnd([]mgl64.Vec2{{90, 100}})
	oc.TouchMove([]mgl64.Vec2{{490, 100}})
	if got := oc.Pending().Theta; !almostEqual(got, -math.Pi, 1e-9) {
		t.Errorf("Theta after one-finger drag = %v, want %v", got, -math.Pi)
	}

	oc.TouchEnd(nil)
	if !oc.Idle() {
		t.Error("Idle() = false after all fingers lifted")
	}
}

func TestOrbitControls_ThreeFingerPan(t *testing.T) {
	oc := newTestControls()
	pts := []mgl64.Vec2{{100, 100}, {150, 100}, {200, 100}}
	oc.TouchStart(pts)
	oc.TouchMove([]mgl64.Vec2{{200, 100}, {250, 100}, {300, 100}})

	if got := oc.Pending().Pan; got.X() >= 0 || !almostEqual(got.Y(), 0, 1e-12) {
		t.Errorf("Pending().Pan = %v, want a pure -X pan", got)
	}
}
