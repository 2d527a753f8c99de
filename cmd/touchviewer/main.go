// Package main runs the floorplan viewer on ebiten, which adds touch input and mobile targets.
// The view is a wireframe of the floorplan and item footprints.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/Carmen-Shannon/oxy-planner/common"
	"github.com/Carmen-Shannon/oxy-planner/engine"
	"github.com/Carmen-Shannon/oxy-planner/engine/camera"
	"github.com/Carmen-Shannon/oxy-planner/engine/config"
	"github.com/Carmen-Shannon/oxy-planner/engine/input"
	"github.com/Carmen-Shannon/oxy-planner/engine/interaction"
	"github.com/Carmen-Shannon/oxy-planner/engine/raycast"
	"github.com/Carmen-Shannon/oxy-planner/engine/room"
	"github.com/Carmen-Shannon/oxy-planner/engine/touch"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	wallColor     = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	itemColor     = color.RGBA{R: 140, G: 170, B: 220, A: 255}
	hoverColor    = color.RGBA{R: 190, G: 215, B: 255, A: 255}
	selectedColor = color.RGBA{R: 255, G: 190, B: 90, A: 255}
	fixedColor    = color.RGBA{R: 120, G: 120, B: 130, A: 255}
)

// framePresenter records the frames the engine presents; Draw paints them.
type framePresenter struct {
	background common.Color
	dirty      bool
}

func (p *framePresenter) Render(c common.Color) error {
	p.background = c
	p.dirty = true
	return nil
}

type game struct {
	eng       engine.Engine
	poller    *touch.Poller
	presenter *framePresenter
	floorplan *room.Floorplan
	scene     *room.Scene
	hud       *room.HUD
}

func (g *game) Update() error {
	g.poller.Poll()
	g.eng.Tick()
	select {
	case <-g.eng.Done():
		return ebiten.Termination
	default:
		return nil
	}
}

// Draw repaints only after the engine presented a frame; the screen keeps its contents otherwise.
func (g *game) Draw(screen *ebiten.Image) {
	if !g.presenter.dirty {
		return
	}
	g.presenter.dirty = false
	screen.Fill(toRGBA(g.presenter.background))

	cam := g.eng.Camera()
	viewport := g.eng.Viewport()
	for _, r := range g.floorplan.Rooms() {
		corners := []mgl64.Vec3{
			{r.Min.X(), 0, r.Min.Y()},
			{r.Max.X(), 0, r.Min.Y()},
			{r.Max.X(), 0, r.Max.Y()},
			{r.Min.X(), 0, r.Max.Y()},
		}
		drawLoop(screen, cam, viewport, corners, 2, wallColor)
	}

	frustum := common.FrustumFromMatrix(cam.ViewProjectionMatrix())
	for _, item := range g.scene.Items() {
		it, ok := item.(*room.Item)
		if !ok {
			continue
		}
		// Footprints behind the camera would project mirrored.
		h := it.HalfSize()
		if !frustum.ContainsSphere(it.Position().Add(mgl64.Vec3{0, h.Y(), 0}), h.Len()) {
			continue
		}
		drawLoop(screen, cam, viewport, footprint(it), 1.5, colorFor(it))
	}

	if box, ok := g.hud.Handle().(*raycast.Box); ok && !box.Hidden {
		p := cam.Project(box.Center, viewport)
		clr := itemColor
		if g.hud.Mouseover() || g.hud.Rotating() {
			clr = selectedColor
		}
		vector.DrawFilledCircle(screen, float32(p.X()), float32(p.Y()), 6, clr, true)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.poller.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// footprint returns the floor corners of an item's rotated bounding box.
func footprint(it *room.Item) []mgl64.Vec3 {
	h := it.HalfSize()
	rot := mgl64.Rotate3DY(it.Yaw())
	pos := it.Position()
	local := []mgl64.Vec3{
		{-h.X(), 0, -h.Z()},
		{h.X(), 0, -h.Z()},
		{h.X(), 0, h.Z()},
		{-h.X(), 0, h.Z()},
	}
	out := make([]mgl64.Vec3, len(local))
	for i, c := range local {
		out[i] = pos.Add(rot.Mul3x1(c))
	}
	return out
}

func colorFor(it *room.Item) color.RGBA {
	switch {
	case it.Selected():
		return selectedColor
	case it.Hovered():
		return hoverColor
	case it.Fixed():
		return fixedColor
	default:
		return itemColor
	}
}

// drawLoop strokes the closed polygon through the screen projections of points.
func drawLoop(screen *ebiten.Image, cam camera.Camera, viewport common.Viewport, points []mgl64.Vec3, width float32, clr color.Color) {
	for i := range points {
		a := cam.Project(points[i], viewport)
		b := cam.Project(points[(i+1)%len(points)], viewport)
		vector.StrokeLine(screen, float32(a.X()), float32(a.Y()), float32(b.X()), float32(b.Y()), width, clr, true)
	}
}

func toRGBA(c common.Color) color.RGBA {
	return color.RGBA{
		R: uint8(c.R * 255),
		G: uint8(c.G * 255),
		B: uint8(c.B * 255),
		A: uint8(c.A * 255),
	}
}

func main() {
	os.Exit(run())
}

func run() int {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to a .toml or .yaml configuration file")
	flag.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		cfg = loaded
	}

	floorplan, scene, err := cfg.BuildLayout()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	queue := input.NewQueue()
	poller := touch.NewPoller(queue)
	presenter := &framePresenter{}
	hud := room.NewHUD()

	eng := engine.NewEngine(cfg.NewCamera(camera.WithPosition(mgl64.Vec3{0, 500, 500})), scene,
		engine.WithQueue(queue),
		engine.WithTickRate(float64(cfg.Engine.TickRate)),
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithPresenter(presenter),
		engine.WithFloorplan(floorplan),
		engine.WithHUD(hud),
		engine.WithCursorSetter(poller),
		engine.WithSceneEditor(scene),
		engine.WithViewport(common.Viewport{Width: float64(cfg.Window.Width), Height: float64(cfg.Window.Height)}),
		engine.WithControlsOptions(cfg.ControlsOptions()...),
		engine.WithInteractionOptions(cfg.InteractionOptions()...),
	)
	defer eng.Close()

	unbind := hud.Bind(eng.Interaction().Notifications())
	defer unbind()
	eng.Interaction().Notifications().ItemSelected.Subscribe(func(item interaction.Item) {
		if it, ok := item.(*room.Item); ok {
			log.Printf("[TouchViewer] selected %s", it.Name())
		}
	})

	g := &game{
		eng:       eng,
		poller:    poller,
		presenter: presenter,
		floorplan: floorplan,
		scene:     scene,
		hud:       hud,
	}

	if configPath != "" {
		watcher, err := config.Watch(configPath, eng.Queue(), func(next *config.Config) {
			next.ApplyTuning(eng.Camera(), eng.Controls(), eng.Interaction())
		})
		if err != nil {
			log.Printf("[TouchViewer] WARNING: config reload disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Engine.TickRate)
	ebiten.SetScreenClearedEveryFrame(false)

	if err := ebiten.RunGame(g); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
