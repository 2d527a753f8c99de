// Package main runs the floorplan viewer in a desktop window.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-planner/common"
	"github.com/Carmen-Shannon/oxy-planner/engine"
	"github.com/Carmen-Shannon/oxy-planner/engine/camera"
	"github.com/Carmen-Shannon/oxy-planner/engine/config"
	"github.com/Carmen-Shannon/oxy-planner/engine/input"
	"github.com/Carmen-Shannon/oxy-planner/engine/interaction"
	"github.com/Carmen-Shannon/oxy-planner/engine/notify"
	"github.com/Carmen-Shannon/oxy-planner/engine/renderer"
	"github.com/Carmen-Shannon/oxy-planner/engine/room"
	"github.com/Carmen-Shannon/oxy-planner/engine/window"
	"github.com/go-gl/mathgl/mgl64"
)

func main() {
	os.Exit(run())
}

func run() int {
	var configPath string
	var uncapped, software bool
	flag.StringVar(&configPath, "config", "", "Path to a .toml or .yaml configuration file")
	flag.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&uncapped, "uncapped", false, "Present without waiting for vsync")
	flag.BoolVar(&software, "software", false, "Force the software (fallback) GPU adapter")
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
	w, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithSink(queue),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer w.Close()

	presentMode := renderer.PresentModeVSync
	if uncapped {
		presentMode = renderer.PresentModeUncapped
	}
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, w,
		renderer.WithPresentMode(presentMode),
		renderer.WithForceSoftwareRenderer(software),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer r.Release()
	w.SetFramebufferCallback(r.Resize)

	hud := room.NewHUD()
	eng := engine.NewEngine(cfg.NewCamera(camera.WithPosition(mgl64.Vec3{0, 500, 500})), scene,
		engine.WithQueue(queue),
		engine.WithTickRate(float64(cfg.Engine.TickRate)),
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithPresenter(r),
		engine.WithFloorplan(floorplan),
		engine.WithHUD(hud),
		engine.WithCursorSetter(w),
		engine.WithSceneEditor(scene),
		engine.WithViewport(common.Viewport{Width: float64(w.Width()), Height: float64(w.Height())}),
		engine.WithControlsOptions(cfg.ControlsOptions()...),
		engine.WithInteractionOptions(cfg.InteractionOptions()...),
	)
	defer eng.Close()

	unbind := hud.Bind(eng.Interaction().Notifications())
	defer unbind()
	logNotifications(eng.Interaction().Notifications())

	if configPath != "" {
		watcher, err := config.Watch(configPath, queue, func(next *config.Config) {
			next.ApplyTuning(eng.Camera(), eng.Controls(), eng.Interaction())
		})
		if err != nil {
			log.Printf("[Viewer] WARNING: config reload disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	w.SetUpdateCallback(func() {
		eng.Pump(time.Now())
	})
	w.ProcessMessages()

	log.Printf("[Viewer] presented %d frames", r.Frames())
	return 0
}

// logNotifications prints every click and selection the controller reports.
func logNotifications(notes *interaction.Notifications) {
	notes.ItemSelected.Subscribe(func(item interaction.Item) {
		if it, ok := item.(*room.Item); ok {
			log.Printf("[Viewer] selected %s at %v", it.Name(), it.Position())
		}
	})
	notes.ItemUnselected.Subscribe(func(notify.Empty) { log.Printf("[Viewer] selection cleared") })
	notes.WallClicked.Subscribe(func(edge interaction.WallEdge) { log.Printf("[Viewer] wall %s clicked", edge.ID()) })
	notes.FloorClicked.Subscribe(func(r interaction.Room) { log.Printf("[Viewer] floor %s clicked", r.ID()) })
	notes.NothingClicked.Subscribe(func(notify.Empty) { log.Printf("[Viewer] nothing clicked") })
}
