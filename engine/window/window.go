package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-planner/common"
	"github.com/Carmen-Shannon/oxy-planner/engine/input"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window is a desktop window that turns platform callbacks into input events.
type Window interface {
	common.CursorSetter

	// SetSink sets where input events are pushed. Events are dropped while no sink is set.
	//
	// Parameters:
	//   - sink: the event queue
	SetSink(sink input.Sink)

	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetFramebufferCallback sets the function called when the drawable size changes.
	// Sizes are in pixels and may differ from the window size on high-DPI displays.
	//
	// Parameters:
	//   - callback: function receiving the framebuffer width and height
	SetFramebufferCallback(callback func(width, height int))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	IsRunning() bool

	// Close closes the window and releases platform resources.
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the window width in screen coordinates, the space pointer events use.
	Width() int

	// Height returns the window height in screen coordinates.
	Height() int

	// FramebufferSize returns the drawable size in pixels.
	FramebufferSize() (width, height int)
}

// engineWindow holds window configuration and the state shared with the platform callbacks.
type engineWindow struct {
	title     string
	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// width and height are in screen coordinates.
	width  int
	height int

	fbWidth  int
	fbHeight int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	sink          input.Sink
	onUpdate      func()
	onFramebuffer func(width, height int)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a window. Must be called from the main goroutine.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the created window
//   - error: if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "oxy-planner",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  320,
		minHeight: 240,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetSink(sink input.Sink) {
	w.sink = sink
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetFramebufferCallback(callback func(width, height int)) {
	w.onFramebuffer = callback
}

func (w *engineWindow) SetCursorStyle(style common.CursorStyle) {
	platformSetCursor(w, style)
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) FramebufferSize() (int, int) {
	return w.fbWidth, w.fbHeight
}

// push forwards e to the sink, if any.
func (w *engineWindow) push(e input.Event) {
	if w.sink != nil {
		w.sink.Push(e)
	}
}
