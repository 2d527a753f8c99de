package window

import (
	"fmt"
	"log"
	"runtime"

	"github.com/Carmen-Shannon/oxy-planner/common"
	"github.com/Carmen-Shannon/oxy-planner/engine/input"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	parent  *engineWindow
	window  *glfw.Window
	running bool
	cursors map[common.CursorStyle]*glfw.Cursor
	cursor  common.CursorStyle
}

// buttonFor maps GLFW mouse buttons onto engine buttons. Extra buttons are ignored.
func buttonFor(button glfw.MouseButton) (common.MouseButton, bool) {
	switch button {
	case glfw.MouseButtonLeft:
		return common.ButtonPrimary, true
	case glfw.MouseButtonMiddle:
		return common.ButtonMiddle, true
	case glfw.MouseButtonRight:
		return common.ButtonSecondary, true
	default:
		return 0, false
	}
}

// standardCursorFor picks the GLFW standard cursor shape for style.
func standardCursorFor(style common.CursorStyle) glfw.StandardCursor {
	switch style {
	case common.CursorPointer:
		return glfw.HandCursor
	case common.CursorMove:
		return glfw.CrosshairCursor
	default:
		return glfw.ArrowCursor
	}
}

// newPlatformWindow creates the GLFW window with input callbacks and stores it as the internal window.
//
// GLFW reference: https://www.glfw.org/docs/latest/input_guide.html
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	gw := &glfwWindow{
		parent:  w,
		window:  win,
		running: true,
		cursors: make(map[common.CursorStyle]*glfw.Cursor),
		cursor:  common.CursorAuto,
	}
	w.internalWindow = gw

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			gw.running = false
			win.SetShouldClose(true)
			return
		}
		if action == glfw.Press || action == glfw.Repeat {
			// GLFW key codes are the engine's key codes.
			w.push(input.KeyDown{Key: int(key)})
		}
	})

	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		if yoff != 0 {
			w.push(input.Wheel{Delta: yoff})
		}
	})

	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		b, ok := buttonFor(button)
		if !ok {
			return
		}
		x, y := win.GetCursorPos()
		switch action {
		case glfw.Press:
			w.push(input.PointerDown{Button: b, X: x, Y: y})
		case glfw.Release:
			w.push(input.PointerUp{Button: b, X: x, Y: y})
		}
	})

	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.push(input.PointerMove{X: x, Y: y})
	})

	win.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		w.push(input.PointerEnter{Inside: entered})
	})

	// A button held while focus moves elsewhere never reports its release.
	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if !focused {
			w.push(input.CaptureLost{})
		}
	})

	win.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width = width
		w.height = height
		w.push(input.Resize{Width: width, Height: height})
	})

	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.fbWidth = width
		w.fbHeight = height
		if w.onFramebuffer != nil {
			w.onFramebuffer(width, height)
		}
	})

	w.width, w.height = win.GetSize()
	w.fbWidth, w.fbHeight = win.GetFramebufferSize()
	return nil
}

// platformSetCursor swaps the cursor shape, creating each standard cursor once.
func platformSetCursor(w *engineWindow, style common.CursorStyle) {
	if w.internalWindow == nil {
		return
	}
	gw := w.internalWindow.(*glfwWindow)
	if gw.cursor == style {
		return
	}
	c, ok := gw.cursors[style]
	if !ok {
		c = glfw.CreateStandardCursor(standardCursorFor(style))
		if c == nil {
			log.Printf("[Window] WARNING: no standard cursor for %s", style)
			return
		}
		gw.cursors[style] = c
	}
	gw.window.SetCursor(c)
	gw.cursor = style
}

// platformGetSurfaceDescriptor creates a platform-appropriate wgpu.SurfaceDescriptor from the GLFW window.
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	if w.internalWindow == nil {
		return nil
	}
	gw := w.internalWindow.(*glfwWindow)
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

// platformIsRunningCheck returns whether the GLFW window is still active.
func platformIsRunningCheck(w *engineWindow) bool {
	if w.internalWindow == nil {
		return false
	}
	gw := w.internalWindow.(*glfwWindow)
	return gw.running && !gw.window.ShouldClose()
}

// platformCloseWindow destroys cursors and the GLFW window, then terminates GLFW.
func platformCloseWindow(w *engineWindow) error {
	if w.internalWindow == nil {
		return fmt.Errorf("window is not initialized")
	}
	gw := w.internalWindow.(*glfwWindow)
	gw.running = false
	for style, c := range gw.cursors {
		c.Destroy()
		delete(gw.cursors, style)
	}
	gw.window.SetShouldClose(true)
	gw.window.Destroy()
	w.internalWindow = nil
	glfw.Terminate()
	return nil
}

// platformProcessMessages polls GLFW for pending events without blocking.
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}
