package renderer

import (
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-planner/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// SurfaceSource is a window a GPU surface can be created for.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	FramebufferSize() (width, height int)
}

// Renderer draws the viewport background. Interaction state is shown through the clear color.
type Renderer interface {
	// Resize reconfigures the surface for a new framebuffer size in pixels.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode changes how frames are delivered and reconfigures the surface.
	SetPresentMode(mode PresentMode)

	// Render clears the next frame to color and presents it.
	//
	// Parameters:
	//   - color: the clear color
	//
	// Returns:
	//   - error: if the frame could not be acquired or submitted
	Render(color common.Color) error

	// Frames returns the number of frames presented so far.
	Frames() uint64

	// Release frees the GPU resources.
	Release()
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	backendType RendererBackendType
	backend     RendererBackend
	width       int
	height      int
	frames      uint64

	forceFallbackAdapter bool
	presentMode          PresentMode
}

var _ Renderer = &renderer{}

// NewRenderer creates a renderer for the window's surface.
//
// Parameters:
//   - backendType: the GPU backend to use
//   - window: the window to draw into
//   - options: functional options applied before the backend is created
//
// Returns:
//   - Renderer: the renderer
//   - error: if no adapter or device is available
func NewRenderer(backendType RendererBackendType, window SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		backendType: backendType,
		presentMode: PresentModeVSync,
	}
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		b, err := newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter)
		if err != nil {
			return nil, fmt.Errorf("creating wgpu backend: %w", err)
		}
		r.backend = b
	}

	r.backend.SetPresentMode(r.presentMode)
	r.Resize(window.FramebufferSize())
	return r, nil
}

func (r *renderer) Resize(width, height int) {
	r.width, r.height = width, height
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.presentMode = mode
	r.backend.SetPresentMode(mode)
	r.backend.ConfigureSurface(r.width, r.height)
}

func (r *renderer) Render(color common.Color) error {
	if err := r.backend.ClearFrame(color); err != nil {
		// Lost or outdated surfaces recover after reconfiguring.
		log.Printf("[Renderer] frame dropped, reconfiguring surface: %v", err)
		r.backend.ConfigureSurface(r.width, r.height)
		return err
	}
	r.frames++
	return nil
}

func (r *renderer) Frames() uint64 {
	return r.frames
}

func (r *renderer) Release() {
	r.backend.Release()
}
