package renderer

import "github.com/Carmen-Shannon/oxy-planner/common"

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	PresentModeUncapped
)

// RendererBackend is implemented by each GPU API.
type RendererBackend interface {
	// ConfigureSurface (re)creates the swapchain for a drawable of the given pixel size.
	ConfigureSurface(width, height int)

	// SetPresentMode takes effect on the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// ClearFrame acquires the next surface image, clears it to color and presents it.
	ClearFrame(color common.Color) error

	// Release frees every GPU object held by the backend.
	Release()
}
