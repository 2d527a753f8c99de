package window

import "github.com/Carmen-Shannon/oxy-planner/engine/input"

// WindowBuilderOption is a functional option for configuring an engineWindow.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the initial window size in screen coordinates. Non-positive values keep the default.
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 {
			w.width = width
		}
		if height > 0 {
			w.height = height
		}
	}
}

// WithSizeLimits bounds interactive resizing.
//
// Parameters:
//   - minWidth, minHeight: smallest size in screen coordinates
//   - maxWidth, maxHeight: largest size in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth, w.minHeight = minWidth, minHeight
		w.maxWidth, w.maxHeight = maxWidth, maxHeight
	}
}

// WithSink sets the queue input events are pushed into from the start.
func WithSink(sink input.Sink) WindowBuilderOption {
	return func(w *engineWindow) {
		w.sink = sink
	}
}
