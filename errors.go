package pick

import "errors"

// Selection errors.
var (
	// ErrNoRenderTarget is returned when a capture starts without a target
	// to read passes back from.
	ErrNoRenderTarget = errors.New("pick: no render target")

	// ErrNoRenderer is returned when a capture starts without a renderer.
	ErrNoRenderer = errors.New("pick: no renderer")

	// ErrEmptyArea is returned when a capture starts with an empty area.
	ErrEmptyArea = errors.New("pick: empty capture area")

	// ErrNoEventSource is returned when a non-root ParallelSelector starts
	// without render notifications to follow.
	ErrNoEventSource = errors.New("pick: no render event source")
)
