// Package screencapture implements the Display capability contract spec.md
// §6 describes as "given": CaptureBytes returns BGRA, row-major pixel
// bytes; Width/Height/ScaleFactor describe the surface once at session
// start.
package screencapture

import "errors"

// ErrUnsupportedPlatform is returned by platforms without a Display
// implementation in this module (see DESIGN.md for why darwin is a stub).
var ErrUnsupportedPlatform = errors.New("screencapture: no display capture implementation for this platform")

// Display is the capture capability contract from spec.md §6.
type Display interface {
	// CaptureBytes grabs one frame: Stride()*Height() bytes, row-major,
	// BGRA. Stride may exceed Width()*4 on platforms that pad rows to a
	// word boundary (spec.md §9's open question on this point resolves to
	// "don't assume tight packing" — see DESIGN.md).
	CaptureBytes() ([]byte, error)
	Width() int
	Height() int
	// Stride is the byte distance between the start of consecutive rows.
	Stride() int
	ScaleFactor() float64
	Close()
}
