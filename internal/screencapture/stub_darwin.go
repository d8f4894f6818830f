//go:build darwin

package screencapture

// Open is unavailable on darwin: the teacher's ScreenCaptureKit path
// (internal/capture/sck_darwin.go) produces NV12 frames backed by
// CVPixelBuffer, which cannot be surfaced through CaptureBytes' BGRA byte
// contract without a GPU-side color convert step this module doesn't carry
// (see DESIGN.md, dropped teacher modules).
func Open(displayName string) (*XShmDisplay, error) {
	return nil, ErrUnsupportedPlatform
}

// XShmDisplay has no darwin implementation; the type exists only so Open's
// signature matches across platforms.
type XShmDisplay struct{}

func (d *XShmDisplay) Width() int           { return 0 }
func (d *XShmDisplay) Height() int          { return 0 }
func (d *XShmDisplay) Stride() int          { return 0 }
func (d *XShmDisplay) ScaleFactor() float64 { return 1.0 }
func (d *XShmDisplay) CaptureBytes() ([]byte, error) {
	return nil, ErrUnsupportedPlatform
}
func (d *XShmDisplay) Close() {}
