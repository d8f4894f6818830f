// Package config holds the compile-time constants of the recording core.
//
// Spec.md §6 is explicit that fps, bitrates, codec choice, and channel
// policy are not configuration surfaces of this core — a desktop shell may
// expose them, but the pipeline itself treats them as fixed.
package config

import "time"

const (
	// FPS is the producer's target video frame rate.
	FPS = 60

	// FrameDuration is the producer's pacer sleep between captures.
	FrameDuration = time.Second / FPS

	// VideoBitrate is the libvpx target bitrate in the codec's native units
	// (kbps, per spec.md §4.4/§6).
	VideoBitrate = 5000

	// AudioBitrate is the Opus encoder bitrate in bits per second.
	AudioBitrate = 128000

	// OutputDir is the default directory new recordings are written under.
	OutputDir = "target"
)

// VideoCodec identifies which VPx codec the consumer's encoder uses.
type VideoCodec int

const (
	// VP9 is the default codec per spec.md §4.4.
	VP9 VideoCodec = iota
	VP8
)

func (c VideoCodec) String() string {
	if c == VP8 {
		return "vp8"
	}
	return "vp9"
}
