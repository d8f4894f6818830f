// Package opuscodec wraps github.com/hraban/opus for the consumer's audio
// encode step, following the same opus.NewEncoder/Encode shape the teacher
// repo uses in its own audio pipeline.
package opuscodec

import (
	"fmt"

	"github.com/hraban/opus"
)

// frameDurationsMs is the Opus frame-duration table from spec.md §3.
var frameDurationsMs = []float64{2.5, 5, 10, 20, 40, 60}

// DefaultFrameDurationMs is the 40ms entry used for the consumer's cached
// silence frame (spec.md §4.4).
const DefaultFrameDurationMs = 40

// FrameSize returns the expected sample count for durationMs at the given
// rate and channel count, per spec.md §3's rounding rule.
func FrameSize(sampleRate uint32, channels int, durationMs float64) int {
	return int(float64(sampleRate)*float64(channels)*durationMs/1000 + 0.5)
}

// IsValidFrameSize reports whether n matches one of the six Opus frame
// durations for (sampleRate, channels).
func IsValidFrameSize(n int, sampleRate uint32, channels int) bool {
	for _, d := range frameDurationsMs {
		if FrameSize(sampleRate, channels, d) == n {
			return true
		}
	}
	return false
}

// Encoder wraps an Opus encoder plus a pre-encoded silence frame cached at
// DefaultFrameDurationMs, per spec.md §4.4's initialization step.
type Encoder struct {
	enc     *opus.Encoder
	silence []byte
}

// New creates an Opus encoder at (sampleRate, channels, LowDelay) with
// bitrate bps, matching spec.md §4.4.
func New(sampleRate uint32, channels int, bitrate int) (*Encoder, error) {
	enc, err := opus.NewEncoder(int(sampleRate), channels, opus.AppRestrictedLowdelay)
	if err != nil {
		return nil, fmt.Errorf("opuscodec: new encoder: %w", err)
	}
	if err := enc.SetBitrate(bitrate); err != nil {
		return nil, fmt.Errorf("opuscodec: set bitrate: %w", err)
	}

	e := &Encoder{enc: enc}

	silentPCM := make([]int16, FrameSize(sampleRate, channels, DefaultFrameDurationMs))
	buf := make([]byte, len(silentPCM)*6)
	n, err := enc.Encode(silentPCM, buf)
	if err != nil {
		return nil, fmt.Errorf("opuscodec: pre-encode silence: %w", err)
	}
	e.silence = append([]byte(nil), buf[:n]...)

	return e, nil
}

// Encode encodes one frame of f32 PCM in [-1,1], per spec.md §4.4 step c.
// The output buffer is sized len(pcm)*6 as the spec directs.
func (e *Encoder) Encode(pcm []float32) ([]byte, error) {
	ipcm := make([]int16, len(pcm))
	for i, s := range pcm {
		ipcm[i] = floatToInt16(s)
	}
	buf := make([]byte, len(pcm)*6)
	n, err := e.enc.Encode(ipcm, buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// Silence returns the cached pre-encoded silent frame.
func (e *Encoder) Silence() []byte {
	return e.silence
}

func floatToInt16(s float32) int16 {
	if s > 1 {
		s = 1
	}
	if s < -1 {
		s = -1
	}
	return int16(s * 32767)
}
