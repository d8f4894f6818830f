package pipeline

import (
	"time"

	"screenrec/internal/config"
	"screenrec/internal/screencapture"
)

// audioSource is the ring-buffer-draining side of the audio tap (spec.md
// §4.2 step 2). Narrowed to Drain so the producer doesn't depend on
// audiotap.Tap's device-specific fields, and so tests can substitute a
// stub that never blocks on real hardware.
type audioSource interface {
	Drain(min int) []float32
}

// producer captures one ARGB frame and drains one video-frame's worth of
// audio per tick, stamping seq/ms and emitting to out. Per spec.md §4.2, it
// is the sole writer of seq and ms, and the sole reader of RECORDING in the
// acquire direction.
type producer struct {
	display      screencapture.Display
	audio        audioSource
	samplesFrame int
	out          *unboundedQueue
	recording    *recordingFlag
	start        time.Time
}

// run captures and emits frames until RECORDING goes false, then closes out
// — the converter pool's only termination signal (spec.md §4.2/§4.5).
func (p *producer) run() {
	defer p.out.Close()

	var seq uint64
	for p.recording.Load() {
		frameStart := time.Now()

		video, err := p.display.CaptureBytes()
		if err != nil {
			// CaptureFailure: session aborts (spec.md §7). Stopping the
			// flag drives every downstream stage through its own closure
			// path; there is no separate abort channel.
			p.recording.Store(false)
			break
		}

		audio := p.audio.Drain(p.samplesFrame)

		ms := uint64(time.Since(p.start) / time.Millisecond)
		pkt := AVPacket{Seq: seq, Ms: ms, Stride: p.display.Stride(), VideoData: video, AudioData: audio}
		seq++

		p.out.Send(pkt)

		if elapsed := time.Since(frameStart); elapsed < config.FrameDuration {
			time.Sleep(config.FrameDuration - elapsed)
		}
	}
}
