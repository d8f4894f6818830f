// Package pipeline implements the capture → convert → encode → mux core:
// one producer, a converter worker pool, and one consumer connected by
// unbounded channels, per spec.md §2/§5.
package pipeline

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"screenrec/internal/audiotap"
	"screenrec/internal/config"
	"screenrec/internal/screencapture"
)

// recordingFlag is the process-wide RECORDING gate from spec.md §3/§5: a
// single atomic boolean, written with release by stop_record and record,
// read with acquire by the producer loop. Go's atomic.Bool already provides
// sequentially consistent (i.e. at least acquire/release) ordering on
// Load/Store, satisfying that requirement.
type recordingFlag struct {
	v atomic.Bool
}

func (f *recordingFlag) Load() bool   { return f.v.Load() }
func (f *recordingFlag) Store(b bool) { f.v.Store(b) }

var recording recordingFlag

// Recording reports whether a session is currently running. Exposed for UI
// state sync per spec.md §6.
func Recording() bool {
	return recording.Load()
}

// StopRecord is a non-blocking request to end the running session
// (spec.md §6). It is a no-op if no session is running.
func StopRecord() {
	recording.Store(false)
}

// Record runs one recording session against display until stopped, per
// spec.md §4.5's state machine. It blocks until the session has finalized
// and written its output file, or a fatal error aborts it. Only one session
// may run at a time; the desktop collaborator is responsible for gating
// concurrent calls (spec.md §4.5).
func Record(display screencapture.Display) error {
	return record(display, config.OutputDir, config.VP9)
}

// RecordWithOptions is Record with the output directory and video codec
// overridable, for cmd/recorder's CLI flags (spec.md §6 notes these as
// desktop-collaborator surface features, not core configuration knobs).
func RecordWithOptions(display screencapture.Display, outputDir string, codec config.VideoCodec) error {
	return record(display, outputDir, codec)
}

func record(display screencapture.Display, outputDir string, codec config.VideoCodec) error {
	tap, err := audiotap.Open()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	defer tap.Close()

	return run(display, tap, tap.Config, outputDir, codec)
}

// run wires the producer, converter pool, and consumer together and blocks
// until the consumer finalizes — the body of spec.md §4.5's
// Starting→Running→Draining→Idle state machine. Split out from record so
// tests can substitute a stub audioSource in place of a live audiotap.Tap.
func run(display screencapture.Display, audio audioSource, audioCfg audiotap.AudioConfig, outputDir string, codec config.VideoCodec) error {
	recording.Store(true)
	defer recording.Store(false)

	width, height := scaledDimensions(display)

	samplesPerFrame := int(audioCfg.SampleRate/config.FPS) * int(audioCfg.EncodeChannel)

	q1 := newUnboundedQueue()
	q2 := newUnboundedQueue()

	cons, err := newConsumer(width, height, codec, audioCfg, outputDir)
	if err != nil {
		return err
	}
	defer cons.close()

	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}
	pool := &converterPool{n: n, width: width, height: height, audio: audioCfg}
	pool.run(q1.Recv(), q2)

	prod := &producer{
		display:      display,
		audio:        audio,
		samplesFrame: samplesPerFrame,
		out:          q1,
		recording:    &recording,
		start:        time.Now(),
	}
	go prod.run()

	return cons.run(q2.Recv())
}

// scaledDimensions folds display.ScaleFactor() into its reported
// width/height once, at session start, per spec.md §6: "display.width,
// display.height, display.scale_factor — used once at session start to
// compute the encoder's width × height." A HiDPI display that reports
// logical pixel dimensions needs this multiply to produce the physical
// pixel count the encoder and muxer are sized to; XShm's ScaleFactor is
// always 1.0 so this is a no-op there, but the seam exists for displays
// that report a logical size.
func scaledDimensions(display screencapture.Display) (width, height int) {
	scale := display.ScaleFactor()
	return int(float64(display.Width()) * scale), int(float64(display.Height()) * scale)
}
