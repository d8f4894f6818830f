package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// stubDisplay returns a fixed ARGB frame of fixed dimensions, per spec.md
// §8 scenario 1's "stub capture returns fixed ARGB frames".
type stubDisplay struct {
	w, h int
}

func (d *stubDisplay) CaptureBytes() ([]byte, error) { return make([]byte, d.w*d.h*4), nil }
func (d *stubDisplay) Width() int                     { return d.w }
func (d *stubDisplay) Height() int                    { return d.h }
func (d *stubDisplay) Stride() int                    { return d.w * 4 }
func (d *stubDisplay) ScaleFactor() float64           { return 1.0 }
func (d *stubDisplay) Close()                         {}

// stubAudio yields silence on every Drain call, per spec.md §8 scenario 1's
// "ring buffer yields zeros".
type stubAudio struct{}

func (stubAudio) Drain(min int) []float32 { return make([]float32, min) }

// TestProducer_StopMidSessionClosesOutAndSeqIsContiguous is spec.md §8
// scenario 6: stopping RECORDING mid-session must make the producer exit
// its loop, close its output channel, and leave behind a contiguous,
// gap-free seq run starting at 0.
func TestProducer_StopMidSessionClosesOutAndSeqIsContiguous(t *testing.T) {
	out := newUnboundedQueue()
	rec := &recordingFlag{}
	rec.Store(true)

	p := &producer{
		display:      &stubDisplay{w: 64, h: 48},
		audio:        stubAudio{},
		samplesFrame: 160,
		out:          out,
		recording:    rec,
		start:        time.Now(),
	}

	done := make(chan struct{})
	go func() {
		p.run()
		close(done)
	}()

	var received []AVPacket
	for i := 0; i < 5; i++ {
		received = append(received, <-out.Recv())
	}
	rec.Store(false)

	// Drain until closure; the producer may emit a few more in-flight
	// packets before observing the flag.
	for pkt := range out.Recv() {
		received = append(received, pkt)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("producer did not exit after RECORDING was cleared")
	}

	require.NotEmpty(t, received)
	for i, pkt := range received {
		require.Equal(t, uint64(i), pkt.Seq)
	}
}
