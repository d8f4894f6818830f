package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIsAudioKeyframe(t *testing.T) {
	require.True(t, isAudioKeyframe(0))
	require.True(t, isAudioKeyframe(60))
	require.True(t, isAudioKeyframe(120))
	require.False(t, isAudioKeyframe(1))
	require.False(t, isAudioKeyframe(59))
	require.False(t, isAudioKeyframe(61))
}

func TestOutputFilename(t *testing.T) {
	ts := time.Date(2026, 3, 5, 14, 30, 7, 0, time.UTC)
	require.Equal(t, "2026-03-05 14:30:07.webm", outputFilename(ts))
}

func TestOutputFilename_ConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("TEST", 3*3600)
	ts := time.Date(2026, 3, 5, 17, 30, 7, 0, loc)
	require.Equal(t, "2026-03-05 14:30:07.webm", outputFilename(ts))
}

// TestDrain_ConsumesUntilCloseWithoutBlockingSenders is spec.md §7's fatal
// error unwind path: once the consumer gives up on a packet, whatever is
// still in flight from upstream must be able to land without its sender
// blocking forever.
func TestDrain_ConsumesUntilCloseWithoutBlockingSenders(t *testing.T) {
	in := make(chan AVPacket)

	done := make(chan struct{})
	go func() {
		drain(in)
		close(done)
	}()

	sent := make(chan struct{})
	go func() {
		for i := uint64(0); i < 10; i++ {
			in <- AVPacket{Seq: i}
		}
		close(in)
		close(sent)
	}()

	select {
	case <-sent:
	case <-time.After(2 * time.Second):
		t.Fatal("senders blocked: drain did not keep reading")
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("drain did not return after in closed")
	}
}
