package convert

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRechannel_Identity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ch := uint16(rapid.IntRange(1, 8).Draw(t, "ch"))
		n := rapid.IntRange(1, 100).Draw(t, "n")
		data := make([]float32, n*int(ch))
		for i := range data {
			data[i] = rapid.Float32().Draw(t, "s")
		}

		out := Rechannel(data, 48000, 48000, ch, ch)
		require.Equal(t, data, out)
	})
}

func TestRechannel_OutputLengthDivisible(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := uint16(rapid.IntRange(1, 8).Draw(t, "in"))
		out := uint16(rapid.IntRange(1, 8).Draw(t, "out"))
		n := rapid.IntRange(1, 50).Draw(t, "n")
		data := make([]float32, n*int(in))

		result := Rechannel(data, 48000, 48000, in, out)
		require.Equal(t, 0, len(result)%int(out))
	})
}

func TestRechannel_RoundTripMonoBroadcast(t *testing.T) {
	data := []float32{1.0, 0.5, -0.25, 0.75}
	mono := Rechannel(data, 48000, 48000, 2, 1)
	stereo := Rechannel(mono, 48000, 48000, 1, 2)

	require.Len(t, stereo, len(mono)*2)
	for i := 0; i < len(mono); i++ {
		require.Equal(t, stereo[i*2], stereo[i*2+1])
	}
}

func TestRechannel_TruncatesPartialFrame(t *testing.T) {
	data := []float32{1, 2, 3} // 3 samples, stereo -> 1 full frame + 1 leftover
	out := Rechannel(data, 48000, 48000, 2, 1)
	require.Len(t, out, 1)
	require.InDelta(t, 1.5, out[0], 1e-6)
}
