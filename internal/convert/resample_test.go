package convert

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestResample_Identity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 500).Draw(t, "n")
		rate := uint32(rapid.IntRange(8000, 48000).Draw(t, "rate"))
		ch := uint16(rapid.IntRange(1, 8).Draw(t, "ch"))
		data := make([]float32, n*int(ch))
		for i := range data {
			data[i] = rapid.Float32().Draw(t, "s")
		}

		out := Resample(data, rate, rate, ch)
		require.Equal(t, data, out)
	})
}

func TestResample_ConstantSignalDownsample(t *testing.T) {
	data := make([]float32, 960)
	for i := range data {
		data[i] = 1.0
	}

	out := Resample(data, 48000, 24000, 2)
	require.Len(t, out, 480)
	for _, s := range out {
		require.InDelta(t, 1.0, s, 1e-6)
	}
}

func TestResample_Length(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ch := uint16(rapid.IntRange(1, 2).Draw(t, "ch"))
		frames := rapid.IntRange(10, 2000).Draw(t, "frames")
		r0 := uint32(rapid.IntRange(8000, 48000).Draw(t, "r0"))
		r1 := uint32(rapid.IntRange(8000, 48000).Draw(t, "r1"))
		data := make([]float32, frames*int(ch))

		out := Resample(data, r0, r1, ch)
		want := frames * int(r1) / int(r0)
		require.Equal(t, want*int(ch), len(out))
	})
}
