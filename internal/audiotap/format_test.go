package audiotap

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectOpusRate(t *testing.T) {
	cases := []struct {
		in   uint32
		want uint32
	}{
		{8000, 8000},
		{11999, 8000},
		{12000, 12000},
		{15999, 12000},
		{16000, 16000},
		{23999, 16000},
		{24000, 24000},
		{44100, 24000},
		{47999, 24000},
		{48000, 48000},
		{96000, 48000},
	}
	for _, c := range cases {
		require.Equal(t, c.want, SelectOpusRate(c.in), "rate %d", c.in)
	}
}

func TestSelectEncodeChannels(t *testing.T) {
	require.Equal(t, Mono, SelectEncodeChannels(1))
	require.Equal(t, Stereo, SelectEncodeChannels(2))
	require.Equal(t, Stereo, SelectEncodeChannels(6))
}

func TestNormalizeSamples_AllFormatsInRange(t *testing.T) {
	formats := []SampleFormat{
		FormatS8, FormatU8, FormatS16, FormatU16,
		FormatS32, FormatU32, FormatS64, FormatU64,
		FormatF32, FormatF64,
	}
	for _, f := range formats {
		width := f.BytesPerSample()
		raw := make([]byte, width*4)
		for i := range raw {
			raw[i] = 0xFF
		}
		samples, err := NormalizeSamples(nil, raw, f)
		require.NoError(t, err)
		for _, s := range samples {
			require.GreaterOrEqual(t, s, float32(-1.0))
			require.LessOrEqual(t, s, float32(1.0))
		}
	}
}

func TestNormalizeSamples_F32PassThrough(t *testing.T) {
	raw := make([]byte, 4)
	binary.LittleEndian.PutUint32(raw, math.Float32bits(0.5))
	samples, err := NormalizeSamples(nil, raw, FormatF32)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	require.InDelta(t, 0.5, samples[0], 1e-6)
}

func TestNormalizeSamples_UnsupportedWidth(t *testing.T) {
	_, err := NormalizeSamples(nil, []byte{1, 2, 3}, SampleFormat(99))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}
