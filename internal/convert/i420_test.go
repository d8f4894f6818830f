package convert

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestArgbToI420_BlackPixel(t *testing.T) {
	// 2x2 frame, all pixels B=G=R=0, A=255 (BGRA byte order).
	src := make([]byte, 2*2*4)
	for i := 0; i < len(src); i += 4 {
		src[i+3] = 255
	}

	out := ArgbToI420(2, 2, 2*4, src)
	require.Len(t, out, 2*2+2*1*1)
	require.Equal(t, []byte{16, 16, 16, 16}, out[:4])
	require.Equal(t, byte(128), out[4])
	require.Equal(t, byte(128), out[5])
}

func TestArgbToI420_WhitePixel(t *testing.T) {
	src := make([]byte, 2*2*4)
	for i := 0; i < len(src); i += 4 {
		src[i] = 255
		src[i+1] = 255
		src[i+2] = 255
		src[i+3] = 255
	}

	out := ArgbToI420(2, 2, 2*4, src)
	require.Len(t, out, 6)
	for _, y := range out[:4] {
		require.InDelta(t, 235, int(y), 1)
	}
	require.InDelta(t, 128, int(out[4]), 1)
	require.InDelta(t, 128, int(out[5]), 1)
}

// TestArgbToI420_PaddedStride covers spec.md §9's resolved open question:
// a stride wider than width*4 (simulating a platform that pads rows) must
// not bleed padding bytes into the converted output.
func TestArgbToI420_PaddedStride(t *testing.T) {
	const w, h, pad = 2, 2, 16
	stride := w*4 + pad

	src := make([]byte, stride*h)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			o := row*stride + col*4
			src[o+3] = 255 // black, opaque
		}
		for i := w * 4; i < stride; i++ {
			src[row*stride+i] = 0xAA // padding garbage
		}
	}

	out := ArgbToI420(w, h, stride, src)
	require.Equal(t, []byte{16, 16, 16, 16}, out[:4])
}

func TestArgbToI420_OutputLength(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.IntRange(1, 40).Draw(t, "w") * 2
		h := rapid.IntRange(1, 40).Draw(t, "h") * 2
		src := make([]byte, w*h*4)
		for i := range src {
			src[i] = byte(rapid.IntRange(0, 255).Draw(t, "b"))
		}

		out := ArgbToI420(w, h, w*4, src)
		require.Equal(t, w*h+2*(w/2)*(h/2), len(out))
		for _, b := range out {
			require.True(t, b >= 0 && b <= 255)
		}
	})
}

func TestArgbToI420_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.IntRange(1, 20).Draw(t, "w") * 2
		h := rapid.IntRange(1, 20).Draw(t, "h") * 2
		src := make([]byte, w*h*4)
		for i := range src {
			src[i] = byte(rapid.IntRange(0, 255).Draw(t, "b"))
		}

		a := ArgbToI420(w, h, w*4, src)
		b := ArgbToI420(w, h, w*4, src)
		require.Equal(t, a, b)
	})
}
