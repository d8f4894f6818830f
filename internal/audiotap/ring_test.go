package audiotap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRing_PushPopRoundTrip(t *testing.T) {
	r := NewRing(8)
	n := r.Push([]float32{1, 2, 3})
	require.Equal(t, 3, n)
	require.Equal(t, 3, r.Len())

	dst := make([]float32, 3)
	got := r.Pop(dst)
	require.Equal(t, 3, got)
	require.Equal(t, []float32{1, 2, 3}, dst)
	require.Equal(t, 0, r.Len())
}

func TestRing_OverflowDrops(t *testing.T) {
	r := NewRing(4)
	n := r.Push([]float32{1, 2, 3, 4, 5, 6})
	require.Equal(t, 4, n)
	require.Equal(t, 4, r.Len())
}

func TestRing_PopEmptyReturnsZero(t *testing.T) {
	r := NewRing(4)
	dst := make([]float32, 2)
	require.Equal(t, 0, r.Pop(dst))
}

func TestRing_WrapsAround(t *testing.T) {
	r := NewRing(4)
	r.Push([]float32{1, 2, 3})
	out := make([]float32, 2)
	r.Pop(out)
	r.Push([]float32{4, 5, 6})

	dst := make([]float32, 4)
	got := r.Pop(dst)
	require.Equal(t, 4, got)
	require.Equal(t, []float32{3, 4, 5, 6}, dst)
}
