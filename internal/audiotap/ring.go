package audiotap

import "sync/atomic"

// Ring is a lock-free single-producer/single-consumer float32 ring buffer.
// The audio callback (producer) calls Push; the pipeline's producer loop
// (consumer) calls Pop. Per spec.md §4.1/§5, capacity is one second of audio
// (sampleRate * deviceChannels floats) and overflow silently drops samples
// rather than blocking the OS audio callback.
type Ring struct {
	buf        []float32
	head, tail atomic.Uint64 // head: next write index: tail: next read index
}

// NewRing allocates a ring buffer holding capacity float32 samples.
func NewRing(capacity int) *Ring {
	return &Ring{buf: make([]float32, capacity)}
}

// Push writes as many leading samples of data as fit in the free space and
// silently drops the rest. Returns the number of samples written.
func (r *Ring) Push(data []float32) int {
	cap64 := uint64(len(r.buf))
	head := r.head.Load()
	tail := r.tail.Load()
	free := cap64 - (head - tail)

	n := uint64(len(data))
	if n > free {
		n = free
	}
	for i := uint64(0); i < n; i++ {
		r.buf[(head+i)%cap64] = data[i]
	}
	r.head.Store(head + n)
	return int(n)
}

// Pop drains up to len(dst) available samples into dst, returning the count
// copied. It never blocks — callers that need a minimum quantum busy-wait by
// calling Pop in a loop (spec.md §4.2 step 2).
func (r *Ring) Pop(dst []float32) int {
	cap64 := uint64(len(r.buf))
	head := r.head.Load()
	tail := r.tail.Load()
	avail := head - tail

	n := uint64(len(dst))
	if n > avail {
		n = avail
	}
	for i := uint64(0); i < n; i++ {
		dst[i] = r.buf[(tail+i)%cap64]
	}
	r.tail.Store(tail + n)
	return int(n)
}

// Len reports the number of samples currently buffered.
func (r *Ring) Len() int {
	return int(r.head.Load() - r.tail.Load())
}
