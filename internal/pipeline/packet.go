package pipeline

// AVPacket is the unit passed between the producer, the converter pool, and
// the consumer (spec.md §3). VideoData holds raw ARGB bytes before the
// converter stage runs and I420 plane-concatenated bytes after.
type AVPacket struct {
	Seq uint64
	Ms  uint64
	// Stride is VideoData's row byte stride. Before conversion this may
	// exceed width*4 (platforms that pad rows); after conversion to I420
	// it is unused (the converter emits tightly packed planes).
	Stride    int
	VideoData []byte
	AudioData []float32
}
