package convert

// Rechannel remaps interleaved audio from inChan to outChan channels via a
// fixed mixing matrix, one entry per (inChan, outChan) pair in 1..8. Per
// spec.md §4.6: in==out is identity, downmix averages, upmix
// duplicates/zero-fills following an industry-standard layout. Trailing
// samples that don't fill a complete input frame are truncated.
func Rechannel(data []float32, inHz, outHz uint32, inChan, outChan uint16) []float32 {
	if inChan == outChan {
		return data
	}

	in := int(inChan)
	out := int(outChan)
	frames := len(data) / in
	data = data[:frames*in]

	weights := rechannelMatrix(in, out)

	result := make([]float32, frames*out)
	for f := 0; f < frames; f++ {
		srcBase := f * in
		dstBase := f * out
		for o := 0; o < out; o++ {
			var sum float32
			for i := 0; i < in; i++ {
				sum += data[srcBase+i] * weights[o][i]
			}
			result[dstBase+o] = sum
		}
	}
	return result
}

// rechannelMatrix builds the fixed (in,out) mixing matrix for one pair, per
// the layout rule in spec.md §4.6:
//   - mono input broadcasts to every output channel (duplicate upmix)
//   - mono output averages every input channel (downmix)
//   - otherwise, downmix (out < in) averages input channels assigned
//     round-robin to each output channel
//   - otherwise, upmix (out > in) copies the first in output channels
//     one-to-one and zero-fills the rest (surround/LFE convention)
func rechannelMatrix(in, out int) [][]float32 {
	m := make([][]float32, out)
	for o := range m {
		m[o] = make([]float32, in)
	}

	switch {
	case in == 1:
		for o := 0; o < out; o++ {
			m[o][0] = 1
		}
	case out == 1:
		w := float32(1) / float32(in)
		for i := 0; i < in; i++ {
			m[0][i] = w
		}
	case out < in:
		counts := make([]int, out)
		for i := 0; i < in; i++ {
			counts[i%out]++
		}
		for i := 0; i < in; i++ {
			o := i % out
			m[o][i] = 1 / float32(counts[o])
		}
	default: // out > in, neither is 1
		for o := 0; o < in; o++ {
			m[o][o] = 1
		}
	}
	return m
}
