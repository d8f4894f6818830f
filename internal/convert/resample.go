package convert

// Resample linearly interpolates interleaved multi-channel audio from
// sampleRate0 to sampleRate, preserving channel count. Per spec.md §4.6 the
// output holds exactly floor(N * sampleRate / sampleRate0) frames where N is
// the input frame count (samples per channel). When the rates match, data is
// returned unchanged (spec.md §8 invariant 5).
func Resample(data []float32, sampleRate0, sampleRate uint32, channels uint16) []float32 {
	if sampleRate0 == sampleRate || len(data) == 0 {
		return data
	}

	ch := int(channels)
	inFrames := len(data) / ch
	outFrames := inFrames * int(sampleRate) / int(sampleRate0)
	if outFrames <= 0 {
		return nil
	}

	out := make([]float32, outFrames*ch)
	step := float64(sampleRate0) / float64(sampleRate)

	for i := 0; i < outFrames; i++ {
		srcPos := float64(i) * step
		i0 := int(srcPos)
		frac := float32(srcPos - float64(i0))
		i1 := i0 + 1
		if i1 >= inFrames {
			i1 = inFrames - 1
		}
		if i0 >= inFrames {
			i0 = inFrames - 1
		}
		for c := 0; c < ch; c++ {
			a := data[i0*ch+c]
			b := data[i1*ch+c]
			out[i*ch+c] = a + (b-a)*frac
		}
	}

	return out
}
