package pipeline

import (
	"sync"

	"screenrec/internal/audiotap"
	"screenrec/internal/convert"
)

// converterPool runs N stateless workers that each receive raw AVPackets
// from in and emit converted ones to out, per spec.md §4.3. Workers do not
// coordinate with each other; the consumer's reorder buffer restores seq
// order downstream.
type converterPool struct {
	n      int
	width  int
	height int
	audio  audiotap.AudioConfig
}

func (c *converterPool) run(in <-chan AVPacket, out *unboundedQueue) {
	var wg sync.WaitGroup
	wg.Add(c.n)
	for i := 0; i < c.n; i++ {
		go func() {
			defer wg.Done()
			c.worker(in, out)
		}()
	}

	// Closed once every worker has drained `in`, which only happens after
	// the producer closes it — the converter pool's only termination
	// signal (spec.md §4.3 step 1).
	go func() {
		wg.Wait()
		out.Close()
	}()
}

func (c *converterPool) worker(in <-chan AVPacket, out *unboundedQueue) {
	for pkt := range in {
		i420 := convert.ArgbToI420(c.width, c.height, pkt.Stride, pkt.VideoData)

		audioData := pkt.AudioData
		if c.audio.SampleRate0 != c.audio.SampleRate {
			audioData = convert.Resample(audioData, c.audio.SampleRate0, c.audio.SampleRate, c.audio.DeviceChannel)
		}
		if c.audio.DeviceChannel != uint16(c.audio.EncodeChannel) {
			audioData = convert.Rechannel(audioData, c.audio.SampleRate, c.audio.SampleRate, c.audio.DeviceChannel, uint16(c.audio.EncodeChannel))
		}

		out.Send(AVPacket{Seq: pkt.Seq, Ms: pkt.Ms, VideoData: i420, AudioData: audioData})
	}
}
