// Package audiotap opens the OS default audio input device and bridges its
// native format to the pipeline's ring buffer, per spec.md §4.1.
package audiotap

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gen2brain/malgo"
)

// ErrAudioUnavailable is returned when no input device is available at tap
// open time (spec.md §7's AudioUnavailable).
var ErrAudioUnavailable = fmt.Errorf("audiotap: no default input device available")

// Tap owns the OS audio input device and the SPSC ring buffer the
// pipeline's producer drains from.
type Tap struct {
	ctx    *malgo.AllocatedContext
	device *malgo.Device
	ring   *Ring
	Config AudioConfig

	mu     sync.Mutex // guards scratch, per spec.md §5
	scratch []float32
}

// Open starts capturing from the OS default input device. The returned Tap
// must be closed with Close when the session ends.
func Open() (*Tap, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(string) {})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAudioUnavailable, err)
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatF32
	deviceConfig.Capture.Channels = 0 // device-native channel count
	deviceConfig.SampleRate = 0       // device-native sample rate

	probe, err := malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{})
	if err != nil {
		ctx.Uninit()
		ctx.Free()
		return nil, fmt.Errorf("%w: %v", ErrAudioUnavailable, err)
	}
	deviceRate := probe.SampleRate()
	deviceChannels := uint16(probe.CaptureChannels())
	if deviceChannels == 0 {
		deviceChannels = 2
	}
	probe.Uninit()

	cfg := NewAudioConfig(deviceRate, deviceChannels)
	ring := NewRing(int(cfg.SampleRate) * int(cfg.DeviceChannel))

	t := &Tap{ctx: ctx, ring: ring, Config: cfg}

	frameSize10ms := deviceRate / 100
	quantum := int(frameSize10ms) * int(deviceChannels)

	onData := func(_ []byte, input []byte, _ uint32) {
		samples, err := NormalizeSamples(nil, input, FormatF32)
		if err != nil {
			log.Warn("audiotap: dropping unnormalizable callback buffer", "err", err)
			return
		}
		t.mu.Lock()
		t.scratch = append(t.scratch, samples...)
		for len(t.scratch) >= quantum {
			n := t.ring.Push(t.scratch[:quantum])
			if n < quantum {
				log.Warn("audiotap: ring buffer overflow, dropped samples", "dropped", quantum-n)
			}
			t.scratch = t.scratch[quantum:]
		}
		t.mu.Unlock()
	}

	deviceConfig.SampleRate = deviceRate
	deviceConfig.Capture.Channels = uint32(deviceChannels)
	device, err := malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: onData,
	})
	if err != nil {
		ctx.Uninit()
		ctx.Free()
		return nil, fmt.Errorf("%w: %v", ErrAudioUnavailable, err)
	}
	if err := device.Start(); err != nil {
		device.Uninit()
		ctx.Uninit()
		ctx.Free()
		return nil, fmt.Errorf("%w: %v", ErrAudioUnavailable, err)
	}
	t.device = device

	return t, nil
}

// Drain busy-waits (no sleep) until at least min samples are available, then
// copies exactly that many into a freshly allocated slice. This trades
// latency for completeness, per spec.md §4.2 step 2 and §5.
func (t *Tap) Drain(min int) []float32 {
	out := make([]float32, min)
	filled := 0
	for filled < min {
		filled += t.ring.Pop(out[filled:])
	}
	return out
}

// Close stops the device and releases the malgo context.
func (t *Tap) Close() {
	if t.device != nil {
		t.device.Uninit()
	}
	if t.ctx != nil {
		t.ctx.Uninit()
		t.ctx.Free()
	}
}
