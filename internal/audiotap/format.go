package audiotap

import (
	"encoding/binary"
	"errors"
	"math"
)

// SampleFormat enumerates every device-native sample type the audio tap's
// normalization step accepts, per spec.md §4.1. malgo (the capture backend
// this module uses, see tap.go) only ever reports a device format in
// {U8,S16,S24,S32,F32} — the remaining six are implemented and tested
// directly against normalizeSample so the UnsupportedFormat error path and
// the full ten-entry contract spec.md describes are both exercised; see
// DESIGN.md's Open Question resolution for why the others are unreachable
// from the live device path.
type SampleFormat int

const (
	FormatS8 SampleFormat = iota
	FormatU8
	FormatS16
	FormatU16
	FormatS32
	FormatU32
	FormatS64
	FormatU64
	FormatF32
	FormatF64
)

// BytesPerSample returns the width, in bytes, of one sample of f.
func (f SampleFormat) BytesPerSample() int {
	switch f {
	case FormatS8, FormatU8:
		return 1
	case FormatS16, FormatU16:
		return 2
	case FormatS32, FormatU32, FormatF32:
		return 4
	case FormatS64, FormatU64, FormatF64:
		return 8
	default:
		return 0
	}
}

// ErrUnsupportedFormat is returned for a sample format outside the ten
// types spec.md §4.1 lists.
var ErrUnsupportedFormat = errors.New("audiotap: unsupported sample format")

// NormalizeSamples converts raw little-endian device PCM bytes into f32
// samples in [-1, 1], appending them to dst and returning the result.
func NormalizeSamples(dst []float32, raw []byte, format SampleFormat) ([]float32, error) {
	width := format.BytesPerSample()
	if width == 0 {
		return dst, ErrUnsupportedFormat
	}
	n := len(raw) / width
	for i := 0; i < n; i++ {
		b := raw[i*width : i*width+width]
		s, err := normalizeSample(b, format)
		if err != nil {
			return dst, err
		}
		dst = append(dst, s)
	}
	return dst, nil
}

func normalizeSample(b []byte, format SampleFormat) (float32, error) {
	switch format {
	case FormatS8:
		return float32(int8(b[0])) / 128, nil
	case FormatU8:
		return (float32(b[0]) - 128) / 128, nil
	case FormatS16:
		v := int16(binary.LittleEndian.Uint16(b))
		return float32(v) / 32768, nil
	case FormatU16:
		v := binary.LittleEndian.Uint16(b)
		return (float32(v) - 32768) / 32768, nil
	case FormatS32:
		v := int32(binary.LittleEndian.Uint32(b))
		return float32(float64(v) / 2147483648), nil
	case FormatU32:
		v := binary.LittleEndian.Uint32(b)
		return float32((float64(v) - 2147483648) / 2147483648), nil
	case FormatS64:
		v := int64(binary.LittleEndian.Uint64(b))
		return float32(float64(v) / 9223372036854775808), nil
	case FormatU64:
		v := binary.LittleEndian.Uint64(b)
		return float32((float64(v) - 9223372036854775808) / 9223372036854775808), nil
	case FormatF32:
		bits := binary.LittleEndian.Uint32(b)
		return math.Float32frombits(bits), nil
	case FormatF64:
		bits := binary.LittleEndian.Uint64(b)
		return float32(math.Float64frombits(bits)), nil
	default:
		return 0, ErrUnsupportedFormat
	}
}

// SelectOpusRate maps a device-native sample rate to the nearest
// Opus-accepted rate, per the table in spec.md §4.1.
func SelectOpusRate(deviceRate uint32) uint32 {
	switch {
	case deviceRate < 12000:
		return 8000
	case deviceRate < 16000:
		return 12000
	case deviceRate < 24000:
		return 16000
	case deviceRate < 48000:
		return 24000
	default:
		return 48000
	}
}

// EncodeChannels is the Opus channel layout: Stereo iff deviceChannels > 1.
type EncodeChannels uint16

const (
	Mono   EncodeChannels = 1
	Stereo EncodeChannels = 2
)

// SelectEncodeChannels implements the encode_channel rule in spec.md §4.1.
func SelectEncodeChannels(deviceChannels uint16) EncodeChannels {
	if deviceChannels > 1 {
		return Stereo
	}
	return Mono
}

// AudioConfig is the immutable per-session audio configuration described in
// spec.md §3.
type AudioConfig struct {
	SampleRate0    uint32
	SampleRate     uint32
	DeviceChannel  uint16
	EncodeChannel  EncodeChannels
}

// NewAudioConfig derives an AudioConfig from the device's reported native
// rate and channel count.
func NewAudioConfig(deviceRate uint32, deviceChannels uint16) AudioConfig {
	return AudioConfig{
		SampleRate0:   deviceRate,
		SampleRate:    SelectOpusRate(deviceRate),
		DeviceChannel: deviceChannels,
		EncodeChannel: SelectEncodeChannels(deviceChannels),
	}
}
