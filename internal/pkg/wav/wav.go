// Package wav decodes RIFF/WAVE PCM audio into interleaved 32-bit float
// samples. It is the audio differ's codec probe's sole concrete decoder: no
// audio container or codec library appears anywhere in the retrieval pack,
// so WAV (the one format decodable with only encoding/binary and a RIFF
// chunk walk) is what the audio differ can actually accept.
package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrNotWAV is returned when the content isn't a RIFF/WAVE container at all
// — the caller (audiodiff) turns this into differ.ErrUnsupported.
var ErrNotWAV = errors.New("wav: not a RIFF/WAVE file")

// Audio is a decoded PCM stream.
type Audio struct {
	SampleRate int
	Channels   int
	// Samples is interleaved per frame: Samples[frame*Channels+channel].
	Samples []float32
}

// Channel returns the de-interleaved samples for channel ch.
func (a *Audio) Channel(ch int) []float32 {
	frames := len(a.Samples) / a.Channels
	out := make([]float32, frames)
	for i := 0; i < frames; i++ {
		out[i] = a.Samples[i*a.Channels+ch]
	}
	return out
}

// Decode parses a RIFF/WAVE container, walking chunks until it has found
// both "fmt " and "data", and converts the PCM payload to float32 in
// [-1, 1]. It supports 8/16/24-bit integer PCM and 32-bit IEEE float.
func Decode(b []byte) (*Audio, error) {
	if len(b) < 12 || string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		return nil, ErrNotWAV
	}

	var (
		audioFormat   uint16
		channels      int
		sampleRate    int
		bitsPerSample int
		dataStart     int
		dataLen       int
		haveFmt       bool
		haveData      bool
	)

	pos := 12
	for pos+8 <= len(b) {
		id := string(b[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(b[pos+4 : pos+8]))
		body := pos + 8
		if body+size > len(b) {
			size = len(b) - body
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, errors.New("wav: fmt chunk too small")
			}
			audioFormat = binary.LittleEndian.Uint16(b[body : body+2])
			channels = int(binary.LittleEndian.Uint16(b[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(b[body+4 : body+8]))
			bitsPerSample = int(binary.LittleEndian.Uint16(b[body+14 : body+16]))
			haveFmt = true
		case "data":
			dataStart = body
			dataLen = size
			haveData = true
		}

		pos = body + size
		if size%2 == 1 {
			pos++ // chunks are word-aligned
		}
	}

	if !haveFmt || !haveData {
		return nil, errors.New("wav: missing fmt or data chunk")
	}
	if channels <= 0 || sampleRate <= 0 {
		return nil, errors.New("wav: invalid channel count or sample rate")
	}

	data := b[dataStart : dataStart+dataLen]
	samples, err := decodeSamples(audioFormat, bitsPerSample, data)
	if err != nil {
		return nil, err
	}

	return &Audio{SampleRate: sampleRate, Channels: channels, Samples: samples}, nil
}

const (
	formatPCM   = 1
	formatFloat = 3
)

func decodeSamples(format uint16, bits int, data []byte) ([]float32, error) {
	switch {
	case format == formatFloat && bits == 32:
		n := len(data) / 4
		out := make([]float32, n)
		for i := 0; i < n; i++ {
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
		}
		return out, nil
	case format == formatPCM && bits == 16:
		n := len(data) / 2
		out := make([]float32, n)
		for i := 0; i < n; i++ {
			v := int16(binary.LittleEndian.Uint16(data[i*2:]))
			out[i] = float32(v) / 32768
		}
		return out, nil
	case format == formatPCM && bits == 8:
		n := len(data)
		out := make([]float32, n)
		for i := 0; i < n; i++ {
			out[i] = (float32(data[i]) - 128) / 128
		}
		return out, nil
	case format == formatPCM && bits == 24:
		n := len(data) / 3
		out := make([]float32, n)
		for i := 0; i < n; i++ {
			v := int32(data[i*3]) | int32(data[i*3+1])<<8 | int32(data[i*3+2])<<16
			if v&0x800000 != 0 {
				v |= -(1 << 24)
			}
			out[i] = float32(v) / 8388608
		}
		return out, nil
	default:
		return nil, fmt.Errorf("wav: unsupported format %d / %d-bit", format, bits)
	}
}
