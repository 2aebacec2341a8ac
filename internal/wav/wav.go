// Package wav reads and writes the RIFF/WAVE files used by the offline
// renderer: 32-bit float output, 32-bit float or 16-bit PCM input.
package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

const (
	formatPCM   = 1
	formatFloat = 3
	headerSize  = 44
)

// ErrFormat is returned for files the decoder does not understand.
var ErrFormat = errors.New("wav: unsupported format")

// Interleave packs planar channels into frame-interleaved float32 samples.
// The frame count is the length of the shortest channel.
func Interleave(channels [][]float64) []float32 {
	if len(channels) == 0 {
		return nil
	}
	frames := len(channels[0])
	for _, ch := range channels[1:] {
		frames = min(frames, len(ch))
	}

	out := make([]float32, frames*len(channels))
	for i := range frames {
		for c, ch := range channels {
			out[i*len(channels)+c] = float32(ch[i])
		}
	}
	return out
}

// EncodeFloat32LE encodes interleaved samples as a 32-bit float WAV file.
func EncodeFloat32LE(samples []float32, sampleRate, channels int) []byte {
	dataSize := len(samples) * 4
	byteRate := sampleRate * channels * 4
	blockAlign := channels * 4

	out := make([]byte, headerSize+dataSize)
	copy(out[0:], "RIFF")
	binary.LittleEndian.PutUint32(out[4:], uint32(36+dataSize))
	copy(out[8:], "WAVE")
	copy(out[12:], "fmt ")
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], formatFloat)
	binary.LittleEndian.PutUint16(out[22:], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:], 32)
	copy(out[36:], "data")
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[headerSize+i*4:], math.Float32bits(s))
	}
	return out
}

// Write encodes planar channels to w as a 32-bit float WAV file.
func Write(w io.Writer, channels [][]float64, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("wav sample rate must be > 0: %d", sampleRate)
	}
	if len(channels) == 0 {
		return fmt.Errorf("wav channel count must be > 0: %d", len(channels))
	}
	_, err := w.Write(EncodeFloat32LE(Interleave(channels), sampleRate, len(channels)))
	return err
}

// File is a decoded WAV file with planar samples in [-1, 1].
type File struct {
	SampleRate int
	Channels   [][]float64
}

// Frames returns the number of samples per channel.
func (f *File) Frames() int {
	if len(f.Channels) == 0 {
		return 0
	}
	return len(f.Channels[0])
}

// Decode parses a WAV file holding 32-bit float or 16-bit PCM samples.
// Unknown chunks are skipped.
func Decode(data []byte) (*File, error) {
	if len(data) < 12 || !bytes.Equal(data[0:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		return nil, fmt.Errorf("%w: missing RIFF/WAVE header", ErrFormat)
	}

	var (
		format, numCh, bits uint16
		sampleRate          uint32
		haveFmt             bool
	)

	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4:]))
		body := pos + 8
		if size < 0 || body+size > len(data) {
			return nil, fmt.Errorf("%w: chunk %q overruns file", ErrFormat, id)
		}
		chunk := data[body : body+size]

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, fmt.Errorf("%w: short fmt chunk", ErrFormat)
			}
			format = binary.LittleEndian.Uint16(chunk[0:])
			numCh = binary.LittleEndian.Uint16(chunk[2:])
			sampleRate = binary.LittleEndian.Uint32(chunk[4:])
			bits = binary.LittleEndian.Uint16(chunk[14:])
			haveFmt = true
		case "data":
			if !haveFmt {
				return nil, fmt.Errorf("%w: data before fmt", ErrFormat)
			}
			return decodeSamples(chunk, format, int(numCh), int(sampleRate), int(bits))
		}

		pos = body + size + size&1
	}
	return nil, fmt.Errorf("%w: no data chunk", ErrFormat)
}

func decodeSamples(chunk []byte, format uint16, numCh, sampleRate, bits int) (*File, error) {
	if numCh <= 0 || sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrFormat, numCh, sampleRate)
	}

	var (
		width  int
		sample func([]byte) float64
	)
	switch {
	case format == formatFloat && bits == 32:
		width = 4
		sample = func(b []byte) float64 {
			return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
		}
	case format == formatPCM && bits == 16:
		width = 2
		sample = func(b []byte) float64 {
			return float64(int16(binary.LittleEndian.Uint16(b))) / 32768
		}
	default:
		return nil, fmt.Errorf("%w: format %d with %d bits", ErrFormat, format, bits)
	}

	frames := len(chunk) / (width * numCh)
	f := &File{SampleRate: sampleRate, Channels: make([][]float64, numCh)}
	for c := range f.Channels {
		f.Channels[c] = make([]float64, frames)
	}
	for i := range frames {
		for c := range numCh {
			off := (i*numCh + c) * width
			f.Channels[c][i] = sample(chunk[off : off+width])
		}
	}
	return f, nil
}
