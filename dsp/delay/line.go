package delay

import (
	"math"

	"github.com/cwbudde/algo-vibrato/dsp/core"
	"github.com/cwbudde/algo-vibrato/dsp/interp"
)

const (
	// MaxChannels is the number of channels a Line stores.
	MaxChannels = 2
	// Size is the per-channel buffer length in samples.
	Size = 4096
	// MinDelay is the smallest readable delay in samples.
	MinDelay = 2.0
	// MaxDelay is the largest readable delay in samples.
	MaxDelay = float64(Size - 4)

	mask = Size - 1
)

// Taps locates the four interpolation points for one fractional read.
type Taps struct {
	// Index holds the buffer positions of x[-1], x[0], x[1], x[2].
	Index [4]int
	// Frac is the fractional position between Index[1] and Index[2].
	Frac float64
}

// Line is a multi-channel circular delay line with a shared write head.
// The storage is a fixed array, so a Line never allocates after creation.
type Line struct {
	buffer   [MaxChannels][Size]float64
	writePos int
}

// New returns a zeroed delay line.
func New() *Line {
	return &Line{}
}

// Len returns the per-channel buffer size.
func (d *Line) Len() int {
	return Size
}

// WritePos returns the index the next Write will store into.
func (d *Line) WritePos() int {
	return d.writePos
}

// Write stores sample for channel ch at the current write head without
// advancing it.
func (d *Line) Write(ch int, sample float64) {
	d.buffer[ch][d.writePos] = sample
}

// Advance moves the shared write head by one sample.
func (d *Line) Advance() {
	d.writePos = (d.writePos + 1) & mask
}

// Read reads channel ch at an integer delay relative to the write head.
func (d *Line) Read(ch, delay int) float64 {
	return d.buffer[ch][(d.writePos-delay)&mask]
}

// ReadFractional reads channel ch with cubic Hermite interpolation.
// delay is clamped to [MinDelay, MaxDelay].
func (d *Line) ReadFractional(ch int, delay float64) float64 {
	taps := ReadTaps(d.writePos, delay)
	buf := &d.buffer[ch]

	return interp.Hermite4(taps.Frac,
		buf[taps.Index[0]],
		buf[taps.Index[1]],
		buf[taps.Index[2]],
		buf[taps.Index[3]],
	)
}

// Reset clears all channels and rewinds the write head.
func (d *Line) Reset() {
	for ch := range d.buffer {
		clear(d.buffer[ch][:])
	}
	d.writePos = 0
}

// ClampDelay limits delay to [MinDelay, MaxDelay]. NaN maps to MinDelay.
func ClampDelay(delay float64) float64 {
	if math.IsNaN(delay) {
		return MinDelay
	}
	return core.Clamp(delay, MinDelay, MaxDelay)
}

// ReadTaps computes the tap indices and fraction for reading delay samples
// behind writePos. The delay is clamped first and every index is masked,
// so the result always lies in [0, Size).
func ReadTaps(writePos int, delay float64) Taps {
	delay = ClampDelay(delay)

	readPos := float64(writePos&mask) - delay
	for readPos < 0 {
		readPos += Size
	}

	idx := int(readPos)
	frac := readPos - float64(idx)

	return Taps{
		Index: [4]int{
			(idx - 1) & mask,
			idx & mask,
			(idx + 1) & mask,
			(idx + 2) & mask,
		},
		Frac: frac,
	}
}
