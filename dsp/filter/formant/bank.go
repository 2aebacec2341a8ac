package formant

import (
	"math"

	"github.com/cwbudde/algo-vibrato/dsp/filter/svf"
)

const (
	// NumFormants is the number of parallel band-pass filters per channel.
	NumFormants = 3
	// MaxChannels is the number of channels a Bank filters.
	MaxChannels = 2
	// UpdateInterval is the number of active samples between coefficient refreshes.
	UpdateInterval = 32
	// Q is the quality factor of every formant filter.
	Q = 2.0

	sweepDepth  = 0.4
	minFreqMult = 0.3
	mixScale    = 0.8
)

// BaseFrequencies are the unmodulated formant centers in Hz.
var BaseFrequencies = [NumFormants]float64{600, 1500, 2800}

// Bank holds the formant filters for every channel plus the refresh counter.
// It is a value type with no references, so copies are fully independent.
type Bank struct {
	filters    [MaxChannels][NumFormants]svf.Filter
	counter    int
	sampleRate float64
}

// NewBank returns a bank for sampleRate with zeroed filters.
func NewBank(sampleRate float64) Bank {
	return Bank{sampleRate: sampleRate}
}

// SetSampleRate updates the rate used for the next coefficient refresh.
func (b *Bank) SetSampleRate(sampleRate float64) {
	b.sampleRate = sampleRate
}

// Frequencies returns the swept formant centers for the given LFO value and
// depth (formant amount times envelope).
func Frequencies(lfo, depth float64) [NumFormants]float64 {
	mult := math.Max(minFreqMult, 1+lfo*depth*sweepDepth)

	var out [NumFormants]float64
	for f, base := range BaseFrequencies {
		out[f] = base * mult
	}
	return out
}

// MixGain returns the wet gain applied to the summed band-pass outputs.
func MixGain(depth float64) float64 {
	return depth * mixScale
}

// Tick counts one active sample and refreshes the coefficients of every
// channel when UpdateInterval samples have elapsed. It reports whether a
// refresh happened.
func (b *Bank) Tick(lfo, depth float64) bool {
	b.counter++
	if b.counter < UpdateInterval {
		return false
	}
	b.counter = 0

	freqs := Frequencies(lfo, depth)
	for ch := range b.filters {
		for f := range b.filters[ch] {
			b.filters[ch][f].SetParams(freqs[f], Q, b.sampleRate)
		}
	}
	return true
}

// Process runs x through the formant filters of channel ch and returns the
// sum of their band-pass outputs.
func (b *Bank) Process(ch int, x float64) float64 {
	sum := 0.0
	for f := range b.filters[ch] {
		sum += b.filters[ch][f].ProcessBandpass(x)
	}
	return sum
}

// Reset zeroes every filter, coefficients included, and restarts the
// refresh counter.
func (b *Bank) Reset() {
	*b = Bank{sampleRate: b.sampleRate}
}
