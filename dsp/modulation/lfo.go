package modulation

import (
	"math"

	"github.com/cwbudde/algo-vibrato/dsp/core"
)

const (
	// MinRateHz is the floor applied to the drifted LFO rate.
	MinRateHz = 0.01

	rateDriftScale  = 0.25
	shapeDriftScale = 0.15
)

// EffectiveRate scales rateHz by the drift and floors the result at MinRateHz.
// drift is the smoothed variation multiplied by the variation amount.
func EffectiveRate(rateHz, drift float64) float64 {
	return math.Max(MinRateHz, rateHz*(1+drift*rateDriftScale))
}

// LFO is a unit-amplitude sine oscillator with phase in [0, 1).
type LFO struct {
	phase      float64
	sampleRate float64
}

// NewLFO returns an oscillator at phase zero.
func NewLFO(sampleRate float64) LFO {
	return LFO{sampleRate: sampleRate}
}

// SetSampleRate updates the sample rate used for phase increments.
func (l *LFO) SetSampleRate(sampleRate float64) {
	l.sampleRate = sampleRate
}

// Next advances the phase by rateHz/sampleRate, wraps it by subtraction and
// returns the drift-skewed waveform, clamped to [-1, 1].
func (l *LFO) Next(rateHz, drift float64) float64 {
	l.phase += rateHz / l.sampleRate
	for l.phase >= 1 {
		l.phase--
	}
	if l.phase < 0 {
		l.phase = 0
	}

	value := math.Sin(2 * math.Pi * l.phase)
	return core.Clamp(value+drift*shapeDriftScale, -1, 1)
}

// Phase returns the current phase in [0, 1).
func (l *LFO) Phase() float64 { return l.phase }

// Reset rewinds the oscillator to phase zero.
func (l *LFO) Reset() { l.phase = 0 }
