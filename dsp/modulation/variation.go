package modulation

import "math/rand/v2"

const (
	// VariationSeed seeds the drift generator so runs are reproducible.
	VariationSeed = 42
	// VariationPeriodSeconds is the interval between new random targets.
	VariationPeriodSeconds = 0.04
	// VariationSmoothing is the per-sample one-pole coefficient toward the target.
	VariationSmoothing = 0.002
)

// Variation is a slow, bounded random drift in [-1, 1].
//
// Every VariationPeriodSeconds it draws a uniform target from a PCG source
// seeded with VariationSeed; between draws the output glides toward the
// target. The generator is stored by value, so copies never share state.
type Variation struct {
	src       rand.PCG
	smoothed  float64
	target    float64
	countdown int
	period    int
}

// NewVariation returns a drift generator for sampleRate.
func NewVariation(sampleRate float64) Variation {
	var v Variation
	v.SetSampleRate(sampleRate)
	v.Reset()
	return v
}

// SetSampleRate updates the redraw period.
func (v *Variation) SetSampleRate(sampleRate float64) {
	v.period = int(sampleRate * VariationPeriodSeconds)
}

// Next advances the drift by one sample. When active is false the output is
// forced to zero on every call. The countdown starts at zero, so the first
// active sample always draws a fresh target.
func (v *Variation) Next(active bool) float64 {
	if !active {
		v.smoothed = 0
		return 0
	}

	v.countdown--
	if v.countdown <= 0 {
		v.target = v.uniform()
		v.countdown = v.period
	}
	v.smoothed += (v.target - v.smoothed) * VariationSmoothing
	return v.smoothed
}

// Value returns the current smoothed drift.
func (v *Variation) Value() float64 { return v.smoothed }

// Target returns the current random target.
func (v *Variation) Target() float64 { return v.target }

// Reset zeroes the drift and reseeds the source.
func (v *Variation) Reset() {
	v.src.Seed(VariationSeed, 0)
	v.smoothed = 0
	v.target = 0
	v.countdown = 0
}

// uniform returns a value in [-1, 1) with 53 bits of precision.
func (v *Variation) uniform() float64 {
	u := float64(v.src.Uint64()<<11>>11) / (1 << 53)
	return u*2 - 1
}
