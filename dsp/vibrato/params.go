package vibrato

import (
	"math"

	"github.com/cwbudde/algo-vibrato/dsp/core"
)

// Params is the control snapshot read once per processing block.
type Params struct {
	Triggered    bool
	OnsetMs      float64 // envelope attack, 10..2000
	RateHz       float64 // LFO rate, 0.5..15
	PitchCents   float64 // vibrato depth, 0..200
	AmplitudePct float64 // tremolo depth, 0..100
	FormantPct   float64 // formant sweep depth, 0..100
	VariationPct float64 // drift amount, 0..100
}

// Range describes the legal values of one control.
//
// Skew follows the usual plugin convention: a normalized position p maps to
// Min + (Max-Min) * p^(1/Skew), so Skew < 1 spends more travel on low values.
type Range struct {
	Min      float64
	Max      float64
	Interval float64
	Skew     float64
	Default  float64
}

// Control ranges.
var (
	OnsetRange   = Range{Min: 10, Max: 2000, Interval: 1, Skew: 0.4, Default: 200}
	RateRange    = Range{Min: 0.5, Max: 15, Interval: 0.01, Skew: 0.7, Default: 5.5}
	PitchRange   = Range{Min: 0, Max: 200, Interval: 0.1, Skew: 1, Default: 50}
	PercentRange = Range{Min: 0, Max: 100, Interval: 0.1, Skew: 1, Default: 0}
)

// DefaultParams returns the untriggered default snapshot.
func DefaultParams() Params {
	return Params{
		OnsetMs:      OnsetRange.Default,
		RateHz:       RateRange.Default,
		PitchCents:   PitchRange.Default,
		AmplitudePct: PercentRange.Default,
		FormantPct:   PercentRange.Default,
		VariationPct: PercentRange.Default,
	}
}

// Clamped returns p with every field limited to its range. NaN fields take
// the range default.
func (p Params) Clamped() Params {
	p.OnsetMs = OnsetRange.Clamp(p.OnsetMs)
	p.RateHz = RateRange.Clamp(p.RateHz)
	p.PitchCents = PitchRange.Clamp(p.PitchCents)
	p.AmplitudePct = PercentRange.Clamp(p.AmplitudePct)
	p.FormantPct = PercentRange.Clamp(p.FormantPct)
	p.VariationPct = PercentRange.Clamp(p.VariationPct)
	return p
}

// Clamp limits v to [Min, Max]; NaN yields Default.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Default
	}
	return core.Clamp(v, r.Min, r.Max)
}

// Snap rounds v to the nearest Interval step above Min and clamps it.
func (r Range) Snap(v float64) float64 {
	v = r.Clamp(v)
	if r.Interval > 0 {
		v = r.Min + math.Round((v-r.Min)/r.Interval)*r.Interval
	}
	return core.Clamp(v, r.Min, r.Max)
}

// Normalize maps v to a position in [0, 1].
func (r Range) Normalize(v float64) float64 {
	if r.Max <= r.Min {
		return 0
	}
	p := (r.Clamp(v) - r.Min) / (r.Max - r.Min)
	if r.Skew > 0 && r.Skew != 1 && p > 0 {
		p = math.Pow(p, r.Skew)
	}
	return p
}

// Denormalize maps a position in [0, 1] back to a snapped value.
func (r Range) Denormalize(p float64) float64 {
	p = core.Clamp(p, 0, 1)
	if r.Skew > 0 && r.Skew != 1 && p > 0 {
		p = math.Exp(math.Log(p) / r.Skew)
	}
	return r.Snap(r.Min + (r.Max-r.Min)*p)
}
