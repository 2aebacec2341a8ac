package svf

import (
	"math"

	"github.com/cwbudde/algo-vibrato/dsp/core"
)

const (
	// MinCutoffHz is the lowest cutoff SetParams accepts.
	MinCutoffHz = 80.0
	// NyquistSafetyRatio caps the cutoff as a fraction of the sample rate.
	NyquistSafetyRatio = 0.48

	minQ = 1e-3
)

// Filter is a two-state trapezoidal SVF.
//
// The zero value has zero coefficients and outputs silence until SetParams
// is called.
type Filter struct {
	s1, s2     float64
	a1, a2, a3 float64
	k          float64
}

// SetParams derives coefficients for cutoffHz and q at sampleRate.
// cutoffHz is clamped to [MinCutoffHz, NyquistSafetyRatio*sampleRate] and
// prewarped with g = tan(pi*fc/sampleRate).
func (f *Filter) SetParams(cutoffHz, q, sampleRate float64) {
	maxFreq := sampleRate * NyquistSafetyRatio
	fc := core.Clamp(cutoffHz, MinCutoffHz, maxFreq)
	g := math.Tan(math.Pi * fc / sampleRate)

	f.k = 1 / math.Max(minQ, q)
	f.a1 = 1 / (1 + g*(g+f.k))
	f.a2 = g * f.a1
	f.a3 = g * f.a2
}

// ProcessBandpass filters one sample and returns the band-pass output.
func (f *Filter) ProcessBandpass(x float64) float64 {
	v1, _ := f.tick(x)
	return v1
}

// Process filters one sample and returns the low-pass, band-pass and
// high-pass outputs.
func (f *Filter) Process(x float64) (low, band, high float64) {
	v1, v2 := f.tick(x)
	return v2, v1, x - f.k*v1 - v2
}

// Coefficients returns the derived a1, a2, a3 coefficients.
func (f *Filter) Coefficients() (a1, a2, a3 float64) {
	return f.a1, f.a2, f.a3
}

// ResetState clears the integrator state and keeps the coefficients.
func (f *Filter) ResetState() {
	f.s1 = 0
	f.s2 = 0
}

func (f *Filter) tick(x float64) (v1, v2 float64) {
	v3 := x - f.s2
	v1 = f.a1*f.s1 + f.a2*v3
	v2 = f.s2 + f.a2*f.s1 + f.a3*v3
	f.s1 = core.FlushDenormals(2*v1 - f.s1)
	f.s2 = core.FlushDenormals(2*v2 - f.s2)
	return v1, v2
}
