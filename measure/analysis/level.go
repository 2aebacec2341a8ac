package analysis

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/algo-vibrato/dsp/core"
)

// RMS returns the root-mean-square level of x, or 0 for an empty slice.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sq := make([]float64, len(x))
	vecmath.MulBlock(sq, x, x)

	sum := 0.0
	for _, v := range sq {
		sum += v
	}
	return math.Sqrt(sum / float64(len(x)))
}

// Peak returns the largest absolute sample value.
func Peak(x []float64) float64 {
	peak := 0.0
	for _, v := range x {
		peak = math.Max(peak, math.Abs(v))
	}
	return peak
}

// GainDB returns the RMS level change from in to out in decibels.
// Silent inputs report 0.
func GainDB(in, out []float64) float64 {
	ref := RMS(in)
	if ref == 0 {
		return 0
	}
	return core.LinearToDB(RMS(out) / ref)
}

// CrestFactor returns Peak/RMS, or 0 for silence.
func CrestFactor(x []float64) float64 {
	r := RMS(x)
	if r == 0 {
		return 0
	}
	return Peak(x) / r
}
