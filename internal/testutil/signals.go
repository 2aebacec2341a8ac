package testutil

import (
	"math"
	"math/rand/v2"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed uint64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewPCG(seed, 0))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Ramp generates start, start+step, start+2*step, ...
func Ramp(start, step float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Channels returns n independent copies of src, ready for in-place processing.
func Channels(src []float64, n int) [][]float64 {
	out := make([][]float64, n)
	for ch := range out {
		out[ch] = make([]float64, len(src))
		copy(out[ch], src)
	}
	return out
}

// Delayed returns src shifted right by delay samples with zeros shifted in.
func Delayed(src []float64, delay int) []float64 {
	out := make([]float64, len(src))
	if delay < len(src) {
		copy(out[delay:], src[:len(src)-delay])
	}
	return out
}
