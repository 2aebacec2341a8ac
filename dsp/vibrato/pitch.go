package vibrato

import "math"

const pitchDriftScale = 0.15

// ModulationAmplitude returns the peak delay excursion in samples that makes
// a sinusoidal delay sweep at rateHz bend the pitch by pitchCents.
//
// The instantaneous frequency ratio of a delay d(t) = A*sin(2*pi*f*t) is
// 1 - A*2*pi*f/sampleRate at its extreme, so A = (2^(c/1200) - 1) *
// sampleRate / (2*pi*f). drift (variation times amount) scales the depth by
// up to 15 percent. The result is zero when either depth or rate is not
// positive.
func ModulationAmplitude(pitchCents, rateHz, drift, sampleRate float64) float64 {
	if pitchCents <= 0 || rateHz <= 0 {
		return 0
	}
	cents := math.Max(0, pitchCents*(1+drift*pitchDriftScale))
	return (pow2(cents/1200) - 1) * sampleRate / (2 * math.Pi * rateHz)
}
