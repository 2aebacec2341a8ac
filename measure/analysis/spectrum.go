package analysis

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/algo-vibrato/dsp/core"
)

// ErrShortSignal is returned when a signal is too short to analyze.
var ErrShortSignal = errors.New("analysis: signal too short")

// Spectrum is the one-sided spectrum of a Hann-windowed real signal.
type Spectrum struct {
	SampleRate float64
	FFTSize    int

	re    []float64
	im    []float64
	power []float64
}

// NewSpectrum windows signal, zero-pads it to the next power of two and
// transforms it.
func NewSpectrum(signal []float64, sampleRate float64) (*Spectrum, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("analysis: sample rate must be > 0 and finite: %f", sampleRate)
	}
	if len(signal) < 2 {
		return nil, ErrShortSignal
	}

	fftSize := len(signal)
	if !core.IsPowerOfTwo(fftSize) {
		fftSize = nextPowerOf2(fftSize)
	}

	windowed := make([]float64, len(signal))
	vecmath.MulBlock(windowed, signal, hann(len(signal)))

	in := make([]complex128, fftSize)
	for i, v := range windowed {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("analysis: fft plan: %w", err)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("analysis: fft: %w", err)
	}

	bins := fftSize/2 + 1
	s := &Spectrum{
		SampleRate: sampleRate,
		FFTSize:    fftSize,
		re:         make([]float64, bins),
		im:         make([]float64, bins),
		power:      make([]float64, bins),
	}
	for k := range bins {
		s.re[k] = real(out[k])
		s.im[k] = imag(out[k])
	}
	vecmath.Power(s.power, s.re, s.im)
	return s, nil
}

// Bins returns the number of non-negative frequency bins.
func (s *Spectrum) Bins() int { return len(s.power) }

// BinHz returns the frequency resolution.
func (s *Spectrum) BinHz() float64 { return s.SampleRate / float64(s.FFTSize) }

// Frequency returns the center frequency of bin k.
func (s *Spectrum) Frequency(k int) float64 { return float64(k) * s.BinHz() }

// Power returns |X[k]|^2 for every bin. The slice is owned by s.
func (s *Spectrum) Power() []float64 { return s.power }

// Magnitude returns |X[k]| for every bin in a new slice.
func (s *Spectrum) Magnitude() []float64 {
	out := make([]float64, len(s.re))
	vecmath.Magnitude(out, s.re, s.im)
	return out
}

// Peak returns the frequency and power of the strongest bin above DC.
func (s *Spectrum) Peak() (freqHz, power float64) {
	best := 1
	for k := 2; k < len(s.power); k++ {
		if s.power[k] > s.power[best] {
			best = k
		}
	}
	return s.Frequency(best), s.power[best]
}

// Centroid returns the power-weighted mean frequency, or 0 for silence.
func (s *Spectrum) Centroid() float64 {
	num, den := 0.0, 0.0
	for k, p := range s.power {
		num += s.Frequency(k) * p
		den += p
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// Spread returns the power-weighted standard deviation of frequency around
// the centroid. A steady sine has a spread of a few bins; vibrato widens it.
func (s *Spectrum) Spread() float64 {
	c := s.Centroid()
	num, den := 0.0, 0.0
	for k, p := range s.power {
		d := s.Frequency(k) - c
		num += d * d * p
		den += p
	}
	if den == 0 {
		return 0
	}
	return math.Sqrt(num / den)
}

// Flatness returns the ratio of geometric to arithmetic mean magnitude over
// the bins above DC. Tones approach 0 and white noise approaches 1.
func (s *Spectrum) Flatness() float64 {
	mag := s.Magnitude()
	if len(mag) < 2 {
		return 0
	}
	sumLin, sumLog := 0.0, 0.0
	for _, v := range mag[1:] {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}
	n := float64(len(mag) - 1)
	return math.Exp(sumLog/n) / (sumLin / n)
}

// Rolloff returns the frequency below which fraction (0..1) of the spectral
// power lies, or 0 for silence.
func (s *Spectrum) Rolloff(fraction float64) float64 {
	total := 0.0
	for _, p := range s.power {
		total += p
	}
	if total == 0 {
		return 0
	}
	threshold := fraction * total
	cum := 0.0
	for k, p := range s.power {
		cum += p
		if cum >= threshold {
			return s.Frequency(k)
		}
	}
	return s.Frequency(len(s.power) - 1)
}

func hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
