package signal

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/cwbudde/algo-vibrato/dsp/core"
)

// Waveform selects the shape a Source produces.
type Waveform int

const (
	Sine Waveform = iota
	Saw
	Square
	Noise
)

var waveformNames = [...]string{"sine", "saw", "square", "noise"}

func (w Waveform) String() string {
	if w < 0 || int(w) >= len(waveformNames) {
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
	return waveformNames[w]
}

// ParseWaveform maps a name such as "saw" to its Waveform.
func ParseWaveform(name string) (Waveform, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range waveformNames {
		if n == name {
			return Waveform(i), nil
		}
	}
	return 0, fmt.Errorf("unknown waveform %q (want one of %s)", name, strings.Join(waveformNames[:], ", "))
}

// Option configures a Source.
type Option func(*Source)

// WithSeed sets the deterministic seed for noise.
func WithSeed(seed uint64) Option {
	return func(s *Source) {
		s.seed = seed
	}
}

// WithAmplitude sets the peak output level.
func WithAmplitude(amplitude float64) Option {
	return func(s *Source) {
		s.amplitude = amplitude
	}
}

// Source is a streaming test-signal oscillator. Phase and noise state carry
// over between calls, so consecutive blocks join without discontinuities.
type Source struct {
	cfg       core.ProcessorConfig
	wave      Waveform
	freqHz    float64
	amplitude float64
	seed      uint64

	phase float64
	rng   rand.PCG
}

// NewSource creates a source of the given waveform and frequency.
// Noise ignores the frequency.
func NewSource(wave Waveform, freqHz float64, coreOpts []core.ProcessorOption, opts ...Option) (*Source, error) {
	s := &Source{
		cfg:       core.ApplyProcessorOptions(coreOpts...),
		wave:      wave,
		amplitude: 1,
		seed:      1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if wave < Sine || wave > Noise {
		return nil, fmt.Errorf("source waveform must be known: %d", int(wave))
	}
	if s.amplitude < 0 || !core.IsFinite(s.amplitude) {
		return nil, fmt.Errorf("source amplitude must be >= 0 and finite: %f", s.amplitude)
	}
	if err := s.SetFrequency(freqHz); err != nil {
		return nil, err
	}
	s.Reset()
	return s, nil
}

// SetFrequency changes the oscillator frequency without resetting phase.
func (s *Source) SetFrequency(freqHz float64) error {
	if s.wave != Noise && (freqHz <= 0 || freqHz >= s.cfg.SampleRate/2 || !core.IsFinite(freqHz)) {
		return fmt.Errorf("source frequency must be in (0, %f): %f", s.cfg.SampleRate/2, freqHz)
	}
	s.freqHz = freqHz
	return nil
}

// Waveform returns the configured shape.
func (s *Source) Waveform() Waveform { return s.wave }

// Frequency returns the oscillator frequency in Hz.
func (s *Source) Frequency() float64 { return s.freqHz }

// SampleRate returns the configured sample rate.
func (s *Source) SampleRate() float64 { return s.cfg.SampleRate }

// Reset rewinds the phase and reseeds the noise generator.
func (s *Source) Reset() {
	s.phase = 0
	s.rng.Seed(s.seed, 0)
}

// Next returns one sample and advances the oscillator.
func (s *Source) Next() float64 {
	if s.wave == Noise {
		u := float64(s.rng.Uint64()<<11>>11) / (1 << 53)
		return s.amplitude * (u*2 - 1)
	}

	dt := s.freqHz / s.cfg.SampleRate
	p := s.phase
	var y float64
	switch s.wave {
	case Sine:
		y = math.Sin(2 * math.Pi * p)
	case Saw:
		y = 2*p - 1 - polyBLEP(p, dt)
	case Square:
		y = 1.0
		if p >= 0.5 {
			y = -1
		}
		y += polyBLEP(p, dt)
		y -= polyBLEP(math.Mod(p+0.5, 1), dt)
	}

	s.phase += dt
	for s.phase >= 1 {
		s.phase--
	}
	return s.amplitude * y
}

// Fill writes len(dst) consecutive samples.
func (s *Source) Fill(dst []float64) {
	for i := range dst {
		dst[i] = s.Next()
	}
}

// FillChannels writes the same signal to every channel of buf.
// The frame count is the length of the first channel.
func (s *Source) FillChannels(buf [][]float64) {
	if len(buf) == 0 {
		return
	}
	s.Fill(buf[0])
	for ch := 1; ch < len(buf); ch++ {
		copy(buf[ch], buf[0])
	}
}

// polyBLEP is the two-sample band-limited step residual at phase p.
func polyBLEP(p, dt float64) float64 {
	switch {
	case p < dt:
		t := p / dt
		return t + t - t*t - 1
	case p > 1-dt:
		t := (p - 1) / dt
		return t*t + t + t + 1
	default:
		return 0
	}
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
