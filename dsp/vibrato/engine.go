package vibrato

import (
	"github.com/cwbudde/algo-vibrato/dsp/core"
	"github.com/cwbudde/algo-vibrato/dsp/delay"
	"github.com/cwbudde/algo-vibrato/dsp/filter/formant"
	"github.com/cwbudde/algo-vibrato/dsp/modulation"
)

const (
	// MaxChannels is the number of channels an Engine modulates.
	MaxChannels = delay.MaxChannels
	// BaseDelay is the resting delay in samples around which vibrato swings.
	BaseDelay = 1024.0

	formantEnvelopeThreshold = 0.001
)

// state is the complete mutable state of one engine. It contains no
// references, so copying an engine copies its history, phase and seed.
type state struct {
	line      delay.Line
	envelope  modulation.Envelope
	variation modulation.Variation
	lfo       modulation.LFO
	formants  formant.Bank
}

// Engine is one vibrato voice. It is not safe for concurrent use; two
// engines never share state.
type Engine struct {
	cfg   core.ProcessorConfig
	state state
}

// New returns an engine prepared with the default processor configuration.
func New(opts ...core.ProcessorOption) (*Engine, error) {
	e := &Engine{}
	cfg := core.ApplyProcessorOptions(opts...)
	if err := e.Prepare(cfg.SampleRate, cfg.BlockSize); err != nil {
		return nil, err
	}
	return e, nil
}

// Prepare configures the engine for sampleRate and performs a full Reset.
// It must be called again whenever the sample rate changes.
func (e *Engine) Prepare(sampleRate float64, maxBlockSize int) error {
	cfg := core.ProcessorConfig{SampleRate: sampleRate, BlockSize: maxBlockSize}
	if err := cfg.Validate(); err != nil {
		return err
	}

	e.cfg = cfg
	e.state.variation.SetSampleRate(sampleRate)
	e.state.lfo.SetSampleRate(sampleRate)
	e.state.formants.SetSampleRate(sampleRate)
	e.Reset()
	return nil
}

// Reset zeroes the delay history, LFO phase, envelope, drift and filters.
func (e *Engine) Reset() {
	s := &e.state
	s.line.Reset()
	s.envelope.Reset()
	s.variation.Reset()
	s.lfo.Reset()
	s.formants.Reset()
}

// Process modulates buf in place. buf holds one slice per channel; only the
// first MaxChannels are touched and the block length is the shortest of them.
// p is treated as constant for the whole block.
func (e *Engine) Process(buf [][]float64, p Params) {
	numChannels := min(len(buf), MaxChannels)
	if numChannels == 0 {
		return
	}
	numSamples := len(buf[0])
	for ch := 1; ch < numChannels; ch++ {
		numSamples = min(numSamples, len(buf[ch]))
	}

	sr := e.cfg.SampleRate
	s := &e.state
	s.envelope.Configure(p.Triggered, p.OnsetMs, sr)

	ampDepth := p.AmplitudePct / 100
	formantDepth := p.FormantPct / 100
	variationAmt := p.VariationPct / 100
	variationOn := variationAmt > 0

	for i := 0; i < numSamples; i++ {
		env := s.envelope.Next()
		drift := s.variation.Next(variationOn) * variationAmt

		rate := modulation.EffectiveRate(p.RateHz, drift)
		lfo := s.lfo.Next(rate, drift)

		delayMod := ModulationAmplitude(p.PitchCents, rate, drift, sr) * lfo * env
		totalDelay := delay.ClampDelay(BaseDelay + delayMod)

		gain := modulation.TremoloGain(ampDepth, env, lfo)

		colour := formantDepth > 0 && env > formantEnvelopeThreshold
		wet := 0.0
		if colour {
			depth := formantDepth * env
			s.formants.Tick(lfo, depth)
			wet = formant.MixGain(depth)
		}

		for ch := 0; ch < numChannels; ch++ {
			s.line.Write(ch, buf[ch][i])
			y := s.line.ReadFractional(ch, totalDelay)
			if colour {
				y += wet * s.formants.Process(ch, y)
			}
			buf[ch][i] = y * gain
		}

		s.line.Advance()
	}
}

// SampleRate returns the prepared sample rate in Hz.
func (e *Engine) SampleRate() float64 { return e.cfg.SampleRate }

// MaxBlockSize returns the block size passed to Prepare.
func (e *Engine) MaxBlockSize() int { return e.cfg.BlockSize }

// Envelope returns the current gate level in [0, 1].
func (e *Engine) Envelope() float64 { return e.state.envelope.Value() }

// LFOPhase returns the oscillator phase in [0, 1).
func (e *Engine) LFOPhase() float64 { return e.state.lfo.Phase() }

// Variation returns the smoothed drift in [-1, 1].
func (e *Engine) Variation() float64 { return e.state.variation.Value() }

// WritePos returns the delay-line write head.
func (e *Engine) WritePos() int { return e.state.line.WritePos() }
