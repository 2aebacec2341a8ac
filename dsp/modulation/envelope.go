package modulation

import "math"

// ReleaseSeconds is the fixed release time of the trigger envelope.
const ReleaseSeconds = 0.015

// AttackRate returns the per-sample increment that sweeps the envelope from 0
// to 1 over onsetMs. Durations shorter than one sample clamp to a one-sample
// sweep.
func AttackRate(onsetMs, sampleRate float64) float64 {
	return 1 / math.Max(1, (onsetMs/1000)*sampleRate)
}

// ReleaseRate returns the per-sample decrement for the fixed 15 ms release.
func ReleaseRate(sampleRate float64) float64 {
	return 1 / math.Max(1, ReleaseSeconds*sampleRate)
}

// Envelope turns a boolean trigger into a gain ramp in [0, 1].
//
// The ramp moves linearly toward 1 while triggered and toward 0 otherwise and
// never overshoots its target. Reversing the trigger mid-ramp reverses
// direction immediately.
type Envelope struct {
	value       float64
	target      float64
	attackRate  float64
	releaseRate float64
}

// Configure sets the ramp target and rates for the coming block.
func (e *Envelope) Configure(triggered bool, onsetMs, sampleRate float64) {
	e.target = 0
	if triggered {
		e.target = 1
	}
	e.attackRate = AttackRate(onsetMs, sampleRate)
	e.releaseRate = ReleaseRate(sampleRate)
}

// Next advances the envelope by one sample and returns the new value.
func (e *Envelope) Next() float64 {
	switch {
	case e.value < e.target:
		e.value += e.attackRate
		if e.value > e.target {
			e.value = e.target
		}
	case e.value > e.target:
		e.value -= e.releaseRate
		if e.value < e.target {
			e.value = e.target
		}
	}
	return e.value
}

// Value returns the current envelope level.
func (e *Envelope) Value() float64 { return e.value }

// Reset returns the envelope to silence.
func (e *Envelope) Reset() {
	e.value = 0
	e.target = 0
}
