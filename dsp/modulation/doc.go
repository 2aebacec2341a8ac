// Package modulation provides the control-rate building blocks of the
// vibrato engine. Each block is a plain value type advanced once per sample.
//
// Included generators:
//   - Envelope: Trigger-gated linear ramp with independent attack/release.
//   - Variation: Seeded random walk, low-pass smoothed into a slow drift.
//   - LFO: Phase-accumulating sine whose rate and shape follow the drift.
//   - TremoloGain: Envelope- and LFO-driven amplitude factor.
package modulation
