// Package vibrato implements a per-voice modulation engine combining pitch
// vibrato (LFO-modulated fractional delay), tremolo and swept formant
// coloration, gated by a trigger envelope and de-mechanized by a slow random
// drift.
//
// An [Engine] owns all of its state. It is prepared once with a sample rate,
// then fed one [Params] snapshot per block through [Engine.Process], which
// modulates up to two channels in place without allocating.
//
// Processing order per sample:
//
//	envelope -> variation -> LFO -> delay length -> formant refresh (every 32)
//	per channel: write -> interpolated read -> formant mix -> tremolo
//	advance write head
//
// Building with the fastmath tag swaps the cents-to-ratio conversion for an
// approximation from algo-approx.
package vibrato
