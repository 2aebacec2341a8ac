// Package delay provides the fixed-size, power-of-two circular delay line
// used for pitch vibrato.
//
// All channels share one write head. Indices wrap with a bitmask, so [Size]
// must stay a power of two; any requested delay is clamped to
// [MinDelay, MaxDelay] which keeps the four Hermite taps inside written
// history.
package delay
