// Package interp provides the fractional-delay interpolation used by the
// vibrato delay line.
//
// [Hermite4] is 4-point cubic Hermite (Catmull-Rom) interpolation. It passes
// exactly through its center sample at t = 0, so an integral delay reproduces
// the stored sample bit for bit.
package interp
