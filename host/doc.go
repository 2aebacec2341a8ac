// Package host wires two vibrato engines into a processor the way a plugin
// host drives them.
//
// A [Store] holds every parameter of both rows as atomically updated values,
// so UI, MIDI and automation goroutines can write while the audio goroutine
// reads one [vibrato.Params] snapshot per row per block. A [Processor] owns
// the two engines, clears output channels that have no input, runs row 1
// then row 2 over the same buffer and applies an optional output trim.
//
// Parameter IDs follow the pattern row<N>_<name>, for example row2_pitch.
package host
