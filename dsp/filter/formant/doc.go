// Package formant implements the vowel-like coloration stage of the vibrato
// engine: three parallel band-pass SVFs per channel whose centers sweep with
// the LFO. Coefficients are refreshed every [UpdateInterval] samples.
package formant
