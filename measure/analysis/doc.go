// Package analysis measures what a modulation stage did to a signal: level,
// latency and the spectral spread that pitch vibrato adds around a tone.
//
// Spectra use a Hann window, a power-of-two FFT from algo-fft and the
// vectorized magnitude and power kernels from algo-vecmath.
package analysis
