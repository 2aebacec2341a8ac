package modulation

// TremoloGain returns the amplitude factor for one sample.
//
// At lfo = +1 the gain is 1; at lfo = -1 it drops to 1 - depth*envelope.
// depth is the amplitude amount in [0, 1].
func TremoloGain(depth, envelope, lfo float64) float64 {
	return 1 - depth*envelope*(1-lfo)*0.5
}
