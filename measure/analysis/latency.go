package analysis

import "math"

// EstimateLatency finds the lag in [0, maxLag] at which out best matches in,
// using normalized cross-correlation. It returns the lag and its correlation
// in [-1, 1]; a zero correlation means nothing overlapped.
func EstimateLatency(in, out []float64, maxLag int) (lag int, corr float64) {
	maxLag = min(maxLag, len(out)-1)
	bestLag, best := 0, math.Inf(-1)

	for l := 0; l <= maxLag; l++ {
		n := min(len(in), len(out)-l)
		if n <= 0 {
			break
		}
		dot, ein, eout := 0.0, 0.0, 0.0
		for i := range n {
			a, b := in[i], out[i+l]
			dot += a * b
			ein += a * a
			eout += b * b
		}
		if ein == 0 || eout == 0 {
			continue
		}
		if c := dot / math.Sqrt(ein*eout); c > best {
			bestLag, best = l, c
		}
	}

	if math.IsInf(best, -1) {
		return 0, 0
	}
	return bestLag, best
}
