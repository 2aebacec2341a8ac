//go:build fastmath

package vibrato

import "github.com/meko-christian/algo-approx"

const ln2 = 0.693147180559945309417232121458

// pow2 computes 2^x as e^(x*ln2) with the fast exponential.
func pow2(x float64) float64 {
	return approx.FastExp(x * ln2)
}
