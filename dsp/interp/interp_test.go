package interp

import (
	"math"
	"testing"
)

func TestHermite4IdentityOnLinearRamp(t *testing.T) {
	xm1, x0, x1, x2 := -1.0, 0.0, 1.0, 2.0
	for _, tc := range []struct {
		t float64
		w float64
	}{
		{t: 0.0, w: 0.0},
		{t: 0.25, w: 0.25},
		{t: 0.5, w: 0.5},
		{t: 1.0, w: 1.0},
	} {
		got := Hermite4(tc.t, xm1, x0, x1, x2)
		if diff := got - tc.w; diff < -1e-12 || diff > 1e-12 {
			t.Fatalf("t=%v: got %v want %v", tc.t, got, tc.w)
		}
	}
}

func TestHermite4ExactAtZeroFraction(t *testing.T) {
	// Arbitrary neighbours must not leak into the center sample at t=0.
	for _, x0 := range []float64{0.123456789, -0.987654321, 1e-9, 0.5} {
		got := Hermite4(0, 3.7, x0, -2.1, 9.4)
		if got != x0 {
			t.Fatalf("Hermite4(0) = %v, want exactly %v", got, x0)
		}
	}
}

func TestHermite4DCPreservation(t *testing.T) {
	for _, frac := range []float64{0, 0.1, 0.37, 0.5, 0.99} {
		got := Hermite4(frac, 42, 42, 42, 42)
		if math.Abs(got-42) > 1e-12 {
			t.Fatalf("t=%v: got %v want 42", frac, got)
		}
	}
}

func TestHermite4SineAccuracy(t *testing.T) {
	const step = 2 * math.Pi * 0.02
	for _, frac := range []float64{0.13, 0.5, 0.77} {
		got := Hermite4(frac, math.Sin(-step), math.Sin(0), math.Sin(step), math.Sin(2*step))
		want := math.Sin(frac * step)
		if diff := math.Abs(got - want); diff > 1e-4 {
			t.Fatalf("t=%v: got %v want %v (err %e)", frac, got, want, diff)
		}
	}
}

func BenchmarkHermite4(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Hermite4(0.37, 0.1, 0.2, 0.3, 0.25)
	}
}
