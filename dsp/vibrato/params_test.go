package vibrato

import (
	"math"
	"testing"
)

func TestDefaultParamsWithinRanges(t *testing.T) {
	p := DefaultParams()
	if p.Triggered {
		t.Fatal("default snapshot should be untriggered")
	}
	if p != p.Clamped() {
		t.Fatalf("DefaultParams() = %+v is not within its ranges", p)
	}
	if p.OnsetMs != 200 || p.RateHz != 5.5 || p.PitchCents != 50 {
		t.Fatalf("unexpected defaults %+v", p)
	}
}

func TestParamsClamped(t *testing.T) {
	p := Params{
		Triggered:    true,
		OnsetMs:      1,
		RateHz:       100,
		PitchCents:   -5,
		AmplitudePct: 150,
		FormantPct:   math.NaN(),
		VariationPct: 50,
	}.Clamped()

	want := Params{
		Triggered:    true,
		OnsetMs:      10,
		RateHz:       15,
		PitchCents:   0,
		AmplitudePct: 100,
		FormantPct:   0,
		VariationPct: 50,
	}
	if p != want {
		t.Fatalf("Clamped() = %+v, want %+v", p, want)
	}
}

func TestRangeSnap(t *testing.T) {
	tests := []struct {
		r    Range
		in   float64
		want float64
	}{
		{OnsetRange, 200.4, 200},
		{OnsetRange, 5000, 2000},
		{RateRange, 5.504, 5.5},
		{PitchRange, 33.33, 33.3},
		{PercentRange, -1, 0},
	}
	for _, tc := range tests {
		if got := tc.r.Snap(tc.in); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Snap(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRangeNormalizeRoundTrip(t *testing.T) {
	for _, r := range []Range{OnsetRange, RateRange, PitchRange, PercentRange} {
		if got := r.Normalize(r.Min); got != 0 {
			t.Errorf("Normalize(min=%v) = %v, want 0", r.Min, got)
		}
		if got := r.Normalize(r.Max); math.Abs(got-1) > 1e-12 {
			t.Errorf("Normalize(max=%v) = %v, want 1", r.Max, got)
		}
		for _, v := range []float64{r.Default, r.Min + 0.3*(r.Max-r.Min), r.Max} {
			v = r.Snap(v)
			got := r.Denormalize(r.Normalize(v))
			if math.Abs(got-v) > r.Interval/2+1e-9 {
				t.Errorf("round trip of %v = %v", v, got)
			}
		}
	}
}

func TestSkewFavoursLowValues(t *testing.T) {
	// The onset knob spends its first half below the linear midpoint.
	mid := OnsetRange.Denormalize(0.5)
	linearMid := (OnsetRange.Min + OnsetRange.Max) / 2
	if mid >= linearMid {
		t.Fatalf("Denormalize(0.5) = %v, want below %v", mid, linearMid)
	}
}
