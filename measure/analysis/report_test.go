package analysis

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-vibrato/dsp/vibrato"
	"github.com/cwbudde/algo-vibrato/internal/testutil"
)

func render(t *testing.T, in []float64, p vibrato.Params) []float64 {
	t.Helper()
	e, err := vibrato.New()
	if err != nil {
		t.Fatal(err)
	}
	buf := testutil.Channels(in, 2)
	for start := 0; start < len(in); start += 512 {
		end := min(start+512, len(in))
		e.Process([][]float64{buf[0][start:end], buf[1][start:end]}, p)
	}
	return buf[0]
}

func TestCompareDryEngine(t *testing.T) {
	in := testutil.DeterministicNoise(12, 0.5, 16384)
	out := render(t, in, vibrato.Params{OnsetMs: 200, RateHz: 5})

	r, err := Compare(in, out, 48000, 2048)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if r.Latency != int(vibrato.BaseDelay) {
		t.Fatalf("Latency = %d, want %d", r.Latency, int(vibrato.BaseDelay))
	}
	if r.Correlation < 0.999 {
		t.Fatalf("Correlation = %v, want about 1", r.Correlation)
	}
}

func TestVibratoWidensSpectrum(t *testing.T) {
	const sr = 48000.0
	in := testutil.DeterministicSine(1000, sr, 0.5, 2*int(sr))
	dry := render(t, in, vibrato.Params{Triggered: true, OnsetMs: 10, RateHz: 5})
	wet := render(t, in, vibrato.Params{Triggered: true, OnsetMs: 10, RateHz: 5, PitchCents: 100})

	// Skip the delay line fill before measuring.
	settle := 4096
	dryR, err := Compare(in[settle:], dry[settle:], sr, 0)
	if err != nil {
		t.Fatal(err)
	}
	wetR, err := Compare(in[settle:], wet[settle:], sr, 0)
	if err != nil {
		t.Fatal(err)
	}

	if wetR.OutputSpread < 5*dryR.OutputSpread {
		t.Fatalf("spread dry=%v wet=%v, want vibrato to widen it", dryR.OutputSpread, wetR.OutputSpread)
	}
	// A semitone swing is about +-6 percent around 1 kHz.
	if wetR.OutputSpread > 80 {
		t.Fatalf("wet spread = %v Hz, want within the vibrato swing", wetR.OutputSpread)
	}
	if math.Abs(wetR.OutputCentroid-1000) > 20 {
		t.Fatalf("wet centroid = %v, want about 1000", wetR.OutputCentroid)
	}
	if math.Abs(wetR.GainDB) > 0.2 {
		t.Fatalf("wet gain = %v dB, want about 0", wetR.GainDB)
	}
}

func TestCompareLengthMismatch(t *testing.T) {
	if _, err := Compare(make([]float64, 4), make([]float64, 5), 48000, 2); err == nil {
		t.Fatal("Compare() accepted mismatched lengths")
	}
}
