package delay

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/cwbudde/algo-vibrato/dsp/core"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// fill writes a linear ramp [0, 1, 2, ...] into channel ch, advancing the head.
func fill(d *Line, ch, n int) {
	for i := 0; i < n; i++ {
		d.Write(ch, float64(i))
		d.Advance()
	}
}

func TestSizeIsPowerOfTwo(t *testing.T) {
	if !core.IsPowerOfTwo(Size) {
		t.Fatalf("Size=%d is not a power of two", Size)
	}
	if MaxDelay != Size-4 {
		t.Fatalf("MaxDelay=%v, want %d", MaxDelay, Size-4)
	}
}

func TestReadWrite(t *testing.T) {
	d := New()
	fill(d, 0, 8)

	// delay=1 => most recently written (7)
	if got := d.Read(0, 1); got != 7 {
		t.Fatalf("got %v want 7", got)
	}
	if got := d.Read(0, 3); got != 5 {
		t.Fatalf("got %v want 5", got)
	}
	if got := d.Read(1, 1); got != 0 {
		t.Fatalf("channel 1 should be untouched, got %v", got)
	}
}

func TestAdvanceWraps(t *testing.T) {
	d := New()
	for i := 0; i < Size+3; i++ {
		d.Advance()
	}
	if d.WritePos() != 3 {
		t.Fatalf("WritePos=%d, want 3", d.WritePos())
	}
}

func TestReset(t *testing.T) {
	d := New()
	fill(d, 0, 16)
	fill(d, 1, 16)
	d.Reset()

	if d.WritePos() != 0 {
		t.Fatalf("WritePos after reset = %d", d.WritePos())
	}
	for ch := 0; ch < MaxChannels; ch++ {
		for i := 0; i < Size; i++ {
			if got := d.Read(ch, i); got != 0 {
				t.Fatalf("after reset Read(%d,%d): got %v want 0", ch, i, got)
			}
		}
	}
}

func TestReadFractionalIntegralDelayIsExact(t *testing.T) {
	d := New()
	rng := rand.New(rand.NewPCG(7, 0))
	history := make([]float64, 3000)
	for i := range history {
		history[i] = rng.Float64()*2 - 1
		d.Write(0, history[i])
		if i >= 1024 {
			if got := d.ReadFractional(0, 1024); got != history[i-1024] {
				t.Fatalf("sample %d: got %v want exactly %v", i, got, history[i-1024])
			}
		}
		d.Advance()
	}
}

func TestReadFractionalLinearRamp(t *testing.T) {
	d := New()
	fill(d, 0, 64)
	// Mirror the engine: write the current sample, then read behind it.
	d.Write(0, 64)

	got := d.ReadFractional(0, 3.5)
	if !approxEqual(got, 60.5, 1e-10) {
		t.Fatalf("got %v want 60.5", got)
	}
}

func TestReadFractionalClampsDelay(t *testing.T) {
	d := New()
	fill(d, 0, Size)
	d.Write(0, Size)

	low := d.ReadFractional(0, -10)
	if want := d.ReadFractional(0, MinDelay); low != want {
		t.Fatalf("negative delay: got %v want %v", low, want)
	}
	high := d.ReadFractional(0, 1e9)
	if want := d.ReadFractional(0, MaxDelay); high != want {
		t.Fatalf("huge delay: got %v want %v", high, want)
	}
	if nan := d.ReadFractional(0, math.NaN()); math.IsNaN(nan) {
		t.Fatal("NaN delay produced NaN")
	}
}

func TestDCPreservation(t *testing.T) {
	d := New()
	for i := 0; i < Size; i++ {
		d.Write(1, 42)
		d.Advance()
	}
	d.Write(1, 42)

	for _, delay := range []float64{2, 5.3, 1024.77, MaxDelay} {
		if got := d.ReadFractional(1, delay); !approxEqual(got, 42, 1e-9) {
			t.Fatalf("delay %v: got %v want 42", delay, got)
		}
	}
}

func TestSineQuality(t *testing.T) {
	const freq = 0.02
	d := New()
	n := 2048
	for i := 0; i <= n; i++ {
		d.Write(0, math.Sin(2*math.Pi*freq*float64(i)))
		if i < n {
			d.Advance()
		}
	}

	delay := 20.37
	want := math.Sin(2 * math.Pi * freq * (float64(n) - delay))
	got := d.ReadFractional(0, delay)
	if err := math.Abs(got - want); err > 1e-4 {
		t.Fatalf("sine: got %v want %v (err=%e)", got, want, err)
	}
}

func TestReadTapsStayInRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for i := 0; i < 200000; i++ {
		writePos := rng.IntN(Size)
		delay := MinDelay + rng.Float64()*(MaxDelay-MinDelay)
		taps := ReadTaps(writePos, delay)

		for k, idx := range taps.Index {
			if idx < 0 || idx >= Size {
				t.Fatalf("writePos=%d delay=%v: tap %d index %d out of range", writePos, delay, k, idx)
			}
		}
		if taps.Frac < 0 || taps.Frac >= 1 {
			t.Fatalf("writePos=%d delay=%v: frac %v out of [0,1)", writePos, delay, taps.Frac)
		}
		// x[2] must never be ahead of the sample just written.
		ahead := (taps.Index[3] - writePos) & mask
		if ahead != 0 && ahead < Size-int(MaxDelay)-1 {
			t.Fatalf("writePos=%d delay=%v: tap x[2] is %d samples ahead of the head", writePos, delay, ahead)
		}
	}
}

func TestReadTapsBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		writePos int
		delay    float64
		want     [4]int
	}{
		{name: "min delay", writePos: 100, delay: MinDelay, want: [4]int{97, 98, 99, 100}},
		{name: "max delay at zero", writePos: 0, delay: MaxDelay, want: [4]int{3, 4, 5, 6}},
		{name: "wrap", writePos: 1, delay: 1024, want: [4]int{Size - 1024, Size - 1023, Size - 1022, Size - 1021}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReadTaps(tt.writePos, tt.delay)
			if got.Index != tt.want {
				t.Fatalf("Index=%v, want %v", got.Index, tt.want)
			}
			if got.Frac != 0 {
				t.Fatalf("Frac=%v, want 0", got.Frac)
			}
		})
	}
}

func FuzzReadTaps(f *testing.F) {
	f.Add(0, 2.0)
	f.Add(4095, 4092.0)
	f.Add(17, 1024.5)
	f.Fuzz(func(t *testing.T, writePos int, delay float64) {
		taps := ReadTaps(writePos, delay)
		for _, idx := range taps.Index {
			if idx < 0 || idx >= Size {
				t.Fatalf("index %d out of range (writePos=%d delay=%v)", idx, writePos, delay)
			}
		}
	})
}

func BenchmarkReadFractional(b *testing.B) {
	d := New()
	fill(d, 0, Size)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		d.ReadFractional(0, 1024.37)
	}
}
