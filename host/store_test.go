package host

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/cwbudde/algo-vibrato/dsp/vibrato"
)

func TestStoreDefaults(t *testing.T) {
	s := NewStore()
	for row := 1; row <= Rows; row++ {
		if got := s.Snapshot(row); got != vibrato.DefaultParams() {
			t.Fatalf("Snapshot(%d) = %+v, want defaults", row, got)
		}
		mode, err := s.Mode(row)
		if err != nil || mode != Latch {
			t.Fatalf("Mode(%d) = %v, %v; want Latch", row, mode, err)
		}
	}
}

func TestStoreSetSnapsAndClamps(t *testing.T) {
	s := NewStore()
	tests := []struct {
		id   string
		in   float64
		want float64
	}{
		{"row1_onset", 123.6, 124},
		{"row1_onset", 1, 10},
		{"row1_rate", 30, 15},
		{"row2_pitch", 12.34, 12.3},
		{"row2_amplitude", -4, 0},
		{"row2_trigger", 0.7, 1},
		{"row1_formant", math.NaN(), 0},
	}
	for _, tc := range tests {
		if err := s.Set(tc.id, tc.in); err != nil {
			t.Fatalf("Set(%q) error = %v", tc.id, err)
		}
		got, err := s.Get(tc.id)
		if err != nil {
			t.Fatalf("Get(%q) error = %v", tc.id, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("%s: Set(%v) stored %v, want %v", tc.id, tc.in, got, tc.want)
		}
	}

	p := s.Snapshot(2)
	if !p.Triggered || math.Abs(p.PitchCents-12.3) > 1e-9 {
		t.Fatalf("Snapshot(2) = %+v", p)
	}
}

func TestStoreUnknownParameter(t *testing.T) {
	s := NewStore()
	if err := s.Set("row3_pitch", 1); !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("Set error = %v, want ErrUnknownParameter", err)
	}
	if _, err := s.Get("pitch"); !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("Get error = %v, want ErrUnknownParameter", err)
	}
	if _, err := s.Lookup(""); !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("Lookup error = %v, want ErrUnknownParameter", err)
	}
	if _, err := s.Press(0); !errors.Is(err, ErrInvalidRow) {
		t.Fatalf("Press(0) error = %v, want ErrInvalidRow", err)
	}
	if got := s.Snapshot(9); got != vibrato.DefaultParams() {
		t.Fatalf("Snapshot(9) = %+v, want defaults", got)
	}
}

func TestStoreNormalized(t *testing.T) {
	s := NewStore()
	if err := s.SetNormalized("row1_rate", 1); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Get("row1_rate"); v != 15 {
		t.Fatalf("rate at 1.0 = %v, want 15", v)
	}
	if err := s.SetNormalized("row1_rate", 0); err != nil {
		t.Fatal(err)
	}
	if n, _ := s.Normalized("row1_rate"); n != 0 {
		t.Fatalf("Normalized() = %v, want 0", n)
	}
}

func TestStoreReset(t *testing.T) {
	s := NewStore()
	_ = s.Set("row1_pitch", 150)
	_ = s.SetMode(2, Momentary)
	s.Reset()
	if v, _ := s.Get("row1_pitch"); v != vibrato.PitchRange.Default {
		t.Fatalf("pitch after Reset = %v", v)
	}
	if m, _ := s.Mode(2); m != Latch {
		t.Fatalf("mode after Reset = %v, want Latch", m)
	}
}

func TestPressRelease(t *testing.T) {
	tests := []struct {
		name   string
		mode   Mode
		events []string
		want   []bool
	}{
		{"latch toggles on press", Latch, []string{"press", "release", "press", "release"}, []bool{true, true, false, false}},
		{"momentary follows button", Momentary, []string{"press", "release", "press", "press", "release"}, []bool{true, false, true, true, false}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStore()
			if err := s.SetMode(1, tc.mode); err != nil {
				t.Fatal(err)
			}
			for i, ev := range tc.events {
				var (
					got bool
					err error
				)
				if ev == "press" {
					got, err = s.Press(1)
				} else {
					got, err = s.Release(1)
				}
				if err != nil {
					t.Fatal(err)
				}
				if got != tc.want[i] {
					t.Fatalf("event %d (%s): trigger = %v, want %v", i, ev, got, tc.want[i])
				}
				if on, _ := s.Triggered(1); on != got {
					t.Fatalf("event %d: Triggered() = %v, reported %v", i, on, got)
				}
				if s.Snapshot(1).Triggered != got {
					t.Fatalf("event %d: snapshot disagrees", i)
				}
			}
			if on, _ := s.Triggered(2); on {
				t.Fatal("row 2 was triggered by row 1 events")
			}
		})
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup

	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 1000 {
				_ = s.Set(ParamID(1+w%2, NamePitch), float64(i%200))
				_, _ = s.Press(1 + w%2)
			}
		}()
	}

	for range 1000 {
		for row := 1; row <= Rows; row++ {
			p := s.Snapshot(row)
			if p.PitchCents < 0 || p.PitchCents > 200 {
				t.Errorf("torn read: pitch %v", p.PitchCents)
			}
		}
	}
	wg.Wait()
}

func TestSnapshotDoesNotAllocate(t *testing.T) {
	s := NewStore()
	allocs := testing.AllocsPerRun(100, func() {
		_ = s.Snapshot(1)
		_ = s.Snapshot(2)
	})
	if allocs != 0 {
		t.Fatalf("Snapshot allocated %.1f times", allocs)
	}
}
