package host

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-vibrato/dsp/vibrato"
)

var (
	// ErrUnknownParameter is returned for IDs not present in the layout.
	ErrUnknownParameter = errors.New("host: unknown parameter")
	// ErrInvalidRow is returned for rows outside 1..Rows.
	ErrInvalidRow = errors.New("host: invalid row")
)

// Store holds the current value of every parameter. All methods are safe for
// concurrent use; Snapshot never allocates or blocks.
type Store struct {
	params []Parameter
	index  map[string]int
	values []atomic.Uint64
}

// NewStore returns a store with every parameter at its default.
func NewStore() *Store {
	params := Layout()
	s := &Store{
		params: params,
		index:  make(map[string]int, len(params)),
		values: make([]atomic.Uint64, len(params)),
	}
	for i, p := range params {
		s.index[p.ID] = i
		s.values[i].Store(math.Float64bits(p.Range.Default))
	}
	return s
}

// Parameters returns the layout backing the store.
func (s *Store) Parameters() []Parameter {
	return s.params
}

// Lookup returns the description of id.
func (s *Store) Lookup(id string) (Parameter, error) {
	i, err := s.lookup(id)
	if err != nil {
		return Parameter{}, err
	}
	return s.params[i], nil
}

// Set stores v, snapped to the parameter's interval and range.
func (s *Store) Set(id string, v float64) error {
	i, err := s.lookup(id)
	if err != nil {
		return err
	}
	s.values[i].Store(math.Float64bits(s.params[i].Range.Snap(v)))
	return nil
}

// Get returns the current value of id.
func (s *Store) Get(id string) (float64, error) {
	i, err := s.lookup(id)
	if err != nil {
		return 0, err
	}
	return s.load(i), nil
}

// SetNormalized stores the value at normalized position p in [0, 1].
func (s *Store) SetNormalized(id string, p float64) error {
	i, err := s.lookup(id)
	if err != nil {
		return err
	}
	s.values[i].Store(math.Float64bits(s.params[i].Range.Denormalize(p)))
	return nil
}

// Normalized returns the current value of id as a position in [0, 1].
func (s *Store) Normalized(id string) (float64, error) {
	i, err := s.lookup(id)
	if err != nil {
		return 0, err
	}
	return s.params[i].Range.Normalize(s.load(i)), nil
}

// Reset restores every parameter to its default.
func (s *Store) Reset() {
	for i, p := range s.params {
		s.values[i].Store(math.Float64bits(p.Range.Default))
	}
}

// Snapshot reads the engine parameters of row. Rows outside 1..Rows yield
// the untriggered defaults.
func (s *Store) Snapshot(row int) vibrato.Params {
	if row < 1 || row > Rows {
		return vibrato.DefaultParams()
	}
	base := (row - 1) * paramsPerRow
	return vibrato.Params{
		Triggered:    s.load(base+offTrigger) > 0.5,
		OnsetMs:      s.load(base + offOnset),
		RateHz:       s.load(base + offRate),
		PitchCents:   s.load(base + offPitch),
		AmplitudePct: s.load(base + offAmplitude),
		FormantPct:   s.load(base + offFormant),
		VariationPct: s.load(base + offVariation),
	}
}

// Mode returns the trigger mode of row.
func (s *Store) Mode(row int) (Mode, error) {
	if row < 1 || row > Rows {
		return 0, fmt.Errorf("%w: %d", ErrInvalidRow, row)
	}
	if s.load((row-1)*paramsPerRow+offMode) > 0.5 {
		return Latch, nil
	}
	return Momentary, nil
}

// SetMode changes the trigger mode of row.
func (s *Store) SetMode(row int, m Mode) error {
	return s.Set(ParamID(row, NameMode), float64(m))
}

// Triggered reports whether row's trigger is on.
func (s *Store) Triggered(row int) (bool, error) {
	if row < 1 || row > Rows {
		return false, fmt.Errorf("%w: %d", ErrInvalidRow, row)
	}
	return s.load((row-1)*paramsPerRow+offTrigger) > 0.5, nil
}

// Press handles a trigger button press: Latch toggles the trigger and
// Momentary switches it on. It returns the new trigger state.
func (s *Store) Press(row int) (bool, error) {
	mode, err := s.Mode(row)
	if err != nil {
		return false, err
	}

	v := &s.values[(row-1)*paramsPerRow+offTrigger]
	if mode == Momentary {
		v.Store(math.Float64bits(1))
		return true, nil
	}
	for {
		old := v.Load()
		next := 1.0
		if math.Float64frombits(old) > 0.5 {
			next = 0
		}
		if v.CompareAndSwap(old, math.Float64bits(next)) {
			return next > 0.5, nil
		}
	}
}

// Release handles a trigger button release. Momentary rows switch off;
// latched rows keep their state. It returns the new trigger state.
func (s *Store) Release(row int) (bool, error) {
	mode, err := s.Mode(row)
	if err != nil {
		return false, err
	}
	v := &s.values[(row-1)*paramsPerRow+offTrigger]
	if mode == Momentary {
		v.Store(math.Float64bits(0))
		return false, nil
	}
	return math.Float64frombits(v.Load()) > 0.5, nil
}

func (s *Store) lookup(id string) (int, error) {
	i, ok := s.index[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}
	return i, nil
}

func (s *Store) load(i int) float64 {
	return math.Float64frombits(s.values[i].Load())
}
