package host

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/algo-vibrato/dsp/core"
	"github.com/cwbudde/algo-vibrato/dsp/vibrato"
)

const (
	// MinOutputGainDB is the lowest accepted output trim.
	MinOutputGainDB = -24.0
	// MaxOutputGainDB is the highest accepted output trim.
	MaxOutputGainDB = 12.0
)

type config struct {
	outputGainDB float64
	processor    []core.ProcessorOption
}

// Option configures a Processor.
type Option func(*config) error

// WithOutputGainDB sets the trim applied after both rows.
func WithOutputGainDB(db float64) Option {
	return func(c *config) error {
		if db < MinOutputGainDB || db > MaxOutputGainDB || !core.IsFinite(db) {
			return fmt.Errorf("host output gain must be in [%g, %g] dB: %f", MinOutputGainDB, MaxOutputGainDB, db)
		}
		c.outputGainDB = db
		return nil
	}
}

// WithProcessorOptions sets the initial sample rate and block size.
func WithProcessorOptions(opts ...core.ProcessorOption) Option {
	return func(c *config) error {
		c.processor = append(c.processor, opts...)
		return nil
	}
}

// Processor runs two vibrato rows in series over a shared buffer.
// Process must be called from a single goroutine.
type Processor struct {
	store   *Store
	engines [Rows]*vibrato.Engine
	gainDB  float64
	gain    float64
}

// NewProcessor returns a processor reading its parameters from store. A nil
// store gets a fresh one with defaults.
func NewProcessor(store *Store, opts ...Option) (*Processor, error) {
	var cfg config
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if store == nil {
		store = NewStore()
	}

	p := &Processor{
		store:  store,
		gainDB: cfg.outputGainDB,
		gain:   core.DBToLinear(cfg.outputGainDB),
	}
	for i := range p.engines {
		e, err := vibrato.New(cfg.processor...)
		if err != nil {
			return nil, fmt.Errorf("host row %d: %w", i+1, err)
		}
		p.engines[i] = e
	}
	return p, nil
}

// Prepare configures both engines for sampleRate and resets them.
func (p *Processor) Prepare(sampleRate float64, maxBlockSize int) error {
	for i, e := range p.engines {
		if err := e.Prepare(sampleRate, maxBlockSize); err != nil {
			return fmt.Errorf("host row %d: %w", i+1, err)
		}
	}
	return nil
}

// Release resets both engines, as a host does when playback stops.
func (p *Processor) Release() {
	for _, e := range p.engines {
		e.Reset()
	}
}

// Process clears every channel at or above numInputs, then runs row 1 and
// row 2 over buf in place and applies the output trim.
func (p *Processor) Process(buf [][]float64, numInputs int) {
	for ch := max(numInputs, 0); ch < len(buf); ch++ {
		core.Zero(buf[ch])
	}

	for i, e := range p.engines {
		e.Process(buf, p.store.Snapshot(i+1).Clamped())
	}

	if p.gain == 1 {
		return
	}
	for ch := range min(len(buf), vibrato.MaxChannels) {
		vecmath.ScaleBlock(buf[ch], buf[ch], p.gain)
	}
}

// Store returns the parameter store.
func (p *Processor) Store() *Store { return p.store }

// Engine returns the engine of row, or nil if row is out of range.
func (p *Processor) Engine(row int) *vibrato.Engine {
	if row < 1 || row > Rows {
		return nil
	}
	return p.engines[row-1]
}

// OutputGainDB returns the configured output trim.
func (p *Processor) OutputGainDB() float64 { return p.gainDB }

// SampleRate returns the prepared sample rate.
func (p *Processor) SampleRate() float64 { return p.engines[0].SampleRate() }
