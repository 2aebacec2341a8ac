package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-vibrato/dsp/core"
	dspsignal "github.com/cwbudde/algo-vibrato/dsp/signal"
	"github.com/cwbudde/algo-vibrato/host"
)

// rowFlags binds one row's parameters to command-line flags.
type rowFlags struct {
	row     int
	trigger *bool
	mode    *string
	values  map[string]*float64
}

func registerRowFlags(fs *flag.FlagSet, row int) *rowFlags {
	prefix := ""
	if row > 1 {
		prefix = fmt.Sprintf("row%d-", row)
	}

	r := &rowFlags{row: row, values: make(map[string]*float64)}
	r.trigger = fs.Bool(prefix+host.NameTrigger, false, fmt.Sprintf("start row %d triggered", row))
	r.mode = fs.String(prefix+host.NameMode, "latch", fmt.Sprintf("row %d trigger mode: latch or momentary", row))

	for _, p := range host.Layout() {
		if p.Row != row || p.Kind != host.KindFloat {
			continue
		}
		usage := fmt.Sprintf("%s (%g..%g)", p.Label, p.Range.Min, p.Range.Max)
		r.values[p.Name] = fs.Float64(prefix+p.Name, p.Range.Default, usage)
	}
	return r
}

func (r *rowFlags) apply(store *host.Store) error {
	mode, err := parseMode(*r.mode)
	if err != nil {
		return err
	}
	if err := store.SetMode(r.row, mode); err != nil {
		return err
	}

	trigger := 0.0
	if *r.trigger {
		trigger = 1
	}
	if err := store.Set(host.ParamID(r.row, host.NameTrigger), trigger); err != nil {
		return err
	}
	for name, v := range r.values {
		if err := store.Set(host.ParamID(r.row, name), *v); err != nil {
			return err
		}
	}
	return nil
}

func parseMode(s string) (host.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "latch":
		return host.Latch, nil
	case "momentary":
		return host.Momentary, nil
	}
	return 0, fmt.Errorf("unknown trigger mode %q (want latch or momentary)", s)
}

// sourceFlags selects the generated test signal.
type sourceFlags struct {
	wave  *string
	freq  *float64
	level *float64
	seed  *uint64
}

func registerSourceFlags(fs *flag.FlagSet) *sourceFlags {
	return &sourceFlags{
		wave:  fs.String("source", "sine", "test signal: sine, saw, square or noise"),
		freq:  fs.Float64("freq", 220, "test signal frequency in Hz"),
		level: fs.Float64("level", 0.5, "test signal peak level"),
		seed:  fs.Uint64("seed", 1, "noise seed"),
	}
}

func (s *sourceFlags) build(sampleRate float64) (*dspsignal.Source, error) {
	wave, err := dspsignal.ParseWaveform(*s.wave)
	if err != nil {
		return nil, err
	}
	return dspsignal.NewSource(wave, *s.freq,
		[]core.ProcessorOption{core.WithSampleRate(sampleRate)},
		dspsignal.WithAmplitude(*s.level),
		dspsignal.WithSeed(*s.seed),
	)
}

// newRowStore returns a store with every row's flags applied.
func newRowStore(rows []*rowFlags) (*host.Store, error) {
	store := host.NewStore()
	for _, r := range rows {
		if err := r.apply(store); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func registerAllRows(fs *flag.FlagSet) []*rowFlags {
	rows := make([]*rowFlags, host.Rows)
	for i := range rows {
		rows[i] = registerRowFlags(fs, i+1)
	}
	return rows
}
