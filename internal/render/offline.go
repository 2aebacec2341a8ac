// Package render drives a host.Processor from a test source or a decoded
// file, either offline into planar buffers or as a float32 byte stream for a
// real-time audio player.
package render

import (
	"fmt"

	dspsignal "github.com/cwbudde/algo-vibrato/dsp/signal"
	"github.com/cwbudde/algo-vibrato/host"
	"github.com/cwbudde/algo-vibrato/internal/automation"
	"github.com/cwbudde/algo-vibrato/internal/wav"
	"github.com/cwbudde/algo-vibrato/measure/analysis"
)

// Channels is the number of channels rendered from a generated source.
const Channels = 2

// Job describes one offline render.
type Job struct {
	// Input, if set, is processed instead of a generated source and fixes the
	// sample rate.
	Input *wav.File
	// Source generates the input when Input is nil.
	Source *dspsignal.Source
	// Seconds is the generated length; ignored for file input.
	Seconds float64
	// BlockSize is the number of frames per Process call.
	BlockSize int
	// Script, if set, updates the store before every block.
	Script *automation.Script
	// MaxLag bounds the latency search of the report. Zero skips it.
	MaxLag int
}

// Result holds the dry input, the processed output and their comparison.
type Result struct {
	SampleRate float64
	Dry        [][]float64
	Wet        [][]float64
	Report     analysis.Report
	Blocks     int
}

// Offline renders job through proc. proc must already be prepared for the
// job's sample rate.
func Offline(proc *host.Processor, job Job) (*Result, error) {
	if job.BlockSize <= 0 {
		return nil, fmt.Errorf("render block size must be > 0: %d", job.BlockSize)
	}

	var (
		dry        [][]float64
		sampleRate float64
		numInputs  int
	)
	switch {
	case job.Input != nil:
		dry, numInputs = fromFile(job.Input)
		sampleRate = float64(job.Input.SampleRate)
	case job.Source != nil:
		frames := int(job.Seconds * job.Source.SampleRate())
		if frames <= 0 {
			return nil, fmt.Errorf("render length must be > 0: %f s", job.Seconds)
		}
		dry = make([][]float64, Channels)
		for ch := range dry {
			dry[ch] = make([]float64, frames)
		}
		job.Source.FillChannels(dry)
		sampleRate, numInputs = job.Source.SampleRate(), Channels
	default:
		return nil, fmt.Errorf("render needs an input file or a source")
	}
	if sampleRate != proc.SampleRate() {
		return nil, fmt.Errorf("render sample rate %g does not match processor %g", sampleRate, proc.SampleRate())
	}

	wet := make([][]float64, len(dry))
	for ch := range dry {
		wet[ch] = append([]float64(nil), dry[ch]...)
	}

	frames := len(wet[0])
	block := make([][]float64, len(wet))
	res := &Result{SampleRate: sampleRate, Dry: dry, Wet: wet}
	for start := 0; start < frames; start += job.BlockSize {
		end := min(start+job.BlockSize, frames)
		if job.Script != nil {
			if err := job.Script.Apply(float64(start)/sampleRate, proc.Store()); err != nil {
				return nil, fmt.Errorf("render block %d: %w", res.Blocks, err)
			}
		}
		for ch := range wet {
			block[ch] = wet[ch][start:end]
		}
		proc.Process(block, numInputs)
		res.Blocks++
	}

	report, err := analysis.Compare(dry[0], wet[0], sampleRate, job.MaxLag)
	if err != nil {
		return nil, err
	}
	res.Report = report
	return res, nil
}

// fromFile returns at least Channels planar copies of f. Mono files are
// duplicated to both channels.
func fromFile(f *wav.File) ([][]float64, int) {
	n := max(len(f.Channels), Channels)
	out := make([][]float64, n)
	for ch := range out {
		src := f.Channels[min(ch, len(f.Channels)-1)]
		out[ch] = append([]float64(nil), src...)
	}
	return out, n
}

// Normalize scales every channel so the loudest sample across all channels
// reaches peak.
func Normalize(channels [][]float64, peak float64) error {
	loudest := 0.0
	for _, ch := range channels {
		loudest = max(loudest, analysis.Peak(ch))
	}
	if loudest == 0 {
		return nil
	}
	for i, ch := range channels {
		// Target is relative to the shared peak.
		scaled, err := dspsignal.Normalize(ch, peak*analysis.Peak(ch)/loudest)
		if err != nil {
			return err
		}
		channels[i] = scaled
	}
	return nil
}
