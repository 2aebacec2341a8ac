package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-vibrato/dsp/core"
	"github.com/cwbudde/algo-vibrato/dsp/delay"
	"github.com/cwbudde/algo-vibrato/host"
	"github.com/cwbudde/algo-vibrato/internal/automation"
	"github.com/cwbudde/algo-vibrato/internal/render"
	"github.com/cwbudde/algo-vibrato/internal/wav"
)

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	sampleRate := fs.Float64("sample-rate", 48000, "sample rate for generated sources")
	seconds := fs.Float64("seconds", 2, "length of the generated source")
	block := fs.Int("block", 512, "frames per processing block")
	in := fs.String("in", "", "input WAV file (float32 or 16-bit PCM); overrides -source")
	out := fs.String("out", "out.wav", "output WAV file")
	script := fs.String("script", "", "Lua automation script defining automate(t, row)")
	gain := fs.Float64("gain", 0, "output trim in dB (-24..12)")
	normalize := fs.Float64("normalize", 0, "scale the output to this peak level; 0 keeps it")
	src := registerSourceFlags(fs)
	rows := registerAllRows(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := newRowStore(rows)
	if err != nil {
		return err
	}

	job := render.Job{BlockSize: *block, Seconds: *seconds, MaxLag: host.Rows * delay.Size}
	if *in != "" {
		data, err := os.ReadFile(*in)
		if err != nil {
			return err
		}
		job.Input, err = wav.Decode(data)
		if err != nil {
			return fmt.Errorf("%s: %w", *in, err)
		}
		*sampleRate = float64(job.Input.SampleRate)
		log.Printf("loaded %s: %d channels, %d frames at %d Hz", *in, len(job.Input.Channels), job.Input.Frames(), job.Input.SampleRate)
	} else {
		job.Source, err = src.build(*sampleRate)
		if err != nil {
			return err
		}
	}

	if *script != "" {
		job.Script, err = automation.Load(*script)
		if err != nil {
			return err
		}
		defer job.Script.Close()
	}

	proc, err := host.NewProcessor(store,
		host.WithOutputGainDB(*gain),
		host.WithProcessorOptions(core.WithSampleRate(*sampleRate), core.WithBlockSize(*block)),
	)
	if err != nil {
		return err
	}

	res, err := render.Offline(proc, job)
	if err != nil {
		return err
	}
	if *normalize > 0 {
		if err := render.Normalize(res.Wet, *normalize); err != nil {
			return err
		}
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := wav.Write(f, res.Wet, int(res.SampleRate)); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("wrote %s: %d blocks", *out, res.Blocks)

	return printReport(res)
}

func printReport(res *render.Result) error {
	r := res.Report
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	rows := []struct {
		name     string
		dry, wet string
	}{
		{"RMS", fmt.Sprintf("%.4f", r.InputRMS), fmt.Sprintf("%.4f", r.OutputRMS)},
		{"Gain [dB]", "", fmt.Sprintf("%.2f", r.GainDB)},
		{"Peak", "", fmt.Sprintf("%.4f", r.OutputPeak)},
		{"Peak freq [Hz]", fmt.Sprintf("%.1f", r.InputPeakHz), fmt.Sprintf("%.1f", r.OutputPeakHz)},
		{"Centroid [Hz]", fmt.Sprintf("%.1f", r.InputCentroid), fmt.Sprintf("%.1f", r.OutputCentroid)},
		{"Spread [Hz]", fmt.Sprintf("%.1f", r.InputSpread), fmt.Sprintf("%.1f", r.OutputSpread)},
		{"Crest factor", "", fmt.Sprintf("%.3f", r.OutputCrest)},
		{"Flatness", "", fmt.Sprintf("%.4f", r.OutputFlatness)},
		{"Latency [samples]", "", fmt.Sprintf("%d (corr %.3f)", r.Latency, r.Correlation)},
	}

	if _, err := fmt.Fprintf(tw, "Measure\tInput\tOutput\n-------\t-----\t------\n"); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", row.name, row.dry, row.wet); err != nil {
			return err
		}
	}
	return tw.Flush()
}
