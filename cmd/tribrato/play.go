package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ebitengine/oto/v3"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-vibrato/dsp/core"
	"github.com/cwbudde/algo-vibrato/host"
	"github.com/cwbudde/algo-vibrato/internal/control"
	"github.com/cwbudde/algo-vibrato/internal/render"
)

var errQuit = errors.New("quit requested")

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	sampleRate := fs.Int("sample-rate", 48000, "output sample rate")
	block := fs.Int("block", 256, "frames per processing block")
	latency := fs.Duration("latency", 40*time.Millisecond, "audio device buffer length")
	gain := fs.Float64("gain", 0, "output trim in dB (-24..12)")
	useMIDI := fs.Bool("midi", false, "listen on the first MIDI input: notes below 60 drive row 1, others row 2")
	src := registerSourceFlags(fs)
	rows := registerAllRows(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := newRowStore(rows)
	if err != nil {
		return err
	}
	proc, err := host.NewProcessor(store,
		host.WithOutputGainDB(*gain),
		host.WithProcessorOptions(core.WithSampleRate(float64(*sampleRate)), core.WithBlockSize(*block)),
	)
	if err != nil {
		return err
	}
	defer proc.Release()

	source, err := src.build(float64(*sampleRate))
	if err != nil {
		return err
	}
	stream := render.NewStream(proc, source, *block)

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   *sampleRate,
		ChannelCount: render.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   *latency,
	})
	if err != nil {
		return fmt.Errorf("audio output: %w", err)
	}
	<-ready

	player := otoCtx.NewPlayer(stream)
	player.Play()
	defer player.Pause()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "playing %s at %d Hz: 1/2 press a row, shift+1/2 release, q quits\r\n", *src.wave, *sampleRate)

	g, ctx := errgroup.WithContext(ctx)
	keys := make(chan byte, 16)
	g.Go(func() error {
		return readKeys(ctx, keys)
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case b := <-keys:
				ev, err := control.Key(store, b)
				if err != nil {
					return err
				}
				if ev.Quit {
					return errQuit
				}
				if ev.Handled {
					fmt.Fprintf(os.Stderr, "row %d trigger %v\r\n", ev.Row, ev.Triggered)
				}
			}
		}
	})
	if *useMIDI {
		g.Go(func() error {
			return listenMIDI(ctx, store)
		})
	}
	g.Go(func() error {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := player.Err(); err != nil {
					return fmt.Errorf("audio output: %w", err)
				}
			}
		}
	})

	err = g.Wait()
	log.Printf("stopped after %d blocks", stream.Blocks())
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}
