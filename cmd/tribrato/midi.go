package main

import (
	"context"
	"fmt"
	"log"

	"gitlab.com/gomidi/rtmididrv"

	"github.com/cwbudde/algo-vibrato/host"
	"github.com/cwbudde/algo-vibrato/internal/control"
)

// listenMIDI feeds note events from the first MIDI input into store until
// ctx is done.
func listenMIDI(ctx context.Context, store *host.Store) error {
	drv, err := rtmididrv.New()
	if err != nil {
		return fmt.Errorf("MIDI driver: %w", err)
	}
	defer func() {
		if err := drv.Close(); err != nil {
			log.Printf("failed to close MIDI driver: %v\n", err)
		}
	}()

	ins, err := drv.Ins()
	if err != nil {
		return fmt.Errorf("MIDI inputs: %w", err)
	}
	if len(ins) == 0 {
		log.Println("WARN: no MIDI input found")
		<-ctx.Done()
		return nil
	}

	in := ins[0]
	if err := in.Open(); err != nil {
		return fmt.Errorf("open MIDI input: %w", err)
	}
	defer func() {
		if err := in.Close(); err != nil {
			log.Printf("failed to close MIDI input: %v\n", err)
		}
	}()
	log.Println("opened " + in.String())

	msgs := make(chan []byte, 256)
	if err := in.SetListener(func(data []byte, deltaMicroseconds int64) {
		msg := append([]byte(nil), data...)
		select {
		case msgs <- msg:
		default:
		}
	}); err != nil {
		return fmt.Errorf("MIDI listener: %w", err)
	}
	defer func() {
		if err := in.StopListening(); err != nil {
			log.Printf("failed to stop listening: %v\n", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-msgs:
			ev, err := control.MIDI(store, msg)
			if err != nil {
				return err
			}
			if ev.Handled {
				log.Printf("MIDI row %d trigger %v\r\n", ev.Row, ev.Triggered)
			}
		}
	}
}
