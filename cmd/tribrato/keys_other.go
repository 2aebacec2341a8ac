//go:build !unix

package main

import (
	"context"
	"log"
)

// readKeys is unavailable here; triggers come from flags or MIDI only.
func readKeys(ctx context.Context, _ chan<- byte) error {
	log.Println("keyboard triggers are not supported on this platform")
	<-ctx.Done()
	return nil
}
