//go:build unix

package main

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"time"

	"golang.org/x/term"
)

// readKeys puts stdin into raw non-blocking mode and forwards every byte to
// keys until ctx is done. The terminal is restored before it returns.
func readKeys(ctx context.Context, keys chan<- byte) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		<-ctx.Done()
		return nil
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("raw terminal: %w", err)
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	if err := syscall.SetNonblock(fd, true); err != nil {
		return fmt.Errorf("nonblocking stdin: %w", err)
	}
	defer func() { _ = syscall.SetNonblock(fd, false) }()

	buf := make([]byte, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := syscall.Read(fd, buf)
		if n > 0 {
			select {
			case keys <- buf[0]:
			case <-ctx.Done():
				return nil
			}
			continue
		}
		if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK || (err == nil && n == 0) {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}
}
