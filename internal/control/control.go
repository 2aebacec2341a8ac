// Package control maps keyboard bytes and MIDI messages onto row triggers.
package control

import "github.com/cwbudde/algo-vibrato/host"

// SplitNote is the lowest MIDI note that drives row 2; lower notes drive
// row 1.
const SplitNote = 60

const (
	statusNoteOff = 0x80
	statusNoteOn  = 0x90
	ctrlC         = 0x03
)

// Event describes the effect of one input.
type Event struct {
	Row       int
	Triggered bool
	Quit      bool
	Handled   bool
}

// Key applies one raw terminal byte: '1' and '2' press a row, '!' and '@'
// (shift+1, shift+2) release it, 'q' or Ctrl-C quit.
func Key(store *host.Store, b byte) (Event, error) {
	switch b {
	case 'q', 'Q', ctrlC:
		return Event{Quit: true, Handled: true}, nil
	case '1', '2':
		return press(store, int(b-'0'))
	case '!':
		return release(store, 1)
	case '@':
		return release(store, 2)
	}
	return Event{}, nil
}

// MIDI applies one MIDI message. Note-on presses the row chosen by
// SplitNote; note-off and note-on with zero velocity release it. Other
// messages are ignored.
func MIDI(store *host.Store, msg []byte) (Event, error) {
	if len(msg) < 3 {
		return Event{}, nil
	}
	status, note, velocity := msg[0]&0xF0, msg[1], msg[2]
	row := 1
	if note >= SplitNote {
		row = 2
	}

	switch {
	case status == statusNoteOn && velocity > 0:
		return press(store, row)
	case status == statusNoteOff, status == statusNoteOn:
		return release(store, row)
	}
	return Event{}, nil
}

func press(store *host.Store, row int) (Event, error) {
	on, err := store.Press(row)
	return Event{Row: row, Triggered: on, Handled: err == nil}, err
}

func release(store *host.Store, row int) (Event, error) {
	on, err := store.Release(row)
	return Event{Row: row, Triggered: on, Handled: err == nil}, err
}
