package render

import (
	"encoding/binary"
	"math"
	"sync"

	dspsignal "github.com/cwbudde/algo-vibrato/dsp/signal"
	"github.com/cwbudde/algo-vibrato/host"
)

// Stream is an io.Reader producing interleaved stereo float32 little-endian
// frames: the source run through the processor one block at a time.
type Stream struct {
	proc *host.Processor
	src  *dspsignal.Source

	mu      sync.Mutex
	buf     [][]float64
	out     []byte
	pending []byte
	blocks  int
}

// NewStream returns a stream rendering blockSize frames per processor call.
func NewStream(proc *host.Processor, src *dspsignal.Source, blockSize int) *Stream {
	s := &Stream{
		proc: proc,
		src:  src,
		buf:  make([][]float64, Channels),
		out:  make([]byte, blockSize*Channels*4),
	}
	for ch := range s.buf {
		s.buf[ch] = make([]float64, blockSize)
	}
	return s
}

// Read fills p completely; it never returns an error.
func (s *Stream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for n < len(p) {
		if len(s.pending) == 0 {
			s.render()
		}
		c := copy(p[n:], s.pending)
		s.pending = s.pending[c:]
		n += c
	}
	return n, nil
}

// Blocks returns the number of blocks rendered so far.
func (s *Stream) Blocks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blocks
}

func (s *Stream) render() {
	s.src.FillChannels(s.buf)
	s.proc.Process(s.buf, Channels)

	frames := len(s.buf[0])
	for i := range frames {
		for ch := range Channels {
			v := float32(s.buf[ch][i])
			binary.LittleEndian.PutUint32(s.out[(i*Channels+ch)*4:], math.Float32bits(v))
		}
	}
	s.pending = s.out
	s.blocks++
}
