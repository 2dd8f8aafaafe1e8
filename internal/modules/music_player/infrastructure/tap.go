package infrastructure

import (
	"math"
	"sync"

	"github.com/gopxl/beep/v2"

	"github.com/sglre6355/sgrplayer/internal/modules/music_player/application/ports"
)

// DefaultFFTSize is the analysis window of the output tap.
const DefaultFFTSize = 256

var _ ports.Analyser = (*Tap)(nil)

// Tap is a streamer wrapper that copies a mono mix of the samples flowing
// through it into a ring buffer. The signal itself is passed on unchanged.
type Tap struct {
	mu     sync.Mutex
	s      beep.Streamer
	buf    []float64
	pos    int
	size   int
	window []float64
}

// NewTap creates a Tap with a window of size samples. s may be nil and set
// later with Attach.
func NewTap(s beep.Streamer, size int) *Tap {
	if size <= 0 {
		size = DefaultFFTSize
	}

	// Hann window for the spectrum.
	window := make([]float64, size)
	for i := range window {
		window[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(size-1)))
	}

	return &Tap{
		s:      s,
		buf:    make([]float64, size),
		size:   size,
		window: window,
	}
}

// Attach replaces the wrapped streamer and clears the buffer. A nil streamer
// detaches the tap.
func (t *Tap) Attach(s beep.Streamer) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.s = s
	clear(t.buf)
	t.pos = 0
}

// Stream passes audio through while capturing it into the ring buffer.
func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	t.mu.Lock()
	s := t.s
	t.mu.Unlock()

	if s == nil {
		return 0, false
	}

	n, ok := s.Stream(samples)

	t.mu.Lock()
	for i := range n {
		t.buf[t.pos] = (samples[i][0] + samples[i][1]) / 2
		t.pos = (t.pos + 1) % t.size
	}
	t.mu.Unlock()

	return n, ok
}

// Err returns the wrapped streamer's error.
func (t *Tap) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.s == nil {
		return nil
	}
	return t.s.Err()
}

// FFTSize implements ports.Analyser.
func (t *Tap) FFTSize() int {
	return t.size
}

// TimeDomain returns the buffered samples in chronological order, clamped
// to [-1, 1].
func (t *Tap) TimeDomain() []float64 {
	out := make([]float64, t.size)

	t.mu.Lock()
	for i := range t.size {
		out[i] = t.buf[(t.pos+i)%t.size]
	}
	t.mu.Unlock()

	for i, v := range out {
		out[i] = max(-1, min(1, v))
	}
	return out
}

// Frequency returns the magnitude spectrum of the buffered samples,
// normalized to [0, 1].
func (t *Tap) Frequency() []float64 {
	samples := t.TimeDomain()
	bins := t.size / 2
	out := make([]float64, bins)

	// Direct DFT over the window.
	for k := range bins {
		var re, im float64
		for n, v := range samples {
			angle := 2 * math.Pi * float64(k) * float64(n) / float64(t.size)
			w := v * t.window[n]
			re += w * math.Cos(angle)
			im -= w * math.Sin(angle)
		}
		magnitude := math.Sqrt(re*re+im*im) * 4 / float64(t.size)
		out[k] = min(1, magnitude)
	}

	return out
}
