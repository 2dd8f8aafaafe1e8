package ports

import (
	"context"
	"time"
)

// AudioOutput defines the interface of the single media resource the
// playback controller drives.
type AudioOutput interface {
	// Load replaces the current source. The previous source is abandoned and
	// its pending end notification, if any, is dropped.
	Load(ctx context.Context, source string) error

	// Unload releases the current source and stops output.
	Unload() error

	// Source returns the URL of the loaded source, or "" if none.
	Source() string

	// Play starts or resumes output of the loaded source.
	Play(ctx context.Context) error

	// Pause stops output, keeping the position.
	Pause() error

	// Seek moves to an absolute position.
	Seek(position time.Duration) error

	// Position returns the current playback position.
	Position() time.Duration

	// Duration returns the length of the loaded source, or 0 if unknown.
	Duration() time.Duration

	// SetVolume sets the output level in the range 0-100.
	SetVolume(volume int)

	// Analyser returns the analysis tap of this output.
	Analyser() Analyser

	// Close stops playback, detaches the tap and releases the device.
	Close() error
}

// Analyser exposes the signal flowing through an AudioOutput for visualizers.
type Analyser interface {
	// FFTSize returns the analysis window size.
	FFTSize() int

	// TimeDomain returns the latest FFTSize samples in the range [-1, 1].
	TimeDomain() []float64

	// Frequency returns FFTSize/2 normalized magnitudes in the range [0, 1].
	Frequency() []float64
}
