package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sglre6355/sgrplayer/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrplayer/internal/modules/music_player/domain"
)

var _ ports.AudioOutput = (*SilentOutput)(nil)

// SilentOutput is a headless AudioOutput. It keeps time like a real device
// would and publishes a TrackEndedEvent when a source has played through,
// but produces no sound. Its analyser always reads silence.
type SilentOutput struct {
	mu        sync.Mutex
	opener    ports.SourceOpener
	probe     ports.DurationProbe
	publisher ports.EventPublisher
	tap       *Tap
	now       func() time.Time

	source     string
	duration   time.Duration
	offset     time.Duration // position when playback last started or stopped
	startedAt  time.Time     // zero while paused
	timer      *time.Timer
	generation uint64
	closed     bool
}

// NewSilentOutput creates a SilentOutput. probe may be nil, in which case
// sources have an unknown duration and never end on their own.
func NewSilentOutput(
	opener ports.SourceOpener,
	probe ports.DurationProbe,
	publisher ports.EventPublisher,
) *SilentOutput {
	return &SilentOutput{
		opener:    opener,
		probe:     probe,
		publisher: publisher,
		tap:       NewTap(nil, DefaultFFTSize),
		now:       time.Now,
	}
}

// Load opens source to measure it and arms it paused at the start.
func (o *SilentOutput) Load(ctx context.Context, source string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrOutputClosed
	}

	rc, err := o.opener.Open(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer rc.Close()

	var duration time.Duration
	if o.probe != nil {
		duration, err = o.probe.Duration(rc)
		if err != nil {
			return fmt.Errorf("failed to decode source: %w", err)
		}
	}

	o.stopLocked()
	o.source = source
	o.duration = duration
	o.offset = 0

	return nil
}

// Unload drops the current source.
func (o *SilentOutput) Unload() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.stopLocked()
	o.source = ""
	o.duration = 0
	o.offset = 0

	return nil
}

// Source returns the URL of the loaded source.
func (o *SilentOutput) Source() string {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.source
}

// Play starts the clock from the current position.
func (o *SilentOutput) Play(_ context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrOutputClosed
	}
	if o.source == "" {
		return ErrNoSource
	}
	if !o.startedAt.IsZero() {
		return nil
	}

	if o.duration > 0 && o.offset >= o.duration {
		o.offset = 0
	}
	o.startedAt = o.now()
	o.scheduleLocked()

	return nil
}

// Pause stops the clock.
func (o *SilentOutput) Pause() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.stopLocked()
	return nil
}

// Seek moves to position, clamped to the source length.
func (o *SilentOutput) Seek(position time.Duration) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.source == "" {
		return ErrNoSource
	}

	position = max(0, position)
	if o.duration > 0 {
		position = min(position, o.duration)
	}

	playing := !o.startedAt.IsZero()
	o.stopLocked()
	o.offset = position
	if playing {
		o.startedAt = o.now()
		o.scheduleLocked()
	}

	return nil
}

// Position returns the elapsed playing time.
func (o *SilentOutput) Position() time.Duration {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.positionLocked()
}

// Duration returns the probed length of the source.
func (o *SilentOutput) Duration() time.Duration {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.duration
}

// SetVolume is a no-op.
func (o *SilentOutput) SetVolume(int) {}

// Analyser returns a tap that never receives a signal.
func (o *SilentOutput) Analyser() ports.Analyser {
	return o.tap
}

// Close stops the clock.
func (o *SilentOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.stopLocked()
	o.closed = true

	return nil
}

func (o *SilentOutput) positionLocked() time.Duration {
	position := o.offset
	if !o.startedAt.IsZero() {
		position += o.now().Sub(o.startedAt)
	}
	if o.duration > 0 {
		position = min(position, o.duration)
	}
	return position
}

// stopLocked freezes the position and invalidates the pending end timer,
// including one that already fired and waits for the lock.
func (o *SilentOutput) stopLocked() {
	o.offset = o.positionLocked()
	o.startedAt = time.Time{}
	o.generation++
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
}

func (o *SilentOutput) scheduleLocked() {
	if o.duration <= 0 {
		return
	}

	generation := o.generation
	source := o.source
	o.timer = time.AfterFunc(o.duration-o.offset, func() {
		o.finish(generation, source)
	})
}

func (o *SilentOutput) finish(generation uint64, source string) {
	o.mu.Lock()
	if generation != o.generation || o.startedAt.IsZero() {
		o.mu.Unlock()
		return
	}
	o.offset = o.duration
	o.startedAt = time.Time{}
	o.timer = nil
	o.mu.Unlock()

	if o.publisher == nil {
		return
	}
	if err := o.publisher.Publish(domain.TrackEndedEvent{
		Source:     source,
		Generation: generation,
	}); err != nil {
		slog.Warn("failed to publish TrackEndedEvent", "source", source, "error", err)
	}
}
