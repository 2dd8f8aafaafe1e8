package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/sglre6355/sgrplayer/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrplayer/internal/modules/music_player/domain"
)

const resampleQuality = 4

var (
	// ErrNoSource is returned when an operation needs a loaded source.
	ErrNoSource = errors.New("no source loaded")

	// ErrOutputClosed is returned by outputs used after Close.
	ErrOutputClosed = errors.New("audio output is closed")
)

var _ ports.AudioOutput = (*BeepOutput)(nil)

// beepTrack is the decoded state of the loaded source.
type beepTrack struct {
	source   string
	streamer beep.StreamSeekCloser
	format   beep.Format
}

// deck is the permanent head of the output chain. It plays the current
// chain and streams silence once that chain has ended, so the speaker keeps
// a single mixer entry for the lifetime of the output. It is only touched
// with the speaker lock held.
type deck struct {
	cur beep.Streamer
}

func (d *deck) Stream(samples [][2]float64) (int, bool) {
	filled := 0
	if d.cur != nil {
		n, ok := d.cur.Stream(samples)
		filled = n
		if !ok {
			d.cur = nil
		}
	}
	clear(samples[filled:])
	return len(samples), true
}

func (d *deck) Err() error { return nil }

// BeepOutput plays MP3 sources on the system audio device.
//
// The chain is speaker <- tap <- volume <- deck <- Seq(ctrl, ended callback)
// <- resampler <- decoder. Each armed chain carries a generation number; the
// ended callback only publishes a TrackEndedEvent when its generation is
// still current, which drops notifications of abandoned sources.
type BeepOutput struct {
	mu        sync.Mutex
	opener    ports.SourceOpener
	publisher ports.EventPublisher

	sampleRate beep.SampleRate
	deck       *deck
	volume     *effects.Volume
	tap        *Tap

	track      *beepTrack
	ctrl       *beep.Ctrl
	paused     bool
	generation atomic.Uint64
	closed     bool
}

// NewBeepOutput opens the speaker and attaches an idle output chain to it.
func NewBeepOutput(opener ports.SourceOpener, publisher ports.EventPublisher) (*BeepOutput, error) {
	rate, err := initSpeaker(DefaultSampleRate)
	if err != nil {
		return nil, err
	}

	d := &deck{}
	volume := &effects.Volume{Streamer: d, Base: 2}
	o := &BeepOutput{
		opener:     opener,
		publisher:  publisher,
		sampleRate: rate,
		deck:       d,
		volume:     volume,
		tap:        NewTap(volume, DefaultFFTSize),
		paused:     true,
	}

	speaker.Play(o.tap)

	slog.Info("audio output ready", "sample_rate", int(rate))

	return o, nil
}

// Load decodes source and arms it paused at the start.
func (o *BeepOutput) Load(ctx context.Context, source string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrOutputClosed
	}

	rc, err := o.opener.Open(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}

	streamer, format, err := mp3.Decode(rc)
	if err != nil {
		rc.Close()
		return fmt.Errorf("failed to decode source: %w", err)
	}

	speaker.Lock()
	previous := o.track
	o.track = &beepTrack{source: source, streamer: streamer, format: format}
	o.paused = true
	o.armLocked()
	speaker.Unlock()

	if previous != nil {
		previous.streamer.Close()
	}

	slog.Debug("loaded source", "source", source, "sample_rate", int(format.SampleRate))

	return nil
}

// Unload drops the current source.
func (o *BeepOutput) Unload() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.unload()
}

func (o *BeepOutput) unload() error {
	speaker.Lock()
	previous := o.track
	o.track = nil
	o.ctrl = nil
	o.paused = true
	o.deck.cur = nil
	o.generation.Add(1)
	speaker.Unlock()

	if previous != nil {
		return previous.streamer.Close()
	}
	return nil
}

// Source returns the URL of the loaded source.
func (o *BeepOutput) Source() string {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.track == nil {
		return ""
	}
	return o.track.source
}

// Play resumes output. A chain that already played to its end is re-armed,
// from the start when the decoder is exhausted.
func (o *BeepOutput) Play(_ context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrOutputClosed
	}
	if o.track == nil {
		return ErrNoSource
	}

	speaker.Lock()
	defer speaker.Unlock()

	o.paused = false
	if o.deck.cur == nil {
		if err := rewindIfFinished(o.track.streamer); err != nil {
			return err
		}
		o.armLocked()
		return nil
	}
	o.ctrl.Paused = false

	return nil
}

// Pause stops output, keeping the position.
func (o *BeepOutput) Pause() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	speaker.Lock()
	defer speaker.Unlock()

	o.paused = true
	if o.ctrl != nil {
		o.ctrl.Paused = true
	}

	return nil
}

// Seek moves to position, clamped to the source length.
func (o *BeepOutput) Seek(position time.Duration) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.track == nil {
		return ErrNoSource
	}

	speaker.Lock()
	defer speaker.Unlock()

	streamer := o.track.streamer
	n := o.track.format.SampleRate.N(position)
	n = max(0, min(n, streamer.Len()-1))

	if err := streamer.Seek(n); err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}

	return nil
}

// Position returns the decoder position.
func (o *BeepOutput) Position() time.Duration {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.track == nil {
		return 0
	}

	speaker.Lock()
	defer speaker.Unlock()

	return o.track.format.SampleRate.D(o.track.streamer.Position())
}

// Duration returns the length of the loaded source.
func (o *BeepOutput) Duration() time.Duration {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.track == nil {
		return 0
	}
	return o.track.format.SampleRate.D(o.track.streamer.Len())
}

// SetVolume maps volume 0-100 onto the exponential gain of effects.Volume.
// 100 is unity gain and 0 silences the output.
func (o *BeepOutput) SetVolume(volume int) {
	volume = domain.ClampVolume(volume)

	speaker.Lock()
	defer speaker.Unlock()

	o.volume.Silent = volume == 0
	if volume > 0 {
		o.volume.Volume = math.Log2(float64(volume) / 100)
	}
}

// Analyser returns the tap behind the volume stage.
func (o *BeepOutput) Analyser() ports.Analyser {
	return o.tap
}

// Close unloads the source and detaches the chain from the speaker.
func (o *BeepOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil
	}
	o.closed = true

	err := o.unload()
	o.tap.Attach(nil)

	return err
}

// armLocked builds a fresh chain for the current track and bumps the
// generation. The caller holds the speaker lock.
func (o *BeepOutput) armLocked() {
	track := o.track
	generation := o.generation.Add(1)

	resampled := beep.Resample(resampleQuality, track.format.SampleRate, o.sampleRate, track.streamer)
	o.ctrl = &beep.Ctrl{Streamer: resampled, Paused: o.paused}
	o.deck.cur = beep.Seq(o.ctrl, beep.Callback(func() {
		o.ended(generation, track.source)
	}))
}

// rewindIfFinished seeks s back to the start once it has been played through.
func rewindIfFinished(s beep.StreamSeeker) error {
	if s.Position() < s.Len() {
		return nil
	}
	if err := s.Seek(0); err != nil {
		return fmt.Errorf("failed to rewind: %w", err)
	}
	return nil
}

// ended runs on the speaker goroutine with the speaker lock held, so it
// must not block or take o.mu.
func (o *BeepOutput) ended(generation uint64, source string) {
	if o.generation.Load() != generation {
		return
	}
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
