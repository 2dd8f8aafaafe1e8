package usecases

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sglre6355/sgrplayer/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrplayer/internal/modules/music_player/domain"
)

// AutoplayPolicy reports whether the player should continue to the next track
// when one ends without a repeat mode.
type AutoplayPolicy interface {
	Autoplay() bool
}

// PlayerService is the playback controller. It owns the track list, the
// transport flags and exactly one audio output.
type PlayerService struct {
	mu        sync.Mutex
	state     *domain.PlayerState
	output    ports.AudioOutput
	autoplay  AutoplayPolicy
	publisher ports.EventPublisher
	closed    bool
}

// NewPlayerService creates a new PlayerService with an empty track list.
func NewPlayerService(
	output ports.AudioOutput,
	autoplay AutoplayPolicy,
	publisher ports.EventPublisher,
) *PlayerService {
	state := domain.NewPlayerState(domain.NewQueue())
	output.SetVolume(state.Volume())

	return &PlayerService{
		state:     state,
		output:    output,
		autoplay:  autoplay,
		publisher: publisher,
	}
}

// Play starts playback of the current track. A refused start is logged and
// leaves the player paused.
func (p *PlayerService) Play(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.state.HasMedia() {
		return ErrNoMedia
	}

	p.state.SetPlaying(true)
	p.syncSource(ctx)

	return nil
}

// Pause pauses playback, keeping the position.
func (p *PlayerService) Pause(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.state.HasMedia() {
		return ErrNoMedia
	}

	p.state.SetPlaying(false)
	p.syncSource(ctx)

	return nil
}

// Seek moves to percent (clamped to 0-100) of the current track. When the
// duration is not known yet only the reported progress changes.
func (p *PlayerService) Seek(ctx context.Context, percent float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.state.HasMedia() {
		return ErrNoMedia
	}

	percent = domain.ClampPercent(percent)
	p.state.SetProgress(percent)

	duration := p.output.Duration()
	if duration <= 0 {
		return nil
	}

	position := time.Duration(percent / 100 * float64(duration))
	if err := p.output.Seek(position); err != nil {
		slog.Warn(
			"failed to seek",
			"position", position,
			"error", err,
		)
	}

	return nil
}

// Next advances to the following track, wrapping after the last one, and
// starts playing it.
func (p *PlayerService) Next(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.state.HasMedia() {
		return ErrNoMedia
	}

	p.state.Queue.Next()
	p.state.SetPlaying(true)
	p.switchTrack(ctx)

	return nil
}

// Prev goes back to the preceding track, wrapping before the first one, and
// starts playing it.
func (p *PlayerService) Prev(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.state.HasMedia() {
		return ErrNoMedia
	}

	p.state.Queue.Prev()
	p.state.SetPlaying(true)
	p.switchTrack(ctx)

	return nil
}

// SelectSong jumps to index and starts playing it.
func (p *PlayerService) SelectSong(ctx context.Context, index int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.state.HasMedia() {
		return ErrNoMedia
	}
	if p.state.Queue.Seek(index) == nil {
		return ErrInvalidIndex
	}

	p.state.SetPlaying(true)
	p.syncSource(ctx)

	return nil
}

// SetVolume sets the volume, clamped to 0-100, and returns the applied value.
func (p *PlayerService) SetVolume(volume int) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	applied := p.state.SetVolume(volume)
	p.output.SetVolume(applied)

	return applied
}

// ToggleMute mutes or restores the previous volume. Returns the new muted flag.
func (p *PlayerService) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	muted := p.state.ToggleMute()
	p.output.SetVolume(p.state.Volume())

	return muted
}

// ToggleShuffle flips the shuffle flag. Traversal order is not affected.
func (p *PlayerService) ToggleShuffle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state.ToggleShuffle()
}

// ToggleRepeat cycles the repeat mode: off -> all -> one -> off.
func (p *PlayerService) ToggleRepeat() domain.RepeatMode {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state.CycleRepeatMode()
}

// HandleTrackEnded runs the end-of-track state machine. Notifications for a
// source other than the loaded one are stale and ignored.
func (p *PlayerService) HandleTrackEnded(ctx context.Context, source string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	if source != "" && source != p.output.Source() {
		slog.Debug("ignoring stale track end", "source", source)
		return
	}

	autoplay := p.autoplay != nil && p.autoplay.Autoplay()
	action := p.state.ResolveTrackEnd(autoplay)

	slog.Debug(
		"track ended",
		"action", action.String(),
		"repeat_mode", p.state.RepeatMode().String(),
		"autoplay", autoplay,
	)

	switch action {
	case domain.TrackEndRestart:
		p.state.SetPlaying(true)
		p.restart(ctx)
	case domain.TrackEndAdvance:
		p.state.Queue.Next()
		p.state.SetPlaying(true)
		p.switchTrack(ctx)
	default:
		p.state.SetPlaying(false)
		p.state.SetProgress(100)
		if err := p.output.Pause(); err != nil {
			slog.Warn("failed to pause output", "error", err)
		}
	}
}

// SetTracks replaces the track list. The current track is kept if it is
// still present; otherwise the list restarts at index 0.
func (p *PlayerService) SetTracks(ctx context.Context, tracks []domain.Track) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state.Queue.Replace(tracks)
	p.syncSource(ctx)
}

// State returns a snapshot of the player.
func (p *PlayerService) State() domain.PlaybackState {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state.Snapshot(p.output.Position(), p.output.Duration())
}

// Analyser returns the analysis tap of the output.
func (p *PlayerService) Analyser() ports.Analyser {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	return p.output.Analyser()
}

// Close stops playback and releases the output. Safe to call more than once.
func (p *PlayerService) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.state.SetPlaying(false)

	return p.output.Close()
}

// switchTrack loads the track at the current index. When the index did not
// change the source (a single-track list) the track restarts instead.
func (p *PlayerService) switchTrack(ctx context.Context) {
	current := p.state.Queue.Current()
	if current != nil && current.AudioURL == p.output.Source() {
		p.restart(ctx)
		return
	}
	p.syncSource(ctx)
}

func (p *PlayerService) restart(ctx context.Context) {
	if err := p.output.Seek(0); err != nil {
		slog.Warn("failed to rewind output", "error", err)
	}
	p.state.SetProgress(0)
	p.syncSource(ctx)
}

// syncSource is the track-switch protocol. It compares the loaded source with
// the URL derived from the current index at the time of the call, loads only
// on a mismatch and then applies the playing flag to the output.
func (p *PlayerService) syncSource(ctx context.Context) {
	if p.closed {
		return
	}

	current := p.state.Queue.Current()
	if current == nil {
		p.state.SetPlaying(false)
		p.state.SetProgress(0)
		p.releaseSource()
		return
	}

	if p.output.Source() != current.AudioURL {
		if err := p.output.Load(ctx, current.AudioURL); err != nil {
			slog.Warn(
				"failed to load track",
				"track_id", current.ID,
				"source", current.AudioURL,
				"error", err,
			)
			p.state.SetPlaying(false)
			p.releaseSource()
			p.publish(domain.PlaybackFailedEvent{Source: current.AudioURL, Err: err})
			return
		}
		p.state.SetProgress(0)
		p.publish(domain.TrackChangedEvent{
			Index: p.state.Queue.CurrentIndex(),
			Track: *current,
		})
	}

	if !p.state.IsPlaying() {
		if err := p.output.Pause(); err != nil {
			slog.Warn("failed to pause output", "error", err)
		}
		return
	}

	if err := p.output.Play(ctx); err != nil {
		slog.Warn(
			"playback refused, reverting to paused",
			"track_id", current.ID,
			"error", err,
		)
		p.state.SetPlaying(false)
		p.publish(domain.PlaybackFailedEvent{Source: current.AudioURL, Err: err})
	}
}

// releaseSource unloads whatever the output still holds, so an old track
// neither keeps sounding nor reports its end as current.
func (p *PlayerService) releaseSource() {
	if p.output.Source() == "" {
		return
	}
	if err := p.output.Unload(); err != nil {
		slog.Warn("failed to unload output", "error", err)
	}
}

func (p *PlayerService) publish(event domain.Event) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(event); err != nil {
		slog.Warn(
			"failed to publish event",
			"event", event.EventName(),
			"error", err,
		)
	}
}
