package domain

import "time"

// Volume bounds and the initial level of a fresh player.
const (
	MinVolume     = 0
	MaxVolume     = 100
	DefaultVolume = 70
)

// TrackEndAction is the outcome of the end-of-track state machine.
type TrackEndAction int

const (
	TrackEndStop    TrackEndAction = iota // stop and mark not playing
	TrackEndRestart                       // restart the same track from zero
	TrackEndAdvance                       // move to the next track, wrapping
)

// String returns a human-readable representation of the action.
func (a TrackEndAction) String() string {
	switch a {
	case TrackEndRestart:
		return "restart"
	case TrackEndAdvance:
		return "advance"
	default:
		return "stop"
	}
}

// PlaybackState is a read-only snapshot of the player.
type PlaybackState struct {
	CurrentIndex int
	CurrentTrack *Track
	TrackCount   int
	IsPlaying    bool
	Volume       int
	IsMuted      bool
	Shuffle      bool
	RepeatMode   RepeatMode
	CurrentTime  time.Duration
	Duration     time.Duration
	Progress     float64 // 0-100
}

// HasMedia reports whether the snapshot refers to a non-empty track list.
func (s PlaybackState) HasMedia() bool {
	return s.TrackCount > 0
}

// PlayerState represents the mutable state owned by the playback controller.
type PlayerState struct {
	Queue          Queue // Track list with index-based navigation
	isPlaying      bool
	volume         int
	previousVolume int // volume to restore on unmute
	isMuted        bool
	shuffle        bool
	repeatMode     RepeatMode
	progress       float64 // last known progress, 0-100
}

// NewPlayerState creates a new PlayerState over the given queue.
func NewPlayerState(queue Queue) *PlayerState {
	return &PlayerState{
		Queue:          queue,
		volume:         DefaultVolume,
		previousVolume: DefaultVolume,
		repeatMode:     RepeatOff,
	}
}

// HasMedia reports whether there is at least one track to play.
func (p *PlayerState) HasMedia() bool {
	return !p.Queue.IsEmpty()
}

// IsPlaying returns true if the player intends to be playing.
func (p *PlayerState) IsPlaying() bool {
	return p.isPlaying
}

// SetPlaying sets the playing flag.
func (p *PlayerState) SetPlaying(playing bool) {
	p.isPlaying = playing
}

// Volume returns the volume level in [0, 100].
func (p *PlayerState) Volume() int {
	return p.volume
}

// SetVolume clamps v into [0, 100] and stores it. Setting a level above zero
// while muted clears the muted flag. Returns the stored level.
func (p *PlayerState) SetVolume(v int) int {
	v = ClampVolume(v)
	p.volume = v
	if v > 0 && p.isMuted {
		p.isMuted = false
	}
	return v
}

// IsMuted returns true if the output is muted.
func (p *PlayerState) IsMuted() bool {
	return p.isMuted
}

// ToggleMute flips the muted flag. Muting remembers the current volume and
// drops it to zero; unmuting restores the remembered volume.
// Returns the new muted flag.
func (p *PlayerState) ToggleMute() bool {
	if p.isMuted {
		p.volume = p.previousVolume
		p.isMuted = false
		return false
	}

	p.previousVolume = p.volume
	p.volume = 0
	p.isMuted = true
	return true
}

// Shuffle returns the shuffle flag.
func (p *PlayerState) Shuffle() bool {
	return p.shuffle
}

// ToggleShuffle flips the shuffle flag and returns the new value.
func (p *PlayerState) ToggleShuffle() bool {
	p.shuffle = !p.shuffle
	return p.shuffle
}

// RepeatMode returns the current repeat mode.
func (p *PlayerState) RepeatMode() RepeatMode {
	return p.repeatMode
}

// SetRepeatMode sets the repeat mode.
func (p *PlayerState) SetRepeatMode(mode RepeatMode) {
	p.repeatMode = mode
}

// CycleRepeatMode cycles through repeat modes: Off -> All -> One -> Off.
// Returns the new repeat mode.
func (p *PlayerState) CycleRepeatMode() RepeatMode {
	p.repeatMode = p.repeatMode.Next()
	return p.repeatMode
}

// Progress returns the last known progress in percent.
func (p *PlayerState) Progress() float64 {
	return p.progress
}

// SetProgress stores the progress in percent, clamped into [0, 100].
func (p *PlayerState) SetProgress(percent float64) {
	p.progress = ClampPercent(percent)
}

// ResolveTrackEnd decides what happens when the current track finishes.
// Repeat-one wins over everything, repeat-all always advances, otherwise
// autoplay advances only when there is another track to go to.
func (p *PlayerState) ResolveTrackEnd(autoplay bool) TrackEndAction {
	if !p.HasMedia() {
		return TrackEndStop
	}

	switch {
	case p.repeatMode == RepeatOne:
		return TrackEndRestart
	case p.repeatMode == RepeatAll:
		return TrackEndAdvance
	case autoplay && p.Queue.Len() > 1:
		return TrackEndAdvance
	default:
		return TrackEndStop
	}
}

// Snapshot returns a PlaybackState for the given output position.
func (p *PlayerState) Snapshot(position, duration time.Duration) PlaybackState {
	state := PlaybackState{
		CurrentIndex: p.Queue.CurrentIndex(),
		TrackCount:   p.Queue.Len(),
		IsPlaying:    p.isPlaying,
		Volume:       p.volume,
		IsMuted:      p.isMuted,
		Shuffle:      p.shuffle,
		RepeatMode:   p.repeatMode,
		CurrentTime:  position,
		Duration:     duration,
		Progress:     p.progress,
	}

	if cur := p.Queue.Current(); cur != nil {
		track := *cur
		state.CurrentTrack = &track
	}
	if duration > 0 {
		state.Progress = ClampPercent(float64(position) / float64(duration) * 100)
	}

	return state
}

// ClampVolume clamps v into [MinVolume, MaxVolume].
func ClampVolume(v int) int {
	return min(max(v, MinVolume), MaxVolume)
}

// ClampPercent clamps v into [0, 100].
func ClampPercent(v float64) float64 {
	return min(max(v, 0), 100)
}
