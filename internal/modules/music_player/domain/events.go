package domain

// Event is implemented by everything published on the event bus.
type Event interface {
	EventName() string
}

// TrackEndedEvent is published by the audio output when the loaded source
// plays to its end.
type TrackEndedEvent struct {
	Source     string
	Generation uint64 // load generation of the output, used to drop stale notifications
}

// EventName implements Event.
func (TrackEndedEvent) EventName() string { return "track_ended" }

// TrackChangedEvent is published when the controller loads a new source.
type TrackChangedEvent struct {
	Index int
	Track Track
}

// EventName implements Event.
func (TrackChangedEvent) EventName() string { return "track_changed" }

// PlaybackFailedEvent is published when the output refuses to start.
type PlaybackFailedEvent struct {
	Source string
	Err    error
}

// EventName implements Event.
func (PlaybackFailedEvent) EventName() string { return "playback_failed" }

// CatalogChangedEvent is published after an admin create, update or delete.
type CatalogChangedEvent struct {
	TrackID TrackID
	Action  string // "created", "updated", "deleted"
}

// EventName implements Event.
func (CatalogChangedEvent) EventName() string { return "catalog_changed" }

// PlaylistChangedEvent is published after the personal playlist was persisted.
type PlaylistChangedEvent struct {
	IDs []TrackID
}

// EventName implements Event.
func (PlaylistChangedEvent) EventName() string { return "playlist_changed" }
