package domain

import (
	"errors"
	"slices"
)

// DefaultPlaylistCapacity is the maximum number of tracks in a personal playlist.
const DefaultPlaylistCapacity = 7

var (
	// ErrPlaylistFull is returned when adding to a playlist at capacity.
	ErrPlaylistFull = errors.New("playlist is full")

	// ErrDuplicateTrack is returned when adding a track that is already in the playlist.
	ErrDuplicateTrack = errors.New("track already in playlist")
)

// Playlist is the user's personal, capacity-bounded subset of the catalog.
// Tracks keep insertion order and are unique by ID.
type Playlist struct {
	tracks   []Track
	capacity int
}

// NewPlaylist creates an empty playlist. Non-positive capacities fall back to
// DefaultPlaylistCapacity.
func NewPlaylist(capacity int) *Playlist {
	if capacity <= 0 {
		capacity = DefaultPlaylistCapacity
	}
	return &Playlist{
		tracks:   make([]Track, 0, capacity),
		capacity: capacity,
	}
}

// Capacity returns the maximum number of tracks.
func (p *Playlist) Capacity() int {
	return p.capacity
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// IsFull reports whether the playlist reached its capacity.
func (p *Playlist) IsFull() bool {
	return p.Len() >= p.capacity
}

// Contains reports whether a track with the given ID is present.
func (p *Playlist) Contains(id TrackID) bool {
	return slices.ContainsFunc(p.tracks, func(t Track) bool { return t.ID == id })
}

// Add appends a track. The playlist is left untouched on error.
func (p *Playlist) Add(track Track) error {
	if p.IsFull() {
		return ErrPlaylistFull
	}
	if p.Contains(track.ID) {
		return ErrDuplicateTrack
	}
	p.tracks = append(p.tracks, track)
	return nil
}

// Remove drops the track with the given ID. Returns false if it was absent.
func (p *Playlist) Remove(id TrackID) bool {
	before := p.Len()
	p.tracks = slices.DeleteFunc(p.tracks, func(t Track) bool { return t.ID == id })
	return p.Len() != before
}

// RemoveMany drops every track whose ID is in ids and returns how many were removed.
func (p *Playlist) RemoveMany(ids []TrackID) int {
	before := p.Len()
	p.tracks = slices.DeleteFunc(p.tracks, func(t Track) bool { return slices.Contains(ids, t.ID) })
	return before - p.Len()
}

// Replace resets the playlist to tracks, dropping duplicates and anything
// past capacity.
func (p *Playlist) Replace(tracks []Track) {
	p.tracks = make([]Track, 0, p.capacity)
	for _, t := range tracks {
		_ = p.Add(t)
	}
}

// Tracks returns a copy of all tracks.
func (p *Playlist) Tracks() []Track {
	result := make([]Track, len(p.tracks))
	copy(result, p.tracks)
	return result
}

// IDs returns the track IDs in playlist order.
func (p *Playlist) IDs() []TrackID {
	return TrackIDs(p.tracks)
}
