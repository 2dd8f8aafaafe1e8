package domain

import (
	"context"
	"errors"
)

// ErrTrackNotFound is returned when a track does not exist in the catalog.
var ErrTrackNotFound = errors.New("track not found")

// TrackPatch carries the editable metadata of a track. Nil fields are left
// unchanged.
type TrackPatch struct {
	Title    *string
	Artist   *string
	Category *string
	Liked    *bool
	Lyrics   *string
	CoverURL *string
}

// IsEmpty reports whether the patch changes nothing.
func (p TrackPatch) IsEmpty() bool {
	return p.Title == nil && p.Artist == nil && p.Category == nil &&
		p.Liked == nil && p.Lyrics == nil && p.CoverURL == nil
}

// Apply copies the non-nil fields of p onto t.
func (p TrackPatch) Apply(t *Track) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Artist != nil {
		t.Artist = *p.Artist
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Liked != nil {
		t.Liked = *p.Liked
	}
	if p.Lyrics != nil {
		t.Lyrics = *p.Lyrics
	}
	if p.CoverURL != nil {
		t.CoverURL = *p.CoverURL
	}
}

// TrackRepository defines the interface for storing and retrieving catalog tracks.
type TrackRepository interface {
	// List returns every track, newest first.
	List(ctx context.Context) ([]Track, error)

	// Search returns up to limit tracks whose title or artist contains query,
	// case-insensitively.
	Search(ctx context.Context, query string, limit int) ([]Track, error)

	// GetByIDs returns the tracks with the given IDs. Missing IDs are skipped.
	GetByIDs(ctx context.Context, ids []TrackID) ([]Track, error)

	// Get returns a single track, or ErrTrackNotFound.
	Get(ctx context.Context, id TrackID) (Track, error)

	// Insert stores a new track and returns it with ID and CreatedAt set.
	Insert(ctx context.Context, track Track) (Track, error)

	// Update applies patch to the track and returns the stored result.
	Update(ctx context.Context, id TrackID, patch TrackPatch) (Track, error)

	// Delete removes the track, or returns ErrTrackNotFound.
	Delete(ctx context.Context, id TrackID) error

	// Close releases the underlying connection.
	Close() error
}
