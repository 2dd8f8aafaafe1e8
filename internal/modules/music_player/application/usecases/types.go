package usecases

import (
	"time"

	"github.com/sglre6355/sgrplayer/internal/modules/music_player/domain"
)

// Re-export domain types for presentation layer use.
// This allows presentation to depend only on usecases without importing domain directly.

// Track is an alias for domain.Track.
type Track = domain.Track

// TrackID is an alias for domain.TrackID.
type TrackID = domain.TrackID

// TrackPatch is an alias for domain.TrackPatch.
type TrackPatch = domain.TrackPatch

// PlaybackState is an alias for domain.PlaybackState.
type PlaybackState = domain.PlaybackState

// Settings is an alias for domain.Settings.
type Settings = domain.Settings

// TrackSource is an alias for domain.TrackSource.
type TrackSource = domain.TrackSource

// ParseTrackID parses a decimal track ID.
func ParseTrackID(s string) (TrackID, error) {
	return domain.ParseTrackID(s)
}

// FormatTime formats d as m:ss.
func FormatTime(d time.Duration) string {
	return domain.FormatTime(d)
}
