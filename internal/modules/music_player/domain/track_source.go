package domain

import "fmt"

// TrackSource selects where the controller's track list comes from.
type TrackSource string

const (
	SourceAll      TrackSource = "all"
	SourcePlaylist TrackSource = "playlist"
)

// ParseTrackSource converts a string to a TrackSource.
func ParseTrackSource(s string) (TrackSource, error) {
	switch src := TrackSource(s); src {
	case SourceAll, SourcePlaylist:
		return src, nil
	default:
		return "", fmt.Errorf("unknown track source: %q", s)
	}
}
