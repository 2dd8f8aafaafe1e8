package domain

import (
	"strconv"
	"time"
)

// TrackID is the catalog identifier of a track.
type TrackID int64

// String returns the decimal form of the ID.
func (id TrackID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseTrackID parses a decimal track ID.
func ParseTrackID(s string) (TrackID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return TrackID(v), nil
}

// Track represents one song of the catalog: its metadata plus references to
// the audio and cover assets.
type Track struct {
	ID        TrackID
	Title     string
	Artist    string
	Category  string
	AudioURL  string
	CoverURL  string
	Duration  time.Duration
	Liked     bool
	Lyrics    string
	CreatedAt time.Time
}

// IsValid returns true if the track has the minimum required fields.
func (t *Track) IsValid() bool {
	return t.Title != "" && t.AudioURL != ""
}

// HasLyrics reports whether lyrics are attached to the track.
func (t *Track) HasLyrics() bool {
	return t.Lyrics != ""
}

// FormattedDuration returns the duration as m:ss, or "0:00" when unknown.
func (t *Track) FormattedDuration() string {
	return FormatTime(t.Duration)
}

// FormatTime formats a duration as m:ss. Minutes are not padded and keep
// growing past the hour.
func FormatTime(d time.Duration) string {
	if d <= 0 {
		return "0:00"
	}

	totalSeconds := int(d.Seconds())
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60

	return strconv.Itoa(minutes) + ":" + pad(seconds)
}

func pad(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// TrackIDs returns the IDs of the given tracks in order.
func TrackIDs(tracks []Track) []TrackID {
	ids := make([]TrackID, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}
	return ids
}
