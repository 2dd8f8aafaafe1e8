package infrastructure

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/gopxl/beep/v2/mp3"

	"github.com/sglre6355/sgrplayer/internal/modules/music_player/application/ports"
)

var (
	_ ports.TagReader     = TagReader{}
	_ ports.DurationProbe = MP3DurationProbe{}
)

// TagReader reads ID3, MP4, FLAC and OGG metadata.
type TagReader struct{}

// Lyrics returns the unsynchronized lyrics of r. Files without tags have
// no lyrics.
func (TagReader) Lyrics(r io.ReadSeeker) (string, error) {
	m, err := tag.ReadFrom(r)
	if errors.Is(err, tag.ErrNoTagsFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read tags: %w", err)
	}

	return strings.TrimSpace(m.Lyrics()), nil
}

// MP3DurationProbe measures MP3 files by decoding their frame index.
type MP3DurationProbe struct{}

// Duration returns the playing time of the MP3 stream in r.
func (MP3DurationProbe) Duration(r io.ReadSeeker) (time.Duration, error) {
	// The decoder only indexes frames when its reader can seek.
	streamer, format, err := mp3.Decode(nopCloser{r})
	if err != nil {
		return 0, fmt.Errorf("failed to decode mp3: %w", err)
	}

	return format.SampleRate.D(streamer.Len()), nil
}
