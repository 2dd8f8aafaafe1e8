package ports

import (
	"io"
	"time"

	"github.com/sglre6355/sgrplayer/internal/modules/music_player/domain"
)

// TagReader extracts embedded metadata from an uploaded audio file.
type TagReader interface {
	// Lyrics returns the unsynchronized lyrics frame, or "" if absent.
	Lyrics(r io.ReadSeeker) (string, error)
}

// DurationProbe measures the playing time of an encoded audio file.
type DurationProbe interface {
	Duration(r io.ReadSeeker) (time.Duration, error)
}

// ToneSynth plays short synthesized tones alongside the main output.
type ToneSynth interface {
	PlayTone(tone domain.Tone) error
}
