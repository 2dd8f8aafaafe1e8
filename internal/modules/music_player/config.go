package music_player

import (
	"fmt"
	"time"
)

// Audio output kinds.
const (
	OutputSpeaker = "speaker"
	OutputNone    = "none"
)

// State store kinds.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config holds the music player module configuration.
type Config struct {
	DBURL         string `env:"DB_URL,notEmpty"`
	StateStore    string `env:"STATE_STORE" envDefault:"sqlite"`
	StateDBPath   string `env:"STATE_DB_PATH" envDefault:"state.db"`
	AssetsDir     string `env:"ASSETS_DIR" envDefault:"assets"`
	AssetsBaseURL string `env:"ASSETS_BASE_URL" envDefault:"/assets"`

	AdminPassword string        `env:"ADMIN_PASSWORD,notEmpty"`
	JWTSecret     string        `env:"JWT_SECRET,notEmpty"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"72h"`

	AudioOutput      string `env:"AUDIO_OUTPUT" envDefault:"speaker"`
	PlaylistCapacity int    `env:"PLAYLIST_CAPACITY" envDefault:"7"`
	SearchLimit      int    `env:"SEARCH_LIMIT" envDefault:"20"`
	MaxAudioBytes    int64  `env:"MAX_AUDIO_BYTES" envDefault:"52428800"`
	MaxCoverBytes    int64  `env:"MAX_COVER_BYTES" envDefault:"5242880"`
}

// Validate checks values env tags cannot express.
func (c *Config) Validate() error {
	switch c.AudioOutput {
	case OutputSpeaker, OutputNone:
	default:
		return fmt.Errorf("invalid AUDIO_OUTPUT %q: must be %s or %s", c.AudioOutput, OutputSpeaker, OutputNone)
	}

	switch c.StateStore {
	case StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("invalid STATE_STORE %q: must be %s or %s", c.StateStore, StoreSQLite, StoreMemory)
	}

	if c.PlaylistCapacity <= 0 {
		return fmt.Errorf("invalid PLAYLIST_CAPACITY %d: must be positive", c.PlaylistCapacity)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("invalid SESSION_TTL %s: must be positive", c.SessionTTL)
	}

	return nil
}
