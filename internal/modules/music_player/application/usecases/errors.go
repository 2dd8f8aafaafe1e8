package usecases

import (
	"errors"

	"github.com/sglre6355/sgrplayer/internal/modules/music_player/domain"
)

// Errors returned by the music player use cases.
var (
	// ErrNoMedia is returned when a playback operation needs a non-empty track list.
	ErrNoMedia = errors.New("no media loaded")

	// ErrInvalidIndex is returned when selecting a track outside the list.
	ErrInvalidIndex = errors.New("invalid track index")

	// ErrTrackNotFound is returned when a track does not exist in the catalog.
	ErrTrackNotFound = domain.ErrTrackNotFound

	// ErrPlaylistFull is returned when adding to a full playlist.
	ErrPlaylistFull = domain.ErrPlaylistFull

	// ErrDuplicateTrack is returned when adding a track that is already in the playlist.
	ErrDuplicateTrack = domain.ErrDuplicateTrack

	// ErrValidation wraps every missing or malformed field of an upload.
	ErrValidation = errors.New("validation failed")

	// ErrFileTooLarge is returned when an upload exceeds its size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrInvalidSetting is returned for unrecognized preference values.
	ErrInvalidSetting = errors.New("invalid setting")

	// ErrInvalidPassword is returned when the admin password does not match.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidSource is returned for an unknown track source.
	ErrInvalidSource = errors.New("invalid track source")

	// ErrUnknownSoundEffect is returned for an unknown sound effect kind.
	ErrUnknownSoundEffect = errors.New("unknown sound effect")
)
