package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo"

	"github.com/sglre6355/sgrplayer/internal/app"
	"github.com/sglre6355/sgrplayer/internal/modules/music_player/application/usecases"
)

type trackResponse struct {
	ID            usecases.TrackID `json:"id"`
	Title         string           `json:"title"`
	Artist        string           `json:"artist"`
	Category      string           `json:"category"`
	AudioURL      string           `json:"audio_url"`
	CoverURL      string           `json:"cover_url"`
	Duration      float64          `json:"duration"`
	DurationLabel string           `json:"duration_label"`
	Liked         bool             `json:"liked"`
	Lyrics        string           `json:"lyrics"`
	CreatedAt     time.Time        `json:"created_at"`
}

func toTrackResponse(t usecases.Track) trackResponse {
	return trackResponse{
		ID:            t.ID,
		Title:         t.Title,
		Artist:        t.Artist,
		Category:      t.Category,
		AudioURL:      t.AudioURL,
		CoverURL:      t.CoverURL,
		Duration:      t.Duration.Seconds(),
		DurationLabel: t.FormattedDuration(),
		Liked:         t.Liked,
		Lyrics:        t.Lyrics,
		CreatedAt:     t.CreatedAt,
	}
}

func toTrackResponses(tracks []usecases.Track) []trackResponse {
	result := make([]trackResponse, len(tracks))
	for i, t := range tracks {
		result[i] = toTrackResponse(t)
	}
	return result
}

type playbackStateResponse struct {
	Source           usecases.TrackSource `json:"source"`
	CurrentIndex     int                  `json:"current_index"`
	CurrentTrack     *trackResponse       `json:"current_track"`
	TrackCount       int                  `json:"track_count"`
	IsPlaying        bool                 `json:"is_playing"`
	Volume           int                  `json:"volume"`
	IsMuted          bool                 `json:"is_muted"`
	Shuffle          bool                 `json:"shuffle"`
	RepeatMode       string               `json:"repeat_mode"`
	CurrentTime      float64              `json:"current_time"`
	CurrentTimeLabel string               `json:"current_time_label"`
	Duration         float64              `json:"duration"`
	DurationLabel    string               `json:"duration_label"`
	Progress         float64              `json:"progress"`
}

func toPlaybackStateResponse(s usecases.PlaybackState, source usecases.TrackSource) playbackStateResponse {
	resp := playbackStateResponse{
		Source:           source,
		CurrentIndex:     s.CurrentIndex,
		TrackCount:       s.TrackCount,
		IsPlaying:        s.IsPlaying,
		Volume:           s.Volume,
		IsMuted:          s.IsMuted,
		Shuffle:          s.Shuffle,
		RepeatMode:       s.RepeatMode.String(),
		CurrentTime:      s.CurrentTime.Seconds(),
		CurrentTimeLabel: usecases.FormatTime(s.CurrentTime),
		Duration:         s.Duration.Seconds(),
		DurationLabel:    usecases.FormatTime(s.Duration),
		Progress:         s.Progress,
	}
	if s.CurrentTrack != nil {
		track := toTrackResponse(*s.CurrentTrack)
		resp.CurrentTrack = &track
	}
	return resp
}

type settingsResponse struct {
	Theme          string `json:"theme"`
	Language       string `json:"language"`
	VisualizerMode string `json:"visualizer_mode"`
	Autoplay       bool   `json:"autoplay"`
	SoundEnabled   bool   `json:"sound_enabled"`
	Scanlines      bool   `json:"scanlines"`
	Grid           bool   `json:"grid"`
}

func toSettingsResponse(s usecases.Settings) settingsResponse {
	return settingsResponse{
		Theme:          string(s.Theme),
		Language:       string(s.Language),
		VisualizerMode: string(s.VisualizerMode),
		Autoplay:       s.Autoplay,
		SoundEnabled:   s.SoundEnabled,
		Scanlines:      s.Scanlines,
		Grid:           s.Grid,
	}
}

// errorStatus maps use case errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, usecases.ErrTrackNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecases.ErrValidation),
		errors.Is(err, usecases.ErrFileTooLarge),
		errors.Is(err, usecases.ErrInvalidSetting),
		errors.Is(err, usecases.ErrInvalidSource),
		errors.Is(err, usecases.ErrInvalidIndex),
		errors.Is(err, usecases.ErrUnknownSoundEffect):
		return http.StatusBadRequest
	case errors.Is(err, usecases.ErrPlaylistFull),
		errors.Is(err, usecases.ErrDuplicateTrack),
		errors.Is(err, usecases.ErrNoMedia):
		return http.StatusConflict
	case errors.Is(err, usecases.ErrInvalidPassword):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes an error envelope for err. Server errors are logged
// and reported with fallback instead of their internal message.
func respondError(c echo.Context, err error, fallback string) error {
	code := errorStatus(err)
	if code >= http.StatusInternalServerError {
		slog.Error(
			"failed to handle request",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		return app.RespondError(c, code, fallback)
	}

	return app.RespondError(c, code, clientMessage(err))
}

// clientMessage returns the user-facing text of a client error.
func clientMessage(err error) string {
	switch {
	case errors.Is(err, usecases.ErrPlaylistFull):
		return "Playlist limit reached!"
	case errors.Is(err, usecases.ErrDuplicateTrack):
		return "Song already in playlist"
	case errors.Is(err, usecases.ErrInvalidPassword):
		return "Invalid password"
	case errors.Is(err, usecases.ErrTrackNotFound):
		return "Song not found"
	case errors.Is(err, usecases.ErrNoMedia):
		return "No songs loaded"
	default:
		return err.Error()
	}
}

func badRequest(c echo.Context, message string) error {
	return app.RespondError(c, http.StatusBadRequest, message)
}
