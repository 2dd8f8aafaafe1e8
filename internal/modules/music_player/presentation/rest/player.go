package rest

import (
	"context"
	"net/http"

	"github.com/labstack/echo"

	"github.com/sglre6355/sgrplayer/internal/app"
	"github.com/sglre6355/sgrplayer/internal/modules/music_player/application/usecases"
)

// PlayerState handles GET /api/player.
func (h *Handlers) PlayerState(c echo.Context) error {
	return h.respondState(c)
}

// Play handles POST /api/player/play.
func (h *Handlers) Play(c echo.Context) error {
	return h.transport(c, h.player.Play)
}

// Pause handles POST /api/player/pause.
func (h *Handlers) Pause(c echo.Context) error {
	return h.transport(c, h.player.Pause)
}

// Next handles POST /api/player/next.
func (h *Handlers) Next(c echo.Context) error {
	return h.transport(c, h.player.Next)
}

// Prev handles POST /api/player/prev.
func (h *Handlers) Prev(c echo.Context) error {
	return h.transport(c, h.player.Prev)
}

// ToggleMute handles POST /api/player/mute.
func (h *Handlers) ToggleMute(c echo.Context) error {
	h.player.ToggleMute()
	return h.respondState(c)
}

// ToggleShuffle handles POST /api/player/shuffle.
func (h *Handlers) ToggleShuffle(c echo.Context) error {
	h.player.ToggleShuffle()
	return h.respondState(c)
}

// ToggleRepeat handles POST /api/player/repeat.
func (h *Handlers) ToggleRepeat(c echo.Context) error {
	h.player.ToggleRepeat()
	return h.respondState(c)
}

type seekRequest struct {
	Percent *float64 `json:"percent"`
}

// Seek handles POST /api/player/seek with a percentage in [0, 100].
func (h *Handlers) Seek(c echo.Context) error {
	var req seekRequest
	if err := c.Bind(&req); err != nil || req.Percent == nil {
		return badRequest(c, "percent is required")
	}

	return h.transport(c, func(ctx context.Context) error {
		return h.player.Seek(ctx, *req.Percent)
	})
}

type selectRequest struct {
	Index *int `json:"index"`
}

// SelectSong handles POST /api/player/select.
func (h *Handlers) SelectSong(c echo.Context) error {
	var req selectRequest
	if err := c.Bind(&req); err != nil || req.Index == nil {
		return badRequest(c, "index is required")
	}

	return h.transport(c, func(ctx context.Context) error {
		return h.player.SelectSong(ctx, *req.Index)
	})
}

type volumeRequest struct {
	Volume *int `json:"volume"`
}

// SetVolume handles POST /api/player/volume. Values are clamped to [0, 100].
func (h *Handlers) SetVolume(c echo.Context) error {
	var req volumeRequest
	if err := c.Bind(&req); err != nil || req.Volume == nil {
		return badRequest(c, "volume is required")
	}

	h.player.SetVolume(*req.Volume)
	return h.respondState(c)
}

type sourceRequest struct {
	Source string `json:"source"`
}

// UseSource handles POST /api/player/source, switching between the whole
// catalog and the personal playlist.
func (h *Handlers) UseSource(c echo.Context) error {
	var req sourceRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.library.UseSource(c.Request().Context(), usecases.TrackSource(req.Source)); err != nil {
		return respondError(c, err, "Failed to switch source")
	}

	return h.respondState(c)
}

type analyserResponse struct {
	Kind    string    `json:"kind"`
	FFTSize int       `json:"fft_size"`
	Data    []float64 `json:"data"`
}

// Analyser handles GET /api/player/analyser?kind=frequency|time.
func (h *Handlers) Analyser(c echo.Context) error {
	analyser := h.player.Analyser()
	if analyser == nil {
		return app.RespondError(c, http.StatusServiceUnavailable, "Audio output is closed")
	}

	resp := analyserResponse{
		Kind:    c.QueryParam("kind"),
		FFTSize: analyser.FFTSize(),
	}

	switch resp.Kind {
	case "", "frequency":
		resp.Kind = "frequency"
		resp.Data = analyser.Frequency()
	case "time":
		resp.Data = analyser.TimeDomain()
	default:
		return badRequest(c, "kind must be frequency or time")
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *Handlers) transport(c echo.Context, action func(context.Context) error) error {
	if err := action(c.Request().Context()); err != nil {
		return respondError(c, err, "Playback failed")
	}
	return h.respondState(c)
}

func (h *Handlers) respondState(c echo.Context) error {
	return c.JSON(http.StatusOK, toPlaybackStateResponse(h.player.State(), h.library.Source()))
}
