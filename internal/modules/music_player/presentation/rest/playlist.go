package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo"

	"github.com/sglre6355/sgrplayer/internal/app"
	"github.com/sglre6355/sgrplayer/internal/modules/music_player/application/usecases"
)

type playlistResponse struct {
	Capacity int             `json:"capacity"`
	Tracks   []trackResponse `json:"tracks"`
}

// GetPlaylist handles GET /api/playlist.
func (h *Handlers) GetPlaylist(c echo.Context) error {
	return c.JSON(http.StatusOK, playlistResponse{
		Capacity: h.playlist.Capacity(),
		Tracks:   toTrackResponses(h.playlist.Tracks()),
	})
}

type addToPlaylistRequest struct {
	ID usecases.TrackID `json:"id"`
}

// AddToPlaylist handles POST /api/playlist.
func (h *Handlers) AddToPlaylist(c echo.Context) error {
	var req addToPlaylistRequest
	if err := c.Bind(&req); err != nil || req.ID == 0 {
		return badRequest(c, "id is required")
	}

	ctx := c.Request().Context()

	track, err := h.catalog.Get(ctx, req.ID)
	if err != nil {
		return respondError(c, err, "Failed to add to playlist")
	}

	if err := h.playlist.Add(ctx, track); err != nil {
		if errors.Is(err, usecases.ErrPlaylistFull) {
			return app.RespondError(c, http.StatusConflict,
				fmt.Sprintf("Playlist limit reached! (Max %d songs)", h.playlist.Capacity()))
		}
		return respondError(c, err, "Failed to add to playlist")
	}

	return app.RespondSuccess(c, http.StatusOK, "Added to playlist")
}

// RemoveFromPlaylist handles DELETE /api/playlist/:id.
func (h *Handlers) RemoveFromPlaylist(c echo.Context) error {
	id, err := usecases.ParseTrackID(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid song id")
	}

	if err := h.playlist.Remove(c.Request().Context(), id); err != nil {
		return respondError(c, err, "Failed to remove from playlist")
	}

	return app.RespondSuccess(c, http.StatusOK, "Removed from playlist")
}

type removeManyRequest struct {
	IDs []usecases.TrackID `json:"ids"`
}

// RemoveManyFromPlaylist handles POST /api/playlist/remove.
func (h *Handlers) RemoveManyFromPlaylist(c echo.Context) error {
	var req removeManyRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.playlist.RemoveMany(c.Request().Context(), req.IDs); err != nil {
		return respondError(c, err, "Failed to remove from playlist")
	}

	return app.RespondSuccess(c, http.StatusOK, "Removed from playlist")
}
