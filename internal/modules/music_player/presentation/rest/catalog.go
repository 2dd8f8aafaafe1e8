package rest

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo"

	"github.com/sglre6355/sgrplayer/internal/app"
	"github.com/sglre6355/sgrplayer/internal/modules/music_player/application/usecases"
)

// ListSongs handles GET /api/songs.
func (h *Handlers) ListSongs(c echo.Context) error {
	tracks, err := h.catalog.List(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Failed to load songs")
	}
	return c.JSON(http.StatusOK, toTrackResponses(tracks))
}

// SearchSongs handles GET /api/songs/search?q=.
func (h *Handlers) SearchSongs(c echo.Context) error {
	tracks, err := h.catalog.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return respondError(c, err, "Failed to search songs")
	}
	return c.JSON(http.StatusOK, toTrackResponses(tracks))
}

// SongsByIDs handles GET /api/songs/by-ids?ids=1,2.
func (h *Handlers) SongsByIDs(c echo.Context) error {
	ids, err := parseTrackIDs(c.QueryParam("ids"))
	if err != nil {
		return badRequest(c, err.Error())
	}

	tracks, err := h.catalog.GetByIDs(c.Request().Context(), ids)
	if err != nil {
		return respondError(c, err, "Failed to load songs")
	}
	return c.JSON(http.StatusOK, toTrackResponses(tracks))
}

// GetSong handles GET /api/songs/:id.
func (h *Handlers) GetSong(c echo.Context) error {
	id, err := usecases.ParseTrackID(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid song id")
	}

	track, err := h.catalog.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "Failed to load song")
	}
	return c.JSON(http.StatusOK, toTrackResponse(track))
}

// CreateSong handles the multipart upload form of POST /api/admin/songs.
func (h *Handlers) CreateSong(c echo.Context) error {
	input := usecases.CreateTrackInput{
		Title:    c.FormValue("title"),
		Artist:   c.FormValue("artist"),
		Category: c.FormValue("category"),
	}

	if raw := c.FormValue("duration"); raw != "" {
		seconds, err := strconv.ParseFloat(raw, 64)
		if err != nil || seconds < 0 {
			return badRequest(c, "Invalid duration")
		}
		input.Duration = time.Duration(seconds * float64(time.Second))
	}

	audio, closeAudio, err := formUpload(c, "audio")
	if err != nil {
		return respondError(c, err, "Failed to read audio upload")
	}
	defer closeAudio()

	cover, closeCover, err := formUpload(c, "cover")
	if err != nil {
		return respondError(c, err, "Failed to read cover upload")
	}
	defer closeCover()

	input.Audio = audio
	input.Cover = cover

	track, err := h.catalog.Create(c.Request().Context(), input)
	if err != nil {
		return respondError(c, err, "Failed to upload song.")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"status":           app.StatusSuccess,
		"message":          "Song uploaded successfully!",
		"dismiss_after_ms": app.DefaultDismissAfter.Milliseconds(),
		"song":             toTrackResponse(track),
	})
}

type updateSongRequest struct {
	Title    *string `json:"title"`
	Artist   *string `json:"artist"`
	Category *string `json:"category"`
	Liked    *bool   `json:"liked"`
	Lyrics   *string `json:"lyrics"`
}

// UpdateSong handles PATCH /api/admin/songs/:id. The body is either JSON or
// a multipart form that may carry a new cover image.
func (h *Handlers) UpdateSong(c echo.Context) error {
	id, err := usecases.ParseTrackID(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid song id")
	}

	var req updateSongRequest
	var cover *usecases.Upload

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return badRequest(c, "Missing form data")
		}
		if req, err = updateRequestFromForm(form.Value); err != nil {
			return badRequest(c, err.Error())
		}

		upload, closeCover, err := formUpload(c, "cover")
		if err != nil {
			return respondError(c, err, "Failed to read cover upload")
		}
		defer closeCover()
		cover = upload
	} else if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	for field, value := range map[string]*string{
		"title":    req.Title,
		"artist":   req.Artist,
		"category": req.Category,
	} {
		if value != nil && strings.TrimSpace(*value) == "" {
			return badRequest(c, field+" cannot be empty")
		}
	}

	patch := usecases.TrackPatch{
		Title:    trimmed(req.Title),
		Artist:   trimmed(req.Artist),
		Category: trimmed(req.Category),
		Liked:    req.Liked,
		Lyrics:   req.Lyrics,
	}

	track, err := h.catalog.Update(c.Request().Context(), id, patch, cover)
	if err != nil {
		return respondError(c, err, "Failed to update song")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":           app.StatusSuccess,
		"message":          "Track updated successfully!",
		"dismiss_after_ms": app.DefaultDismissAfter.Milliseconds(),
		"song":             toTrackResponse(track),
	})
}

type likeRequest struct {
	Liked *bool `json:"liked"`
}

// LikeSong handles POST /api/songs/:id/like. Any listener may like a song.
func (h *Handlers) LikeSong(c echo.Context) error {
	id, err := usecases.ParseTrackID(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid song id")
	}

	var req likeRequest
	if err := c.Bind(&req); err != nil || req.Liked == nil {
		return badRequest(c, "liked is required")
	}

	track, err := h.catalog.SetLiked(c.Request().Context(), id, *req.Liked)
	if err != nil {
		return respondError(c, err, "Failed to update song")
	}

	return c.JSON(http.StatusOK, toTrackResponse(track))
}

// DeleteSong handles DELETE /api/admin/songs/:id.
func (h *Handlers) DeleteSong(c echo.Context) error {
	id, err := usecases.ParseTrackID(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid song id")
	}

	if err := h.catalog.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "Failed to delete song")
	}

	return app.RespondSuccess(c, http.StatusOK, "Track deleted successfully!")
}

// formUpload opens the named file of a multipart form. A missing file
// yields a nil upload, which the use case reports as a missing field.
func formUpload(c echo.Context, name string) (*usecases.Upload, func(), error) {
	noop := func() {}

	header, err := c.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, noop, err
	}

	return newUpload(header, file), func() { file.Close() }, nil
}

func newUpload(header *multipart.FileHeader, file multipart.File) *usecases.Upload {
	return &usecases.Upload{
		Name:    header.Filename,
		Size:    header.Size,
		Content: file,
	}
}

func updateRequestFromForm(values map[string][]string) (updateSongRequest, error) {
	var req updateSongRequest

	field := func(name string) *string {
		if v, ok := values[name]; ok && len(v) > 0 {
			return &v[0]
		}
		return nil
	}

	req.Title = field("title")
	req.Artist = field("artist")
	req.Category = field("category")
	req.Lyrics = field("lyrics")

	if raw := field("liked"); raw != nil {
		liked, err := strconv.ParseBool(*raw)
		if err != nil {
			return req, errors.New("liked must be true or false")
		}
		req.Liked = &liked
	}

	return req, nil
}

func parseTrackIDs(raw string) ([]usecases.TrackID, error) {
	if strings.TrimSpace(raw) == "" {
		return []usecases.TrackID{}, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]usecases.TrackID, 0, len(parts))
	for _, part := range parts {
		id, err := usecases.ParseTrackID(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.New("ids must be a comma separated list of song ids")
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
