package rest

import (
	"net/http"

	"github.com/labstack/echo"

	"github.com/sglre6355/sgrplayer/internal/modules/music_player/application/usecases"
)

type updateSettingsRequest struct {
	Theme          *string `json:"theme"`
	Language       *string `json:"language"`
	VisualizerMode *string `json:"visualizer_mode"`
	Autoplay       *bool   `json:"autoplay"`
	SoundEnabled   *bool   `json:"sound_enabled"`
	Scanlines      *bool   `json:"scanlines"`
	Grid           *bool   `json:"grid"`
}

// GetSettings handles GET /api/settings.
func (h *Handlers) GetSettings(c echo.Context) error {
	return c.JSON(http.StatusOK, toSettingsResponse(h.settings.Get()))
}

// UpdateSettings handles PUT /api/settings. Omitted fields keep their value.
func (h *Handlers) UpdateSettings(c echo.Context) error {
	var req updateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	settings, err := h.settings.Update(c.Request().Context(), usecases.SettingsPatch{
		Theme:          req.Theme,
		Language:       req.Language,
		VisualizerMode: req.VisualizerMode,
		Autoplay:       req.Autoplay,
		SoundEnabled:   req.SoundEnabled,
		Scanlines:      req.Scanlines,
		Grid:           req.Grid,
	})
	if err != nil {
		return respondError(c, err, "Failed to save settings")
	}

	return c.JSON(http.StatusOK, toSettingsResponse(settings))
}

type styleResponse struct {
	Variables map[string]string `json:"variables"`
	Scanlines bool              `json:"scanlines"`
	Grid      bool              `json:"grid"`
}

// GetStyle handles GET /api/settings/style.
func (h *Handlers) GetStyle(c echo.Context) error {
	layers := h.settings.VisualLayers()

	return c.JSON(http.StatusOK, styleResponse{
		Variables: h.settings.StyleVariables(),
		Scanlines: layers.Scanlines,
		Grid:      layers.Grid,
	})
}

// Translate handles GET /api/i18n/:key.
func (h *Handlers) Translate(c echo.Context) error {
	key := c.Param("key")

	return c.JSON(http.StatusOK, echo.Map{
		"key":      key,
		"language": h.settings.Get().Language,
		"text":     h.settings.Translate(key),
	})
}

// PlaySoundEffect handles POST /api/fx/:kind.
func (h *Handlers) PlaySoundEffect(c echo.Context) error {
	played, err := h.effects.Play(c.Param("kind"))
	if err != nil {
		return respondError(c, err, "Failed to play sound effect")
	}

	return c.JSON(http.StatusOK, echo.Map{"played": played})
}
