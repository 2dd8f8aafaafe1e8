package rest

import (
	"net/http"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"

	"github.com/sglre6355/sgrplayer/internal/app"
	"github.com/sglre6355/sgrplayer/internal/modules/music_player/application/usecases"
)

// Handlers holds all the HTTP handlers of the music player.
type Handlers struct {
	catalog  *usecases.CatalogService
	playlist *usecases.PlaylistService
	player   *usecases.PlayerService
	library  *usecases.LibraryService
	settings *usecases.SettingsService
	auth     *usecases.AuthService
	effects  *usecases.SoundEffectsService
}

// NewHandlers creates new Handlers.
func NewHandlers(
	catalog *usecases.CatalogService,
	playlist *usecases.PlaylistService,
	player *usecases.PlayerService,
	library *usecases.LibraryService,
	settings *usecases.SettingsService,
	auth *usecases.AuthService,
	effects *usecases.SoundEffectsService,
) *Handlers {
	return &Handlers{
		catalog:  catalog,
		playlist: playlist,
		player:   player,
		library:  library,
		settings: settings,
		auth:     auth,
		effects:  effects,
	}
}

// Register adds every route to the /api group.
func (h *Handlers) Register(api *echo.Group) {
	api.GET("/songs", h.ListSongs)
	api.GET("/songs/search", h.SearchSongs)
	api.GET("/songs/by-ids", h.SongsByIDs)
	api.GET("/songs/:id", h.GetSong)
	api.POST("/songs/:id/like", h.LikeSong)

	api.POST("/admin/login", h.Login)

	admin := api.Group("/admin/songs", h.adminSession(), requireAdmin)
	admin.POST("", h.CreateSong)
	admin.PATCH("/:id", h.UpdateSong)
	admin.DELETE("/:id", h.DeleteSong)

	player := api.Group("/player")
	player.GET("", h.PlayerState)
	player.POST("/play", h.Play)
	player.POST("/pause", h.Pause)
	player.POST("/next", h.Next)
	player.POST("/prev", h.Prev)
	player.POST("/mute", h.ToggleMute)
	player.POST("/shuffle", h.ToggleShuffle)
	player.POST("/repeat", h.ToggleRepeat)
	player.POST("/seek", h.Seek)
	player.POST("/select", h.SelectSong)
	player.POST("/volume", h.SetVolume)
	player.POST("/source", h.UseSource)
	player.GET("/analyser", h.Analyser)

	api.GET("/playlist", h.GetPlaylist)
	api.POST("/playlist", h.AddToPlaylist)
	api.DELETE("/playlist/:id", h.RemoveFromPlaylist)
	api.POST("/playlist/remove", h.RemoveManyFromPlaylist)

	api.GET("/settings", h.GetSettings)
	api.PUT("/settings", h.UpdateSettings)
	api.GET("/settings/style", h.GetStyle)
	api.GET("/i18n/:key", h.Translate)

	api.POST("/fx/:kind", h.PlaySoundEffect)
}

// adminSession validates the bearer token issued by Login.
func (h *Handlers) adminSession() echo.MiddlewareFunc {
	return middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey: h.auth.Secret(),
		ErrorHandler: func(err error) error {
			return &echo.HTTPError{
				Code:     http.StatusUnauthorized,
				Message:  "Admin session required",
				Internal: err,
			}
		},
	})
}

// requireAdmin rejects valid tokens that do not carry the admin role.
func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return app.RespondError(c, http.StatusUnauthorized, "Admin session required")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["role"] != usecases.AdminRole {
			return app.RespondError(c, http.StatusForbidden, "Admin role required")
		}

		return next(c)
	}
}

type loginRequest struct {
	Password string `json:"password" form:"password"`
}

// Login handles POST /api/admin/login.
func (h *Handlers) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Missing form data")
	}

	session, err := h.auth.Login(req.Password)
	if err != nil {
		return respondError(c, err, "Failed to log in")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token":      session.Token,
		"session_id": session.ID,
		"expires_at": session.ExpiresAt,
	})
}
