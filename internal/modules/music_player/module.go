package music_player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"

	"github.com/sglre6355/sgrplayer/internal/app"
	"github.com/sglre6355/sgrplayer/internal/modules/music_player/application"
	"github.com/sglre6355/sgrplayer/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrplayer/internal/modules/music_player/application/usecases"
	"github.com/sglre6355/sgrplayer/internal/modules/music_player/infrastructure"
	"github.com/sglre6355/sgrplayer/internal/modules/music_player/presentation/rest"
)

func init() {
	app.Register(&MusicPlayerModule{})
}

// Compile-time interface checks.
var _ app.ConfigurableModule = (*MusicPlayerModule)(nil)

// MusicPlayerModule provides the song catalog, the playlist, the playback
// controller and the user settings over HTTP.
type MusicPlayerModule struct {
	config   *Config
	handlers *rest.Handlers

	catalogRepo *infrastructure.SQLCatalogRepository
	stateStore  ports.KeyValueStore
	stateDB     *infrastructure.SQLiteStore
	player      *usecases.PlayerService

	// Event-driven components
	eventBus        *infrastructure.ChannelEventBus
	playbackHandler *application.PlaybackEventHandler
	libraryHandler  *application.LibraryEventHandler
}

// Name returns the module name.
func (m *MusicPlayerModule) Name() string {
	return "music_player"
}

// LoadConfig loads module-specific configuration from environment variables.
func (m *MusicPlayerModule) LoadConfig() error {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// Init initializes the module.
func (m *MusicPlayerModule) Init(_ app.ModuleDependencies) error {
	if m.config == nil {
		return errors.New("music_player config not loaded")
	}
	ctx := context.Background()

	m.eventBus = infrastructure.NewChannelEventBus(infrastructure.DefaultEventBufferSize)

	db, err := infrastructure.OpenDatabase(m.config.DBURL)
	if err != nil {
		return err
	}
	m.catalogRepo, err = infrastructure.NewSQLCatalogRepository(ctx, db)
	if err != nil {
		db.Close()
		return err
	}

	if err := m.openStateStore(ctx); err != nil {
		return err
	}

	storage, err := infrastructure.NewFileStorage(
		m.config.AssetsDir,
		m.config.AssetsBaseURL,
		m.config.MaxAudioBytes,
	)
	if err != nil {
		return err
	}

	output, synth := m.openAudio(storage)

	settings := usecases.NewSettingsService(m.stateStore)
	if err := settings.Load(ctx); err != nil {
		slog.Warn("failed to load settings, using defaults", "error", err)
	}

	m.player = usecases.NewPlayerService(output, settings, m.eventBus)

	catalog := usecases.NewCatalogService(
		m.catalogRepo,
		storage,
		infrastructure.TagReader{},
		infrastructure.MP3DurationProbe{},
		m.eventBus,
		usecases.CatalogLimits{
			SearchLimit:   m.config.SearchLimit,
			MaxAudioBytes: m.config.MaxAudioBytes,
			MaxCoverBytes: m.config.MaxCoverBytes,
		},
	)
	playlist := usecases.NewPlaylistService(
		m.config.PlaylistCapacity,
		m.stateStore,
		m.catalogRepo,
		m.eventBus,
	)
	if err := playlist.Load(ctx); err != nil {
		slog.Warn("failed to load playlist, starting empty", "error", err)
	}

	library := usecases.NewLibraryService(catalog, playlist, m.player)
	auth := usecases.NewAuthService(m.config.AdminPassword, []byte(m.config.JWTSecret), m.config.SessionTTL)
	effects := usecases.NewSoundEffectsService(synth, settings)

	// Create application event handlers
	m.playbackHandler = application.NewPlaybackEventHandler(m.player, m.eventBus)
	m.libraryHandler = application.NewLibraryEventHandler(library, m.eventBus)

	// Register event handlers
	if err := m.playbackHandler.Start(); err != nil {
		return err
	}
	if err := m.libraryHandler.Start(); err != nil {
		return err
	}

	if err := library.Refresh(ctx); err != nil {
		slog.Warn("failed to load the catalog into the player", "error", err)
	}

	m.handlers = rest.NewHandlers(catalog, playlist, m.player, library, settings, auth, effects)

	slog.Info(
		"music_player module initialized",
		"audio_output", m.config.AudioOutput,
		"state_store", m.config.StateStore,
		"assets_dir", storage.Root(),
	)

	return nil
}

// openStateStore opens the key/value store holding settings and the
// playlist. The memory store forgets everything on restart.
func (m *MusicPlayerModule) openStateStore(ctx context.Context) error {
	if m.config.StateStore == StoreMemory {
		m.stateStore = infrastructure.NewMemoryStore()
		return nil
	}

	store, err := infrastructure.NewSQLiteStore(ctx, m.config.StateDBPath)
	if err != nil {
		return err
	}
	m.stateDB = store
	m.stateStore = store
	return nil
}

// openAudio opens the configured audio output. A speaker that cannot be
// opened falls back to a silent output so the rest of the player still works.
func (m *MusicPlayerModule) openAudio(storage *infrastructure.FileStorage) (ports.AudioOutput, ports.ToneSynth) {
	silent := func() (ports.AudioOutput, ports.ToneSynth) {
		return infrastructure.NewSilentOutput(storage, infrastructure.MP3DurationProbe{}, m.eventBus),
			infrastructure.NopToneSynth{}
	}

	if m.config.AudioOutput == OutputNone {
		return silent()
	}

	output, err := infrastructure.NewBeepOutput(storage, m.eventBus)
	if err != nil {
		slog.Warn("failed to open speaker, falling back to silent output", "error", err)
		return silent()
	}

	synth, err := infrastructure.NewBeepToneSynth()
	if err != nil {
		slog.Warn("failed to open tone synth", "error", err)
		return output, infrastructure.NopToneSynth{}
	}

	return output, synth
}

// RegisterRoutes registers the API routes and the static asset files.
func (m *MusicPlayerModule) RegisterRoutes(r app.Router) {
	r.Root.Static(m.config.AssetsBaseURL, m.config.AssetsDir)
	m.handlers.Register(r.API)
}

// Shutdown cleans up module resources.
func (m *MusicPlayerModule) Shutdown() error {
	var errs []error

	// Close event bus first so no handler touches a closed player
	if m.eventBus != nil {
		m.eventBus.Close()
	}

	if m.player != nil {
		if err := m.player.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close player: %w", err))
		}
	}
	if m.stateDB != nil {
		if err := m.stateDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close state store: %w", err))
		}
	}
	if m.catalogRepo != nil {
		if err := m.catalogRepo.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close catalog: %w", err))
		}
	}

	return errors.Join(errs...)
}
