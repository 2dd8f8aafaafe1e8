package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/sglre6355/sgrplayer/internal/modules/music_player/application/ports"
	"github.com/sglre6355/sgrplayer/internal/modules/music_player/domain"
)

// Storage keys of the user preferences.
const (
	SettingsKeyTheme          = "theme"
	SettingsKeyLanguage       = "language"
	SettingsKeySoundEnabled   = "soundEnabled"
	SettingsKeyVisualizerMode = "visualizerMode"
	SettingsKeyAutoplay       = "autoplay"
	SettingsKeyScanlines      = "scanlines"
	SettingsKeyGrid           = "grid"
)

// SettingsPatch carries a partial preference update. Nil fields are unchanged.
type SettingsPatch struct {
	Theme          *string
	Language       *string
	VisualizerMode *string
	Autoplay       *bool
	SoundEnabled   *bool
	Scanlines      *bool
	Grid           *bool
}

// VisualLayers reports which overlay layers should be displayed.
type VisualLayers struct {
	Scanlines bool
	Grid      bool
}

// SettingsService holds the process-wide user preferences.
type SettingsService struct {
	mu       sync.RWMutex
	settings domain.Settings
	store    ports.KeyValueStore
}

// NewSettingsService creates a new SettingsService holding the defaults.
func NewSettingsService(store ports.KeyValueStore) *SettingsService {
	return &SettingsService{
		settings: domain.DefaultSettings(),
		store:    store,
	}
}

// Load reads every preference from the store. Missing or unrecognized values
// fall back to their defaults.
func (s *SettingsService) Load(ctx context.Context) error {
	defaults := domain.DefaultSettings()
	loaded := defaults

	read := func(key string) (string, bool, error) {
		v, ok, err := s.store.Get(ctx, key)
		if err != nil {
			return "", false, fmt.Errorf("failed to read setting %s: %w", key, err)
		}
		return v, ok, nil
	}

	if v, ok, err := read(SettingsKeyTheme); err != nil {
		return err
	} else if ok && domain.Theme(v).IsValid() {
		loaded.Theme = domain.Theme(v)
	}

	if v, ok, err := read(SettingsKeyLanguage); err != nil {
		return err
	} else if ok && domain.Language(v).IsValid() {
		loaded.Language = domain.Language(v)
	}

	if v, ok, err := read(SettingsKeyVisualizerMode); err != nil {
		return err
	} else if ok && domain.VisualizerMode(v).IsValid() {
		loaded.VisualizerMode = domain.VisualizerMode(v)
	}

	toggles := []struct {
		key string
		dst *bool
	}{
		{SettingsKeySoundEnabled, &loaded.SoundEnabled},
		{SettingsKeyAutoplay, &loaded.Autoplay},
		{SettingsKeyScanlines, &loaded.Scanlines},
		{SettingsKeyGrid, &loaded.Grid},
	}
	for _, toggle := range toggles {
		v, ok, err := read(toggle.key)
		if err != nil {
			return err
		}
		if ok {
			*toggle.dst = parseStoredBool(v)
		}
	}

	s.mu.Lock()
	s.settings = loaded
	s.mu.Unlock()

	return nil
}

// Get returns the current preferences.
func (s *SettingsService) Get() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.settings
}

// Update validates and applies patch, then persists every field. Nothing is
// applied if any value is invalid.
func (s *SettingsService) Update(ctx context.Context, patch SettingsPatch) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.settings

	if patch.Theme != nil {
		theme := domain.Theme(*patch.Theme)
		if !theme.IsValid() {
			return s.settings, fmt.Errorf("%w: theme %q", ErrInvalidSetting, *patch.Theme)
		}
		next.Theme = theme
	}
	if patch.Language != nil {
		lang := domain.Language(*patch.Language)
		if !lang.IsValid() {
			return s.settings, fmt.Errorf("%w: language %q", ErrInvalidSetting, *patch.Language)
		}
		next.Language = lang
	}
	if patch.VisualizerMode != nil {
		mode := domain.VisualizerMode(*patch.VisualizerMode)
		if !mode.IsValid() {
			return s.settings, fmt.Errorf(
				"%w: visualizer mode %q",
				ErrInvalidSetting,
				*patch.VisualizerMode,
			)
		}
		next.VisualizerMode = mode
	}
	if patch.Autoplay != nil {
		next.Autoplay = *patch.Autoplay
	}
	if patch.SoundEnabled != nil {
		next.SoundEnabled = *patch.SoundEnabled
	}
	if patch.Scanlines != nil {
		next.Scanlines = *patch.Scanlines
	}
	if patch.Grid != nil {
		next.Grid = *patch.Grid
	}

	if err := s.persist(ctx, next); err != nil {
		return s.settings, err
	}
	s.settings = next

	return next, nil
}

// Autoplay implements AutoplayPolicy.
func (s *SettingsService) Autoplay() bool {
	return s.Get().Autoplay
}

// SoundEnabled implements SoundPolicy.
func (s *SettingsService) SoundEnabled() bool {
	return s.Get().SoundEnabled
}

// StyleVariables returns the global style variables of the current theme.
func (s *SettingsService) StyleVariables() map[string]string {
	return s.Get().StyleVariables()
}

// VisualLayers returns the overlay display flags.
func (s *SettingsService) VisualLayers() VisualLayers {
	settings := s.Get()
	return VisualLayers{
		Scanlines: settings.Scanlines,
		Grid:      settings.Grid,
	}
}

// Translate looks key up in the table of the current language.
func (s *SettingsService) Translate(key string) string {
	return s.Get().Translate(key)
}

func (s *SettingsService) persist(ctx context.Context, settings domain.Settings) error {
	previous := settingValues(s.settings)

	for i, v := range settingValues(settings) {
		if err := s.store.Set(ctx, v.key, v.value); err != nil {
			s.restore(ctx, previous[:i])
			return fmt.Errorf("failed to save setting %s: %w", v.key, err)
		}
	}

	return nil
}

// restore writes back keys already overwritten by a failed persist, so the
// store keeps matching the settings held in memory.
func (s *SettingsService) restore(ctx context.Context, values []settingValue) {
	for _, v := range values {
		if err := s.store.Set(ctx, v.key, v.value); err != nil {
			slog.Warn("failed to restore setting", "key", v.key, "error", err)
		}
	}
}

type settingValue struct {
	key   string
	value string
}

func settingValues(settings domain.Settings) []settingValue {
	return []settingValue{
		{SettingsKeyTheme, string(settings.Theme)},
		{SettingsKeyLanguage, string(settings.Language)},
		{SettingsKeyVisualizerMode, string(settings.VisualizerMode)},
		{SettingsKeySoundEnabled, strconv.FormatBool(settings.SoundEnabled)},
		{SettingsKeyAutoplay, strconv.FormatBool(settings.Autoplay)},
		{SettingsKeyScanlines, strconv.FormatBool(settings.Scanlines)},
		{SettingsKeyGrid, strconv.FormatBool(settings.Grid)},
	}
}

// parseStoredBool treats everything except the literal "false" as true.
func parseStoredBool(v string) bool {
	return v != "false"
}
