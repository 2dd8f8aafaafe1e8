package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/sglre6355/sgrplayer/internal/modules/music_player/domain"
)

func TestSettingsService_Load(t *testing.T) {
	tests := []struct {
		name   string
		stored map[string]string
		want   domain.Settings
	}{
		{
			name: "defaults when nothing stored",
			want: domain.DefaultSettings(),
		},
		{
			name: "stored values",
			stored: map[string]string{
				SettingsKeyTheme:          "amber",
				SettingsKeyLanguage:       "uz",
				SettingsKeyVisualizerMode: "wave",
				SettingsKeyAutoplay:       "false",
				SettingsKeySoundEnabled:   "false",
				SettingsKeyScanlines:      "false",
				SettingsKeyGrid:           "false",
			},
			want: domain.Settings{
				Theme:          domain.ThemeAmber,
				Language:       domain.LanguageUzbek,
				VisualizerMode: domain.VisualizerWave,
			},
		},
		{
			name: "anything but false reads as true",
			stored: map[string]string{
				SettingsKeyAutoplay:     "0",
				SettingsKeySoundEnabled: "",
				SettingsKeyScanlines:    "FALSE",
			},
			want: domain.DefaultSettings(),
		},
		{
			name: "unknown enums fall back to defaults",
			stored: map[string]string{
				SettingsKeyTheme:          "purple",
				SettingsKeyLanguage:       "fr",
				SettingsKeyVisualizerMode: "spiral",
			},
			want: domain.DefaultSettings(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockKeyValueStore()
			for k, v := range tt.stored {
				store.values[k] = v
			}
			service := NewSettingsService(store)

			if err := service.Load(context.Background()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := service.Get(); got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestSettingsService_Update(t *testing.T) {
	ctx := context.Background()
	store := newMockKeyValueStore()
	service := NewSettingsService(store)

	got, err := service.Update(ctx, SettingsPatch{
		Theme:    ptr("pink"),
		Autoplay: ptr(false),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Theme != domain.ThemePink || got.Autoplay {
		t.Errorf("unexpected settings %+v", got)
	}
	if service.Autoplay() {
		t.Error("expected autoplay policy to follow the update")
	}

	want := map[string]string{
		SettingsKeyTheme:          "pink",
		SettingsKeyLanguage:       "en",
		SettingsKeyVisualizerMode: "bars",
		SettingsKeyAutoplay:       "false",
		SettingsKeySoundEnabled:   "true",
		SettingsKeyScanlines:      "true",
		SettingsKeyGrid:           "true",
	}
	for k, v := range want {
		if store.values[k] != v {
			t.Errorf("expected %s=%q persisted, got %q", k, v, store.values[k])
		}
	}
}

func TestSettingsService_Update_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		patch SettingsPatch
	}{
		{name: "theme", patch: SettingsPatch{Theme: ptr("purple"), Grid: ptr(false)}},
		{name: "language", patch: SettingsPatch{Language: ptr("fr")}},
		{name: "visualizer mode", patch: SettingsPatch{VisualizerMode: ptr("spiral")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockKeyValueStore()
			service := NewSettingsService(store)

			_, err := service.Update(context.Background(), tt.patch)
			if !errors.Is(err, ErrInvalidSetting) {
				t.Fatalf("expected ErrInvalidSetting, got %v", err)
			}
			if service.Get() != domain.DefaultSettings() {
				t.Error("expected settings unchanged")
			}
			if len(store.values) != 0 {
				t.Errorf("expected nothing persisted, got %v", store.values)
			}
		})
	}
}

func TestSettingsService_Update_PersistFailureKeepsPrevious(t *testing.T) {
	store := newMockKeyValueStore()
	store.setErr = errors.New("read-only")
	service := NewSettingsService(store)

	if _, err := service.Update(context.Background(), SettingsPatch{Theme: ptr("red")}); err == nil {
		t.Fatal("expected error")
	}
	if service.Get().Theme != domain.ThemeAqua {
		t.Error("expected theme unchanged")
	}
}

func TestSettingsService_Update_PartialPersistFailureRestoresStore(t *testing.T) {
	ctx := context.Background()
	store := newMockKeyValueStore()
	service := NewSettingsService(store)
	if _, err := service.Update(ctx, SettingsPatch{Theme: ptr("green")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store.setErr = errors.New("disk full")
	store.setErrKey = SettingsKeyGrid

	_, err := service.Update(ctx, SettingsPatch{Theme: ptr("red"), Language: ptr("uz"), Grid: ptr(false)})
	if err == nil {
		t.Fatal("expected error")
	}

	if got := service.Get(); got.Theme != domain.ThemeGreen || got.Language != domain.LanguageEnglish || !got.Grid {
		t.Errorf("expected settings unchanged, got %+v", got)
	}
	if store.values[SettingsKeyTheme] != "green" || store.values[SettingsKeyLanguage] != "en" {
		t.Errorf("expected stored keys restored, got %v", store.values)
	}
	if store.values[SettingsKeyGrid] != "true" {
		t.Errorf("expected grid to keep its stored value, got %q", store.values[SettingsKeyGrid])
	}
}

func TestSettingsService_Derived(t *testing.T) {
	ctx := context.Background()
	service := NewSettingsService(newMockKeyValueStore())
	_, _ = service.Update(ctx, SettingsPatch{
		Theme:     ptr("green"),
		Language:  ptr("uz"),
		Scanlines: ptr(false),
	})

	vars := service.StyleVariables()
	if vars["--accent"] != "#00FF00" || vars["--text-secondary"] != "#008800" {
		t.Errorf("unexpected style variables %v", vars)
	}

	layers := service.VisualLayers()
	if layers.Scanlines || !layers.Grid {
		t.Errorf("unexpected layers %+v", layers)
	}

	if got := service.Translate("missing_key"); got != "missing_key" {
		t.Errorf("expected key fallback, got %q", got)
	}
	if got := service.Translate("lyrics"); got == "" || got == "lyrics" {
		t.Errorf("expected uz translation for lyrics, got %q", got)
	}
}
