package domain

import "testing"

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.Theme != ThemeAqua {
		t.Errorf("expected aqua theme, got %s", s.Theme)
	}
	if s.Language != LanguageEnglish {
		t.Errorf("expected en language, got %s", s.Language)
	}
	if s.VisualizerMode != VisualizerBars {
		t.Errorf("expected bars visualizer, got %s", s.VisualizerMode)
	}
	if !s.Autoplay || !s.SoundEnabled || !s.Scanlines || !s.Grid {
		t.Errorf("expected all toggles on by default, got %+v", s)
	}
}

func TestTheme_Palette(t *testing.T) {
	tests := []struct {
		theme Theme
		want  Palette
	}{
		{ThemeAqua, Palette{Primary: "#00FFFF", Secondary: "#008888"}},
		{ThemeGreen, Palette{Primary: "#00FF00", Secondary: "#008800"}},
		{ThemeAmber, Palette{Primary: "#FFB000", Secondary: "#885500"}},
		{ThemePink, Palette{Primary: "#FF00FF", Secondary: "#880088"}},
		{ThemeRed, Palette{Primary: "#FF0000", Secondary: "#880000"}},
		{Theme("purple"), Palette{Primary: "#00FFFF", Secondary: "#008888"}},
	}

	for _, tt := range tests {
		if got := tt.theme.Palette(); got != tt.want {
			t.Errorf("%s.Palette() = %+v, want %+v", tt.theme, got, tt.want)
		}
	}
}

func TestThemes_AllValid(t *testing.T) {
	themes := Themes()
	if len(themes) != 5 {
		t.Fatalf("expected 5 themes, got %d", len(themes))
	}
	for _, theme := range themes {
		if !theme.IsValid() {
			t.Errorf("expected %s to be valid", theme)
		}
	}
}

func TestSettings_StyleVariables(t *testing.T) {
	s := DefaultSettings()
	s.Theme = ThemeAmber

	vars := s.StyleVariables()

	want := map[string]string{
		"--text-primary":   "#FFB000",
		"--accent":         "#FFB000",
		"--cursor-color":   "#FFB000",
		"--text-secondary": "#885500",
	}
	for k, v := range want {
		if vars[k] != v {
			t.Errorf("expected %s=%s, got %s", k, v, vars[k])
		}
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		lang Language
		key  string
		want string
	}{
		{name: "english", lang: LanguageEnglish, key: "ready", want: "READY"},
		{name: "uzbek", lang: LanguageUzbek, key: "ready", want: "TAYYOR"},
		{name: "missing key falls back to key", lang: LanguageUzbek, key: "nope", want: "nope"},
		{name: "unknown language falls back to key", lang: Language("fr"), key: "ready", want: "ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Translate(tt.lang, tt.key); got != tt.want {
				t.Errorf("Translate(%s, %s) = %q, want %q", tt.lang, tt.key, got, tt.want)
			}
		})
	}
}

func TestVisualizerMode_IsValid(t *testing.T) {
	for _, m := range VisualizerModes() {
		if !m.IsValid() {
			t.Errorf("expected %s to be valid", m)
		}
	}
	if VisualizerMode("spiral").IsValid() {
		t.Error("expected unknown mode to be invalid")
	}
}
