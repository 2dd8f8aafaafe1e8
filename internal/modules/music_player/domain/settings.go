package domain

// Theme selects one of the color palettes.
type Theme string

const (
	ThemeAqua  Theme = "aqua"
	ThemeGreen Theme = "green"
	ThemeAmber Theme = "amber"
	ThemePink  Theme = "pink"
	ThemeRed   Theme = "red"
)

// Language selects the translation table.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageUzbek   Language = "uz"
)

// VisualizerMode selects how the analyser data is rendered.
type VisualizerMode string

const (
	VisualizerBars  VisualizerMode = "bars"
	VisualizerWave  VisualizerMode = "wave"
	VisualizerFade  VisualizerMode = "fade"
	VisualizerScale VisualizerMode = "scale"
	VisualizerOff   VisualizerMode = "off"
)

// Palette is the pair of colors a theme applies.
type Palette struct {
	Primary   string
	Secondary string
}

var palettes = map[Theme]Palette{
	ThemeAqua:  {Primary: "#00FFFF", Secondary: "#008888"},
	ThemeGreen: {Primary: "#00FF00", Secondary: "#008800"},
	ThemeAmber: {Primary: "#FFB000", Secondary: "#885500"},
	ThemePink:  {Primary: "#FF00FF", Secondary: "#880088"},
	ThemeRed:   {Primary: "#FF0000", Secondary: "#880000"},
}

// Themes returns the recognized themes in display order.
func Themes() []Theme {
	return []Theme{ThemeAqua, ThemeGreen, ThemeAmber, ThemePink, ThemeRed}
}

// Languages returns the recognized languages.
func Languages() []Language {
	return []Language{LanguageEnglish, LanguageUzbek}
}

// VisualizerModes returns the recognized visualizer modes.
func VisualizerModes() []VisualizerMode {
	return []VisualizerMode{VisualizerBars, VisualizerWave, VisualizerFade, VisualizerScale, VisualizerOff}
}

// IsValid reports whether t is a recognized theme.
func (t Theme) IsValid() bool {
	_, ok := palettes[t]
	return ok
}

// Palette returns the colors of the theme, falling back to aqua.
func (t Theme) Palette() Palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[ThemeAqua]
}

// IsValid reports whether l is a recognized language.
func (l Language) IsValid() bool {
	_, ok := translations[l]
	return ok
}

// IsValid reports whether m is a recognized visualizer mode.
func (m VisualizerMode) IsValid() bool {
	switch m {
	case VisualizerBars, VisualizerWave, VisualizerFade, VisualizerScale, VisualizerOff:
		return true
	default:
		return false
	}
}

// Settings holds the process-wide user preferences.
type Settings struct {
	Theme          Theme
	Language       Language
	VisualizerMode VisualizerMode
	Autoplay       bool
	SoundEnabled   bool
	Scanlines      bool
	Grid           bool
}

// DefaultSettings returns the preferences used when nothing is stored.
func DefaultSettings() Settings {
	return Settings{
		Theme:          ThemeAqua,
		Language:       LanguageEnglish,
		VisualizerMode: VisualizerBars,
		Autoplay:       true,
		SoundEnabled:   true,
		Scanlines:      true,
		Grid:           true,
	}
}

// StyleVariables returns the global style variables the theme applies.
func (s Settings) StyleVariables() map[string]string {
	p := s.Theme.Palette()
	return map[string]string{
		"--text-primary":   p.Primary,
		"--accent":         p.Primary,
		"--cursor-color":   p.Primary,
		"--text-secondary": p.Secondary,
	}
}

// Translate looks key up in the table of the settings language.
func (s Settings) Translate(key string) string {
	return Translate(s.Language, key)
}
