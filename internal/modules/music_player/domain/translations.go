package domain

var translations = map[Language]map[string]string{
	LanguageEnglish: {
		"system_config":    "SYSTEM_CONFIG",
		"apply_exit":       "APPLY & EXIT",
		"color_scheme":     "COLOR SCHEME",
		"visual_modules":   "VISUAL MODULES",
		"audio_modules":    "AUDIO MODULES",
		"gameplay_modules": "PLAYBACK MODULES",
		"language":         "LANGUAGE",
		"upload":           "UPLOAD",
		"editor":           "EDITOR",
		"config":           "CONFIG",
		"playing":          "PLAYING",
		"ready":            "READY",
		"loading":          "Loading library...",
		"no_songs":         "No songs found in library",
		"tracklist":        "TRACKLIST",
		"lyrics":           "LYRICS",
		"fade":             "FADE",
		"scale":            "SCALE",
	},
	LanguageUzbek: {
		"system_config":    "TIZIM_SOZLAMALARI",
		"apply_exit":       "SAQLASH VE CHIQISH",
		"color_scheme":     "RANG TIZIMI",
		"visual_modules":   "VIZUAL MODULLAR",
		"audio_modules":    "OVOZ MODULLARI",
		"gameplay_modules": "PLAYBACK MODULLARI",
		"language":         "TIL",
		"upload":           "YUKLASH",
		"editor":           "TAHRIRLASH",
		"config":           "SOZLAMA",
		"playing":          "O'YNAMOQDA",
		"ready":            "TAYYOR",
		"loading":          "Kutubxona yuklanmoqda...",
		"no_songs":         "Kutubxonada qo'shiq topilmadi",
		"tracklist":        "TREKLAR",
		"lyrics":           "MATN",
		"fade":             "FADE",
		"scale":            "SCALE",
	},
}

// Translate returns the text for key in lang. Missing entries fall back to
// the key itself.
func Translate(lang Language, key string) string {
	if texts, ok := translations[lang]; ok {
		if text, ok := texts[key]; ok {
			return text
		}
	}
	return key
}
