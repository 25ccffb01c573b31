package config

import "time"

// SupportedLanguages maps the language codes the portal backend can
// translate into to their display names.
var SupportedLanguages = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"ta": "Tamil",
	"te": "Telugu",
	"bn": "Bengali",
	"mr": "Marathi",
	"gu": "Gujarati",
	"kn": "Kannada",
	"ml": "Malayalam",
	"pa": "Punjabi",
	"ur": "Urdu",
	"or": "Odia",
	"as": "Assamese",
}

// SourceLanguage is the language documents are published in. Switching
// back to it reloads original content instead of calling the translator.
const SourceLanguage = "en"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:      "http://localhost:8000/api",
		Language:        SourceLanguage,
		RequestTimeout:  30 * time.Second,
		PDFProbeTimeout: 3 * time.Second,
		DataDir:         ".govlens",
		Demo:            false,
		DemoPort:        8000,
	}
}
