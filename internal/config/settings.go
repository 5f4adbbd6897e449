package config

import (
	"fyne.io/fyne/v2"

	"github.com/streamscribe/streamscribe/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir   = "download_directory"
	KeyQuality       = "quality"
	KeyAudioOnly     = "audio_only"
	KeyPreferMP4     = "prefer_mp4"
	KeyIncludeSubs   = "include_subtitles"
	KeySubtitleLangs = "subtitle_langs"
	KeyAutoSubs      = "auto_subtitles"
	KeyLanguage      = "app_language"
)

// Default values
const (
	DefaultPreferMP4 = true
	DefaultLanguage  = "system"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = "/tmp/downloads"
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetQuality returns the configured quality label
func (s *Settings) GetQuality() string {
	quality := s.app.Preferences().String(KeyQuality)
	if _, ok := QualityMap[quality]; !ok {
		s.SetQuality(DefaultQuality)
		return DefaultQuality
	}
	return quality
}

// SetQuality sets the quality label
func (s *Settings) SetQuality(quality string) {
	s.app.Preferences().SetString(KeyQuality, quality)
}

// GetAudioOnly returns whether downloads extract audio only
func (s *Settings) GetAudioOnly() bool {
	return s.app.Preferences().BoolWithFallback(KeyAudioOnly, false)
}

// SetAudioOnly sets the audio-only flag
func (s *Settings) SetAudioOnly(audioOnly bool) {
	s.app.Preferences().SetBool(KeyAudioOnly, audioOnly)
}

// GetPreferMP4 returns the preferred container family choice
func (s *Settings) GetPreferMP4() bool {
	return s.app.Preferences().BoolWithFallback(KeyPreferMP4, DefaultPreferMP4)
}

// SetPreferMP4 sets the preferred container family choice
func (s *Settings) SetPreferMP4(preferMP4 bool) {
	s.app.Preferences().SetBool(KeyPreferMP4, preferMP4)
}

// GetIncludeSubtitles returns whether subtitle fetching is enabled
func (s *Settings) GetIncludeSubtitles() bool {
	return s.app.Preferences().BoolWithFallback(KeyIncludeSubs, false)
}

// SetIncludeSubtitles sets subtitle fetching
func (s *Settings) SetIncludeSubtitles(include bool) {
	s.app.Preferences().SetBool(KeyIncludeSubs, include)
}

// GetSubtitleLangs returns the comma-separated subtitle language list
func (s *Settings) GetSubtitleLangs() string {
	langs := s.app.Preferences().String(KeySubtitleLangs)
	if langs == "" {
		s.SetSubtitleLangs(DefaultSubLangs)
		return DefaultSubLangs
	}
	return langs
}

// SetSubtitleLangs sets the subtitle language list
func (s *Settings) SetSubtitleLangs(langs string) {
	if langs == "" {
		langs = DefaultSubLangs
	}
	s.app.Preferences().SetString(KeySubtitleLangs, langs)
}

// GetAutoSubtitles returns whether auto-generated captions are included
func (s *Settings) GetAutoSubtitles() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoSubs, false)
}

// SetAutoSubtitles sets auto-generated caption inclusion
func (s *Settings) SetAutoSubtitles(auto bool) {
	s.app.Preferences().SetBool(KeyAutoSubs, auto)
}

// GetLanguage returns the configured UI language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}
