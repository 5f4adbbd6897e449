package engine

import (
	"fmt"
	"strings"

	"github.com/streamscribe/streamscribe/internal/config"
	"github.com/streamscribe/streamscribe/internal/model"
)

// Output template and resilience defaults
const (
	OutputTemplate = "%(title).200s [%(id)s].%(ext)s"

	DefaultRetries         = 10
	DefaultFragmentRetries = 3
	DefaultChunkSize       = "10M"
	DefaultSocketTimeout   = 30
)

// Config is the fully built engine configuration for one download. The
// adapter translates it into an argument list.
type Config struct {
	OutputDir      string
	OutputTemplate string

	FormatSelector string

	ExtractAudio bool
	AudioFormat  string
	AudioQuality string
	EmbedMeta    bool

	WriteSubtitles bool
	WriteAutoSubs  bool
	SubtitleLangs  []string
	SubtitleFormat string
	EmbedSubtitles bool

	NoPlaylist bool

	Retries         int
	FragmentRetries int
	ChunkSize       string
	SocketTimeout   int
}

// BuildConfig translates user options into engine configuration. It never
// fails: malformed input degrades to FallbackConfig so a download can
// always be attempted.
func BuildConfig(opts model.JobOptions, outputDir string) *Config {
	cfg := &Config{
		OutputDir:       outputDir,
		OutputTemplate:  OutputTemplate,
		NoPlaylist:      opts.NoPlaylist,
		Retries:         DefaultRetries,
		FragmentRetries: DefaultFragmentRetries,
		ChunkSize:       DefaultChunkSize,
		SocketTimeout:   DefaultSocketTimeout,
	}

	if opts.AudioOnly {
		cfg.FormatSelector = "bestaudio/best"
		cfg.ExtractAudio = true
		cfg.AudioFormat = "mp3"
		cfg.AudioQuality = config.AudioBitrate
		cfg.EmbedMeta = true
	} else {
		selector, err := videoFormatSelector(opts.MaxHeight, opts.PreferMP4)
		if err != nil {
			return FallbackConfig(outputDir, opts.NoPlaylist)
		}
		cfg.FormatSelector = selector
	}

	if opts.IncludeSubtitles && !opts.AudioOnly {
		cfg.WriteSubtitles = true
		cfg.WriteAutoSubs = opts.AutoSubtitles
		cfg.SubtitleFormat = "srt"
		cfg.EmbedSubtitles = true

		langs := opts.SubtitleLangList()
		if len(langs) == 0 {
			langs = strings.Split(config.DefaultSubLangs, ",")
		}
		cfg.SubtitleLangs = langs
	}

	return cfg
}

// FallbackConfig is the minimal configuration used when option building
// cannot produce a proper one. Best available quality, no extras.
func FallbackConfig(outputDir string, noPlaylist bool) *Config {
	return &Config{
		OutputDir:       outputDir,
		OutputTemplate:  OutputTemplate,
		FormatSelector:  "best",
		NoPlaylist:      noPlaylist,
		Retries:         DefaultRetries,
		FragmentRetries: DefaultFragmentRetries,
		ChunkSize:       DefaultChunkSize,
		SocketTimeout:   DefaultSocketTimeout,
	}
}

// videoFormatSelector builds the graduated format chain for a height cap.
// Each alternative is a strict superset of the next, so the engine degrades
// instead of failing when the preferred combination is absent.
func videoFormatSelector(maxHeight int, preferMP4 bool) (string, error) {
	if maxHeight <= 0 {
		return "", fmt.Errorf("invalid max height %d", maxHeight)
	}

	if !preferMP4 {
		return fmt.Sprintf("bestvideo[height<=%d]+bestaudio/best[height<=%d]/best", maxHeight, maxHeight), nil
	}

	return fmt.Sprintf(
		"bestvideo[height<=%d][ext=mp4]+bestaudio[ext=m4a]/best[height<=%d][ext=mp4]/best[ext=mp4]/best",
		maxHeight, maxHeight,
	), nil
}
