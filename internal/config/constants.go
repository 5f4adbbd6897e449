package config

import (
	"time"
)

// Application info
const (
	AppID   = "com.streamscribe.streamscribe"
	AppName = "StreamScribe"
)

// Performance settings
const (
	// CacheSize bounds the metadata cache; oldest-inserted entries are
	// evicted first.
	CacheSize = 50

	// MaxPlaylistVideos caps playlist expansion and scraped video counts.
	MaxPlaylistVideos = 50
)

// Timeout settings
const (
	// TimeoutFast covers the single-video page scrape.
	TimeoutFast = 1500 * time.Millisecond

	// TimeoutNormal covers the playlist page scrape.
	TimeoutNormal = 3 * time.Second

	// TimeoutLong covers engine metadata calls.
	TimeoutLong = 10 * time.Second

	// TimeoutThumbnailProbe covers the opportunistic high-res thumbnail
	// HEAD request. Probe failure is silently ignored.
	TimeoutThumbnailProbe = 800 * time.Millisecond
)

// Download defaults
const (
	DefaultQuality   = "1080p"
	DefaultMaxHeight = 1080
	DefaultSubLangs  = "tr,en"
	AudioBitrate     = "192"
)

// QualityMap translates the user-facing quality label into the maximum
// vertical resolution passed to the engine.
var QualityMap = map[string]int{
	"4K":    2160,
	"1440p": 1440,
	"1080p": 1080,
	"720p":  720,
	"480p":  480,
	"360p":  360,
}

// QualityValue returns the numeric height for a quality label, defaulting
// to 1080 for unknown labels.
func QualityValue(quality string) int {
	if height, ok := QualityMap[quality]; ok {
		return height
	}
	return DefaultMaxHeight
}

// QualityOptions returns the quality labels in descending order for UI
// selection.
func QualityOptions() []string {
	return []string{"4K", "1440p", "1080p", "720p", "480p", "360p"}
}

// UserAgent identifies the scraper to the video site.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// RequestHeaders are attached to every fast-path page fetch.
var RequestHeaders = map[string]string{
	"User-Agent":      UserAgent,
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.5",
	"Connection":      "keep-alive",
}
