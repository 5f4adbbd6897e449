package platform

import (
	"fmt"
	"regexp"
	"strings"
)

// URL markers
const (
	PlaylistParam   = "list="
	WatchParam      = "watch?v="
	ShortHostMarker = "youtu.be/"
)

// URL templates
const (
	WatchURLTemplate        = "https://www.youtube.com/watch?v=%s"
	PlaylistURLTemplate     = "https://www.youtube.com/playlist?list=%s"
	ThumbnailMediumTemplate = "https://img.youtube.com/vi/%s/mqdefault.jpg"
	ThumbnailMaxResTemplate = "https://img.youtube.com/vi/%s/maxresdefault.jpg"
)

var (
	// Video ids are 11 characters across every known URL shape.
	videoIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:watch\?v=|youtu\.be/|/embed/)([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`[?&]v=([a-zA-Z0-9_-]{11})`),
	}

	playlistIDPattern = regexp.MustCompile(`list=([a-zA-Z0-9_-]+)`)
)

// ExtractVideoID extracts the 11-character video id from any of the known
// URL shapes (watch?v=, youtu.be/, /embed/, generic ?v=). Returns "" when
// no id is present.
func ExtractVideoID(url string) string {
	for _, pattern := range videoIDPatterns {
		if match := pattern.FindStringSubmatch(url); match != nil {
			return match[1]
		}
	}
	return ""
}

// ExtractPlaylistID extracts the playlist id from a list= query parameter,
// regardless of surrounding parameters or path shape. Returns "" when no id
// is present.
func ExtractPlaylistID(url string) string {
	if match := playlistIDPattern.FindStringSubmatch(url); match != nil {
		return match[1]
	}
	return ""
}

// IsPlaylistURL reports whether the URL should be treated as a playlist:
// it carries a playlist-list marker and no single-watch marker.
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistParam) && !strings.Contains(url, WatchParam)
}

// NormalizeWatchURL converts youtu.be short links to the canonical watch
// URL; other URLs pass through unchanged.
func NormalizeWatchURL(url string) string {
	if strings.Contains(url, ShortHostMarker) {
		if id := ExtractVideoID(url); id != "" {
			return WatchURL(id)
		}
	}
	return url
}

// WatchURL returns the canonical watch page URL for a video id.
func WatchURL(videoID string) string {
	return fmt.Sprintf(WatchURLTemplate, videoID)
}

// PlaylistURL returns the canonical playlist page URL for a playlist id.
func PlaylistURL(playlistID string) string {
	return fmt.Sprintf(PlaylistURLTemplate, playlistID)
}

// ThumbnailMediumURL returns the medium-quality thumbnail URL for a video.
func ThumbnailMediumURL(videoID string) string {
	return fmt.Sprintf(ThumbnailMediumTemplate, videoID)
}

// ThumbnailMaxResURL returns the maximum-resolution thumbnail URL for a
// video. The image is not guaranteed to exist; callers probe before use.
func ThumbnailMaxResURL(videoID string) string {
	return fmt.Sprintf(ThumbnailMaxResTemplate, videoID)
}
