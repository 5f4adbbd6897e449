package model

// ResolutionMethod records which strategy produced a VideoInfo.
type ResolutionMethod string

const (
	// MethodCache means the record was served from the metadata cache.
	MethodCache ResolutionMethod = "cache"

	// MethodFastScrape means the record came from the HTML fast path.
	MethodFastScrape ResolutionMethod = "fast_scrape"

	// MethodEngineFallback means the extraction engine produced the record.
	MethodEngineFallback ResolutionMethod = "engine_fallback"
)

// SingleDetail carries the fields specific to a single-video record.
type SingleDetail struct {
	VideoID string
}

// PlaylistDetail carries the fields specific to a playlist record.
type PlaylistDetail struct {
	PlaylistID string
	VideoCount int
}

// VideoInfo is a resolved metadata record. Exactly one of Single or Playlist
// is non-nil; use NewSingleInfo / NewPlaylistInfo to construct.
type VideoInfo struct {
	Title        string
	ThumbnailURL string
	Method       ResolutionMethod

	Single   *SingleDetail
	Playlist *PlaylistDetail
}

// NewSingleInfo creates a resolved record for a single video.
func NewSingleInfo(title, thumbnailURL, videoID string, method ResolutionMethod) *VideoInfo {
	return &VideoInfo{
		Title:        title,
		ThumbnailURL: thumbnailURL,
		Method:       method,
		Single:       &SingleDetail{VideoID: videoID},
	}
}

// NewPlaylistInfo creates a resolved record for a playlist.
func NewPlaylistInfo(title, thumbnailURL, playlistID string, videoCount int, method ResolutionMethod) *VideoInfo {
	return &VideoInfo{
		Title:        title,
		ThumbnailURL: thumbnailURL,
		Method:       method,
		Playlist:     &PlaylistDetail{PlaylistID: playlistID, VideoCount: videoCount},
	}
}

// IsPlaylist reports whether the record describes a playlist.
func (v *VideoInfo) IsPlaylist() bool {
	return v.Playlist != nil
}

// WithMethod returns a copy of the record tagged with the given method.
// Records are immutable once resolved; cache hits are re-tagged, not mutated.
func (v *VideoInfo) WithMethod(method ResolutionMethod) *VideoInfo {
	out := *v
	out.Method = method
	return &out
}

// PlaylistEntry is one item of an expanded playlist listing. Entries are
// created in bulk and never mutated, only replaced wholesale on re-fetch.
type PlaylistEntry struct {
	Index           int // 1-based, stable within one listing
	VideoID         string
	Title           string
	URL             string
	DurationSeconds int // 0 if unknown
	ThumbnailURL    string
}
