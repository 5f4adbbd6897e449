package engine

import (
	"context"
)

// Progress line statuses reported by the adapter.
const (
	StatusDownloading = "downloading"
	StatusConverting  = "converting"
	StatusFinished    = "finished"
)

// Metadata is the engine's view of a URL, mirroring the fields of a
// --dump-json record the application consumes.
type Metadata struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Thumbnail    string          `json:"thumbnail"`
	Duration     float64         `json:"duration"`
	PlaylistID   string          `json:"playlist_id"`
	PlaylistName string          `json:"playlist_title"`
	Entries      []MetadataEntry `json:"entries"`
}

// MetadataEntry is one item of a playlist metadata record.
type MetadataEntry struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
}

// IsPlaylist reports whether the record describes a playlist.
func (m *Metadata) IsPlaylist() bool {
	return len(m.Entries) > 0 || m.PlaylistID != ""
}

// ProgressRecord is one normalized progress observation from the engine.
// Absent numeric fields are zero; PercentStr is empty when the engine did
// not report a percentage.
type ProgressRecord struct {
	Status          string
	PercentStr      string
	DownloadedBytes int64
	TotalBytes      int64
	TotalBytesEst   int64
	SpeedStr        string
	ETASeconds      int
}

// ProgressFunc receives progress observations during a download.
type ProgressFunc func(ProgressRecord)

// Engine is the opaque extraction collaborator. Implementations run the
// actual media tooling; callers never see tool-specific types.
type Engine interface {
	// ExtractMetadata fetches metadata for a URL without downloading.
	ExtractMetadata(ctx context.Context, url string) (*Metadata, error)

	// Download runs one download with the given configuration, streaming
	// progress observations to progressFn (which may be nil).
	Download(ctx context.Context, url string, cfg *Config, progressFn ProgressFunc) error
}
