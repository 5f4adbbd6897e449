package platform

import (
	"context"
	"fmt"
	"time"

	"github.com/ytget/ytdlp/v2"

	"github.com/streamscribe/streamscribe/internal/model"
)

// DefaultExpandTimeout bounds a single playlist expansion.
const DefaultExpandTimeout = 60 * time.Second

// PlaylistExpander resolves a playlist id to its full ordered item list
// using the ytdlp library.
type PlaylistExpander struct {
	timeout   time.Duration
	maxVideos int
}

// NewPlaylistExpander creates an expander capping results at maxVideos.
func NewPlaylistExpander(maxVideos int) *PlaylistExpander {
	return &PlaylistExpander{
		timeout:   DefaultExpandTimeout,
		maxVideos: maxVideos,
	}
}

// SetTimeout sets the timeout for expansion operations
func (p *PlaylistExpander) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// Expand fetches the playlist items and converts them to ordered entries
// with 1-based indices. The result is capped at the configured maximum.
func (p *PlaylistExpander) Expand(ctx context.Context, playlistID string) ([]model.PlaylistEntry, error) {
	if playlistID == "" {
		return nil, fmt.Errorf("empty playlist id")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	if p.maxVideos > 0 && len(items) > p.maxVideos {
		items = items[:p.maxVideos]
	}

	entries := make([]model.PlaylistEntry, 0, len(items))
	for i, it := range items {
		entries = append(entries, model.PlaylistEntry{
			Index:        i + 1,
			VideoID:      it.VideoID,
			Title:        CleanTitle(it.Title),
			URL:          WatchURL(it.VideoID),
			ThumbnailURL: ThumbnailMediumURL(it.VideoID),
		})
	}
	return entries, nil
}
