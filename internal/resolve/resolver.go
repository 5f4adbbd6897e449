package resolve

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/streamscribe/streamscribe/internal/cache"
	"github.com/streamscribe/streamscribe/internal/config"
	"github.com/streamscribe/streamscribe/internal/engine"
	"github.com/streamscribe/streamscribe/internal/model"
	"github.com/streamscribe/streamscribe/internal/platform"
)

// maxPageBytes caps how much of a scraped page is read.
const maxPageBytes = 4 << 20

// Resolver produces metadata records through layered strategies: cache
// first, HTML fast path second, engine fallback last. Failures of an inner
// layer degrade to the next one; only the final layer surfaces errors.
type Resolver struct {
	cache  *cache.Cache
	engine engine.Engine
	client *http.Client

	// baseURL overrides the page host for tests; empty in production.
	baseURL string

	// probeThumbnails controls the opportunistic high-res thumbnail HEAD
	// request. Off in tests.
	probeThumbnails bool

	maxPlaylistVideos int
}

// New creates a resolver over the given cache and engine.
func New(metaCache *cache.Cache, eng engine.Engine) *Resolver {
	return &Resolver{
		cache:             metaCache,
		engine:            eng,
		client:            &http.Client{},
		probeThumbnails:   true,
		maxPlaylistVideos: config.MaxPlaylistVideos,
	}
}

// SetBaseURL redirects page fetches to the given host. Test hook.
func (r *Resolver) SetBaseURL(baseURL string) {
	r.baseURL = baseURL
}

// SetThumbnailProbe toggles the high-res thumbnail probe.
func (r *Resolver) SetThumbnailProbe(enabled bool) {
	r.probeThumbnails = enabled
}

// Resolve turns a URL into a metadata record. The error result is a tagged
// classification, never a wrapped transport error.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (*model.VideoInfo, *model.ResolveError) {
	if info, ok := r.cache.Get(rawURL); ok {
		return info.WithMethod(model.MethodCache), nil
	}

	if platform.IsPlaylistURL(rawURL) {
		playlistID := platform.ExtractPlaylistID(rawURL)
		if playlistID == "" {
			return nil, model.NewResolveError(model.ResolveInvalidURL, "no playlist id in url")
		}
		return r.resolvePlaylist(ctx, rawURL, playlistID)
	}

	videoID := platform.ExtractVideoID(rawURL)
	if videoID == "" {
		return nil, model.NewResolveError(model.ResolveInvalidURL, "no video id in url")
	}
	return r.resolveSingle(ctx, rawURL, videoID)
}

func (r *Resolver) resolveSingle(ctx context.Context, rawURL, videoID string) (*model.VideoInfo, *model.ResolveError) {
	pageHTML, err := r.fetchPage(ctx, r.watchPageURL(videoID), config.TimeoutFast)
	if err == nil {
		meta := platform.ExtractVideoMeta(pageHTML)
		if meta.Title != "" {
			info := model.NewSingleInfo(
				platform.CleanTitle(meta.Title),
				r.thumbnailURL(ctx, videoID),
				videoID,
				model.MethodFastScrape,
			)
			r.cache.Put(rawURL, info)
			return info, nil
		}
	} else {
		log.Printf("resolve: fast path failed for %s: %v", videoID, err)
	}

	return r.engineFallback(ctx, rawURL, platform.WatchURL(videoID), videoID)
}

func (r *Resolver) resolvePlaylist(ctx context.Context, rawURL, playlistID string) (*model.VideoInfo, *model.ResolveError) {
	pageHTML, err := r.fetchPage(ctx, r.playlistPageURL(playlistID), config.TimeoutNormal)
	if err == nil {
		meta := platform.ExtractPlaylistMeta(pageHTML, r.maxPlaylistVideos)
		if meta.Title != "" {
			thumbnail := ""
			if meta.FirstVideoID != "" {
				thumbnail = r.thumbnailURL(ctx, meta.FirstVideoID)
			}
			info := model.NewPlaylistInfo(
				platform.CleanTitle(meta.Title),
				thumbnail,
				playlistID,
				meta.VideoCount,
				model.MethodFastScrape,
			)
			r.cache.Put(rawURL, info)
			return info, nil
		}
	} else {
		log.Printf("resolve: playlist fast path failed for %s: %v", playlistID, err)
	}

	return r.playlistEngineFallback(ctx, rawURL, playlistID)
}

func (r *Resolver) engineFallback(ctx context.Context, rawURL, engineURL, videoID string) (*model.VideoInfo, *model.ResolveError) {
	ctx, cancel := context.WithTimeout(ctx, config.TimeoutLong)
	defer cancel()

	meta, err := r.engine.ExtractMetadata(ctx, engineURL)
	if err != nil {
		return nil, model.NewResolveError(model.ResolveExtractionFailed, err.Error())
	}
	if meta == nil || meta.Title == "" {
		return nil, model.NewResolveError(model.ResolveInfoUnavailable, "engine returned no metadata")
	}

	thumbnail := meta.Thumbnail
	if thumbnail == "" {
		thumbnail = platform.ThumbnailMediumURL(videoID)
	}

	info := model.NewSingleInfo(platform.CleanTitle(meta.Title), thumbnail, videoID, model.MethodEngineFallback)
	r.cache.Put(rawURL, info)
	return info, nil
}

func (r *Resolver) playlistEngineFallback(ctx context.Context, rawURL, playlistID string) (*model.VideoInfo, *model.ResolveError) {
	ctx, cancel := context.WithTimeout(ctx, config.TimeoutLong)
	defer cancel()

	meta, err := r.engine.ExtractMetadata(ctx, platform.PlaylistURL(playlistID))
	if err != nil {
		return nil, model.NewResolveError(model.ResolveExtractionFailed, err.Error())
	}
	if meta == nil || len(meta.Entries) == 0 {
		return nil, model.NewResolveError(model.ResolveInfoUnavailable, "engine returned no playlist metadata")
	}

	count := len(meta.Entries)
	if count > r.maxPlaylistVideos {
		count = r.maxPlaylistVideos
	}

	thumbnail := ""
	if first := meta.Entries[0].ID; first != "" {
		thumbnail = platform.ThumbnailMediumURL(first)
	}

	title := meta.Title
	if title == "" {
		title = meta.PlaylistName
	}

	info := model.NewPlaylistInfo(platform.CleanTitle(title), thumbnail, playlistID, count, model.MethodEngineFallback)
	r.cache.Put(rawURL, info)
	return info, nil
}

// fetchPage performs one short-timeout GET with the configured browser
// headers and returns the body as a string.
func (r *Resolver) fetchPage(ctx context.Context, pageURL string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	for key, value := range config.RequestHeaders {
		req.Header.Set(key, value)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// thumbnailURL returns the best available thumbnail for a video: the
// high-res variant when a quick HEAD probe confirms it, the medium one
// otherwise. Probe failures are silent.
func (r *Resolver) thumbnailURL(ctx context.Context, videoID string) string {
	medium := platform.ThumbnailMediumURL(videoID)
	if !r.probeThumbnails {
		return medium
	}

	maxRes := platform.ThumbnailMaxResURL(videoID)
	ctx, cancel := context.WithTimeout(ctx, config.TimeoutThumbnailProbe)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, maxRes, nil)
	if err != nil {
		return medium
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return medium
	}
	resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return maxRes
	}
	return medium
}

func (r *Resolver) watchPageURL(videoID string) string {
	if r.baseURL != "" {
		return r.baseURL + "/watch?v=" + videoID
	}
	return platform.WatchURL(videoID)
}

func (r *Resolver) playlistPageURL(playlistID string) string {
	if r.baseURL != "" {
		return r.baseURL + "/playlist?list=" + playlistID
	}
	return platform.PlaylistURL(playlistID)
}
