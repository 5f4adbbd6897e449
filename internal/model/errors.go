package model

import (
	"strings"
)

// Raw engine error text is never shown in full.
const maxRawErrorLen = 100

// ResolveErrorKind categorizes metadata resolution failures.
type ResolveErrorKind string

const (
	// ResolveInvalidURL means no video or playlist ID could be extracted.
	ResolveInvalidURL ResolveErrorKind = "invalid_url"

	// ResolvePageUnreachable means the fast-path fetch failed or timed out.
	// Always recoverable; the resolver falls back to the engine.
	ResolvePageUnreachable ResolveErrorKind = "page_unreachable"

	// ResolveExtractionFailed means both the fast path and the engine
	// fallback failed to produce metadata.
	ResolveExtractionFailed ResolveErrorKind = "extraction_failed"

	// ResolveInfoUnavailable means the engine returned an empty result.
	ResolveInfoUnavailable ResolveErrorKind = "info_unavailable"
)

// ResolveError is the tagged failure result of metadata resolution. It
// replaces the VideoInfo record and carries no metadata fields.
type ResolveError struct {
	Kind    ResolveErrorKind
	Message string
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Message
}

// NewResolveError creates a tagged resolution failure with the raw detail
// truncated.
func NewResolveError(kind ResolveErrorKind, detail string) *ResolveError {
	return &ResolveError{Kind: kind, Message: TruncateError(detail)}
}

// DownloadCategory is the user-facing classification of an engine failure.
type DownloadCategory string

const (
	DownloadErrPrivateVideo     DownloadCategory = "private_video"
	DownloadErrVideoUnavailable DownloadCategory = "video_unavailable"
	DownloadErrLoginRequired    DownloadCategory = "login_required"
	DownloadErrCopyrightBlocked DownloadCategory = "copyright_blocked"
	DownloadErrNetwork          DownloadCategory = "network_error"
	DownloadErrTimeout          DownloadCategory = "timeout"
	DownloadErrUnknown          DownloadCategory = "unknown"
)

// DownloadError is a classified engine failure delivered through the
// orchestrator's error callback.
type DownloadError struct {
	Category DownloadCategory
	Raw      string // truncated raw engine text, only set for Unknown
}

// Error implements the error interface.
func (e *DownloadError) Error() string {
	if e.Raw != "" {
		return string(e.Category) + ": " + e.Raw
	}
	return string(e.Category)
}

// ClassifyDownloadError maps raw engine error text to a user-facing
// category by substring inspection. Unknown carries the truncated raw text.
func ClassifyDownloadError(raw string) *DownloadError {
	lower := strings.ToLower(raw)

	switch {
	case strings.Contains(lower, "private video") || strings.Contains(lower, "is private"):
		return &DownloadError{Category: DownloadErrPrivateVideo}
	case strings.Contains(lower, "video unavailable") || strings.Contains(lower, "not available"):
		return &DownloadError{Category: DownloadErrVideoUnavailable}
	case strings.Contains(lower, "sign in") || strings.Contains(lower, "login required"):
		return &DownloadError{Category: DownloadErrLoginRequired}
	case strings.Contains(lower, "copyright") || strings.Contains(lower, "blocked"):
		return &DownloadError{Category: DownloadErrCopyrightBlocked}
	case strings.Contains(lower, "network") || strings.Contains(lower, "connection"):
		return &DownloadError{Category: DownloadErrNetwork}
	case strings.Contains(lower, "timeout") || strings.Contains(lower, "timed out"):
		return &DownloadError{Category: DownloadErrTimeout}
	default:
		return &DownloadError{Category: DownloadErrUnknown, Raw: TruncateError(raw)}
	}
}

// TruncateError caps raw error text so stack traces never leak into the UI.
func TruncateError(raw string) string {
	runes := []rune(raw)
	if len(runes) <= maxRawErrorLen {
		return raw
	}
	return string(runes[:maxRawErrorLen]) + "..."
}
