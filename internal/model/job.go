package model

import (
	"fmt"
	"strings"
	"time"
)

// JobState represents the lifecycle state of a download job.
type JobState string

const (
	// JobStateIdle means no engine call is associated with the job yet.
	JobStateIdle JobState = "Idle"

	// JobStateRunning means the engine call is in flight.
	JobStateRunning JobState = "Running"

	// JobStateSucceeded means the engine call returned normally.
	JobStateSucceeded JobState = "Succeeded"

	// JobStateFailed means the engine call raised an error.
	JobStateFailed JobState = "Failed"
)

// String returns the string representation of JobState.
func (js JobState) String() string {
	return string(js)
}

// IsFinished returns true if the job reached a terminal state.
func (js JobState) IsFinished() bool {
	return js == JobStateSucceeded || js == JobStateFailed
}

// JobOptions are the user-facing download choices translated into engine
// configuration by the option builder.
type JobOptions struct {
	AudioOnly        bool
	MaxHeight        int
	PreferMP4        bool
	NoPlaylist       bool
	IncludeSubtitles bool
	SubtitleLangs    string // comma-separated, trimmed by the builder
	AutoSubtitles    bool
}

// SubtitleLangList splits the comma-separated language field into a cleaned
// slice, dropping empty segments.
func (o JobOptions) SubtitleLangList() []string {
	var langs []string
	for _, part := range strings.Split(o.SubtitleLangs, ",") {
		if lang := strings.TrimSpace(part); lang != "" {
			langs = append(langs, lang)
		}
	}
	return langs
}

// DownloadJob is a single operation against the extraction engine.
type DownloadJob struct {
	ID              string
	SourceURL       string
	Options         JobOptions
	OutputDirectory string
	State           JobState
	Percent         float64 // 0 to 100, normalized, non-decreasing
	Speed           string  // human readable speed (e.g., "1.2MB/s")
	ETASec          int     // ETA in seconds, -1 if unknown
	LastError       string
	StartedAt       time.Time
	FinishedAt      time.Time
}

// GetETAString returns ETA formatted as hh:mm:ss, or "—" if unknown.
func (j *DownloadJob) GetETAString() string {
	if j.ETASec <= 0 {
		return "—"
	}

	hours := j.ETASec / 3600
	minutes := (j.ETASec % 3600) / 60
	seconds := j.ETASec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
