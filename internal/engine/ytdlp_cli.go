package engine

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Binary defaults
const (
	DefaultBinaryPath      = "yt-dlp"
	metadataRetries        = 2
	progressScanBufferSize = 256 * 1024
)

// CLIEngine drives the external yt-dlp binary through os/exec. It is the
// production Engine implementation.
type CLIEngine struct {
	binaryPath string
}

// NewCLIEngine creates an engine bound to the given binary path; an empty
// path uses the default lookup name.
func NewCLIEngine(binaryPath string) *CLIEngine {
	if binaryPath == "" {
		binaryPath = DefaultBinaryPath
	}
	return &CLIEngine{binaryPath: binaryPath}
}

// Available reports whether the engine binary can be found on PATH.
func (e *CLIEngine) Available() bool {
	_, err := exec.LookPath(e.binaryPath)
	return err == nil
}

// ExtractMetadata fetches metadata for a URL without downloading. Retries
// are reduced against the download path; metadata calls must stay fast.
func (e *CLIEngine) ExtractMetadata(ctx context.Context, url string) (*Metadata, error) {
	args := []string{
		"--dump-json",
		"--skip-download",
		"--flat-playlist",
		"--no-warnings",
		"--retries", strconv.Itoa(metadataRetries),
		url,
	}

	cmd := exec.CommandContext(ctx, e.binaryPath, args...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("metadata extraction failed: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("metadata extraction failed: %w", err)
	}

	return parseMetadataOutput(output)
}

// parseMetadataOutput handles both single-record output and the JSON-lines
// form produced for playlists.
func parseMetadataOutput(output []byte) (*Metadata, error) {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return nil, fmt.Errorf("empty metadata output")
	}

	if len(lines) == 1 {
		var meta Metadata
		if err := json.Unmarshal([]byte(lines[0]), &meta); err != nil {
			return nil, fmt.Errorf("failed to parse metadata: %w", err)
		}
		return &meta, nil
	}

	// Playlist: one record per line
	meta := &Metadata{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var entry struct {
			ID            string  `json:"id"`
			Title         string  `json:"title"`
			Duration      float64 `json:"duration"`
			PlaylistID    string  `json:"playlist_id"`
			PlaylistTitle string  `json:"playlist_title"`
		}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		if meta.PlaylistID == "" {
			meta.PlaylistID = entry.PlaylistID
			meta.PlaylistName = entry.PlaylistTitle
		}
		meta.Entries = append(meta.Entries, MetadataEntry{
			ID:       entry.ID,
			Title:    entry.Title,
			Duration: entry.Duration,
		})
	}

	if len(meta.Entries) == 0 {
		return nil, fmt.Errorf("no parsable metadata records")
	}
	meta.Title = meta.PlaylistName
	return meta, nil
}

// Download runs one download, streaming --newline progress output into
// ProgressRecords. Stderr is collected and returned inside the error on
// failure so callers can classify it.
func (e *CLIEngine) Download(ctx context.Context, url string, cfg *Config, progressFn ProgressFunc) error {
	if cfg == nil {
		cfg = FallbackConfig(".", false)
	}

	args := buildArgs(url, cfg)
	log.Printf("engine: starting download url=%s format=%q", url, cfg.FormatSelector)

	cmd := exec.CommandContext(ctx, e.binaryPath, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start engine: %w", err)
	}

	var stderrOutput strings.Builder
	stderrDone := make(chan struct{})
	go func() {
		defer close(stderrDone)
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			stderrOutput.WriteString(scanner.Text())
			stderrOutput.WriteString("\n")
		}
	}()

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, progressScanBufferSize), progressScanBufferSize)
	for scanner.Scan() {
		record, ok := parseProgressLine(scanner.Text())
		if ok && progressFn != nil {
			progressFn(record)
		}
	}

	<-stderrDone
	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("engine failed: %s", strings.TrimSpace(stderrOutput.String()))
	}

	if progressFn != nil {
		progressFn(ProgressRecord{Status: StatusFinished, PercentStr: "100%"})
	}
	return nil
}

// buildArgs translates a Config into the engine argument list.
func buildArgs(url string, cfg *Config) []string {
	args := []string{
		"--newline",
		"--progress",
		"--no-warnings",
		"-f", cfg.FormatSelector,
		"--output", filepath.Join(cfg.OutputDir, cfg.OutputTemplate),
		"--retries", strconv.Itoa(cfg.Retries),
		"--fragment-retries", strconv.Itoa(cfg.FragmentRetries),
		"--http-chunk-size", cfg.ChunkSize,
		"--socket-timeout", strconv.Itoa(cfg.SocketTimeout),
	}

	if cfg.NoPlaylist {
		args = append(args, "--no-playlist")
	}

	if cfg.ExtractAudio {
		args = append(args, "--extract-audio", "--audio-format", cfg.AudioFormat,
			"--audio-quality", cfg.AudioQuality)
		if cfg.EmbedMeta {
			args = append(args, "--embed-metadata")
		}
	}

	if cfg.WriteSubtitles {
		args = append(args, "--write-subs", "--convert-subs", cfg.SubtitleFormat,
			"--sub-langs", strings.Join(cfg.SubtitleLangs, ","))
		if cfg.WriteAutoSubs {
			args = append(args, "--write-auto-subs")
		}
		if cfg.EmbedSubtitles {
			args = append(args, "--embed-subs")
		}
	}

	return append(args, url)
}

// parseProgressLine extracts one progress observation from a --newline
// output line. Format: [download]  45.2% of 5.00MiB at 1.00MiB/s ETA 00:03
func parseProgressLine(line string) (ProgressRecord, bool) {
	line = strings.TrimSpace(line)

	switch {
	case strings.Contains(line, "Destination:"), strings.HasPrefix(line, "[ExtractAudio]"),
		strings.HasPrefix(line, "[Merger]"):
		return ProgressRecord{Status: StatusConverting}, true

	case strings.HasPrefix(line, "[download]"):
		fields := strings.Fields(line)
		if len(fields) < 2 || !strings.HasSuffix(fields[1], "%") {
			return ProgressRecord{}, false
		}
		record := ProgressRecord{
			Status:     StatusDownloading,
			PercentStr: fields[1],
			ETASeconds: -1,
		}
		for i := 0; i < len(fields)-1; i++ {
			switch fields[i] {
			case "at":
				record.SpeedStr = fields[i+1]
			case "ETA":
				record.ETASeconds = parseClock(fields[i+1])
			}
		}
		return record, true
	}

	return ProgressRecord{}, false
}

// parseClock converts MM:SS or HH:MM:SS to seconds, -1 if unparsable.
func parseClock(s string) int {
	parts := strings.Split(s, ":")
	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return -1
		}
		total = total*60 + n
	}
	if len(parts) < 2 || len(parts) > 3 {
		return -1
	}
	return total
}
