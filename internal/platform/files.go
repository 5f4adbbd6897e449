package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Filename constraints
const (
	MaxFileNameLength     = 200
	MaxPlaylistNameLength = 40
	SessionDirTimeFormat  = "2006-01-02_15-04"
)

// invalidFileChars are scrubbed from user-derived file and directory names.
const invalidFileChars = `<>:"/\|?*`

// CreateDirectoryIfNotExists creates directory if it doesn't exist.
// Idempotent: safe to call when the directory is already present.
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Downloads"), nil
}

// SafeFileName scrubs characters that are invalid in file names, collapses
// underscore runs, and caps the length while preserving the extension.
func SafeFileName(name string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = MaxFileNameLength
	}

	for _, ch := range invalidFileChars {
		name = strings.ReplaceAll(name, string(ch), "_")
	}
	for strings.Contains(name, "__") {
		name = strings.ReplaceAll(name, "__", "_")
	}

	if len(name) > maxLength {
		ext := filepath.Ext(name)
		base := strings.TrimSuffix(name, ext)
		cut := maxLength - len(ext)
		if cut < 0 {
			cut = 0
		}
		name = base[:min(cut, len(base))] + ext
	}

	return strings.Trim(name, "_")
}

// PlaylistOutputDir builds and creates the shared directory for one bulk
// session: sanitized playlist name plus a timestamp to avoid collisions
// between repeated runs.
func PlaylistOutputDir(baseDir, playlistName string) (string, error) {
	clean := SafeFileName(playlistName, MaxPlaylistNameLength)
	if clean == "" {
		clean = "Playlist"
	}

	folderName := fmt.Sprintf("%s_%s", clean, time.Now().Format(SessionDirTimeFormat))
	dir := filepath.Join(baseDir, folderName)

	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		return "", fmt.Errorf("failed to create playlist directory: %w", err)
	}
	return dir, nil
}

// FormatFileSize formats a byte count in human readable form.
func FormatFileSize(sizeBytes int64) string {
	if sizeBytes == 0 {
		return "0 B"
	}

	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(sizeBytes)
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}

	if i == 0 {
		return fmt.Sprintf("%d B", sizeBytes)
	}
	return fmt.Sprintf("%.1f %s", size, units[i])
}

// OpenDirectory opens the directory in the system file manager.
func OpenDirectory(dirPath string) error {
	absPath, err := filepath.Abs(dirPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", absPath).Run()
	case "windows":
		return exec.Command("explorer", absPath).Run()
	case "linux":
		return exec.Command("xdg-open", absPath).Run()
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}
