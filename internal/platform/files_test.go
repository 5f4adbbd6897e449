package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		maxLength int
		want      string
	}{
		{"plain", "video.mp4", 200, "video.mp4"},
		{"invalid chars", `bad<name>:"with/chars".mp4`, 200, "bad_name_with_chars_.mp4"},
		{"underscore runs collapsed", "a//\\b.mp4", 200, "a_b.mp4"},
		{"trim leading and trailing underscores", "/video/", 200, "video"},
		{"zero max falls back to default", strings.Repeat("a", 250), 0, strings.Repeat("a", MaxFileNameLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeFileName(tt.input, tt.maxLength); got != tt.want {
				t.Errorf("SafeFileName(%q, %d) = %q, want %q", tt.input, tt.maxLength, got, tt.want)
			}
		})
	}
}

func TestSafeFileName_PreservesExtension(t *testing.T) {
	long := strings.Repeat("x", 100) + ".mp4"
	got := SafeFileName(long, 20)

	if !strings.HasSuffix(got, ".mp4") {
		t.Errorf("expected .mp4 suffix, got %q", got)
	}
	if len(got) > 20 {
		t.Errorf("expected length <= 20, got %d", len(got))
	}
}

func TestCreateDirectoryIfNotExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	if err := CreateDirectoryIfNotExists(dir); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("directory not created: %v", err)
	}

	// Second call on an existing directory is a no-op
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		t.Errorf("repeat create failed: %v", err)
	}
}

func TestPlaylistOutputDir(t *testing.T) {
	base := t.TempDir()

	dir, err := PlaylistOutputDir(base, `My/Awesome: Playlist?`)
	if err != nil {
		t.Fatalf("PlaylistOutputDir failed: %v", err)
	}

	if info, statErr := os.Stat(dir); statErr != nil || !info.IsDir() {
		t.Fatalf("session directory not created: %v", statErr)
	}

	name := filepath.Base(dir)
	if strings.ContainsAny(name, `<>:"/\|?*`) {
		t.Errorf("directory name contains invalid characters: %q", name)
	}
	if !strings.HasPrefix(name, "My_Awesome_ Playlist_") && !strings.HasPrefix(name, "My_Awesome_ Playlist") {
		t.Errorf("unexpected directory name: %q", name)
	}
}

func TestPlaylistOutputDir_EmptyName(t *testing.T) {
	base := t.TempDir()

	dir, err := PlaylistOutputDir(base, "???")
	if err != nil {
		t.Fatalf("PlaylistOutputDir failed: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(dir), "Playlist_") {
		t.Errorf("expected Playlist fallback name, got %q", filepath.Base(dir))
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{1073741824, "1.0 GB"},
	}

	for _, tt := range tests {
		if got := FormatFileSize(tt.size); got != tt.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}
