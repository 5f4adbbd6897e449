package platform

import (
	"fmt"
	"strings"
	"testing"
)

func TestExtractVideoMeta_PlayerResponse(t *testing.T) {
	page := `<html><script>ytInitialPlayerResponse={"videoDetails":{"title":"Never Gonna Give You Up"}}</script></html>`

	meta := ExtractVideoMeta(page)
	if meta.Title != "Never Gonna Give You Up" {
		t.Errorf("expected player-response title, got %q", meta.Title)
	}
}

func TestExtractVideoMeta_PlayerResponseWithVarAndSemicolon(t *testing.T) {
	page := `<script>var ytInitialPlayerResponse = {"videoDetails":{"title":"Some Video","author":"Someone"}};var meta = {};</script>`

	meta := ExtractVideoMeta(page)
	if meta.Title != "Some Video" {
		t.Errorf("expected title from var-assigned block, got %q", meta.Title)
	}
}

func TestExtractVideoMeta_InitialData(t *testing.T) {
	page := `<script>ytInitialData = {"contents":{"twoColumnWatchNextResults":{"results":{"results":{"contents":[` +
		`{"videoSecondaryInfoRenderer":{}},` +
		`{"videoPrimaryInfoRenderer":{"title":{"runs":[{"text":"Deep Path Title"}]}}}` +
		`]}}}}};</script>`

	meta := ExtractVideoMeta(page)
	if meta.Title != "Deep Path Title" {
		t.Errorf("expected initial-data title, got %q", meta.Title)
	}
}

func TestExtractVideoMeta_RegexFallbacks(t *testing.T) {
	tests := []struct {
		name string
		page string
		want string
	}{
		{"quoted title field", `<script>{"videoDetails":"x","title":"Regex Title"}</script>`, "Regex Title"},
		{"runs variant", `<script>{"title":{"runs":[{"text":"Runs Title"}</script>`, "Runs Title"},
		{"html title tag", `<html><head><title>Tag Title - YouTube</title></head></html>`, "Tag Title"},
		{"bare site name rejected", `<html><head><title>YouTube</title></head></html>`, ""},
		{"nothing", `<html><body>no metadata here</body></html>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := ExtractVideoMeta(tt.page)
			if meta.Title != tt.want {
				t.Errorf("expected %q, got %q", tt.want, meta.Title)
			}
		})
	}
}

func TestExtractPlaylistMeta_TitlePaths(t *testing.T) {
	t.Run("metadata renderer", func(t *testing.T) {
		page := `<script>ytInitialData = {"metadata":{"playlistMetadataRenderer":{"title":"My Mix"}}};</script>`
		meta := ExtractPlaylistMeta(page, 50)
		if meta.Title != "My Mix" {
			t.Errorf("expected metadata title, got %q", meta.Title)
		}
	})

	t.Run("header renderer", func(t *testing.T) {
		page := `<script>ytInitialData = {"header":{"playlistHeaderRenderer":{"title":{"simpleText":"Header Mix"}}}};</script>`
		meta := ExtractPlaylistMeta(page, 50)
		if meta.Title != "Header Mix" {
			t.Errorf("expected header title, got %q", meta.Title)
		}
	})

	t.Run("regex fallback", func(t *testing.T) {
		page := `<script>{"playlistTitle":"Fallback Mix"}</script>`
		meta := ExtractPlaylistMeta(page, 50)
		if meta.Title != "Fallback Mix" {
			t.Errorf("expected regex title, got %q", meta.Title)
		}
	})
}

func TestExtractPlaylistMeta_VideoCount(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 12; i++ {
		// Each id appears twice; distinct ids must be counted once.
		id := fmt.Sprintf("abcdefgh%03d", i)
		fmt.Fprintf(&b, `{"videoId":"%s"}{"videoId":"%s"}`, id, id)
	}

	meta := ExtractPlaylistMeta(b.String(), 50)
	if meta.VideoCount != 12 {
		t.Errorf("expected 12 distinct videos, got %d", meta.VideoCount)
	}
	if meta.FirstVideoID != "abcdefgh000" {
		t.Errorf("expected first video id abcdefgh000, got %q", meta.FirstVideoID)
	}
}

func TestExtractPlaylistMeta_VideoCountCapped(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 80; i++ {
		fmt.Fprintf(&b, `{"videoId":"capvideo%03d"}`, i)
	}

	meta := ExtractPlaylistMeta(b.String(), 50)
	if meta.VideoCount != 50 {
		t.Errorf("expected count capped at 50, got %d", meta.VideoCount)
	}
}

func TestExtractPlaylistMeta_RendererFallbackCount(t *testing.T) {
	page := strings.Repeat(`{"playlistItemRenderer":{}}`, 7)

	meta := ExtractPlaylistMeta(page, 50)
	if meta.VideoCount != 7 {
		t.Errorf("expected renderer-based count 7, got %d", meta.VideoCount)
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Hello World", "Hello World"},
		{"html entities", "Rock &amp; Roll", "Rock & Roll"},
		{"unicode escapes", "T\\u00fcrk\\u00e7e Video", "Türkçe Video"},
		{"surrogate pair", "Fire \\ud83d\\udd25 Mix", "Fire 🔥 Mix"},
		{"whitespace runs", "  too   many\tspaces \n here ", "too many spaces here"},
		{"empty becomes sentinel", "", UnknownTitle},
		{"whitespace only becomes sentinel", "   \t\n ", UnknownTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanTitle(tt.input); got != tt.want {
				t.Errorf("CleanTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanTitle_Idempotent(t *testing.T) {
	inputs := []string{
		"Plain Title",
		"Rock &amp; Roll",
		`Türkçe Şarkı`,
		"  spaced    out  ",
		"",
	}

	for _, input := range inputs {
		once := CleanTitle(input)
		twice := CleanTitle(once)
		if once != twice {
			t.Errorf("CleanTitle not idempotent for %q: %q != %q", input, once, twice)
		}
		if once == "" {
			t.Errorf("CleanTitle(%q) produced empty output", input)
		}
	}
}

func TestExtractJSONBlock(t *testing.T) {
	t.Run("stops at matching brace", func(t *testing.T) {
		page := `ytInitialPlayerResponse = {"a":{"b":1},"c":"}"} ;trailing={"d":2}`
		block, ok := extractJSONBlock(page, playerResponseMarker)
		if !ok {
			t.Fatal("expected a block")
		}
		if block != `{"a":{"b":1},"c":"}"}` {
			t.Errorf("unexpected block: %q", block)
		}
	})

	t.Run("escaped quotes inside strings", func(t *testing.T) {
		page := `ytInitialPlayerResponse={"title":"say \"hi\" {now}"}`
		block, ok := extractJSONBlock(page, playerResponseMarker)
		if !ok {
			t.Fatal("expected a block")
		}
		if block != `{"title":"say \"hi\" {now}"}` {
			t.Errorf("unexpected block: %q", block)
		}
	})

	t.Run("marker absent", func(t *testing.T) {
		if _, ok := extractJSONBlock(`<html></html>`, playerResponseMarker); ok {
			t.Error("expected no block")
		}
	})

	t.Run("unbalanced braces", func(t *testing.T) {
		if _, ok := extractJSONBlock(`ytInitialPlayerResponse={"a":{"b":1}`, playerResponseMarker); ok {
			t.Error("expected no block for truncated JSON")
		}
	})
}
