package platform

import (
	"encoding/json"
	"html"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// UnknownTitle replaces titles that come out empty after cleaning.
const UnknownTitle = "Unknown Video"

// Embedded structured-data block names
const (
	playerResponseMarker = "ytInitialPlayerResponse"
	initialDataMarker    = "ytInitialData"
)

// Site-name suffixes stripped from scraped titles
var titleSuffixes = []string{" - YouTube", " | YouTube"}

var (
	titleRegexPatterns = []*regexp.Regexp{
		regexp.MustCompile(`"title":"([^"]+)"`),
		regexp.MustCompile(`"title":\{"runs":\[\{"text":"([^"]+)"`),
		regexp.MustCompile(`<title>([^<]+)</title>`),
	}

	playlistTitleRegexPatterns = []*regexp.Regexp{
		regexp.MustCompile(`"playlistTitle":"([^"]+)"`),
		regexp.MustCompile(`<title>([^<]+)</title>`),
	}

	videoIDOccurrence    = regexp.MustCompile(`"videoId":"([a-zA-Z0-9_-]{11})"`)
	playlistItemRenderer = regexp.MustCompile(`"playlistItemRenderer"`)
	unicodeEscape        = regexp.MustCompile(`\\u[0-9a-fA-F]{4}`)
)

// VideoPageMeta is the best-effort scrape result for a watch page. Absent
// fields are empty, never an error.
type VideoPageMeta struct {
	Title string
}

// PlaylistPageMeta is the best-effort scrape result for a playlist page.
type PlaylistPageMeta struct {
	Title        string
	VideoCount   int
	FirstVideoID string
}

// ExtractVideoMeta scrapes a watch page with ordered pattern attempts:
// structured JSON blocks first, regex fallbacks last. First success wins.
func ExtractVideoMeta(pageHTML string) VideoPageMeta {
	if title := titleFromPlayerResponse(pageHTML); title != "" {
		return VideoPageMeta{Title: title}
	}
	if title := titleFromInitialData(pageHTML); title != "" {
		return VideoPageMeta{Title: title}
	}
	return VideoPageMeta{Title: titleFromRegex(pageHTML)}
}

// ExtractPlaylistMeta scrapes a playlist page for title, video count and
// the first video id. The count is the number of distinct video ids on the
// page, capped at maxVideos.
func ExtractPlaylistMeta(pageHTML string, maxVideos int) PlaylistPageMeta {
	meta := PlaylistPageMeta{
		Title:      playlistTitleFromInitialData(pageHTML),
		VideoCount: countPlaylistVideos(pageHTML, maxVideos),
	}

	if meta.Title == "" {
		meta.Title = playlistTitleFromRegex(pageHTML)
	}

	if ids := videoIDOccurrence.FindStringSubmatch(pageHTML); ids != nil {
		meta.FirstVideoID = ids[1]
	}

	return meta
}

// playerResponse mirrors the videoDetails slice of ytInitialPlayerResponse.
type playerResponse struct {
	VideoDetails struct {
		Title string `json:"title"`
	} `json:"videoDetails"`
}

func titleFromPlayerResponse(pageHTML string) string {
	block, ok := extractJSONBlock(pageHTML, playerResponseMarker)
	if !ok {
		return ""
	}

	var response playerResponse
	if err := json.Unmarshal([]byte(block), &response); err != nil {
		return ""
	}
	return response.VideoDetails.Title
}

// initialData mirrors the fixed watch-page path
// contents.twoColumnWatchNextResults.results.results.contents[*]
// .videoPrimaryInfoRenderer.title.runs[0].text.
type initialData struct {
	Contents struct {
		TwoColumnWatchNextResults struct {
			Results struct {
				Results struct {
					Contents []struct {
						VideoPrimaryInfoRenderer *struct {
							Title struct {
								Runs []struct {
									Text string `json:"text"`
								} `json:"runs"`
							} `json:"title"`
						} `json:"videoPrimaryInfoRenderer"`
					} `json:"contents"`
				} `json:"results"`
			} `json:"results"`
		} `json:"twoColumnWatchNextResults"`
	} `json:"contents"`
}

func titleFromInitialData(pageHTML string) string {
	block, ok := extractJSONBlock(pageHTML, initialDataMarker)
	if !ok {
		return ""
	}

	var data initialData
	if err := json.Unmarshal([]byte(block), &data); err != nil {
		return ""
	}

	for _, content := range data.Contents.TwoColumnWatchNextResults.Results.Results.Contents {
		renderer := content.VideoPrimaryInfoRenderer
		if renderer == nil {
			continue
		}
		if runs := renderer.Title.Runs; len(runs) > 0 && runs[0].Text != "" {
			return runs[0].Text
		}
	}
	return ""
}

func titleFromRegex(pageHTML string) string {
	for _, pattern := range titleRegexPatterns {
		match := pattern.FindStringSubmatch(pageHTML)
		if match == nil {
			continue
		}
		title := stripSiteSuffix(match[1])
		if title != "" && title != "YouTube" {
			return title
		}
	}
	return ""
}

// playlistInitialData mirrors the playlist-page title paths:
// metadata.playlistMetadataRenderer.title first, then
// header.playlistHeaderRenderer.title.simpleText.
type playlistInitialData struct {
	Metadata struct {
		PlaylistMetadataRenderer struct {
			Title string `json:"title"`
		} `json:"playlistMetadataRenderer"`
	} `json:"metadata"`
	Header struct {
		PlaylistHeaderRenderer struct {
			Title struct {
				SimpleText string `json:"simpleText"`
			} `json:"title"`
		} `json:"playlistHeaderRenderer"`
	} `json:"header"`
}

func playlistTitleFromInitialData(pageHTML string) string {
	block, ok := extractJSONBlock(pageHTML, initialDataMarker)
	if !ok {
		return ""
	}

	var data playlistInitialData
	if err := json.Unmarshal([]byte(block), &data); err != nil {
		return ""
	}

	if title := data.Metadata.PlaylistMetadataRenderer.Title; title != "" {
		return title
	}
	return data.Header.PlaylistHeaderRenderer.Title.SimpleText
}

func playlistTitleFromRegex(pageHTML string) string {
	for _, pattern := range playlistTitleRegexPatterns {
		match := pattern.FindStringSubmatch(pageHTML)
		if match == nil {
			continue
		}
		title := stripSiteSuffix(match[1])
		if title != "" && !strings.Contains(title, "YouTube") && len(title) > 3 {
			return title
		}
	}
	return ""
}

// countPlaylistVideos counts distinct video-id occurrences, falling back to
// playlistItemRenderer occurrences when the page exposes no ids.
func countPlaylistVideos(pageHTML string, maxVideos int) int {
	matches := videoIDOccurrence.FindAllStringSubmatch(pageHTML, -1)
	seen := make(map[string]struct{}, len(matches))
	for _, match := range matches {
		seen[match[1]] = struct{}{}
	}

	count := len(seen)
	if count == 0 {
		count = len(playlistItemRenderer.FindAllString(pageHTML, -1))
	}

	if count > maxVideos {
		return maxVideos
	}
	return count
}

// extractJSONBlock locates "<marker>=" (with optional whitespace) and
// returns the balanced JSON object that follows. Regex alone cannot stop at
// the matching brace, so the object is scanned with string-aware brace
// counting.
func extractJSONBlock(pageHTML, marker string) (string, bool) {
	idx := strings.Index(pageHTML, marker)
	if idx < 0 {
		return "", false
	}

	rest := pageHTML[idx+len(marker):]
	rest = strings.TrimLeft(rest, " \t")
	if !strings.HasPrefix(rest, "=") {
		return "", false
	}
	rest = strings.TrimLeft(rest[1:], " \t")
	if !strings.HasPrefix(rest, "{") {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(rest); i++ {
		ch := rest[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return rest[:i+1], true
			}
		}
	}
	return "", false
}

func stripSiteSuffix(title string) string {
	for _, suffix := range titleSuffixes {
		title = strings.ReplaceAll(title, suffix, "")
	}
	return strings.TrimSpace(title)
}

// CleanTitle normalizes a scraped title: JSON unicode escapes decoded, HTML
// entities unescaped, Unicode composed (NFC), whitespace runs collapsed.
// Empty results are replaced by the UnknownTitle sentinel. Idempotent.
func CleanTitle(title string) string {
	if strings.Contains(title, `\u`) {
		title = decodeUnicodeEscapes(title)
	}

	title = html.UnescapeString(title)
	title = norm.NFC.String(title)
	title = strings.Join(strings.Fields(title), " ")

	if title == "" {
		return UnknownTitle
	}
	return title
}

// decodeUnicodeEscapes rewrites \uXXXX sequences to their runes, pairing
// UTF-16 surrogates.
func decodeUnicodeEscapes(s string) string {
	var b strings.Builder
	for len(s) > 0 {
		loc := unicodeEscape.FindStringIndex(s)
		if loc == nil {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:loc[0]])

		code, err := strconv.ParseUint(s[loc[0]+2:loc[1]], 16, 32)
		if err != nil {
			b.WriteString(s[loc[0]:loc[1]])
			s = s[loc[1]:]
			continue
		}
		r := rune(code)
		rest := s[loc[1]:]

		// High surrogate: look for the paired low surrogate.
		if r >= 0xD800 && r <= 0xDBFF {
			if next := unicodeEscape.FindStringIndex(rest); next != nil && next[0] == 0 {
				if low, err := strconv.ParseUint(rest[2:next[1]], 16, 32); err == nil {
					lowRune := rune(low)
					if lowRune >= 0xDC00 && lowRune <= 0xDFFF {
						r = 0x10000 + (r-0xD800)<<10 + (lowRune - 0xDC00)
						rest = rest[next[1]:]
					}
				}
			}
		}

		b.WriteRune(r)
		s = rest
	}
	return b.String()
}
