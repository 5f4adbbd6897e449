package ui

import (
	"github.com/streamscribe/streamscribe/internal/model"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyAnalyze           = "analyze"
	KeyDownload          = "download"
	KeyDownloadPlaylist  = "download_playlist"
	KeyCancel            = "cancel"
	KeyEnterURL          = "enter_url"
	KeyPleaseEnterURL    = "please_enter_url"
	KeyInvalidURL        = "invalid_url"
	KeyAnalyzing         = "analyzing"
	KeyDownloading       = "downloading"
	KeyDownloadStarted   = "download_started"
	KeyDownloadCompleted = "download_completed"
	KeyDownloadBusy      = "download_busy"
	KeyQuality           = "quality"
	KeyAudioOnly         = "audio_only"
	KeySubtitles         = "subtitles"
	KeyAutoSubtitles     = "auto_subtitles"
	KeyPlaylist          = "playlist"
	KeyVideo             = "video"
	KeyVideos            = "videos"
	KeyBulkSummary       = "bulk_summary"
	KeyBulkCancelled     = "bulk_cancelled"
	KeyOpenFolder        = "open_folder"

	// Resolution error keys
	KeyErrInvalidURL       = "err_invalid_url"
	KeyErrPageUnreachable  = "err_page_unreachable"
	KeyErrExtractionFailed = "err_extraction_failed"
	KeyErrInfoUnavailable  = "err_info_unavailable"

	// Download error keys
	KeyErrPrivateVideo     = "err_private_video"
	KeyErrVideoUnavailable = "err_video_unavailable"
	KeyErrLoginRequired    = "err_login_required"
	KeyErrCopyrightBlocked = "err_copyright_blocked"
	KeyErrNetwork          = "err_network"
	KeyErrTimeout          = "err_timeout"
	KeyErrUnknown          = "err_unknown"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"tr": "Türkçe",
	}
}

// ResolveErrorText returns the localized message for a resolution failure.
func (l *Localization) ResolveErrorText(kind model.ResolveErrorKind) string {
	switch kind {
	case model.ResolveInvalidURL:
		return l.GetText(KeyErrInvalidURL)
	case model.ResolvePageUnreachable:
		return l.GetText(KeyErrPageUnreachable)
	case model.ResolveExtractionFailed:
		return l.GetText(KeyErrExtractionFailed)
	case model.ResolveInfoUnavailable:
		return l.GetText(KeyErrInfoUnavailable)
	default:
		return l.GetText(KeyErrUnknown)
	}
}

// DownloadErrorText returns the localized message for a download failure.
// Unknown failures append the truncated raw engine text.
func (l *Localization) DownloadErrorText(derr *model.DownloadError) string {
	switch derr.Category {
	case model.DownloadErrPrivateVideo:
		return l.GetText(KeyErrPrivateVideo)
	case model.DownloadErrVideoUnavailable:
		return l.GetText(KeyErrVideoUnavailable)
	case model.DownloadErrLoginRequired:
		return l.GetText(KeyErrLoginRequired)
	case model.DownloadErrCopyrightBlocked:
		return l.GetText(KeyErrCopyrightBlocked)
	case model.DownloadErrNetwork:
		return l.GetText(KeyErrNetwork)
	case model.DownloadErrTimeout:
		return l.GetText(KeyErrTimeout)
	default:
		text := l.GetText(KeyErrUnknown)
		if derr.Raw != "" {
			text += ": " + derr.Raw
		}
		return text
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "StreamScribe",
		KeyAnalyze:           "Analyze",
		KeyDownload:          "Download",
		KeyDownloadPlaylist:  "Download Playlist",
		KeyCancel:            "Cancel",
		KeyEnterURL:          "Enter YouTube URL (https://youtube.com/watch?v=...)",
		KeyPleaseEnterURL:    "Please enter a URL",
		KeyInvalidURL:        "Invalid YouTube URL",
		KeyAnalyzing:         "Analyzing...",
		KeyDownloading:       "Downloading",
		KeyDownloadStarted:   "Download started",
		KeyDownloadCompleted: "Download completed",
		KeyDownloadBusy:      "A download is already running",
		KeyQuality:           "Quality",
		KeyAudioOnly:         "Audio only (MP3)",
		KeySubtitles:         "Subtitles",
		KeyAutoSubtitles:     "Auto-generated subtitles",
		KeyPlaylist:          "Playlist",
		KeyVideo:             "Video",
		KeyVideos:            "videos",
		KeyBulkSummary:       "Playlist done: %d completed, %d failed",
		KeyBulkCancelled:     "Playlist cancelled: %d completed, %d failed",
		KeyOpenFolder:        "Open Folder",

		KeyErrInvalidURL:       "The URL is not a valid video or playlist link",
		KeyErrPageUnreachable:  "Could not reach the video page",
		KeyErrExtractionFailed: "Could not extract video information",
		KeyErrInfoUnavailable:  "Video information is unavailable",

		KeyErrPrivateVideo:     "This video is private",
		KeyErrVideoUnavailable: "This video is unavailable",
		KeyErrLoginRequired:    "This video requires signing in",
		KeyErrCopyrightBlocked: "This video is blocked for copyright reasons",
		KeyErrNetwork:          "Network error, check your connection",
		KeyErrTimeout:          "The download timed out",
		KeyErrUnknown:          "Download failed",
	}

	l.texts["tr"] = map[string]string{
		KeyAppTitle:          "StreamScribe",
		KeyAnalyze:           "Analiz Et",
		KeyDownload:          "İndir",
		KeyDownloadPlaylist:  "Oynatma Listesini İndir",
		KeyCancel:            "İptal",
		KeyEnterURL:          "YouTube adresini girin (https://youtube.com/watch?v=...)",
		KeyPleaseEnterURL:    "Lütfen bir adres girin",
		KeyInvalidURL:        "Geçersiz YouTube adresi",
		KeyAnalyzing:         "Analiz ediliyor...",
		KeyDownloading:       "İndiriliyor",
		KeyDownloadStarted:   "İndirme başladı",
		KeyDownloadCompleted: "İndirme tamamlandı",
		KeyDownloadBusy:      "Zaten bir indirme çalışıyor",
		KeyQuality:           "Kalite",
		KeyAudioOnly:         "Sadece ses (MP3)",
		KeySubtitles:         "Altyazılar",
		KeyAutoSubtitles:     "Otomatik altyazılar",
		KeyPlaylist:          "Oynatma Listesi",
		KeyVideo:             "Video",
		KeyVideos:            "video",
		KeyBulkSummary:       "Liste bitti: %d tamamlandı, %d başarısız",
		KeyBulkCancelled:     "Liste iptal edildi: %d tamamlandı, %d başarısız",
		KeyOpenFolder:        "Klasörü Aç",

		KeyErrInvalidURL:       "Adres geçerli bir video veya liste bağlantısı değil",
		KeyErrPageUnreachable:  "Video sayfasına ulaşılamadı",
		KeyErrExtractionFailed: "Video bilgileri alınamadı",
		KeyErrInfoUnavailable:  "Video bilgisi mevcut değil",

		KeyErrPrivateVideo:     "Bu video gizli",
		KeyErrVideoUnavailable: "Bu video kullanılamıyor",
		KeyErrLoginRequired:    "Bu video oturum açmayı gerektiriyor",
		KeyErrCopyrightBlocked: "Bu video telif hakkı nedeniyle engellenmiş",
		KeyErrNetwork:          "Ağ hatası, bağlantınızı kontrol edin",
		KeyErrTimeout:          "İndirme zaman aşımına uğradı",
		KeyErrUnknown:          "İndirme başarısız",
	}
}
