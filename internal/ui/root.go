package ui

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/streamscribe/streamscribe/internal/config"
	"github.com/streamscribe/streamscribe/internal/download"
	"github.com/streamscribe/streamscribe/internal/engine"
	"github.com/streamscribe/streamscribe/internal/model"
	"github.com/streamscribe/streamscribe/internal/platform"
	"github.com/streamscribe/streamscribe/internal/resolve"
	"github.com/streamscribe/streamscribe/internal/transcribe"
)

// Thumbnail display constants
const (
	ThumbnailWidth   = 240
	ThumbnailHeight  = 135
	ThumbnailTimeout = 3 * time.Second
)

// RootUI represents the main UI structure
type RootUI struct {
	window fyne.Window

	urlEntry    *widget.Entry
	analyzeBtn  *widget.Button
	downloadBtn *widget.Button
	bulkBtn     *widget.Button
	cancelBtn   *widget.Button

	titleLabel  *widget.Label
	detailLabel *widget.Label
	thumbnail   *canvas.Image

	qualitySelect *widget.Select
	audioOnly     *widget.Check
	subtitles     *widget.Check
	autoSubs      *widget.Check

	progressBar *widget.ProgressBar
	statusLabel *widget.Label

	entryList *widget.List

	resolver     *resolve.Resolver
	orchestrator *download.Orchestrator
	sequencer    *download.Sequencer
	expander     *platform.PlaylistExpander
	transcriber  transcribe.Transcriber
	settings     *config.Settings
	localization *Localization

	currentInfo    *model.VideoInfo
	currentURL     string
	entries        []model.PlaylistEntry
	currentSession *model.BulkSession
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, resolver *resolve.Resolver, eng engine.Engine, transcriber transcribe.Transcriber) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		log.Printf("failed to create downloads directory %s: %v", downloadsDir, err)
	}

	ui := &RootUI{
		window:       window,
		resolver:     resolver,
		expander:     platform.NewPlaylistExpander(config.MaxPlaylistVideos),
		transcriber:  transcriber,
		settings:     settings,
		localization: localization,
	}

	ui.orchestrator = download.NewOrchestrator(eng, download.Callbacks{
		OnStatus:   ui.onJobStatus,
		OnProgress: ui.onJobProgress,
		OnError:    ui.onJobError,
	})
	ui.sequencer = download.NewSequencer(ui.orchestrator, download.BulkCallbacks{
		OnItemStatus:   ui.onBulkItemStatus,
		OnItemProgress: ui.onBulkItemProgress,
		OnFinished:     ui.onBulkFinished,
	})

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.urlEntry.Validator = ui.validateURL
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onAnalyzeClick()
	}

	ui.analyzeBtn = widget.NewButton(ui.localization.GetText(KeyAnalyze), ui.onAnalyzeClick)

	ui.titleLabel = widget.NewLabel("")
	ui.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	ui.titleLabel.Wrapping = fyne.TextWrapWord
	ui.detailLabel = widget.NewLabel("")

	ui.thumbnail = &canvas.Image{FillMode: canvas.ImageFillContain}
	ui.thumbnail.SetMinSize(fyne.NewSize(ThumbnailWidth, ThumbnailHeight))

	ui.qualitySelect = widget.NewSelect(config.QualityOptions(), func(quality string) {
		ui.settings.SetQuality(quality)
	})
	ui.qualitySelect.SetSelected(ui.settings.GetQuality())

	ui.audioOnly = widget.NewCheck(ui.localization.GetText(KeyAudioOnly), func(checked bool) {
		ui.settings.SetAudioOnly(checked)
	})
	ui.audioOnly.SetChecked(ui.settings.GetAudioOnly())

	ui.subtitles = widget.NewCheck(ui.localization.GetText(KeySubtitles), func(checked bool) {
		ui.settings.SetIncludeSubtitles(checked)
	})
	ui.subtitles.SetChecked(ui.settings.GetIncludeSubtitles())

	ui.autoSubs = widget.NewCheck(ui.localization.GetText(KeyAutoSubtitles), func(checked bool) {
		ui.settings.SetAutoSubtitles(checked)
	})
	ui.autoSubs.SetChecked(ui.settings.GetAutoSubtitles())

	ui.downloadBtn = widget.NewButton(ui.localization.GetText(KeyDownload), ui.onDownloadClick)
	ui.downloadBtn.Disable()
	ui.bulkBtn = widget.NewButton(ui.localization.GetText(KeyDownloadPlaylist), ui.onBulkClick)
	ui.bulkBtn.Disable()
	ui.cancelBtn = widget.NewButton(ui.localization.GetText(KeyCancel), ui.onCancelClick)
	ui.cancelBtn.Disable()

	ui.progressBar = widget.NewProgressBar()
	ui.statusLabel = widget.NewLabel("")

	ui.entryList = widget.NewList(
		func() int { return len(ui.entries) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < len(ui.entries) {
				entry := ui.entries[id]
				obj.(*widget.Label).SetText(fmt.Sprintf("%d. %s", entry.Index, entry.Title))
			}
		},
	)

	ui.createMenu()

	urlRow := container.NewBorder(nil, nil, nil, ui.analyzeBtn, ui.urlEntry)
	metaPanel := container.NewBorder(nil, nil, ui.thumbnail, nil,
		container.NewVBox(ui.titleLabel, ui.detailLabel))
	optionsRow := container.NewHBox(
		widget.NewLabel(ui.localization.GetText(KeyQuality)), ui.qualitySelect,
		ui.audioOnly, ui.subtitles, ui.autoSubs,
	)
	actionRow := container.NewHBox(ui.downloadBtn, ui.bulkBtn, ui.cancelBtn)

	top := container.NewVBox(urlRow, metaPanel, optionsRow, actionRow, ui.progressBar, ui.statusLabel)
	ui.window.SetContent(container.NewBorder(top, nil, nil, nil, ui.entryList))
}

// createMenu builds the application menu with the transcription action.
func (ui *RootUI) createMenu() {
	transcribeItem := fyne.NewMenuItem("Transcribe File...", ui.onTranscribeClick)
	openItem := fyne.NewMenuItem(ui.localization.GetText(KeyOpenFolder), func() {
		if err := platform.OpenDirectory(ui.settings.GetDownloadDirectory()); err != nil {
			log.Printf("failed to open downloads directory: %v", err)
		}
	})

	fileMenu := fyne.NewMenu("File", openItem, transcribeItem)
	ui.window.SetMainMenu(fyne.NewMainMenu(fileMenu))
}

// validateURL checks the URL field content without hitting the network.
func (ui *RootUI) validateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("%s", ui.localization.GetText(KeyPleaseEnterURL))
	}
	if platform.ExtractVideoID(raw) == "" && platform.ExtractPlaylistID(raw) == "" {
		return fmt.Errorf("%s", ui.localization.GetText(KeyInvalidURL))
	}
	return nil
}

func (ui *RootUI) onAnalyzeClick() {
	rawURL := strings.TrimSpace(ui.urlEntry.Text)
	if err := ui.validateURL(rawURL); err != nil {
		ui.statusLabel.SetText(err.Error())
		return
	}

	ui.statusLabel.SetText(ui.localization.GetText(KeyAnalyzing))
	ui.downloadBtn.Disable()
	ui.bulkBtn.Disable()

	go func() {
		info, rerr := ui.resolver.Resolve(context.Background(), rawURL)
		if rerr != nil {
			log.Printf("ui: resolve failed: %v", rerr)
			fyne.Do(func() {
				ui.statusLabel.SetText(ui.localization.ResolveErrorText(rerr.Kind))
			})
			return
		}

		fyne.Do(func() {
			ui.showInfo(rawURL, info)
		})

		ui.loadThumbnail(info.ThumbnailURL)

		if info.IsPlaylist() {
			ui.loadPlaylistEntries(info.Playlist.PlaylistID)
		}
	}()
}

// showInfo fills the metadata panel for a resolved record.
func (ui *RootUI) showInfo(rawURL string, info *model.VideoInfo) {
	ui.currentURL = rawURL
	ui.currentInfo = info
	ui.entries = nil
	ui.entryList.Refresh()

	ui.titleLabel.SetText(info.Title)
	if info.IsPlaylist() {
		ui.detailLabel.SetText(fmt.Sprintf("%s — %d %s",
			ui.localization.GetText(KeyPlaylist),
			info.Playlist.VideoCount,
			ui.localization.GetText(KeyVideos)))
		ui.bulkBtn.Enable()
	} else {
		ui.detailLabel.SetText(ui.localization.GetText(KeyVideo))
		ui.downloadBtn.Enable()
	}
	ui.statusLabel.SetText("")
	ui.progressBar.SetValue(0)
}

// loadThumbnail fetches the preview image in the background.
func (ui *RootUI) loadThumbnail(thumbnailURL string) {
	if thumbnailURL == "" {
		return
	}

	client := &http.Client{Timeout: ThumbnailTimeout}
	resp, err := client.Get(thumbnailURL)
	if err != nil {
		log.Printf("ui: thumbnail fetch failed: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return
	}

	fyne.Do(func() {
		ui.thumbnail.Resource = fyne.NewStaticResource("thumbnail", data)
		ui.thumbnail.Refresh()
	})
}

// loadPlaylistEntries expands the playlist listing in the background.
func (ui *RootUI) loadPlaylistEntries(playlistID string) {
	entries, err := ui.expander.Expand(context.Background(), playlistID)
	if err != nil {
		log.Printf("ui: playlist expansion failed: %v", err)
		return
	}

	fyne.Do(func() {
		ui.entries = entries
		ui.entryList.Refresh()
	})
}

// jobOptions builds the download options from the current settings.
func (ui *RootUI) jobOptions(noPlaylist bool) model.JobOptions {
	return model.JobOptions{
		AudioOnly:        ui.settings.GetAudioOnly(),
		MaxHeight:        config.QualityValue(ui.settings.GetQuality()),
		PreferMP4:        ui.settings.GetPreferMP4(),
		NoPlaylist:       noPlaylist,
		IncludeSubtitles: ui.settings.GetIncludeSubtitles(),
		SubtitleLangs:    ui.settings.GetSubtitleLangs(),
		AutoSubtitles:    ui.settings.GetAutoSubtitles(),
	}
}

func (ui *RootUI) onDownloadClick() {
	if ui.currentInfo == nil || ui.currentInfo.IsPlaylist() {
		return
	}

	_, ok := ui.orchestrator.Start(ui.currentURL, ui.jobOptions(true), ui.settings.GetDownloadDirectory())
	if !ok {
		ui.statusLabel.SetText(ui.localization.GetText(KeyDownloadBusy))
		return
	}

	ui.statusLabel.SetText(ui.localization.GetText(KeyDownloadStarted))
	ui.downloadBtn.Disable()
	ui.cancelBtn.Enable()
}

func (ui *RootUI) onBulkClick() {
	if ui.currentInfo == nil || !ui.currentInfo.IsPlaylist() || len(ui.entries) == 0 {
		return
	}

	session, err := ui.sequencer.Start(
		ui.currentInfo.Title,
		ui.entries,
		ui.settings.GetDownloadDirectory(),
		ui.jobOptions(true),
	)
	if err != nil {
		if err == download.ErrBusy {
			ui.statusLabel.SetText(ui.localization.GetText(KeyDownloadBusy))
		} else {
			ui.statusLabel.SetText(err.Error())
		}
		return
	}

	ui.currentSession = session
	ui.statusLabel.SetText(ui.localization.GetText(KeyDownloadStarted))
	ui.bulkBtn.Disable()
	ui.cancelBtn.Enable()
}

func (ui *RootUI) onCancelClick() {
	if ui.currentSession != nil {
		ui.currentSession.Cancel()
		return
	}
	ui.orchestrator.Cancel()
}

func (ui *RootUI) onTranscribeClick() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		langs := model.JobOptions{SubtitleLangs: ui.settings.GetSubtitleLangs()}.SubtitleLangList()
		language := ""
		if len(langs) > 0 {
			language = langs[0]
		}

		task, startErr := ui.transcriber.StartTranscription(path, language)
		if startErr != nil {
			ui.statusLabel.SetText(startErr.Error())
			return
		}
		log.Printf("ui: transcription %s started for %s", task.ID, path)
	}, ui.window)
	fileDialog.Show()
}

// onJobStatus handles job state transitions. Called off the UI thread.
func (ui *RootUI) onJobStatus(job *model.DownloadJob) {
	state := job.State
	fyne.Do(func() {
		switch state {
		case model.JobStateSucceeded:
			ui.statusLabel.SetText(ui.localization.GetText(KeyDownloadCompleted))
			ui.progressBar.SetValue(1)
			ui.downloadBtn.Enable()
			ui.cancelBtn.Disable()
		case model.JobStateFailed:
			ui.downloadBtn.Enable()
			ui.cancelBtn.Disable()
		}
	})
}

// onJobProgress updates the progress bar. Called off the UI thread.
func (ui *RootUI) onJobProgress(job *model.DownloadJob) {
	percent := job.Percent
	speed := job.Speed
	eta := job.GetETAString()
	fyne.Do(func() {
		ui.progressBar.SetValue(percent / 100)
		ui.statusLabel.SetText(fmt.Sprintf("%s %.1f%% (%s, ETA %s)",
			ui.localization.GetText(KeyDownloading), percent, speed, eta))
	})
}

// onJobError surfaces a classified failure. Called off the UI thread.
func (ui *RootUI) onJobError(job *model.DownloadJob, derr *model.DownloadError) {
	message := ui.localization.DownloadErrorText(derr)
	fyne.Do(func() {
		ui.statusLabel.SetText(message)
	})
}

func (ui *RootUI) onBulkItemStatus(session *model.BulkSession, index int, status model.ItemStatus) {
	if status != model.ItemStatusDownloading || index >= len(session.Entries) {
		return
	}
	title := session.Entries[index].Title
	total := len(session.Entries)
	fyne.Do(func() {
		ui.statusLabel.SetText(fmt.Sprintf("%s %d/%d: %s",
			ui.localization.GetText(KeyDownloading), index+1, total, title))
	})
}

func (ui *RootUI) onBulkItemProgress(session *model.BulkSession, index int, percent float64) {
	total := len(session.Entries)
	if total == 0 {
		return
	}
	overall := (float64(index) + percent/100) / float64(total)
	fyne.Do(func() {
		ui.progressBar.SetValue(overall)
	})
}

func (ui *RootUI) onBulkFinished(session *model.BulkSession, summary model.BulkSummary) {
	key := KeyBulkSummary
	if summary.Cancelled {
		key = KeyBulkCancelled
	}
	message := fmt.Sprintf(ui.localization.GetText(key), summary.Completed, summary.Failed)

	fyne.Do(func() {
		ui.currentSession = nil
		ui.statusLabel.SetText(message)
		ui.progressBar.SetValue(1)
		ui.bulkBtn.Enable()
		ui.cancelBtn.Disable()
	})
}
