package download

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/streamscribe/streamscribe/internal/engine"
	"github.com/streamscribe/streamscribe/internal/model"
	"github.com/streamscribe/streamscribe/internal/platform"
)

// ErrBusy is returned when a bulk session cannot claim the download slot.
var ErrBusy = errors.New("a download is already running")

// BulkCallbacks deliver bulk session events. All fields are optional.
type BulkCallbacks struct {
	OnItemStatus   func(session *model.BulkSession, index int, status model.ItemStatus)
	OnItemProgress func(session *model.BulkSession, index int, percent float64)
	OnFinished     func(session *model.BulkSession, summary model.BulkSummary)
}

// Sequencer downloads playlist entries one after another into a shared
// session directory. It claims the orchestrator's single slot for the whole
// session, so bulk and single downloads exclude each other.
type Sequencer struct {
	orchestrator *Orchestrator
	callbacks    BulkCallbacks
}

// NewSequencer creates a sequencer sharing the orchestrator's slot and
// engine.
func NewSequencer(orchestrator *Orchestrator, callbacks BulkCallbacks) *Sequencer {
	return &Sequencer{orchestrator: orchestrator, callbacks: callbacks}
}

// Start claims the slot, creates the session directory and begins the
// sequential run in the background. Item failures are recorded and skipped;
// cancellation is observed between items, never mid-item.
func (s *Sequencer) Start(playlistName string, entries []model.PlaylistEntry, baseDir string, opts model.JobOptions) (*model.BulkSession, error) {
	if len(entries) == 0 {
		return nil, errors.New("empty playlist")
	}
	if !s.orchestrator.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}

	outputDir, err := platform.PlaylistOutputDir(baseDir, playlistName)
	if err != nil {
		s.orchestrator.busy.Store(false)
		return nil, err
	}

	// Items are downloaded one by one; the engine must never expand them
	// back into playlists.
	opts.NoPlaylist = true

	session := model.NewBulkSession(uuid.Must(uuid.NewV7()).String(), entries, outputDir)

	go func() {
		defer s.orchestrator.busy.Store(false)
		s.run(session, opts)
	}()

	return session, nil
}

func (s *Sequencer) run(session *model.BulkSession, opts model.JobOptions) {
	cfg := engine.BuildConfig(opts, session.OutputDirectory)
	log.Printf("bulk: session %s starting, %d items -> %s", session.ID, len(session.Entries), session.OutputDirectory)

	for index, entry := range session.Entries {
		if !session.Active() {
			log.Printf("bulk: session %s cancelled at item %d", session.ID, index+1)
			break
		}

		session.SetItemStatus(index, model.ItemStatusDownloading)
		s.notifyItemStatus(session, index, model.ItemStatusDownloading)

		tracker := &progressTracker{}
		err := s.orchestrator.engine.Download(context.Background(), entry.URL, cfg, func(record engine.ProgressRecord) {
			s.notifyItemProgress(session, index, tracker.Observe(record))
		})

		if err != nil {
			derr := model.ClassifyDownloadError(err.Error())
			log.Printf("bulk: session %s item %d (%s) failed: %s", session.ID, index+1, entry.VideoID, derr)
			session.SetItemStatus(index, model.ItemStatusFailed)
			s.notifyItemStatus(session, index, model.ItemStatusFailed)
		} else {
			session.SetItemStatus(index, model.ItemStatusCompleted)
			s.notifyItemStatus(session, index, model.ItemStatusCompleted)
		}

		session.Advance()
	}

	summary := session.Summary()
	log.Printf("bulk: session %s done: %d completed, %d failed, cancelled=%v",
		session.ID, summary.Completed, summary.Failed, summary.Cancelled)
	if s.callbacks.OnFinished != nil {
		s.callbacks.OnFinished(session, summary)
	}
}

func (s *Sequencer) notifyItemStatus(session *model.BulkSession, index int, status model.ItemStatus) {
	if s.callbacks.OnItemStatus != nil {
		s.callbacks.OnItemStatus(session, index, status)
	}
}

func (s *Sequencer) notifyItemProgress(session *model.BulkSession, index int, percent float64) {
	if s.callbacks.OnItemProgress != nil {
		s.callbacks.OnItemProgress(session, index, percent)
	}
}
