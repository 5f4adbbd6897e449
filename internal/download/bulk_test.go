package download

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/streamscribe/streamscribe/internal/engine"
	"github.com/streamscribe/streamscribe/internal/model"
)

// scriptedEngine fails the URLs listed in failURLs and succeeds otherwise.
type scriptedEngine struct {
	mu       sync.Mutex
	failURLs map[string]string // url -> raw error text
	urls     []string
	block    chan struct{} // if non-nil, each download waits here
}

func (e *scriptedEngine) ExtractMetadata(ctx context.Context, url string) (*engine.Metadata, error) {
	return nil, errors.New("not implemented")
}

func (e *scriptedEngine) Download(ctx context.Context, url string, cfg *engine.Config, progressFn engine.ProgressFunc) error {
	e.mu.Lock()
	e.urls = append(e.urls, url)
	e.mu.Unlock()

	if e.block != nil {
		<-e.block
	}
	if progressFn != nil {
		progressFn(engine.ProgressRecord{Status: engine.StatusFinished, PercentStr: "100%"})
	}
	if raw, ok := e.failURLs[url]; ok {
		return errors.New(raw)
	}
	return nil
}

func (e *scriptedEngine) downloadedURLs() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.urls...)
}

func makeEntries(n int) []model.PlaylistEntry {
	entries := make([]model.PlaylistEntry, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("bulkvideo%02d", i)
		entries = append(entries, model.PlaylistEntry{
			Index:   i + 1,
			VideoID: id,
			Title:   "Video " + id,
			URL:     "https://www.youtube.com/watch?v=" + id,
		})
	}
	return entries
}

func runSession(t *testing.T, eng *scriptedEngine, entries []model.PlaylistEntry, callbacks BulkCallbacks) (*model.BulkSession, model.BulkSummary) {
	t.Helper()

	done := make(chan model.BulkSummary, 1)
	userFinished := callbacks.OnFinished
	callbacks.OnFinished = func(session *model.BulkSession, summary model.BulkSummary) {
		if userFinished != nil {
			userFinished(session, summary)
		}
		done <- summary
	}

	o := NewOrchestrator(eng, Callbacks{})
	s := NewSequencer(o, callbacks)

	session, err := s.Start("My Mix", entries, t.TempDir(), model.JobOptions{MaxHeight: 1080})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	select {
	case summary := <-done:
		return session, summary
	case <-time.After(2 * time.Second):
		t.Fatal("session did not finish in time")
		return nil, model.BulkSummary{}
	}
}

func TestSequencer_AllSucceed(t *testing.T) {
	eng := &scriptedEngine{}
	session, summary := runSession(t, eng, makeEntries(4), BulkCallbacks{})

	if summary.Completed != 4 || summary.Failed != 0 || summary.Cancelled {
		t.Errorf("summary = %+v", summary)
	}
	if got := eng.downloadedURLs(); len(got) != 4 {
		t.Fatalf("expected 4 downloads, got %d", len(got))
	}
	for i := 0; i < 4; i++ {
		if session.ItemStatus(i) != model.ItemStatusCompleted {
			t.Errorf("item %d status = %q", i, session.ItemStatus(i))
		}
	}
}

func TestSequencer_SequentialOrder(t *testing.T) {
	eng := &scriptedEngine{}
	entries := makeEntries(5)
	runSession(t, eng, entries, BulkCallbacks{})

	urls := eng.downloadedURLs()
	for i, entry := range entries {
		if urls[i] != entry.URL {
			t.Fatalf("download order broken at %d: got %q, want %q", i, urls[i], entry.URL)
		}
	}
}

func TestSequencer_FailureContinues(t *testing.T) {
	entries := makeEntries(5)
	eng := &scriptedEngine{failURLs: map[string]string{
		entries[2].URL: "ERROR: Video unavailable",
	}}

	session, summary := runSession(t, eng, entries, BulkCallbacks{})

	if summary.Completed != 4 {
		t.Errorf("completed = %d, want 4", summary.Completed)
	}
	if summary.Failed != 1 {
		t.Errorf("failed = %d, want 1", summary.Failed)
	}
	if summary.Cancelled {
		t.Error("session must not be marked cancelled")
	}
	if session.ItemStatus(2) != model.ItemStatusFailed {
		t.Errorf("item 2 status = %q, want failed", session.ItemStatus(2))
	}
	if got := eng.downloadedURLs(); len(got) != 5 {
		t.Errorf("expected all 5 items attempted, got %d", len(got))
	}
}

func TestSequencer_CancelAtItemBoundary(t *testing.T) {
	eng := &scriptedEngine{block: make(chan struct{})}

	done := make(chan model.BulkSummary, 1)

	o := NewOrchestrator(eng, Callbacks{})
	s := NewSequencer(o, BulkCallbacks{
		OnFinished: func(_ *model.BulkSession, summary model.BulkSummary) {
			done <- summary
		},
	})

	session, err := s.Start("My Mix", makeEntries(5), t.TempDir(), model.JobOptions{MaxHeight: 1080})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	// First item is in flight; cancel, then let it finish.
	waitFor(t, time.Second, func() bool { return len(eng.downloadedURLs()) == 1 })
	session.Cancel()
	eng.block <- struct{}{}

	select {
	case summary := <-done:
		if !summary.Cancelled {
			t.Error("summary must be marked cancelled")
		}
		if summary.Completed != 1 {
			t.Errorf("completed = %d, want 1 (in-flight item runs to completion)", summary.Completed)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("session did not finish after cancel")
	}

	if got := eng.downloadedURLs(); len(got) != 1 {
		t.Errorf("expected no further items after cancel, got %d", len(got))
	}
}

func TestSequencer_ExcludesSingleDownloads(t *testing.T) {
	eng := &scriptedEngine{block: make(chan struct{})}

	o := NewOrchestrator(eng, Callbacks{})
	s := NewSequencer(o, BulkCallbacks{})

	if _, err := s.Start("My Mix", makeEntries(2), t.TempDir(), model.JobOptions{MaxHeight: 1080}); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	waitFor(t, time.Second, func() bool { return o.Busy() })

	if _, ok := o.Start("https://x/watch?v=dQw4w9WgXcQ", model.JobOptions{}, t.TempDir()); ok {
		t.Error("single download must be rejected during a bulk session")
	}
	if _, err := s.Start("Other", makeEntries(2), t.TempDir(), model.JobOptions{}); !errors.Is(err, ErrBusy) {
		t.Errorf("second session must fail with ErrBusy, got %v", err)
	}

	close(eng.block)
	waitFor(t, 2*time.Second, func() bool { return !o.Busy() })
}

func TestSequencer_SharedSessionDirectory(t *testing.T) {
	eng := &scriptedEngine{}

	base := t.TempDir()
	o := NewOrchestrator(eng, Callbacks{})

	done := make(chan struct{})
	s := NewSequencer(o, BulkCallbacks{
		OnFinished: func(*model.BulkSession, model.BulkSummary) { close(done) },
	})

	session, err := s.Start("Road Trip Mix", makeEntries(2), base, model.JobOptions{MaxHeight: 1080})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	<-done

	if filepath.Dir(session.OutputDirectory) != base {
		t.Errorf("session directory %q not under base %q", session.OutputDirectory, base)
	}
	if !strings.HasPrefix(filepath.Base(session.OutputDirectory), "Road Trip Mix_") {
		t.Errorf("unexpected session directory name: %q", filepath.Base(session.OutputDirectory))
	}
}
