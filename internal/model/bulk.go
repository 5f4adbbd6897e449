package model

import (
	"sync"
	"time"
)

// ItemStatus represents the status of a single entry within a bulk session.
type ItemStatus string

const (
	ItemStatusPending     ItemStatus = "pending"
	ItemStatusDownloading ItemStatus = "downloading"
	ItemStatusCompleted   ItemStatus = "completed"
	ItemStatusFailed      ItemStatus = "failed"
)

// BulkSummary is the terminal report of a bulk session.
type BulkSummary struct {
	Completed int
	Failed    int
	Cancelled bool
}

// BulkSession tracks the sequential download of a playlist. One session owns
// one shared output directory; currentIndex advances by one after each item
// completes or fails. Sessions are discarded after the terminal summary.
type BulkSession struct {
	ID              string
	Entries         []PlaylistEntry
	OutputDirectory string
	CreatedAt       time.Time

	mu           sync.Mutex
	currentIndex int
	active       bool
	statuses     map[int]ItemStatus
}

// NewBulkSession creates an active session over the given entries.
func NewBulkSession(id string, entries []PlaylistEntry, outputDir string) *BulkSession {
	statuses := make(map[int]ItemStatus, len(entries))
	for i := range entries {
		statuses[i] = ItemStatusPending
	}
	return &BulkSession{
		ID:              id,
		Entries:         entries,
		OutputDirectory: outputDir,
		CreatedAt:       time.Now(),
		active:          true,
		statuses:        statuses,
	}
}

// Active reports whether the session may start its next item.
func (s *BulkSession) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Cancel marks the session inactive. An in-flight item download is not
// interrupted; the sequencer observes cancellation at item boundaries.
func (s *BulkSession) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
}

// CurrentIndex returns the zero-based index of the next item to process.
func (s *BulkSession) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentIndex
}

// Advance moves the session to the next item.
func (s *BulkSession) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentIndex++
}

// SetItemStatus records the status of a single entry.
func (s *BulkSession) SetItemStatus(index int, status ItemStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[index] = status
}

// ItemStatus returns the recorded status of a single entry.
func (s *BulkSession) ItemStatus(index int) ItemStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status, ok := s.statuses[index]; ok {
		return status
	}
	return ItemStatusPending
}

// Summary computes the terminal counts. Items never marked remain pending
// and are counted as neither completed nor failed.
func (s *BulkSession) Summary() BulkSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := BulkSummary{Cancelled: !s.active && s.currentIndex < len(s.Entries)}
	for _, status := range s.statuses {
		switch status {
		case ItemStatusCompleted:
			summary.Completed++
		case ItemStatusFailed:
			summary.Failed++
		}
	}
	return summary
}
