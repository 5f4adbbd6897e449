package model

import (
	"testing"
)

func testEntries(n int) []PlaylistEntry {
	entries := make([]PlaylistEntry, n)
	for i := range entries {
		entries[i] = PlaylistEntry{
			Index:   i + 1,
			VideoID: "video-id-" + string(rune('a'+i)),
			Title:   "Video",
			URL:     "https://www.youtube.com/watch?v=x",
		}
	}
	return entries
}

func TestBulkSession_Lifecycle(t *testing.T) {
	session := NewBulkSession("bulk-1", testEntries(3), "/tmp/playlist")

	if !session.Active() {
		t.Fatal("new session should be active")
	}
	if session.CurrentIndex() != 0 {
		t.Errorf("expected index 0, got %d", session.CurrentIndex())
	}

	session.SetItemStatus(0, ItemStatusCompleted)
	session.Advance()
	session.SetItemStatus(1, ItemStatusFailed)
	session.Advance()
	session.SetItemStatus(2, ItemStatusCompleted)
	session.Advance()

	summary := session.Summary()
	if summary.Completed != 2 {
		t.Errorf("expected 2 completed, got %d", summary.Completed)
	}
	if summary.Failed != 1 {
		t.Errorf("expected 1 failed, got %d", summary.Failed)
	}
	if summary.Cancelled {
		t.Error("session that ran to the end should not report cancelled")
	}
}

func TestBulkSession_Cancel(t *testing.T) {
	session := NewBulkSession("bulk-2", testEntries(5), "/tmp/playlist")

	session.SetItemStatus(0, ItemStatusCompleted)
	session.Advance()
	session.Cancel()

	if session.Active() {
		t.Error("cancelled session should not be active")
	}

	summary := session.Summary()
	if !summary.Cancelled {
		t.Error("summary should report cancellation")
	}
	if summary.Completed != 1 {
		t.Errorf("expected 1 completed, got %d", summary.Completed)
	}
}

func TestBulkSession_ItemStatusDefaultsToPending(t *testing.T) {
	session := NewBulkSession("bulk-3", testEntries(2), "/tmp/playlist")

	if status := session.ItemStatus(1); status != ItemStatusPending {
		t.Errorf("expected pending, got %s", status)
	}
}
