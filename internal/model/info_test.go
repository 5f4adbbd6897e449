package model

import (
	"testing"
)

func TestNewSingleInfo(t *testing.T) {
	info := NewSingleInfo("Some Video", "https://img.example/mq.jpg", "dQw4w9WgXcQ", MethodFastScrape)

	if info.IsPlaylist() {
		t.Error("single video record should not report as playlist")
	}
	if info.Single == nil {
		t.Fatal("Single detail should be set")
	}
	if info.Playlist != nil {
		t.Error("Playlist detail must be nil for a single video")
	}
	if info.Single.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("expected video ID dQw4w9WgXcQ, got %s", info.Single.VideoID)
	}
	if info.Method != MethodFastScrape {
		t.Errorf("expected method %s, got %s", MethodFastScrape, info.Method)
	}
}

func TestNewPlaylistInfo(t *testing.T) {
	info := NewPlaylistInfo("Mix", "", "PLabc123", 12, MethodEngineFallback)

	if !info.IsPlaylist() {
		t.Error("playlist record should report as playlist")
	}
	if info.Single != nil {
		t.Error("Single detail must be nil for a playlist")
	}
	if info.Playlist.VideoCount != 12 {
		t.Errorf("expected 12 videos, got %d", info.Playlist.VideoCount)
	}
}

func TestVideoInfo_WithMethod(t *testing.T) {
	info := NewSingleInfo("Title", "", "abcdefghijk", MethodFastScrape)
	tagged := info.WithMethod(MethodCache)

	if tagged == info {
		t.Error("WithMethod should return a copy, not the same record")
	}
	if tagged.Method != MethodCache {
		t.Errorf("expected method %s, got %s", MethodCache, tagged.Method)
	}
	if info.Method != MethodFastScrape {
		t.Error("original record must not be mutated")
	}
	if tagged.Single.VideoID != info.Single.VideoID {
		t.Error("copy should keep the detail fields")
	}
}
