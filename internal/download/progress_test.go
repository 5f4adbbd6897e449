package download

import (
	"testing"

	"github.com/streamscribe/streamscribe/internal/engine"
)

func TestProgressTracker_PercentString(t *testing.T) {
	tracker := &progressTracker{}

	got := tracker.Observe(engine.ProgressRecord{Status: engine.StatusDownloading, PercentStr: "45.2%"})
	if got != 45.2 {
		t.Errorf("percent = %v, want 45.2", got)
	}
}

func TestProgressTracker_ByteRatio(t *testing.T) {
	tracker := &progressTracker{}

	got := tracker.Observe(engine.ProgressRecord{DownloadedBytes: 25, TotalBytes: 100})
	if got != 25 {
		t.Errorf("percent = %v, want 25", got)
	}
}

func TestProgressTracker_EstimateRatio(t *testing.T) {
	tracker := &progressTracker{}

	got := tracker.Observe(engine.ProgressRecord{DownloadedBytes: 30, TotalBytesEst: 200})
	if got != 15 {
		t.Errorf("percent = %v, want 15", got)
	}
}

func TestProgressTracker_MissingSignalsRepeatLastKnown(t *testing.T) {
	tracker := &progressTracker{}

	tracker.Observe(engine.ProgressRecord{PercentStr: "40%"})
	got := tracker.Observe(engine.ProgressRecord{Status: engine.StatusConverting})
	if got != 40 {
		t.Errorf("percent = %v, want last known 40", got)
	}
}

func TestProgressTracker_Monotonic(t *testing.T) {
	tracker := &progressTracker{}

	sequence := []string{"10%", "50%", "30%", "55%", "5%"}
	want := []float64{10, 50, 50, 55, 55}

	for i, pct := range sequence {
		got := tracker.Observe(engine.ProgressRecord{PercentStr: pct})
		if got != want[i] {
			t.Errorf("step %d: percent = %v, want %v", i, got, want[i])
		}
	}
}

func TestProgressTracker_FinishedForces100(t *testing.T) {
	tracker := &progressTracker{}

	tracker.Observe(engine.ProgressRecord{PercentStr: "97.3%"})
	got := tracker.Observe(engine.ProgressRecord{Status: engine.StatusFinished})
	if got != 100 {
		t.Errorf("percent = %v, want 100", got)
	}
}

func TestProgressTracker_ClampsAbove100(t *testing.T) {
	tracker := &progressTracker{}

	got := tracker.Observe(engine.ProgressRecord{PercentStr: "104%"})
	if got != 100 {
		t.Errorf("percent = %v, want 100", got)
	}
}

func TestPercentFromString(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"45.2%", 45.2, true},
		{" 100% ", 100, true},
		{"0%", 0, true},
		{"", 0, false},
		{"Unknown", 0, false},
		{"-5%", 0, false},
	}

	for _, tt := range tests {
		got, ok := percentFromString(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("percentFromString(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
