package model

import (
	"testing"
)

func TestDownloadJob_GetETAString(t *testing.T) {
	tests := []struct {
		etaSec   int
		expected string
	}{
		{-1, "—"},
		{0, "—"},
		{30, "00:30"},
		{90, "01:30"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{7323, "02:02:03"},
	}

	for _, test := range tests {
		job := &DownloadJob{ETASec: test.etaSec}
		result := job.GetETAString()
		if result != test.expected {
			t.Errorf("GetETAString() with ETASec=%d = %s, expected %s", test.etaSec, result, test.expected)
		}
	}
}

func TestJobState_IsFinished(t *testing.T) {
	tests := []struct {
		state    JobState
		finished bool
	}{
		{JobStateIdle, false},
		{JobStateRunning, false},
		{JobStateSucceeded, true},
		{JobStateFailed, true},
	}

	for _, test := range tests {
		if got := test.state.IsFinished(); got != test.finished {
			t.Errorf("IsFinished() for %s = %v, expected %v", test.state, got, test.finished)
		}
	}
}

func TestJobOptions_SubtitleLangList(t *testing.T) {
	tests := []struct {
		name     string
		langs    string
		expected []string
	}{
		{"simple list", "tr,en", []string{"tr", "en"}},
		{"spaces trimmed", " tr , en ", []string{"tr", "en"}},
		{"empty segments dropped", "tr,,en,", []string{"tr", "en"}},
		{"empty input", "", nil},
		{"only separators", ",,,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := JobOptions{SubtitleLangs: tt.langs}
			got := opts.SubtitleLangList()

			if len(got) != len(tt.expected) {
				t.Fatalf("expected %d langs, got %d (%v)", len(tt.expected), len(got), got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("lang %d: expected %s, got %s", i, tt.expected[i], got[i])
				}
			}
		})
	}
}
