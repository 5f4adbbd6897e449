package transcribe

import (
	"github.com/streamscribe/streamscribe/internal/model"
)

// Transcriber defines the interface for the subtitle-generation service.
type Transcriber interface {
	SetUpdateCallback(func(*model.TranscriptionTask))
	StartTranscription(inputPath, language string) (*model.TranscriptionTask, error)
	StopTranscription(taskID string) error
	GetTask(taskID string) (*model.TranscriptionTask, bool)
}
