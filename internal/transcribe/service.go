package transcribe

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/streamscribe/streamscribe/internal/model"
)

// External tool constants
const (
	WhisperCommand      = "whisper"
	WhisperModel        = "base"
	WhisperOutputFormat = "srt"

	FFprobeCommand      = "ffprobe"
	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "csv=p=0"

	TaskIDPrefix       = "transcribe-"
	OutputExtensionSRT = ".srt"

	// Timestamp lines in whisper output look like
	// [00:01.000 --> 00:04.500]  some text
	timestampOpen  = "["
	timestampArrow = "-->"
)

// Service generates subtitles for downloaded media through an external
// speech-recognition binary. Progress is derived from the timestamps the
// tool prints against the ffprobe-measured duration.
type Service struct {
	tasks      map[string]*model.TranscriptionTask
	tasksMutex sync.RWMutex
	onUpdate   func(*model.TranscriptionTask) // callback for UI updates
}

// NewService creates a new transcription service
func NewService() Transcriber {
	return &Service{
		tasks: make(map[string]*model.TranscriptionTask),
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.TranscriptionTask)) {
	s.onUpdate = callback
}

// StartTranscription starts generating subtitles for a media file
func (s *Service) StartTranscription(inputPath, language string) (*model.TranscriptionTask, error) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	for _, task := range s.tasks {
		if task.InputPath == inputPath && task.Status.IsActive() {
			return nil, fmt.Errorf("transcription already in progress for file: %s", inputPath)
		}
	}

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file does not exist: %s", inputPath)
	}

	task := &model.TranscriptionTask{
		ID:         generateTaskID(),
		InputPath:  inputPath,
		OutputPath: generateOutputPath(inputPath),
		Language:   language,
		Status:     model.TaskStatusPending,
		Progress:   0.0,
		Percent:    0,
		StartedAt:  time.Now(),
	}

	s.tasks[task.ID] = task

	go s.startTranscription(task)

	return task, nil
}

// StopTranscription stops a running transcription task
func (s *Service) StopTranscription(taskID string) error {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	task, exists := s.tasks[taskID]
	if !exists {
		return fmt.Errorf("transcription task not found: %s", taskID)
	}

	if !task.Status.IsActive() {
		return fmt.Errorf("transcription task is not active: %s", task.Status)
	}

	task.Status = model.TaskStatusStopping
	s.notifyUpdate(task)

	return nil
}

// GetTask returns a transcription task by ID
func (s *Service) GetTask(taskID string) (*model.TranscriptionTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[taskID]
	return task, exists
}

// startTranscription performs the actual transcription
func (s *Service) startTranscription(task *model.TranscriptionTask) {
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusStarting
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	duration, err := s.getMediaDuration(task.InputPath)
	if err != nil {
		log.Printf("Failed to get media duration for %s: %v", task.InputPath, err)
		s.setTaskError(task, err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Monitor for stop requests
	go func() {
		for {
			s.tasksMutex.RLock()
			status := task.Status
			s.tasksMutex.RUnlock()

			if status == model.TaskStatusStopping {
				cancel()
				return
			}
			if status.IsFinished() {
				return
			}
			time.Sleep(100 * time.Millisecond)
		}
	}()

	s.tasksMutex.Lock()
	task.Status = model.TaskStatusRunning
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	args := s.BuildWhisperArgs(task.InputPath, task.Language)
	cmd := exec.CommandContext(ctx, WhisperCommand, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		s.setTaskError(task, fmt.Errorf("failed to create stdout pipe: %w", err))
		return
	}

	if err := cmd.Start(); err != nil {
		s.setTaskError(task, fmt.Errorf("failed to start whisper: %w", err))
		return
	}

	go s.monitorProgress(stdout, task, duration)

	err = cmd.Wait()

	s.tasksMutex.Lock()
	if ctx.Err() == context.Canceled {
		task.Status = model.TaskStatusStopped
		os.Remove(task.OutputPath)
	} else if err != nil {
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
		os.Remove(task.OutputPath)
	} else {
		task.Status = model.TaskStatusCompleted
		task.Progress = 1.0
		task.Percent = 100
	}
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// BuildWhisperArgs builds the whisper command arguments
func (s *Service) BuildWhisperArgs(inputPath, language string) []string {
	args := []string{
		inputPath,
		"--model", WhisperModel,
		"--output_format", WhisperOutputFormat,
		"--output_dir", filepath.Dir(inputPath),
	}
	if language != "" {
		args = append(args, "--language", language)
	}
	return args
}

// getMediaDuration gets the duration of a media file using ffprobe
func (s *Service) getMediaDuration(filePath string) (float64, error) {
	cmd := exec.Command(FFprobeCommand, "-v", FFprobeLogLevel, "-show_entries", FFprobeShowEntries, "-of", FFprobeOutputFormat, filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	durationStr := strings.TrimSpace(string(output))
	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}

	return duration, nil
}

// monitorProgress follows whisper's segment output and converts the latest
// end timestamp into a completion percentage.
func (s *Service) monitorProgress(stdout io.ReadCloser, task *model.TranscriptionTask, totalDuration float64) {
	defer stdout.Close()
	scanner := bufio.NewScanner(stdout)

	for scanner.Scan() {
		seconds, ok := parseSegmentEnd(scanner.Text())
		if !ok || totalDuration <= 0 {
			continue
		}

		progress := seconds / totalDuration
		if progress > 1.0 {
			progress = 1.0
		}

		s.tasksMutex.Lock()
		if progress > task.Progress {
			task.Progress = progress
			task.Percent = int(progress * 100)
		}
		s.tasksMutex.Unlock()

		s.notifyUpdate(task)
	}
}

// parseSegmentEnd extracts the end timestamp in seconds from a segment line
// like "[00:01.000 --> 00:04.500]  some text".
func parseSegmentEnd(line string) (float64, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, timestampOpen) || !strings.Contains(line, timestampArrow) {
		return 0, false
	}

	closing := strings.IndexByte(line, ']')
	if closing < 0 {
		return 0, false
	}

	span := line[1:closing]
	parts := strings.Split(span, timestampArrow)
	if len(parts) != 2 {
		return 0, false
	}

	return parseTimestamp(strings.TrimSpace(parts[1]))
}

// parseTimestamp converts MM:SS.mmm or HH:MM:SS.mmm to seconds.
func parseTimestamp(ts string) (float64, bool) {
	parts := strings.Split(ts, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}

	total := 0.0
	for _, part := range parts {
		value, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return 0, false
		}
		total = total*60 + value
	}
	return total, true
}

// setTaskError sets an error state for a task
func (s *Service) setTaskError(task *model.TranscriptionTask, err error) {
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusError
	task.LastError = err.Error()
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.TranscriptionTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// generateOutputPath returns the subtitle path next to the input file
func generateOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + OutputExtensionSRT
}

// generateTaskID generates a unique task ID using UUID v7 for better uniqueness and time ordering
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
