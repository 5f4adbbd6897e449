package download

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/streamscribe/streamscribe/internal/engine"
	"github.com/streamscribe/streamscribe/internal/model"
)

// Callbacks deliver job lifecycle events. All fields are optional. They are
// invoked from the job goroutine; UI layers marshal onto their own thread.
type Callbacks struct {
	OnStatus   func(job *model.DownloadJob)
	OnProgress func(job *model.DownloadJob)
	OnError    func(job *model.DownloadJob, derr *model.DownloadError)
}

// Orchestrator runs at most one download job at a time. The busy flag is
// claimed with a compare-and-swap before any observable work and released
// on every exit path.
type Orchestrator struct {
	engine    engine.Engine
	callbacks Callbacks

	busy atomic.Bool

	mu      sync.Mutex
	current *model.DownloadJob
	cancel  context.CancelFunc
}

// NewOrchestrator creates an orchestrator over the given engine.
func NewOrchestrator(eng engine.Engine, callbacks Callbacks) *Orchestrator {
	return &Orchestrator{engine: eng, callbacks: callbacks}
}

// Busy reports whether a job or bulk session currently holds the slot.
func (o *Orchestrator) Busy() bool {
	return o.busy.Load()
}

// CurrentJob returns a snapshot of the running job, nil when idle.
func (o *Orchestrator) CurrentJob() *model.DownloadJob {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current == nil {
		return nil
	}
	snapshot := *o.current
	return &snapshot
}

// Start begins a download in the background. It returns false without side
// effects when another job already holds the slot.
func (o *Orchestrator) Start(url string, opts model.JobOptions, outputDir string) (string, bool) {
	if !o.busy.CompareAndSwap(false, true) {
		return "", false
	}

	job := &model.DownloadJob{
		ID:              uuid.Must(uuid.NewV7()).String(),
		SourceURL:       url,
		Options:         opts,
		OutputDirectory: outputDir,
		State:           model.JobStateRunning,
		ETASec:          -1,
		StartedAt:       time.Now(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	o.mu.Lock()
	o.current = job
	o.cancel = cancel
	o.mu.Unlock()

	go func() {
		defer o.release()
		o.run(ctx, job)
	}()

	return job.ID, true
}

// Cancel aborts the running job, if any.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	cancel := o.cancel
	o.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// release clears the slot. Runs on every job exit path.
func (o *Orchestrator) release() {
	o.mu.Lock()
	o.current = nil
	o.cancel = nil
	o.mu.Unlock()
	o.busy.Store(false)
}

func (o *Orchestrator) run(ctx context.Context, job *model.DownloadJob) {
	o.notifyStatus(job)

	cfg := engine.BuildConfig(job.Options, job.OutputDirectory)
	tracker := &progressTracker{}

	err := o.engine.Download(ctx, job.SourceURL, cfg, func(record engine.ProgressRecord) {
		o.mu.Lock()
		job.Percent = tracker.Observe(record)
		if record.SpeedStr != "" {
			job.Speed = record.SpeedStr
		}
		job.ETASec = record.ETASeconds
		o.mu.Unlock()
		o.notifyProgress(job)
	})

	o.mu.Lock()
	job.FinishedAt = time.Now()
	if err != nil {
		job.State = model.JobStateFailed
		job.LastError = err.Error()
	} else {
		job.State = model.JobStateSucceeded
		job.Percent = 100
	}
	o.mu.Unlock()

	if err != nil {
		derr := model.ClassifyDownloadError(err.Error())
		log.Printf("download: job %s failed: %s", job.ID, derr)
		o.notifyError(job, derr)
	} else {
		log.Printf("download: job %s finished", job.ID)
	}
	o.notifyStatus(job)
}

func (o *Orchestrator) notifyStatus(job *model.DownloadJob) {
	if o.callbacks.OnStatus != nil {
		o.callbacks.OnStatus(job)
	}
}

func (o *Orchestrator) notifyProgress(job *model.DownloadJob) {
	if o.callbacks.OnProgress != nil {
		o.callbacks.OnProgress(job)
	}
}

func (o *Orchestrator) notifyError(job *model.DownloadJob, derr *model.DownloadError) {
	if o.callbacks.OnError != nil {
		o.callbacks.OnError(job, derr)
	}
}
