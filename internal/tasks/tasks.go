// package tasks implements batch submission of call recordings for assessment.
//
// The core abstraction is Engine, which uploads recordings concurrently through a worker pool.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cyrkaade/hackathon-lumina/internal/formatter"
	"github.com/cyrkaade/hackathon-lumina/internal/models"
	"github.com/cyrkaade/hackathon-lumina/internal/services"
	"github.com/cyrkaade/hackathon-lumina/internal/shared"
	"github.com/gammazero/workerpool"
	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"
)

// BatchOpts contains configuration for batch upload runs.
type BatchOpts struct {
	Workers    int     // Concurrent upload workers (default: 4, capped at 10)
	RateLimit  float64 // Uploads per second (default: 2)
	Language   string  // Fallback language for jobs that omit one
	ReportPath string  // Where to write the JSON batch report; skipped when empty
}

// BatchResult contains aggregate outcomes from a batch upload run.
type BatchResult struct {
	Total      int                  // Jobs submitted to the engine
	Succeeded  int                  // Uploads the backend scored
	Failed     int                  // Uploads rejected, errored, or never sent
	Receipts   []*models.Submission // One settled receipt per job, in job order
	ReportPath string               // Report location when one was requested
	Elapsed    time.Duration        // Wall-clock duration of the run
}

// SubmissionRecorder persists submission receipts produced during a batch run.
//
// Receipts are recorded best-effort: persistence failures never disrupt uploads.
type SubmissionRecorder interface {
	RecordSubmission(sub *models.Submission) error
}

// Engine defines operations for submitting recorded calls in bulk.
type Engine interface {
	// Run uploads every job through the assessment backend and returns one settled receipt per job.
	Run(ctx context.Context, progress chan<- ProgressUpdate, jobs []SubmissionJob, opts BatchOpts) (*BatchResult, error)
}

// UploadEngine implements Engine for call recording uploads.
type UploadEngine struct {
	svc      services.Service
	recorder SubmissionRecorder
	validate *validator.Validate
}

// NewUploadEngine creates an UploadEngine backed by the given assessment service.
// The recorder is optional; pass nil to skip receipt persistence.
func NewUploadEngine(svc services.Service, recorder SubmissionRecorder) *UploadEngine {
	return &UploadEngine{
		svc:      svc,
		recorder: recorder,
		validate: validator.New(),
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *UploadEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Run uploads all jobs concurrently, respecting the configured rate limit.
//
// Every job settles into exactly one receipt: scored uploads are marked success,
// while validation failures, unreadable files, transport errors, and backend
// rejections are marked failed with the reason. The error return covers setup
// problems only; per-job failures are reported through the result.
func (e *UploadEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, jobs []SubmissionJob, opts BatchOpts) (*BatchResult, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: assessment service not initialized", shared.ErrServiceUnavailable)
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w: no jobs to submit", shared.ErrInvalidInput)
	}

	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Workers > 10 {
		opts.Workers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2.0
	}

	started := time.Now()
	total := len(jobs)
	receipts := make([]*models.Submission, total)

	e.sendProgress(progress, queuedJobsUpdate(total))

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	pool := workerpool.New(opts.Workers)

	for i, job := range jobs {
		pool.Submit(func() {
			receipts[i] = e.processJob(ctx, progress, limiter, i+1, total, job, opts)
		})
	}

	pool.StopWait()

	result := &BatchResult{
		Total:    total,
		Receipts: receipts,
		Elapsed:  time.Since(started),
	}
	for _, sub := range receipts {
		if sub.Status() == models.SubmissionSuccess {
			result.Succeeded++
		} else {
			result.Failed++
		}
	}

	if opts.ReportPath != "" {
		report := formatter.NewBatchReport(receipts)
		path, err := formatter.WriteBatchReport(report, opts.ReportPath)
		if err != nil {
			return result, fmt.Errorf("batch completed but failed to write report: %w", err)
		}
		result.ReportPath = path
		e.sendProgress(progress, reportWrittenUpdate(path))
	}

	return result, nil
}

// processJob uploads a single recording and returns its settled receipt.
func (e *UploadEngine) processJob(ctx context.Context, progress chan<- ProgressUpdate, limiter *rate.Limiter, step, total int, job SubmissionJob, opts BatchOpts) *models.Submission {
	filename := filepath.Base(job.FilePath)
	language := job.Language
	if language == "" {
		language = opts.Language
	}

	sub := models.NewSubmission(0, "", job.WorkerID, filename, language)

	fail := func(err error) *models.Submission {
		sub.MarkFailed(err.Error())
		e.record(sub)
		e.sendProgress(progress, uploadFailedUpdate(step, total, sub, err))
		return sub
	}

	if err := e.validate.Struct(job); err != nil {
		return fail(fmt.Errorf("invalid job: %v", err))
	}

	if err := limiter.Wait(ctx); err != nil {
		return fail(fmt.Errorf("cancelled: %v", err))
	}

	audio, err := os.Open(job.FilePath)
	if err != nil {
		return fail(fmt.Errorf("failed to open recording: %v", err))
	}
	defer audio.Close()

	e.sendProgress(progress, uploadStartedUpdate(step, total, filename))

	res, err := e.svc.UploadCall(ctx, audio, filename, language)
	if err != nil {
		return fail(err)
	}
	if !res.Succeeded() {
		msg := res.Message
		if msg == "" {
			msg = "backend could not assess this recording"
		}
		return fail(fmt.Errorf("%s", msg))
	}
	if res.Assessment == nil {
		return fail(fmt.Errorf("backend returned no assessment"))
	}

	sub.SetCallID(res.Assessment.CallID)
	sub.MarkSuccess(res.Assessment.TotalScore, res.Message)
	e.record(sub)
	e.sendProgress(progress, uploadCompletedUpdate(step, total, sub))
	return sub
}

// record persists a receipt when a recorder is configured.
// Recording errors are ignored so persistence problems never disrupt a batch run.
func (e *UploadEngine) record(sub *models.Submission) {
	if e.recorder == nil {
		return
	}
	_ = e.recorder.RecordSubmission(sub)
}
