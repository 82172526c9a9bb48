package main

import (
	"context"
	"fmt"
	"time"

	"github.com/cyrkaade/hackathon-lumina/internal/formatter"
	"github.com/cyrkaade/hackathon-lumina/internal/models"
	"github.com/cyrkaade/hackathon-lumina/internal/repositories"
	"github.com/cyrkaade/hackathon-lumina/internal/shared"
	"github.com/cyrkaade/hackathon-lumina/internal/tasks"
	"github.com/urfave/cli/v3"
)

// BatchRun uploads a set of recordings through the batch engine.
func (r *Runner) BatchRun(ctx context.Context, cmd *cli.Command) error {
	manifestPath := cmd.String("manifest")
	dir := cmd.String("dir")
	language := cmd.String("language")
	useJSON := cmd.Bool("json")

	if r.svc == nil {
		return fmt.Errorf("%w: assessment service not initialized", shared.ErrServiceUnavailable)
	}
	if language == "" {
		language = r.config.Backend.Language
	}

	var jobs []tasks.SubmissionJob
	var err error

	switch {
	case manifestPath != "" && dir != "":
		return fmt.Errorf("%w: cannot specify both --manifest and --dir", shared.ErrInvalidArgument)
	case manifestPath != "":
		jobs, err = tasks.LoadManifest(manifestPath)
	case dir != "":
		workerID := cmd.Int("worker-id")
		if workerID < 1 {
			return fmt.Errorf("%w: --worker-id is required with --dir", shared.ErrMissingArgument)
		}
		jobs, err = tasks.ScanDirectory(dir, workerID, language)
	default:
		return fmt.Errorf("%w: either --manifest or --dir must be provided", shared.ErrMissingArgument)
	}
	if err != nil {
		return err
	}

	opts := tasks.BatchOpts{
		Workers:    cmd.Int("workers"),
		RateLimit:  cmd.Float("rate-limit"),
		Language:   language,
		ReportPath: cmd.String("report"),
	}
	if opts.Workers <= 0 {
		opts.Workers = r.config.Batch.Workers
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = r.config.Batch.RateLimit
	}

	engine := r.engine
	if !cmd.Bool("no-record") {
		repo, closeDB, err := r.openSubmissions()
		if err != nil {
			r.logger.Warn("submission history unavailable, receipts will not be recorded", "error", err)
		} else {
			defer closeDB()
			engine = tasks.NewUploadEngine(r.svc, repositories.NewRecorderAdapter(repo))
		}
	}

	r.logger.Info("starting batch run", "jobs", len(jobs), "workers", opts.Workers, "rate_limit", opts.RateLimit)
	r.writePlain("Starting batch upload...\n\n")

	// Progress goroutine drains updates; done gates the summary so output
	// never interleaves.
	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.QueueJobs:
				r.writePlain("📦 %s\n\n", update.Message)
			case tasks.UploadCalls:
				r.writePlain("   %s\n", update.Message)
			case tasks.WriteReport:
				r.writePlain("\n📝 %s\n", update.Message)
			}
		}
	}()

	result, err := engine.Run(ctx, progressCh, jobs, opts)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	if useJSON {
		// Receipts carry unexported fields, so JSON output reuses the
		// batch report document.
		return r.writeJSON(formatter.NewBatchReport(result.Receipts), true)
	}

	r.writePlain("\n")
	r.writePlainHeader("Batch Complete!")
	r.writePlain("Uploaded: %d recordings in %s\n", result.Total, result.Elapsed.Round(time.Millisecond))
	r.writePlain("Succeeded: %d\n", result.Succeeded)
	r.writePlain("Failed: %d\n", result.Failed)

	if result.Failed > 0 {
		r.writePlain("\nFailed uploads:\n")
		for _, sub := range result.Receipts {
			if sub != nil && sub.Status() != models.SubmissionSuccess {
				r.writePlain("  - %s: %s\n", sub.Filename(), sub.Message())
			}
		}
	}

	if result.ReportPath != "" {
		r.writePlain("\nReport: %s\n", result.ReportPath)
	}

	return nil
}

// batchCommand handles bulk submission operations
func batchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "Upload recordings in bulk",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Upload every recording in a manifest or directory",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "manifest",
						Aliases: []string{"m"},
						Usage:   "Path to a JSON batch manifest",
					},
					&cli.StringFlag{
						Name:  "dir",
						Usage: "Upload every recording in this directory",
					},
					&cli.IntFlag{
						Name:  "worker-id",
						Usage: "Worker the recordings belong to (required with --dir)",
					},
					&cli.StringFlag{
						Name:    "language",
						Aliases: []string{"l"},
						Usage:   "Fallback language for jobs that omit one",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent upload workers",
					},
					&cli.FloatFlag{
						Name:  "rate-limit",
						Usage: "Maximum uploads per second",
					},
					&cli.StringFlag{
						Name:  "report",
						Usage: "Write a JSON batch report to the given path",
					},
					&cli.BoolFlag{
						Name:  "no-record",
						Usage: "Skip recording receipts in the local history database",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output the batch result as JSON",
					},
				},
				Action: r.BatchRun,
			},
		},
	}
}
