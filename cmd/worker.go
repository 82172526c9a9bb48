package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/cyrkaade/hackathon-lumina/internal/formatter"
	"github.com/cyrkaade/hackathon-lumina/internal/shared"
	"github.com/urfave/cli/v3"
)

// WorkerPerformance shows aggregated statistics for one worker.
func (r *Runner) WorkerPerformance(ctx context.Context, cmd *cli.Command) error {
	idArg := cmd.StringArg("id")
	days := cmd.Int("days")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if idArg == "" {
		return fmt.Errorf("%w: worker id is required", shared.ErrMissingArgument)
	}
	workerID, err := strconv.Atoi(idArg)
	if err != nil || workerID < 1 {
		return fmt.Errorf("%w: worker ids are positive numbers, got %q", shared.ErrInvalidArgument, idArg)
	}
	if r.svc == nil {
		return fmt.Errorf("%w: assessment service not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Info("fetching worker performance", "worker_id", workerID, "days", days)

	perf, err := r.svc.GetWorkerPerformance(ctx, workerID, days)
	if err != nil {
		if notFound(err) {
			return fmt.Errorf("%w: no data for worker %d", shared.ErrWorkerNotFound, workerID)
		}
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(perf, pretty)
	}

	r.writePlain("Worker #%d\n", perf.WorkerID)
	if perf.Period != "" {
		r.writePlain("Period: %s\n", perf.Period)
	}
	r.writePlain("Average score: %.1f\n", perf.AverageScore)
	r.writePlain("Calls assessed: %d\n", perf.TotalCalls)
	if perf.Trend != "" {
		r.writePlain("Trend: %s\n", perf.Trend)
	}

	if len(perf.RecentAssessments) > 0 {
		r.writePlain("\nRecent calls:\n")
		for i, a := range perf.RecentAssessments {
			r.writePlain("%d. %s - %.1f", i+1, a.CallID, a.TotalScore)
			if a.PerformanceGrade != "" {
				r.writePlain(" (%s)", a.PerformanceGrade)
			}
			if !a.Timestamp.IsZero() {
				r.writePlain("   %s", a.Timestamp.Format("2006-01-02 15:04"))
			}
			r.writePlain("\n")
		}
	}

	return nil
}

// WorkerRankings shows the worker leaderboard with optional export.
func (r *Runner) WorkerRankings(ctx context.Context, cmd *cli.Command) error {
	department := cmd.String("department")
	limit := cmd.Int("limit")
	csvPath := cmd.String("csv")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.svc == nil {
		return fmt.Errorf("%w: assessment service not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Info("fetching worker rankings", "department", department, "limit", limit)

	rankings, err := r.svc.GetWorkerRankings(ctx, department, limit)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if csvPath != "" {
		data, err := formatter.ExportRankingsCSV(rankings)
		if err != nil {
			return fmt.Errorf("failed to export CSV: %w", err)
		}
		if err := os.WriteFile(csvPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		r.logger.Info("rankings exported", "file", csvPath)
		r.writePlain("✓ Rankings exported to %s\n", csvPath)
	}

	if useJSON {
		return r.writeJSON(rankings, pretty)
	}
	if csvPath != "" {
		return nil
	}

	if len(rankings) == 0 {
		r.writePlain("No ranked workers yet.\n")
		return nil
	}

	text, err := formatter.ExportRankingsText(rankings)
	if err != nil {
		return fmt.Errorf("failed to render rankings: %w", err)
	}
	return r.writePlain("%s", text)
}

// workerCommand handles worker performance operations
func workerCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "worker",
		Aliases: []string{"workers"},
		Usage:   "Worker performance and rankings",
		Commands: []*cli.Command{
			{
				Name:  "performance",
				Usage: "Show aggregated statistics for a worker",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "days",
						Usage: "Statistics window in days",
						Value: 30,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.WorkerPerformance,
			},
			{
				Name:  "rankings",
				Usage: "Show the worker leaderboard",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "department",
						Aliases: []string{"d"},
						Usage:   "Filter by department",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of workers to return",
						Value: 10,
					},
					&cli.StringFlag{
						Name:  "csv",
						Usage: "Export as CSV to the given path",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.WorkerRankings,
			},
		},
	}
}
