package main

import (
	"context"
	"fmt"
	"time"

	"github.com/cyrkaade/hackathon-lumina/internal/models"
	"github.com/cyrkaade/hackathon-lumina/internal/shared"
	"github.com/urfave/cli/v3"
)

// submissionView is the JSON shape for history output. Receipts keep their
// fields unexported, so the view re-exposes them with stable tags.
type submissionView struct {
	ID         string    `json:"id"`
	CallID     string    `json:"call_id,omitempty"`
	WorkerID   int       `json:"worker_id"`
	Filename   string    `json:"filename"`
	Language   string    `json:"language,omitempty"`
	Status     string    `json:"status"`
	TotalScore *float64  `json:"total_score,omitempty"`
	Message    string    `json:"message,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func newSubmissionView(sub *models.Submission) submissionView {
	view := submissionView{
		ID:         sub.ID(),
		CallID:     sub.CallID(),
		WorkerID:   sub.WorkerID(),
		Filename:   sub.Filename(),
		Language:   sub.Language(),
		Status:     sub.Status(),
		Message:    sub.Message(),
		UploadedAt: sub.CreatedAt(),
	}
	if sub.Scored() {
		score := sub.TotalScore()
		view.TotalScore = &score
	}
	return view
}

// HistoryList lists recorded upload receipts from the local database.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	workerID := cmd.Int("worker-id")
	status := cmd.String("status")
	language := cmd.String("language")
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	switch status {
	case "", models.SubmissionPending, models.SubmissionSuccess, models.SubmissionFailed:
	default:
		return fmt.Errorf("%w: status must be %q, %q, or %q", shared.ErrInvalidFlag,
			models.SubmissionPending, models.SubmissionSuccess, models.SubmissionFailed)
	}

	repo, closeDB, err := r.openSubmissions()
	if err != nil {
		return err
	}
	defer closeDB()

	r.logger.Info("listing submission history", "worker_id", workerID, "status", status, "limit", limit)

	subs, err := repo.List(map[string]any{
		"worker_id": workerID,
		"status":    status,
		"language":  language,
		"limit":     limit,
	})
	if err != nil {
		return fmt.Errorf("failed to list submissions: %w", err)
	}

	if useJSON {
		views := make([]submissionView, 0, len(subs))
		for _, sub := range subs {
			views = append(views, newSubmissionView(sub))
		}
		return r.writeJSON(views, pretty)
	}

	if len(subs) == 0 {
		r.writePlain("No recorded submissions.\n")
		return nil
	}

	r.writePlain("Found %d submissions:\n\n", len(subs))
	for i, sub := range subs {
		r.printSubmission(i+1, sub)
	}

	return nil
}

// HistoryShow displays one recorded receipt by receipt id or backend call id.
func (r *Runner) HistoryShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	byCall := cmd.Bool("call")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if id == "" {
		return fmt.Errorf("%w: receipt id is required", shared.ErrMissingArgument)
	}

	repo, closeDB, err := r.openSubmissions()
	if err != nil {
		return err
	}
	defer closeDB()

	var sub *models.Submission
	if byCall {
		r.logger.Info("looking up receipt by call id", "call_id", id)
		sub, err = repo.GetByCallID(id)
	} else {
		r.logger.Info("looking up receipt", "id", id)
		sub, err = repo.Get(id)
	}
	if err != nil {
		return fmt.Errorf("failed to load submission: %w", err)
	}

	if useJSON {
		return r.writeJSON(newSubmissionView(sub), pretty)
	}

	r.printSubmission(0, sub)
	return nil
}

// printSubmission renders one receipt as plain text. A positive index
// prefixes the line for list output.
func (r *Runner) printSubmission(index int, sub *models.Submission) {
	if index > 0 {
		r.writePlain("%d. ", index)
	}
	r.writePlain("%s [%s]", sub.Filename(), sub.Status())
	if sub.Scored() {
		r.writePlain(" %.1f", sub.TotalScore())
	}
	r.writePlain("\n")

	if sub.CallID() != "" {
		r.writePlain("   Call: %s\n", sub.CallID())
	}
	r.writePlain("   Worker: #%d\n", sub.WorkerID())
	if sub.Language() != "" {
		r.writePlain("   Language: %s\n", sub.Language())
	}
	if sub.Status() == models.SubmissionFailed && sub.Message() != "" {
		r.writePlain("   Reason: %s\n", sub.Message())
	}
	if !sub.CreatedAt().IsZero() {
		r.writePlain("   Uploaded: %s\n", sub.CreatedAt().Format("2006-01-02 15:04"))
	}
	r.writePlain("\n")
}

// historyCommand handles the local submission history
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Browse recorded upload receipts",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recorded submissions",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "worker-id",
						Usage: "Filter by worker",
					},
					&cli.StringFlag{
						Name:  "status",
						Usage: "Filter by status (pending, success, or error)",
					},
					&cli.StringFlag{
						Name:    "language",
						Aliases: []string{"l"},
						Usage:   "Filter by language",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of receipts to return",
						Value: 20,
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
				Action: r.HistoryList,
			},
			{
				Name:  "show",
				Usage: "Show one recorded submission",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "call",
						Usage: "Treat the argument as a backend call id",
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
				Action: r.HistoryShow,
			},
		},
	}
}
