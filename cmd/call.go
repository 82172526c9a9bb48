package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cyrkaade/hackathon-lumina/internal/formatter"
	"github.com/cyrkaade/hackathon-lumina/internal/models"
	"github.com/cyrkaade/hackathon-lumina/internal/shared"
	"github.com/cyrkaade/hackathon-lumina/internal/tasks"
	"github.com/urfave/cli/v3"
)

// CallUpload submits one recording for assessment and prints the result.
func (r *Runner) CallUpload(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	language := cmd.String("language")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if path == "" {
		return fmt.Errorf("%w: recording path is required", shared.ErrMissingArgument)
	}
	if r.svc == nil {
		return fmt.Errorf("%w: assessment service not initialized", shared.ErrServiceUnavailable)
	}
	if !tasks.IsAudioFile(path) {
		return fmt.Errorf("%w: %s is not a call recording (.wav, .mp3, .m4a)", shared.ErrInvalidArgument, path)
	}

	audio, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open recording: %w", err)
	}
	defer audio.Close()

	filename := filepath.Base(path)

	r.logger.Info("uploading call recording", "file", filename, "language", language)
	r.writePlain("→ Uploading %s...\n", filename)

	res, err := r.svc.UploadCall(ctx, audio, filename, language)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(res, pretty)
	}

	if !res.Succeeded() {
		r.writePlain("✗ Assessment failed: %s\n", res.Message)
		return fmt.Errorf("assessment failed: %s", res.Message)
	}
	if res.Assessment == nil {
		return fmt.Errorf("%w: backend returned no assessment", shared.ErrAPIRequest)
	}

	r.writePlainln("✓ Call assessed")
	r.printAssessment(res.Assessment)

	return nil
}

// CallLatest shows the most recently completed assessment.
func (r *Runner) CallLatest(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.svc == nil {
		return fmt.Errorf("%w: assessment service not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Info("fetching latest assessment")

	assessment, err := r.svc.GetLatestAssessment(ctx)
	if err != nil {
		if notFound(err) {
			return fmt.Errorf("%w: no assessments yet", shared.ErrAssessmentNotFound)
		}
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(assessment, pretty)
	}

	r.printAssessment(assessment)
	return nil
}

// CallShow fetches the assessment for a call, optionally exporting it.
func (r *Runner) CallShow(ctx context.Context, cmd *cli.Command) error {
	callID := cmd.StringArg("id")
	csvPath := cmd.String("csv")
	mdPath := cmd.String("markdown")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if callID == "" {
		return fmt.Errorf("%w: call id is required", shared.ErrMissingArgument)
	}
	if r.svc == nil {
		return fmt.Errorf("%w: assessment service not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Info("fetching assessment", "call_id", callID)

	assessment, err := r.svc.GetAssessment(ctx, callID)
	if err != nil {
		if notFound(err) {
			return fmt.Errorf("%w: no assessment for call %s", shared.ErrAssessmentNotFound, callID)
		}
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if csvPath != "" {
		data, err := formatter.ExportAssessmentCSV(assessment)
		if err != nil {
			return fmt.Errorf("failed to export CSV: %w", err)
		}
		if err := os.WriteFile(csvPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		r.logger.Info("assessment exported", "file", csvPath)
		r.writePlain("✓ Assessment exported to %s\n", csvPath)
	}

	if mdPath != "" {
		data, err := formatter.ExportAssessmentMarkdown(assessment)
		if err != nil {
			return fmt.Errorf("failed to export Markdown: %w", err)
		}
		if err := os.WriteFile(mdPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		r.logger.Info("assessment exported", "file", mdPath)
		r.writePlain("✓ Assessment exported to %s\n", mdPath)
	}

	if useJSON {
		return r.writeJSON(assessment, pretty)
	}
	if csvPath != "" || mdPath != "" {
		return nil
	}

	r.printAssessment(assessment)
	return nil
}

// CallAssess triggers reassessment of an already-uploaded call.
func (r *Runner) CallAssess(ctx context.Context, cmd *cli.Command) error {
	callID := cmd.StringArg("id")
	language := cmd.String("language")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if callID == "" {
		return fmt.Errorf("%w: call id is required", shared.ErrMissingArgument)
	}
	if r.svc == nil {
		return fmt.Errorf("%w: assessment service not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Info("reassessing call", "call_id", callID, "language", language)
	r.writePlain("→ Reassessing call %s...\n", callID)

	assessment, err := r.svc.AssessCall(ctx, callID, language)
	if err != nil {
		if notFound(err) {
			return fmt.Errorf("%w: no uploaded call %s", shared.ErrAssessmentNotFound, callID)
		}
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(assessment, pretty)
	}

	r.writePlainln("✓ Reassessment complete")
	r.printAssessment(assessment)

	return nil
}

// printAssessment renders a full assessment as plain text.
func (r *Runner) printAssessment(a *models.Assessment) {
	r.writePlain("Call: %s\n", a.CallID)
	r.writePlain("Worker: #%d\n", a.WorkerID)
	if a.PerformanceGrade != "" {
		r.writePlain("Total score: %.1f (%s)\n", a.TotalScore, a.PerformanceGrade)
	} else {
		r.writePlain("Total score: %.1f\n", a.TotalScore)
	}
	if !a.Timestamp.IsZero() {
		r.writePlain("Assessed: %s\n", a.Timestamp.Format("2006-01-02 15:04"))
	}

	r.writePlain("\nScores:\n")
	r.writePlain("  Emotion:         %5.1f\n", a.EmotionScore)
	r.writePlain("  Resolution:      %5.1f\n", a.ResolutionScore)
	r.writePlain("  Communication:   %5.1f\n", a.CommunicationScore)
	r.writePlain("  Professionalism: %5.1f\n", a.ProfessionalismScore)
	r.writePlain("  Empathy:         %5.1f\n", a.EmpathyScore)
	r.writePlain("  Efficiency:      %5.1f\n", a.EfficiencyScore)

	if len(a.Breakdown.Strengths) > 0 {
		r.writePlain("\nStrengths:\n")
		for _, s := range a.Breakdown.Strengths {
			r.writePlain("  - %s\n", s)
		}
	}

	if len(a.Breakdown.Improvements) > 0 {
		r.writePlain("\nAreas for improvement:\n")
		for _, s := range a.Breakdown.Improvements {
			r.writePlain("  - %s\n", s)
		}
	}
}

// callCommand handles call assessment operations
func callCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "call",
		Aliases: []string{"calls"},
		Usage:   "Upload and inspect call assessments",
		Commands: []*cli.Command{
			{
				Name:  "upload",
				Usage: "Upload a recording for assessment",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "language",
						Aliases: []string{"l"},
						Usage:   "Recording language (ru or kk)",
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
				Action: r.CallUpload,
			},
			{
				Name:  "latest",
				Usage: "Show the most recent assessment",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.CallLatest,
			},
			{
				Name:  "show",
				Usage: "Show the assessment for a call",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "csv",
						Usage: "Export as CSV to the given path",
					},
					&cli.StringFlag{
						Name:    "markdown",
						Aliases: []string{"md"},
						Usage:   "Export as Markdown to the given path",
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
				Action: r.CallShow,
			},
			{
				Name:  "assess",
				Usage: "Trigger reassessment of an uploaded call",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "language",
						Aliases: []string{"l"},
						Usage:   "Transcription language (ru or kk)",
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
				Action: r.CallAssess,
			},
		},
	}
}
