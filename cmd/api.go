package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/cyrkaade/hackathon-lumina/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet makes a direct GET request to the assessment backend
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	useJSON := cmd.Bool("json")

	r.logger.Info("GET request", "path", path)

	resp, err := r.api.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if useJSON {
		if resp.IsJSON {
			return r.writeJSON(resp.JSONData, false)
		}
		r.output.Write(resp.Body)
		r.output.Write([]byte("\n"))
		return nil
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, true)
	}

	r.output.Write(resp.Body)
	r.output.Write([]byte("\n"))
	return nil
}

// APIPost makes a direct POST request to the assessment backend
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	data := cmd.String("data")

	if data == "" {
		return fmt.Errorf("%w: --data flag is required", shared.ErrMissingArgument)
	}

	r.logger.Info("POST request", "path", path)

	var jsonTest any
	if err := json.Unmarshal([]byte(data), &jsonTest); err != nil {
		return fmt.Errorf("%w: data is not valid JSON: %v", shared.ErrInvalidInput, err)
	}

	resp, err := r.api.Post(ctx, path, []byte(data))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, true)
	}

	r.output.Write(resp.Body)
	r.output.Write([]byte("\n"))
	return nil
}

// APIDump fetches and displays the full backend state.
func (r *Runner) APIDump(ctx context.Context, cmd *cli.Command) error {
	pretty := cmd.Bool("pretty")
	save := cmd.Bool("save")

	r.logger.Info("dumping API state")
	r.writePlain("Fetching backend state...\n\n")

	type DumpData struct {
		Health           any   `json:"health"`
		LatestAssessment any   `json:"latest_assessment,omitempty"`
		Rankings         any   `json:"rankings,omitempty"`
		Errors           []any `json:"errors,omitempty"`
	}

	dump := DumpData{
		Errors: []any{},
	}

	// Fetch health
	r.writePlain("📊 Fetching health status...\n")
	if resp, err := r.api.Get(ctx, "/health"); err != nil {
		dump.Errors = append(dump.Errors, map[string]string{"endpoint": "/health", "error": err.Error()})
		r.logger.Warn("failed to fetch health", "error", err)
	} else if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		dump.Errors = append(dump.Errors, map[string]string{"endpoint": "/health", "error": fmt.Sprintf("status %d", resp.StatusCode)})
		r.logger.Warn("failed to fetch health", "status", resp.StatusCode)
	} else {
		dump.Health = resp.JSONData
	}

	// Fetch the most recent assessment
	r.writePlain("📝 Fetching latest assessment...\n")
	if resp, err := r.api.Get(ctx, "/api/latest-assessment"); err != nil {
		dump.Errors = append(dump.Errors, map[string]string{"endpoint": "/api/latest-assessment", "error": err.Error()})
		r.logger.Warn("failed to fetch latest assessment", "error", err)
	} else if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		dump.Errors = append(dump.Errors, map[string]string{"endpoint": "/api/latest-assessment", "error": fmt.Sprintf("status %d", resp.StatusCode)})
		r.logger.Warn("failed to fetch latest assessment", "status", resp.StatusCode)
	} else {
		dump.LatestAssessment = resp.JSONData
	}

	// Fetch worker rankings
	r.writePlain("🏆 Fetching worker rankings...\n")
	if resp, err := r.api.Get(ctx, "/api/workers/rankings"); err != nil {
		dump.Errors = append(dump.Errors, map[string]string{"endpoint": "/api/workers/rankings", "error": err.Error()})
		r.logger.Warn("failed to fetch rankings", "error", err)
	} else if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		dump.Errors = append(dump.Errors, map[string]string{"endpoint": "/api/workers/rankings", "error": fmt.Sprintf("status %d", resp.StatusCode)})
		r.logger.Warn("failed to fetch rankings", "status", resp.StatusCode)
	} else {
		dump.Rankings = resp.JSONData
	}

	r.writePlain("\n✓ Dump complete\n\n")

	// Save to file if requested
	if save {
		saveFile := "api_dump.json"
		data, err := shared.MarshalJSON(dump, true)
		if err != nil {
			return fmt.Errorf("failed to marshal dump: %w", err)
		}
		if err := os.WriteFile(saveFile, data, 0644); err != nil {
			r.logger.Warn("failed to save dump", "error", err)
		} else {
			r.logger.Info("dump saved", "file", saveFile)
			r.writePlain("✓ Dump saved to %s\n\n", saveFile)
		}
	}

	// Output to console
	return r.writeJSON(dump, pretty)
}

// apiCommand handles direct calls against the assessment backend
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the assessment backend",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the backend, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
			{
				Name:  "dump",
				Usage: "Full backend state dump (health, latest assessment, rankings)",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Save dump to api_dump.json",
						Value: false,
					},
				},
				Action: r.APIDump,
			},
		},
	}
}
