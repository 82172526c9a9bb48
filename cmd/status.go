package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/cyrkaade/hackathon-lumina/internal/shared"
	"github.com/urfave/cli/v3"
)

// Status checks backend reachability by calling the health endpoint.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.svc == nil {
		return fmt.Errorf("%w: assessment service not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Info("checking backend health", "backend", r.svc.Name())

	health, err := r.svc.GetHealth(ctx)
	if err != nil {
		return fmt.Errorf("%w: backend unreachable: %v", shared.ErrServiceUnavailable, err)
	}

	if useJSON {
		return r.writeJSON(health, pretty)
	}

	r.writePlain("✓ Backend is reachable\n")
	r.writePlain("Status: %s\n", health.Status)
	if health.Mode != "" {
		r.writePlain("Mode: %s\n", health.Mode)
	}
	if health.Message != "" {
		r.writePlain("Message: %s\n", health.Message)
	}

	if len(health.Features) > 0 {
		r.writePlain("Features:\n")
		names := make([]string, 0, len(health.Features))
		for name := range health.Features {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if health.Features[name] {
				r.writePlain("  %s: ✓\n", name)
			} else {
				r.writePlain("  %s: ✗\n", name)
			}
		}
	}

	return nil
}

// statusCommand checks backend health
func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Check assessment backend health",
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
		Action: r.Status,
	}
}
