package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cyrkaade/hackathon-lumina/internal/shared"
	"github.com/cyrkaade/hackathon-lumina/internal/web"
	"github.com/urfave/cli/v3"
)

// Serve runs the local web console until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	host := cmd.String("host")
	port := cmd.Int("port")
	openBrowser := cmd.Bool("open")

	if r.svc == nil {
		return fmt.Errorf("%w: assessment service not initialized", shared.ErrServiceUnavailable)
	}

	if host == "" {
		host = r.config.Server.Host
	}
	if port <= 0 {
		port = r.config.Server.Port
	}

	app, err := web.NewApp(r.svc, r.logger)
	if err != nil {
		return fmt.Errorf("failed to build web console: %w", err)
	}

	serverAddr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: app,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting web console at %v", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	consoleURL := fmt.Sprintf("http://%s", serverAddr)
	r.writePlain("→ Web console listening at %s\n", consoleURL)
	r.writePlain("Press Ctrl+C to stop.\n")

	if openBrowser {
		if err := shared.OpenBrowser(consoleURL); err != nil {
			r.logger.Warnf("failed to open browser automatically %v", err)
			r.writePlainln("⚠ Could not open browser automatically.")
			r.writePlain("Please open this URL in your browser:\n%s\n\n", consoleURL)
		}
	}

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-signalCtx.Done():
	}

	r.writePlain("\nShutting down...\n")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	return nil
}

// serveCommand runs the embedded web console
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the local web console",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Bind host (defaults to server.host from config)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Bind port (defaults to server.port from config)",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the console in the default browser",
			},
		},
		Action: r.Serve,
	}
}
