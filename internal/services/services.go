// package services defines interface Service for talking to the call assessment backend over HTTP
package services

import (
	"context"
	"io"
	"net/http"

	"github.com/cyrkaade/hackathon-lumina/internal/models"
)

// Doer issues a single HTTP request. It is the transport dependency injected
// into services: *http.Client satisfies it, as does heimdall's retrying client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Service defines the fixed operation set every user surface (CLI, TUI, web
// console) consumes. Implementations perform exactly one round trip per call
// and never retry, cache, or reinterpret backend data.
type Service interface {
	// UploadCall submits a call recording for assessment and returns the
	// backend's envelope. A non-nil result with Status "error" is an in-band
	// processing failure, not a transport error: callers must check Succeeded.
	UploadCall(ctx context.Context, audio io.Reader, filename, language string) (*models.UploadResult, error)

	// GetLatestAssessment retrieves the most recently completed assessment.
	GetLatestAssessment(ctx context.Context) (*models.Assessment, error)

	// GetAssessment retrieves the assessment for a specific call.
	GetAssessment(ctx context.Context, callID string) (*models.Assessment, error)

	// AssessCall triggers reassessment of an already-uploaded call.
	AssessCall(ctx context.Context, callID, language string) (*models.Assessment, error)

	// GetWorkerPerformance retrieves aggregated statistics for one worker.
	// A days value of 0 means the backend default window (30 days).
	GetWorkerPerformance(ctx context.Context, workerID int, days int) (*models.WorkerPerformance, error)

	// GetWorkerRankings retrieves the worker leaderboard. An empty department
	// means all departments; limit <= 0 means the backend default (10).
	GetWorkerRankings(ctx context.Context, department string, limit int) ([]models.WorkerRanking, error)

	// GetHealth probes the backend health endpoint.
	GetHealth(ctx context.Context) (*models.HealthStatus, error)

	// Name returns a human-readable name for the backend.
	Name() string
}
