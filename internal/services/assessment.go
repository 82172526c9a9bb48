// Assessment backend implementation of [Service]
//
// Endpoint paths and response shapes follow the call assessment API: uploads
// are multipart POSTs answered with an in-band status envelope, everything
// else is plain JSON over GET/POST.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cyrkaade/hackathon-lumina/internal/models"
	"github.com/cyrkaade/hackathon-lumina/internal/shared"
)

const (
	defaultBaseURL  = "http://localhost:8000"
	defaultLanguage = "ru"

	// Backend-side defaults, injected client-side so a zero value never
	// reaches the wire as a literal "0".
	defaultDays          = 30
	defaultRankingsLimit = 10
)

// AssessmentService implements the Service interface against the call
// assessment backend. The zero behaviors are deliberate: no retries, no
// timeouts, no caching. Pacing and resilience belong to the injected Doer
// and to callers.
type AssessmentService struct {
	baseURL  string
	client   Doer
	query    Doer
	language string
}

// NewAssessmentService creates a service for the backend at baseURL.
// An empty baseURL targets a local development backend; a nil client
// falls back to http.DefaultClient.
func NewAssessmentService(baseURL string, client Doer) *AssessmentService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &AssessmentService{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   client,
		query:    client,
		language: defaultLanguage,
	}
}

// WithQueryClient returns a copy of the service that issues read-only requests
// through q. Mutating requests (uploads, reassessments) keep the base client,
// so wiring a retrying client here can never replay an upload.
func (s *AssessmentService) WithQueryClient(q Doer) *AssessmentService {
	if q == nil {
		return s
	}
	clone := *s
	clone.query = q
	return &clone
}

// WithDefaultLanguage returns a copy of the service using lang when callers
// pass an empty language.
func (s *AssessmentService) WithDefaultLanguage(lang string) *AssessmentService {
	if lang == "" {
		return s
	}
	clone := *s
	clone.language = lang
	return &clone
}

func (s *AssessmentService) Name() string {
	return "Call Center Assessment API"
}

// BaseURL returns the backend base URL the service targets.
func (s *AssessmentService) BaseURL() string {
	return s.baseURL
}

// doRequest performs one HTTP round trip against the backend.
//
// A failed round trip yields a NetworkError, a non-2xx response a
// TransportError. On success the body is decoded into result when non-nil.
func (s *AssessmentService) doRequest(ctx context.Context, client Doer, method, endpoint string, body io.Reader, contentType string, result any) error {
	apiURL := s.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, method, apiURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return &NetworkError{URL: apiURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newTransportError(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// UploadCall submits a call recording as multipart form data.
//
// The form carries the audio under field "file" and the language hint under
// field "language". The response envelope is returned even when the backend
// reports an in-band processing failure; only transport-level problems
// surface as errors.
func (s *AssessmentService) UploadCall(ctx context.Context, audio io.Reader, filename, language string) (*models.UploadResult, error) {
	if audio == nil {
		return nil, fmt.Errorf("%w: audio stream", shared.ErrMissingArgument)
	}
	if language == "" {
		language = s.language
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, fmt.Errorf("failed to read audio stream: %w", err)
	}
	if err := form.WriteField("language", language); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}

	var result models.UploadResult
	if err := s.doRequest(ctx, s.client, "POST", "/api/upload-call", &buf, form.FormDataContentType(), &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// GetLatestAssessment retrieves the most recently completed assessment.
// Always a fresh fetch: the backend decides what "latest" means.
func (s *AssessmentService) GetLatestAssessment(ctx context.Context) (*models.Assessment, error) {
	var assessment models.Assessment
	if err := s.doRequest(ctx, s.query, "GET", "/api/latest-assessment", nil, "", &assessment); err != nil {
		return nil, err
	}
	return &assessment, nil
}

// GetAssessment retrieves the assessment for the given call.
func (s *AssessmentService) GetAssessment(ctx context.Context, callID string) (*models.Assessment, error) {
	if callID == "" {
		return nil, fmt.Errorf("%w: call id", shared.ErrMissingArgument)
	}

	endpoint := fmt.Sprintf("/api/assessment/%s", url.PathEscape(callID))

	var assessment models.Assessment
	if err := s.doRequest(ctx, s.query, "GET", endpoint, nil, "", &assessment); err != nil {
		return nil, err
	}
	return &assessment, nil
}

// AssessCall asks the backend to rescore an already-uploaded call.
// Reassessment mutates backend state, so it always uses the base client.
func (s *AssessmentService) AssessCall(ctx context.Context, callID, language string) (*models.Assessment, error) {
	if callID == "" {
		return nil, fmt.Errorf("%w: call id", shared.ErrMissingArgument)
	}
	if language == "" {
		language = s.language
	}

	endpoint := fmt.Sprintf("/api/assess-call/%s?language=%s", url.PathEscape(callID), url.QueryEscape(language))

	var assessment models.Assessment
	if err := s.doRequest(ctx, s.client, "POST", endpoint, nil, "", &assessment); err != nil {
		return nil, err
	}
	return &assessment, nil
}

// GetWorkerPerformance retrieves aggregated statistics for one worker over
// the trailing window. Zero days selects the backend's 30 day default; any
// other value is forwarded untouched.
func (s *AssessmentService) GetWorkerPerformance(ctx context.Context, workerID int, days int) (*models.WorkerPerformance, error) {
	if days == 0 {
		days = defaultDays
	}

	endpoint := fmt.Sprintf("/api/worker/%d/performance?days=%d", workerID, days)

	var performance models.WorkerPerformance
	if err := s.doRequest(ctx, s.query, "GET", endpoint, nil, "", &performance); err != nil {
		return nil, err
	}
	return &performance, nil
}

// GetWorkerRankings retrieves the worker leaderboard, filtered to department
// when non-empty. The returned order and length are backend-determined; the
// client never truncates locally.
func (s *AssessmentService) GetWorkerRankings(ctx context.Context, department string, limit int) ([]models.WorkerRanking, error) {
	if limit <= 0 {
		limit = defaultRankingsLimit
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	if department != "" {
		params.Set("department", department)
	}

	endpoint := "/api/workers/rankings?" + params.Encode()

	var rankings []models.WorkerRanking
	if err := s.doRequest(ctx, s.query, "GET", endpoint, nil, "", &rankings); err != nil {
		return nil, err
	}
	return rankings, nil
}

// GetHealth probes the backend health endpoint.
func (s *AssessmentService) GetHealth(ctx context.Context) (*models.HealthStatus, error) {
	var status models.HealthStatus
	if err := s.doRequest(ctx, s.query, "GET", "/health", nil, "", &status); err != nil {
		return nil, err
	}
	return &status, nil
}
