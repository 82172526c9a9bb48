package web

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cyrkaade/hackathon-lumina/internal/models"
	"github.com/cyrkaade/hackathon-lumina/internal/services"
	"github.com/cyrkaade/hackathon-lumina/internal/shared"
	tu "github.com/cyrkaade/hackathon-lumina/internal/testing"
)

func newTestApp(t *testing.T, svc services.Service) *App {
	t.Helper()
	app, err := NewApp(svc, shared.NewLogger(io.Discard))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return app
}

func doGet(t *testing.T, app *App, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

// uploadRequest builds a multipart POST to /upload. An empty filename omits
// the file part entirely.
func uploadRequest(t *testing.T, filename, language string, audio []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("language", language); err != nil {
		t.Fatalf("Failed to write language field: %v", err)
	}
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("Failed to create file part: %v", err)
		}
		if _, err := part.Write(audio); err != nil {
			t.Fatalf("Failed to write audio: %v", err)
		}
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func sampleAssessment() *models.Assessment {
	return &models.Assessment{
		CallID:               "call-42",
		WorkerID:             7,
		TotalScore:           87.5,
		PerformanceGrade:     "B",
		EmotionScore:         82,
		ResolutionScore:      90,
		CommunicationScore:   85.5,
		ProfessionalismScore: 88,
		EmpathyScore:         91,
		EfficiencyScore:      86.5,
		Breakdown: models.ScoreBreakdown{
			Strengths:    []string{"Calm and steady tone"},
			Improvements: []string{"Confirm resolution before closing"},
		},
		Timestamp: time.Date(2025, 6, 12, 14, 3, 0, 0, time.UTC),
	}
}

func TestIndex(t *testing.T) {
	app := newTestApp(t, &tu.MockService{})

	t.Run("serves the console page", func(t *testing.T) {
		rec := doGet(t, app, "/")

		if rec.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
			t.Errorf("Expected HTML content type, got %q", ct)
		}

		body := rec.Body.String()
		if !strings.Contains(body, "Upload a call") {
			t.Error("Expected page to contain the upload form heading")
		}
		if !strings.Contains(body, `hx-post="/upload"`) {
			t.Error("Expected upload form to post over HTMX")
		}
		if !strings.Contains(body, `hx-get="/assessments/latest"`) {
			t.Error("Expected latest panel to lazy-load")
		}
	})

	t.Run("unknown paths are 404", func(t *testing.T) {
		rec := doGet(t, app, "/nope")

		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", rec.Code)
		}
	})

	t.Run("upload rejects GET", func(t *testing.T) {
		rec := doGet(t, app, "/upload")

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("Expected status 405, got %d", rec.Code)
		}
	})
}

func TestUpload(t *testing.T) {
	audio := []byte("RIFF fake wav data")

	t.Run("renders the assessment card", func(t *testing.T) {
		mock := &tu.MockService{
			UploadCallFunc: func(ctx context.Context, r io.Reader, filename, language string) (*models.UploadResult, error) {
				if filename != "call.wav" {
					t.Errorf("Expected filename call.wav, got %q", filename)
				}
				if language != "kk" {
					t.Errorf("Expected language kk, got %q", language)
				}
				data, err := io.ReadAll(r)
				if err != nil {
					t.Errorf("Failed to read audio stream: %v", err)
				}
				if !bytes.Equal(data, audio) {
					t.Error("Audio bytes did not survive the multipart round trip")
				}
				return &models.UploadResult{Status: "success", Assessment: sampleAssessment()}, nil
			},
		}
		app := newTestApp(t, mock)

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, uploadRequest(t, "call.wav", "kk", audio))

		if rec.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", rec.Code)
		}

		body := rec.Body.String()
		if !strings.Contains(body, "87.5") {
			t.Error("Expected card to show the total score")
		}
		if !strings.Contains(body, "call-42") {
			t.Error("Expected card to show the call ID")
		}
		if !strings.Contains(body, `id="latest"`) {
			t.Error("Expected fragment to re-target the latest panel")
		}
		if !strings.Contains(body, "Calm and steady tone") {
			t.Error("Expected card to list strengths")
		}
	})

	t.Run("shows in-band rejections", func(t *testing.T) {
		mock := &tu.MockService{
			UploadCallFunc: func(ctx context.Context, r io.Reader, filename, language string) (*models.UploadResult, error) {
				return &models.UploadResult{Status: "error", Message: "Could not transcribe audio"}, nil
			},
		}
		app := newTestApp(t, mock)

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, uploadRequest(t, "call.wav", "ru", audio))

		if rec.Code != http.StatusOK {
			t.Errorf("Expected status 200 for a swappable fragment, got %d", rec.Code)
		}

		body := rec.Body.String()
		if !strings.Contains(body, "Could not transcribe audio") {
			t.Error("Expected backend message in the error panel")
		}
		if !strings.Contains(body, "Assessment failed") {
			t.Error("Expected the error panel heading")
		}
	})

	t.Run("shows transport failures", func(t *testing.T) {
		mock := &tu.MockService{
			UploadCallFunc: func(ctx context.Context, r io.Reader, filename, language string) (*models.UploadResult, error) {
				return nil, &services.NetworkError{URL: "http://localhost:8000/upload-call", Err: errors.New("connection refused")}
			},
		}
		app := newTestApp(t, mock)

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, uploadRequest(t, "call.wav", "ru", audio))

		if rec.Code != http.StatusOK {
			t.Errorf("Expected status 200 for a swappable fragment, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Cannot reach the assessment backend") {
			t.Error("Expected a friendly unreachable-backend message")
		}
	})

	t.Run("requires a file", func(t *testing.T) {
		called := false
		mock := &tu.MockService{
			UploadCallFunc: func(ctx context.Context, r io.Reader, filename, language string) (*models.UploadResult, error) {
				called = true
				return &models.UploadResult{Status: "success"}, nil
			},
		}
		app := newTestApp(t, mock)

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, uploadRequest(t, "", "ru", nil))

		if !strings.Contains(rec.Body.String(), "Choose a recording") {
			t.Error("Expected a missing-file message")
		}
		if called {
			t.Error("Backend should not be called without a file")
		}
	})
}

func TestAssessmentPages(t *testing.T) {
	t.Run("latest panel renders the newest assessment", func(t *testing.T) {
		mock := &tu.MockService{
			GetLatestAssessmentFunc: func(ctx context.Context) (*models.Assessment, error) {
				return sampleAssessment(), nil
			},
		}
		app := newTestApp(t, mock)

		rec := doGet(t, app, "/assessments/latest")

		if rec.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "87.5") || !strings.Contains(body, "call-42") {
			t.Error("Expected the latest assessment card")
		}
	})

	t.Run("latest panel has an empty state", func(t *testing.T) {
		mock := &tu.MockService{
			GetLatestAssessmentFunc: func(ctx context.Context) (*models.Assessment, error) {
				return nil, &services.TransportError{StatusCode: http.StatusNotFound, Message: "No assessments available"}
			},
		}
		app := newTestApp(t, mock)

		rec := doGet(t, app, "/assessments/latest")

		if rec.Code != http.StatusOK {
			t.Errorf("Expected status 200 for a swappable fragment, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "No assessments yet") {
			t.Error("Expected the empty-state message")
		}
	})

	t.Run("assessment page by call ID", func(t *testing.T) {
		mock := &tu.MockService{
			GetAssessmentFunc: func(ctx context.Context, callID string) (*models.Assessment, error) {
				if callID != "call-42" {
					t.Errorf("Expected call ID call-42, got %q", callID)
				}
				return sampleAssessment(), nil
			},
		}
		app := newTestApp(t, mock)

		rec := doGet(t, app, "/assessments/call-42")

		if rec.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "call-42") {
			t.Error("Expected the call ID on the page")
		}
		if !strings.Contains(body, "Strengths") {
			t.Error("Expected the breakdown sections")
		}
		if !strings.Contains(body, "2025-06-12 14:03") {
			t.Error("Expected the assessment timestamp")
		}
	})

	t.Run("unknown call is 404", func(t *testing.T) {
		mock := &tu.MockService{
			GetAssessmentFunc: func(ctx context.Context, callID string) (*models.Assessment, error) {
				return nil, &services.TransportError{StatusCode: http.StatusNotFound, Message: "Assessment not found"}
			},
		}
		app := newTestApp(t, mock)

		rec := doGet(t, app, "/assessments/missing")

		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "No assessment found for call missing") {
			t.Error("Expected a not-found message naming the call")
		}
	})
}

func TestWorkerPages(t *testing.T) {
	t.Run("rankings table", func(t *testing.T) {
		mock := &tu.MockService{
			GetWorkerRankingsFunc: func(ctx context.Context, department string, limit int) ([]models.WorkerRanking, error) {
				if department != "support" {
					t.Errorf("Expected department support, got %q", department)
				}
				if limit != 5 {
					t.Errorf("Expected limit 5, got %d", limit)
				}
				return []models.WorkerRanking{
					{Rank: 1, WorkerID: 3, WorkerName: "Aigerim Bekova", Department: "support", AverageScore: 92.3, TotalCalls: 145},
					{Rank: 2, WorkerID: 9, AverageScore: 88.1, TotalCalls: 98},
				}, nil
			},
		}
		app := newTestApp(t, mock)

		rec := doGet(t, app, "/workers/rankings?department=support&limit=5")

		if rec.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "Aigerim Bekova") || !strings.Contains(body, "92.3") {
			t.Error("Expected the top-ranked worker row")
		}
		if !strings.Contains(body, "Worker 9") {
			t.Error("Expected a fallback name for unnamed workers")
		}
	})

	t.Run("rankings defaults", func(t *testing.T) {
		mock := &tu.MockService{
			GetWorkerRankingsFunc: func(ctx context.Context, department string, limit int) ([]models.WorkerRanking, error) {
				if department != "" {
					t.Errorf("Expected empty department, got %q", department)
				}
				if limit != 10 {
					t.Errorf("Expected default limit 10, got %d", limit)
				}
				return nil, nil
			},
		}
		app := newTestApp(t, mock)

		rec := doGet(t, app, "/workers/rankings")

		if rec.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "No ranked workers yet") {
			t.Error("Expected the empty leaderboard message")
		}
	})

	t.Run("rankings surface backend failures", func(t *testing.T) {
		mock := &tu.MockService{
			GetWorkerRankingsFunc: func(ctx context.Context, department string, limit int) ([]models.WorkerRanking, error) {
				return nil, &services.NetworkError{URL: "http://localhost:8000/workers/rankings", Err: errors.New("connection refused")}
			},
		}
		app := newTestApp(t, mock)

		rec := doGet(t, app, "/workers/rankings")

		if rec.Code != http.StatusBadGateway {
			t.Errorf("Expected status 502, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Cannot reach the assessment backend") {
			t.Error("Expected the unreachable-backend message")
		}
	})

	t.Run("worker performance page", func(t *testing.T) {
		mock := &tu.MockService{
			GetWorkerPerformanceFunc: func(ctx context.Context, workerID int, days int) (*models.WorkerPerformance, error) {
				if workerID != 7 {
					t.Errorf("Expected worker 7, got %d", workerID)
				}
				if days != 14 {
					t.Errorf("Expected 14 days, got %d", days)
				}
				return &models.WorkerPerformance{
					WorkerID:          7,
					AverageScore:      84.2,
					TotalCalls:        31,
					Trend:             "improving",
					RecentAssessments: []models.Assessment{*sampleAssessment()},
				}, nil
			},
		}
		app := newTestApp(t, mock)

		rec := doGet(t, app, "/workers/7?days=14")

		if rec.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "84.2") {
			t.Error("Expected the average score")
		}
		if !strings.Contains(body, "trend improving") {
			t.Error("Expected the trend line")
		}
		if !strings.Contains(body, "call-42") {
			t.Error("Expected recent assessments listed")
		}
	})

	t.Run("worker IDs must be numeric", func(t *testing.T) {
		app := newTestApp(t, &tu.MockService{})

		rec := doGet(t, app, "/workers/abc")

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rec.Code)
		}
	})

	t.Run("unknown worker is 404", func(t *testing.T) {
		mock := &tu.MockService{
			GetWorkerPerformanceFunc: func(ctx context.Context, workerID int, days int) (*models.WorkerPerformance, error) {
				return nil, &services.TransportError{StatusCode: http.StatusNotFound, Message: "Worker not found"}
			},
		}
		app := newTestApp(t, mock)

		rec := doGet(t, app, "/workers/99")

		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", rec.Code)
		}
	})
}

func TestOps(t *testing.T) {
	t.Run("healthz reports backend status", func(t *testing.T) {
		mock := &tu.MockService{
			GetHealthFunc: func(ctx context.Context) (*models.HealthStatus, error) {
				return &models.HealthStatus{Status: "healthy"}, nil
			},
		}
		app := newTestApp(t, mock)

		rec := doGet(t, app, "/healthz")

		if rec.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected JSON content type, got %q", ct)
		}
		body := rec.Body.String()
		if !strings.Contains(body, `"status":"ok"`) || !strings.Contains(body, `"backend":"healthy"`) {
			t.Errorf("Unexpected health payload: %s", body)
		}
	})

	t.Run("healthz flags an unreachable backend", func(t *testing.T) {
		mock := &tu.MockService{
			GetHealthFunc: func(ctx context.Context) (*models.HealthStatus, error) {
				return nil, &services.NetworkError{URL: "http://localhost:8000/", Err: errors.New("connection refused")}
			},
		}
		app := newTestApp(t, mock)

		rec := doGet(t, app, "/healthz")

		if rec.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"backend":"unreachable"`) {
			t.Error("Expected the backend to be flagged unreachable")
		}
	})

	t.Run("metrics endpoint scrapes", func(t *testing.T) {
		app := newTestApp(t, &tu.MockService{})

		// Prime the counters with one page view so the families exist.
		doGet(t, app, "/")

		rec := doGet(t, app, "/metrics")

		if rec.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "lumina_http_requests_total") {
			t.Error("Expected request counters in the scrape")
		}
	})
}
