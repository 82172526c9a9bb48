// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/cyrkaade/hackathon-lumina/internal/models"
)

// MockService is a configurable test double for services.Service.
//
// Each operation delegates to the corresponding function field when set and
// falls back to an empty success otherwise, so tests only wire what they use.
type MockService struct {
	UploadCallFunc           func(ctx context.Context, audio io.Reader, filename, language string) (*models.UploadResult, error)
	GetLatestAssessmentFunc  func(ctx context.Context) (*models.Assessment, error)
	GetAssessmentFunc        func(ctx context.Context, callID string) (*models.Assessment, error)
	AssessCallFunc           func(ctx context.Context, callID, language string) (*models.Assessment, error)
	GetWorkerPerformanceFunc func(ctx context.Context, workerID int, days int) (*models.WorkerPerformance, error)
	GetWorkerRankingsFunc    func(ctx context.Context, department string, limit int) ([]models.WorkerRanking, error)
	GetHealthFunc            func(ctx context.Context) (*models.HealthStatus, error)
}

func (m *MockService) UploadCall(ctx context.Context, audio io.Reader, filename, language string) (*models.UploadResult, error) {
	if m.UploadCallFunc != nil {
		return m.UploadCallFunc(ctx, audio, filename, language)
	}
	return &models.UploadResult{Status: "success"}, nil
}

func (m *MockService) GetLatestAssessment(ctx context.Context) (*models.Assessment, error) {
	if m.GetLatestAssessmentFunc != nil {
		return m.GetLatestAssessmentFunc(ctx)
	}
	return &models.Assessment{}, nil
}

func (m *MockService) GetAssessment(ctx context.Context, callID string) (*models.Assessment, error) {
	if m.GetAssessmentFunc != nil {
		return m.GetAssessmentFunc(ctx, callID)
	}
	return &models.Assessment{CallID: callID}, nil
}

func (m *MockService) AssessCall(ctx context.Context, callID, language string) (*models.Assessment, error) {
	if m.AssessCallFunc != nil {
		return m.AssessCallFunc(ctx, callID, language)
	}
	return &models.Assessment{CallID: callID}, nil
}

func (m *MockService) GetWorkerPerformance(ctx context.Context, workerID int, days int) (*models.WorkerPerformance, error) {
	if m.GetWorkerPerformanceFunc != nil {
		return m.GetWorkerPerformanceFunc(ctx, workerID, days)
	}
	return &models.WorkerPerformance{WorkerID: workerID}, nil
}

func (m *MockService) GetWorkerRankings(ctx context.Context, department string, limit int) ([]models.WorkerRanking, error) {
	if m.GetWorkerRankingsFunc != nil {
		return m.GetWorkerRankingsFunc(ctx, department, limit)
	}
	return []models.WorkerRanking{}, nil
}

func (m *MockService) GetHealth(ctx context.Context) (*models.HealthStatus, error) {
	if m.GetHealthFunc != nil {
		return m.GetHealthFunc(ctx)
	}
	return &models.HealthStatus{Status: "healthy"}, nil
}

func (m *MockService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
