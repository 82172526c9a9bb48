package services

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/cyrkaade/hackathon-lumina/internal/shared"
)

func TestNewRetryClient(t *testing.T) {
	// One initial attempt plus two retries, near-zero backoff.
	cfg := shared.RetryConfig{Count: 2, BackoffMS: 1, TimeoutMS: 2000}

	countingServer := func(status func(hit int32) int) (*httptest.Server, *atomic.Int32) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status(hits.Add(1)))
		}))
		return srv, &hits
	}

	t.Run("retries server errors until an attempt succeeds", func(t *testing.T) {
		srv, hits := countingServer(func(hit int32) int {
			if hit < 3 {
				return http.StatusInternalServerError
			}
			return http.StatusOK
		})
		defer srv.Close()

		req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		res, err := NewRetryClient(cfg).Do(req)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			t.Errorf("expected status 200, got %d", res.StatusCode)
		}
		if got := hits.Load(); got != 3 {
			t.Errorf("expected 3 attempts, got %d", got)
		}
	})

	t.Run("returns the last response when every attempt fails", func(t *testing.T) {
		srv, hits := countingServer(func(int32) int { return http.StatusBadGateway })
		defer srv.Close()

		req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		res, err := NewRetryClient(cfg).Do(req)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusBadGateway {
			t.Errorf("expected status 502, got %d", res.StatusCode)
		}
		if got := hits.Load(); got != 3 {
			t.Errorf("expected 3 attempts, got %d", got)
		}
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		srv, hits := countingServer(func(int32) int { return http.StatusNotFound })
		defer srv.Close()

		req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		res, err := NewRetryClient(cfg).Do(req)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", res.StatusCode)
		}
		if got := hits.Load(); got != 1 {
			t.Errorf("expected a single attempt, got %d", got)
		}
	})
}
