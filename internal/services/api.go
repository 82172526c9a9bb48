// Raw HTTP access to the assessment backend for the api debug commands
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIService issues raw HTTP requests against the assessment backend and
// returns responses undecoded. It bypasses the [Service] data mapping so
// endpoint payloads can be inspected exactly as the backend sent them.
type APIService struct {
	baseURL    string
	httpClient Doer
}

// NewAPIService creates a raw client for the assessment backend.
// An empty baseURL falls back to the local development backend; a nil client
// falls back to [http.DefaultClient].
func NewAPIService(baseURL string, client Doer) *APIService {
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &APIService{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// BaseURL returns the backend base URL requests are resolved against.
func (a *APIService) BaseURL() string {
	return a.baseURL
}

// APIResponse is a raw backend response with the undecoded body.
// JSONData is populated only when the body parses as JSON.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// Get performs a GET request against path and returns the raw response.
func (a *APIService) Get(ctx context.Context, path string) (*APIResponse, error) {
	return a.roundTrip(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with a JSON body and returns the raw response.
func (a *APIService) Post(ctx context.Context, path string, data []byte) (*APIResponse, error) {
	return a.roundTrip(ctx, http.MethodPost, path, data)
}

// roundTrip issues one request and captures the response verbatim.
func (a *APIService) roundTrip(ctx context.Context, method, path string, data []byte) (*APIResponse, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	fullURL := a.baseURL + path

	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       raw,
	}

	var jsonData any
	if err := json.Unmarshal(raw, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}
