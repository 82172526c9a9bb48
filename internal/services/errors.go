package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody caps how much of a failure response is read for the message.
const maxErrorBody = 32 << 10

// TransportError reports a completed round trip that the backend answered
// with a non-2xx status. StatusCode carries the exact HTTP status; Message
// carries the backend's own description when one could be extracted.
type TransportError struct {
	StatusCode int
	Message    string
}

func (e *TransportError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// NetworkError reports a round trip that never completed: connection refused,
// DNS failure, closed socket, cancelled context. The backend produced no
// response, so there is no status code to report.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// newTransportError builds a TransportError from a non-2xx response.
//
// The backend reports failures as {"detail": ...} (FastAPI convention) or
// {"message": ...}; when the body is neither, the raw text is used, and an
// empty body falls back to the standard status text.
func newTransportError(resp *http.Response) *TransportError {
	te := &TransportError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(strings.TrimSpace(string(body))) == 0 {
		te.Message = http.StatusText(resp.StatusCode)
		return te
	}

	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Detail != "" {
			te.Message = payload.Detail
			return te
		}
		if payload.Message != "" {
			te.Message = payload.Message
			return te
		}
	}

	te.Message = strings.TrimSpace(string(body))
	return te
}
