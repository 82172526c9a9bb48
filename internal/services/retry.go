package services

import (
	"time"

	"github.com/gojektech/heimdall/v6"
	"github.com/gojektech/heimdall/v6/httpclient"

	"github.com/cyrkaade/hackathon-lumina/internal/shared"
)

// Retry defaults, applied when the config leaves a knob at zero.
const (
	defaultRetryCount   = 3
	defaultRetryBackoff = 500 * time.Millisecond
	defaultRetryTimeout = 10 * time.Second
	retryJitter         = 50 * time.Millisecond
)

// NewRetryClient builds a [Doer] that retries failed requests with constant
// backoff. Heimdall retries transport errors and 5xx responses and never
// retries 4xx; a 5xx that survives every attempt is returned as an ordinary
// response, so it still surfaces as a [TransportError] downstream.
//
// Uploads are not idempotent, so wire this through
// [AssessmentService.WithQueryClient]: queries retry, uploads keep the base
// client.
func NewRetryClient(cfg shared.RetryConfig) Doer {
	count := cfg.Count
	if count <= 0 {
		count = defaultRetryCount
	}

	backoff := cfg.Backoff()
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}

	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = defaultRetryTimeout
	}

	return httpclient.NewClient(
		httpclient.WithHTTPTimeout(timeout),
		httpclient.WithRetryCount(count),
		httpclient.WithRetrier(heimdall.NewRetrier(heimdall.NewConstantBackoff(backoff, retryJitter))),
	)
}
