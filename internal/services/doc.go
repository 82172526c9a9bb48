// Package services defines the [Service] interface for the call assessment backend and implements it over HTTP.
//
// # Service Interface
//
// Every user surface (CLI commands, the TUI, the web console) consumes the
// same fixed operation set, so display logic never touches transport details.
//
// # Assessment Implementation
//
// [AssessmentService] targets the FastAPI assessment backend. Uploads are
// multipart POSTs (fields "file" and "language"); all other operations are
// plain JSON requests. The transport dependency is injected as a [Doer], so
// tests swap in recorded responses and production wiring can provide tuned
// clients.
//
// The service is deliberately thin: one round trip per call, no retries, no
// timeouts, no caching. [AssessmentService.WithQueryClient] installs a second
// Doer used only for read-only requests, which is how the optional retrying
// client is wired without ever replaying an upload.
//
// # Error Handling
//
// Failures split into three disjoint channels:
//   - [TransportError] : the backend answered with a non-2xx status; carries
//     the exact status code and the backend's own message when present
//   - [NetworkError] : the round trip never completed; wraps the underlying
//     transport error
//   - in-band failure : upload responses with status "error" are returned as
//     ordinary [models.UploadResult] values, never as Go errors
//
// Precondition violations (empty call id, nil audio stream) wrap
// [shared.ErrMissingArgument] and fail before any request is issued.
//
// # Data Mapping
//
// Responses decode directly into models DTOs ([models.Assessment],
// [models.WorkerPerformance], [models.WorkerRanking]) and pass through
// unmodified: scores, grades, and ordering are backend-owned.
package services
