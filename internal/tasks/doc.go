// Package tasks orchestrates batch call submissions with real-time progress reporting.
//
// # Core Operations
//
// The [Engine] interface defines one operation:
//
//  1. [Engine.Run] : Concurrent upload of call recordings
//     - Validates each job before it reaches the backend
//     - Uploads recordings through a bounded worker pool with rate limiting
//     - Settles every job into a submission receipt (success or failed)
//     - Optionally writes a JSON batch report summarizing the run
//
// Job lists come from [LoadManifest] (JSON manifest files) or [ScanDirectory]
// (every supported recording in a directory).
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Receipt Persistence
//
// The optional [SubmissionRecorder] interface enables automatic receipt persistence during runs
//
// Receipts are recorded silently (errors ignored) to avoid disrupting uploads.
//
// # Implementation
//
// [UploadEngine] implements [Engine] with dependencies on:
//   - [services.Service] : Assessment backend client
//   - [SubmissionRecorder] : Optional persistence layer (repositories.RecorderAdapter)
package tasks
