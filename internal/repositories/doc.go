// Package repositories implements SQLite persistence for the local submission history.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// All repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [SubmissionRepository] : Upload receipt persistence with call-id and status lookups
//   - [RecorderAdapter] : Bridges the batch engine's recording hook onto SubmissionRepository
//
// Sequence numbers provide stable, human-readable ordering (e.g., submission #42) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
//
// The history is receipts only: what was uploaded, when, and how it settled.
// Assessment content always comes fresh from the backend.
package repositories
