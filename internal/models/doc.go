// Package models defines domain entities and persistence interfaces for the Lumina assessment client.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs decoded from assessment backend responses
//   - [Assessment] : Full scoring result for a single call
//   - [UploadResult] : Envelope returned by the upload endpoint, carrying in-band status
//   - [WorkerPerformance] : Aggregated per-worker statistics over a period
//   - [WorkerRanking] : One row of the worker leaderboard
//   - [HealthStatus] : Backend health probe response
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [Submission] : Locally recorded receipt of an uploaded call recording
//
// DTOs are backend-owned: the client decodes them and passes them through without
// recomputing or reinterpreting any score. Persistent entities implement the Model
// interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
