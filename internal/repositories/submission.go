package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cyrkaade/hackathon-lumina/internal/models"
	"github.com/cyrkaade/hackathon-lumina/internal/shared"
)

// SubmissionRepository implements [models.Repository] for [models.Submission] persistence.
//
// Handles upload receipt CRUD operations with soft delete support and
// call-id, worker and status based queries.
type SubmissionRepository struct {
	db *sql.DB
}

// NewSubmissionRepository creates a new [SubmissionRepository] with the given database connection
func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create inserts a new submission into the database with generated ID and sequence
func (r *SubmissionRepository) Create(sub *models.Submission) error {
	sequence, err := NextSequence(r.db, "submissions")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	sub.SetID(id)

	if err := sub.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO submissions (
			id, sequence, call_id, worker_id, filename, language,
			status, total_score, message, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var callID any = sub.CallID()
	if callID == "" {
		callID = nil
	}

	var totalScore any
	if sub.Scored() {
		totalScore = sub.TotalScore()
	}

	_, err = r.db.Exec(query,
		id,
		sequence,
		callID,
		sub.WorkerID(),
		sub.Filename(),
		sub.Language(),
		sub.Status(),
		totalScore,
		sub.Message(),
		sub.CreatedAt(),
		sub.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}

	return nil
}

// Get retrieves a submission by ID, excluding soft-deleted submissions
func (r *SubmissionRepository) Get(id string) (*models.Submission, error) {
	query := `
		SELECT id, sequence, call_id, worker_id, filename, language,
			status, total_score, message, created_at, updated_at, deleted_at
		FROM submissions
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByCallID retrieves the submission receipt for a backend call id.
func (r *SubmissionRepository) GetByCallID(callID string) (*models.Submission, error) {
	query := `
		SELECT id, sequence, call_id, worker_id, filename, language,
			status, total_score, message, created_at, updated_at, deleted_at
		FROM submissions
		WHERE call_id = ? AND deleted_at IS NULL
		ORDER BY sequence DESC
		LIMIT 1
	`

	return r.scanOne(r.db.QueryRow(query, callID))
}

// Update modifies an existing submission in the database
func (r *SubmissionRepository) Update(sub *models.Submission) error {
	if err := sub.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	sub.SetUpdatedAt(now)

	query := `
		UPDATE submissions
		SET call_id = ?, status = ?, total_score = ?, message = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	var callID any = sub.CallID()
	if callID == "" {
		callID = nil
	}

	var totalScore any
	if sub.Scored() {
		totalScore = sub.TotalScore()
	}

	result, err := r.db.Exec(query, callID, sub.Status(), totalScore, sub.Message(), now, sub.ID())
	if err != nil {
		return fmt.Errorf("failed to update submission: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("submission not found or already deleted: %s", sub.ID())
	}

	return nil
}

// Delete soft-deletes a submission by ID
func (r *SubmissionRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE submissions
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("submission not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all submissions matching the given criteria, excluding soft-deleted submissions
func (r *SubmissionRepository) List(criteria map[string]any) ([]*models.Submission, error) {
	query := `
		SELECT id, sequence, call_id, worker_id, filename, language,
			status, total_score, message, created_at, updated_at, deleted_at
		FROM submissions
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if status, ok := criteria["status"].(string); ok && status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	if workerID, ok := criteria["worker_id"].(int); ok && workerID != 0 {
		query += " AND worker_id = ?"
		args = append(args, workerID)
	}

	if language, ok := criteria["language"].(string); ok && language != "" {
		query += " AND language = ?"
		args = append(args, language)
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var submissions []*models.Submission
	for rows.Next() {
		sub, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return submissions, nil
}

// scanOne scans a single [sql.Row] into a [models.Submission]
func (r *SubmissionRepository) scanOne(row *sql.Row) (*models.Submission, error) {
	sub, err := scanSubmission(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("submission not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query submission: %w", err)
	}
	return sub, nil
}

// scanRow scans the current [sql.Rows] cursor into a [models.Submission]
func (r *SubmissionRepository) scanRow(rows *sql.Rows) (*models.Submission, error) {
	sub, err := scanSubmission(rows.Scan)
	if err != nil {
		return nil, fmt.Errorf("failed to scan submission: %w", err)
	}
	return sub, nil
}

// scanSubmission hydrates a [models.Submission] from any row-shaped scan function.
func scanSubmission(scan func(dest ...any) error) (*models.Submission, error) {
	var (
		id         string
		sequence   int
		callID     sql.NullString
		workerID   int
		filename   string
		language   sql.NullString
		status     string
		totalScore sql.NullFloat64
		message    sql.NullString
		createdAt  time.Time
		updatedAt  time.Time
		deletedAt  sql.NullTime
	)

	if err := scan(&id, &sequence, &callID, &workerID, &filename, &language,
		&status, &totalScore, &message, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, err
	}

	sub := models.NewSubmission(sequence, callID.String, workerID, filename, language.String)
	sub.SetID(id)

	switch status {
	case models.SubmissionSuccess:
		sub.MarkSuccess(totalScore.Float64, message.String)
	case models.SubmissionFailed:
		sub.MarkFailed(message.String)
	}

	sub.SetCreatedAt(createdAt)
	sub.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		sub.SetDeletedAt(&deletedAt.Time)
	}

	return sub, nil
}
