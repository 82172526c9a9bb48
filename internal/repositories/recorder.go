package repositories

import (
	"fmt"

	"github.com/cyrkaade/hackathon-lumina/internal/models"
)

// RecorderAdapter implements tasks.SubmissionRecorder using SubmissionRepository.
//
// The batch engine records receipts through this hook; recording is
// best-effort and a failure here never fails the upload itself.
type RecorderAdapter struct {
	repo *SubmissionRepository
}

// NewRecorderAdapter creates a new RecorderAdapter with the given repository
func NewRecorderAdapter(repo *SubmissionRepository) *RecorderAdapter {
	return &RecorderAdapter{repo: repo}
}

// RecordSubmission persists a settled upload receipt.
func (a *RecorderAdapter) RecordSubmission(sub *models.Submission) error {
	if err := a.repo.Create(sub); err != nil {
		return fmt.Errorf("failed to record submission: %w", err)
	}
	return nil
}
