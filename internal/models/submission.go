package models

import (
	"fmt"
	"time"
)

// Submission status values mirror the backend's in-band upload vocabulary.
const (
	SubmissionPending = "pending"
	SubmissionSuccess = "success"
	SubmissionFailed  = "error"
)

// Submission is a locally recorded receipt of one uploaded call recording.
//
// It captures what was sent and how the upload settled. It is NOT a cache of
// the assessment itself: score queries always go back to the backend, the
// receipt only keeps the headline number for listing.
type Submission struct {
	id         string
	sequence   int
	callID     string
	workerID   int
	filename   string
	language   string
	status     string
	totalScore float64
	message    string
	createdAt  time.Time
	updatedAt  time.Time
	deletedAt  *time.Time
}

// NewSubmission creates a pending submission receipt for an upload about to be issued.
func NewSubmission(sequence int, callID string, workerID int, filename, language string) *Submission {
	now := time.Now()
	return &Submission{
		sequence:  sequence,
		callID:    callID,
		workerID:  workerID,
		filename:  filename,
		language:  language,
		status:    SubmissionPending,
		createdAt: now,
		updatedAt: now,
	}
}

func (s *Submission) ID() string            { return s.id }
func (s *Submission) Sequence() int         { return s.sequence }
func (s *Submission) CallID() string        { return s.callID }
func (s *Submission) WorkerID() int         { return s.workerID }
func (s *Submission) Filename() string      { return s.filename }
func (s *Submission) Language() string      { return s.language }
func (s *Submission) Status() string        { return s.status }
func (s *Submission) TotalScore() float64   { return s.totalScore }
func (s *Submission) Message() string       { return s.message }
func (s *Submission) CreatedAt() time.Time  { return s.createdAt }
func (s *Submission) UpdatedAt() time.Time  { return s.updatedAt }
func (s *Submission) DeletedAt() *time.Time { return s.deletedAt }

func (s *Submission) SetID(id string)           { s.id = id }
func (s *Submission) SetCallID(callID string)   { s.callID = callID }
func (s *Submission) SetCreatedAt(t time.Time)  { s.createdAt = t }
func (s *Submission) SetUpdatedAt(t time.Time)  { s.updatedAt = t }
func (s *Submission) SetDeletedAt(t *time.Time) { s.deletedAt = t }

// MarkSuccess records a settled upload whose in-band status was "success".
// TotalScore is only meaningful after this transition.
func (s *Submission) MarkSuccess(totalScore float64, message string) {
	s.status = SubmissionSuccess
	s.totalScore = totalScore
	s.message = message
	s.updatedAt = time.Now()
}

// MarkFailed records a settled upload that failed, either in-band or on the wire.
func (s *Submission) MarkFailed(message string) {
	s.status = SubmissionFailed
	s.message = message
	s.updatedAt = time.Now()
}

// Scored reports whether the receipt carries a meaningful total score.
func (s *Submission) Scored() bool {
	return s.status == SubmissionSuccess
}

// Validate checks if the submission's data is valid
func (s *Submission) Validate() error {
	if s.filename == "" {
		return fmt.Errorf("submission filename is required")
	}
	switch s.status {
	case SubmissionPending, SubmissionSuccess, SubmissionFailed:
	default:
		return fmt.Errorf("invalid submission status: %s", s.status)
	}
	return nil
}
